// internal/config/flags.go
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/bethropolis/gapedit/internal/logger"
)

// Flags holds values parsed from command-line flags.
type Flags struct {
	fs *flag.FlagSet

	ConfigFilePath  *string
	Version         *bool
	PlaybackScript  *string
	LogLevel        *string
	LogFilePath     *string
	InitialCapacity *int
	StreamChunk     *int
	MaxHistory      *int
	PageScroll      *int
	// Logger filters
	EnableTags      *string
	DisableTags     *string
	EnablePkgs      *string
	DisablePkgs     *string
	EnableFiles     *string
	DisableFiles    *string
	SystemClipboard *bool
}

// NewFlags defines the command-line flags on a fresh flag set. Errors are
// written to output.
func NewFlags(output io.Writer) *Flags {
	fs := flag.NewFlagSet(AppName, flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags] [file]\n", AppName)
		fs.PrintDefaults()
	}

	f := &Flags{fs: fs}
	f.ConfigFilePath = fs.String("config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	f.Version = fs.Bool("version", false, "Show version information and exit")
	f.PlaybackScript = fs.String("playback", "", "Run the key script in this file on a simulated screen and print the result")
	f.LogLevel = fs.String("loglevel", "", "Log level (debug, info, warn, error) - Overrides config file")
	f.LogFilePath = fs.String("logfile", "", "Path to write log file (use '-' for stderr) - Overrides config file")
	f.InitialCapacity = fs.Int("capacity", 0, "Initial gap buffer capacity in characters - Overrides config file")
	f.StreamChunk = fs.Int("chunk", 0, "Read size used when loading files - Overrides config file")
	f.MaxHistory = fs.Int("max-history", -1, "Undo entries kept, 0 for no limit - Overrides config file")
	f.PageScroll = fs.Int("page-scroll", -1, "Lines moved by page up/down, 0 for screen height minus 3 - Overrides config file")
	f.EnableTags = fs.String("log-tags", "", "Comma-separated list of tags to enable - Overrides config file")
	f.DisableTags = fs.String("log-disable-tags", "", "Comma-separated list of tags to disable - Overrides config file")
	f.EnablePkgs = fs.String("log-packages", "", "Comma-separated list of packages to enable - Overrides config file")
	f.DisablePkgs = fs.String("log-disable-packages", "", "Comma-separated list of packages to disable - Overrides config file")
	f.EnableFiles = fs.String("log-files", "", "Comma-separated list of files to enable - Overrides config file")
	f.DisableFiles = fs.String("log-disable-files", "", "Comma-separated list of files to disable - Overrides config file")
	f.SystemClipboard = fs.Bool("system-clipboard", false, "Mirror killed text to the system clipboard - Overrides config file")
	return f
}

// Parse parses args (without the program name) and returns the remaining
// non-flag arguments, such as the file to edit.
func (f *Flags) Parse(args []string) ([]string, error) {
	if err := f.fs.Parse(args); err != nil {
		return nil, err
	}
	return f.fs.Args(), nil
}

// ApplyOverrides updates cfg with the flags that were set on the command line.
func (f *Flags) ApplyOverrides(cfg *Config) {
	// Visit only processes flags that were actually set
	f.fs.Visit(func(fl *flag.Flag) {
		logger.DebugTagf("config", "Applying flag override: %s", fl.Name)
		switch fl.Name {
		case "loglevel":
			if *f.LogLevel != "" {
				cfg.Logger.LogLevel = *f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = *f.LogFilePath // Empty string is valid
		case "capacity":
			if *f.InitialCapacity >= 0 {
				cfg.Editor.InitialCapacity = *f.InitialCapacity
			}
		case "chunk":
			if *f.StreamChunk > 0 {
				cfg.Editor.StreamChunk = *f.StreamChunk
			}
		case "max-history":
			if *f.MaxHistory >= 0 {
				cfg.Editor.MaxHistory = *f.MaxHistory
			}
		case "page-scroll":
			if *f.PageScroll >= 0 {
				cfg.Editor.PageScroll = *f.PageScroll
			}
		case "system-clipboard":
			cfg.Editor.SystemClipboard = *f.SystemClipboard
		case "log-tags":
			cfg.Logger.EnabledTags = splitCommaList(*f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = splitCommaList(*f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = splitCommaList(*f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = splitCommaList(*f.DisablePkgs)
		case "log-files":
			cfg.Logger.EnabledFiles = splitCommaList(*f.EnableFiles)
		case "log-disable-files":
			cfg.Logger.DisabledFiles = splitCommaList(*f.DisableFiles)
		}
	})
}

// splitCommaList splits a comma-separated list, dropping empty items.
func splitCommaList(list string) []string {
	if list == "" {
		return nil
	}
	items := strings.Split(list, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// cmd/gapedit/main.go
package main

import (
	"errors"
	"flag"
	"fmt"
	stlog "log" // Use standard log for FATAL errors before logger is ready
	"os"
	"path/filepath"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/gapedit/internal/app"
	"github.com/bethropolis/gapedit/internal/config"
	"github.com/bethropolis/gapedit/internal/logger"
)

func main() {
	// --- Argument & Flag Parsing ---
	flags := config.NewFlags(os.Stderr)
	args, err := flags.Parse(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		os.Exit(2)
	}
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, config.Version)
		os.Exit(0)
	}

	var filePath string
	if len(args) > 0 {
		filePath = args[0]
	}
	playback := *flags.PlaybackScript != ""

	// --- Configuration ---
	cfg, unknownKeys, err := config.LoadConfig(*flags.ConfigFilePath, flags)
	if err != nil {
		stlog.Fatalf("Failed to load configuration: %v", err)
	}

	// --- Logger Initialization ---
	// The terminal belongs to the editor, so an interactive session logs to a file by default
	logPath := cfg.Logger.LogFilePath
	if logPath == "" && !playback {
		logPath = filepath.Join(os.TempDir(), config.DefaultLogFileName)
	}
	logOutput, err := logger.OpenOutput(logPath)
	if err != nil {
		stlog.Fatalf("%v", err)
	}
	defer logOutput.Close()
	logger.Init(cfg.Logger, logOutput)

	logger.Infof("Starting %s %s", config.AppName, config.Version)
	logger.Debugf("Log level set to: %s", cfg.Logger.Level())
	if len(unknownKeys) > 0 {
		logger.Warnf("Config: unrecognized keys: %v", unknownKeys)
	}

	if err := run(cfg, filePath, *flags.PlaybackScript); err != nil {
		logger.Errorf("Application exited with error: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", config.AppName, err)
		logOutput.Close()
		os.Exit(1)
	}
	logger.Infof("%s finished.", config.AppName)
}

func run(cfg *config.Config, filePath, scriptPath string) error {
	if scriptPath != "" {
		script, err := os.Open(scriptPath)
		if err != nil {
			return fmt.Errorf("failed to open script '%s': %w", scriptPath, err)
		}
		defer script.Close()
		return app.Playback(cfg, script, filePath, os.Stdout)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create tcell screen: %w", err)
	}
	editorApp, err := app.New(cfg, screen, filePath)
	if err != nil {
		return err
	}
	return editorApp.Run()
}

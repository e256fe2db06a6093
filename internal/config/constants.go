package config

// Base application details
const AppName = "gapedit"
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "gapedit.log"

// Version is reported by -version.
const Version = "0.3.0"

// UI Layout
const StatusBarHeight = 1

// Playback screen size
const PlaybackWidth = 80
const PlaybackHeight = 24

// These could be moved to NewDefaultConfig(), keeping here for now
const DefaultInitialCapacity = 1024
const DefaultStreamChunk = 4096
const DefaultMaxHistory = 0 // Unbounded
const DefaultPageScroll = 0 // Screen height minus 3
const SystemClipboard = false

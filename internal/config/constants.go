package config

import "time"

// Base application details
const AppName = "trailspace"
const DefaultConfigFileName = "config.toml" // under os.UserConfigDir()/trailspace
const DefaultLogFileName = "trailspace.log"

// Project-local config files, searched from the working directory upwards.
var LocalConfigFileNames = []string{
	".trailspace.toml",
	".trailspace.yaml",
	".trailspace.yml",
}

// Snapshot sources for the modified-lines filter.
const (
	SnapshotDisk = "disk"
	SnapshotGit  = "git"
)

// Host defaults, taken from the original extension's settings.
const (
	DefaultRegexp               = `[ \t]+`
	DefaultIncludeEmptyLines    = true
	DefaultHighlightCurrentLine = true
	DefaultDeleteModifiedOnly   = false
	DefaultLiveMatching         = true
	DefaultTrimOnSave           = false
	DefaultShowStatusBarMessage = true
	DefaultBackgroundColor      = "rgba(255,0,0,0.3)"
	DefaultBorderColor          = "rgba(255,100,100,0.15)"
	DefaultMatchTimeout         = 2 * time.Second
)

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 3 * time.Second

const DefaultTabWidth = 4
const DefaultScrollOff = 3

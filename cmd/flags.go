package main

// Flag names for Viper binding
const (
	FlagConfig   = "config"
	FlagWork     = "work"
	FlagBreak    = "break"
	FlagNoSound  = "no-sound"
	FlagLogLevel = "log-level"
	FlagLogFile  = "log-file"
	FlagForce    = "force"
)

// flagKeys maps flags to the config keys they override.
var flagKeys = map[string]string{
	FlagConfig:   "config",
	FlagWork:     "timer.work_minutes",
	FlagBreak:    "timer.break_minutes",
	FlagLogLevel: "log.level",
	FlagLogFile:  "log.file",
}

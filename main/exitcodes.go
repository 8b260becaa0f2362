package main

// Exit codes of the gocluster binary.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing or invalid config file)
	ExitDataError   = 3 // Data error (unreadable snapshot, contact overflow, unwritable report)
)

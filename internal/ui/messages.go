// internal/ui/messages.go
package ui

// LaunchedMsg is sent once a command has been handed to the launcher
type LaunchedMsg struct {
	Command string
	Err     error
}

// ProbeResultMsg is sent when a reachability check finishes
type ProbeResultMsg struct {
	Name string
	Err  error
}

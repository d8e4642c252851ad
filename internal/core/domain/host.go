package domain

// Host is a snapshot of the process the orchestrator runs in.
type Host struct {
	GOOS string
	// Platform is empty when GOOS is not one of the supported platforms.
	Platform Platform
	Env      Environment
	NumCPU   int
	WorkDir  string
	HomeDir  string
}

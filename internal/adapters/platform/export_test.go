package platform

// NewProbeWith creates a Probe with injected sources.
func NewProbeWith(goos string, env []string, wd string, cpus int) *Probe {
	return &Probe{
		goos:    goos,
		environ: func() []string { return env },
		getwd:   func() (string, error) { return wd, nil },
		home:    func() (string, error) { return "/home/dev", nil },
		numCPU:  func() int { return cpus },
	}
}

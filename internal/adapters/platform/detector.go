// Package platform maps the host operating system onto a build platform and
// snapshots the process state the resolver reads.
package platform

import (
	"os"
	"runtime"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/zerr"
)

// Detect maps a GOOS value onto a platform tag.
func Detect(goos string) (domain.Platform, error) {
	switch goos {
	case "darwin":
		return domain.PlatformMac, nil
	case "windows":
		return domain.PlatformWindows, nil
	case "linux":
		return domain.PlatformLinux, nil
	default:
		return "", zerr.With(domain.Violation(domain.ErrUnsupportedPlatform, goos), "goos", goos)
	}
}

// Probe implements ports.HostProbe for the running process.
type Probe struct {
	goos    string
	environ func() []string
	getwd   func() (string, error)
	home    func() (string, error)
	numCPU  func() int
}

// NewProbe creates a Probe reading from the os and runtime packages.
func NewProbe() *Probe {
	return &Probe{
		goos:    runtime.GOOS,
		environ: os.Environ,
		getwd:   os.Getwd,
		home:    os.UserHomeDir,
		numCPU:  runtime.NumCPU,
	}
}

// Snapshot captures the host. An unsupported GOOS leaves Platform empty; the
// resolver reports it only when no platform is given explicitly.
func (p *Probe) Snapshot() (domain.Host, error) {
	wd, err := p.getwd()
	if err != nil {
		return domain.Host{}, zerr.Wrap(err, domain.ErrWorkDirFailed.Error())
	}

	// A missing home directory only disables ~ expansion.
	home, _ := p.home()

	platform, _ := Detect(p.goos)

	return domain.Host{
		GOOS:     p.goos,
		Platform: platform,
		Env:      domain.NewEnvironment(p.environ(), p.goos == "windows"),
		NumCPU:   max(p.numCPU(), 1),
		WorkDir:  wd,
		HomeDir:  home,
	}, nil
}

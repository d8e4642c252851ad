package plan

import (
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/forge/internal/core/domain"
)

// Validator rejects inconsistent build plans before anything is spawned.
// It only reads the filesystem.
type Validator struct {
	stat func(string) (fs.FileInfo, error)
}

// NewValidator returns a Validator backed by os.Stat.
func NewValidator() *Validator {
	return &Validator{stat: os.Stat}
}

// Validate checks every rule and reports all violations in one *domain.PlanError.
func (v *Validator) Validate(p domain.BuildPlan) error { //nolint:gocritic // hugeParam
	var violations []error
	add := func(err error) {
		violations = append(violations, err)
	}

	if p.Jobs < 1 {
		add(domain.ErrInvalidJobs)
	}

	windows := p.Platform == domain.PlatformWindows
	switch {
	case !windows && p.Toolchain != domain.ToolchainNone:
		add(domain.Violation(domain.ErrToolchainNotAllowed, "toolchain "+string(p.Toolchain)+" on "+string(p.Platform)))
	case windows && p.Toolchain == domain.ToolchainNone:
		add(domain.ErrToolchainRequired)
	}

	if p.Sanitizer && p.Kind != domain.BuildDebug {
		add(domain.Violation(domain.ErrSanitizerRequiresDebug, "build type "+string(p.Kind)))
	}
	if p.Production && p.Kind != domain.BuildRelease {
		add(domain.Violation(domain.ErrProductionRequiresRelease, "build type "+string(p.Kind)))
	}

	if windows {
		if p.Tools.QtCMake == "" {
			add(domain.Violation(domain.ErrToolPathRequired, "--qt-cmake"))
		}
		if p.Tools.CMake == "" {
			add(domain.Violation(domain.ErrToolPathRequired, "--cmake"))
		}
	}

	for _, tool := range []struct {
		flag string
		path string
	}{
		{"--qt-cmake", p.Tools.QtCMake},
		{"--cmake", p.Tools.CMake},
		{"--c-compiler", p.Tools.CCompiler},
		{"--cxx-compiler", p.Tools.CXXCompiler},
		{"--make-program", p.Tools.MakeProgram},
		{"--qmake", p.Tools.QMake},
	} {
		if tool.path == "" {
			continue
		}
		if _, err := v.stat(tool.path); err != nil {
			add(domain.Violation(domain.ErrToolPathMissing, tool.flag+" "+tool.path))
		}
	}

	add(v.checkQtRoot(p.QtRoot))
	add(v.checkToolsRoot(p.QtToolsRoot))

	return domain.NewPlanError(violations...)
}

func (v *Validator) checkQtRoot(root string) error {
	if root == "" {
		return nil
	}
	info, err := v.stat(root)
	if err != nil || !info.IsDir() {
		return domain.Violation(domain.ErrSDKRootMissing, root)
	}
	if !v.isDir(filepath.Join(root, "bin")) && !v.isDir(filepath.Join(root, "lib")) {
		return domain.Violation(domain.ErrSDKRootInvalid, root)
	}
	return nil
}

func (v *Validator) checkToolsRoot(root string) error {
	if root == "" {
		return nil
	}
	if !v.isDir(root) {
		return domain.Violation(domain.ErrSDKToolsRootInvalid, root)
	}
	return nil
}

func (v *Validator) isDir(path string) bool {
	info, err := v.stat(path)
	return err == nil && info.IsDir()
}

package domain_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/core/domain"
)

func samplePlan() domain.BuildPlan {
	return domain.BuildPlan{
		Platform:     domain.PlatformLinux,
		Kind:         domain.BuildRelease,
		ProjectRoot:  "/src",
		BuildDir:     "/src/build/linux/release",
		Jobs:         8,
		GPLOnly:      true,
		AppName:      domain.DefaultAppName,
		ExtraArgs:    []string{"-DFOO=1"},
		EnvOverrides: map[string]string{"CC": "gcc", "CXX": "g++"},
	}
}

func TestBuildPlan_Fingerprint(t *testing.T) {
	base := samplePlan()

	assert.Equal(t, base.Fingerprint(), samplePlan().Fingerprint())

	actions := base.Clone()
	actions.Clean = true
	actions.DryRun = true
	actions.RunAfterBuild = true
	actions.Verbose = true
	assert.Equal(t, base.Fingerprint(), actions.Fingerprint(), "action flags must not change the fingerprint")

	changed := base.Clone()
	changed.ExtraArgs = append(changed.ExtraArgs, "-DBAR=2")
	assert.NotEqual(t, base.Fingerprint(), changed.Fingerprint())

	env := base.Clone()
	env.EnvOverrides["CC"] = "clang"
	assert.NotEqual(t, base.Fingerprint(), env.Fingerprint())
}

func TestBuildPlan_Clone(t *testing.T) {
	p := samplePlan()
	c := p.Clone()

	c.ExtraArgs[0] = "-DCHANGED=1"
	c.EnvOverrides["CC"] = "clang"

	assert.Equal(t, "-DFOO=1", p.ExtraArgs[0])
	assert.Equal(t, "gcc", p.EnvOverrides["CC"])
}

func TestSynthesizeBuildDir(t *testing.T) {
	tests := []struct {
		name      string
		platform  domain.Platform
		toolchain domain.Toolchain
		kind      domain.BuildKind
		want      string
	}{
		{"linux release", domain.PlatformLinux, domain.ToolchainNone, domain.BuildRelease, "build/linux/release"},
		{"mac debug", domain.PlatformMac, domain.ToolchainNone, domain.BuildDebug, "build/mac/debug"},
		{"windows msvc", domain.PlatformWindows, domain.ToolchainMSVC, domain.BuildDebug, "build/windows/msvc/debug"},
		{"windows mingw", domain.PlatformWindows, domain.ToolchainMinGW, domain.BuildRelease, "build/windows/mingw/release"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.SynthesizeBuildDir("/src", tt.platform, tt.toolchain, tt.kind)
			assert.Equal(t, filepath.Join("/src", filepath.FromSlash(tt.want)), got)
		})
	}
}

func TestParseHelpers(t *testing.T) {
	p, err := domain.ParsePlatform("Darwin")
	require.NoError(t, err)
	assert.Equal(t, domain.PlatformMac, p)

	_, err = domain.ParsePlatform("solaris")
	require.ErrorIs(t, err, domain.ErrInvalidPlatform)
	assert.Contains(t, err.Error(), `"solaris"`)

	k, err := domain.ParseBuildKind("debug")
	require.NoError(t, err)
	assert.Equal(t, domain.BuildDebug, k)

	_, err = domain.ParseBuildKind("fast")
	require.ErrorIs(t, err, domain.ErrInvalidBuildKind)

	tc, err := domain.ParseToolchain("none")
	require.NoError(t, err)
	assert.Equal(t, domain.ToolchainNone, tc)

	_, err = domain.ParseToolchain("clang")
	require.ErrorIs(t, err, domain.ErrInvalidToolchain)
}

func TestIsMultiConfig(t *testing.T) {
	assert.True(t, domain.IsMultiConfig(domain.GeneratorNinjaMultiConfig))
	assert.True(t, domain.IsMultiConfig("Visual Studio 17 2022"))
	assert.True(t, domain.IsMultiConfig(domain.GeneratorXcode))
	assert.False(t, domain.IsMultiConfig(domain.GeneratorNinja))
	assert.False(t, domain.IsMultiConfig(domain.GeneratorNMakeMakefiles))
}

func TestPlanError(t *testing.T) {
	assert.NoError(t, domain.NewPlanError(nil, nil))

	err := domain.NewPlanError(
		domain.ErrInvalidJobs,
		nil,
		domain.Violation(domain.ErrToolPathMissing, "--cmake /nope"),
	)

	var planErr *domain.PlanError
	require.ErrorAs(t, err, &planErr)
	assert.Len(t, planErr.Violations, 2)
	require.ErrorIs(t, err, domain.ErrInvalidJobs)
	require.ErrorIs(t, err, domain.ErrToolPathMissing)
	assert.NotContains(t, err.Error(), "\n")
	assert.Equal(t,
		"invalid build plan: jobs must be at least 1; --cmake /nope: tool path does not exist",
		err.Error(),
	)
	assert.False(t, errors.Is(err, domain.ErrCommandFailed))
}

func TestExecutionError(t *testing.T) {
	cause := errors.New("exit status 2")
	err := error(&domain.ExecutionError{
		Phase:    domain.PhaseBuild,
		Command:  "cmake --build out",
		ExitCode: 2,
		Err:      cause,
	})

	require.ErrorIs(t, err, domain.ErrCommandFailed)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, "build failed with exit code 2: cmake --build out", err.Error())

	var planErr *domain.PlanError
	assert.False(t, errors.As(err, &planErr))
}

func TestCommand_String(t *testing.T) {
	cmd := domain.Command{Args: []string{"cmake", "-G", "Unix Makefiles", "-DX=", ""}}
	assert.Equal(t, `cmake -G "Unix Makefiles" -DX= ""`, cmd.String())
}

package app_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/telemetry"
	"go.trai.ch/forge/internal/app"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports/mocks"
	"go.trai.ch/forge/internal/engine/orchestrator"
	"go.trai.ch/forge/internal/engine/plan"
	"go.uber.org/mock/gomock"
)

type fakeLocator map[string]string

func (f fakeLocator) LookPath(name string) (string, bool) {
	p, ok := f[name]
	return p, ok
}

var goos = map[domain.Platform]string{
	domain.PlatformLinux:   "linux",
	domain.PlatformMac:     "darwin",
	domain.PlatformWindows: "windows",
}

var finished = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func ptr[T any](v T) *T {
	return &v
}

type harness struct {
	app      *app.App
	loader   *mocks.MockConfigLoader
	store    *mocks.MockStateStore
	runner   *mocks.MockCommandRunner
	logger   *mocks.MockLogger
	out      *bytes.Buffer
	root     string
	commands []domain.Command
	warnings []string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHostHarness(t, domain.PlatformLinux, fakeLocator{"cmake": "/usr/bin/cmake", "ninja": "/usr/bin/ninja"})
}

// newHostHarness builds a harness whose host runs platform and finds only tools.
func newHostHarness(t *testing.T, platform domain.Platform, tools fakeLocator) *harness {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	ctrl := gomock.NewController(t)

	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, domain.ProjectFileName), nil, domain.FilePerm))
	workDir := filepath.Join(root, "src", "ui")
	require.NoError(t, os.MkdirAll(workDir, domain.DirPerm))

	h := &harness{
		loader: mocks.NewMockConfigLoader(ctrl),
		store:  mocks.NewMockStateStore(ctrl),
		runner: mocks.NewMockCommandRunner(ctrl),
		logger: mocks.NewMockLogger(ctrl),
		out:    new(bytes.Buffer),
		root:   root,
	}

	h.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	h.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	h.logger.EXPECT().SetVerbose(gomock.Any()).AnyTimes()
	h.logger.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		h.warnings = append(h.warnings, msg)
	}).AnyTimes()

	host := mocks.NewMockHostProbe(ctrl)
	host.EXPECT().Snapshot().Return(domain.Host{
		GOOS:     goos[platform],
		Platform: platform,
		Env:      domain.NewEnvironment([]string{"PATH=/usr/bin"}, platform == domain.PlatformWindows),
		NumCPU:   8,
		WorkDir:  workDir,
		HomeDir:  "/home/dev",
	}, nil).AnyTimes()

	orch := orchestrator.New(h.runner, tools, telemetry.NewOTelTracer("test"), h.logger)

	h.app = app.New(h.loader, host, plan.NewValidator(), orch, h.store, h.logger).
		WithOutput(h.out).
		WithClock(func() time.Time { return finished })
	return h
}

func (h *harness) expectRuns(failures map[domain.Phase]error) {
	h.runner.EXPECT().Run(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, cmd domain.Command) error {
		h.commands = append(h.commands, cmd)
		return failures[cmd.Phase]
	}).AnyTimes()
}

func (h *harness) expectConfig(layer domain.Layer) {
	h.loader.EXPECT().Load(h.root, "").Return(&domain.ConfigFile{Layer: layer}, nil)
}

func TestBuild_Success(t *testing.T) {
	h := newHarness(t)
	h.expectConfig(domain.Layer{})
	h.expectRuns(nil)

	buildDir := filepath.Join(h.root, "build", "linux", "release")
	h.store.EXPECT().Get(h.root, buildDir).Return(nil, nil)

	var saved domain.BuildRecord
	h.store.EXPECT().Put(h.root, gomock.Any()).DoAndReturn(func(_ string, rec domain.BuildRecord) error {
		saved = rec
		return nil
	})

	err := h.app.Build(context.Background(), app.BuildRequest{})
	require.NoError(t, err)

	require.Len(t, h.commands, 2)
	assert.Contains(t, h.commands[0].Args, "-DCMAKE_BUILD_TYPE=Release")
	assert.Contains(t, h.commands[0].Args, "-DBUILD_GPL3=ON")
	assert.Equal(t, h.root, h.commands[0].Dir)

	assert.Equal(t, buildDir, saved.BuildDir)
	assert.Equal(t, "Ninja", saved.Generator)
	assert.Equal(t, []domain.Phase{domain.PhaseConfigure, domain.PhaseBuild}, saved.Phases)
	assert.Equal(t, finished, saved.FinishedAt)
	assert.NotEmpty(t, saved.Fingerprint)

	assert.Contains(t, h.out.String(), "forge build plan")
	assert.Contains(t, h.out.String(), buildDir)
}

func TestBuild_JobsZeroNeverRuns(t *testing.T) {
	h := newHarness(t)
	h.expectConfig(domain.Layer{})

	err := h.app.Build(context.Background(), app.BuildRequest{
		Overrides: domain.Layer{Jobs: ptr(0)},
	})
	require.ErrorIs(t, err, domain.ErrInvalidJobs)

	var planErr *domain.PlanError
	require.ErrorAs(t, err, &planErr)
	assert.Empty(t, h.out.String())
}

func TestBuild_ConfigError(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load(h.root, "missing.yaml").Return(nil, domain.Violation(domain.ErrConfigNotFound, "missing.yaml"))

	err := h.app.Build(context.Background(), app.BuildRequest{ConfigPath: "missing.yaml"})
	require.ErrorIs(t, err, domain.ErrConfigNotFound)

	var planErr *domain.PlanError
	assert.ErrorAs(t, err, &planErr)
}

func TestBuild_ResolveError(t *testing.T) {
	h := newHarness(t)
	h.expectConfig(domain.Layer{BuildType: ptr("fast")})

	err := h.app.Build(context.Background(), app.BuildRequest{})
	require.ErrorIs(t, err, domain.ErrInvalidBuildKind)
}

func TestBuild_InfoOnly(t *testing.T) {
	h := newHarness(t)
	h.expectConfig(domain.Layer{Info: ptr(true), Clean: ptr(true)})

	buildDir := filepath.Join(h.root, "build", "linux", "release")
	h.store.EXPECT().Get(h.root, buildDir).Return(&domain.BuildRecord{
		BuildDir:    buildDir,
		Fingerprint: "stale",
		FinishedAt:  finished,
	}, nil)

	require.NoError(t, os.MkdirAll(buildDir, domain.DirPerm))

	err := h.app.Build(context.Background(), app.BuildRequest{})
	require.NoError(t, err)

	assert.Empty(t, h.commands)
	assert.DirExists(t, buildDir)
	assert.Contains(t, h.out.String(), "outdated (2026-03-14T09:26:53Z)")
}

func TestBuild_InfoOnlyOnUnpreparedHost(t *testing.T) {
	tools := t.TempDir()
	qtCMake := filepath.Join(tools, "qt-cmake.bat")
	cmake := filepath.Join(tools, "cmake.exe")
	for _, p := range []string{qtCMake, cmake} {
		require.NoError(t, os.WriteFile(p, nil, domain.FilePerm))
	}

	tests := []struct {
		name          string
		platform      domain.Platform
		layer         domain.Layer
		wantGenerator string
		wantWarning   error
	}{
		{
			name:          "no cmake on PATH",
			platform:      domain.PlatformLinux,
			wantGenerator: "unresolved",
			wantWarning:   domain.ErrToolNotFound,
		},
		{
			name:     "msvc outside a developer session",
			platform: domain.PlatformWindows,
			layer: domain.Layer{
				Toolchain: ptr("msvc"),
				QtCMake:   ptr(qtCMake),
				CMake:     ptr(cmake),
			},
			wantGenerator: "unresolved",
			wantWarning:   domain.ErrMSVCSessionMissing,
		},
		{
			name:          "explicit generator is kept",
			platform:      domain.PlatformLinux,
			layer:         domain.Layer{Generator: ptr("Unix Makefiles")},
			wantGenerator: "Unix Makefiles",
			wantWarning:   domain.ErrToolNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHostHarness(t, tt.platform, fakeLocator{})
			tt.layer.Info = ptr(true)
			h.expectConfig(tt.layer)
			h.store.EXPECT().Get(h.root, gomock.Any()).Return(nil, nil)

			err := h.app.Build(context.Background(), app.BuildRequest{})
			require.NoError(t, err)

			assert.Empty(t, h.commands)
			assert.Regexp(t, `generator +`+tt.wantGenerator+`\n`, h.out.String())
			require.Len(t, h.warnings, 1)
			assert.Contains(t, h.warnings[0], "plan cannot run on this host")
			assert.Contains(t, h.warnings[0], tt.wantWarning.Error())
		})
	}
}

func TestBuild_UnpreparedHostFailsWithoutInfo(t *testing.T) {
	h := newHostHarness(t, domain.PlatformLinux, fakeLocator{})
	h.expectConfig(domain.Layer{})

	err := h.app.Build(context.Background(), app.BuildRequest{})

	var planErr *domain.PlanError
	require.ErrorAs(t, err, &planErr)
	assert.ErrorIs(t, err, domain.ErrToolNotFound)
	assert.Empty(t, h.out.String())
}

func TestBuild_DryRunKeepsNoRecord(t *testing.T) {
	h := newHarness(t)
	h.expectConfig(domain.Layer{})
	h.expectRuns(nil)
	h.store.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil)

	err := h.app.Build(context.Background(), app.BuildRequest{
		Overrides: domain.Layer{DryRun: ptr(true)},
	})
	require.NoError(t, err)

	require.Len(t, h.commands, 2)
	for _, c := range h.commands {
		assert.True(t, c.DryRun)
	}
	assert.NoDirExists(t, filepath.Join(h.root, "build"))
}

func TestBuild_ExecutionErrorPropagates(t *testing.T) {
	h := newHarness(t)
	h.expectConfig(domain.Layer{})

	buildErr := &domain.ExecutionError{Phase: domain.PhaseBuild, Command: "cmake --build", ExitCode: 2}
	h.expectRuns(map[domain.Phase]error{domain.PhaseBuild: buildErr})
	h.store.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil)

	err := h.app.Build(context.Background(), app.BuildRequest{})
	assert.Same(t, buildErr, err)
}

func TestBuild_CLIOverridesConfig(t *testing.T) {
	h := newHarness(t)
	h.expectConfig(domain.Layer{
		BuildType: ptr("Release"),
		ExtraArgs: []string{"-DFROM_CONFIG=1"},
		Env:       map[string]string{"CC": "gcc", "CXX": "g++"},
	})
	h.expectRuns(nil)
	h.store.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil)
	h.store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(nil)

	err := h.app.Build(context.Background(), app.BuildRequest{
		Overrides: domain.Layer{
			BuildType: ptr("debug"),
			ExtraArgs: []string{"-DFROM_CLI=1"},
			Env:       map[string]string{"CC": "clang"},
		},
	})
	require.NoError(t, err)

	configure := h.commands[0]
	assert.Contains(t, configure.Args, "-DCMAKE_BUILD_TYPE=Debug")
	n := len(configure.Args)
	assert.Equal(t, []string{"-DFROM_CONFIG=1", "-DFROM_CLI=1"}, configure.Args[n-2:])
	assert.Equal(t, "clang", configure.Env.Get("CC"))
	assert.Equal(t, "g++", configure.Env.Get("CXX"))
}

func TestBuild_RelativeBuildDirWarns(t *testing.T) {
	h := newHarness(t)
	h.expectConfig(domain.Layer{BuildDir: ptr("out")})
	h.store.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil)

	err := h.app.Build(context.Background(), app.BuildRequest{
		Overrides: domain.Layer{Info: ptr(true)},
	})
	require.NoError(t, err)

	require.Len(t, h.warnings, 1)
	assert.Contains(t, h.warnings[0], `relative build directory "out" ignored`)
}

func TestBuild_RecordFailureIsNotFatal(t *testing.T) {
	h := newHarness(t)
	h.expectConfig(domain.Layer{})
	h.expectRuns(nil)
	h.store.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, errors.New("corrupted"))
	h.store.EXPECT().Put(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	err := h.app.Build(context.Background(), app.BuildRequest{})
	require.NoError(t, err)

	require.Len(t, h.warnings, 1)
	assert.Contains(t, h.warnings[0], "disk full")
	assert.Contains(t, h.out.String(), "last build     none")
}

func TestBuild_SourceOverride(t *testing.T) {
	h := newHarness(t)
	other := filepath.Join(h.root, "src")

	h.loader.EXPECT().Load(other, "").Return(&domain.ConfigFile{}, nil)
	h.store.EXPECT().Get(other, filepath.Join(other, "build", "linux", "release")).Return(nil, nil)

	err := h.app.Build(context.Background(), app.BuildRequest{
		Source:    "..",
		Overrides: domain.Layer{Info: ptr(true)},
	})
	require.NoError(t, err)
	assert.Contains(t, h.out.String(), "source         "+other)
}

func TestBuild_Interrupted(t *testing.T) {
	h := newHarness(t)
	h.expectConfig(domain.Layer{})
	h.store.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := h.app.Build(ctx, app.BuildRequest{})
	require.ErrorIs(t, err, domain.ErrInterrupted)
	assert.Empty(t, h.commands)
}

func TestBuild_ConfigPathExpandsHome(t *testing.T) {
	h := newHarness(t)
	h.loader.EXPECT().Load(h.root, filepath.Join("/home/dev", "configs", "forge.json")).
		Return(&domain.ConfigFile{Layer: domain.Layer{Info: ptr(true)}}, nil)
	h.store.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, nil)

	err := h.app.Build(context.Background(), app.BuildRequest{ConfigPath: "~/configs/forge.json"})
	require.NoError(t, err)
}

package config_test

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/config"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func newLoader(t *testing.T, files fstest.MapFS) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	return config.NewLoaderWithFS(log, config.NewRootedFS("/src", files))
}

func TestLoader_Load_YAML(t *testing.T) {
	loader := newLoader(t, fstest.MapFS{
		"forge.yaml": &fstest.MapFile{Data: []byte(`
platform: windows
build_type: debug
toolchain: msvc
jobs: 0
sanitizer: true
production: false
commercial: true
qt_root: C:/Qt/6.7.2/msvc2019_64
env_overrides:
  CC: cl
  FOO: bar
extra_args: ["-DA=1"]
cmake_args: ["-DB=2"]
future_option: 42
`)},
	})

	cfg, err := loader.Load("/src", "")
	require.NoError(t, err)

	assert.Equal(t, "/src/forge.yaml", cfg.Path)
	layer := cfg.Layer
	require.NotNil(t, layer.Platform)
	assert.Equal(t, "windows", *layer.Platform)
	assert.Equal(t, "debug", *layer.BuildType)
	assert.Equal(t, "msvc", *layer.Toolchain)
	require.NotNil(t, layer.Jobs, "an explicit 0 must survive decoding")
	assert.Equal(t, 0, *layer.Jobs)
	require.NotNil(t, layer.Production)
	assert.False(t, *layer.Production)
	assert.True(t, *layer.Sanitizer)
	require.NotNil(t, layer.GPLOnly)
	assert.False(t, *layer.GPLOnly)
	assert.Nil(t, layer.Clean)
	assert.Nil(t, layer.Generator)
	assert.Equal(t, map[string]string{"CC": "cl", "FOO": "bar"}, layer.Env)
	assert.Equal(t, []string{"-DA=1", "-DB=2"}, layer.ExtraArgs)
	assert.Equal(t, map[string]any{"future_option": 42}, cfg.Extra)
}

func TestLoader_Load_JSON(t *testing.T) {
	loader := newLoader(t, fstest.MapFS{
		"ci.json": &fstest.MapFile{Data: []byte(`{"platform": "linux", "jobs": 8, "run_app": false}`)},
	})

	cfg, err := loader.Load("/src", "/src/ci.json")
	require.NoError(t, err)

	assert.Equal(t, "linux", *cfg.Layer.Platform)
	assert.Equal(t, 8, *cfg.Layer.Jobs)
	assert.False(t, *cfg.Layer.RunApp)
	assert.Empty(t, cfg.Extra)
}

func TestLoader_Load_HCL(t *testing.T) {
	loader := newLoader(t, fstest.MapFS{
		"forge.hcl": &fstest.MapFile{Data: []byte(`
platform   = "mac"
build_type = "Release"
jobs       = 12
production = true
extra_args = ["-DCMAKE_OSX_ARCHITECTURES=arm64"]
env_overrides = {
  MACOSX_DEPLOYMENT_TARGET = "12.0"
}
notarize = true
`)},
	})

	cfg, err := loader.Load("/src", "")
	require.NoError(t, err)

	assert.Equal(t, "/src/forge.hcl", cfg.Path)
	assert.Equal(t, "mac", *cfg.Layer.Platform)
	assert.Equal(t, 12, *cfg.Layer.Jobs)
	assert.True(t, *cfg.Layer.Production)
	assert.Nil(t, cfg.Layer.Sanitizer)
	assert.Equal(t, []string{"-DCMAKE_OSX_ARCHITECTURES=arm64"}, cfg.Layer.ExtraArgs)
	assert.Equal(t, map[string]string{"MACOSX_DEPLOYMENT_TARGET": "12.0"}, cfg.Layer.Env)
	assert.Equal(t, map[string]any{"notarize": true}, cfg.Extra)
}

func TestLoader_Load_ToolPathAliases(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		data        string
		wantQtCMake string
		wantCMake   string
	}{
		{
			name: "yaml binary keys",
			file: "forge.yaml",
			data: `
qt_cmake_binary: C:/Qt/6.7.2/msvc2019_64/bin/qt-cmake.bat
cmake_binary: C:/Qt/Tools/CMake_64/bin/cmake.exe
`,
			wantQtCMake: "C:/Qt/6.7.2/msvc2019_64/bin/qt-cmake.bat",
			wantCMake:   "C:/Qt/Tools/CMake_64/bin/cmake.exe",
		},
		{
			name: "current keys win",
			file: "forge.json",
			data: `{"qt_cmake": "/opt/qt/bin/qt-cmake", "qt_cmake_binary": "/old/qt-cmake", "cmake_binary": "/usr/bin/cmake"}`,
			wantQtCMake: "/opt/qt/bin/qt-cmake",
			wantCMake:   "/usr/bin/cmake",
		},
		{
			name: "hcl binary keys",
			file: "forge.hcl",
			data: `
qt_cmake_binary = "/opt/qt/bin/qt-cmake"
cmake_binary    = "/usr/local/bin/cmake"
`,
			wantQtCMake: "/opt/qt/bin/qt-cmake",
			wantCMake:   "/usr/local/bin/cmake",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := newLoader(t, fstest.MapFS{tt.file: &fstest.MapFile{Data: []byte(tt.data)}})

			cfg, err := loader.Load("/src", "")
			require.NoError(t, err)

			require.NotNil(t, cfg.Layer.QtCMake)
			require.NotNil(t, cfg.Layer.CMake)
			assert.Equal(t, tt.wantQtCMake, *cfg.Layer.QtCMake)
			assert.Equal(t, tt.wantCMake, *cfg.Layer.CMake)
			assert.Empty(t, cfg.Extra)
		})
	}
}

func TestLoader_Load_Discovery(t *testing.T) {
	t.Run("no file", func(t *testing.T) {
		cfg, err := newLoader(t, fstest.MapFS{}).Load("/src", "")
		require.NoError(t, err)
		assert.Empty(t, cfg.Path)
		assert.Nil(t, cfg.Layer.Platform)
	})

	t.Run("yaml wins over hcl", func(t *testing.T) {
		cfg, err := newLoader(t, fstest.MapFS{
			"forge.hcl":  &fstest.MapFile{Data: []byte(`jobs = 1`)},
			"forge.yaml": &fstest.MapFile{Data: []byte(`jobs: 2`)},
		}).Load("/src", "")
		require.NoError(t, err)
		assert.Equal(t, 2, *cfg.Layer.Jobs)
	})

	t.Run("empty file", func(t *testing.T) {
		cfg, err := newLoader(t, fstest.MapFS{
			"forge.yaml": &fstest.MapFile{Data: []byte("")},
		}).Load("/src", "")
		require.NoError(t, err)
		assert.Equal(t, "/src/forge.yaml", cfg.Path)
	})
}

func TestLoader_Load_Errors(t *testing.T) {
	files := fstest.MapFS{
		"list.json":  &fstest.MapFile{Data: []byte(`["not", "an", "object"]`)},
		"broken.yml": &fstest.MapFile{Data: []byte("platform: [unterminated")},
		"types.yaml": &fstest.MapFile{Data: []byte("jobs: eight")},
		"bad.hcl":    &fstest.MapFile{Data: []byte(`jobs = `)},
		"dir":        &fstest.MapFile{Mode: fs.ModeDir | 0o755},
	}

	tests := []struct {
		name string
		path string
		want error
	}{
		{"missing", "/src/nope.yaml", domain.ErrConfigNotFound},
		{"outside the project", "/etc/forge.yaml", domain.ErrConfigNotFound},
		{"not an object", "/src/list.json", domain.ErrConfigNotObject},
		{"malformed yaml", "/src/broken.yml", domain.ErrConfigParseFailed},
		{"wrong type", "/src/types.yaml", domain.ErrConfigParseFailed},
		{"malformed hcl", "/src/bad.hcl", domain.ErrConfigParseFailed},
		{"directory", "/src/dir", domain.ErrConfigReadFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newLoader(t, files).Load("/src", tt.path)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

package commands

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.trai.ch/forge/internal/app"
	"go.trai.ch/forge/internal/core/domain"
)

func registerBuildFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.SortFlags = false

	f.StringP("config", "c", "", "Path to a YAML, JSON or HCL configuration file")
	f.StringP("source", "S", "", "Project root (default: nearest directory with CMakeLists.txt)")

	f.String("platform", "", "Target platform: mac, windows or linux (default: host)")
	f.StringP("build-type", "t", "Release", "CMake build type: Release or Debug")
	f.String("toolchain", "", "Windows toolchain: msvc or mingw")
	f.StringP("generator", "G", "", "Explicit CMake generator")
	f.StringP("build-dir", "B", "", "Absolute build directory (default: build/<platform>/[<toolchain>/]<type>)")
	f.IntP("jobs", "j", 0, "Maximum parallel build jobs (default: number of CPUs)")

	f.Bool("clean", false, "Delete the build directory before configuring")
	f.BoolP("dry-run", "n", false, "Print commands without executing them")
	f.Bool("configure-only", false, "Run the configure step without building")
	f.Bool("production", false, "Enable production optimizations (Release only)")
	f.Bool("sanitizer", false, "Enable sanitizers (Debug only)")
	f.Bool("run", false, "Launch the application after the build")
	f.Bool("package", false, "Build the package target after the build")
	f.Bool("info", false, "Print the resolved build plan and exit")
	f.BoolP("verbose", "v", false, "Verbose logging and build output")
	f.Bool("commercial", false, "Commercial build (disables the GPL-only flag)")

	f.String("qt-root", "", "Qt installation used for this build")
	f.String("qt-tools-root", "", "Auxiliary Qt tools, e.g. the MinGW toolchain")
	f.String("qt-cmake", "", "Explicit path to qt-cmake (required on windows)")
	f.String("cmake", "", "Explicit path to cmake (required on windows)")
	f.String("c-compiler", "", "Explicit path to the C compiler")
	f.String("cxx-compiler", "", "Explicit path to the C++ compiler")
	f.String("make-program", "", "Explicit path to the make program")
	f.String("qmake", "", "Explicit path to qmake")
	f.String("app-name", domain.DefaultAppName, "Name of the built application")

	f.StringArray("env", nil, "Environment override in KEY=VALUE form (repeatable)")
	f.StringArray("cmake-arg", nil, "Argument passed to the configure step (repeatable)")
}

func (c *CLI) runBuild(cmd *cobra.Command, args []string) error {
	req, err := buildRequest(cmd.Flags(), args, cmd.ArgsLenAtDash())
	if err != nil {
		return err
	}
	return c.app.Build(cmd.Context(), req)
}

// buildRequest turns the flags the user passed into an override layer.
// Unchanged flags stay nil so config values and defaults still apply.
func buildRequest(f *pflag.FlagSet, args []string, dash int) (app.BuildRequest, error) {
	if dash < 0 {
		dash = len(args)
	}
	if dash > 0 {
		return app.BuildRequest{}, domain.NewPlanError(domain.Violation(domain.ErrUnexpectedArgument, args[0]))
	}

	env, err := parseEnv(stringArray(f, "env"))
	if err != nil {
		return app.BuildRequest{}, err
	}

	layer := domain.Layer{
		Platform:  stringFlag(f, "platform"),
		BuildType: stringFlag(f, "build-type"),
		Toolchain: stringFlag(f, "toolchain"),
		Generator: stringFlag(f, "generator"),
		BuildDir:  stringFlag(f, "build-dir"),
		Jobs:      intFlag(f, "jobs"),

		Clean:         boolFlag(f, "clean"),
		DryRun:        boolFlag(f, "dry-run"),
		ConfigureOnly: boolFlag(f, "configure-only"),
		Production:    boolFlag(f, "production"),
		Sanitizer:     boolFlag(f, "sanitizer"),
		RunApp:        boolFlag(f, "run"),
		Package:       boolFlag(f, "package"),
		Info:          boolFlag(f, "info"),
		Verbose:       boolFlag(f, "verbose"),

		QtRoot:      stringFlag(f, "qt-root"),
		QtToolsRoot: stringFlag(f, "qt-tools-root"),
		AppName:     stringFlag(f, "app-name"),

		QtCMake:     stringFlag(f, "qt-cmake"),
		CMake:       stringFlag(f, "cmake"),
		CCompiler:   stringFlag(f, "c-compiler"),
		CXXCompiler: stringFlag(f, "cxx-compiler"),
		MakeProgram: stringFlag(f, "make-program"),
		QMake:       stringFlag(f, "qmake"),

		Env: env,
	}

	if commercial := boolFlag(f, "commercial"); commercial != nil {
		gplOnly := !*commercial
		layer.GPLOnly = &gplOnly
	}

	if extra := append(stringArray(f, "cmake-arg"), args[dash:]...); len(extra) > 0 {
		layer.ExtraArgs = extra
	}

	configPath, _ := f.GetString("config")
	source, _ := f.GetString("source")
	return app.BuildRequest{
		ConfigPath: configPath,
		Source:     source,
		Overrides:  layer,
	}, nil
}

func parseEnv(entries []string) (map[string]string, error) {
	if len(entries) == 0 {
		return nil, nil
	}

	env := make(map[string]string, len(entries))
	var violations []error
	for _, entry := range entries {
		key, value, ok := strings.Cut(entry, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			violations = append(violations, domain.Violation(domain.ErrInvalidEnvOverride, entry))
			continue
		}
		env[key] = value
	}
	if err := domain.NewPlanError(violations...); err != nil {
		return nil, err
	}
	return env, nil
}

func stringFlag(f *pflag.FlagSet, name string) *string {
	if !f.Changed(name) {
		return nil
	}
	v, _ := f.GetString(name)
	return &v
}

func boolFlag(f *pflag.FlagSet, name string) *bool {
	if !f.Changed(name) {
		return nil
	}
	v, _ := f.GetBool(name)
	return &v
}

func intFlag(f *pflag.FlagSet, name string) *int {
	if !f.Changed(name) {
		return nil
	}
	v, _ := f.GetInt(name)
	return &v
}

func stringArray(f *pflag.FlagSet, name string) []string {
	v, _ := f.GetStringArray(name)
	return v
}

package domain

// Layer is one source of build options. Nil pointers mean "not supplied", so a
// config value of false or 0 is never mistaken for an absent one.
type Layer struct {
	Platform  *string
	BuildType *string
	Toolchain *string
	Generator *string
	BuildDir  *string
	Jobs      *int

	Clean         *bool
	DryRun        *bool
	ConfigureOnly *bool
	Production    *bool
	Sanitizer     *bool
	RunApp        *bool
	Package       *bool
	Info          *bool
	Verbose       *bool
	GPLOnly       *bool

	QtRoot      *string
	QtToolsRoot *string
	AppName     *string

	QtCMake     *string
	CMake       *string
	CCompiler   *string
	CXXCompiler *string
	MakeProgram *string
	QMake       *string

	ExtraArgs []string
	Env       map[string]string
}

// ConfigFile is the decoded configuration file.
type ConfigFile struct {
	// Path is empty when no file was loaded.
	Path  string
	Layer Layer
	// Extra holds unrecognised top-level keys. They are kept but never resolved.
	Extra map[string]any
}

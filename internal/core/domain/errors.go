package domain

import (
	"fmt"
	"strings"

	"go.trai.ch/zerr"
)

var (
	// ErrInterrupted is returned when a user-originated signal cancels the run.
	ErrInterrupted = zerr.New("interrupted")

	// ErrCommandFailed is matched by every ExecutionError.
	ErrCommandFailed = zerr.New("command failed")

	// ErrCommandStart is returned when an external command could not be spawned.
	ErrCommandStart = zerr.New("failed to start command")

	// ErrEmptyCommand is returned when a command has no arguments.
	ErrEmptyCommand = zerr.New("empty command")

	// ErrArtifactNotFound is returned when the run phase cannot find the built application.
	ErrArtifactNotFound = zerr.New("build artifact not found")

	// ErrCleanFailed is returned when the build directory cannot be removed.
	ErrCleanFailed = zerr.New("failed to remove build directory")

	// ErrBuildDirCreateFailed is returned when the build directory cannot be created.
	ErrBuildDirCreateFailed = zerr.New("failed to create build directory")

	// ErrUnsupportedPlatform is returned when the host operating system is not mac, windows or linux.
	ErrUnsupportedPlatform = zerr.New("unsupported host platform")

	// ErrInvalidPlatform is returned for an unknown platform name.
	ErrInvalidPlatform = zerr.New("invalid platform, expected mac, windows or linux")

	// ErrInvalidBuildKind is returned for an unknown build type.
	ErrInvalidBuildKind = zerr.New("invalid build type, expected Release or Debug")

	// ErrInvalidToolchain is returned for an unknown toolchain name.
	ErrInvalidToolchain = zerr.New("invalid toolchain, expected msvc or mingw")

	// ErrInvalidJobs is returned when parallelism is below one.
	ErrInvalidJobs = zerr.New("jobs must be at least 1")

	// ErrToolchainNotAllowed is returned when a toolchain is set for a non-windows platform.
	ErrToolchainNotAllowed = zerr.New("toolchain selection is only supported on windows")

	// ErrToolchainRequired is returned for windows plans without a toolchain.
	ErrToolchainRequired = zerr.New("windows builds require a toolchain (msvc or mingw)")

	// ErrSanitizerRequiresDebug is returned when the sanitizer is enabled on a non-Debug build.
	ErrSanitizerRequiresDebug = zerr.New("sanitizer requires a Debug build")

	// ErrProductionRequiresRelease is returned when production optimizations are enabled on a non-Release build.
	ErrProductionRequiresRelease = zerr.New("production optimizations require a Release build")

	// ErrToolPathRequired is returned on windows when an explicit tool path is missing.
	ErrToolPathRequired = zerr.New("explicit tool path is required on windows")

	// ErrToolPathMissing is returned when an explicit tool path does not exist.
	ErrToolPathMissing = zerr.New("tool path does not exist")

	// ErrSDKRootMissing is returned when the Qt root does not exist.
	ErrSDKRootMissing = zerr.New("qt root does not exist")

	// ErrSDKRootInvalid is returned when the Qt root contains neither bin nor lib.
	ErrSDKRootInvalid = zerr.New("qt root does not look like a Qt installation (no bin or lib directory)")

	// ErrSDKToolsRootInvalid is returned when the Qt tools root is missing or not a directory.
	ErrSDKToolsRootInvalid = zerr.New("qt tools root is not a directory")

	// ErrNoGenerator is returned when none of the preferred generators is available.
	ErrNoGenerator = zerr.New("no supported CMake generator found")

	// ErrMSVCSessionMissing is returned when the MSVC strategy runs outside a developer environment.
	ErrMSVCSessionMissing = zerr.New("MSVC environment not detected, run from a Developer Command Prompt or after vcvarsall.bat")

	// ErrToolNotFound is returned when cmake or qt-cmake cannot be resolved.
	ErrToolNotFound = zerr.New("tool not found")

	// ErrInvalidEnvOverride is returned for an environment override that is not KEY=VALUE.
	ErrInvalidEnvOverride = zerr.New("invalid environment override, expected KEY=VALUE")

	// ErrUnexpectedArgument is returned for positional arguments that precede the -- separator.
	ErrUnexpectedArgument = zerr.New("unexpected argument, pass generator arguments after --")

	// ErrConfigNotFound is returned when an explicit config file does not exist.
	ErrConfigNotFound = zerr.New("config file not found")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigNotObject is returned when the config document is not a mapping.
	ErrConfigNotObject = zerr.New("config file must contain an object at the top level")

	// ErrWorkDirFailed is returned when the working directory cannot be determined.
	ErrWorkDirFailed = zerr.New("failed to determine working directory")

	// ErrStoreCreateFailed is returned when the state directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create state directory")

	// ErrStoreReadFailed is returned when a build record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read build record")

	// ErrStoreUnmarshalFailed is returned when a build record cannot be decoded.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal build record")

	// ErrStoreMarshalFailed is returned when a build record cannot be encoded.
	ErrStoreMarshalFailed = zerr.New("failed to marshal build record")

	// ErrStoreWriteFailed is returned when a build record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write build record")
)

// Violation wraps a sentinel with a detail message while keeping errors.Is intact.
func Violation(sentinel error, detail string) error {
	return zerr.Wrap(sentinel, detail)
}

// Cause joins a sentinel with the underlying error so both match errors.Is.
func Cause(sentinel, cause error) error {
	return fmt.Errorf("%w: %w", sentinel, cause)
}

// PlanError reports every problem found while resolving or validating a build plan.
// It is raised before any external process is spawned.
type PlanError struct {
	Violations []error
}

// NewPlanError returns a PlanError for the given violations, or nil if there are none.
func NewPlanError(violations ...error) error {
	filtered := make([]error, 0, len(violations))
	for _, v := range violations {
		if v != nil {
			filtered = append(filtered, v)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	return &PlanError{Violations: filtered}
}

func (e *PlanError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Error())
	}
	return "invalid build plan: " + strings.Join(msgs, "; ")
}

// Unwrap exposes each violation to errors.Is and errors.As.
func (e *PlanError) Unwrap() []error {
	return e.Violations
}

// ExecutionError reports an external command that did not complete successfully.
type ExecutionError struct {
	Phase    Phase
	Command  string
	ExitCode int
	Err      error
}

func (e *ExecutionError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf("%s failed: %s: %v", e.Phase, e.Command, e.Err)
	}
	return fmt.Sprintf("%s failed with exit code %d: %s", e.Phase, e.ExitCode, e.Command)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// Is makes every ExecutionError match ErrCommandFailed.
func (e *ExecutionError) Is(target error) bool {
	return target == ErrCommandFailed
}

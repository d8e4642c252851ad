package ports

// ToolLocator finds executables on the host search path.
//
//go:generate mockgen -source=locator.go -destination=mocks/mock_locator.go -package=mocks
type ToolLocator interface {
	// LookPath returns the absolute path of the named executable and whether it was found.
	LookPath(name string) (string, bool)
}

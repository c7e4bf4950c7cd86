package types

// Version is the relmake version, set at build time via -ldflags
var Version = "dev"

// Registry identifies a package index that accepts pushed wheels
type Registry string

const (
	RegistryPyPI     Registry = "pypi"
	RegistryTestPyPI Registry = "testpypi"
)

func (r Registry) String() string {
	return string(r)
}

// Status is the outcome of a single delegated operation
type Status string

const (
	StatusOK Status = "ok"
)

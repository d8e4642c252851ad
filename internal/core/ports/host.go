package ports

import "go.trai.ch/forge/internal/core/domain"

// HostProbe captures the state of the running process.
//
//go:generate mockgen -source=host.go -destination=mocks/mock_host.go -package=mocks
type HostProbe interface {
	Snapshot() (domain.Host, error)
}

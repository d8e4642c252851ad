package platform

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/forge/internal/core/ports"
)

// NodeID is the graft identifier of the host probe.
const NodeID graft.ID = "adapter.host_probe"

func init() {
	graft.Register(graft.Node[ports.HostProbe]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.HostProbe, error) {
			return NewProbe(), nil
		},
	})
}

package plan

import (
	"context"

	"github.com/grindlemire/graft"
)

// ValidatorNodeID is the graft identifier of the plan validator.
const ValidatorNodeID graft.ID = "engine.validator"

func init() {
	graft.Register(graft.Node[*Validator]{
		ID:        ValidatorNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Validator, error) {
			return NewValidator(), nil
		},
	})
}

package flowgen

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/flowlock/internal/adapters/config"
	"go.trai.ch/flowlock/internal/adapters/shell"
	"go.trai.ch/flowlock/internal/core/domain"
	"go.trai.ch/flowlock/internal/core/ports"
)

// NodeID is the unique identifier for the converter Graft node.
const NodeID graft.ID = "adapter.converter"

func init() {
	graft.Register(graft.Node[ports.Converter]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.Converter, error) {
			runner, err := graft.Dep[*shell.Runner](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewConverter(runner, cfg), nil
		},
	})
}

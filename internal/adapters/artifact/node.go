package artifact

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/viant/afs"
	"go.trai.ch/flowlock/internal/adapters/config"
	"go.trai.ch/flowlock/internal/core/domain"
	"go.trai.ch/flowlock/internal/core/ports"
)

// NodeID is the unique identifier for the artifact store Graft node.
const NodeID graft.ID = "adapter.artifact_store"

func init() {
	graft.Register(graft.Node[ports.ArtifactStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.ArtifactStore, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(afs.New(), cfg.Root), nil
		},
	})
}

package npm

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/flowlock/internal/adapters/config"
	"go.trai.ch/flowlock/internal/core/domain"
	"go.trai.ch/flowlock/internal/core/ports"
)

const (
	// ManifestNodeID is the unique identifier for the manifest reader Graft node.
	ManifestNodeID graft.ID = "adapter.manifest_reader"

	// ProjectNodeID is the unique identifier for the project loader Graft node.
	ProjectNodeID graft.ID = "adapter.project_loader"
)

func init() {
	graft.Register(graft.Node[ports.ManifestReader]{
		ID:        ManifestNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.ManifestReader, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewManifestReader(cfg.Root), nil
		},
	})

	graft.Register(graft.Node[ports.ProjectLoader]{
		ID:        ProjectNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.ProjectLoader, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewProjectLoader(cfg.Root), nil
		},
	})
}

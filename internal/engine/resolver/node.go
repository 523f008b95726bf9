package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/flowlock/internal/adapters/artifact"
	"go.trai.ch/flowlock/internal/adapters/config"
	"go.trai.ch/flowlock/internal/adapters/flowgen"
	"go.trai.ch/flowlock/internal/adapters/flowtyped"
	"go.trai.ch/flowlock/internal/adapters/logger"
	"go.trai.ch/flowlock/internal/adapters/npm"
	"go.trai.ch/flowlock/internal/adapters/pkgmanager"
	"go.trai.ch/flowlock/internal/adapters/telemetry/progrock"
	"go.trai.ch/flowlock/internal/core/domain"
	"go.trai.ch/flowlock/internal/core/ports"
)

// NodeID is the unique identifier for the resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			npm.ManifestNodeID,
			flowtyped.NodeID,
			flowgen.NodeID,
			pkgmanager.NodeID,
			artifact.NodeID,
			logger.NodeID,
			progrock.NodeID,
			config.SettingsNodeID,
		},
		Run: func(ctx context.Context) (*Resolver, error) {
			manifests, err := graft.Dep[ports.ManifestReader](ctx)
			if err != nil {
				return nil, err
			}

			registry, err := graft.Dep[ports.TypeRegistry](ctx)
			if err != nil {
				return nil, err
			}

			converter, err := graft.Dep[ports.Converter](ctx)
			if err != nil {
				return nil, err
			}

			installer, err := graft.Dep[ports.PackageInstaller](ctx)
			if err != nil {
				return nil, err
			}

			artifacts, err := graft.Dep[ports.ArtifactStore](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			tel, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}

			return New(manifests, registry, converter, installer, artifacts, log, tel, cfg.FlowTypedDir), nil
		},
	})
}

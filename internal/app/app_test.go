package app_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/flowlock/internal/adapters/telemetry"
	"go.trai.ch/flowlock/internal/app"
	"go.trai.ch/flowlock/internal/core/domain"
	"go.trai.ch/flowlock/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// fakeResolver assigns tiers from a fixed table and records call order.
type fakeResolver struct {
	outcomes map[string]domain.Resolution
	errs     map[string]error
	calls    []string
}

func (f *fakeResolver) Resolve(_ context.Context, lock *domain.Lockfile, name string) (domain.Resolution, error) {
	f.calls = append(f.calls, name)
	if err := f.errs[name]; err != nil {
		return domain.Unresolved(name), err
	}
	res, ok := f.outcomes[name]
	if !ok {
		lock.SetTier(domain.TierCustom, domain.CanonicalKey(name), "")
		return domain.Unresolved(name), nil
	}
	lock.SetTier(res.Tier, res.Key, res.Path)
	return res, nil
}

type fixture struct {
	projects  *mocks.MockProjectLoader
	locks     *mocks.MockLockfileStore
	manifests *mocks.MockManifestReader
	logger    *mocks.MockLogger
	resolver  *fakeResolver
	app       *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		projects:  mocks.NewMockProjectLoader(ctrl),
		locks:     mocks.NewMockLockfileStore(ctrl),
		manifests: mocks.NewMockManifestReader(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		resolver: &fakeResolver{
			outcomes: map[string]domain.Resolution{
				"immutable": domain.Resolved("immutable", domain.TierNativeBuiltin, ""),
				"react":     domain.Resolved("react", domain.TierCommunityRegistry, ""),
				"left-pad":  domain.Resolved("left-pad", domain.TierConverted, "flow-typed/flowgen/left-pad_v1.3.0.js"),
				"odd":       domain.Resolved("odd", domain.TierStub, "flow-typed/npm/odd_vx.x.x.js"),
			},
			errs: map[string]error{},
		},
	}
	f.app = app.New(f.projects, f.locks, f.manifests, f.resolver, f.logger, telemetry.NewNoOp())
	return f
}

func TestApp_Run_Batch(t *testing.T) {
	f := newFixture(t)

	f.projects.EXPECT().Load(gomock.Any()).Return(&domain.Project{
		Name:            "my-app",
		Dependencies:    []string{"react", "left-pad", "immutable"},
		DevDependencies: []string{"odd", "react", "mystery"},
	}, nil)
	f.locks.EXPECT().Load().Return(domain.NewLockfile(), nil)

	var saved *domain.Lockfile
	f.locks.EXPECT().Save(gomock.Any()).DoAndReturn(func(lock *domain.Lockfile) error {
		saved = lock
		return nil
	})
	f.logger.EXPECT().Info("resolved 5 packages (builtin=1 flowTyped=1 flowgen=1 stub=1 unresolved=1)")

	err := f.app.Run(context.Background(), app.RunOptions{})
	require.NoError(t, err)

	assert.Equal(t, []string{"react", "left-pad", "immutable", "odd", "mystery"}, f.resolver.calls)
	require.NotNil(t, saved)

	tier, path, ok := saved.TierOf("left-pad")
	require.True(t, ok)
	assert.Equal(t, domain.TierConverted, tier)
	assert.Equal(t, "flow-typed/flowgen/left-pad_v1.3.0.js", path)

	tier, _, ok = saved.TierOf("mystery")
	require.True(t, ok)
	assert.Equal(t, domain.TierCustom, tier)
}

func TestApp_Run_Batch_ProjectLoadError(t *testing.T) {
	f := newFixture(t)
	f.projects.EXPECT().Load(gomock.Any()).Return(nil, domain.ErrProjectManifestNotFound)

	err := f.app.Run(context.Background(), app.RunOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load project")
	assert.Empty(t, f.resolver.calls)
}

func TestApp_Run_Batch_LockfileLoadError(t *testing.T) {
	f := newFixture(t)
	f.projects.EXPECT().Load(gomock.Any()).Return(&domain.Project{Dependencies: []string{"react"}}, nil)
	f.locks.EXPECT().Load().Return(nil, domain.ErrLockfileParseFailed)

	err := f.app.Run(context.Background(), app.RunOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load lockfile")
	assert.Empty(t, f.resolver.calls)
}

func TestApp_Run_Batch_FatalErrorSkipsSave(t *testing.T) {
	f := newFixture(t)
	f.resolver.errs["broken"] = domain.NewTierError(domain.FailureStubGeneration, "broken", errors.New("create-stub failed"))

	f.projects.EXPECT().Load(gomock.Any()).Return(&domain.Project{
		Dependencies: []string{"react", "broken", "left-pad"},
	}, nil)
	f.locks.EXPECT().Load().Return(domain.NewLockfile(), nil)
	// Save must not be called.

	err := f.app.Run(context.Background(), app.RunOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolution aborted")
	assert.Contains(t, err.Error(), "create-stub failed")
	assert.Equal(t, []string{"react", "broken"}, f.resolver.calls)
}

func TestApp_Run_Batch_SaveError(t *testing.T) {
	f := newFixture(t)
	f.projects.EXPECT().Load(gomock.Any()).Return(&domain.Project{}, nil)
	f.locks.EXPECT().Load().Return(domain.NewLockfile(), nil)
	f.locks.EXPECT().Save(gomock.Any()).Return(domain.ErrLockfileWriteFailed)

	err := f.app.Run(context.Background(), app.RunOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save lockfile")
}

func TestApp_Run_Single(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		want    string
	}{
		{"converted", "left-pad", "left-pad\tflowgen\tflow-typed/flowgen/left-pad_v1.3.0.js\n"},
		{"no path", "react", "react\tflowTyped\n"},
		{"unresolved", "mystery", "mystery\tunresolved\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.locks.EXPECT().Load().Return(domain.NewLockfile(), nil)
			// Single-package mode never persists.

			var out bytes.Buffer
			err := f.app.Run(context.Background(), app.RunOptions{Pattern: tt.pattern, Out: &out})
			require.NoError(t, err)

			assert.Equal(t, tt.want, out.String())
			assert.Equal(t, []string{tt.pattern}, f.resolver.calls)
		})
	}
}

func TestApp_Run_Single_RangeIsInformational(t *testing.T) {
	f := newFixture(t)
	f.locks.EXPECT().Load().Return(domain.NewLockfile(), nil)
	f.manifests.EXPECT().Read(gomock.Any(), "left-pad").Return(&domain.Manifest{Name: "left-pad", Version: "1.3.0"}, nil)
	f.logger.EXPECT().Warn("installed left-pad@1.3.0 does not satisfy ^2.0.0")

	var out bytes.Buffer
	err := f.app.Run(context.Background(), app.RunOptions{Pattern: "left-pad@^2.0.0", Out: &out})
	require.NoError(t, err)

	assert.Equal(t, []string{"left-pad"}, f.resolver.calls)
	assert.Equal(t, "left-pad\tflowgen\tflow-typed/flowgen/left-pad_v1.3.0.js\n", out.String())
}

func TestApp_Run_Single_RangeSatisfied(t *testing.T) {
	f := newFixture(t)
	f.locks.EXPECT().Load().Return(domain.NewLockfile(), nil)
	f.manifests.EXPECT().Read(gomock.Any(), "@scope/react").Return(&domain.Manifest{Version: "18.2.0"}, nil)

	f.resolver.outcomes["@scope/react"] = domain.Resolved("@scope/react", domain.TierCommunityRegistry, "")

	err := f.app.Run(context.Background(), app.RunOptions{Pattern: "@scope/react@^18.0.0"})
	require.NoError(t, err)
	assert.Equal(t, []string{"@scope/react"}, f.resolver.calls)
}

func TestApp_Run_Single_FatalError(t *testing.T) {
	f := newFixture(t)
	f.resolver.errs["x"] = domain.NewTierError(domain.FailureStubGeneration, "x", errors.New("boom"))
	f.locks.EXPECT().Load().Return(domain.NewLockfile(), nil)

	err := f.app.Run(context.Background(), app.RunOptions{Pattern: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolution aborted")
}

func TestApp_Run_ClosesTelemetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	projects := mocks.NewMockProjectLoader(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	tel := mocks.NewMockTelemetry(ctrl)

	projects.EXPECT().Load(gomock.Any()).Return(nil, domain.ErrProjectManifestNotFound)
	tel.EXPECT().Close().Return(errors.New("flush failed"))
	logger.EXPECT().Warn("failed to close telemetry: flush failed")

	a := app.New(projects, mocks.NewMockLockfileStore(ctrl), mocks.NewMockManifestReader(ctrl), &fakeResolver{}, logger, tel)

	err := a.Run(context.Background(), app.RunOptions{})
	require.Error(t, err)
}

func TestApp_Status(t *testing.T) {
	f := newFixture(t)

	lock := domain.NewLockfile()
	lock.SetTier(domain.TierNativeBuiltin, "immutable", "")
	lock.SetTier(domain.TierConverted, "left-pad", "flow-typed/flowgen/left-pad_v1.3.0.js")
	lock.SetTier(domain.TierCustom, "@babel/core", "")
	f.locks.EXPECT().Load().Return(lock, nil)

	var out bytes.Buffer
	require.NoError(t, f.app.Status(context.Background(), &out))

	want := "PACKAGE      TIER     PATH\n" +
		"@babel/core  custom   -\n" +
		"immutable    builtin  -\n" +
		"left-pad     flowgen  flow-typed/flowgen/left-pad_v1.3.0.js\n"
	assert.Equal(t, want, out.String())
}

func TestApp_Status_Empty(t *testing.T) {
	f := newFixture(t)
	f.locks.EXPECT().Load().Return(domain.NewLockfile(), nil)

	var out bytes.Buffer
	require.NoError(t, f.app.Status(context.Background(), &out))
	assert.Equal(t, "no packages recorded\n", out.String())
}

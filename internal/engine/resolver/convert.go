package resolver

import (
	"context"
	"fmt"
	"path"
	"strings"

	"go.trai.ch/flowlock/internal/core/domain"
	"go.trai.ch/flowlock/internal/core/ports"
	"go.trai.ch/zerr"
)

const typesSuffix = ".d.ts"

// banner heads every converted definition file.
const banner = `/**
 * Flow library definition for '%s', converted from its TypeScript declarations.
 *
 * The conversion is mechanical: review it and fix any errors before relying on it.
 * Finished definitions can be contributed back to
 * https://github.com/flowtype/flow-typed
 */
`

// convert produces a definition from the package's TypeScript declarations.
// Conversion failures fall back to a flow-typed stub; an unreadable entry point
// yields a *domain.TierError so delegation can be tried.
func (r *Resolver) convert(ctx context.Context, pkg, key string) (domain.Resolution, error) {
	manifest, err := r.manifests.Read(ctx, pkg)
	if err != nil {
		return domain.Resolution{}, domain.NewTierError(domain.FailureManifestNotFound, pkg, err)
	}

	source, err := r.readTypings(ctx, pkg, manifest.TypingsEntry())
	if err != nil {
		return domain.Resolution{}, domain.NewTierError(domain.FailureTypingsNotFound, pkg, err)
	}

	target := domain.ConvertedPath(r.flowTypedDir, key, manifest.Version)
	if err := r.generate(ctx, key, ModuleSource(key, string(source)), target); err != nil {
		tierErr := domain.NewTierError(domain.FailureConversion, pkg, err)
		r.logger.Debug(tierErr.Error())
		return r.stub(ctx, pkg, key)
	}

	return domain.Resolved(pkg, domain.TierConverted, target), nil
}

// readTypings reads the first existing candidate for the declared entry point.
func (r *Resolver) readTypings(ctx context.Context, pkg, entry string) ([]byte, error) {
	var lastErr error
	for _, candidate := range typingsCandidates(entry) {
		file, err := r.manifests.ResolveFile(ctx, pkg, candidate)
		if err != nil {
			lastErr = err
			continue
		}

		data, err := r.artifacts.Read(ctx, file)
		if err != nil {
			lastErr = err
			continue
		}
		return data, nil
	}

	return nil, zerr.With(zerr.Wrap(lastErr, domain.ErrTypingsNotFound.Error()), "entry", entry)
}

// typingsCandidates lists the files an entry point may refer to, in lookup order.
func typingsCandidates(entry string) []string {
	if strings.HasSuffix(entry, typesSuffix) {
		return []string{entry}
	}
	return []string{entry, entry + typesSuffix, path.Join(entry, domain.DefaultTypingsEntry)}
}

// ModuleSource returns the converter input for key.
// Declarations that already declare the module are used verbatim; anything
// else is wrapped in a module declaration.
func ModuleSource(key, declarations string) string {
	if strings.Contains(declarations, "declare module '"+key+"'") ||
		strings.Contains(declarations, `declare module "`+key+`"`) {
		return declarations
	}
	return "\ndeclare module '" + key + "' {\n  " + declarations + "\n};\n"
}

// generate converts, formats and writes the definition to target.
func (r *Resolver) generate(ctx context.Context, key, source, target string) error {
	compiled, err := r.converter.Compile(ctx, source)
	if err != nil {
		return err
	}

	formatted, err := r.converter.Format(ctx, compiled)
	if err != nil {
		return err
	}

	content := fmt.Sprintf(banner, key) + formatted
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	changed, err := r.artifacts.Write(ctx, target, []byte(content))
	if err != nil {
		return err
	}
	if !changed {
		if vertex, ok := ports.VertexFromContext(ctx); ok {
			vertex.Cached()
		}
	}
	return nil
}

// stub asks flow-typed for a stub definition. Failing here aborts the run.
func (r *Resolver) stub(ctx context.Context, pkg, key string) (domain.Resolution, error) {
	stubPath, err := r.registry.CreateStub(ctx, key)
	if err != nil {
		return domain.Resolution{}, domain.NewTierError(domain.FailureStubGeneration, pkg, err)
	}
	if stubPath == "" {
		stubPath = domain.StubPath(r.flowTypedDir, key)
	}
	return domain.Resolved(pkg, domain.TierStub, stubPath), nil
}

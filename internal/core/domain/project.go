package domain

// Project is the root package.json of the project being resolved.
// Dependency names keep their declaration order.
type Project struct {
	Name            string
	Dependencies    []string
	DevDependencies []string
}

// DependencyNames returns runtime then development dependencies, each name once.
func (p *Project) DependencyNames() []string {
	seen := make(map[string]struct{}, len(p.Dependencies)+len(p.DevDependencies))
	names := make([]string, 0, len(p.Dependencies)+len(p.DevDependencies))
	for _, group := range [][]string{p.Dependencies, p.DevDependencies} {
		for _, name := range group {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

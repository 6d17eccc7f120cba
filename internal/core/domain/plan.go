package domain

// Plan is the resolved work of a single invocation.
type Plan struct {
	// Root is the directory relative step paths resolve against.
	Root string
	// Requested are the target names asked for on the command line.
	Requested []string
	// Targets are the targets to make, prerequisites first.
	Targets []Target
}

// NewPlan resolves the requested names against g.
// An empty request selects the default target.
func NewPlan(g *Graph, root string, requested []string) (*Plan, error) {
	if len(requested) == 0 && g.Default() != "" {
		requested = []string{g.Default()}
	}
	targets, err := g.Plan(requested)
	if err != nil {
		return nil, err
	}
	return &Plan{Root: root, Requested: requested, Targets: targets}, nil
}

// Names returns the target names in execution order.
func (p *Plan) Names() []string {
	names := make([]string, len(p.Targets))
	for i, t := range p.Targets {
		names[i] = t.Name
	}
	return names
}

// Dependencies returns the prerequisite map of the planned targets.
func (p *Plan) Dependencies() map[string][]string {
	deps := make(map[string][]string, len(p.Targets))
	for _, t := range p.Targets {
		deps[t.Name] = t.Dependencies
	}
	return deps
}

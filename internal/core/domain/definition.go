package domain

import "time"

// CalcConfig is one named calculation configuration within a view: a set of
// portfolio-level output names plus specific requirements addressed at
// individual targets.
type CalcConfig struct {
	Name string
	// PortfolioOutputs are value names demanded for every position and
	// aggregate node of the view's portfolio.
	PortfolioOutputs []string
	// SpecificRequirements address a value at one concrete target.
	SpecificRequirements []ValueRequirement
}

// ViewDefinition declares what a view computes and how eagerly it recomputes.
type ViewDefinition struct {
	UID       UniqueID
	Name      string
	Portfolio ObjectID
	Configs   []CalcConfig

	// MinRecomputePeriod suppresses delta cycles arriving faster than this.
	// Zero means no suppression.
	MinRecomputePeriod time.Duration
	// MaxRecomputePeriod forces a cycle when this long has passed since the
	// last one. Zero means never force.
	MaxRecomputePeriod time.Duration
	// MaxDeltaCycles bounds how many delta cycles may run between full
	// recomputations. Zero means unbounded.
	MaxDeltaCycles int
}

// Config returns the named calculation configuration.
func (d *ViewDefinition) Config(name string) (CalcConfig, bool) {
	for _, c := range d.Configs {
		if c.Name == name {
			return c, true
		}
	}
	return CalcConfig{}, false
}

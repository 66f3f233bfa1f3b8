package domain

import (
	"sort"
	"strings"
	"unique"
)

// TargetKind classifies the computation targets a dependency node may produce
// values against. Dispatch over target kinds is resolved once at node creation
// time, never per call.
type TargetKind uint8

const (
	// KindPrimitive is a raw market data or constant target.
	KindPrimitive TargetKind = iota
	// KindSecurity targets a security definition.
	KindSecurity
	// KindPosition targets a single position.
	KindPosition
	// KindTrade targets a single trade within a position.
	KindTrade
	// KindPortfolioNode targets an aggregation node of the portfolio tree.
	KindPortfolioNode
	// KindPortfolio targets the portfolio root.
	KindPortfolio
)

var targetKindNames = [...]string{"PRIMITIVE", "SECURITY", "POSITION", "TRADE", "PORTFOLIO_NODE", "PORTFOLIO"}

// String returns the kind's canonical name.
func (k TargetKind) String() string {
	if int(k) < len(targetKindNames) {
		return targetKindNames[k]
	}
	return "UNKNOWN"
}

// TargetReference identifies a computation target prior to resolution: a kind and
// an external identifier that a resolver turns into a versioned UniqueID.
type TargetReference struct {
	Kind TargetKind
	ID   ExternalID
}

// String returns the canonical "KIND/scheme~value" form.
func (r TargetReference) String() string {
	return r.Kind.String() + "/" + r.ID.String()
}

// TargetSpec is a resolved computation target: a kind and the concrete versioned
// identifier resolution produced.
type TargetSpec struct {
	Kind TargetKind
	UID  UniqueID
}

// String returns the canonical "KIND/scheme~value~version" form.
func (s TargetSpec) String() string {
	return s.Kind.String() + "/" + s.UID.String()
}

// Properties is an immutable, canonically ordered constraint or property set. The
// canonical encoding makes the whole value comparable, so requirements and
// specifications can be map keys and interned.
type Properties struct {
	enc string
}

// EmptyProperties is the property set with no entries.
var EmptyProperties = Properties{}

// NewProperties builds a property set from a map of name to values. Values are
// sorted so structurally identical sets compare equal.
func NewProperties(m map[string][]string) Properties {
	if len(m) == 0 {
		return Properties{}
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(';')
		}
		vals := append([]string(nil), m[k]...)
		sort.Strings(vals)
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(strings.Join(vals, "|"))
	}
	return Properties{enc: b.String()}
}

// IsEmpty reports whether the set has no entries.
func (p Properties) IsEmpty() bool {
	return p.enc == ""
}

// String returns the canonical encoding.
func (p Properties) String() string {
	return p.enc
}

// ValueRequirement is a request for a named output on a target, with constraints,
// prior to resolution. Requirements are structurally identical across many cycles,
// so they are comparable values and interned for cheap identity comparison.
type ValueRequirement struct {
	ValueName   string
	Target      TargetReference
	Constraints Properties
}

// String renders "name on KIND/scheme~value {constraints}".
func (r ValueRequirement) String() string {
	s := r.ValueName + " on " + r.Target.String()
	if !r.Constraints.IsEmpty() {
		s += " {" + r.Constraints.String() + "}"
	}
	return s
}

// InternRequirement deduplicates a requirement so repeated compilations share one
// canonical copy.
func InternRequirement(r ValueRequirement) ValueRequirement {
	return unique.Make(r).Value()
}

// ValueSpecification is a resolved, fully qualified producible output: the
// requirement's target reference replaced by the resolved target and the
// producing function's property set attached.
type ValueSpecification struct {
	ValueName  string
	Target     TargetSpec
	Properties Properties
}

// String renders "name on KIND/scheme~value~version {properties}".
func (s ValueSpecification) String() string {
	out := s.ValueName + " on " + s.Target.String()
	if !s.Properties.IsEmpty() {
		out += " {" + s.Properties.String() + "}"
	}
	return out
}

// SpecSet is a set of value specifications.
type SpecSet map[ValueSpecification]struct{}

// NewSpecSet builds a set from the given specifications.
func NewSpecSet(specs ...ValueSpecification) SpecSet {
	set := make(SpecSet, len(specs))
	for _, s := range specs {
		set[s] = struct{}{}
	}
	return set
}

// Add inserts a specification.
func (s SpecSet) Add(spec ValueSpecification) {
	s[spec] = struct{}{}
}

// Contains reports membership.
func (s SpecSet) Contains(spec ValueSpecification) bool {
	_, ok := s[spec]
	return ok
}

// AddAll inserts every specification from other.
func (s SpecSet) AddAll(other SpecSet) {
	for spec := range other {
		s[spec] = struct{}{}
	}
}

// Clone returns an independent copy.
func (s SpecSet) Clone() SpecSet {
	out := make(SpecSet, len(s))
	for spec := range s {
		out[spec] = struct{}{}
	}
	return out
}

// ReqSet is a set of value requirements.
type ReqSet map[ValueRequirement]struct{}

// Add inserts a requirement.
func (s ReqSet) Add(req ValueRequirement) {
	s[req] = struct{}{}
}

// Contains reports membership.
func (s ReqSet) Contains(req ValueRequirement) bool {
	_, ok := s[req]
	return ok
}

// AddAll inserts every requirement from other.
func (s ReqSet) AddAll(other ReqSet) {
	for req := range other {
		s[req] = struct{}{}
	}
}

// Package domain contains the core domain models for the view computation engine:
// value requirements and specifications, dependency graphs, compiled views and the
// identifier scheme used to pin resolutions of mutable reference data.
package domain

import (
	"strings"
	"time"
	"unique"
)

// ExternalID identifies an entity within an external naming scheme, for example a
// ticker within a market data vendor's namespace. It is comparable and cheap to
// copy, so it is used directly as a map key throughout the engine.
type ExternalID struct {
	Scheme string
	Value  string
}

// NewExternalID creates an ExternalID from a scheme and value.
func NewExternalID(scheme, value string) ExternalID {
	return ExternalID{Scheme: scheme, Value: value}
}

// ParseExternalID parses the canonical "scheme~value" form. Input without a
// separator becomes a scheme-less identifier.
func ParseExternalID(s string) ExternalID {
	scheme, value, ok := strings.Cut(s, "~")
	if !ok {
		return ExternalID{Value: s}
	}
	return ExternalID{Scheme: scheme, Value: value}
}

// IsEmpty reports whether the identifier carries no value.
func (id ExternalID) IsEmpty() bool {
	return id.Scheme == "" && id.Value == ""
}

// String returns the canonical "scheme~value" form.
func (id ExternalID) String() string {
	return id.Scheme + "~" + id.Value
}

// ObjectID identifies a versionable entity independently of any particular version.
type ObjectID struct {
	Scheme string
	Value  string
}

// String returns the canonical "scheme~value" form.
func (id ObjectID) String() string {
	return id.Scheme + "~" + id.Value
}

// UniqueID identifies one exact version of an entity. Two resolutions of the same
// object at different versions compare unequal.
type UniqueID struct {
	Scheme  string
	Value   string
	Version string
}

// NewUniqueID creates a UniqueID from a scheme, value and version.
func NewUniqueID(scheme, value, version string) UniqueID {
	return UniqueID{Scheme: scheme, Value: value, Version: version}
}

// ParseUniqueID parses the canonical "scheme~value~version" form. Missing
// components are left empty.
func ParseUniqueID(s string) UniqueID {
	parts := strings.SplitN(s, "~", 3)
	uid := UniqueID{}
	if len(parts) > 0 {
		uid.Scheme = parts[0]
	}
	if len(parts) > 1 {
		uid.Value = parts[1]
	}
	if len(parts) > 2 {
		uid.Version = parts[2]
	}
	return uid
}

// IsEmpty reports whether the identifier carries no value.
func (id UniqueID) IsEmpty() bool {
	return id == UniqueID{}
}

// ObjectID strips the version component.
func (id UniqueID) ObjectID() ObjectID {
	return ObjectID{Scheme: id.Scheme, Value: id.Value}
}

// String returns the canonical "scheme~value~version" form, omitting empty
// trailing segments so parsing the result yields the same identifier.
func (id UniqueID) String() string {
	if id.Version != "" {
		return id.Scheme + "~" + id.Value + "~" + id.Version
	}
	if id.Value != "" {
		return id.Scheme + "~" + id.Value
	}
	return id.Scheme
}

// VersionCorrection is the two-dimensional timestamp pinning the resolution of
// mutable reference data: the version of the data as of one instant, corrected as
// of another. A zero instant in either dimension means "latest".
type VersionCorrection struct {
	VersionAsOf time.Time
	CorrectedTo time.Time
}

// VersionCorrectionLatest resolves both dimensions at their latest values.
var VersionCorrectionLatest = VersionCorrection{}

// IsLatest reports whether either dimension floats at "latest".
func (vc VersionCorrection) IsLatest() bool {
	return vc.VersionAsOf.IsZero() || vc.CorrectedTo.IsZero()
}

// WithLatestFixed substitutes the given instant for any floating dimension,
// producing a fully fixed version-correction suitable for locking and caching.
func (vc VersionCorrection) WithLatestFixed(now time.Time) VersionCorrection {
	fixed := vc
	if fixed.VersionAsOf.IsZero() {
		fixed.VersionAsOf = now
	}
	if fixed.CorrectedTo.IsZero() {
		fixed.CorrectedTo = now
	}
	return fixed
}

// String renders "versionAsOf/correctedTo" with "LATEST" for floating dimensions.
func (vc VersionCorrection) String() string {
	var b strings.Builder
	if vc.VersionAsOf.IsZero() {
		b.WriteString("LATEST")
	} else {
		b.WriteString(vc.VersionAsOf.UTC().Format(time.RFC3339Nano))
	}
	b.WriteByte('/')
	if vc.CorrectedTo.IsZero() {
		b.WriteString("LATEST")
	} else {
		b.WriteString(vc.CorrectedTo.UTC().Format(time.RFC3339Nano))
	}
	return b.String()
}

// InternedString wraps a unique.Handle[string] to deduplicate the many repeated
// names (value names, calculation configurations, schemes) the engine carries
// across cycles.
type InternedString struct {
	h unique.Handle[string]
}

// NewInternedString interns the given string.
func NewInternedString(s string) InternedString {
	return InternedString{h: unique.Make(s)}
}

// String returns the underlying string value.
func (is InternedString) String() string {
	return is.h.Value()
}

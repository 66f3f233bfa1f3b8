package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/vista/internal/core/domain"
)

func TestUniqueID_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want domain.UniqueID
	}{
		{
			name: "Full",
			in:   "DbSec~1234~7",
			want: domain.NewUniqueID("DbSec", "1234", "7"),
		},
		{
			name: "No Version",
			in:   "DbSec~1234",
			want: domain.NewUniqueID("DbSec", "1234", ""),
		},
		{
			name: "Scheme Only",
			in:   "DbSec",
			want: domain.UniqueID{Scheme: "DbSec"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.ParseUniqueID(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.in, got.String())
		})
	}
}

func TestUniqueID_ObjectID(t *testing.T) {
	uid := domain.NewUniqueID("DbSec", "1234", "7")
	assert.Equal(t, domain.ObjectID{Scheme: "DbSec", Value: "1234"}, uid.ObjectID())

	other := domain.NewUniqueID("DbSec", "1234", "8")
	assert.NotEqual(t, uid, other)
	assert.Equal(t, uid.ObjectID(), other.ObjectID())
}

func TestVersionCorrection_WithLatestFixed(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	fixed := domain.VersionCorrectionLatest.WithLatestFixed(now)
	assert.False(t, fixed.IsLatest())
	assert.Equal(t, now, fixed.VersionAsOf)
	assert.Equal(t, now, fixed.CorrectedTo)

	earlier := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	partial := domain.VersionCorrection{VersionAsOf: earlier}
	assert.True(t, partial.IsLatest())
	fixed = partial.WithLatestFixed(now)
	assert.Equal(t, earlier, fixed.VersionAsOf)
	assert.Equal(t, now, fixed.CorrectedTo)

	// Already fixed stays untouched.
	assert.Equal(t, fixed, fixed.WithLatestFixed(now.Add(time.Hour)))
}

func TestProperties_CanonicalForm(t *testing.T) {
	a := domain.NewProperties(map[string][]string{
		"Currency": {"USD"},
		"Curve":    {"Forward", "Discount"},
	})
	b := domain.NewProperties(map[string][]string{
		"Curve":    {"Discount", "Forward"},
		"Currency": {"USD"},
	})

	// Key and value ordering must not affect equality.
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, domain.EmptyProperties)
	assert.True(t, domain.EmptyProperties.IsEmpty())

	reqs := make(domain.ReqSet)
	reqs.Add(domain.ValueRequirement{ValueName: "Present Value", Constraints: a})
	assert.True(t, reqs.Contains(domain.ValueRequirement{ValueName: "Present Value", Constraints: b}))
}

func TestExecutionFlags_Has(t *testing.T) {
	flags := domain.FlagTriggerCycleOnTimeElapsed | domain.FlagAwaitMarketData

	assert.True(t, flags.Has(domain.FlagAwaitMarketData))
	assert.True(t, flags.Has(domain.FlagTriggerCycleOnTimeElapsed|domain.FlagAwaitMarketData))
	assert.False(t, flags.Has(domain.FlagRunAsFastAsPossible))
	assert.False(t, flags.Has(domain.FlagAwaitMarketData|domain.FlagCompileOnly))
}

func TestCycleSequence(t *testing.T) {
	t.Run("Infinite", func(t *testing.T) {
		md := domain.MarketDataSpec{Provider: "live", Live: true}
		seq := domain.NewInfiniteSequence(md, domain.VersionCorrectionLatest)

		require.False(t, seq.Empty())
		now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		opts, ok := seq.Next(now)
		require.True(t, ok)
		assert.Equal(t, now, opts.ValuationTime)
		assert.Equal(t, md, opts.MarketData)
		assert.False(t, seq.Empty())
	})

	t.Run("Finite", func(t *testing.T) {
		first := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		second := first.Add(24 * time.Hour)
		seq := domain.NewFiniteSequence([]domain.CycleOptions{
			{ValuationTime: first},
			{ValuationTime: second},
		})

		require.False(t, seq.Empty())
		opts, ok := seq.Next(time.Now())
		require.True(t, ok)
		assert.Equal(t, first, opts.ValuationTime)

		opts, ok = seq.Next(time.Now())
		require.True(t, ok)
		assert.Equal(t, second, opts.ValuationTime)

		require.True(t, seq.Empty())
		_, ok = seq.Next(time.Now())
		assert.False(t, ok)
	})
}

func TestCompiledView_IsValidFor(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	tests := []struct {
		name      string
		view      *domain.CompiledView
		valuation time.Time
		want      bool
	}{
		{
			name:      "Unbounded",
			view:      &domain.CompiledView{},
			valuation: from,
			want:      true,
		},
		{
			name:      "Inside Window",
			view:      &domain.CompiledView{ValidFrom: from, ValidTo: to},
			valuation: from.Add(time.Hour),
			want:      true,
		},
		{
			name:      "Before Window",
			view:      &domain.CompiledView{ValidFrom: from, ValidTo: to},
			valuation: from.Add(-time.Second),
			want:      false,
		},
		{
			name:      "At Exclusive Upper Bound",
			view:      &domain.CompiledView{ValidFrom: from, ValidTo: to},
			valuation: to,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.view.IsValidFor(tt.valuation))
		})
	}
}

package domain

import "time"

// ExecutionFlags tune how the cycle worker schedules and runs cycles.
type ExecutionFlags uint16

const (
	// FlagAwaitMarketData delays the first cycle until every market data
	// subscription has been acknowledged or failed.
	FlagAwaitMarketData ExecutionFlags = 1 << iota
	// FlagTriggerCycleOnTimeElapsed arms the recomputation period triggers.
	FlagTriggerCycleOnTimeElapsed
	// FlagTriggerCycleOnMarketDataChanged makes incoming market data ticks
	// request delta cycles.
	FlagTriggerCycleOnMarketDataChanged
	// FlagRunAsFastAsPossible runs cycles back to back with no trigger wait.
	FlagRunAsFastAsPossible
	// FlagWaitForInitialTrigger holds the first cycle until one is requested
	// explicitly.
	FlagWaitForInitialTrigger
	// FlagCompileOnly compiles the view for each cycle without executing it.
	FlagCompileOnly
	// FlagFetchMarketDataOnly snapshots market data without computing.
	FlagFetchMarketDataOnly
	// FlagSkipCycleOnNoMarketData skips a cycle whose snapshot indicates no
	// data arrived.
	FlagSkipCycleOnNoMarketData
	// FlagIgnoreCompilationValidity keeps using a compilation outside its
	// validity window instead of recompiling.
	FlagIgnoreCompilationValidity
)

// Has reports whether all given flags are set.
func (f ExecutionFlags) Has(flags ExecutionFlags) bool {
	return f&flags == flags
}

// ExecutionOptions configure one worker attachment to a view.
type ExecutionOptions struct {
	Flags ExecutionFlags
	// MarketData selects the provider the worker subscribes through.
	MarketData MarketDataSpec
	// VersionCorrection locks target resolution; latest components are fixed
	// at compile time.
	VersionCorrection VersionCorrection
	Sequence          CycleSequence
}

// MarketDataSpec identifies a market data provider configuration.
type MarketDataSpec struct {
	Provider string
	// Live selects ticking data; false selects a fixed snapshot.
	Live bool
	// Snapshot names the fixed snapshot when Live is false.
	Snapshot UniqueID
}

// CycleOptions describe one cycle to execute.
type CycleOptions struct {
	ValuationTime     time.Time
	MarketData        MarketDataSpec
	VersionCorrection VersionCorrection
}

// CycleSequence yields the options for successive cycles. Implementations are
// not safe for concurrent use; the worker owns its sequence.
type CycleSequence interface {
	// Next returns the options for the next cycle. valuation is the trigger
	// time for sequences that valuate "now". ok is false once exhausted.
	Next(valuation time.Time) (opts CycleOptions, ok bool)
	// Empty reports whether the sequence is exhausted without consuming.
	Empty() bool
}

type infiniteSequence struct {
	marketData MarketDataSpec
	vc         VersionCorrection
}

// NewInfiniteSequence yields unbounded cycles valuing at the trigger time.
func NewInfiniteSequence(md MarketDataSpec, vc VersionCorrection) CycleSequence {
	return &infiniteSequence{marketData: md, vc: vc}
}

func (s *infiniteSequence) Next(valuation time.Time) (CycleOptions, bool) {
	return CycleOptions{ValuationTime: valuation, MarketData: s.marketData, VersionCorrection: s.vc}, true
}

func (s *infiniteSequence) Empty() bool { return false }

type finiteSequence struct {
	remaining []CycleOptions
}

// NewFiniteSequence yields the given cycles in order, then reports exhaustion.
func NewFiniteSequence(cycles []CycleOptions) CycleSequence {
	return &finiteSequence{remaining: cycles}
}

func (s *finiteSequence) Next(time.Time) (CycleOptions, bool) {
	if len(s.remaining) == 0 {
		return CycleOptions{}, false
	}
	next := s.remaining[0]
	s.remaining = s.remaining[1:]
	return next, true
}

func (s *finiteSequence) Empty() bool { return len(s.remaining) == 0 }

package domain

// Canonical producing-function names shared between graph compilation and
// cycle execution. A node's Function selects its computation once, at node
// creation; execution never re-dispatches.
const (
	// FunctionMarketData marks a leaf sourcing its output from the live
	// data snapshot.
	FunctionMarketData = "MarketDataSourcing"
	// FunctionPositionScaling scales a security's market value by the
	// position's quantity.
	FunctionPositionScaling = "PositionScaling"
	// FunctionSumAggregation sums the values of a portfolio node's children
	// and positions.
	FunctionSumAggregation = "SumAggregation"
	// FunctionSecurityPricing produces a security-level value from its
	// market data.
	FunctionSecurityPricing = "SecurityPricing"
)

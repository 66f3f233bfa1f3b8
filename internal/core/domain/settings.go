package domain

import "time"

// FeedSettings configures the upstream live data connection.
type FeedSettings struct {
	// URL is the websocket endpoint of the upstream feed.
	URL string
	// ReconnectMin and ReconnectMax bound the exponential backoff between
	// reconnect attempts.
	ReconnectMin time.Duration
	ReconnectMax time.Duration
}

// MarketDataSettings configures the live market data provider.
type MarketDataSettings struct {
	// Schemes lists the external identifier schemes the upstream serves.
	Schemes []string
	Feed    FeedSettings
}

// LoggingSettings configures the process logger.
type LoggingSettings struct {
	JSON  bool
	Level string
}

// Settings is the process configuration loaded from vista.yaml.
type Settings struct {
	MarketData MarketDataSettings
	// Views lists the view definition files to load and watch.
	Views []string
	// Portfolios lists declarative portfolio files seeded into the reference
	// data store at startup.
	Portfolios []string
	Logging    LoggingSettings
}

// PortfolioData is a declarative portfolio tree loaded from configuration,
// prior to versioning by the reference data store.
type PortfolioData struct {
	ID   ObjectID
	Name string
	Root *PortfolioNode
}

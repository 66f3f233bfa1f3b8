package domain

import "go.trai.ch/zerr"

var (
	// ErrNodeAlreadyInGraph is returned when adding a node a graph already contains.
	ErrNodeAlreadyInGraph = zerr.New("node already in graph")

	// ErrMissingProducer is returned when a node's input has no producer in the graph.
	ErrMissingProducer = zerr.New("no producer for input specification")

	// ErrNodeNotInGraph is returned when operating on a node the graph does not contain.
	ErrNodeNotInGraph = zerr.New("node not in graph")

	// ErrConfigNotFound is returned when a view definition has no calculation
	// configuration with the requested name.
	ErrConfigNotFound = zerr.New("calculation configuration not found")

	// ErrTargetNotResolved is returned when a target reference cannot be resolved
	// at the requested version correction.
	ErrTargetNotResolved = zerr.New("target not resolved")

	// ErrSequenceExhausted is returned when a finite cycle sequence has no cycles left.
	ErrSequenceExhausted = zerr.New("cycle sequence exhausted")

	// ErrViewNotCompiled is returned when cycle execution is attempted before compilation.
	ErrViewNotCompiled = zerr.New("view not compiled")

	// ErrWorkerTerminated is returned when an operation reaches a worker that has shut down.
	ErrWorkerTerminated = zerr.New("worker terminated")

	// ErrMarketDataUnavailable is returned when a provider cannot satisfy a subscription.
	ErrMarketDataUnavailable = zerr.New("market data unavailable")

	// ErrSnapshotNotInitialized is returned when a snapshot is queried before Init.
	ErrSnapshotNotInitialized = zerr.New("snapshot not initialized")

	// ErrUnknownProvider is returned when a market data specification names a
	// provider no resolver knows about.
	ErrUnknownProvider = zerr.New("unknown market data provider")

	// ErrSettingsNotFound is returned when no vista.yaml is found in the
	// working directory or any parent.
	ErrSettingsNotFound = zerr.New("settings file not found")

	// ErrInvalidSettings is returned when a configuration file fails validation.
	ErrInvalidSettings = zerr.New("invalid settings")

	// ErrUnknownFunction is returned when a graph node names a computation
	// function no engine has registered.
	ErrUnknownFunction = zerr.New("unknown computation function")

	// ErrCycleNotAwaiting is returned when Execute is called on a cycle that is
	// not awaiting execution.
	ErrCycleNotAwaiting = zerr.New("cycle not awaiting execution")

	// ErrCycleDestroyed is returned when a destroyed cycle is used.
	ErrCycleDestroyed = zerr.New("cycle destroyed")

	// ErrNoViewsConfigured is returned when a run is requested but no view
	// definitions are configured or selected.
	ErrNoViewsConfigured = zerr.New("no views configured")
)

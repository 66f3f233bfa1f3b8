package config

// vistaFile represents the structure of the vista.yaml configuration file.
type vistaFile struct {
	Version    string        `yaml:"version"`
	Logging    loggingDTO    `yaml:"logging"`
	MarketData marketDataDTO `yaml:"market_data"`
	Views      []string      `yaml:"views"`
	Portfolios []string      `yaml:"portfolios"`
}

type loggingDTO struct {
	JSON  bool   `yaml:"json"`
	Level string `yaml:"level"`
}

type marketDataDTO struct {
	Schemes []string `yaml:"schemes"`
	Feed    feedDTO  `yaml:"feed"`
}

type feedDTO struct {
	URL          string `yaml:"url"`
	ReconnectMin string `yaml:"reconnect_min"`
	ReconnectMax string `yaml:"reconnect_max"`
}

// viewFile represents one view definition file.
type viewFile struct {
	Name           string      `yaml:"name"`
	Portfolio      string      `yaml:"portfolio"`
	MinRecompute   string      `yaml:"min_recompute"`
	MaxRecompute   string      `yaml:"max_recompute"`
	MaxDeltaCycles int         `yaml:"max_delta_cycles"`
	Configs        []configDTO `yaml:"configs"`
}

type configDTO struct {
	Name             string           `yaml:"name"`
	PortfolioOutputs []string         `yaml:"portfolio_outputs"`
	Requirements     []requirementDTO `yaml:"requirements"`
}

type requirementDTO struct {
	Value       string              `yaml:"value"`
	Kind        string              `yaml:"kind"`
	ID          string              `yaml:"id"`
	Constraints map[string][]string `yaml:"constraints"`
}

// portfolioFile represents one declarative portfolio tree.
type portfolioFile struct {
	ID   string           `yaml:"id"`
	Name string           `yaml:"name"`
	Root portfolioNodeDTO `yaml:"root"`
}

type portfolioNodeDTO struct {
	ID        string             `yaml:"id"`
	Name      string             `yaml:"name"`
	Children  []portfolioNodeDTO `yaml:"children"`
	Positions []positionDTO      `yaml:"positions"`
}

type positionDTO struct {
	ID       string     `yaml:"id"`
	Security string     `yaml:"security"`
	Quantity float64    `yaml:"quantity"`
	Trades   []tradeDTO `yaml:"trades"`
}

type tradeDTO struct {
	ID       string  `yaml:"id"`
	Security string  `yaml:"security"`
	Quantity float64 `yaml:"quantity"`
}

package ports

import "go.trai.ch/vista/internal/core/domain"

// ConfigLoader loads the process settings and view definitions from YAML.
//
//go:generate mockgen -source=config.go -destination=mocks/mock_config.go -package=mocks
type ConfigLoader interface {
	// Load discovers vista.yaml from the given working directory upwards and
	// returns the parsed settings. View paths are resolved relative to the
	// settings file.
	Load(cwd string) (*domain.Settings, error)
	// LoadView reads one view definition file.
	LoadView(path string) (*domain.ViewDefinition, error)
	// LoadPortfolio reads one declarative portfolio file.
	LoadPortfolio(path string) (*domain.PortfolioData, error)
}

// Package config provides the configuration loader for vista.
package config

import (
	"os"
	"path/filepath"
	"regexp"
	"time"

	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"

	"go.trai.ch/vista/internal/core/domain"
	"go.trai.ch/vista/internal/core/ports"
)

// SettingsFileName is the file the loader discovers walking up from cwd.
const SettingsFileName = "vista.yaml"

var validViewNameRegex = regexp.MustCompile("^[a-zA-Z0-9_-]+$")

// Loader implements ports.ConfigLoader using YAML files.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load discovers vista.yaml from cwd upwards and parses it. View paths in the
// result are rewritten to be absolute, anchored at the settings file.
func (l *Loader) Load(cwd string) (*domain.Settings, error) {
	path, err := l.findSettings(cwd)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.Wrap(err, "reading settings file")
	}

	var file vistaFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "parsing settings file")
	}

	settings, err := buildSettings(&file)
	if err != nil {
		return nil, err
	}

	root := filepath.Dir(path)
	for i, view := range settings.Views {
		if !filepath.IsAbs(view) {
			settings.Views[i] = filepath.Join(root, view)
		}
	}
	for i, p := range settings.Portfolios {
		if !filepath.IsAbs(p) {
			settings.Portfolios[i] = filepath.Join(root, p)
		}
	}
	l.Logger.Debug("settings loaded", "path", path, "views", len(settings.Views))
	return settings, nil
}

func (l *Loader) findSettings(cwd string) (string, error) {
	currentDir := cwd
	for {
		path := filepath.Join(currentDir, SettingsFileName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return "", zerr.With(zerr.Wrap(domain.ErrSettingsNotFound, "searching upwards"), "cwd", cwd)
		}
		currentDir = parentDir
	}
}

func buildSettings(file *vistaFile) (*domain.Settings, error) {
	settings := &domain.Settings{
		Logging: domain.LoggingSettings{
			JSON:  file.Logging.JSON,
			Level: file.Logging.Level,
		},
		MarketData: domain.MarketDataSettings{
			Schemes: file.MarketData.Schemes,
		},
		Views:      file.Views,
		Portfolios: file.Portfolios,
	}

	feed := &settings.MarketData.Feed
	feed.URL = file.MarketData.Feed.URL
	var err error
	if feed.ReconnectMin, err = parseDuration(file.MarketData.Feed.ReconnectMin, "feed.reconnect_min"); err != nil {
		return nil, err
	}
	if feed.ReconnectMax, err = parseDuration(file.MarketData.Feed.ReconnectMax, "feed.reconnect_max"); err != nil {
		return nil, err
	}
	return settings, nil
}

// LoadView reads and validates one view definition file. The definition's UID
// version is the file's modification time, so an edited file produces a new
// identity and forces a recompile.
func (l *Loader) LoadView(path string) (*domain.ViewDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.Wrap(err, "reading view definition")
	}

	var file viewFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "parsing view definition")
	}

	if file.Name == "" || !validViewNameRegex.MatchString(file.Name) {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidSettings, "view needs a valid name"), "view_name", file.Name)
	}
	if len(file.Configs) == 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidSettings, "no calculation configurations"), "view", file.Name)
	}

	version := ""
	if info, err := os.Stat(path); err == nil {
		version = info.ModTime().UTC().Format(time.RFC3339Nano)
	}

	def := &domain.ViewDefinition{
		UID:            domain.NewUniqueID("View", file.Name, version),
		Name:           file.Name,
		MaxDeltaCycles: file.MaxDeltaCycles,
	}
	if file.Portfolio != "" {
		id := domain.ParseExternalID(file.Portfolio)
		def.Portfolio = domain.ObjectID{Scheme: id.Scheme, Value: id.Value}
	}
	if def.MinRecomputePeriod, err = parseDuration(file.MinRecompute, "min_recompute"); err != nil {
		return nil, err
	}
	if def.MaxRecomputePeriod, err = parseDuration(file.MaxRecompute, "max_recompute"); err != nil {
		return nil, err
	}

	for _, dto := range file.Configs {
		cfg, err := buildConfig(file.Name, dto)
		if err != nil {
			return nil, err
		}
		def.Configs = append(def.Configs, cfg)
	}
	return def, nil
}

// LoadPortfolio reads and validates one declarative portfolio file.
func (l *Loader) LoadPortfolio(path string) (*domain.PortfolioData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.Wrap(err, "reading portfolio file")
	}

	var file portfolioFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.Wrap(err, "parsing portfolio file")
	}

	if file.ID == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidSettings, "portfolio needs an id"), "portfolio", path)
	}
	id := domain.ParseExternalID(file.ID)
	root, err := buildPortfolioNode(file.ID, file.Root)
	if err != nil {
		return nil, err
	}
	return &domain.PortfolioData{
		ID:   domain.ObjectID{Scheme: id.Scheme, Value: id.Value},
		Name: file.Name,
		Root: root,
	}, nil
}

func buildPortfolioNode(portfolio string, dto portfolioNodeDTO) (*domain.PortfolioNode, error) {
	if dto.ID == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidSettings, "node needs an id"), "portfolio", portfolio)
	}
	node := &domain.PortfolioNode{
		UID:  domain.ParseUniqueID(dto.ID),
		Name: dto.Name,
	}
	for _, child := range dto.Children {
		built, err := buildPortfolioNode(portfolio, child)
		if err != nil {
			return nil, err
		}
		node.Children = append(node.Children, built)
	}
	for _, pos := range dto.Positions {
		if pos.ID == "" || pos.Security == "" {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidSettings, "position needs id and security"), "portfolio", portfolio)
		}
		built := &domain.Position{
			UID:      domain.ParseUniqueID(pos.ID),
			Security: domain.ParseExternalID(pos.Security),
			Quantity: pos.Quantity,
		}
		for _, trade := range pos.Trades {
			security := built.Security
			if trade.Security != "" {
				security = domain.ParseExternalID(trade.Security)
			}
			built.Trades = append(built.Trades, domain.Trade{
				UID:      domain.ParseUniqueID(trade.ID),
				Security: security,
				Quantity: trade.Quantity,
			})
		}
		node.Positions = append(node.Positions, built)
	}
	return node, nil
}

func buildConfig(view string, dto configDTO) (domain.CalcConfig, error) {
	if dto.Name == "" {
		return domain.CalcConfig{}, zerr.With(zerr.Wrap(domain.ErrInvalidSettings, "unnamed configuration"), "view", view)
	}
	cfg := domain.CalcConfig{
		Name:             dto.Name,
		PortfolioOutputs: dto.PortfolioOutputs,
	}
	for _, req := range dto.Requirements {
		kind, ok := parseTargetKind(req.Kind)
		if !ok {
			return domain.CalcConfig{}, zerr.With(zerr.With(zerr.Wrap(domain.ErrInvalidSettings, "unknown target kind"),
				"view", view), "kind", req.Kind)
		}
		if req.Value == "" || req.ID == "" {
			return domain.CalcConfig{}, zerr.With(zerr.Wrap(domain.ErrInvalidSettings, "requirement needs value and id"), "view", view)
		}
		cfg.SpecificRequirements = append(cfg.SpecificRequirements, domain.ValueRequirement{
			ValueName:   req.Value,
			Target:      domain.TargetReference{Kind: kind, ID: domain.ParseExternalID(req.ID)},
			Constraints: domain.NewProperties(req.Constraints),
		})
	}
	return cfg, nil
}

func parseTargetKind(s string) (domain.TargetKind, bool) {
	switch s {
	case "", "PRIMITIVE":
		return domain.KindPrimitive, true
	case "SECURITY":
		return domain.KindSecurity, true
	case "POSITION":
		return domain.KindPosition, true
	case "TRADE":
		return domain.KindTrade, true
	case "PORTFOLIO_NODE":
		return domain.KindPortfolioNode, true
	case "PORTFOLIO":
		return domain.KindPortfolio, true
	default:
		return 0, false
	}
}

func parseDuration(s, field string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "parsing duration"), "field", field)
	}
	return d, nil
}

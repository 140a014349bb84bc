// Package pricingcfg loads sector pricing configurations from a
// directory of per-sector YAML files. It implements the core pricing
// provider contract: a missing sector or category is "no config
// available", never a classification failure.
package pricingcfg

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"sewerswarm/core/pricing"
	"sewerswarm/core/types"
	"sewerswarm/internal/errors"
)

// sectorFile is the on-disk YAML schema for one sector.
type sectorFile struct {
	Sector     string                  `yaml:"sector"`
	Categories map[string]categoryFile `yaml:"categories"`
}

type categoryFile struct {
	MinQuantity   float64    `yaml:"min_quantity"`
	PatchUnitCost string     `yaml:"patch_unit_cost"`
	Tiers         []tierFile `yaml:"tiers"`
}

type tierFile struct {
	RangeStart   float64 `yaml:"range_start"`
	RangeEnd     float64 `yaml:"range_end"`
	DayRate      string  `yaml:"day_rate"`
	RunsPerShift int     `yaml:"runs_per_shift"`
}

// Provider serves sector configurations from a directory, parsing and
// validating each sector file once.
type Provider struct {
	dir string

	mu    sync.RWMutex
	cache map[string]map[types.DefectType]*pricing.SectorConfig
}

// NewProvider creates a provider rooted at dir
func NewProvider(dir string) *Provider {
	return &Provider{
		dir:   dir,
		cache: make(map[string]map[types.DefectType]*pricing.SectorConfig),
	}
}

// Config returns the configuration for a sector and category, nil when
// the sector file or category block does not exist.
func (p *Provider) Config(ctx context.Context, sector string, category types.DefectType) (*pricing.SectorConfig, error) {
	sector = strings.ToLower(strings.TrimSpace(sector))

	p.mu.RLock()
	configs, ok := p.cache[sector]
	p.mu.RUnlock()

	if !ok {
		var err error
		configs, err = p.loadSector(sector)
		if err != nil {
			return nil, err
		}
		p.mu.Lock()
		p.cache[sector] = configs
		p.mu.Unlock()
	}
	return configs[category], nil
}

// loadSector parses and validates one sector file. A missing file
// yields an empty config set.
func (p *Provider) loadSector(sector string) (map[types.DefectType]*pricing.SectorConfig, error) {
	configs := make(map[types.DefectType]*pricing.SectorConfig)

	data, err := os.ReadFile(filepath.Join(p.dir, sector+".yaml"))
	if err != nil {
		if os.IsNotExist(err) {
			return configs, nil
		}
		return nil, errors.Config("reading sector pricing file", err)
	}

	var file sectorFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Config("parsing sector pricing file", err)
	}

	for name, block := range file.Categories {
		category, ok := parseCategory(name)
		if !ok {
			return nil, errors.Newf(errors.TypeConfig, "sector %s: unknown category %q", sector, name)
		}
		cfg, err := buildConfig(sector, category, block)
		if err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		configs[category] = cfg
	}
	return configs, nil
}

func buildConfig(sector string, category types.DefectType, block categoryFile) (*pricing.SectorConfig, error) {
	cfg := &pricing.SectorConfig{
		Sector:      sector,
		Category:    category,
		MinQuantity: block.MinQuantity,
	}

	if block.PatchUnitCost != "" {
		unit, err := decimal.NewFromString(block.PatchUnitCost)
		if err != nil {
			return nil, errors.Config("parsing patch unit cost", err)
		}
		cfg.PatchUnitCost = unit
	}

	for _, t := range block.Tiers {
		rate, err := decimal.NewFromString(t.DayRate)
		if err != nil {
			return nil, errors.Config("parsing tier day rate", err)
		}
		cfg.Tiers = append(cfg.Tiers, pricing.Tier{
			RangeStart:   t.RangeStart,
			RangeEnd:     t.RangeEnd,
			DayRate:      rate,
			RunsPerShift: t.RunsPerShift,
		})
	}
	return cfg, nil
}

func parseCategory(name string) (types.DefectType, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "service":
		return types.DefectService, true
	case "structural":
		return types.DefectStructural, true
	default:
		return "", false
	}
}

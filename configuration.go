package osm2gmns

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// ConsolidationConfiguration is a file representation of consolidation parameters. TOML and YAML files are supported
type ConsolidationConfiguration struct {
	AutoIdentify    bool    `toml:"auto_identify" yaml:"auto_identify"`
	IntBuffer       float64 `toml:"int_buffer" yaml:"int_buffer" validate:"gt=0"`
	LonLatPrecision int     `toml:"lonlat_coord_precision" yaml:"lonlat_coord_precision" validate:"min=0,max=15"`
	LocalPrecision  int     `toml:"local_coord_precision" yaml:"local_coord_precision" validate:"min=0,max=15"`
	Verbose         bool    `toml:"verbose" yaml:"verbose"`
}

func DefaultConfiguration() *ConsolidationConfiguration {
	return &ConsolidationConfiguration{
		AutoIdentify:    false,
		IntBuffer:       DEFAULT_INT_BUFFER,
		LonLatPrecision: DEFAULT_LONLAT_PRECISION,
		LocalPrecision:  DEFAULT_LOCAL_PRECISION,
		Verbose:         false,
	}
}

// LoadConfiguration reads configuration file. Parameters missing in file keep default values
func LoadConfiguration(fname string) (*ConsolidationConfiguration, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, errors.Wrap(err, "Can't read configuration file")
	}
	cfg := DefaultConfiguration()
	switch strings.ToLower(filepath.Ext(fname)) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(err, "Can't parse TOML configuration")
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.Wrap(err, "Can't parse YAML configuration")
		}
	default:
		return nil, errors.Errorf("Unsupported configuration file extension: '%s'", filepath.Ext(fname))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *ConsolidationConfiguration) Validate() error {
	if err := validate.Struct(cfg); err != nil {
		return errors.Wrap(err, "Bad configuration")
	}
	return nil
}

// Options converts configuration into consolidator options
func (cfg *ConsolidationConfiguration) Options() []func(*IntersectionConsolidator) {
	return []func(*IntersectionConsolidator){
		WithAutoIdentify(cfg.AutoIdentify),
		WithIntBuffer(cfg.IntBuffer),
		WithLonLatPrecision(cfg.LonLatPrecision),
		WithLocalPrecision(cfg.LocalPrecision),
		WithVerbose(cfg.Verbose),
	}
}

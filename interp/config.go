package interp

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config configures an Interpreter. It may be read from a YAML file:
//
//    strict_declarations: true
//    ieee_division: false
//    max_call_depth: 5000
//    trace_level: Info
//
type Config struct {
	// StrictDeclarations rejects assignments to undeclared names.
	StrictDeclarations bool `yaml:"strict_declarations"`
	// IEEEDivision lets float division by zero produce infinities.
	IEEEDivision bool `yaml:"ieee_division"`
	// MaxCallDepth limits the nesting of function calls; 0 selects the
	// evaluator's default.
	MaxCallDepth int `yaml:"max_call_depth"`
	// TraceLevel is one of Debug, Info or Error. Empty leaves the tracers
	// alone.
	TraceLevel string `yaml:"trace_level"`
}

var traceLevels = []string{"debug", "info", "error"}

// Validate checks a configuration for consistency.
func (c *Config) Validate(logger *slog.Logger) error {
	if c.MaxCallDepth < 0 {
		return fmt.Errorf("max_call_depth must not be negative, is %d", c.MaxCallDepth)
	}
	if c.TraceLevel != "" {
		known := false
		for _, l := range traceLevels {
			known = known || strings.EqualFold(l, c.TraceLevel)
		}
		if !known {
			return fmt.Errorf("unknown trace level %q", c.TraceLevel)
		}
	}
	logger.Debug("validated config",
		"strict_declarations", c.StrictDeclarations,
		"ieee_division", c.IEEEDivision,
		"max_call_depth", c.MaxCallDepth,
		"trace_level", c.TraceLevel)
	return nil
}

// LoadConfig reads a configuration from a YAML file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	config, err := DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return config, nil
}

// DecodeConfig reads a configuration in YAML format. Unknown keys are
// rejected. Empty input yields the zero configuration.
func DecodeConfig(r io.Reader) (Config, error) {
	var config Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&config); err != nil && err != io.EOF {
		return Config{}, err
	}
	return config, nil
}

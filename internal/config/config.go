package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt        = 1e-3
	DefaultDuration  = 20.0
	DefaultTolerance = 1e-6
	DefaultS         = 0.99
	DefaultI         = 0.01
	DefaultBeta      = 0.3
	DefaultGamma     = 0.1
	DefaultSigma     = 0.2
)

type Config struct {
	Model        string             `yaml:"model"`
	Integrator   string             `yaml:"integrator"`
	Controller   string             `yaml:"controller"`
	Dt           float64            `yaml:"dt"`
	Duration     float64            `yaml:"duration"`
	Tolerance    float64            `yaml:"tolerance"`
	Init         InitConfig         `yaml:"init"`
	Disease      DiseaseConfig      `yaml:"disease"`
	Intervention InterventionConfig `yaml:"intervention"`
}

type InitConfig struct {
	S float64 `yaml:"s"`
	E float64 `yaml:"e"`
	I float64 `yaml:"i"`
	R float64 `yaml:"r"`
	D float64 `yaml:"d"`
}

type DiseaseConfig struct {
	Beta  float64 `yaml:"beta"`
	Gamma float64 `yaml:"gamma"`
	Sigma float64 `yaml:"sigma"`
	Mu    float64 `yaml:"mu"`
}

type InterventionConfig struct {
	Trigger   float64 `yaml:"trigger"`
	Release   float64 `yaml:"release"`
	Reduction float64 `yaml:"reduction"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:      "sir",
		Integrator: "rk45",
		Controller: "none",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Tolerance:  DefaultTolerance,
		Init: InitConfig{
			S: DefaultS,
			I: DefaultI,
		},
		Disease: DiseaseConfig{
			Beta:  DefaultBeta,
			Gamma: DefaultGamma,
			Sigma: DefaultSigma,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// InitState lays out the initial state vector for the configured
// model.
func (c *Config) InitState() []float64 {
	switch c.Model {
	case "sis":
		return []float64{c.Init.S, c.Init.I}
	case "seir":
		return []float64{c.Init.S, c.Init.E, c.Init.I, c.Init.R}
	case "sird":
		return []float64{c.Init.S, c.Init.I, c.Init.R, c.Init.D}
	default:
		return []float64{c.Init.S, c.Init.I, c.Init.R}
	}
}

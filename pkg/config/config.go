package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Inference InferenceConfig `yaml:"inference"`
	Store     StoreConfig     `yaml:"store"`
}

type InferenceConfig struct {
	Order       int     `yaml:"order"`        // transition order (context length)
	Nitem       int     `yaml:"nitem"`        // alphabet size; 0 = infer from the sequence
	PriorWeight float64 `yaml:"prior_weight"` // symmetric Dirichlet pseudo-count
	Policy      string  `yaml:"policy"`       // cumulative | decay | window
	Decay       float64 `yaml:"decay"`        // leak time constant (policy: decay)
	Window      int     `yaml:"window"`       // trailing window size (policy: window)
}

type StoreConfig struct {
	Path string `yaml:"path"`
}

func Load(configPath string) (*Config, error) {
	cfg := &Config{
		Inference: InferenceConfig{
			Order:       1,
			PriorWeight: 1,
			Policy:      "cumulative",
		},
		Store: StoreConfig{
			Path: "seqinfer.db",
		},
	}

	if configPath == "" {
		for _, p := range []string{"configs/seqinfer.yaml", "seqinfer.yaml"} {
			data, err := os.ReadFile(p)
			if err == nil {
				if err := yaml.Unmarshal(data, cfg); err != nil {
					return cfg, err
				}
				applyDefaults(cfg)
				return cfg, nil
			}
		}
		applyDefaults(cfg)
		return cfg, nil // no file found: use defaults
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return cfg, err
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Inference.Order < 0 {
		cfg.Inference.Order = 0
	}
	if cfg.Inference.PriorWeight <= 0 {
		cfg.Inference.PriorWeight = 1
	}
	if cfg.Inference.Policy == "" {
		cfg.Inference.Policy = "cumulative"
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "seqinfer.db"
	}
}

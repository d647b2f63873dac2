package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Version string        `yaml:"version" json:"version"`
	Server  ServerConfig  `yaml:"server" json:"server"`
	Data    DataConfig    `yaml:"data" json:"data"`
	Balance BalanceConfig `yaml:"balance" json:"balance"`
}

type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

type DataConfig struct {
	Dir      string `yaml:"dir" json:"dir"`
	Compress bool   `yaml:"compress" json:"compress"`
}

// BalanceConfig selects a preset and optionally overrides individual values.
type BalanceConfig struct {
	Preset    string   `yaml:"preset" json:"preset"`
	Overrides *Balance `yaml:"overrides" json:"overrides,omitempty"`
}

func (c *Config) ApplyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Data.Dir == "" {
		c.Data.Dir = "data"
	}
}

// ResolveBalance picks the configured preset and applies file overrides on top.
func (c *Config) ResolveBalance() Balance {
	var cfg Balance
	switch c.Balance.Preset {
	case "casual":
		cfg = Casual()
	case "hard":
		cfg = Hard()
	default:
		cfg = FromEnv()
	}
	if o := c.Balance.Overrides; o != nil {
		if o.EnemyHPScale > 0 {
			cfg.EnemyHPScale = o.EnemyHPScale
		}
		if o.EnemyGoldScale > 0 {
			cfg.EnemyGoldScale = o.EnemyGoldScale
		}
		if o.BossLevelInterval > 0 {
			cfg.BossLevelInterval = o.BossLevelInterval
		}
		if o.SpecialMinLevel > 0 {
			cfg.SpecialMinLevel = o.SpecialMinLevel
		}
		if o.SkillsUnlockLevel > 0 {
			cfg.SkillsUnlockLevel = o.SkillsUnlockLevel
		}
		if o.PrestigeUnlockLevel > 0 {
			cfg.PrestigeUnlockLevel = o.PrestigeUnlockLevel
		}
		if o.LevelsPerStar > 0 {
			cfg.LevelsPerStar = o.LevelsPerStar
		}
		if o.TickInterval > 0 {
			cfg.TickInterval = o.TickInterval
		}
		if o.AutosaveInterval > 0 {
			cfg.AutosaveInterval = o.AutosaveInterval
		}
	}
	return cfg
}

// Load reads a yaml config file. An empty path yields the defaults, so the
// server runs without any config on disk.
func Load(path string) (*Config, error) {
	var r Config
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(b, &r); err != nil {
			return nil, err
		}
	}
	r.ApplyDefaults()
	return &r, nil
}

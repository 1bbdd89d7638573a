package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"wizard-server/internal/util"
)

// Config provides configuration for the Wizard server
type Config struct {
	loaded bool
	Log    struct {
		Level             string `yaml:"level" envconfig:"level"`
		JSON              bool   `yaml:"json" envconfig:"json"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
	StartGameDelay int   `yaml:"startGameDelay" envconfig:"start_game_delay"`
	CPUPlayers     int   `yaml:"cpuPlayers" envconfig:"cpu_players"`
	BotSeed        int64 `yaml:"botSeed" envconfig:"bot_seed"`
	DealSeed       int64 `yaml:"dealSeed" envconfig:"deal_seed"`
}

var config Config

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
func Load() error {
	config = defaults()

	configFile := util.Getenv("WZRD_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()

		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("wzrd", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}

func defaults() Config {
	c := Config{}
	c.Log.Level = "info"
	c.StartGameDelay = 10
	return c
}

package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	API   *APIConfig   `mapstructure:"api"`
	State *StateConfig `mapstructure:"state"`
}

type APIConfig struct {
	// BaseURL is the root of the JobGate REST API, e.g. http://localhost:8000/api/.
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	Environment string        `mapstructure:"environment"`
}

type StateConfig struct {
	// Path of the sqlite file holding the credential, registration flags
	// and the event cache.
	Path string `mapstructure:"path"`
}

// Load reads configFile if it exists, applies JOBGATE_* environment
// overrides (e.g. JOBGATE_API_BASE_URL) and fills in defaults.
func Load(configFile string) (*AppConfig, error) {
	v := viper.New()

	v.SetDefault("api.base_url", "http://localhost:8000/api/")
	v.SetDefault("api.timeout", 15*time.Second)
	v.SetDefault("api.environment", "development")
	v.SetDefault("state.path", defaultStatePath())

	v.SetEnvPrefix("JOBGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// A missing config file is fine: defaults plus env cover everything.
	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			v.SetConfigFile(configFile)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("config.Load -> v.ReadInConfig -> %w", err)
			}
		}
	}

	conf := &AppConfig{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("config.Load -> v.Unmarshal -> %w", err)
	}

	if err := conf.validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

func (c *AppConfig) validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || !u.IsAbs() {
		return fmt.Errorf("config: api.base_url is not an absolute URL: %q", c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("config: api.timeout must be positive, got %v", c.API.Timeout)
	}
	if c.State.Path == "" {
		return fmt.Errorf("config: state.path must not be empty")
	}

	return nil
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".jobgate", "state.db")
	}

	return filepath.Join(home, ".jobgate", "state.db")
}

package util

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lintang-b-s/Voronoix/pkg"
	"github.com/spf13/viper"
)

func SetConfigDefaults() {
	viper.SetDefault("GRID_SIZE", pkg.DEFAULT_GRID_SIZE)
	viper.SetDefault("NUM_SOURCES", pkg.DEFAULT_NUM_SOURCES)
	viper.SetDefault("SEED_LAYOUT", pkg.RANDOM_LAYOUT.String())
	viper.SetDefault("RANDOM_SEED", 1)
	viper.SetDefault("WEIGHTS", []string{})
	viper.SetDefault("CENTROID_WORKERS", 4)

	viper.SetDefault("API_PORT", 6060)
	viper.SetDefault("API_TIMEOUT", "30s")
	viper.SetDefault("USE_RATE_LIMIT", false)
	viper.SetDefault("RATE_LIMIT_RPS", 20)
	viper.SetDefault("RATE_LIMIT_BURST", 40)
	viper.SetDefault("RENDER_CACHE_SIZE", 64)
}

// ReadConfig loads config.{yaml,toml,json} from ./data/, or the file at configFile if set.
// a missing config file is not an error, defaults and env vars still apply.
func ReadConfig(configFile string) error {
	SetConfigDefaults()
	viper.SetEnvPrefix("VORONOIX")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if configFile != "" {
		viper.SetConfigFile(filepath.Clean(configFile))
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("./data/")
	}

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}

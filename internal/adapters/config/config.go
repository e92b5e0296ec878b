package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/ctxsim/internal/domain"
	"github.com/spf13/viper"
)

const (
	configDir  = ".ctxsim"
	configName = "config"
	configType = "toml"
	envPrefix  = "CTXSIM"
)

const (
	KeyAllowedError    = "resolver.allowed_error"
	KeyVelocity        = "resolver.velocity"
	KeyStayTimeMillis  = "resolver.stay_time_ms"
	KeyWalkDist        = "resolver.walk_dist"
	KeyWindowScan      = "resolver.window_scan"
	KeyNoise           = "mobility.noise"
	KeyMaxStay         = "mobility.max_stay"
	KeyEpisodes        = "mobility.episodes"
	KeyScenariosPath   = "scenarios.path"
	KeyDefaultScenario = "scenarios.default"
)

// Settings is the resolved runtime configuration. The results path is read
// by the result repository from the same viper instance.
type Settings struct {
	Params          domain.Params
	ScenariosPath   string
	DefaultScenario int
}

// Load reads configFile, or ~/.ctxsim/config.toml when configFile is empty
// and the file exists, then applies CTXSIM_* environment overrides.
func Load(v *viper.Viper, configFile string) (Settings, error) {
	if v == nil {
		v = viper.New()
	}

	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType(configType)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return Settings{}, fmt.Errorf("resolve home directory: %w", err)
		}

		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(filepath.Join(homeDir, configDir))

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				return Settings{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	return settingsFrom(v)
}

func setDefaults(v *viper.Viper) {
	defaults := domain.DefaultParams()

	v.SetDefault(KeyAllowedError, defaults.AllowedError)
	v.SetDefault(KeyVelocity, defaults.Velocity)
	v.SetDefault(KeyStayTimeMillis, defaults.StayTime.Milliseconds())
	v.SetDefault(KeyWalkDist, defaults.WalkDist)
	v.SetDefault(KeyWindowScan, defaults.WindowScan)
	v.SetDefault(KeyNoise, defaults.Noise)
	v.SetDefault(KeyMaxStay, defaults.MaxStay)
	v.SetDefault(KeyEpisodes, defaults.Episodes)
	v.SetDefault(KeyScenariosPath, "")
	v.SetDefault(KeyDefaultScenario, 1)
}

func settingsFrom(v *viper.Viper) (Settings, error) {
	params := domain.Params{
		AllowedError: v.GetFloat64(KeyAllowedError),
		Velocity:     v.GetFloat64(KeyVelocity),
		StayTime:     time.Duration(v.GetInt64(KeyStayTimeMillis)) * time.Millisecond,
		WalkDist:     v.GetFloat64(KeyWalkDist),
		Noise:        v.GetFloat64(KeyNoise),
		MaxStay:      v.GetInt(KeyMaxStay),
		WindowScan:   v.GetInt(KeyWindowScan),
		Episodes:     v.GetInt(KeyEpisodes),
	}
	if err := params.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid configuration: %w", err)
	}

	defaultScenario := v.GetInt(KeyDefaultScenario)
	if defaultScenario < 0 {
		return Settings{}, fmt.Errorf("invalid configuration: default scenario must not be negative, got %d", defaultScenario)
	}

	return Settings{
		Params:          params,
		ScenariosPath:   v.GetString(KeyScenariosPath),
		DefaultScenario: defaultScenario,
	}, nil
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	dbm "github.com/cosmos/cosmos-db"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/paw-chain/amm/api"
	"github.com/paw-chain/amm/app"
	"github.com/paw-chain/amm/app/telemetry"
)

const (
	envPrefix      = "AMM"
	configDirName  = "config"
	dataDirName    = "data"
	appConfigName  = "app.toml"
	genesisName    = "genesis.json"
	applicationDB  = "application"
	defaultHomeDir = ".amm"
)

// Config keys
const (
	keyLogLevel         = "log_level"
	keyDBBackend        = "db_backend"
	keyAPIAddress       = "api.address"
	keyAPIRateLimitRPS  = "api.rate_limit_rps"
	keyAPIRateBurst     = "api.rate_limit_burst"
	keyAPICORSOrigins   = "api.cors_origins"
	keyMetricsAddress   = "telemetry.metrics_address"
	keyTracingEnabled   = "telemetry.enabled"
	keyOTLPEndpoint     = "telemetry.otlp_endpoint"
	keySampleRate       = "telemetry.sample_rate"
	keyDefaultDeadline  = "router.default_deadline"
	keyHealthBlockAge   = "health.max_block_age"
	keyAPITokenCacheLen = "api.token_cache_size"
)

// DefaultNodeHome is $HOME/.amm.
var DefaultNodeHome = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultHomeDir
	}
	return filepath.Join(home, defaultHomeDir)
}()

// Config is the node configuration read from app.toml, AMM_* environment
// variables and flags.
type Config struct {
	LogLevel        string
	DBBackend       dbm.BackendType
	MetricsAddress  string
	DefaultDeadline time.Duration
	API             *api.Config
	Telemetry       telemetry.Config
}

func setDefaults(v *viper.Viper) {
	apiCfg := api.DefaultConfig()
	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyDBBackend, string(dbm.GoLevelDBBackend))
	v.SetDefault(keyAPIAddress, apiCfg.Address)
	v.SetDefault(keyAPIRateLimitRPS, apiCfg.RateLimitRPS)
	v.SetDefault(keyAPIRateBurst, apiCfg.RateLimitBurst)
	v.SetDefault(keyAPICORSOrigins, apiCfg.CORSOrigins)
	v.SetDefault(keyAPITokenCacheLen, apiCfg.TokenCacheSize)
	v.SetDefault(keyMetricsAddress, "127.0.0.1:26660")
	v.SetDefault(keyTracingEnabled, false)
	v.SetDefault(keyOTLPEndpoint, "localhost:4318")
	v.SetDefault(keySampleRate, 0.1)
	v.SetDefault(keyDefaultDeadline, apiCfg.DefaultDeadline.String())
	v.SetDefault(keyHealthBlockAge, "0s")
}

// newViper reads home/config/app.toml when present and overlays AMM_*
// environment variables.
func newViper(home string) (*viper.Viper, error) {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := filepath.Join(home, configDirName, appConfigName)
	v.SetConfigType("toml")
	v.SetConfigFile(path)
	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
	}
	return v, nil
}

// loadConfig normalises the loosely typed viper values.
func loadConfig(v *viper.Viper) (Config, error) {
	deadline, err := cast.ToDurationE(v.Get(keyDefaultDeadline))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", keyDefaultDeadline, err)
	}
	blockAge, err := cast.ToDurationE(v.Get(keyHealthBlockAge))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", keyHealthBlockAge, err)
	}
	rps, err := cast.ToIntE(v.Get(keyAPIRateLimitRPS))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", keyAPIRateLimitRPS, err)
	}
	burst, err := cast.ToIntE(v.Get(keyAPIRateBurst))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", keyAPIRateBurst, err)
	}
	cacheSize, err := cast.ToIntE(v.Get(keyAPITokenCacheLen))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", keyAPITokenCacheLen, err)
	}
	sampleRate, err := cast.ToFloat64E(v.Get(keySampleRate))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", keySampleRate, err)
	}

	apiCfg := api.DefaultConfig()
	apiCfg.Address = cast.ToString(v.Get(keyAPIAddress))
	apiCfg.RateLimitRPS = rps
	apiCfg.RateLimitBurst = burst
	apiCfg.CORSOrigins = splitList(v.Get(keyAPICORSOrigins))
	apiCfg.DefaultDeadline = deadline
	apiCfg.TokenCacheSize = cacheSize
	apiCfg.Health.MaxBlockAge = blockAge

	cfg := Config{
		LogLevel:        cast.ToString(v.Get(keyLogLevel)),
		DBBackend:       dbm.BackendType(cast.ToString(v.Get(keyDBBackend))),
		MetricsAddress:  cast.ToString(v.Get(keyMetricsAddress)),
		DefaultDeadline: deadline,
		API:             apiCfg,
		Telemetry: telemetry.Config{
			Enabled:           cast.ToBool(v.Get(keyTracingEnabled)),
			OTLPEndpoint:      cast.ToString(v.Get(keyOTLPEndpoint)),
			SampleRate:        sampleRate,
			ChainID:           app.ChainID,
			Environment:       "node",
			PrometheusEnabled: cast.ToBool(v.Get(keyTracingEnabled)),
		},
	}
	if deadline <= 0 {
		return Config{}, fmt.Errorf("%s must be positive", keyDefaultDeadline)
	}
	return cfg, nil
}

// splitList accepts a TOML array, a comma separated string or a single
// value, as environment variables can only carry strings.
func splitList(raw any) []string {
	if s, ok := raw.(string); ok {
		raw = strings.Split(s, ",")
	}
	var out []string
	for _, item := range cast.ToStringSlice(raw) {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// writeDefaultConfig writes the defaults to home/config/app.toml.
func writeDefaultConfig(home string) error {
	v := viper.New()
	setDefaults(v)
	path := filepath.Join(home, configDirName, appConfigName)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return v.WriteConfigAs(path)
}

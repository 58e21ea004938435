package config

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/mrfresh-network/fresh-program/common"
	"github.com/mrfresh-network/fresh-program/internal/accountstore"
	"github.com/mrfresh-network/fresh-program/internal/postgres"
	"github.com/mrfresh-network/fresh-program/pkg/logger"
	"github.com/mrfresh-network/fresh-program/pkg/logger/slogx"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	configOnce sync.Once
	config     = &Config{
		Logger: logger.Config{
			Output: "TEXT",
		},
		Network: common.NetworkLocalnet,
		Ledger: Ledger{
			Driver:     accountstore.DriverBadger,
			BadgerPath: "./data",
		},
	}
)

type Config struct {
	Logger  logger.Config  `mapstructure:"logger"`
	Network common.Network `mapstructure:"network"`
	Program Program        `mapstructure:"program"`
	Ledger  Ledger         `mapstructure:"ledger"`
}

// Program selects the deployment the CLI talks to. Empty keys fall back to the
// network's defaults.
type Program struct {
	ProgramID string `mapstructure:"program_id"`
	StateKey  string `mapstructure:"state_key"`
	ClockID   string `mapstructure:"clock_id"`
}

// Ledger configures the account store. Badger data lives under BadgerPath/<network>.
type Ledger struct {
	Driver     accountstore.Driver `mapstructure:"driver"`
	BadgerPath string              `mapstructure:"badger_path"`
	Postgres   postgres.Config     `mapstructure:"postgres"`
}

// Parse reads the configuration file (if found), environment variables and any
// flags bound to v. configFile may be empty to search ./config.yaml.
func Parse(v *viper.Viper, configFile string) (Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath("./")
		v.SetConfigName("config")
	}
	v.SetEnvPrefix("FRESH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range []string{
		"logger.output", "logger.debug", "network",
		"program.program_id", "program.state_key", "program.clock_id",
		"ledger.driver", "ledger.badger_path", "ledger.postgres.url",
	} {
		if err := v.BindEnv(key); err != nil {
			return Config{}, errors.WithStack(err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var errNotfound viper.ConfigFileNotFoundError
		if !errors.As(err, &errNotfound) {
			return Config{}, errors.Wrap(err, "invalid config file")
		}
	}

	conf := *config
	if err := v.Unmarshal(&conf); err != nil {
		return Config{}, errors.Wrap(err, "failed to unmarshal config")
	}
	if !conf.Network.IsSupported() {
		return Config{}, errors.Errorf("unsupported network %q", conf.Network)
	}
	return conf, nil
}

// Load parses the configuration once and returns it. Invalid configuration panics.
func Load() Config {
	ctx := logger.WithContext(context.Background(), slog.String("package", "config"))
	configOnce.Do(func() {
		conf, err := Parse(viper.GetViper(), viper.GetString("config"))
		if err != nil {
			logger.PanicContext(ctx, "failed to load config", slogx.Error(err))
		}
		*config = conf
		logger.DebugContext(ctx, "loaded config successfully", slog.String("network", conf.Network.String()))
	})
	return *config
}

// BindPFlag binds a flag to a config key, e.g. "ledger.driver" to --driver.
func BindPFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		logger.Panic("Something went wrong, failed to bind flag for config", slog.String("package", "config"), slogx.Error(err))
	}
}

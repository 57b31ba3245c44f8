package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/luiz-simples/keyop.git/internal/script"
	"github.com/luiz-simples/keyop.git/internal/storage"
)

const (
	envPrefix = "keyop"

	KeyAddress     = "address"
	KeyPassword    = "password"
	KeyDatabase    = "database"
	KeyPoolSize    = "pool-size"
	KeyDialTimeout = "dial-timeout"
	KeyScriptsDir  = "scripts-dir"
)

var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

type Config struct {
	Address     string
	Password    string
	Database    int
	PoolSize    int
	DialTimeout time.Duration
	ScriptsDir  string
}

// InitConfig loads .env files and maps KEYOP_* variables onto the config
// keys, so KEYOP_POOL_SIZE feeds "pool-size".
func InitConfig() {
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(KeyAddress, storage.DefaultAddress)
	viper.SetDefault(KeyDatabase, 0)
	viper.SetDefault(KeyPoolSize, storage.DefaultPoolSize)
	viper.SetDefault(KeyDialTimeout, storage.DefaultDialTimeout)
}

func LoadConfig() (Config, error) {
	config := Config{
		Address:     viper.GetString(KeyAddress),
		Password:    viper.GetString(KeyPassword),
		Database:    viper.GetInt(KeyDatabase),
		PoolSize:    viper.GetInt(KeyPoolSize),
		DialTimeout: viper.GetDuration(KeyDialTimeout),
		ScriptsDir:  viper.GetString(KeyScriptsDir),
	}

	return config, config.Validate()
}

func (config Config) Validate() error {
	if config.Database < 0 || config.Database > storage.MaxDatabaseIndex {
		return fmt.Errorf("%w: database %d", ErrInvalidConfig, config.Database)
	}

	if config.PoolSize < 0 {
		return fmt.Errorf("%w: pool size %d", ErrInvalidConfig, config.PoolSize)
	}

	if config.DialTimeout < 0 {
		return fmt.Errorf("%w: dial timeout %s", ErrInvalidConfig, config.DialTimeout)
	}

	return nil
}

func (config Config) Options() storage.Options {
	return storage.Options{
		Address:     config.Address,
		Password:    config.Password,
		PoolSize:    config.PoolSize,
		DialTimeout: config.DialTimeout,
	}
}

// Scripts returns the embedded scripts unless ScriptsDir points somewhere
// else.
func (config Config) Scripts() *script.Registry {
	if len(config.ScriptsDir) == 0 {
		return script.Default()
	}

	return script.NewRegistry(os.DirFS(config.ScriptsDir))
}

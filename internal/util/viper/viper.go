package viper

import (
	"strings"

	"github.com/dsview/dsview/internal/meta"
	"github.com/dsview/dsview/internal/util"
	v "github.com/spf13/viper"
)

// EnvPrefix is the prefix for every environment variable override (DSVIEW_LOG_LEVEL, ...).
var EnvPrefix = strings.ToUpper(meta.CLIName)

// InitializeDefaultViper loads path, creating it from defaultValues when it
// does not exist yet or is empty.
func InitializeDefaultViper(defaultValues map[string]any, path string) (*v.Viper, error) {
	if err := util.InitDir(path, 0o755); err != nil {
		return nil, err
	}

	rv := NewViper(path)
	if len(rv.AllSettings()) > 0 {
		return rv, nil
	}

	if err := rv.MergeConfigMap(defaultValues); err != nil {
		return nil, err
	}
	if err := rv.WriteConfig(); err != nil {
		return nil, err
	}
	return rv, nil
}

// NewViperE loads path strictly, returning any read error.
func NewViperE(path string) (*v.Viper, error) {
	rv := newViper(path)
	if err := rv.ReadInConfig(); err != nil {
		return nil, err
	}
	return rv, nil
}

// NewViper loads path when it exists; a missing file yields an env-only viper.
func NewViper(path string) *v.Viper {
	rv := newViper(path)
	_ = rv.ReadInConfig()
	return rv
}

// ConfigureEnvVars makes vip resolve keys from environment variables named
// <prefix>_<KEY> with dots and dashes mapped to underscores.
func ConfigureEnvVars(vip *v.Viper, prefix string) {
	vip.AutomaticEnv()
	vip.SetEnvPrefix(prefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

func newViper(path string) *v.Viper {
	rv := v.New()
	rv.SetConfigFile(path)
	ConfigureEnvVars(rv, EnvPrefix)
	return rv
}

package config

import (
	"flag"

	"github.com/spf13/viper"

	apperrors "github.com/traceway/traceway-tui/internal/errors"
)

// applyFileOverrides reads path with viper and applies every key it sets,
// except those whose flag was given explicitly. Environment overrides are
// applied afterwards and win over the file.
func applyFileOverrides(config *AppConfig, fs *flag.FlagSet, path string) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return apperrors.NewConfigError("read config file %q: %v", path, err)
	}

	for _, o := range overrides {
		if isFlagSet(fs, o.flag) || !v.IsSet(o.fileKey) {
			continue
		}
		o.apply(config, v.GetString(o.fileKey))
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "ONTHISDAY"
	configFileName = ".onthisday"
)

var envNames = map[string]string{
	KeyServerAddress: "ONTHISDAY_SERVER",
	KeyUsername:      "ONTHISDAY_USER",
	KeyPassword:      "ONTHISDAY_PASSWORD",
	KeyTargetPath:    "ONTHISDAY_TARGET",
	KeyTimeout:       "ONTHISDAY_TIMEOUT",
	KeyImagesOnly:    "ONTHISDAY_IMAGES_ONLY",
}

// ViperSource adapts a viper instance to Source.
type ViperSource struct {
	V *viper.Viper
}

func (s ViperSource) Lookup(key string) (string, bool) {
	if s.V == nil {
		return "", false
	}
	val := s.V.GetString(key)
	return val, val != ""
}

func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for key, env := range envNames {
		_ = v.BindEnv(key, env)
	}
	v.AutomaticEnv()
	return v
}

// Load reads .env from the working directory when present, then the config
// file. An explicit cfgFile must exist; the default one in the home
// directory is optional.
func Load(v *viper.Viper, cfgFile string) error {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return fmt.Errorf("load .env: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", cfgFile, err)
		}
		return nil
	}

	home, err := homedir.Dir()
	if err != nil {
		return fmt.Errorf("find home directory: %w", err)
	}
	v.AddConfigPath(home)
	v.SetConfigName(configFileName)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

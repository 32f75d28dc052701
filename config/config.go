// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package config

import (
	"fmt"
	"strings"

	"github.com/creasty/defaults"
	"github.com/imdario/mergo"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceConfig ServiceConfig
	ChainConfigs  []map[string]interface{}
}

type ServiceConfig struct {
	LogLevel   string `mapstructure:"logLevel" json:"logLevel" default:"info"`
	Env        string `mapstructure:"env" json:"env"`
	Id         string `mapstructure:"id" json:"id"`
	ApiAddr    string `mapstructure:"apiAddr" json:"apiAddr" default:":8080"`
	HealthPort uint16 `mapstructure:"healthPort" json:"healthPort" default:"9001"`

	OpenTelemetryCollectorURL string `mapstructure:"openTelemetryCollectorUrl" json:"openTelemetryCollectorUrl"`
}

type RawConfig struct {
	ServiceConfig `mapstructure:"service"`
	ChainConfigs  []map[string]interface{} `mapstructure:"chains"`
}

func (c *RawConfig) Validate() error {
	if len(c.ChainConfigs) == 0 {
		return fmt.Errorf("chains not configured")
	}
	for _, chain := range c.ChainConfigs {
		if chain["type"] == "" || chain["type"] == nil {
			return fmt.Errorf("chain 'type' must be provided for every configured chain")
		}
	}
	return nil
}

// GetConfigFromFile reads a json/yaml config file, applies defaults and merges
// it over the base configuration when one is provided.
func GetConfigFromFile(path string, base *Config) (*Config, error) {
	rawConfig := RawConfig{}

	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}
	if err := viper.Unmarshal(&rawConfig); err != nil {
		return nil, err
	}

	return finalizeConfig(rawConfig, base)
}

// GetConfigFromENV builds the configuration from SPROUTLY_ prefixed
// environment variables, merged over the base configuration.
func GetConfigFromENV(base *Config) (*Config, error) {
	rawConfig := RawConfig{}

	viper.SetEnvPrefix("SPROUTLY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.Unmarshal(&rawConfig, viper.DecodeHook(mapstructure.StringToSliceHookFunc(","))); err != nil {
		return nil, err
	}

	return finalizeConfig(rawConfig, base)
}

func finalizeConfig(rawConfig RawConfig, base *Config) (*Config, error) {
	if err := defaults.Set(&rawConfig); err != nil {
		return nil, err
	}

	config := &Config{
		ServiceConfig: rawConfig.ServiceConfig,
		ChainConfigs:  rawConfig.ChainConfigs,
	}
	if base != nil {
		if err := mergo.Merge(config, base); err != nil {
			return nil, err
		}
	}

	if err := (&RawConfig{ServiceConfig: config.ServiceConfig, ChainConfigs: config.ChainConfigs}).Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

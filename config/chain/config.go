// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package chain

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/sproutly-tech/sproutly-bridging/config"
)

type GeneralChainConfig struct {
	Name      string  `mapstructure:"name"`
	Id        *uint64 `mapstructure:"id"`
	Endpoint  string  `mapstructure:"endpoint"`
	Type      string  `mapstructure:"type"`
	Role      string  `mapstructure:"role"`
	Blocktime uint64  `mapstructure:"blocktime" default:"2"`
	Key       string
}

func (c *GeneralChainConfig) Validate() error {
	// viper defaults to 0 for not specified ints
	if c.Id == nil {
		return fmt.Errorf("required field chain.Id empty for chain %v", c.Id)
	}
	if c.Endpoint == "" {
		return fmt.Errorf("required field chain.Endpoint empty for chain %v", *c.Id)
	}
	if c.Name == "" {
		return fmt.Errorf("required field chain.Name empty for chain %v", *c.Id)
	}
	if c.Role != "source" && c.Role != "destination" {
		return fmt.Errorf("chain %v role must be 'source' or 'destination', got %q", *c.Id, c.Role)
	}
	return nil
}

func (c *GeneralChainConfig) ParseFlags() {
	key := viper.GetString(config.KeyFlagName)
	if key != "" {
		c.Key = key
	}
}

// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package evm

import (
	"fmt"
	"time"

	"github.com/creasty/defaults"
	"github.com/ethereum/go-ethereum/common"
	"github.com/mitchellh/mapstructure"

	"github.com/sproutly-tech/sproutly-bridging/config"
	"github.com/sproutly-tech/sproutly-bridging/config/chain"
)

type EVMConfig struct {
	GeneralChainConfig chain.GeneralChainConfig

	Bridge  common.Address
	Vault   common.Address
	Vesting common.Address
	Token   config.TokenConfig

	ExtraGas           uint64
	BlockRetryInterval time.Duration
}

type RawEVMConfig struct {
	chain.GeneralChainConfig `mapstructure:",squash"`

	Bridge  string `mapstructure:"bridge"`
	Vault   string `mapstructure:"vault"`
	Vesting string `mapstructure:"vesting"`
	Token   string `mapstructure:"token"`

	TokenDecimals      uint8  `mapstructure:"tokenDecimals" default:"18"`
	ExtraGas           uint64 `mapstructure:"extraGas" default:"200000"`
	BlockRetryInterval uint64 `mapstructure:"blockRetryInterval" default:"3"`
}

func (c *RawEVMConfig) Validate() error {
	if err := c.GeneralChainConfig.Validate(); err != nil {
		return err
	}
	if c.Token == "" {
		return fmt.Errorf("required field chain.Token empty for chain %v", *c.Id)
	}
	if c.Role == "source" && c.Bridge == "" {
		return fmt.Errorf("required field chain.Bridge empty for source chain %v", *c.Id)
	}
	if c.Role == "destination" && c.Vesting == "" {
		return fmt.Errorf("required field chain.Vesting empty for destination chain %v", *c.Id)
	}
	return nil
}

// NewEVMConfig decodes and validates an instance of an EVMConfig from
// raw chain config
func NewEVMConfig(chainConfig map[string]interface{}) (*EVMConfig, error) {
	var c RawEVMConfig
	err := mapstructure.Decode(chainConfig, &c)
	if err != nil {
		return nil, err
	}

	err = defaults.Set(&c)
	if err != nil {
		return nil, err
	}

	err = c.Validate()
	if err != nil {
		return nil, err
	}

	c.ParseFlags()
	config := &EVMConfig{
		GeneralChainConfig: c.GeneralChainConfig,

		Bridge:  common.HexToAddress(c.Bridge),
		Vault:   common.HexToAddress(c.Vault),
		Vesting: common.HexToAddress(c.Vesting),
		Token: config.TokenConfig{
			Address:  common.HexToAddress(c.Token),
			Decimals: c.TokenDecimals,
		},

		ExtraGas: c.ExtraGas,
		// nolint:gosec
		BlockRetryInterval: time.Duration(c.BlockRetryInterval) * time.Second,
	}

	return config, nil
}

// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package config

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	ConfigFlagName     = "config"
	KeyFlagName        = "key"
	ApiAddrFlagName    = "api-addr"
	HealthPortFlagName = "health-port"
)

func BindFlags(rootCMD *cobra.Command) {
	rootCMD.PersistentFlags().String(ConfigFlagName, "env", "Path to JSON configuration file, or 'env' to configure from environment variables")
	_ = viper.BindPFlag(ConfigFlagName, rootCMD.PersistentFlags().Lookup(ConfigFlagName))

	rootCMD.PersistentFlags().String(KeyFlagName, "", "Hex private key of the signing account")
	_ = viper.BindPFlag(KeyFlagName, rootCMD.PersistentFlags().Lookup(KeyFlagName))

	rootCMD.PersistentFlags().String(ApiAddrFlagName, "", "Listen address of the HTTP API")
	_ = viper.BindPFlag(ApiAddrFlagName, rootCMD.PersistentFlags().Lookup(ApiAddrFlagName))

	rootCMD.PersistentFlags().Uint16(HealthPortFlagName, 0, "Port of the health endpoint")
	_ = viper.BindPFlag(HealthPortFlagName, rootCMD.PersistentFlags().Lookup(HealthPortFlagName))
}

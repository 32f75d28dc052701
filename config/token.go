package config

import (
	"github.com/ethereum/go-ethereum/common"
)

type TokenConfig struct {
	Address  common.Address
	Decimals uint8
}

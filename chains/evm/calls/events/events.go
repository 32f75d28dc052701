// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package events

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

type EventSig string

func (es EventSig) GetTopic() common.Hash {
	return crypto.Keccak256Hash([]byte(es))
}

const (
	// WithdrawSig is emitted by the bridge contract on the destination chain.
	WithdrawSig EventSig = "Withdraw(address,uint256)"
	// WithdrawnSig is emitted by the vault contract on the destination chain.
	// Either event satisfies bridge completion.
	WithdrawnSig EventSig = "Withdrawn(address,uint256)"
)

// Withdrawal is the destination completion marker of one bridge attempt.
type Withdrawal struct {
	Event       string
	To          common.Address
	Amount      *big.Int
	BlockNumber uint64
}

// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package wallet

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"
)

// ErrRejectedByUser is returned by wallet capabilities when the user declines
// a prompt. Orchestration treats it as a silent reset, never a failure.
var ErrRejectedByUser = errors.New("rejected by user")

// Connection is the read-only view of the wallet layer's shared state: the
// connected account and the active chain, plus the capability to request a
// chain switch through the wallet's own API. Orchestration components read
// this state but never mutate it directly.
type Connection interface {
	Account() common.Address
	ChainID() uint64
	RequestChainSwitch(ctx context.Context, chainID uint64) error
}

// StaticConnection is a Connection bound to a fixed signing account. A chain
// switch succeeds when the requested chain is one the service has a client
// for.
type StaticConnection struct {
	account common.Address
	chainID uint64
	known   map[uint64]struct{}
}

func NewStaticConnection(account common.Address, chainID uint64, knownChains []uint64) *StaticConnection {
	known := make(map[uint64]struct{}, len(knownChains))
	for _, id := range knownChains {
		known[id] = struct{}{}
	}
	return &StaticConnection{
		account: account,
		chainID: chainID,
		known:   known,
	}
}

func (c *StaticConnection) Account() common.Address {
	return c.account
}

func (c *StaticConnection) ChainID() uint64 {
	return c.chainID
}

func (c *StaticConnection) RequestChainSwitch(ctx context.Context, chainID uint64) error {
	if _, ok := c.known[chainID]; !ok {
		return errors.New("no client configured for requested chain")
	}

	c.chainID = chainID
	return nil
}

// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package staking

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"

	"github.com/sproutly-tech/sproutly-bridging/usererr"
	"github.com/sproutly-tech/sproutly-bridging/wallet"
)

type ReleaseContract interface {
	SimulateRelease(id [32]byte) error
	Release(id [32]byte) (*common.Hash, error)
}

// Releaser draws down the currently claimable amount of one schedule.
// Concurrent releases for the same schedule are not deduplicated here; the
// caller disables the trigger while one is in flight.
type Releaser struct {
	conn    wallet.Connection
	vesting ReleaseContract
}

func NewReleaser(conn wallet.Connection, vesting ReleaseContract) *Releaser {
	return &Releaser{
		conn:    conn,
		vesting: vesting,
	}
}

// Release simulates the release call first to surface revert reasons without
// spending gas, then submits the real transaction and waits for its receipt.
func (r *Releaser) Release(id [32]byte) (*common.Hash, error) {
	if r.conn.Account() == (common.Address{}) {
		return nil, usererr.New(usererr.CodeNotReady, "Connect your wallet first.")
	}

	if err := r.vesting.SimulateRelease(id); err != nil {
		return nil, usererr.Normalize(err)
	}

	hash, err := r.vesting.Release(id)
	if err != nil {
		return nil, usererr.Normalize(err)
	}

	log.Info().
		Str("txHash", hash.Hex()).
		Hex("scheduleId", id[:]).
		Msg("Released claimable tokens")

	return hash, nil
}

// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

// Package staking creates, reads and releases on-chain vesting schedules and
// computes their derived views. All amount arithmetic stays in the integer
// domain; display strings are a projection and are never fed back into math.
package staking

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/sproutly-tech/sproutly-bridging/chains/evm/calls/contracts"
)

// Lock is the ready-to-render view of one active vesting schedule at a point
// in time. It owns no persistent state and is recomputed on every read.
type Lock struct {
	ID          [32]byte
	Beneficiary common.Address

	AmountTotal *big.Int
	Released    *big.Int
	Vested      *big.Int
	Claimable   *big.Int

	AmountDisplay    string
	ClaimableDisplay string
	DurationLabel    string

	Progress      int
	UnlockDate    time.Time
	TimeRemaining string
}

// VestedAmount computes how much of a schedule's total is unlocked at now.
// Vesting advances in discrete slice-period steps, not continuously: two
// instants inside the same slice produce the same amount.
func VestedAmount(s *contracts.VestingSchedule, now time.Time) *big.Int {
	cliff := s.Cliff.Int64()
	duration := s.Duration.Int64()
	ts := now.Unix()

	if ts < cliff {
		return big.NewInt(0)
	}
	if duration == 0 || ts >= cliff+duration {
		return new(big.Int).Set(s.AmountTotal)
	}

	slice := s.SlicePeriodSeconds.Int64()
	if slice <= 0 {
		slice = 1
	}
	elapsedSliced := (ts - cliff) / slice * slice

	vested := new(big.Int).Mul(s.AmountTotal, big.NewInt(elapsedSliced))
	return vested.Div(vested, big.NewInt(duration))
}

// ClaimableAmount is vested minus released, floored at zero.
func ClaimableAmount(s *contracts.VestingSchedule, now time.Time) *big.Int {
	claimable := new(big.Int).Sub(VestedAmount(s, now), s.Released)
	if claimable.Sign() < 0 {
		return big.NewInt(0)
	}
	return claimable
}

// Progress is the share of the cliff to cliff+duration window elapsed at now,
// as a whole percentage clamped to [0, 100].
func Progress(s *contracts.VestingSchedule, now time.Time) int {
	cliff := s.Cliff.Int64()
	duration := s.Duration.Int64()
	ts := now.Unix()

	if ts <= cliff || duration <= 0 {
		if duration <= 0 && ts >= cliff {
			return 100
		}
		return 0
	}
	if ts >= cliff+duration {
		return 100
	}

	elapsed := ts - cliff
	return int((elapsed*100 + duration/2) / duration)
}

// UnlockDate is the end of the linear vesting window.
func UnlockDate(s *contracts.VestingSchedule) time.Time {
	return time.Unix(s.Cliff.Int64()+s.Duration.Int64(), 0).UTC()
}

// terminal reports whether the schedule must be excluded from active views:
// revoked schedules are terminal, as are fully drained ones.
func terminal(s *contracts.VestingSchedule) bool {
	if s.Revoked {
		return true
	}
	return s.Released.Cmp(s.AmountTotal) >= 0
}

// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package staking

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"

	"github.com/sproutly-tech/sproutly-bridging/units"
	"github.com/sproutly-tech/sproutly-bridging/usererr"
	"github.com/sproutly-tech/sproutly-bridging/wallet"
)

type StakeToken interface {
	Allowance(owner common.Address, spender common.Address) (*big.Int, error)
	Approve(spender common.Address, amount *big.Int) (*common.Hash, error)
}

type ScheduleCreator interface {
	CreateVestingSchedule(
		beneficiary common.Address,
		cliffSeconds *big.Int,
		slicePeriodSeconds *big.Int,
		durationSeconds *big.Int,
		revocable bool,
		amount *big.Int,
	) (*common.Hash, error)
}

// StakeResult carries both transaction hashes of one stake. ApproveHash is
// nil when the existing allowance already covered the amount.
type StakeResult struct {
	ApproveHash *common.Hash
	StakeHash   *common.Hash
}

// Staker approves and submits the on-chain call that creates a vesting
// schedule for the connected account.
type Staker struct {
	conn     wallet.Connection
	token    StakeToken
	vesting  ScheduleCreator
	spender  common.Address
	decimals uint8
}

func NewStaker(
	conn wallet.Connection,
	token StakeToken,
	vesting ScheduleCreator,
	vestingAddress common.Address,
	decimals uint8,
) *Staker {
	return &Staker{
		conn:     conn,
		token:    token,
		vesting:  vesting,
		spender:  vestingAddress,
		decimals: decimals,
	}
}

// Stake parses the amount, tops up the vesting contract's allowance when
// needed and submits the schedule-creation call with the connected account as
// beneficiary. Failures are normalized before they reach the caller.
func (s *Staker) Stake(
	humanAmount string,
	durationSeconds uint64,
	cliffDays uint64,
	slicePeriodSeconds uint64,
	revocable bool,
) (*StakeResult, error) {
	account := s.conn.Account()
	if account == (common.Address{}) {
		return nil, usererr.New(usererr.CodeNotReady, "Connect your wallet first.")
	}

	amount, err := units.ToSmallestUnit(humanAmount, s.decimals)
	if err != nil {
		return nil, usererr.Errorf(usererr.CodeInvalidAmount, "Enter a valid amount.", "parsing amount: %v", err)
	}
	if amount.Sign() <= 0 {
		return nil, usererr.New(usererr.CodeInvalidAmount, "Enter a valid amount.")
	}

	result := &StakeResult{}

	allowance, err := s.token.Allowance(account, s.spender)
	if err != nil {
		return nil, usererr.Normalize(err)
	}
	if allowance.Cmp(amount) < 0 {
		approveHash, err := s.token.Approve(s.spender, amount)
		if err != nil {
			return nil, usererr.Normalize(err)
		}
		result.ApproveHash = approveHash
	}

	stakeHash, err := s.vesting.CreateVestingSchedule(
		account,
		new(big.Int).SetUint64(cliffDays*86400),
		new(big.Int).SetUint64(slicePeriodSeconds),
		new(big.Int).SetUint64(durationSeconds),
		revocable,
		amount,
	)
	if err != nil {
		return nil, usererr.Normalize(err)
	}
	result.StakeHash = stakeHash

	log.Info().
		Str("txHash", stakeHash.Hex()).
		Str("amount", amount.String()).
		Uint64("duration", durationSeconds).
		Msg("Vesting schedule created")

	return result, nil
}

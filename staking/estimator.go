// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package staking

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/sproutly-tech/sproutly-bridging/units"
	"github.com/sproutly-tech/sproutly-bridging/usererr"
)

// RatioScale is the fixed-point scale of the ratio delegate, matching the
// on-chain 1e18 convention.
var RatioScale = new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil)

type VestingInfo interface {
	CalculationLayer() (common.Address, error)
	StartDate() (*big.Int, error)
}

type RatioCalculator interface {
	CalculateUserRatio(daysLocked *big.Int, base *big.Int) (*big.Int, error)
}

// RatioFactory binds a calculator to the delegate address the vesting
// contract currently points at.
type RatioFactory func(address common.Address) RatioCalculator

// Estimate is the projected reward for one lock. Anchor dates are only set
// once the contract's start date is configured, so callers can distinguish
// "not yet configured" from "starts at time zero".
type Estimate struct {
	Ratio *big.Int

	Base  *big.Int
	Bonus *big.Int
	Total *big.Int

	BaseDisplay  string
	BonusDisplay string
	TotalDisplay string

	CliffTime  *time.Time
	UnlockTime *time.Time
}

type Estimator struct {
	vesting  VestingInfo
	ratio    RatioFactory
	decimals uint8
}

func NewEstimator(vesting VestingInfo, ratio RatioFactory, decimals uint8) *Estimator {
	return &Estimator{
		vesting:  vesting,
		ratio:    ratio,
		decimals: decimals,
	}
}

// Estimate computes the projected reward for locking humanAmount for
// durationSeconds with the given cliff. A ratio at or below 1e18 yields a
// single non-bonus unlock; above it the amount is returned 1:1 as base plus a
// bonus share.
func (e *Estimator) Estimate(humanAmount string, durationSeconds uint64, cliffSeconds uint64) (*Estimate, error) {
	amount, err := units.ToSmallestUnit(humanAmount, e.decimals)
	if err != nil {
		return nil, usererr.Errorf(usererr.CodeInvalidAmount, "Enter a valid amount.", "parsing amount: %v", err)
	}
	if amount.Sign() <= 0 {
		return nil, usererr.New(usererr.CodeInvalidAmount, "Enter a valid amount.")
	}

	delegate, err := e.vesting.CalculationLayer()
	if err != nil {
		return nil, usererr.Normalize(err)
	}

	daysLocked := new(big.Int).SetUint64(durationSeconds / 86400)
	ratio, err := e.ratio(delegate).CalculateUserRatio(daysLocked, RatioScale)
	if err != nil {
		return nil, usererr.Normalize(err)
	}

	estimate := &Estimate{Ratio: ratio}
	if ratio.Cmp(RatioScale) <= 0 {
		total := new(big.Int).Mul(amount, ratio)
		total.Div(total, RatioScale)

		estimate.Base = big.NewInt(0)
		estimate.Bonus = big.NewInt(0)
		estimate.Total = total
	} else {
		bonus := new(big.Int).Sub(ratio, RatioScale)
		bonus.Mul(bonus, amount)
		bonus.Div(bonus, RatioScale)

		estimate.Base = new(big.Int).Set(amount)
		estimate.Bonus = bonus
		estimate.Total = new(big.Int).Add(estimate.Base, bonus)
	}

	estimate.BaseDisplay = units.FormatThousands(units.ToHuman(estimate.Base, e.decimals))
	estimate.BonusDisplay = units.FormatThousands(units.ToHuman(estimate.Bonus, e.decimals))
	estimate.TotalDisplay = units.FormatThousands(units.ToHuman(estimate.Total, e.decimals))

	start, err := e.vesting.StartDate()
	if err != nil {
		return nil, usererr.Normalize(err)
	}
	if start.Sign() > 0 {
		cliff := time.Unix(start.Int64()+int64(cliffSeconds), 0).UTC()
		unlock := cliff.Add(time.Duration(durationSeconds) * time.Second)
		estimate.CliffTime = &cliff
		estimate.UnlockTime = &unlock
	}

	return estimate, nil
}

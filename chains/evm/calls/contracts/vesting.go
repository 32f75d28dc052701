// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sygmaprotocol/sygma-core/chains/evm/client"
	"github.com/sygmaprotocol/sygma-core/chains/evm/contracts"
	"github.com/sygmaprotocol/sygma-core/chains/evm/transactor"

	"github.com/sproutly-tech/sproutly-bridging/chains/evm/calls/consts"
)

// VestingSchedule mirrors the on-chain schedule struct. Cliff and Start are
// absolute unix timestamps.
type VestingSchedule struct {
	Initialized        bool
	Beneficiary        common.Address
	Cliff              *big.Int
	Start              *big.Int
	Duration           *big.Int
	SlicePeriodSeconds *big.Int
	Revocable          bool
	AmountTotal        *big.Int
	Released           *big.Int
	Revoked            bool
}

type VestingContract struct {
	contracts.Contract
	client client.Client
}

func NewVestingContract(
	client client.Client,
	address common.Address,
	t transactor.Transactor,
) *VestingContract {
	return &VestingContract{
		Contract: contracts.NewContract(address, consts.VestingABI, nil, client, t),
		client:   client,
	}
}

// CalculationLayer returns the address of the ratio-calculation delegate
// configured on the vesting contract.
func (c *VestingContract) CalculationLayer() (common.Address, error) {
	res, err := c.CallContract("getCalculationLayer")
	if err != nil {
		return common.Address{}, err
	}

	return *abi.ConvertType(res[0], new(common.Address)).(*common.Address), nil
}

// StartDate returns the contract-wide start date as a unix timestamp. Zero
// means the contract is not yet configured.
func (c *VestingContract) StartDate() (*big.Int, error) {
	res, err := c.CallContract("startDate")
	if err != nil {
		return nil, err
	}

	return abi.ConvertType(res[0], new(big.Int)).(*big.Int), nil
}

func (c *VestingContract) ScheduleCount(beneficiary common.Address) (*big.Int, error) {
	res, err := c.CallContract("getVestingSchedulesCountByBeneficiary", beneficiary)
	if err != nil {
		return nil, err
	}

	return abi.ConvertType(res[0], new(big.Int)).(*big.Int), nil
}

func (c *VestingContract) ScheduleByIndex(holder common.Address, index *big.Int) (*VestingSchedule, error) {
	res, err := c.CallContract("getVestingScheduleByAddressAndIndex", holder, index)
	if err != nil {
		return nil, err
	}

	return abi.ConvertType(res[0], new(VestingSchedule)).(*VestingSchedule), nil
}

func (c *VestingContract) ScheduleID(holder common.Address, index *big.Int) ([32]byte, error) {
	res, err := c.CallContract("computeVestingScheduleIdForAddressAndIndex", holder, index)
	if err != nil {
		return [32]byte{}, err
	}

	return *abi.ConvertType(res[0], new([32]byte)).(*[32]byte), nil
}

// CreateVestingSchedule submits the schedule-creation transaction and blocks
// until it is mined.
func (c *VestingContract) CreateVestingSchedule(
	beneficiary common.Address,
	cliffSeconds *big.Int,
	slicePeriodSeconds *big.Int,
	durationSeconds *big.Int,
	revocable bool,
	amount *big.Int,
) (*common.Hash, error) {
	hash, err := c.ExecuteTransaction(
		"createVestingSchedule",
		transactor.TransactOptions{},
		beneficiary, cliffSeconds, slicePeriodSeconds, durationSeconds, revocable, amount,
	)
	if err != nil {
		return nil, err
	}

	_, err = c.client.WaitAndReturnTxReceipt(*hash)
	if err != nil {
		return hash, err
	}

	return hash, nil
}

// SimulateRelease runs the release call as a read to surface revert reasons
// without spending gas.
func (c *VestingContract) SimulateRelease(id [32]byte) error {
	_, err := c.CallContract("release", id)
	return err
}

// Release submits the release transaction for one schedule and blocks until
// it is mined.
func (c *VestingContract) Release(id [32]byte) (*common.Hash, error) {
	hash, err := c.ExecuteTransaction("release", transactor.TransactOptions{}, id)
	if err != nil {
		return nil, err
	}

	_, err = c.client.WaitAndReturnTxReceipt(*hash)
	if err != nil {
		return hash, err
	}

	return hash, nil
}

type RatioContract struct {
	contracts.Contract
}

func NewRatioContract(client client.Client, address common.Address) *RatioContract {
	return &RatioContract{
		Contract: contracts.NewContract(address, consts.RatioABI, nil, client, nil),
	}
}

// CalculateUserRatio returns the reward multiplier for the given lock length
// as a fixed-point number scaled by 1e18.
func (c *RatioContract) CalculateUserRatio(daysLocked *big.Int, base *big.Int) (*big.Int, error) {
	res, err := c.CallContract("calculateUserRatio", daysLocked, base)
	if err != nil {
		return nil, err
	}

	return abi.ConvertType(res[0], new(big.Int)).(*big.Int), nil
}

// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package staking_test

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/suite"

	"github.com/sproutly-tech/sproutly-bridging/staking"
	"github.com/sproutly-tech/sproutly-bridging/usererr"
)

type stubConnection struct {
	account common.Address
}

func (c *stubConnection) Account() common.Address { return c.account }
func (c *stubConnection) ChainID() uint64         { return 8453 }
func (c *stubConnection) RequestChainSwitch(ctx context.Context, chainID uint64) error {
	return nil
}

type fakeStakeToken struct {
	allowance    *big.Int
	approveErr   error
	approveCalls int
}

func (t *fakeStakeToken) Allowance(owner common.Address, spender common.Address) (*big.Int, error) {
	return t.allowance, nil
}

func (t *fakeStakeToken) Approve(spender common.Address, amount *big.Int) (*common.Hash, error) {
	t.approveCalls++
	if t.approveErr != nil {
		return nil, t.approveErr
	}
	hash := common.HexToHash("0xaa")
	return &hash, nil
}

type fakeScheduleCreator struct {
	err error

	beneficiary common.Address
	cliff       *big.Int
	slice       *big.Int
	duration    *big.Int
	revocable   bool
	amount      *big.Int
}

func (f *fakeScheduleCreator) CreateVestingSchedule(
	beneficiary common.Address,
	cliffSeconds *big.Int,
	slicePeriodSeconds *big.Int,
	durationSeconds *big.Int,
	revocable bool,
	amount *big.Int,
) (*common.Hash, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.beneficiary = beneficiary
	f.cliff = cliffSeconds
	f.slice = slicePeriodSeconds
	f.duration = durationSeconds
	f.revocable = revocable
	f.amount = amount
	hash := common.HexToHash("0xbb")
	return &hash, nil
}

type StakerTestSuite struct {
	suite.Suite

	conn    *stubConnection
	token   *fakeStakeToken
	creator *fakeScheduleCreator
	staker  *staking.Staker
}

func TestRunStakerTestSuite(t *testing.T) {
	suite.Run(t, new(StakerTestSuite))
}

func (s *StakerTestSuite) SetupTest() {
	s.conn = &stubConnection{account: common.HexToAddress("0xc0ffee254729296a45a3885639AC7E10F9d54979")}
	s.token = &fakeStakeToken{allowance: big.NewInt(0)}
	s.creator = &fakeScheduleCreator{}
	s.staker = staking.NewStaker(
		s.conn, s.token, s.creator,
		common.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3"),
		0,
	)
}

func (s *StakerTestSuite) Test_Stake_ApprovesWhenAllowanceLow() {
	result, err := s.staker.Stake("1000", 90*86400, 7, 86400, false)

	s.Nil(err)
	s.NotNil(result.ApproveHash)
	s.NotNil(result.StakeHash)
	s.Equal(1, s.token.approveCalls)
	s.Equal(s.conn.account, s.creator.beneficiary)
	s.Equal(int64(7*86400), s.creator.cliff.Int64())
	s.Equal(int64(86400), s.creator.slice.Int64())
	s.Equal(int64(90*86400), s.creator.duration.Int64())
	s.Equal(int64(1000), s.creator.amount.Int64())
}

func (s *StakerTestSuite) Test_Stake_SkipsRedundantApproval() {
	s.token.allowance = big.NewInt(5000)

	result, err := s.staker.Stake("1000", 90*86400, 0, 86400, false)

	s.Nil(err)
	s.Nil(result.ApproveHash)
	s.NotNil(result.StakeHash)
	s.Equal(0, s.token.approveCalls)
}

func (s *StakerTestSuite) Test_Stake_InvalidAmount() {
	for _, amount := range []string{"", "0", "abc"} {
		_, err := s.staker.Stake(amount, 86400, 0, 86400, false)

		s.Equal(usererr.CodeInvalidAmount, usererr.CodeOf(err), amount)
	}
}

func (s *StakerTestSuite) Test_Stake_NotConnected() {
	s.conn.account = common.Address{}

	_, err := s.staker.Stake("1000", 86400, 0, 86400, false)

	s.Equal(usererr.CodeNotReady, usererr.CodeOf(err))
}

func (s *StakerTestSuite) Test_Stake_CreateFailureNormalized() {
	s.creator.err = errors.New("execution reverted: insufficient allowance")

	_, err := s.staker.Stake("1000", 86400, 0, 86400, false)

	s.Equal(usererr.CodeContractRevert, usererr.CodeOf(err))
}

// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package staking_test

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/suite"

	"github.com/sproutly-tech/sproutly-bridging/chains/evm/calls/contracts"
	"github.com/sproutly-tech/sproutly-bridging/staking"
)

type fakeScheduleReader struct {
	schedules []*contracts.VestingSchedule
	failing   map[int]bool

	countCalls int
}

func (f *fakeScheduleReader) ScheduleCount(beneficiary common.Address) (*big.Int, error) {
	f.countCalls++
	return big.NewInt(int64(len(f.schedules))), nil
}

func (f *fakeScheduleReader) ScheduleByIndex(holder common.Address, index *big.Int) (*contracts.VestingSchedule, error) {
	i := int(index.Int64())
	if f.failing[i] {
		return nil, errors.New("failed decoding schedule")
	}
	return f.schedules[i], nil
}

func (f *fakeScheduleReader) ScheduleID(holder common.Address, index *big.Int) ([32]byte, error) {
	var id [32]byte
	id[31] = byte(index.Int64())
	return id, nil
}

type dropCounter struct {
	dropped int
}

func (d *dropCounter) TrackDroppedSchedules(count int) {
	d.dropped += count
}

type LocksReaderTestSuite struct {
	suite.Suite

	beneficiary common.Address
	reader      *fakeScheduleReader
	metrics     *dropCounter
}

func TestRunLocksReaderTestSuite(t *testing.T) {
	suite.Run(t, new(LocksReaderTestSuite))
}

func (s *LocksReaderTestSuite) SetupTest() {
	s.beneficiary = common.HexToAddress("0xc0ffee254729296a45a3885639AC7E10F9d54979")
	s.reader = &fakeScheduleReader{failing: map[int]bool{}}
	s.metrics = &dropCounter{}
}

func (s *LocksReaderTestSuite) schedule(total int64, released int64, revoked bool) *contracts.VestingSchedule {
	cliff := time.Now().Add(-100 * 24 * time.Hour).Unix()
	return &contracts.VestingSchedule{
		Initialized:        true,
		Beneficiary:        s.beneficiary,
		Cliff:              big.NewInt(cliff),
		Start:              big.NewInt(cliff - 86400),
		Duration:           big.NewInt(200 * 86400),
		SlicePeriodSeconds: big.NewInt(86400),
		AmountTotal:        big.NewInt(total),
		Released:           big.NewInt(released),
		Revoked:            revoked,
	}
}

func (s *LocksReaderTestSuite) Test_ActiveLocks_ExcludesTerminalSchedules() {
	s.reader.schedules = []*contracts.VestingSchedule{
		s.schedule(1_000_000, 0, false),
		s.schedule(1_000_000, 0, true),         // revoked
		s.schedule(1_000_000, 1_000_000, false), // drained
	}

	result, err := staking.NewLocksReader(s.reader, 0, s.metrics).ActiveLocks(s.beneficiary)

	s.Nil(err)
	s.Len(result.Locks, 1)
	s.Equal(0, result.Dropped)
}

func (s *LocksReaderTestSuite) Test_ActiveLocks_DerivedFields() {
	s.reader.schedules = []*contracts.VestingSchedule{s.schedule(1_000_000, 100_000, false)}

	result, err := staking.NewLocksReader(s.reader, 0, s.metrics).ActiveLocks(s.beneficiary)

	s.Nil(err)
	s.Len(result.Locks, 1)

	lock := result.Locks[0]
	s.Equal(s.beneficiary, lock.Beneficiary)
	// 100 of 200 days elapsed
	s.Equal(50, lock.Progress)
	s.True(lock.Vested.Sign() > 0)
	s.True(lock.Claimable.Cmp(lock.Vested) < 0)
	s.Equal("1,000,000", lock.AmountDisplay)
	s.NotEmpty(lock.TimeRemaining)
}

func (s *LocksReaderTestSuite) Test_ActiveLocks_CountsDroppedSchedules() {
	s.reader.schedules = []*contracts.VestingSchedule{
		s.schedule(1_000_000, 0, false),
		s.schedule(2_000_000, 0, false),
	}
	s.reader.failing[1] = true

	result, err := staking.NewLocksReader(s.reader, 0, s.metrics).ActiveLocks(s.beneficiary)

	s.Nil(err)
	s.Len(result.Locks, 1)
	s.Equal(1, result.Dropped)
	s.Equal(1, s.metrics.dropped)
}

func (s *LocksReaderTestSuite) Test_ActiveLocks_EmptyWithoutSchedules() {
	result, err := staking.NewLocksReader(s.reader, 0, s.metrics).ActiveLocks(s.beneficiary)

	s.Nil(err)
	s.Empty(result.Locks)
}

func (s *LocksReaderTestSuite) Test_ActiveLocks_CachesUntilInvalidated() {
	s.reader.schedules = []*contracts.VestingSchedule{s.schedule(1_000_000, 0, false)}
	reader := staking.NewLocksReader(s.reader, 0, s.metrics)

	_, err := reader.ActiveLocks(s.beneficiary)
	s.Nil(err)
	_, err = reader.ActiveLocks(s.beneficiary)
	s.Nil(err)
	s.Equal(1, s.reader.countCalls)

	reader.Invalidate(s.beneficiary)

	_, err = reader.ActiveLocks(s.beneficiary)
	s.Nil(err)
	s.Equal(2, s.reader.countCalls)
}

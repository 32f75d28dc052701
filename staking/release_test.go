// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package staking_test

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/suite"

	"github.com/sproutly-tech/sproutly-bridging/staking"
	"github.com/sproutly-tech/sproutly-bridging/usererr"
	"github.com/sproutly-tech/sproutly-bridging/wallet"
)

type fakeReleaseContract struct {
	simulateErr error
	releaseErr  error

	released [][32]byte
}

func (f *fakeReleaseContract) SimulateRelease(id [32]byte) error {
	return f.simulateErr
}

func (f *fakeReleaseContract) Release(id [32]byte) (*common.Hash, error) {
	if f.releaseErr != nil {
		return nil, f.releaseErr
	}
	f.released = append(f.released, id)
	hash := common.HexToHash("0xabc1")
	return &hash, nil
}

type ReleaserTestSuite struct {
	suite.Suite

	conn     *wallet.StaticConnection
	contract *fakeReleaseContract
	releaser *staking.Releaser
}

func TestRunReleaserTestSuite(t *testing.T) {
	suite.Run(t, new(ReleaserTestSuite))
}

func (s *ReleaserTestSuite) SetupTest() {
	s.conn = wallet.NewStaticConnection(
		common.HexToAddress("0xc0ffee254729296a45a3885639AC7E10F9d54979"),
		137,
		[]uint64{137, 8453},
	)
	s.contract = &fakeReleaseContract{}
	s.releaser = staking.NewReleaser(s.conn, s.contract)
}

func (s *ReleaserTestSuite) Test_Release_Successful() {
	var id [32]byte
	id[0] = 0x7f

	hash, err := s.releaser.Release(id)

	s.Nil(err)
	s.NotNil(hash)
	s.Equal([][32]byte{id}, s.contract.released)
}

func (s *ReleaserTestSuite) Test_Release_NotConnected() {
	releaser := staking.NewReleaser(
		wallet.NewStaticConnection(common.Address{}, 137, []uint64{137}),
		s.contract,
	)

	hash, err := releaser.Release([32]byte{})

	s.Nil(hash)
	s.Equal(usererr.CodeNotReady, usererr.CodeOf(err))
	s.Empty(s.contract.released)
}

func (s *ReleaserTestSuite) Test_Release_SimulationRevertBlocksSubmission() {
	s.contract.simulateErr = errors.New("execution reverted: not enough vested tokens")

	hash, err := s.releaser.Release([32]byte{})

	s.Nil(hash)
	s.Equal(usererr.CodeContractRevert, usererr.CodeOf(err))
	s.Equal("There is nothing to claim yet for this lock.", err.(*usererr.Error).Message)
	s.Empty(s.contract.released)
}

func (s *ReleaserTestSuite) Test_Release_RejectedByUser() {
	s.contract.releaseErr = errors.New("user rejected transaction")

	hash, err := s.releaser.Release([32]byte{})

	s.Nil(hash)
	s.Equal(usererr.CodeUserRejected, usererr.CodeOf(err))
}

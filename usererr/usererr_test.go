// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package usererr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/sproutly-tech/sproutly-bridging/usererr"
	"github.com/sproutly-tech/sproutly-bridging/wallet"
	"github.com/stretchr/testify/suite"
)

type NormalizeTestSuite struct {
	suite.Suite
}

func TestRunNormalizeTestSuite(t *testing.T) {
	suite.Run(t, new(NormalizeTestSuite))
}

func (s *NormalizeTestSuite) Test_Normalize_Nil() {
	s.Nil(usererr.Normalize(nil))
}

func (s *NormalizeTestSuite) Test_Normalize_PassesThroughNormalized() {
	original := usererr.New(usererr.CodeInvalidAmount, "Enter a valid amount.")

	s.Equal(original, usererr.Normalize(fmt.Errorf("staking: %w", original)))
}

func (s *NormalizeTestSuite) Test_Normalize_UserRejectionInCauseChain() {
	err := fmt.Errorf("sending transaction: %w", fmt.Errorf("wallet: %w", wallet.ErrRejectedByUser))

	normalized := usererr.Normalize(err)

	s.Equal(usererr.CodeUserRejected, normalized.Code)
	s.Equal(usererr.HintNone, normalized.Hint)
}

func (s *NormalizeTestSuite) Test_Normalize_ProviderRejectionString() {
	normalized := usererr.Normalize(errors.New("MetaMask Tx Signature: User denied transaction signature"))

	s.Equal(usererr.CodeUserRejected, normalized.Code)
}

func (s *NormalizeTestSuite) Test_Normalize_InsufficientFunds() {
	normalized := usererr.Normalize(errors.New("insufficient funds for gas * price + value"))

	s.Equal(usererr.CodeInsufficientBalance, normalized.Code)
	s.Equal(usererr.HintCheckBalance, normalized.Hint)
}

func (s *NormalizeTestSuite) Test_Normalize_KnownRevertReason() {
	normalized := usererr.Normalize(errors.New("execution reverted: TokenVesting: not enough vested tokens"))

	s.Equal(usererr.CodeContractRevert, normalized.Code)
	s.Equal("There is nothing to claim yet for this lock.", normalized.Message)
}

func (s *NormalizeTestSuite) Test_Normalize_UnknownRevertReason() {
	normalized := usererr.Normalize(errors.New("execution reverted: 0xdeadbeef"))

	s.Equal(usererr.CodeContractRevert, normalized.Code)
	s.Equal("This action is not allowed right now.", normalized.Message)
}

func (s *NormalizeTestSuite) Test_Normalize_Timeout() {
	normalized := usererr.Normalize(errors.New("timed out waiting for base withdrawal event"))

	s.Equal(usererr.CodeTimeout, normalized.Code)
	s.Equal(usererr.HintRetry, normalized.Hint)
}

func (s *NormalizeTestSuite) Test_Normalize_Fallback() {
	normalized := usererr.Normalize(errors.New("connection reset by peer"))

	s.Equal(usererr.CodeUnknown, normalized.Code)
	s.Equal("connection reset by peer", normalized.Technical)
}

func (s *NormalizeTestSuite) Test_CodeOf() {
	err := fmt.Errorf("wrapped: %w", usererr.New(usererr.CodeTimeout, "Timed out."))

	s.Equal(usererr.CodeTimeout, usererr.CodeOf(err))
	s.Equal(usererr.CodeUnknown, usererr.CodeOf(errors.New("plain")))
}

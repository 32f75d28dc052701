package handlers_test

import (
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/suite"

	"github.com/sproutly-tech/sproutly-bridging/api/handlers"
	"github.com/sproutly-tech/sproutly-bridging/staking"
	"github.com/sproutly-tech/sproutly-bridging/usererr"
)

type fakeLocksReader struct {
	result *staking.LocksResult
	err    error

	requested []common.Address
}

func (f *fakeLocksReader) ActiveLocks(beneficiary common.Address) (*staking.LocksResult, error) {
	f.requested = append(f.requested, beneficiary)
	return f.result, f.err
}

type LocksHandlerTestSuite struct {
	suite.Suite

	reader  *fakeLocksReader
	handler *handlers.LocksHandler
}

func TestRunLocksHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(LocksHandlerTestSuite))
}

func (s *LocksHandlerTestSuite) SetupTest() {
	s.reader = &fakeLocksReader{}
	s.handler = handlers.NewLocksHandler(s.reader)
}

func (s *LocksHandlerTestSuite) locksRequest(address string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/v1/locks/"+address, nil)
	req = mux.SetURLVars(req, map[string]string{
		"address": address,
	})
	recorder := httptest.NewRecorder()

	s.handler.HandleLocks(recorder, req)
	return recorder
}

func (s *LocksHandlerTestSuite) Test_HandleLocks_InvalidAddress() {
	recorder := s.locksRequest("invalid")

	s.Equal(http.StatusBadRequest, recorder.Code)
}

func (s *LocksHandlerTestSuite) Test_HandleLocks_ReadFails() {
	s.reader.err = usererr.New(usererr.CodeUnknown, "Something went wrong.")

	recorder := s.locksRequest("0xc0ffee254729296a45a3885639AC7E10F9d54979")

	s.Equal(http.StatusInternalServerError, recorder.Code)
}

func (s *LocksHandlerTestSuite) Test_HandleLocks_ValidLocks() {
	beneficiary := common.HexToAddress("0xc0ffee254729296a45a3885639AC7E10F9d54979")
	var id [32]byte
	id[31] = 0x01
	unlock := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	s.reader.result = &staking.LocksResult{
		Locks: []staking.Lock{
			{
				ID:               id,
				Beneficiary:      beneficiary,
				AmountTotal:      big.NewInt(2500),
				Released:         big.NewInt(100),
				Vested:           big.NewInt(500),
				Claimable:        big.NewInt(400),
				AmountDisplay:    "2,500",
				ClaimableDisplay: "400",
				DurationLabel:    "1 Month",
				Progress:         20,
				UnlockDate:       unlock,
				TimeRemaining:    "30 Days, 0 Hours, 0 Minutes",
			},
		},
		Dropped: 1,
	}

	recorder := s.locksRequest(beneficiary.Hex())

	s.Equal(http.StatusOK, recorder.Code)
	s.Equal([]common.Address{beneficiary}, s.reader.requested)

	resp := map[string]interface{}{}
	s.Nil(json.NewDecoder(recorder.Body).Decode(&resp))
	s.Equal(float64(1), resp["dropped"])

	locks := resp["locks"].([]interface{})
	s.Len(locks, 1)

	lock := locks[0].(map[string]interface{})
	s.Equal(hexutil.Encode(id[:]), lock["id"])
	s.Equal(beneficiary.Hex(), lock["beneficiary"])
	s.Equal(float64(2500), lock["amountTotal"])
	s.Equal(float64(400), lock["claimable"])
	s.Equal("2,500", lock["amountDisplay"])
	s.Equal("1 Month", lock["durationLabel"])
	s.Equal(float64(20), lock["progress"])
	s.Equal("2026-10-01T00:00:00Z", lock["unlockDate"])
}

type fakeReleaser struct {
	hash *common.Hash
	err  error

	released [][32]byte
}

func (f *fakeReleaser) Release(id [32]byte) (*common.Hash, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.released = append(f.released, id)
	return f.hash, nil
}

type ReleaseHandlerTestSuite struct {
	suite.Suite

	conn        *testConnection
	releaser    *fakeReleaser
	invalidator *fakeInvalidator
	handler     *handlers.ReleaseHandler
}

func TestRunReleaseHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ReleaseHandlerTestSuite))
}

func (s *ReleaseHandlerTestSuite) SetupTest() {
	hash := common.HexToHash("0xabc3")
	s.conn = &testConnection{
		account: common.HexToAddress("0xc0ffee254729296a45a3885639AC7E10F9d54979"),
	}
	s.releaser = &fakeReleaser{hash: &hash}
	s.invalidator = &fakeInvalidator{}
	s.handler = handlers.NewReleaseHandler(s.conn, s.releaser, s.invalidator)
}

func (s *ReleaseHandlerTestSuite) releaseRequest(id string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/locks/"+id+"/release", nil)
	req = mux.SetURLVars(req, map[string]string{
		"id": id,
	})
	recorder := httptest.NewRecorder()

	s.handler.HandleRelease(recorder, req)
	return recorder
}

func (s *ReleaseHandlerTestSuite) Test_HandleRelease_InvalidID() {
	recorder := s.releaseRequest("invalid")

	s.Equal(http.StatusBadRequest, recorder.Code)
}

func (s *ReleaseHandlerTestSuite) Test_HandleRelease_WrongLength() {
	recorder := s.releaseRequest("0xabcd")

	s.Equal(http.StatusBadRequest, recorder.Code)
}

func (s *ReleaseHandlerTestSuite) Test_HandleRelease_NothingToClaim() {
	s.releaser.err = usererr.New(usererr.CodeContractRevert, "There is nothing to claim yet for this lock.")

	var id [32]byte
	recorder := s.releaseRequest(hexutil.Encode(id[:]))

	s.Equal(http.StatusUnprocessableEntity, recorder.Code)
	s.Empty(s.invalidator.invalidated)
}

func (s *ReleaseHandlerTestSuite) Test_HandleRelease_Successful() {
	var id [32]byte
	id[0] = 0x7f

	recorder := s.releaseRequest(hexutil.Encode(id[:]))

	s.Equal(http.StatusOK, recorder.Code)
	s.Equal([][32]byte{id}, s.releaser.released)
	s.Equal([]common.Address{s.conn.account}, s.invalidator.invalidated)

	resp := map[string]interface{}{}
	s.Nil(json.NewDecoder(recorder.Body).Decode(&resp))
	s.Equal(s.releaser.hash.Hex(), resp["txHash"])
}

package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/suite"

	"github.com/sproutly-tech/sproutly-bridging/api/handlers"
	"github.com/sproutly-tech/sproutly-bridging/bridge"
	"github.com/sproutly-tech/sproutly-bridging/usererr"
)

type fakeBridgeRunner struct {
	state    bridge.State
	inFlight bool

	started  chan struct{}
	amount   string
	receiver *common.Address
	resets   int
}

func (f *fakeBridgeRunner) Bridge(ctx context.Context, humanAmount string, receiver *common.Address) bridge.Result {
	f.amount = humanAmount
	f.receiver = receiver
	if f.started != nil {
		close(f.started)
	}
	return bridge.Result{Outcome: bridge.OutcomeDone}
}

func (f *fakeBridgeRunner) State() bridge.State {
	return f.state
}

func (f *fakeBridgeRunner) Reset() {
	f.resets++
}

func (f *fakeBridgeRunner) InFlight() bool {
	return f.inFlight
}

type BridgeHandlerTestSuite struct {
	suite.Suite

	runner  *fakeBridgeRunner
	handler *handlers.BridgeHandler
}

func TestRunBridgeHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(BridgeHandlerTestSuite))
}

func (s *BridgeHandlerTestSuite) SetupTest() {
	s.runner = &fakeBridgeRunner{started: make(chan struct{})}
	s.handler = handlers.NewBridgeHandler(s.runner)
}

func (s *BridgeHandlerTestSuite) Test_HandleBridge_InvalidBody() {
	req := httptest.NewRequest(http.MethodPost, "/v1/bridge", bytes.NewReader([]byte("invalid")))
	recorder := httptest.NewRecorder()

	s.handler.HandleBridge(recorder, req)

	s.Equal(http.StatusBadRequest, recorder.Code)
}

func (s *BridgeHandlerTestSuite) Test_HandleBridge_MissingAmount() {
	body, _ := json.Marshal(handlers.BridgeBody{})

	req := httptest.NewRequest(http.MethodPost, "/v1/bridge", bytes.NewReader(body))
	recorder := httptest.NewRecorder()

	s.handler.HandleBridge(recorder, req)

	s.Equal(http.StatusBadRequest, recorder.Code)
}

func (s *BridgeHandlerTestSuite) Test_HandleBridge_InvalidReceiver() {
	body, _ := json.Marshal(handlers.BridgeBody{
		Amount:   "2500",
		Receiver: "not-an-address",
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/bridge", bytes.NewReader(body))
	recorder := httptest.NewRecorder()

	s.handler.HandleBridge(recorder, req)

	s.Equal(http.StatusBadRequest, recorder.Code)
}

func (s *BridgeHandlerTestSuite) Test_HandleBridge_AttemptInProgress() {
	s.runner.inFlight = true
	body, _ := json.Marshal(handlers.BridgeBody{Amount: "2500"})

	req := httptest.NewRequest(http.MethodPost, "/v1/bridge", bytes.NewReader(body))
	recorder := httptest.NewRecorder()

	s.handler.HandleBridge(recorder, req)

	s.Equal(http.StatusConflict, recorder.Code)
}

func (s *BridgeHandlerTestSuite) Test_HandleBridge_StartsAttempt() {
	receiver := common.HexToAddress("0xc0ffee254729296a45a3885639AC7E10F9d54979")
	body, _ := json.Marshal(handlers.BridgeBody{
		Amount:   "2500",
		Receiver: receiver.Hex(),
	})

	req := httptest.NewRequest(http.MethodPost, "/v1/bridge", bytes.NewReader(body))
	recorder := httptest.NewRecorder()

	s.handler.HandleBridge(recorder, req)

	s.Equal(http.StatusAccepted, recorder.Code)

	select {
	case <-s.runner.started:
	case <-time.After(time.Second):
		s.Fail("bridge attempt never started")
	}
	s.Equal("2500", s.runner.amount)
	s.Equal(&receiver, s.runner.receiver)
}

func (s *BridgeHandlerTestSuite) Test_HandleState_ErrorState() {
	hash := common.HexToHash("0xabc1")
	s.runner.state = bridge.State{
		Status:       bridge.StatusError,
		SourceTxHash: &hash,
		Err:          usererr.New(usererr.CodeTimeout, "The bridge is taking longer than expected."),
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/bridge/state", nil)
	recorder := httptest.NewRecorder()

	s.handler.HandleState(recorder, req)

	s.Equal(http.StatusOK, recorder.Code)

	data, err := io.ReadAll(recorder.Body)
	s.Nil(err)

	resp := map[string]interface{}{}
	s.Nil(json.Unmarshal(data, &resp))
	s.Equal("error", resp["status"])
	s.Equal(hash.Hex(), resp["sourceTxHash"])
	s.Equal("timeout", resp["error"].(map[string]interface{})["code"])
}

func (s *BridgeHandlerTestSuite) Test_HandleState_Idle() {
	s.runner.state = bridge.State{Status: bridge.StatusIdle}

	req := httptest.NewRequest(http.MethodGet, "/v1/bridge/state", nil)
	recorder := httptest.NewRecorder()

	s.handler.HandleState(recorder, req)

	s.Equal(http.StatusOK, recorder.Code)

	resp := map[string]interface{}{}
	s.Nil(json.NewDecoder(recorder.Body).Decode(&resp))
	s.Equal("idle", resp["status"])
	s.NotContains(resp, "sourceTxHash")
	s.NotContains(resp, "error")
}

func (s *BridgeHandlerTestSuite) Test_HandleReset() {
	req := httptest.NewRequest(http.MethodPost, "/v1/bridge/reset", nil)
	recorder := httptest.NewRecorder()

	s.handler.HandleReset(recorder, req)

	s.Equal(http.StatusNoContent, recorder.Code)
	s.Equal(1, s.runner.resets)
}

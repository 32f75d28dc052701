package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"

	"github.com/sproutly-tech/sproutly-bridging/bridge"
)

type BridgeRunner interface {
	Bridge(ctx context.Context, humanAmount string, receiver *common.Address) bridge.Result
	State() bridge.State
	Reset()
	InFlight() bool
}

type BridgeBody struct {
	Amount   string `json:"amount"`
	Receiver string `json:"receiver"`
}

type BridgeHandler struct {
	runner BridgeRunner
}

func NewBridgeHandler(runner BridgeRunner) *BridgeHandler {
	return &BridgeHandler{
		runner: runner,
	}
}

// HandleBridge starts a bridge attempt in the background and returns status
// code 202. Progress is polled through HandleState.
func (h *BridgeHandler) HandleBridge(w http.ResponseWriter, r *http.Request) {
	b := &BridgeBody{}
	if err := decodeBody(r, b); err != nil {
		JSONError(w, fmt.Errorf("invalid request body: %s", err), http.StatusBadRequest)
		return
	}
	if b.Amount == "" {
		JSONError(w, fmt.Errorf("missing field 'amount'"), http.StatusBadRequest)
		return
	}

	var receiver *common.Address
	if b.Receiver != "" {
		if !common.IsHexAddress(b.Receiver) {
			JSONError(w, fmt.Errorf("field 'receiver' invalid"), http.StatusBadRequest)
			return
		}
		address := common.HexToAddress(b.Receiver)
		receiver = &address
	}

	if h.runner.InFlight() {
		JSONError(w, fmt.Errorf("bridge attempt already in progress"), http.StatusConflict)
		return
	}

	go func() {
		result := h.runner.Bridge(context.Background(), b.Amount, receiver)
		log.Info().Str("outcome", string(result.Outcome)).Msg("Bridge attempt finished")
	}()

	w.WriteHeader(http.StatusAccepted)
}

type bridgeStateResponse struct {
	Status       string             `json:"status"`
	SourceTxHash string             `json:"sourceTxHash,omitempty"`
	ElapsedMs    int64              `json:"elapsedMs"`
	Completion   *completionView    `json:"completion,omitempty"`
	Error        *userErrorResponse `json:"error,omitempty"`
}

type completionView struct {
	Event       string  `json:"event"`
	To          string  `json:"to"`
	Amount      *BigInt `json:"amount"`
	BlockNumber uint64  `json:"blockNumber"`
}

// HandleState returns a snapshot of the running or last finished bridge
// attempt.
func (h *BridgeHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	state := h.runner.State()

	resp := &bridgeStateResponse{
		Status:    string(state.Status),
		ElapsedMs: state.Elapsed.Milliseconds(),
	}
	if state.SourceTxHash != nil {
		resp.SourceTxHash = state.SourceTxHash.Hex()
	}
	if state.Completion != nil {
		resp.Completion = &completionView{
			Event:       state.Completion.Event,
			To:          state.Completion.To.Hex(),
			Amount:      &BigInt{state.Completion.Amount},
			BlockNumber: state.Completion.BlockNumber,
		}
	}
	if state.Err != nil {
		resp.Error = &userErrorResponse{
			Code:    string(state.Err.Code),
			Message: state.Err.Message,
			Hint:    string(state.Err.Hint),
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleReset clears local orchestration state. It refuses nothing and
// reverses nothing on-chain; a reset during an in-flight attempt is ignored.
func (h *BridgeHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	h.runner.Reset()
	w.WriteHeader(http.StatusNoContent)
}

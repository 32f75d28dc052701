package handlers

import (
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common"

	"github.com/sproutly-tech/sproutly-bridging/staking"
	"github.com/sproutly-tech/sproutly-bridging/wallet"
)

const defaultSlicePeriodSeconds = 86400

type StakeSubmitter interface {
	Stake(humanAmount string, durationSeconds uint64, cliffDays uint64, slicePeriodSeconds uint64, revocable bool) (*staking.StakeResult, error)
}

type LockInvalidator interface {
	Invalidate(beneficiary common.Address)
}

type StakeObserver interface {
	MarkStaked()
}

type StakeBody struct {
	Amount             string `json:"amount"`
	DurationSeconds    uint64 `json:"durationSeconds"`
	CliffDays          uint64 `json:"cliffDays"`
	SlicePeriodSeconds uint64 `json:"slicePeriodSeconds"`
	Revocable          bool   `json:"revocable"`
}

type StakeHandler struct {
	conn     wallet.Connection
	staker   StakeSubmitter
	locks    LockInvalidator
	observer StakeObserver
}

func NewStakeHandler(conn wallet.Connection, staker StakeSubmitter, locks LockInvalidator, observer StakeObserver) *StakeHandler {
	return &StakeHandler{
		conn:     conn,
		staker:   staker,
		locks:    locks,
		observer: observer,
	}
}

type stakeResponse struct {
	ApproveTxHash string `json:"approveTxHash,omitempty"`
	StakeTxHash   string `json:"stakeTxHash"`
}

// HandleStake submits the vesting-schedule creation and waits for its
// receipt. The owner's cached lock list is invalidated so the next read
// refetches the whole list.
func (h *StakeHandler) HandleStake(w http.ResponseWriter, r *http.Request) {
	b := &StakeBody{}
	if err := decodeBody(r, b); err != nil {
		JSONError(w, fmt.Errorf("invalid request body: %s", err), http.StatusBadRequest)
		return
	}
	if b.Amount == "" {
		JSONError(w, fmt.Errorf("missing field 'amount'"), http.StatusBadRequest)
		return
	}
	if b.DurationSeconds == 0 {
		JSONError(w, fmt.Errorf("missing field 'durationSeconds'"), http.StatusBadRequest)
		return
	}
	if b.SlicePeriodSeconds == 0 {
		b.SlicePeriodSeconds = defaultSlicePeriodSeconds
	}

	result, err := h.staker.Stake(b.Amount, b.DurationSeconds, b.CliffDays, b.SlicePeriodSeconds, b.Revocable)
	if err != nil {
		UserError(w, err)
		return
	}

	h.locks.Invalidate(h.conn.Account())
	if h.observer != nil {
		h.observer.MarkStaked()
	}

	resp := &stakeResponse{
		StakeTxHash: result.StakeHash.Hex(),
	}
	if result.ApproveHash != nil {
		resp.ApproveTxHash = result.ApproveHash.Hex()
	}
	writeJSON(w, http.StatusOK, resp)
}

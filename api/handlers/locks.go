package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gorilla/mux"

	"github.com/sproutly-tech/sproutly-bridging/staking"
	"github.com/sproutly-tech/sproutly-bridging/wallet"
)

type ActiveLocksReader interface {
	ActiveLocks(beneficiary common.Address) (*staking.LocksResult, error)
}

type LocksHandler struct {
	locks ActiveLocksReader
}

func NewLocksHandler(locks ActiveLocksReader) *LocksHandler {
	return &LocksHandler{
		locks: locks,
	}
}

type lockView struct {
	ID          string `json:"id"`
	Beneficiary string `json:"beneficiary"`

	AmountTotal *BigInt `json:"amountTotal"`
	Released    *BigInt `json:"released"`
	Vested      *BigInt `json:"vested"`
	Claimable   *BigInt `json:"claimable"`

	AmountDisplay    string `json:"amountDisplay"`
	ClaimableDisplay string `json:"claimableDisplay"`
	DurationLabel    string `json:"durationLabel"`

	Progress      int    `json:"progress"`
	UnlockDate    string `json:"unlockDate"`
	TimeRemaining string `json:"timeRemaining"`
}

type locksResponse struct {
	Locks   []lockView `json:"locks"`
	Dropped int        `json:"dropped"`
}

// HandleLocks returns the active locks owned by the requested address with
// their derived amounts and progress fields.
func (h *LocksHandler) HandleLocks(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	address, ok := vars["address"]
	if !ok || !common.IsHexAddress(address) {
		JSONError(w, fmt.Errorf("invalid address"), http.StatusBadRequest)
		return
	}

	result, err := h.locks.ActiveLocks(common.HexToAddress(address))
	if err != nil {
		UserError(w, err)
		return
	}

	views := make([]lockView, 0, len(result.Locks))
	for _, lock := range result.Locks {
		views = append(views, lockView{
			ID:               hexutil.Encode(lock.ID[:]),
			Beneficiary:      lock.Beneficiary.Hex(),
			AmountTotal:      &BigInt{lock.AmountTotal},
			Released:         &BigInt{lock.Released},
			Vested:           &BigInt{lock.Vested},
			Claimable:        &BigInt{lock.Claimable},
			AmountDisplay:    lock.AmountDisplay,
			ClaimableDisplay: lock.ClaimableDisplay,
			DurationLabel:    lock.DurationLabel,
			Progress:         lock.Progress,
			UnlockDate:       lock.UnlockDate.Format(time.RFC3339),
			TimeRemaining:    lock.TimeRemaining,
		})
	}

	writeJSON(w, http.StatusOK, &locksResponse{
		Locks:   views,
		Dropped: result.Dropped,
	})
}

type ReleaseSubmitter interface {
	Release(id [32]byte) (*common.Hash, error)
}

type ReleaseHandler struct {
	conn     wallet.Connection
	releaser ReleaseSubmitter
	locks    LockInvalidator
}

func NewReleaseHandler(conn wallet.Connection, releaser ReleaseSubmitter, locks LockInvalidator) *ReleaseHandler {
	return &ReleaseHandler{
		conn:     conn,
		releaser: releaser,
		locks:    locks,
	}
}

type releaseResponse struct {
	TxHash string `json:"txHash"`
}

// HandleRelease simulates and submits the claim of the currently releasable
// amount for one schedule, then invalidates the owner's cached lock list.
func (h *ReleaseHandler) HandleRelease(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	raw, err := hexutil.Decode(vars["id"])
	if err != nil || len(raw) != 32 {
		JSONError(w, fmt.Errorf("invalid schedule id"), http.StatusBadRequest)
		return
	}

	var id [32]byte
	copy(id[:], raw)

	hash, err := h.releaser.Release(id)
	if err != nil {
		UserError(w, err)
		return
	}

	h.locks.Invalidate(h.conn.Account())

	writeJSON(w, http.StatusOK, &releaseResponse{TxHash: hash.Hex()})
}

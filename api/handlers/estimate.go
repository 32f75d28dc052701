package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/sproutly-tech/sproutly-bridging/staking"
)

type RewardEstimator interface {
	Estimate(humanAmount string, durationSeconds uint64, cliffSeconds uint64) (*staking.Estimate, error)
}

type EstimateHandler struct {
	estimator RewardEstimator
}

func NewEstimateHandler(estimator RewardEstimator) *EstimateHandler {
	return &EstimateHandler{
		estimator: estimator,
	}
}

type estimateResponse struct {
	Ratio *BigInt `json:"ratio"`

	Base  *BigInt `json:"base"`
	Bonus *BigInt `json:"bonus"`
	Total *BigInt `json:"total"`

	BaseDisplay  string `json:"baseDisplay"`
	BonusDisplay string `json:"bonusDisplay"`
	TotalDisplay string `json:"totalDisplay"`

	CliffTime  string `json:"cliffTime,omitempty"`
	UnlockTime string `json:"unlockTime,omitempty"`
}

// HandleEstimate projects the reward for staking the given amount over the
// given duration, using the ratio delegate the vesting contract points at.
func (h *EstimateHandler) HandleEstimate(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	amount := query.Get("amount")
	if amount == "" {
		JSONError(w, fmt.Errorf("missing query param 'amount'"), http.StatusBadRequest)
		return
	}
	duration, err := strconv.ParseUint(query.Get("duration"), 10, 64)
	if err != nil || duration == 0 {
		JSONError(w, fmt.Errorf("query param 'duration' invalid"), http.StatusBadRequest)
		return
	}
	var cliff uint64
	if raw := query.Get("cliff"); raw != "" {
		cliff, err = strconv.ParseUint(raw, 10, 64)
		if err != nil {
			JSONError(w, fmt.Errorf("query param 'cliff' invalid"), http.StatusBadRequest)
			return
		}
	}

	estimate, err := h.estimator.Estimate(amount, duration, cliff)
	if err != nil {
		UserError(w, err)
		return
	}

	resp := &estimateResponse{
		Ratio:        &BigInt{estimate.Ratio},
		Base:         &BigInt{estimate.Base},
		Bonus:        &BigInt{estimate.Bonus},
		Total:        &BigInt{estimate.Total},
		BaseDisplay:  estimate.BaseDisplay,
		BonusDisplay: estimate.BonusDisplay,
		TotalDisplay: estimate.TotalDisplay,
	}
	if estimate.CliffTime != nil {
		resp.CliffTime = estimate.CliffTime.Format(time.RFC3339)
	}
	if estimate.UnlockTime != nil {
		resp.UnlockTime = estimate.UnlockTime.Format(time.RFC3339)
	}

	writeJSON(w, http.StatusOK, resp)
}

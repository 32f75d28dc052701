package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/sproutly-tech/sproutly-bridging/wizard"
)

type FlowController interface {
	Step() wizard.Step
	Next() (wizard.Step, error)
	CanSkipBridge() bool
	SetTerms(amount string, durationSeconds uint64, cliffDays uint64) error
	Close()
}

type WizardHandler struct {
	flow FlowController
}

func NewWizardHandler(flow FlowController) *WizardHandler {
	return &WizardHandler{
		flow: flow,
	}
}

type wizardStepResponse struct {
	Step          string `json:"step"`
	CanSkipBridge bool   `json:"canSkipBridge"`
}

// HandleStep returns the flow's current step.
func (h *WizardHandler) HandleStep(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, &wizardStepResponse{
		Step:          h.flow.Step().String(),
		CanSkipBridge: h.flow.CanSkipBridge(),
	})
}

// HandleNext advances the flow if the current step is complete.
func (h *WizardHandler) HandleNext(w http.ResponseWriter, r *http.Request) {
	step, err := h.flow.Next()
	if errors.Is(err, wizard.ErrStepIncomplete) {
		JSONError(w, err, http.StatusConflict)
		return
	}

	writeJSON(w, http.StatusOK, &wizardStepResponse{
		Step:          step.String(),
		CanSkipBridge: h.flow.CanSkipBridge(),
	})
}

type TermsBody struct {
	Amount          string `json:"amount"`
	DurationSeconds uint64 `json:"durationSeconds"`
	CliffDays       uint64 `json:"cliffDays"`
}

// HandleTerms records the staking terms chosen on the set-terms step.
func (h *WizardHandler) HandleTerms(w http.ResponseWriter, r *http.Request) {
	b := &TermsBody{}
	if err := decodeBody(r, b); err != nil {
		JSONError(w, fmt.Errorf("invalid request body: %s", err), http.StatusBadRequest)
		return
	}

	if err := h.flow.SetTerms(b.Amount, b.DurationSeconds, b.CliffDays); err != nil {
		JSONError(w, err, http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleClose dismisses the flow. A completed flow starts over on the next
// open; an in-progress one keeps its step.
func (h *WizardHandler) HandleClose(w http.ResponseWriter, r *http.Request) {
	h.flow.Close()
	w.WriteHeader(http.StatusNoContent)
}

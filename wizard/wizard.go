// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package wizard

import (
	"errors"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"

	"github.com/sproutly-tech/sproutly-bridging/bridge"
	"github.com/sproutly-tech/sproutly-bridging/units"
	"github.com/sproutly-tech/sproutly-bridging/wallet"
)

// Step is one stage of the bridge-and-stake flow. Progress is strictly
// forward; there is no back action.
type Step uint8

const (
	StepConnectWallet Step = iota + 1
	StepBridge
	StepSetTerms
	StepReview
	StepSuccess
)

func (s Step) String() string {
	switch s {
	case StepConnectWallet:
		return "connectWallet"
	case StepBridge:
		return "bridge"
	case StepSetTerms:
		return "setTerms"
	case StepReview:
		return "review"
	case StepSuccess:
		return "success"
	default:
		return "unknown"
	}
}

var (
	ErrStepIncomplete = errors.New("current step is not complete")
	ErrInvalidTerms   = errors.New("invalid staking terms")
)

// Terms are the staking parameters chosen on the set-terms step and replayed
// on the review step.
type Terms struct {
	Amount          string
	DurationSeconds uint64
	CliffDays       uint64
}

type BridgeStateReader interface {
	State() bridge.State
}

type BalanceReader interface {
	BalanceOf(address common.Address) (*big.Int, error)
}

// Wizard sequences the bridge-and-stake flow across its steps and owns the
// transition rules. It holds no chain state of its own; step predicates read
// the wallet connection, the bridge orchestrator and the destination token.
type Wizard struct {
	mu sync.Mutex

	step   Step
	terms  *Terms
	staked bool

	conn       wallet.Connection
	bridge     BridgeStateReader
	destToken  BalanceReader
	minBalance *big.Int
}

func NewWizard(conn wallet.Connection, bridge BridgeStateReader, destToken BalanceReader, minBalance *big.Int) *Wizard {
	return &Wizard{
		step:       StepConnectWallet,
		conn:       conn,
		bridge:     bridge,
		destToken:  destToken,
		minBalance: minBalance,
	}
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.step
}

func (w *Wizard) Terms() *Terms {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.terms
}

// Next advances to the following step if the current step's completion
// predicate holds, and returns the step now active.
func (w *Wizard) Next() (Step, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step == StepSuccess {
		return w.step, nil
	}
	if !w.stepComplete() {
		return w.step, ErrStepIncomplete
	}

	w.step++
	log.Debug().Str("step", w.step.String()).Msg("Advanced wizard step")
	return w.step, nil
}

// CanSkipBridge reports whether the account already holds enough tokens on
// the destination chain to stake without bridging. The bridge step offers a
// skip action instead of requiring a deposit when this holds.
func (w *Wizard) CanSkipBridge() bool {
	account := w.conn.Account()
	if account == (common.Address{}) {
		return false
	}

	balance, err := w.destToken.BalanceOf(account)
	if err != nil {
		log.Warn().Err(err).Msg("Failed reading destination balance for skip check")
		return false
	}
	return balance.Cmp(w.minBalance) >= 0
}

// SetTerms records the staking parameters chosen on the set-terms step.
func (w *Wizard) SetTerms(amount string, durationSeconds uint64, cliffDays uint64) error {
	if !units.IsValidNumberInput(amount) || amount == "" || durationSeconds == 0 {
		return ErrInvalidTerms
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.terms = &Terms{
		Amount:          amount,
		DurationSeconds: durationSeconds,
		CliffDays:       cliffDays,
	}
	return nil
}

// MarkStaked records that the stake submission on the review step confirmed,
// which unlocks the advance to the success step.
func (w *Wizard) MarkStaked() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.staked = true
}

// Close dismisses the wizard. A completed flow starts over on the next open;
// an in-progress one resumes on the step it was closed at.
func (w *Wizard) Close() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.step != StepSuccess {
		return
	}

	w.step = StepConnectWallet
	w.terms = nil
	w.staked = false
}

func (w *Wizard) stepComplete() bool {
	switch w.step {
	case StepConnectWallet:
		return w.conn.Account() != (common.Address{})
	case StepBridge:
		return w.bridge.State().Status == bridge.StatusDone || w.CanSkipBridge()
	case StepSetTerms:
		return w.terms != nil
	case StepReview:
		return w.staked
	default:
		return false
	}
}

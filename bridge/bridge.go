// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

// Package bridge drives a token deposit on the source chain through approval,
// fee quoting, submission and destination-chain confirmation.
package bridge

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"

	"github.com/sproutly-tech/sproutly-bridging/chains/evm/calls/events"
	"github.com/sproutly-tech/sproutly-bridging/units"
	"github.com/sproutly-tech/sproutly-bridging/usererr"
	"github.com/sproutly-tech/sproutly-bridging/wallet"
)

type Token interface {
	BalanceOf(account common.Address) (*big.Int, error)
	Allowance(owner common.Address, spender common.Address) (*big.Int, error)
	Approve(spender common.Address, amount *big.Int) (*common.Hash, error)
}

type DepositBridge interface {
	CrossChainID() (*big.Int, error)
	QuoteCrossChainCall(crossChainID *big.Int, extraGas *big.Int) (*big.Int, error)
	SendCrossChainDeposit(to common.Address, amount *big.Int, extraGas *big.Int, fee *big.Int) (*common.Hash, error)
}

type NativeBalanceReader interface {
	BalanceAt(ctx context.Context, account common.Address, block *big.Int) (*big.Int, error)
}

type WithdrawalWaiter interface {
	LatestBlock() (*big.Int, error)
	WaitForWithdrawal(ctx context.Context, receiver common.Address, fromBlock *big.Int) (*events.Withdrawal, error)
}

type Metrics interface {
	TrackBridgeOutcome(outcome string)
	ObserveBridgeDuration(elapsed time.Duration)
}

type Config struct {
	SourceChainID uint64
	BridgeAddress common.Address
	TokenDecimals uint8
	ExtraGas      uint64
}

// Orchestrator owns the per-attempt bridge state machine. One attempt runs at
// a time; state snapshots are safe to read while an attempt is in flight.
type Orchestrator struct {
	conn    wallet.Connection
	token   Token
	bridge  DepositBridge
	native  NativeBalanceReader
	waiter  WithdrawalWaiter
	cfg     Config
	metrics Metrics

	mu       sync.Mutex
	state    State
	inFlight bool
}

func NewOrchestrator(
	conn wallet.Connection,
	token Token,
	bridge DepositBridge,
	native NativeBalanceReader,
	waiter WithdrawalWaiter,
	cfg Config,
	metrics Metrics,
) *Orchestrator {
	return &Orchestrator{
		conn:    conn,
		token:   token,
		bridge:  bridge,
		native:  native,
		waiter:  waiter,
		cfg:     cfg,
		metrics: metrics,
		state:   State{Status: StatusIdle},
	}
}

// State returns a snapshot of the current orchestration state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// InFlight reports whether a bridge attempt is currently running.
func (o *Orchestrator) InFlight() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.inFlight
}

// Reset clears local orchestration state. It never reverses on-chain effects.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.inFlight {
		return
	}
	o.state = State{Status: StatusIdle}
}

// Bridge moves amount from the source chain to the destination chain:
// readiness and balance checks, idempotent approval, fee quote, deposit
// submission carrying the fee as value, then destination-event wait. The
// returned result is the single source of truth for the attempt's outcome.
func (o *Orchestrator) Bridge(ctx context.Context, humanAmount string, receiver *common.Address) Result {
	if err := o.begin(); err != nil {
		return Result{Outcome: OutcomeFailed, Err: err}
	}
	defer o.end()

	result := o.run(ctx, humanAmount, receiver)
	if o.metrics != nil {
		o.metrics.TrackBridgeOutcome(string(result.Outcome))
		if result.Outcome == OutcomeDone {
			o.metrics.ObserveBridgeDuration(result.Elapsed)
		}
	}

	return result
}

func (o *Orchestrator) run(ctx context.Context, humanAmount string, receiver *common.Address) Result {
	if o.conn == nil || o.token == nil || o.bridge == nil || o.native == nil || o.waiter == nil {
		return o.fail(usererr.New(usererr.CodeNotReady, "Connect your wallet first."))
	}
	account := o.conn.Account()
	if account == (common.Address{}) {
		return o.fail(usererr.New(usererr.CodeNotReady, "Connect your wallet first."))
	}

	to := account
	if receiver != nil {
		to = *receiver
	}

	amount, err := units.ToSmallestUnit(humanAmount, o.cfg.TokenDecimals)
	if err != nil {
		return o.fail(usererr.Errorf(usererr.CodeInvalidAmount, "Enter a valid amount.", "parsing amount: %v", err))
	}
	if amount.Sign() <= 0 {
		return o.fail(usererr.New(usererr.CodeInvalidAmount, "Enter a valid amount."))
	}

	if o.conn.ChainID() != o.cfg.SourceChainID {
		err := o.conn.RequestChainSwitch(ctx, o.cfg.SourceChainID)
		if err != nil {
			if usererr.IsUserRejection(err) {
				return o.rejected(err)
			}
			return o.fail(usererr.Normalize(err))
		}
	}

	balance, err := o.token.BalanceOf(account)
	if err != nil {
		return o.fail(usererr.Normalize(err))
	}
	if balance.Cmp(amount) < 0 {
		return o.fail(usererr.Errorf(
			usererr.CodeInsufficientBalance,
			"Your token balance does not cover this amount.",
			"balance %s < requested %s", balance, amount,
		))
	}

	o.transition(StatusApproving)
	allowance, err := o.token.Allowance(account, o.cfg.BridgeAddress)
	if err != nil {
		return o.fail(usererr.Normalize(err))
	}
	if allowance.Cmp(amount) < 0 {
		_, err := o.token.Approve(o.cfg.BridgeAddress, amount)
		if err != nil {
			if usererr.IsUserRejection(err) {
				return o.rejected(err)
			}
			return o.fail(usererr.Normalize(err))
		}
	}
	o.transition(StatusApproved)

	o.transition(StatusQuoting)
	crossChainID, err := o.bridge.CrossChainID()
	if err != nil {
		return o.fail(usererr.Normalize(err))
	}
	extraGas := new(big.Int).SetUint64(o.cfg.ExtraGas)
	fee, err := o.bridge.QuoteCrossChainCall(crossChainID, extraGas)
	if err != nil {
		return o.fail(usererr.Normalize(err))
	}

	native, err := o.native.BalanceAt(ctx, account, nil)
	if err != nil {
		return o.fail(usererr.Normalize(err))
	}
	if native.Cmp(fee) < 0 {
		return o.fail(usererr.Errorf(
			usererr.CodeInsufficientBalance,
			"Your gas balance does not cover the bridging fee.",
			"native balance %s < fee %s", native, fee,
		))
	}

	// The destination block height is recorded before submission so the
	// event poll cannot miss a fast withdrawal.
	destStart, err := o.waiter.LatestBlock()
	if err != nil {
		return o.fail(usererr.Normalize(err))
	}

	o.transition(StatusSending)
	start := time.Now()
	hash, err := o.bridge.SendCrossChainDeposit(to, amount, extraGas, fee)
	if err != nil {
		if usererr.IsUserRejection(err) {
			return o.rejected(err)
		}
		return o.fail(usererr.Normalize(err))
	}
	o.setTxHash(hash)
	o.transition(StatusSent)

	log.Info().
		Str("txHash", hash.Hex()).
		Str("amount", amount.String()).
		Str("receiver", to.Hex()).
		Msg("Deposit confirmed on source chain, waiting for destination withdrawal")

	o.transition(StatusWaitingBase)
	completion, err := o.waiter.WaitForWithdrawal(ctx, to, destStart)
	if err != nil {
		return o.fail(usererr.Normalize(err))
	}

	elapsed := time.Since(start)
	o.mu.Lock()
	o.state.Status = StatusDone
	o.state.Completion = completion
	o.state.Elapsed = elapsed
	result := Result{
		Outcome:      OutcomeDone,
		SourceTxHash: o.state.SourceTxHash,
		Completion:   completion,
		Elapsed:      elapsed,
	}
	o.mu.Unlock()

	log.Info().
		Str("event", completion.Event).
		Uint64("block", completion.BlockNumber).
		Dur("elapsed", elapsed).
		Msg("Bridge attempt completed")

	return result
}

func (o *Orchestrator) begin() *usererr.Error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.inFlight {
		return usererr.Errorf(usererr.CodeUnknown, "A bridge attempt is already running.", "bridge attempt already in progress")
	}
	o.inFlight = true
	o.state = State{Status: StatusIdle}
	return nil
}

func (o *Orchestrator) end() {
	o.mu.Lock()
	o.inFlight = false
	o.mu.Unlock()
}

func (o *Orchestrator) transition(status Status) {
	o.mu.Lock()
	o.state.Status = status
	o.mu.Unlock()
}

func (o *Orchestrator) setTxHash(hash *common.Hash) {
	o.mu.Lock()
	o.state.SourceTxHash = hash
	o.mu.Unlock()
}

// fail parks the state machine in StatusError, keeping whatever hash was
// already captured for manual reconciliation.
func (o *Orchestrator) fail(err *usererr.Error) Result {
	o.mu.Lock()
	o.state.Status = StatusError
	o.state.Err = err
	hash := o.state.SourceTxHash
	o.mu.Unlock()

	log.Warn().Str("code", string(err.Code)).Msgf("Bridge attempt failed: %s", err.Error())
	return Result{Outcome: OutcomeFailed, SourceTxHash: hash, Err: err}
}

// rejected resets back to idle. A declined wallet prompt is an expected path,
// not an error.
func (o *Orchestrator) rejected(err error) Result {
	o.mu.Lock()
	o.state = State{Status: StatusIdle}
	o.mu.Unlock()

	log.Debug().Msgf("Bridge attempt rejected by user: %v", err)
	return Result{Outcome: OutcomeUserRejected}
}

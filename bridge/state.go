// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package bridge

import (
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/sproutly-tech/sproutly-bridging/chains/evm/calls/events"
	"github.com/sproutly-tech/sproutly-bridging/usererr"
)

// Status is the current sub-stage of a bridge attempt. Progress is strictly
// forward; StatusError is reachable from every non-idle status.
type Status string

const (
	StatusIdle        Status = "idle"
	StatusApproving   Status = "approving"
	StatusApproved    Status = "approved"
	StatusQuoting     Status = "quoting"
	StatusSending     Status = "sending"
	StatusSent        Status = "sent"
	StatusWaitingBase Status = "waitingBase"
	StatusDone        Status = "done"
	StatusError       Status = "error"
)

// Outcome is the terminal result of one bridge attempt. A user rejection is
// distinguished from genuine failure so the caller can reset silently instead
// of surfacing an error banner.
type Outcome string

const (
	OutcomeDone         Outcome = "done"
	OutcomeFailed       Outcome = "failed"
	OutcomeUserRejected Outcome = "userRejected"
)

// Result is the discriminated outcome of Bridge. The source transaction hash
// is retained even on destination-wait timeout so operators can reconcile
// manually.
type Result struct {
	Outcome      Outcome
	SourceTxHash *common.Hash
	Completion   *events.Withdrawal
	Elapsed      time.Duration
	Err          *usererr.Error
}

// State is a snapshot of the orchestrator, safe to render while an attempt is
// in flight.
type State struct {
	Status       Status
	SourceTxHash *common.Hash
	Completion   *events.Withdrawal
	Elapsed      time.Duration
	Err          *usererr.Error
}

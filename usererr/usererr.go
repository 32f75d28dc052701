// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

// Package usererr normalizes arbitrary wallet, provider and contract errors
// into a small taxonomy of user-facing messages with retry hints. Orchestration
// boundaries must pass every failure through Normalize before it reaches a
// caller; the technical message is kept for logs and never shown in the
// primary UI.
package usererr

import (
	"errors"
	"fmt"
	"strings"
)

type Code string

const (
	CodeNotReady            Code = "notReady"
	CodeInvalidAmount       Code = "invalidAmount"
	CodeInsufficientBalance Code = "insufficientBalance"
	CodeUserRejected        Code = "userRejected"
	CodeNetworkMismatch     Code = "networkMismatch"
	CodeContractRevert      Code = "contractRevert"
	CodeTimeout             Code = "timeout"
	CodeUnknown             Code = "unknown"
)

type Hint string

const (
	HintRetry         Hint = "retry"
	HintSwitchNetwork Hint = "switch-network"
	HintCheckBalance  Hint = "check-balance"
	HintOpenWallet    Hint = "open-wallet"
	HintNone          Hint = "none"
)

// Error is a normalized, immutable error record. Message is safe to show to
// the user; Technical carries the underlying detail for diagnostics.
type Error struct {
	Code      Code
	Message   string
	Technical string
	Hint      Hint
}

func (e *Error) Error() string {
	if e.Technical != "" {
		return e.Technical
	}
	return e.Message
}

func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Hint:    hintFor(code),
	}
}

// CodeOf extracts the taxonomy code from an error, CodeUnknown if the error
// was never normalized.
func CodeOf(err error) Code {
	var ue *Error
	if errors.As(err, &ue) {
		return ue.Code
	}
	return CodeUnknown
}

var rejectionMarkers = []string{
	"rejected by user",
	"user rejected",
	"user denied",
	"user refused",
	"action_rejected",
	"request rejected",
}

// IsUserRejection reports whether err, anywhere in its cause chain, indicates
// that the user declined a wallet prompt or chain switch.
func IsUserRejection(err error) bool {
	for err != nil {
		msg := strings.ToLower(err.Error())
		for _, marker := range rejectionMarkers {
			if strings.Contains(msg, marker) {
				return true
			}
		}
		err = errors.Unwrap(err)
	}
	return false
}

// revertRewrites maps known revert-reason fragments to specific user
// sentences.
var revertRewrites = map[string]string{
	"not enough vested tokens":       "There is nothing to claim yet for this lock.",
	"not enough withdrawable funds":  "The vesting contract cannot cover this release right now.",
	"vesting schedule revoked":       "This lock was revoked and can no longer be claimed.",
	"insufficient allowance":         "The token allowance is too low for this action.",
	"transfer amount exceeds balance": "Your token balance does not cover this amount.",
}

// Normalize classifies an arbitrary error into the taxonomy. Already
// normalized errors pass through untouched.
func Normalize(err error) *Error {
	if err == nil {
		return nil
	}

	var ue *Error
	if errors.As(err, &ue) {
		return ue
	}

	if IsUserRejection(err) {
		return &Error{
			Code:      CodeUserRejected,
			Message:   "Request cancelled.",
			Technical: err.Error(),
			Hint:      HintNone,
		}
	}

	msg := strings.ToLower(err.Error())

	if strings.Contains(msg, "insufficient funds") || strings.Contains(msg, "insufficient balance") {
		return &Error{
			Code:      CodeInsufficientBalance,
			Message:   "Your balance does not cover this transaction.",
			Technical: err.Error(),
			Hint:      HintCheckBalance,
		}
	}

	if strings.Contains(msg, "execution reverted") || strings.Contains(msg, "revert") {
		for fragment, sentence := range revertRewrites {
			if strings.Contains(msg, fragment) {
				return &Error{
					Code:      CodeContractRevert,
					Message:   sentence,
					Technical: err.Error(),
					Hint:      HintNone,
				}
			}
		}
		return &Error{
			Code:      CodeContractRevert,
			Message:   "This action is not allowed right now.",
			Technical: err.Error(),
			Hint:      HintNone,
		}
	}

	if strings.Contains(msg, "timed out") || strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "deadline exceeded") {
		return &Error{
			Code:      CodeTimeout,
			Message:   "The operation timed out. Please try again.",
			Technical: err.Error(),
			Hint:      HintRetry,
		}
	}

	if strings.Contains(msg, "wrong chain") || strings.Contains(msg, "chain mismatch") ||
		strings.Contains(msg, "unsupported chain") {
		return &Error{
			Code:      CodeNetworkMismatch,
			Message:   "Your wallet is connected to the wrong network.",
			Technical: err.Error(),
			Hint:      HintSwitchNetwork,
		}
	}

	return &Error{
		Code:      CodeUnknown,
		Message:   "Something went wrong. Please try again.",
		Technical: err.Error(),
		Hint:      HintRetry,
	}
}

func hintFor(code Code) Hint {
	switch code {
	case CodeInsufficientBalance:
		return HintCheckBalance
	case CodeNetworkMismatch:
		return HintSwitchNetwork
	case CodeNotReady:
		return HintOpenWallet
	case CodeTimeout, CodeUnknown:
		return HintRetry
	default:
		return HintNone
	}
}

// Errorf creates a normalized error with a formatted technical message.
func Errorf(code Code, message string, format string, args ...interface{}) *Error {
	return &Error{
		Code:      code,
		Message:   message,
		Technical: fmt.Sprintf(format, args...),
		Hint:      hintFor(code),
	}
}

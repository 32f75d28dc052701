// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package events

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethTypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/rs/zerolog/log"
)

const (
	DefaultPollInterval = 3 * time.Second
	DefaultWaitTimeout  = 10 * time.Minute
)

type EventFilterer interface {
	FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]ethTypes.Log, error)
	LatestBlock() (*big.Int, error)
}

// WithdrawalListener polls the destination chain for the bridge-side Withdraw
// or vault-side Withdrawn event addressed to a receiver.
type WithdrawalListener struct {
	client EventFilterer

	bridge common.Address
	vault  common.Address

	pollInterval time.Duration
	waitTimeout  time.Duration
}

func NewWithdrawalListener(client EventFilterer, bridge common.Address, vault common.Address) *WithdrawalListener {
	return &WithdrawalListener{
		client:       client,
		bridge:       bridge,
		vault:        vault,
		pollInterval: DefaultPollInterval,
		waitTimeout:  DefaultWaitTimeout,
	}
}

func (l *WithdrawalListener) LatestBlock() (*big.Int, error) {
	return l.client.LatestBlock()
}

// FetchWithdrawals returns all completion events addressed to receiver in the
// given block range, from either contract.
func (l *WithdrawalListener) FetchWithdrawals(
	ctx context.Context,
	receiver common.Address,
	startBlock *big.Int,
	endBlock *big.Int,
) ([]*Withdrawal, error) {
	q := ethereum.FilterQuery{
		FromBlock: startBlock,
		ToBlock:   endBlock,
		Addresses: []common.Address{l.bridge, l.vault},
		Topics: [][]common.Hash{
			{WithdrawSig.GetTopic(), WithdrawnSig.GetTopic()},
			{common.BytesToHash(receiver.Bytes())},
		},
	}

	logs, err := l.client.FilterLogs(ctx, q)
	if err != nil {
		return nil, err
	}

	withdrawals := make([]*Withdrawal, 0, len(logs))
	for _, lg := range logs {
		w, err := l.unpackWithdrawal(lg)
		if err != nil {
			log.Err(err).Msgf("failed unpacking withdrawal event log")
			continue
		}

		withdrawals = append(withdrawals, w)
	}

	return withdrawals, nil
}

// WaitForWithdrawal polls for a completion event addressed to receiver,
// starting from fromBlock, until a match is found or the timeout elapses.
// The already-committed source-chain work is not rolled back on timeout.
func (l *WithdrawalListener) WaitForWithdrawal(
	ctx context.Context,
	receiver common.Address,
	fromBlock *big.Int,
) (*Withdrawal, error) {
	ctx, cancel := context.WithTimeout(ctx, l.waitTimeout)
	defer cancel()

	ticker := time.NewTicker(l.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("timed out waiting for destination withdrawal event for %s", receiver)
		case <-ticker.C:
			head, err := l.client.LatestBlock()
			if err != nil {
				log.Warn().Msgf("Error fetching destination head block: %v", err)
				continue
			}

			withdrawals, err := l.FetchWithdrawals(ctx, receiver, fromBlock, head)
			if err != nil {
				log.Warn().Msgf("Error polling destination withdrawal events: %v", err)
				continue
			}
			if len(withdrawals) == 0 {
				continue
			}

			return withdrawals[0], nil
		}
	}
}

func (l *WithdrawalListener) unpackWithdrawal(lg ethTypes.Log) (*Withdrawal, error) {
	if len(lg.Topics) < 2 {
		return nil, fmt.Errorf("withdrawal log missing receiver topic")
	}

	event := "Withdraw"
	if lg.Topics[0] == WithdrawnSig.GetTopic() {
		event = "Withdrawn"
	}

	return &Withdrawal{
		Event:       event,
		To:          common.BytesToAddress(lg.Topics[1].Bytes()),
		Amount:      new(big.Int).SetBytes(lg.Data),
		BlockNumber: lg.BlockNumber,
	}, nil
}

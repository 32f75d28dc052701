// The Licensed Work is (c) 2022 Sygma
// SPDX-License-Identifier: LGPL-3.0-only

package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/sygmaprotocol/sygma-core/chains/evm/client"
	"github.com/sygmaprotocol/sygma-core/chains/evm/contracts"
	"github.com/sygmaprotocol/sygma-core/chains/evm/transactor"

	"github.com/sproutly-tech/sproutly-bridging/chains/evm/calls/consts"
)

type BridgeContract struct {
	contracts.Contract
	client client.Client
}

func NewBridgeContract(
	client client.Client,
	address common.Address,
	t transactor.Transactor,
) *BridgeContract {
	return &BridgeContract{
		Contract: contracts.NewContract(address, consts.BridgeABI, nil, client, t),
		client:   client,
	}
}

func (c *BridgeContract) CrossChainID() (*big.Int, error) {
	res, err := c.CallContract("crossChainId")
	if err != nil {
		return nil, err
	}

	return abi.ConvertType(res[0], new(big.Int)).(*big.Int), nil
}

func (c *BridgeContract) MinGasLimit() (*big.Int, error) {
	res, err := c.CallContract("MIN_GAS_LIMIT")
	if err != nil {
		return nil, err
	}

	return abi.ConvertType(res[0], new(big.Int)).(*big.Int), nil
}

// QuoteCrossChainCall returns the native-currency fee required to deliver the
// cross-chain message with the given extra-gas allowance.
func (c *BridgeContract) QuoteCrossChainCall(crossChainID *big.Int, extraGas *big.Int) (*big.Int, error) {
	res, err := c.CallContract("quoteCrossChainCall", crossChainID, extraGas)
	if err != nil {
		return nil, err
	}

	return abi.ConvertType(res[0], new(big.Int)).(*big.Int), nil
}

// SendCrossChainDeposit submits the deposit transaction carrying the quoted
// fee as value and blocks until it is mined.
func (c *BridgeContract) SendCrossChainDeposit(
	to common.Address,
	amount *big.Int,
	extraGas *big.Int,
	fee *big.Int,
) (*common.Hash, error) {
	hash, err := c.ExecuteTransaction(
		"sendCrossChainDeposit",
		transactor.TransactOptions{Value: fee},
		to, amount, extraGas,
	)
	if err != nil {
		return nil, err
	}

	_, err = c.client.WaitAndReturnTxReceipt(*hash)
	if err != nil {
		return hash, err
	}

	return hash, nil
}

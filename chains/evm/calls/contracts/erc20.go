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

type ERC20Contract struct {
	contracts.Contract
	client client.Client
}

func NewERC20Contract(
	client client.Client,
	address common.Address,
	t transactor.Transactor,
) *ERC20Contract {
	return &ERC20Contract{
		Contract: contracts.NewContract(address, consts.ERC20ABI, nil, client, t),
		client:   client,
	}
}

func (c *ERC20Contract) BalanceOf(account common.Address) (*big.Int, error) {
	res, err := c.CallContract("balanceOf", account)
	if err != nil {
		return nil, err
	}

	return abi.ConvertType(res[0], new(big.Int)).(*big.Int), nil
}

func (c *ERC20Contract) Allowance(owner common.Address, spender common.Address) (*big.Int, error) {
	res, err := c.CallContract("allowance", owner, spender)
	if err != nil {
		return nil, err
	}

	return abi.ConvertType(res[0], new(big.Int)).(*big.Int), nil
}

// Approve submits an approval transaction and blocks until it is mined.
func (c *ERC20Contract) Approve(spender common.Address, amount *big.Int) (*common.Hash, error) {
	hash, err := c.ExecuteTransaction("approve", transactor.TransactOptions{}, spender, amount)
	if err != nil {
		return nil, err
	}

	_, err = c.client.WaitAndReturnTxReceipt(*hash)
	if err != nil {
		return nil, err
	}

	return hash, nil
}

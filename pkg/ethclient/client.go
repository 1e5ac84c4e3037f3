// Copyright © 2025 Kaleido, Inc.
//
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ethclient

import (
	"context"
	"encoding/json"

	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/msgs"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/log"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/rpcclient"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/abi"
	"github.com/hyperledger/firefly-signer/pkg/ethsigner"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// EthClient is the set of node calls the insurance client depends on
type EthClient interface {
	ChainID() int64
	RPC() rpcclient.Client

	ABI(ctx context.Context, a abi.ABI) (ABIClient, error)

	GasPrice(ctx context.Context) (*ethtypes.HexInteger, error)
	GetTransactionCount(ctx context.Context, fromAddr ethtypes.Address0xHex) (*ethtypes.HexUint64, error)
	EstimateGas(ctx context.Context, tx *ethsigner.Transaction, opts ...CallOption) (EstimateGasResult, error)
	CallContract(ctx context.Context, tx *ethsigner.Transaction, block string, opts ...CallOption) (CallResult, error)
	SendTransaction(ctx context.Context, tx *ethsigner.Transaction) (ethtypes.HexBytes0xPrefix, error)
	SendRawTransaction(ctx context.Context, rawTX ethtypes.HexBytes0xPrefix) (ethtypes.HexBytes0xPrefix, error)
	GetTransactionReceipt(ctx context.Context, txHash ethtypes.HexBytes0xPrefix) (*TransactionReceipt, error)
}

// CallOption affects how call results and revert data are decoded
type CallOption interface {
	isCallOptions()
}

type callOptions struct {
	errABI  abi.ABI
	outputs abi.TypeComponent
}

func (co *callOptions) isCallOptions() {}

// WithErrorsFrom uses the custom errors of the supplied ABI to decode revert data
func WithErrorsFrom(a abi.ABI) CallOption {
	return &callOptions{errABI: a}
}

// WithOutputs decodes the return data of a call
func WithOutputs(outputs abi.TypeComponent) CallOption {
	return &callOptions{outputs: outputs}
}

type EstimateGasResult struct {
	GasLimit   ethtypes.HexUint64
	RevertData ethtypes.HexBytes0xPrefix
}

type CallResult struct {
	Data          ethtypes.HexBytes0xPrefix
	DecodedResult *abi.ComponentValue
	RevertData    ethtypes.HexBytes0xPrefix
}

type ethClient struct {
	chainID int64
	rpc     rpcclient.Client
}

// WrapRPCClient queries the chain ID of the node, and returns a client bound to it
func WrapRPCClient(ctx context.Context, rpc rpcclient.Client) (EthClient, error) {
	ec := &ethClient{rpc: rpc}
	if err := ec.setupChainID(ctx); err != nil {
		return nil, err
	}
	return ec, nil
}

func (ec *ethClient) ChainID() int64 {
	return ec.chainID
}

func (ec *ethClient) RPC() rpcclient.Client {
	return ec.rpc
}

func (ec *ethClient) setupChainID(ctx context.Context) error {
	var chainID ethtypes.HexUint64
	if rpcErr := ec.rpc.CallRPC(ctx, &chainID, "eth_chainId"); rpcErr != nil {
		log.L(ctx).Errorf("eth_chainId failed: %s", rpcErr)
		return i18n.WrapError(ctx, rpcErr, msgs.MsgTxChainIDFailed)
	}
	ec.chainID = int64(chainID.Uint64())
	return nil
}

func (ec *ethClient) CallContract(ctx context.Context, tx *ethsigner.Transaction, block string, opts ...CallOption) (res CallResult, err error) {
	var outputs abi.TypeComponent
	errABI := abi.ABI{}
	for _, o := range opts {
		co := o.(*callOptions)
		if co.errABI != nil {
			errABI = co.errABI
		}
		if co.outputs != nil {
			outputs = co.outputs
		}
	}
	if rpcErr := ec.rpc.CallRPC(ctx, &res.Data, "eth_call", tx, block); rpcErr != nil {
		e := rpcErr.RPCError()
		log.L(ctx).Debugf("eth_call failed: %s", e.Message)
		if len(e.Data) != 0 {
			_ = json.Unmarshal(e.Data, &res.RevertData)
			if len(res.RevertData) > 0 {
				errString, _ := errABI.ErrorStringCtx(ctx, res.RevertData)
				if errString == "" {
					errString = res.RevertData.String()
				}
				return res, i18n.NewError(ctx, msgs.MsgTxCallReverted, errString)
			}
		}
		return res, e
	}

	if outputs != nil {
		res.DecodedResult, err = outputs.DecodeABIDataCtx(ctx, res.Data, 0)
	}
	return res, err
}

func (ec *ethClient) EstimateGas(ctx context.Context, tx *ethsigner.Transaction, opts ...CallOption) (res EstimateGasResult, err error) {
	if rpcErr := ec.rpc.CallRPC(ctx, &res.GasLimit, "eth_estimateGas", tx); rpcErr != nil {
		log.L(ctx).Errorf("eth_estimateGas failed: %s", rpcErr)
		// replay as a call to recover the revert reason
		callRes, callErr := ec.CallContract(ctx, tx, "latest", opts...)
		err = rpcErr
		if callErr != nil {
			err = callErr
		}
		res.RevertData = callRes.RevertData
		return res, err
	}
	return res, nil
}

// query performs a read with no decoding beyond JSON into T
func query[T any](ctx context.Context, rpc rpcclient.Client, method string, params ...interface{}) (T, error) {
	var result T
	if rpcErr := rpc.CallRPC(ctx, &result, method, params...); rpcErr != nil {
		log.L(ctx).Errorf("%s failed: %s", method, rpcErr)
		return result, rpcErr
	}
	return result, nil
}

func (ec *ethClient) GasPrice(ctx context.Context) (*ethtypes.HexInteger, error) {
	return query[*ethtypes.HexInteger](ctx, ec.rpc, "eth_gasPrice")
}

func (ec *ethClient) GetTransactionCount(ctx context.Context, fromAddr ethtypes.Address0xHex) (*ethtypes.HexUint64, error) {
	return query[*ethtypes.HexUint64](ctx, ec.rpc, "eth_getTransactionCount", fromAddr, "pending")
}

// SendTransaction asks the node to sign with an account it manages
func (ec *ethClient) SendTransaction(ctx context.Context, tx *ethsigner.Transaction) (ethtypes.HexBytes0xPrefix, error) {
	return query[ethtypes.HexBytes0xPrefix](ctx, ec.rpc, "eth_sendTransaction", tx)
}

func (ec *ethClient) SendRawTransaction(ctx context.Context, rawTX ethtypes.HexBytes0xPrefix) (ethtypes.HexBytes0xPrefix, error) {
	return query[ethtypes.HexBytes0xPrefix](ctx, ec.rpc, "eth_sendRawTransaction", rawTX)
}

// GetTransactionReceipt returns nil with no error while the node has no receipt
func (ec *ethClient) GetTransactionReceipt(ctx context.Context, txHash ethtypes.HexBytes0xPrefix) (*TransactionReceipt, error) {
	return query[*TransactionReceipt](ctx, ec.rpc, "eth_getTransactionReceipt", txHash)
}

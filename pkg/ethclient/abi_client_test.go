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
	"bytes"
	"context"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/rpcclient"
	"github.com/hyperledger/firefly-signer/pkg/abi"
	"github.com/hyperledger/firefly-signer/pkg/ethsigner"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testABI = `[
	{"type":"function","name":"submitClaim","stateMutability":"nonpayable","inputs":[{"name":"policyId","type":"uint256"},{"name":"amount","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"claims","stateMutability":"view","inputs":[{"name":"","type":"uint256"}],"outputs":[{"name":"id","type":"uint256"},{"name":"claimant","type":"address"},{"name":"approved","type":"bool"}]},
	{"type":"function","name":"nextClaimId","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"event","name":"ClaimSubmitted","inputs":[{"name":"claimId","type":"uint256","indexed":true},{"name":"policyId","type":"uint256","indexed":true},{"name":"amount","type":"uint256","indexed":false}]}
]`

func testABIClient(t *testing.T, ec *ethClient) ABIClient {
	var a abi.ABI
	require.NoError(t, json.Unmarshal([]byte(testABI), &a))
	abic, err := ec.ABI(context.Background(), a)
	require.NoError(t, err)
	return abic
}

func TestABIFunctionBuildCallData(t *testing.T) {
	ctx, ec, done := newTestClientAndServer(t, mockEth{})
	defer done()
	abic := testABIClient(t, ec)
	assert.True(t, abic.HasFunction("submitClaim"))
	assert.True(t, abic.HasFunction("submitClaim(uint256,uint256)"))
	assert.False(t, abic.HasFunction("fund"))

	fn, err := abic.Function(ctx, "submitClaim")
	require.NoError(t, err)
	assert.Equal(t, "submitClaim", fn.ABIEntry().Name)

	tx, err := fn.R(ctx).
		From(testAddr).
		To(testAddr).
		Value(big.NewInt(0)).
		GasLimit(100000).
		Input(map[string]any{"policyId": "0", "amount": "2000000000000000000"}).
		TX()
	require.NoError(t, err)
	assert.Nil(t, tx.Value)
	assert.Equal(t, uint64(100000), tx.GasLimit.BigInt().Uint64())
	assert.JSONEq(t, `"0x1d0cd5b99d2e2a380e52b4000377dd507c6df754"`, string(tx.From))

	cv, err := abic.ABI().Functions()["submitClaim"].DecodeCallData(tx.Data)
	require.NoError(t, err)
	values, err := StandardABISerializer().SerializeJSON(cv)
	require.NoError(t, err)
	assert.JSONEq(t, `{"policyId":"0","amount":"2000000000000000000"}`, string(values))
}

func TestABIFunctionStructInput(t *testing.T) {
	ctx, ec, done := newTestClientAndServer(t, mockEth{})
	defer done()
	fn, err := testABIClient(t, ec).Function(ctx, "submitClaim")
	require.NoError(t, err)
	tx, err := fn.R(ctx).Value(big.NewInt(5)).Input(struct {
		PolicyID string `json:"policyId"`
		Amount   string `json:"amount"`
	}{"1", "2"}).TX()
	require.NoError(t, err)
	assert.Equal(t, int64(5), tx.Value.BigInt().Int64())
	assert.Len(t, tx.Data, 4+64)
}

func TestABIFunctionMissingInput(t *testing.T) {
	ctx, ec, done := newTestClientAndServer(t, mockEth{})
	defer done()
	fn, err := testABIClient(t, ec).Function(ctx, "submitClaim")
	require.NoError(t, err)
	_, err = fn.R(ctx).TX()
	assert.Regexp(t, "IN010406", err)
	_, err = fn.R(ctx).Input(map[string]any{"policyId": "not a number"}).TX()
	assert.Regexp(t, "IN010406", err)
}

func TestABIFunctionMissing(t *testing.T) {
	ctx, ec, done := newTestClientAndServer(t, mockEth{})
	defer done()
	_, err := testABIClient(t, ec).Function(ctx, "fund")
	assert.Regexp(t, "IN010401", err)
}

func TestABIEvent(t *testing.T) {
	ctx, ec, done := newTestClientAndServer(t, mockEth{})
	defer done()
	abic := testABIClient(t, ec)
	e, err := abic.Event(ctx, "ClaimSubmitted")
	require.NoError(t, err)
	assert.Equal(t, "ClaimSubmitted", e.Name)
	_, err = abic.Event(ctx, "ContractFunded")
	assert.Regexp(t, "IN010402", err)
}

func TestABICallFields(t *testing.T) {
	var a abi.ABI
	require.NoError(t, json.Unmarshal([]byte(testABI), &a))
	claimData, err := a.Functions()["claims"].Outputs.EncodeABIDataValues(map[string]any{
		"id":       "7",
		"claimant": testAddr.String(),
		"approved": true,
	})
	require.NoError(t, err)

	ctx, ec, done := newTestClientAndServer(t, mockEth{
		"eth_call": func(params []json.RawMessage) (any, *rpcclient.RPCError) {
			var tx ethsigner.Transaction
			require.NoError(t, json.Unmarshal(params[0], &tx))
			assert.True(t, bytes.Equal(a.Functions()["claims"].FunctionSelectorBytes(), tx.Data[0:4]))
			return ethtypes.HexBytes0xPrefix(claimData), nil
		},
	})
	defer done()

	fn, err := testABIClient(t, ec).Function(ctx, "claims")
	require.NoError(t, err)
	fields, err := fn.R(ctx).To(testAddr).Input([]any{"7"}).CallFields()
	require.NoError(t, err)
	assert.Equal(t, "7", fields["id"])
	assert.Equal(t, "0x1d0cd5b99d2e2a380e52b4000377dd507c6df754", fields["claimant"])
	assert.Equal(t, true, fields["approved"])
}

func TestABICallUnnamedOutput(t *testing.T) {
	ctx, ec, done := newTestClientAndServer(t, mockEth{
		"eth_call": func(params []json.RawMessage) (any, *rpcclient.RPCError) {
			return "0x0000000000000000000000000000000000000000000000000000000000000003", nil
		},
	})
	defer done()

	fn, err := testABIClient(t, ec).Function(ctx, "nextClaimId")
	require.NoError(t, err)
	jsonData, err := fn.R(ctx).To(testAddr).BlockRef(PENDING).CallJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"0":"3"}`, string(jsonData))
}

func TestABICallEmptyResult(t *testing.T) {
	ctx, ec, done := newTestClientAndServer(t, mockEth{
		"eth_call": func(params []json.RawMessage) (any, *rpcclient.RPCError) { return "0x", nil },
	})
	defer done()

	fn, err := testABIClient(t, ec).Function(ctx, "nextClaimId")
	require.NoError(t, err)
	_, err = fn.R(ctx).To(testAddr).CallFields()
	assert.Regexp(t, "IN010407", err)
}

func TestABICallFail(t *testing.T) {
	ctx, ec, done := newTestClientAndServer(t, mockEth{
		"eth_call": func(params []json.RawMessage) (any, *rpcclient.RPCError) { return nil, popErr() },
	})
	defer done()

	fn, err := testABIClient(t, ec).Function(ctx, "nextClaimId")
	require.NoError(t, err)
	_, err = fn.R(ctx).To(testAddr).CallFields()
	assert.Regexp(t, "IN010405.*pop", err)
}

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
	"math/big"
	"strconv"

	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/msgs"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/abi"
	"github.com/hyperledger/firefly-signer/pkg/ethsigner"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

type ABIClient interface {
	ABI() abi.ABI
	HasFunction(nameOrFullSig string) bool
	Function(ctx context.Context, nameOrFullSig string) (ABIFunctionClient, error)
	Event(ctx context.Context, name string) (*abi.Entry, error)
}

type ABIFunctionClient interface {
	ABIEntry() *abi.Entry
	R(ctx context.Context) ABIFunctionRequestBuilder
}

type ABIFunctionRequestBuilder interface {
	From(*ethtypes.Address0xHex) ABIFunctionRequestBuilder
	To(*ethtypes.Address0xHex) ABIFunctionRequestBuilder
	Value(*big.Int) ABIFunctionRequestBuilder
	GasLimit(uint64) ABIFunctionRequestBuilder
	BlockRef(blockRef BlockRef) ABIFunctionRequestBuilder
	Input(any) ABIFunctionRequestBuilder

	// TX returns the transaction, with call data built on first use
	TX() (*ethsigner.Transaction, error)
	BuildCallData() error
	// Call performs an eth_call and returns the decoded outputs as a JSON object
	CallJSON() ([]byte, error)
	// CallFields performs an eth_call and returns the decoded outputs keyed by name
	CallFields() (map[string]any, error)
}

type BlockRef string

const (
	LATEST  BlockRef = "latest"
	PENDING BlockRef = "pending"
)

// StandardABISerializer renders decoded values as a JSON object, with integers as base 10
// strings, bytes and addresses as 0x prefixed hex, and booleans as JSON booleans
func StandardABISerializer() *abi.Serializer {
	return abi.NewSerializer().
		SetFormattingMode(abi.FormatAsObjects).
		SetIntSerializer(abi.Base10StringIntSerializer).
		SetFloatSerializer(abi.Base10StringFloatSerializer).
		SetByteSerializer(abi.HexByteSerializer0xPrefix).
		SetAddressSerializer(abi.HexAddrSerializer0xPrefix)
}

type abiClient struct {
	ec        *ethClient
	abi       abi.ABI
	functions map[string]*abi.Entry
	events    map[string]*abi.Entry
}

type abiFunctionClient struct {
	ec         *ethClient
	errABI     abi.ABI
	signature  string
	selector   []byte
	abiEntry   *abi.Entry
	inputCount int
	inputs     abi.TypeComponent
	outputs    abi.TypeComponent
}

type abiFunctionRequestBuilder struct {
	*abiFunctionClient
	ctx   context.Context
	tx    ethsigner.Transaction
	block string
	input any
}

func (ec *ethClient) ABI(ctx context.Context, a abi.ABI) (ABIClient, error) {
	functions := map[string]*abi.Entry{}
	events := map[string]*abi.Entry{}
	for _, e := range a {
		if e.Name == "" {
			continue
		}
		s, err := e.SignatureCtx(ctx)
		if err != nil {
			return nil, i18n.WrapError(ctx, err, msgs.MsgContractABIInvalid)
		}
		switch {
		case e.IsFunction():
			for i, o := range e.Outputs {
				if o.Name == "" {
					o.Name = strconv.Itoa(i)
				}
			}
			functions[e.Name] = e
			functions[s] = e
		case e.Type == abi.Event:
			events[e.Name] = e
			events[s] = e
		}
	}
	return &abiClient{
		ec:        ec,
		abi:       a,
		functions: functions,
		events:    events,
	}, nil
}

func (abic *abiClient) ABI() abi.ABI {
	return abic.abi
}

func (abic *abiClient) HasFunction(nameOrFullSig string) bool {
	return abic.functions[nameOrFullSig] != nil
}

func (abic *abiClient) Event(ctx context.Context, name string) (*abi.Entry, error) {
	e := abic.events[name]
	if e == nil {
		return nil, i18n.NewError(ctx, msgs.MsgContractEventMissing, name)
	}
	return e, nil
}

func (abic *abiClient) Function(ctx context.Context, nameOrFullSig string) (_ ABIFunctionClient, err error) {
	ac := &abiFunctionClient{ec: abic.ec, errABI: abic.abi}
	functionABI := abic.functions[nameOrFullSig]
	if functionABI == nil {
		return nil, i18n.NewError(ctx, msgs.MsgContractFunctionMissing, nameOrFullSig)
	}
	ac.abiEntry = functionABI
	ac.selector, err = functionABI.GenerateFunctionSelectorCtx(ctx)
	if err == nil {
		ac.signature, err = functionABI.SignatureCtx(ctx)
	}
	if err == nil {
		ac.inputCount = len(functionABI.Inputs)
		ac.inputs, err = functionABI.Inputs.TypeComponentTreeCtx(ctx)
	}
	if err == nil {
		ac.outputs, err = functionABI.Outputs.TypeComponentTreeCtx(ctx)
	}
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgContractABIInvalid)
	}
	return ac, nil
}

func (ac *abiFunctionClient) ABIEntry() *abi.Entry {
	return ac.abiEntry
}

func (ac *abiFunctionClient) R(ctx context.Context) ABIFunctionRequestBuilder {
	return &abiFunctionRequestBuilder{
		ctx:               ctx,
		abiFunctionClient: ac,
		block:             string(LATEST),
	}
}

func (ac *abiFunctionRequestBuilder) From(from *ethtypes.Address0xHex) ABIFunctionRequestBuilder {
	if from != nil {
		ac.tx.From = json.RawMessage(`"` + from.String() + `"`)
	}
	return ac
}

func (ac *abiFunctionRequestBuilder) To(to *ethtypes.Address0xHex) ABIFunctionRequestBuilder {
	ac.tx.To = to
	return ac
}

func (ac *abiFunctionRequestBuilder) Value(value *big.Int) ABIFunctionRequestBuilder {
	if value != nil && value.Sign() > 0 {
		ac.tx.Value = ethtypes.NewHexInteger(value)
	}
	return ac
}

func (ac *abiFunctionRequestBuilder) GasLimit(gasLimit uint64) ABIFunctionRequestBuilder {
	ac.tx.GasLimit = ethtypes.NewHexIntegerU64(gasLimit)
	return ac
}

func (ac *abiFunctionRequestBuilder) BlockRef(blockRef BlockRef) ABIFunctionRequestBuilder {
	ac.block = string(blockRef)
	return ac
}

func (ac *abiFunctionRequestBuilder) Input(input any) ABIFunctionRequestBuilder {
	ac.input = input
	return ac
}

func (ac *abiFunctionRequestBuilder) BuildCallData() (err error) {
	inputData := []byte{}
	if ac.inputCount > 0 {
		var inputValues any
		var cv *abi.ComponentValue
		switch input := ac.input.(type) {
		case nil:
			err = i18n.NewError(ac.ctx, msgs.MsgContractEncodeFailed, ac.signature)
		case map[string]any, []any:
			// keyed by name, or positional
			inputValues = input
		case *abi.ComponentValue:
			cv = input
		default:
			var jsonInput []byte
			var inputMap map[string]any
			jsonInput, err = json.Marshal(ac.input)
			if err == nil {
				err = json.Unmarshal(jsonInput, &inputMap)
			}
			inputValues = inputMap
		}
		if err == nil && cv == nil {
			cv, err = ac.inputs.ParseExternalCtx(ac.ctx, inputValues)
		}
		if err == nil {
			inputData, err = cv.EncodeABIDataCtx(ac.ctx)
		}
		if err != nil {
			return i18n.WrapError(ac.ctx, err, msgs.MsgContractEncodeFailed, ac.signature)
		}
	}
	ac.tx.Data = make([]byte, len(ac.selector)+len(inputData))
	copy(ac.tx.Data, ac.selector)
	copy(ac.tx.Data[len(ac.selector):], inputData)
	return nil
}

func (ac *abiFunctionRequestBuilder) TX() (*ethsigner.Transaction, error) {
	if ac.tx.Data == nil {
		if err := ac.BuildCallData(); err != nil {
			return nil, err
		}
	}
	return &ac.tx, nil
}

func (ac *abiFunctionRequestBuilder) call() (*abi.ComponentValue, error) {
	tx, err := ac.TX()
	if err != nil {
		return nil, err
	}
	res, err := ac.ec.CallContract(ac.ctx, tx, ac.block, WithErrorsFrom(ac.errABI))
	if err != nil {
		return nil, i18n.WrapError(ac.ctx, err, msgs.MsgContractCallFailed, ac.abiEntry.Name)
	}
	cv, err := ac.outputs.DecodeABIDataCtx(ac.ctx, res.Data, 0)
	if err != nil {
		return nil, i18n.WrapError(ac.ctx, err, msgs.MsgContractDecodeFailed, ac.abiEntry.Name)
	}
	return cv, nil
}

func (ac *abiFunctionRequestBuilder) CallJSON() ([]byte, error) {
	cv, err := ac.call()
	if err != nil {
		return nil, err
	}
	jsonData, err := StandardABISerializer().SerializeJSONCtx(ac.ctx, cv)
	if err != nil {
		return nil, i18n.WrapError(ac.ctx, err, msgs.MsgContractDecodeFailed, ac.abiEntry.Name)
	}
	return jsonData, nil
}

func (ac *abiFunctionRequestBuilder) CallFields() (map[string]any, error) {
	jsonData, err := ac.CallJSON()
	if err != nil {
		return nil, err
	}
	var fields map[string]any
	if err := json.Unmarshal(jsonData, &fields); err != nil {
		return nil, i18n.WrapError(ac.ctx, err, msgs.MsgContractDecodeFailed, ac.abiEntry.Name)
	}
	return fields, nil
}

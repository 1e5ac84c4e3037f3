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

package insurance

import (
	"bytes"
	"context"
	"encoding/json"
	"math/big"
	"strconv"

	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/msgs"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/ethclient"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/log"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/abi"
	"github.com/hyperledger/firefly-signer/pkg/ethsigner"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

const (
	MethodNextPolicyID = "nextPolicyId"
	MethodNextClaimID  = "nextClaimId"
	MethodPolicies     = "policies"
	MethodClaims       = "claims"
	MethodIssuePolicy  = "issuePolicy"
	MethodPayPremium   = "payPremium"
	MethodSubmitClaim  = "submitClaim"
	MethodApproveClaim = "approveClaim"
	MethodPayClaim     = "payClaim"
	MethodFundContract = "fundContract"
	MethodFund         = "fund"

	EventPolicyIssued   = "PolicyIssued"
	EventPremiumPaid    = "PremiumPaid"
	EventClaimSubmitted = "ClaimSubmitted"
	EventClaimApproved  = "ClaimApproved"
	EventClaimPaid      = "ClaimPaid"
	EventContractFunded = "ContractFunded"
)

// Contract is a handle to one deployed insurance contract
type Contract struct {
	address ethtypes.Address0xHex
	abic    ethclient.ABIClient
}

func NewContract(ctx context.Context, ec ethclient.EthClient, address string, a abi.ABI) (*Contract, error) {
	addr, err := ethtypes.NewAddress(address)
	if err != nil || *addr == ZeroAddress {
		return nil, i18n.WrapError(ctx, err, msgs.MsgConfigContractAddr, address)
	}
	abic, err := ec.ABI(ctx, a)
	if err != nil {
		return nil, err
	}
	return &Contract{address: *addr, abic: abic}, nil
}

func (c *Contract) Address() *ethtypes.Address0xHex {
	return &c.address
}

func (c *Contract) HasFunction(name string) bool {
	return c.abic.HasFunction(name)
}

func (c *Contract) read(ctx context.Context, method string, input []any) (map[string]any, error) {
	fn, err := c.abic.Function(ctx, method)
	if err != nil {
		return nil, err
	}
	req := fn.R(ctx).To(&c.address)
	if input != nil {
		req = req.Input(input)
	}
	return req.CallFields()
}

// Authority reads the administrator address through the named accessor
func (c *Contract) Authority(ctx context.Context, method string) (*ethtypes.Address0xHex, error) {
	fields, err := c.read(ctx, method, nil)
	if err != nil {
		return nil, err
	}
	return NewFields(method, 0, fields).Address(ctx, "0")
}

func (c *Contract) counter(ctx context.Context, method string) (uint64, error) {
	fields, err := c.read(ctx, method, nil)
	if err != nil {
		return 0, err
	}
	return NewFields(method, 0, fields).Uint64(ctx, "0")
}

func (c *Contract) NextPolicyID(ctx context.Context) (uint64, error) {
	return c.counter(ctx, MethodNextPolicyID)
}

func (c *Contract) NextClaimID(ctx context.Context) (uint64, error) {
	return c.counter(ctx, MethodNextClaimID)
}

func idInput(id uint64) []any {
	return []any{strconv.FormatUint(id, 10)}
}

func (c *Contract) Policy(ctx context.Context, id uint64) (*PolicyRecord, error) {
	fields, err := c.read(ctx, MethodPolicies, idInput(id))
	if err != nil {
		return nil, err
	}
	return DecodePolicyRecord(ctx, id, fields)
}

func (c *Contract) Claim(ctx context.Context, id uint64) (*ClaimRecord, error) {
	fields, err := c.read(ctx, MethodClaims, idInput(id))
	if err != nil {
		return nil, err
	}
	return DecodeClaimRecord(ctx, id, fields)
}

// BuildTransaction encodes a state changing call, with value attached for payable methods
func (c *Contract) BuildTransaction(ctx context.Context, from *ethtypes.Address0xHex, method string, input any, value *big.Int) (*ethsigner.Transaction, error) {
	fn, err := c.abic.Function(ctx, method)
	if err != nil {
		return nil, err
	}
	req := fn.R(ctx).From(from).To(&c.address).Value(value)
	if input != nil {
		req = req.Input(input)
	}
	return req.TX()
}

// FindEvent returns the first log in the receipt emitted by this contract matching the
// named event, or nil if there is none. An event missing from the ABI is treated as not emitted.
func (c *Contract) FindEvent(ctx context.Context, receipt *ethclient.TransactionReceipt, eventName string) (*Fields, error) {
	event, err := c.abic.Event(ctx, eventName)
	if err != nil {
		log.L(ctx).Debugf("ABI has no %s event: %s", eventName, err)
		return nil, nil
	}
	sigHash := event.SignatureHashBytes()
	for _, l := range receipt.Logs {
		if l.Removed || l.Address == nil || *l.Address != c.address || len(l.Topics) == 0 || !bytes.Equal(l.Topics[0], sigHash) {
			continue
		}
		cv, err := event.DecodeEventDataCtx(ctx, l.Topics, l.Data)
		var jsonData []byte
		if err == nil {
			jsonData, err = ethclient.StandardABISerializer().SerializeJSONCtx(ctx, cv)
		}
		var values map[string]any
		if err == nil {
			err = json.Unmarshal(jsonData, &values)
		}
		if err != nil {
			return nil, i18n.WrapError(ctx, err, msgs.MsgContractEventDecodeFailed, eventName)
		}
		return NewFields(eventName, uint64(l.LogIndex), values), nil
	}
	return nil, nil
}

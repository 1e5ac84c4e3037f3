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
	"strings"

	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

type TransactionReceipt struct {
	BlockHash       ethtypes.HexBytes0xPrefix `json:"blockHash"`
	BlockNumber     ethtypes.HexUint64        `json:"blockNumber"`
	From            *ethtypes.Address0xHex    `json:"from"`
	GasUsed         *ethtypes.HexInteger      `json:"gasUsed"`
	Logs            []*LogJSONRPC             `json:"logs"`
	Status          *ethtypes.HexInteger      `json:"status"`
	To              *ethtypes.Address0xHex    `json:"to"`
	TransactionHash ethtypes.HexBytes0xPrefix `json:"transactionHash"`
}

type LogJSONRPC struct {
	Removed         bool                        `json:"removed"`
	LogIndex        ethtypes.HexUint64          `json:"logIndex"`
	BlockNumber     ethtypes.HexUint64          `json:"blockNumber"`
	TransactionHash ethtypes.HexBytes0xPrefix   `json:"transactionHash"`
	BlockHash       ethtypes.HexBytes0xPrefix   `json:"blockHash"`
	Address         *ethtypes.Address0xHex      `json:"address"`
	Data            ethtypes.HexBytes0xPrefix   `json:"data"`
	Topics          []ethtypes.HexBytes0xPrefix `json:"topics"`
}

// Succeeded is true for a post-Byzantium receipt with a non-zero status
func (r *TransactionReceipt) Succeeded() bool {
	return r.Status != nil && r.Status.BigInt().Sign() > 0
}

// ErrorReason classifies the text of an error returned by a node or wallet
type ErrorReason string

const (
	// ErrorReasonInvalidInputs transaction inputs could not be encoded (nothing was sent to the node)
	ErrorReasonInvalidInputs ErrorReason = "invalid_inputs"
	// ErrorReasonTransactionReverted on-chain execution reverted, during estimation, a call or settlement
	ErrorReasonTransactionReverted ErrorReason = "transaction_reverted"
	// ErrorReasonNonceTooLow the nonce has already been used
	ErrorReasonNonceTooLow ErrorReason = "nonce_too_low"
	// ErrorReasonTransactionUnderpriced gas price below the node minimum, or a replacement without a price bump
	ErrorReasonTransactionUnderpriced ErrorReason = "transaction_underpriced"
	// ErrorReasonInsufficientFunds the sender cannot pay for gas plus the attached value
	ErrorReasonInsufficientFunds ErrorReason = "insufficient_funds"
	// ErrorReasonNotFound the requested object was not found
	ErrorReasonNotFound ErrorReason = "not_found"
	// ErrorKnownTransaction the exact transaction is already known
	ErrorKnownTransaction ErrorReason = "known_transaction"
	// ErrorReasonUserRejected the wallet declined the request
	ErrorReasonUserRejected ErrorReason = "user_rejected"
	// ErrorReasonDownstreamDown the JSON/RPC endpoint could not be reached
	ErrorReasonDownstreamDown ErrorReason = "downstream_down"
)

func MapError(err error) ErrorReason {
	errString := strings.ToLower(err.Error())
	switch {
	case strings.Contains(errString, "nonce too low"):
		return ErrorReasonNonceTooLow
	case strings.Contains(errString, "insufficient funds"):
		return ErrorReasonInsufficientFunds
	case strings.Contains(errString, "transaction underpriced"):
		return ErrorReasonTransactionUnderpriced
	case strings.Contains(errString, "known transaction"),
		strings.Contains(errString, "already known"):
		return ErrorKnownTransaction
	case strings.Contains(errString, "user rejected"),
		strings.Contains(errString, "user denied"):
		return ErrorReasonUserRejected
	case strings.Contains(errString, "reverted"):
		return ErrorReasonTransactionReverted
	case strings.Contains(errString, "connection refused"),
		strings.Contains(errString, "no such host"):
		return ErrorReasonDownstreamDown
	case strings.Contains(errString, "not found"):
		return ErrorReasonNotFound
	default:
		return ""
	}
}

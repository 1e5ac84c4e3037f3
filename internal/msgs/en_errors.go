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

package msgs

import (
	"fmt"
	"strings"
	"sync"

	"github.com/hyperledger/firefly-common/pkg/i18n"
	"golang.org/x/text/language"
)

const insuranceClientPrefix = "IN01"

var registered sync.Once
var ffe = func(key, translation string, statusHint ...int) i18n.ErrorMessageKey {
	registered.Do(func() {
		i18n.RegisterPrefix(insuranceClientPrefix, "Insurance contract client")
	})
	if !strings.HasPrefix(key, insuranceClientPrefix) {
		panic(fmt.Errorf("must have prefix '%s': %s", insuranceClientPrefix, key))
	}
	return i18n.FFE(language.AmericanEnglish, key, translation, statusHint...)
}

var (
	// Config IN0100XX
	MsgConfigFileMissing    = ffe("IN010000", "Config file not found at path: %s")
	MsgConfigFileReadError  = ffe("IN010001", "Failed to read config file %s with error: %s")
	MsgConfigFileParseError = ffe("IN010002", "Failed to parse config file: %s")
	MsgConfigABIFileInvalid = ffe("IN010003", "Failed to load contract ABI from %s")
	MsgConfigContractAddr   = ffe("IN010004", "Contract address missing or invalid: '%s'")
	MsgConfigWalletType     = ffe("IN010005", "Unknown wallet type '%s'")
	MsgConfigRPCURLMissing  = ffe("IN010006", "JSON/RPC URL missing in configuration")
	MsgConfigListingBound   = ffe("IN010007", "Unknown listing upper bound mode '%s' (expected 'inclusive' or 'exclusive')")

	// Context and retry IN0101XX
	MsgContextCanceled = ffe("IN010100", "Context canceled")

	// Units and input validation IN0102XX
	MsgUnitsInvalidAmount       = ffe("IN010200", "Invalid amount '%s': must be a non-negative decimal number", 400)
	MsgUnitsTooManyDecimals     = ffe("IN010201", "Invalid amount '%s': more than %d decimal places", 400)
	MsgUnitsInvalidID           = ffe("IN010202", "Invalid identifier '%s': must be a non-negative integer", 400)
	MsgInputMissingFields       = ffe("IN010203", "Please fill all fields (missing: %s)", 400)
	MsgInputInvalidAddress      = ffe("IN010204", "Invalid address '%s'", 400)
	MsgUnitsInvalidDecimalCount = ffe("IN010206", "Decimals must be between 0 and %d (configured=%d)")

	// Wallet and identity IN0103XX
	MsgWalletProviderUnavailable = ffe("IN010300", "No wallet provider available: %s")
	MsgWalletUserRejected        = ffe("IN010301", "Account access request was rejected: %s")
	MsgWalletNoAccounts          = ffe("IN010302", "Wallet provider returned no accounts")
	MsgWalletMnemonicInvalid     = ffe("IN010303", "Wallet mnemonic is invalid")
	MsgWalletDerivationFailed    = ffe("IN010304", "Failed to derive key at %s")
	MsgWalletUnknownAccount      = ffe("IN010305", "Account %s is not managed by this wallet")
	MsgWalletInvalidTXType       = ffe("IN010306", "Invalid transaction type '%s'")
	MsgWalletSigningFailed       = ffe("IN010307", "Failed to sign transaction from %s")
	MsgIdentityNotConnected      = ffe("IN010308", "Please connect wallet first.")
	MsgIdentityAuthorityFailed   = ffe("IN010309", "Contract missing '%s' or '%s' method.")
	MsgIdentityAccessDenied      = ffe("IN010310", "Access denied: not insurer account.")
	MsgIdentityAdminRequired     = ffe("IN010311", "Administrator access required: connect as the insurer account first.")

	// Contract binding IN0104XX
	MsgContractABIInvalid        = ffe("IN010400", "Contract ABI is invalid")
	MsgContractFunctionMissing   = ffe("IN010401", "Function '%s' not found on contract ABI")
	MsgContractEventMissing      = ffe("IN010402", "Event '%s' not found on contract ABI")
	MsgContractRecordFieldMiss   = ffe("IN010403", "%s record %d missing required field '%s'")
	MsgContractRecordFieldBad    = ffe("IN010404", "%s record %d field '%s' has invalid value: %v")
	MsgContractCallFailed        = ffe("IN010405", "Contract call '%s' failed")
	MsgContractEncodeFailed      = ffe("IN010406", "Failed to encode call to '%s'")
	MsgContractDecodeFailed      = ffe("IN010407", "Failed to decode result of '%s'")
	MsgContractEventDecodeFailed = ffe("IN010408", "Failed to decode event '%s'")

	// Transactions IN0105XX
	MsgTxReceiptNotAvailable = ffe("IN010500", "Receipt not available for transaction '%s'")
	MsgTxReverted            = ffe("IN010501", "Transaction %s reverted")
	MsgTxSubmitFailed        = ffe("IN010502", "Transaction submission failed")
	MsgTxSettlementTimedOut  = ffe("IN010503", "Settlement of transaction %s not observed after %d attempts")
	MsgTxCallReverted        = ffe("IN010504", "Reverted: %s")
	MsgTxChainIDFailed       = ffe("IN010505", "Failed to query chain ID")

	// Aggregation IN0106XX
	MsgAggregationFailed = ffe("IN010600", "Failed to load %s (partial results discarded)")

	// RPC client IN0107XX
	MsgRPCClientInvalidHTTPURL    = ffe("IN010700", "Invalid HTTP URL: %s")
	MsgRPCClientRequestFailed     = ffe("IN010701", "Backend RPC request failed: %s")
	MsgRPCClientResultParseFailed = ffe("IN010702", "Failed to parse result (expected=%T): %s")
	MsgRPCClientInvalidParam      = ffe("IN010703", "Invalid parameter at position %d for method %s: %s")

	// Metrics IN0108XX
	MsgMetricsServerStartFailed = ffe("IN010800", "Failed to start metrics server on '%s'")

	// Dispatcher IN0109XX
	MsgDispatcherUnknownCommand = ffe("IN010900", "Unknown command %T")
	MsgShellUnknownCommand      = ffe("IN010901", "Unknown command '%s' (type 'help' for the list)")
	MsgShellTooManyArgs         = ffe("IN010902", "Too many arguments. Usage: %s")
	MsgCommandFailed            = ffe("IN010903", "Command %s failed")
)

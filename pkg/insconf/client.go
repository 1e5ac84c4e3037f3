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

package insconf

import "github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/confutil"

type ContractConfig struct {
	// the deployed address of the insurance contract
	Address string `json:"address"`
	// optional path to a JSON ABI (array, or a build artifact with an "abi" field)
	ABIFile *string `json:"abiFile"`
	// accessor names tried in order to find the authority (insurer) address
	AuthorityMethods []string `json:"authorityMethods"`
}

var ContractDefaults = &ContractConfig{
	AuthorityMethods: []string{"insurer", "owner"},
}

type WalletType string

const (
	// WalletTypeNode delegates account selection and signing to the JSON/RPC node
	WalletTypeNode WalletType = "node"
	// WalletTypeHDWallet derives keys locally from a BIP-39 mnemonic and signs locally
	WalletTypeHDWallet WalletType = "hdwallet"
	// WalletTypeNone means no provider is present
	WalletTypeNone WalletType = "none"
)

const (
	TXTypeEIP1559      = "eip1559"
	TXTypeLegacyEIP155 = "legacy_eip155"
)

type WalletConfig struct {
	Type              *string  `json:"type"`
	Mnemonic          string   `json:"mnemonic"`
	AccountIndex      *int     `json:"accountIndex"`
	AccountCount      *int     `json:"accountCount"`
	TXType            *string  `json:"txType"`
	GasEstimateFactor *float64 `json:"gasEstimateFactor"`
	GasLimit          *int     `json:"gasLimit"`
}

var WalletDefaults = &WalletConfig{
	Type:              confutil.P(string(WalletTypeNode)),
	AccountIndex:      confutil.P(0),
	AccountCount:      confutil.P(1),
	TXType:            confutil.P(TXTypeEIP1559),
	GasEstimateFactor: confutil.P(1.5),
	GasLimit:          confutil.P(300000),
}

type ListingUpperBound string

const (
	// ListingUpperBoundInclusive reads ids 0..next (one slot past the last assigned id)
	ListingUpperBoundInclusive ListingUpperBound = "inclusive"
	// ListingUpperBoundExclusive reads ids 0..next-1
	ListingUpperBoundExclusive ListingUpperBound = "exclusive"
)

type ListingConfig struct {
	UpperBound      *string `json:"upperBound"`
	PolicyCacheSize *int    `json:"policyCacheSize"`
}

var ListingDefaults = &ListingConfig{
	UpperBound:      confutil.P(string(ListingUpperBoundInclusive)),
	PolicyCacheSize: confutil.P(1000),
}

type UnitsConfig struct {
	Decimals *int    `json:"decimals"`
	Symbol   *string `json:"symbol"`
}

var UnitsDefaults = &UnitsConfig{
	Decimals: confutil.P(18),
	Symbol:   confutil.P("ETH"),
}

type MetricsServerConfig struct {
	Enabled *bool   `json:"enabled"`
	Address *string `json:"address"`
	Port    *int    `json:"port"`
}

var MetricsServerDefaults = &MetricsServerConfig{
	Enabled: confutil.P(false),
	Address: confutil.P("127.0.0.1"),
	Port:    confutil.P(6100),
}

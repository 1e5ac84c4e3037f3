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

package wallet

import (
	"context"
	"errors"

	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/msgs"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/confutil"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/ethclient"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insapi"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insconf"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/log"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/rpcclient"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/ethsigner"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// Provider holds the accounts of the user and authorizes transactions from them
type Provider interface {
	// RequestAccounts asks for access to the accounts. The first one is the selected account.
	RequestAccounts(ctx context.Context) ([]string, error)
	// SendTransaction signs (or has the node sign) and submits a transaction, returning its hash
	SendTransaction(ctx context.Context, from *ethtypes.Address0xHex, tx *ethsigner.Transaction) (ethtypes.HexBytes0xPrefix, error)
}

func NewProvider(ctx context.Context, conf *insconf.WalletConfig, ec ethclient.EthClient) (Provider, error) {
	walletType := insconf.WalletType(confutil.StringNotEmpty(conf.Type, *insconf.WalletDefaults.Type))
	gasLimit := confutil.AtLeast(conf.GasLimit, 0, *insconf.WalletDefaults.GasLimit)
	switch walletType {
	case insconf.WalletTypeNone:
		return &noProvider{reason: "wallet type is none"}, nil
	case insconf.WalletTypeNode, insconf.WalletTypeHDWallet:
		if ec == nil {
			return &noProvider{reason: "no JSON/RPC endpoint"}, nil
		}
		if walletType == insconf.WalletTypeHDWallet {
			return newHDWallet(ctx, conf, ec)
		}
		log.L(ctx).Infof("Using node wallet provider (gasLimit=%d)", gasLimit)
		return &nodeProvider{ec: ec, gasLimit: uint64(gasLimit)}, nil
	default:
		return nil, i18n.NewError(ctx, msgs.MsgConfigWalletType, walletType)
	}
}

type noProvider struct {
	reason string
}

func (np *noProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	return nil, insapi.NewError(insapi.ErrProviderUnavailable, i18n.NewError(ctx, msgs.MsgWalletProviderUnavailable, np.reason))
}

func (np *noProvider) SendTransaction(ctx context.Context, _ *ethtypes.Address0xHex, _ *ethsigner.Transaction) (ethtypes.HexBytes0xPrefix, error) {
	return nil, insapi.NewError(insapi.ErrProviderUnavailable, i18n.NewError(ctx, msgs.MsgWalletProviderUnavailable, np.reason))
}

func isUserRejection(err error) bool {
	var rpcErr rpcclient.ErrorRPC
	if errors.As(err, &rpcErr) && rpcErr.RPCError().Code == int64(rpcclient.RPCCodeUserRejected) {
		return true
	}
	return ethclient.MapError(err) == ethclient.ErrorReasonUserRejected
}

// accountsError classifies a failed account request
func accountsError(ctx context.Context, err error) error {
	if isUserRejection(err) {
		return insapi.NewError(insapi.ErrUserRejected, i18n.NewError(ctx, msgs.MsgWalletUserRejected, err.Error()))
	}
	return insapi.NewError(insapi.ErrProviderUnavailable, i18n.NewError(ctx, msgs.MsgWalletProviderUnavailable, err.Error()))
}

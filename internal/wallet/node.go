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

	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/msgs"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/ethclient"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insapi"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/log"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/rpcclient"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/ethsigner"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// nodeProvider uses the accounts the node manages, and has the node sign
type nodeProvider struct {
	ec       ethclient.EthClient
	gasLimit uint64
}

func (np *nodeProvider) RequestAccounts(ctx context.Context) ([]string, error) {
	var accounts []string
	rpcErr := np.ec.RPC().CallRPC(ctx, &accounts, "eth_requestAccounts")
	if rpcErr != nil && rpcErr.RPCError().Code == int64(rpcclient.RPCCodeMethodNotFound) {
		log.L(ctx).Debugf("eth_requestAccounts not supported by node, using eth_accounts")
		rpcErr = np.ec.RPC().CallRPC(ctx, &accounts, "eth_accounts")
	}
	if rpcErr != nil {
		return nil, accountsError(ctx, rpcErr)
	}
	if len(accounts) == 0 {
		return nil, insapi.NewError(insapi.ErrUserRejected, i18n.NewError(ctx, msgs.MsgWalletNoAccounts))
	}
	return accounts, nil
}

func (np *nodeProvider) SendTransaction(ctx context.Context, from *ethtypes.Address0xHex, tx *ethsigner.Transaction) (ethtypes.HexBytes0xPrefix, error) {
	tx.From = []byte(`"` + from.String() + `"`)
	if tx.GasLimit == nil && np.gasLimit > 0 {
		tx.GasLimit = ethtypes.NewHexIntegerU64(np.gasLimit)
	}
	return np.ec.SendTransaction(ctx, tx)
}

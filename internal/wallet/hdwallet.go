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
	"math/big"

	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/msgs"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/confutil"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/ethclient"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insconf"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/log"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/ethsigner"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/hyperledger/firefly-signer/pkg/secp256k1"
	"github.com/tyler-smith/go-bip39"
)

// m/44'/60'/0'/0, the account index is appended
var BIP44AccountPath = []uint32{0x80000000 + 44, 0x80000000 + 60, 0x80000000, 0}

// hdWallet derives secp256k1 keys from a BIP-39 mnemonic and signs locally,
// submitting raw transactions to the node
type hdWallet struct {
	ec                ethclient.EthClient
	txType            string
	gasLimit          uint64
	gasEstimateFactor float64
	accounts          []ethtypes.Address0xHex
	keys              map[ethtypes.Address0xHex]*secp256k1.KeyPair
}

func newHDWallet(ctx context.Context, conf *insconf.WalletConfig, ec ethclient.EthClient) (*hdWallet, error) {
	hw := &hdWallet{
		ec:                ec,
		txType:            confutil.StringNotEmpty(conf.TXType, *insconf.WalletDefaults.TXType),
		gasLimit:          uint64(confutil.AtLeast(conf.GasLimit, 0, *insconf.WalletDefaults.GasLimit)),
		gasEstimateFactor: confutil.AtLeast(conf.GasEstimateFactor, 1.0, *insconf.WalletDefaults.GasEstimateFactor),
		keys:              map[ethtypes.Address0xHex]*secp256k1.KeyPair{},
	}
	if hw.txType != insconf.TXTypeEIP1559 && hw.txType != insconf.TXTypeLegacyEIP155 {
		return nil, i18n.NewError(ctx, msgs.MsgWalletInvalidTXType, hw.txType)
	}
	seed, err := bip39.NewSeedWithErrorChecking(conf.Mnemonic, "")
	if err != nil {
		return nil, i18n.NewError(ctx, msgs.MsgWalletMnemonicInvalid)
	}
	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, i18n.NewError(ctx, msgs.MsgWalletMnemonicInvalid)
	}
	first := confutil.AtLeast(conf.AccountIndex, 0, *insconf.WalletDefaults.AccountIndex)
	count := confutil.AtLeast(conf.AccountCount, 1, *insconf.WalletDefaults.AccountCount)
	for i := first; i < first+count; i++ {
		kp, err := DeriveKey(ctx, master, uint32(i))
		if err != nil {
			return nil, err
		}
		addr := ethtypes.Address0xHex(kp.Address)
		hw.accounts = append(hw.accounts, addr)
		hw.keys[addr] = kp
		log.L(ctx).Infof("HD wallet account %d: %s", i, addr)
	}
	return hw, nil
}

// DeriveKey walks m/44'/60'/0'/0/index from the master key
func DeriveKey(ctx context.Context, master *hdkeychain.ExtendedKey, index uint32) (*secp256k1.KeyPair, error) {
	path := make([]uint32, 0, len(BIP44AccountPath)+1)
	path = append(path, BIP44AccountPath...)
	path = append(path, index)
	pos := master
	var err error
	for _, derivation := range path {
		if pos, err = pos.Derive(derivation); err != nil {
			return nil, i18n.WrapError(ctx, err, msgs.MsgWalletDerivationFailed, derivation)
		}
	}
	ecPrivKey, err := pos.ECPrivKey()
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgWalletDerivationFailed, index)
	}
	pkBytes := ecPrivKey.Key.Bytes()
	return secp256k1.KeyPairFromBytes(pkBytes[:]), nil
}

func (hw *hdWallet) RequestAccounts(ctx context.Context) ([]string, error) {
	accounts := make([]string, len(hw.accounts))
	for i, a := range hw.accounts {
		accounts[i] = a.String()
	}
	return accounts, nil
}

func (hw *hdWallet) SendTransaction(ctx context.Context, from *ethtypes.Address0xHex, tx *ethsigner.Transaction) (ethtypes.HexBytes0xPrefix, error) {
	kp := hw.keys[*from]
	if kp == nil {
		return nil, i18n.NewError(ctx, msgs.MsgWalletUnknownAccount, from)
	}
	tx.From = []byte(`"` + from.String() + `"`)

	// nonce from the pending pool of the node for each transaction
	if tx.Nonce == nil {
		nonce, err := hw.ec.GetTransactionCount(ctx, *from)
		if err != nil {
			return nil, err
		}
		tx.Nonce = ethtypes.NewHexIntegerU64(nonce.Uint64())
	}

	if tx.GasLimit == nil {
		if hw.gasLimit > 0 {
			tx.GasLimit = ethtypes.NewHexIntegerU64(hw.gasLimit)
		} else {
			estimate, err := hw.ec.EstimateGas(ctx, tx)
			if err != nil {
				return nil, err
			}
			tx.GasLimit = ethtypes.NewHexInteger64(int64(float64(estimate.GasLimit) * hw.gasEstimateFactor))
		}
	}

	gasPrice, err := hw.ec.GasPrice(ctx)
	if err != nil {
		return nil, err
	}
	var rawTX []byte
	switch hw.txType {
	case insconf.TXTypeEIP1559:
		tx.MaxPriorityFeePerGas = gasPrice
		tx.MaxFeePerGas = ethtypes.NewHexInteger(new(big.Int).Mul(gasPrice.BigInt(), big.NewInt(2)))
		rawTX, err = tx.SignEIP1559(kp, hw.ec.ChainID())
	default:
		tx.GasPrice = gasPrice
		rawTX, err = tx.SignLegacyEIP155(kp, hw.ec.ChainID())
	}
	if err != nil {
		return nil, i18n.WrapError(ctx, err, msgs.MsgWalletSigningFailed, from)
	}
	return hw.ec.SendRawTransaction(ctx, rawTX)
}

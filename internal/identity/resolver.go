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

package identity

import (
	"context"

	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/metrics"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/msgs"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/session"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/wallet"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/confutil"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insapi"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insconf"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/log"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// Resolver connects the wallet account and checks it against the contract authority
type Resolver struct {
	session   *session.Session
	wallet    wallet.Provider
	metrics   metrics.InsuranceMetrics
	primary   string
	secondary string
}

func NewResolver(conf *insconf.ContractConfig, s *session.Session, w wallet.Provider, m metrics.InsuranceMetrics) *Resolver {
	methods := confutil.StringSlice(conf.AuthorityMethods, insconf.ContractDefaults.AuthorityMethods)
	r := &Resolver{
		session:   s,
		wallet:    w,
		metrics:   m,
		primary:   methods[0],
		secondary: methods[0],
	}
	if len(methods) > 1 {
		r.secondary = methods[1]
	}
	return r
}

// Connect requests the accounts from the wallet and makes the first one the session identity
func (r *Resolver) Connect(ctx context.Context) (insapi.Identity, error) {
	accounts, err := r.wallet.RequestAccounts(ctx)
	if err != nil {
		log.L(ctx).Errorf("Wallet connection failed: %s", err)
		return "", err
	}
	addr, err := ethtypes.NewAddress(accounts[0])
	if err != nil {
		return "", insapi.NewError(insapi.ErrProviderUnavailable, i18n.WrapError(ctx, err, msgs.MsgInputInvalidAddress, accounts[0]))
	}
	identity := insapi.Identity(accounts[0])
	r.session.SetIdentity(ctx, identity, addr)
	log.L(ctx).Infof("Connected account %s", identity)
	return identity, nil
}

// AuthorizeAdmin queries the primary authority accessor, then the secondary, and
// compares the authority with the identity ignoring case. The result is returned
// with the error for denied or incompatible outcomes.
func (r *Resolver) AuthorizeAdmin(ctx context.Context, identity insapi.Identity) (*insapi.AuthorizationResult, error) {
	result := &insapi.AuthorizationResult{Identity: identity}
	defer func() {
		r.session.SetAdmin(result)
		r.metrics.IncAuthorization(string(result.Status))
	}()

	contract := r.session.Contract()
	for _, method := range []string{r.primary, r.secondary} {
		authority, err := contract.Authority(ctx, method)
		if err != nil {
			log.L(ctx).Warnf("Authority accessor '%s' failed: %s", method, err)
			continue
		}
		result.Accessor = method
		result.Authority = authority
		break
	}
	if result.Authority == nil {
		result.Status = insapi.ContractIncompatible
		return result, insapi.NewError(insapi.ErrContractIncompatible, i18n.NewError(ctx, msgs.MsgIdentityAuthorityFailed, r.primary, r.secondary))
	}

	log.L(ctx).Debugf("Authority %s (via %s) identity %s", result.Authority, result.Accessor, identity)
	if !identity.Equals(result.Authority.String()) {
		result.Status = insapi.AccessDenied
		return result, insapi.NewError(insapi.ErrAccessDenied, i18n.NewError(ctx, msgs.MsgIdentityAccessDenied))
	}
	result.Status = insapi.Authorized
	return result, nil
}

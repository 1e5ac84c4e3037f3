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

// Package dispatcher turns each user action into one command, runs it against
// the session, and reports a single outcome plus activity log entries.
package dispatcher

import (
	"context"
	"errors"

	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/activitylog"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/aggregator"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/identity"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/msgs"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/session"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/txorchestrator"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insapi"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/log"
	"github.com/google/uuid"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

const (
	LabelConnectWallet   = "Connect Wallet"
	LabelConnected       = "Connected"
	LabelWalletNotFound  = "Wallet Not Found"
	LabelInvalidContract = "Invalid Contract"
	LabelAccessDenied    = "Access Denied"
	LabelAdminPrefix     = "Admin: "
)

const (
	msgWalletConnected  = "🟢 Wallet connected successfully!"
	msgWalletFailed     = "Failed to connect wallet: "
	msgAdminConnected   = "Admin connected successfully!"
	msgFetching         = "🔄 Fetching latest policies and claims..."
	msgFetched          = "✅ Policies and Claims refreshed successfully."
	msgFetchFailed      = "❌ Error fetching data: "
	msgRefreshingClaims = "🔄 Refreshing submitted claims..."
	msgClaimsRefreshed  = "✅ Claims refreshed successfully!"
	msgClaimsLoadFailed = "❌ Error loading claims: "
	msgNoClaimsFound    = "No claims found"
)

// Command is one user action. The transaction commands are the orchestrator operations.
type Command interface {
	Name() string
}

type Connect struct{}

// ConnectAdmin connects and then requires the account to be the contract authority
type ConnectAdmin struct{}

// RefreshPolicyholder lists the policies and claims of the connected account
type RefreshPolicyholder struct{}

// RefreshClaims lists every submitted claim for the administrator
type RefreshClaims struct{}

type (
	IssuePolicy  = txorchestrator.IssuePolicy
	PayPremium   = txorchestrator.PayPremium
	SubmitClaim  = txorchestrator.SubmitClaim
	ApproveClaim = txorchestrator.ApproveClaim
	PayClaim     = txorchestrator.PayClaim
	FundContract = txorchestrator.FundContract
)

func (*Connect) Name() string             { return "connect" }
func (*ConnectAdmin) Name() string        { return "connectAdmin" }
func (*RefreshPolicyholder) Name() string { return "refreshPolicyholder" }
func (*RefreshClaims) Name() string       { return "refreshClaims" }

type Dispatcher struct {
	session      *session.Session
	resolver     *identity.Resolver
	orchestrator *txorchestrator.Orchestrator
	aggregator   *aggregator.Aggregator
	activity     *activitylog.ActivityLog
}

func New(s *session.Session, r *identity.Resolver, o *txorchestrator.Orchestrator, a *aggregator.Aggregator, al *activitylog.ActivityLog) *Dispatcher {
	return &Dispatcher{
		session:      s,
		resolver:     r,
		orchestrator: o,
		aggregator:   a,
		activity:     al,
	}
}

func (d *Dispatcher) Session() *session.Session {
	return d.session
}

func (d *Dispatcher) Activity() *activitylog.ActivityLog {
	return d.activity
}

// Dispatch runs a command to completion. Failures are reported in the outcome and
// leave the session usable for the next command.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command) *insapi.Outcome {
	ctx = log.WithLogField(ctx, "cmd", uuid.NewString()[0:8])
	log.L(ctx).Debugf("Dispatching %s", cmd.Name())
	switch c := cmd.(type) {
	case *Connect:
		return d.connect(ctx)
	case *ConnectAdmin:
		return d.connectAdmin(ctx)
	case *RefreshPolicyholder:
		return d.refreshPolicyholder(ctx)
	case *RefreshClaims:
		return d.refreshClaims(ctx)
	case *IssuePolicy, *ApproveClaim, *PayClaim, *FundContract:
		return d.submit(ctx, c.(txorchestrator.Operation), true)
	case *PayPremium, *SubmitClaim:
		return d.submit(ctx, c.(txorchestrator.Operation), false)
	default:
		return d.fail(ctx, insapi.ErrUnknown, i18n.NewError(ctx, msgs.MsgDispatcherUnknownCommand, cmd), "")
	}
}

func (d *Dispatcher) fail(ctx context.Context, kind insapi.ErrorKind, err error, prefix string) *insapi.Outcome {
	entry := d.activity.Error(ctx, prefix+err.Error())
	return &insapi.Outcome{
		Kind:      insapi.OutcomeFailed,
		ErrorKind: kind,
		Message:   entry.Message,
	}
}

func connectLabel(kind insapi.ErrorKind) string {
	switch kind {
	case insapi.ErrProviderUnavailable:
		return LabelWalletNotFound
	case insapi.ErrContractIncompatible:
		return LabelInvalidContract
	case insapi.ErrAccessDenied:
		return LabelAccessDenied
	default:
		return LabelConnectWallet
	}
}

func (d *Dispatcher) connectFailed(ctx context.Context, err error, prefix string) *insapi.Outcome {
	kind := insapi.KindOf(err)
	if kind == insapi.ErrUnknown {
		kind = insapi.ErrProviderUnavailable
	}
	out := d.fail(ctx, kind, err, prefix)
	out.Label = connectLabel(kind)
	return out
}

func (d *Dispatcher) connect(ctx context.Context) *insapi.Outcome {
	id, err := d.resolver.Connect(ctx)
	if err != nil {
		return d.connectFailed(ctx, err, msgWalletFailed)
	}
	d.activity.Success(ctx, msgWalletConnected)
	return &insapi.Outcome{
		Kind:     insapi.OutcomeConnected,
		Message:  msgWalletConnected,
		Label:    LabelConnected,
		Identity: id,
	}
}

func (d *Dispatcher) connectAdmin(ctx context.Context) *insapi.Outcome {
	id, err := d.resolver.Connect(ctx)
	if err != nil {
		return d.connectFailed(ctx, err, msgWalletFailed)
	}
	result, err := d.resolver.AuthorizeAdmin(ctx, id)
	if err != nil {
		out := d.connectFailed(ctx, err, "")
		out.Identity = id
		out.Auth = result
		return out
	}
	d.activity.Success(ctx, msgAdminConnected)
	return &insapi.Outcome{
		Kind:     insapi.OutcomeAuthorized,
		Message:  msgAdminConnected,
		Label:    LabelAdminPrefix + id.Short(),
		Identity: id,
		Auth:     result,
	}
}

// requireConnected checks the session preconditions of a command, and for admin
// commands that the current identity was authorized
func (d *Dispatcher) requireConnected(ctx context.Context, admin bool) *insapi.Outcome {
	if !d.session.Connected() {
		return d.fail(ctx, insapi.ErrNotConnected, i18n.NewError(ctx, msgs.MsgIdentityNotConnected), "")
	}
	if admin && !d.session.IsAdmin() {
		return d.fail(ctx, insapi.ErrNotAuthorized, i18n.NewError(ctx, msgs.MsgIdentityAdminRequired), "")
	}
	return nil
}

func (d *Dispatcher) submit(ctx context.Context, op txorchestrator.Operation, admin bool) *insapi.Outcome {
	if out := d.requireConnected(ctx, admin); out != nil {
		return out
	}
	tx := d.orchestrator.Submit(ctx, op)
	if tx.Failed() {
		kind := insapi.ErrTxFailed
		if tx.ErrorKind != "" {
			kind = tx.ErrorKind
		}
		d.activity.Error(ctx, tx.Summary)
		return &insapi.Outcome{
			Kind:      insapi.OutcomeFailed,
			ErrorKind: kind,
			Message:   tx.Summary,
			Tx:        tx,
		}
	}
	d.activity.Success(ctx, tx.Summary)
	return &insapi.Outcome{
		Kind:    insapi.OutcomeTx,
		Message: tx.Summary,
		Tx:      tx,
	}
}

func listingKind(err error) insapi.ErrorKind {
	var af *insapi.AggregationFailed
	if errors.As(err, &af) {
		return insapi.ErrAggregationFailed
	}
	return insapi.KindOf(err)
}

func (d *Dispatcher) refreshPolicyholder(ctx context.Context) *insapi.Outcome {
	if out := d.requireConnected(ctx, false); out != nil {
		return out
	}
	d.activity.Info(ctx, msgFetching)
	owner := d.session.Identity()
	policies, err := d.aggregator.ListPolicies(ctx, owner)
	if err != nil {
		return d.fail(ctx, listingKind(err), err, msgFetchFailed)
	}
	claims, err := d.aggregator.ListClaims(ctx, owner)
	if err != nil {
		return d.fail(ctx, listingKind(err), err, msgFetchFailed)
	}
	d.activity.Success(ctx, msgFetched)
	return &insapi.Outcome{
		Kind:     insapi.OutcomeListing,
		Message:  msgFetched,
		Identity: owner,
		Listing:  insapi.ListingPolicies,
		Policies: policies,
		Claims:   claims,
	}
}

func (d *Dispatcher) refreshClaims(ctx context.Context) *insapi.Outcome {
	if out := d.requireConnected(ctx, true); out != nil {
		return out
	}
	d.activity.Info(ctx, msgRefreshingClaims)
	claims, err := d.aggregator.ListAllClaims(ctx)
	if err != nil {
		return d.fail(ctx, listingKind(err), err, msgClaimsLoadFailed)
	}
	message := msgClaimsRefreshed
	if len(claims) == 0 {
		message = msgNoClaimsFound
		d.activity.Info(ctx, message)
	} else {
		d.activity.Success(ctx, message)
	}
	return &insapi.Outcome{
		Kind:     insapi.OutcomeListing,
		Message:  message,
		Identity: d.session.Identity(),
		Listing:  insapi.ListingAllClaims,
		Claims:   claims,
	}
}

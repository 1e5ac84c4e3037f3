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

package dispatcher

import (
	"context"
	"testing"

	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/activitylog"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/aggregator"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/chaintest"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/identity"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/metrics"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/session"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/txorchestrator"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/wallet"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/confutil"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insapi"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insconf"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDispatcher(t *testing.T, chain *chaintest.Chain, walletConf *insconf.WalletConfig) *Dispatcher {
	ctx := context.Background()
	ec := chain.EthClient(t)
	s := session.New(chain.Contract(t))
	m := metrics.InitMetrics(ctx, prometheus.NewRegistry())
	w, err := wallet.NewProvider(ctx, walletConf, ec)
	require.NoError(t, err)
	a, err := aggregator.New(ctx, &insconf.ListingConfig{}, s, chaintest.Ether(t), m)
	require.NoError(t, err)
	o := txorchestrator.New(&insconf.RetryConfigWithMax{
		RetryConfig: insconf.RetryConfig{InitialDelay: confutil.P("1ms")},
		MaxAttempts: confutil.P(3),
	}, s, w, ec, chaintest.Ether(t), m)
	return New(s, identity.NewResolver(&insconf.ContractConfig{}, s, w, m), o, a, activitylog.New())
}

func latest(d *Dispatcher) *insapi.LogEntry {
	return d.Activity().Entries()[0]
}

type bogus struct{}

func (*bogus) Name() string { return "bogus" }

func TestIssuePolicyAsAdmin(t *testing.T) {
	chain := chaintest.New(t)
	d := newTestDispatcher(t, chain, &insconf.WalletConfig{})
	ctx := context.Background()

	out := d.Dispatch(ctx, &ConnectAdmin{})
	require.Equal(t, insapi.OutcomeAuthorized, out.Kind, out.Message)
	assert.Equal(t, "Admin: 0x1b5e...1111", out.Label)
	assert.Equal(t, "Admin connected successfully!", out.Message)
	assert.Equal(t, insapi.Authorized, out.Auth.Status)
	assert.Equal(t, "insurer", out.Auth.Accessor)

	out = d.Dispatch(ctx, &IssuePolicy{
		Holder:   chaintest.AliceAccount.String(),
		Premium:  "0.1",
		Coverage: "1",
		Duration: "365",
	})
	require.Equal(t, insapi.OutcomeTx, out.Kind, out.Message)
	assert.Equal(t, "✅ Policy #0 issued for "+chaintest.AliceAccount.String()+" | Premium: 0.1 ETH | Coverage: 1 ETH", out.Message)
	assert.Equal(t, uint64(0), *out.Tx.PolicyID)

	entries := d.Activity().Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, insapi.SeveritySuccess, entries[0].Severity)
	assert.Equal(t, out.Message, entries[0].Message)
	assert.Equal(t, "Admin connected successfully!", entries[1].Message)
}

func TestClaimByNonHolderExcludedFromListing(t *testing.T) {
	chain := chaintest.New(t)
	chain.AddPolicy(chaintest.AliceAccount, 100, 1000000000000000000)
	d := newTestDispatcher(t, chain, &insconf.WalletConfig{})
	ctx := context.Background()

	chain.SetAccounts(chaintest.BobAccount)
	out := d.Dispatch(ctx, &Connect{})
	require.Equal(t, insapi.OutcomeConnected, out.Kind, out.Message)
	assert.Equal(t, "Connected", out.Label)
	assert.Equal(t, insapi.Identity(chaintest.BobAccount.String()), out.Identity)

	out = d.Dispatch(ctx, &SubmitClaim{PolicyID: "0", Amount: "0.5"})
	require.Equal(t, insapi.OutcomeTx, out.Kind, out.Message)
	assert.Equal(t, "🧾 Claim #0 submitted for Policy #0 (0.5 ETH)", latest(d).Message)

	out = d.Dispatch(ctx, &RefreshPolicyholder{})
	require.Equal(t, insapi.OutcomeListing, out.Kind, out.Message)
	assert.Empty(t, out.Policies)
	assert.Empty(t, out.Claims)
	assert.Equal(t, "✅ Policies and Claims refreshed successfully.", out.Message)
	assert.Equal(t, "🔄 Fetching latest policies and claims...", d.Activity().Entries()[1].Message)

	chain.SetAccounts(chaintest.AliceAccount)
	out = d.Dispatch(ctx, &Connect{})
	require.Equal(t, insapi.OutcomeConnected, out.Kind, out.Message)
	out = d.Dispatch(ctx, &RefreshPolicyholder{})
	require.Equal(t, insapi.OutcomeListing, out.Kind, out.Message)
	require.Len(t, out.Policies, 1)
	require.Len(t, out.Claims, 1)
	assert.Equal(t, chaintest.BobAccount.String(), out.Claims[0].Claimant)
	assert.Equal(t, insapi.ClaimPending, out.Claims[0].Status)
}

func TestApproveMissingClaimLogged(t *testing.T) {
	chain := chaintest.New(t)
	d := newTestDispatcher(t, chain, &insconf.WalletConfig{})
	ctx := context.Background()

	require.Equal(t, insapi.OutcomeAuthorized, d.Dispatch(ctx, &ConnectAdmin{}).Kind)
	out := d.Dispatch(ctx, &ApproveClaim{ClaimID: "42"})
	assert.Equal(t, insapi.OutcomeFailed, out.Kind)
	assert.Equal(t, insapi.ErrTxFailed, out.ErrorKind)
	assert.Regexp(t, "^❌ Approval failed: .*Claim does not exist", out.Message)
	assert.Equal(t, insapi.TxFailed, out.Tx.Status)
	assert.Equal(t, insapi.SeverityError, latest(d).Severity)
	assert.Equal(t, out.Message, latest(d).Message)

	// the session survives the failure
	out = d.Dispatch(ctx, &FundContract{Amount: "1"})
	assert.Equal(t, insapi.OutcomeTx, out.Kind, out.Message)
}

func TestConnectAdminInvalidContract(t *testing.T) {
	chain := chaintest.New(t)
	chain.AuthorityMethods = nil
	d := newTestDispatcher(t, chain, &insconf.WalletConfig{})

	out := d.Dispatch(context.Background(), &ConnectAdmin{})
	assert.Equal(t, insapi.OutcomeFailed, out.Kind)
	assert.Equal(t, insapi.ErrContractIncompatible, out.ErrorKind)
	assert.Equal(t, "Invalid Contract", out.Label)
	assert.Regexp(t, "Contract missing 'insurer' or 'owner' method.", out.Message)
	assert.NotRegexp(t, "Access denied", out.Message)
	assert.Equal(t, insapi.ContractIncompatible, out.Auth.Status)
	assert.False(t, d.Session().IsAdmin())
	assert.Equal(t, insapi.SeverityError, latest(d).Severity)
}

func TestConnectAdminAccessDenied(t *testing.T) {
	chain := chaintest.New(t)
	chain.Accounts = append(chain.Accounts[1:], chain.Accounts[0])
	d := newTestDispatcher(t, chain, &insconf.WalletConfig{})

	out := d.Dispatch(context.Background(), &ConnectAdmin{})
	assert.Equal(t, insapi.OutcomeFailed, out.Kind)
	assert.Equal(t, insapi.ErrAccessDenied, out.ErrorKind)
	assert.Equal(t, "Access Denied", out.Label)
	assert.Regexp(t, "Access denied: not insurer account.", out.Message)
	assert.Equal(t, insapi.Identity(chaintest.AliceAccount.String()), out.Identity)
	// connected, but not as admin
	assert.True(t, d.Session().Connected())
	assert.False(t, d.Session().IsAdmin())
}

func TestConnectWalletNotFound(t *testing.T) {
	chain := chaintest.New(t)
	d := newTestDispatcher(t, chain, &insconf.WalletConfig{Type: confutil.P("none")})

	out := d.Dispatch(context.Background(), &Connect{})
	assert.Equal(t, insapi.OutcomeFailed, out.Kind)
	assert.Equal(t, insapi.ErrProviderUnavailable, out.ErrorKind)
	assert.Equal(t, "Wallet Not Found", out.Label)
	assert.Regexp(t, "^Failed to connect wallet: .*IN010300", out.Message)
	assert.False(t, d.Session().Connected())
}

func TestConnectRejected(t *testing.T) {
	chain := chaintest.New(t)
	chain.RejectAccounts = true
	d := newTestDispatcher(t, chain, &insconf.WalletConfig{})

	out := d.Dispatch(context.Background(), &ConnectAdmin{})
	assert.Equal(t, insapi.OutcomeFailed, out.Kind)
	assert.Equal(t, insapi.ErrUserRejected, out.ErrorKind)
	assert.Equal(t, "Connect Wallet", out.Label)
	assert.Equal(t, 0, chain.Calls("eth_call:insurer"))
}

func TestCommandsRequireConnection(t *testing.T) {
	chain := chaintest.New(t)
	d := newTestDispatcher(t, chain, &insconf.WalletConfig{})
	ctx := context.Background()

	for _, cmd := range []Command{
		&IssuePolicy{}, &PayPremium{PolicyID: "0", Amount: "1"}, &SubmitClaim{},
		&ApproveClaim{}, &PayClaim{}, &FundContract{}, &RefreshPolicyholder{}, &RefreshClaims{},
	} {
		out := d.Dispatch(ctx, cmd)
		assert.Equal(t, insapi.OutcomeFailed, out.Kind, cmd.Name())
		assert.Equal(t, insapi.ErrNotConnected, out.ErrorKind, cmd.Name())
		assert.Regexp(t, "Please connect wallet first.", out.Message, cmd.Name())
	}
	assert.Equal(t, 8, d.Activity().Len())
	assert.Equal(t, 0, chain.Calls("eth_sendTransaction"))
	assert.Equal(t, 0, chain.Calls("eth_call"))
}

func TestAdminCommandsRequireAuthorization(t *testing.T) {
	chain := chaintest.New(t)
	d := newTestDispatcher(t, chain, &insconf.WalletConfig{})
	ctx := context.Background()

	require.Equal(t, insapi.OutcomeConnected, d.Dispatch(ctx, &Connect{}).Kind)
	for _, cmd := range []Command{
		&IssuePolicy{}, &ApproveClaim{}, &PayClaim{}, &FundContract{Amount: "1"}, &RefreshClaims{},
	} {
		out := d.Dispatch(ctx, cmd)
		assert.Equal(t, insapi.ErrNotAuthorized, out.ErrorKind, cmd.Name())
		assert.Regexp(t, "IN010311", out.Message, cmd.Name())
	}
	assert.Equal(t, 0, chain.Calls("eth_sendTransaction"))
}

func TestAccountSwitchDropsAdmin(t *testing.T) {
	chain := chaintest.New(t)
	d := newTestDispatcher(t, chain, &insconf.WalletConfig{})
	ctx := context.Background()

	require.Equal(t, insapi.OutcomeAuthorized, d.Dispatch(ctx, &ConnectAdmin{}).Kind)
	chain.SetAccounts(chaintest.AliceAccount)
	require.Equal(t, insapi.OutcomeConnected, d.Dispatch(ctx, &Connect{}).Kind)

	out := d.Dispatch(ctx, &FundContract{Amount: "1"})
	assert.Equal(t, insapi.ErrNotAuthorized, out.ErrorKind)
}

func TestInvalidAmount(t *testing.T) {
	chain := chaintest.New(t)
	chain.AddPolicy(chaintest.AliceAccount, 1, 2)
	chain.SetAccounts(chaintest.AliceAccount)
	d := newTestDispatcher(t, chain, &insconf.WalletConfig{})
	ctx := context.Background()

	require.Equal(t, insapi.OutcomeConnected, d.Dispatch(ctx, &Connect{}).Kind)
	out := d.Dispatch(ctx, &PayPremium{PolicyID: "0", Amount: "abc"})
	assert.Equal(t, insapi.OutcomeFailed, out.Kind)
	assert.Equal(t, insapi.ErrInvalidAmount, out.ErrorKind)
	assert.Regexp(t, "^❌ Error paying premium: IN010200", out.Message)
}

func TestInvalidPolicyID(t *testing.T) {
	chain := chaintest.New(t)
	chain.SetAccounts(chaintest.AliceAccount)
	d := newTestDispatcher(t, chain, &insconf.WalletConfig{})
	ctx := context.Background()

	require.Equal(t, insapi.OutcomeConnected, d.Dispatch(ctx, &Connect{}).Kind)
	out := d.Dispatch(ctx, &PayPremium{PolicyID: "first", Amount: "1"})
	assert.Equal(t, insapi.OutcomeFailed, out.Kind)
	assert.Equal(t, insapi.ErrInvalidInput, out.ErrorKind)
	assert.Regexp(t, "^❌ Error paying premium: IN0102", out.Message)
	assert.Zero(t, chain.Calls("eth_sendRawTransaction"))
}

func TestRefreshClaims(t *testing.T) {
	chain := chaintest.New(t)
	d := newTestDispatcher(t, chain, &insconf.WalletConfig{})
	ctx := context.Background()

	require.Equal(t, insapi.OutcomeAuthorized, d.Dispatch(ctx, &ConnectAdmin{}).Kind)
	out := d.Dispatch(ctx, &RefreshClaims{})
	require.Equal(t, insapi.OutcomeListing, out.Kind, out.Message)
	assert.Equal(t, "No claims found", out.Message)
	assert.Equal(t, insapi.ListingAllClaims, out.Listing)
	assert.Equal(t, "🔄 Refreshing submitted claims...", d.Activity().Entries()[1].Message)

	chain.AddPolicy(chaintest.AliceAccount, 1, 1000)
	chain.AddClaim(0, chaintest.AliceAccount, 10, true, false)
	chain.AddClaim(5, chaintest.BobAccount, 10, false, false)
	out = d.Dispatch(ctx, &RefreshClaims{})
	require.Equal(t, insapi.OutcomeListing, out.Kind, out.Message)
	assert.Equal(t, "✅ Claims refreshed successfully!", out.Message)
	require.Len(t, out.Claims, 2)
	assert.Equal(t, insapi.ClaimApproved, out.Claims[0].Status)
	assert.Empty(t, out.Claims[1].Holder)
}

func TestRefreshFailures(t *testing.T) {
	chain := chaintest.New(t)
	chain.AddPolicy(chaintest.InsurerAccount, 1, 1000)
	chain.AddClaim(0, chaintest.AliceAccount, 10, false, false)
	chain.FailRead = func(method string, args []any) bool { return method == "claims" }
	d := newTestDispatcher(t, chain, &insconf.WalletConfig{})
	ctx := context.Background()

	require.Equal(t, insapi.OutcomeAuthorized, d.Dispatch(ctx, &ConnectAdmin{}).Kind)

	out := d.Dispatch(ctx, &RefreshClaims{})
	assert.Equal(t, insapi.OutcomeFailed, out.Kind)
	assert.Equal(t, insapi.ErrAggregationFailed, out.ErrorKind)
	assert.Regexp(t, "^❌ Error loading claims: IN010600", out.Message)
	assert.Nil(t, out.Claims)

	out = d.Dispatch(ctx, &RefreshPolicyholder{})
	assert.Equal(t, insapi.OutcomeFailed, out.Kind)
	assert.Equal(t, insapi.ErrAggregationFailed, out.ErrorKind)
	assert.Regexp(t, "^❌ Error fetching data: IN010600", out.Message)
	assert.Nil(t, out.Policies)
	assert.Equal(t, out.Message, latest(d).Message)
}

func TestUnknownCommand(t *testing.T) {
	chain := chaintest.New(t)
	d := newTestDispatcher(t, chain, &insconf.WalletConfig{})

	out := d.Dispatch(context.Background(), &bogus{})
	assert.Equal(t, insapi.OutcomeFailed, out.Kind)
	assert.Equal(t, insapi.ErrUnknown, out.ErrorKind)
	assert.Regexp(t, "IN010900.*bogus", out.Message)
	assert.Equal(t, 1, d.Activity().Len())
}

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

package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/chaintest"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, chain *chaintest.Chain, stdin string, args ...string) (string, error) {
	out := new(bytes.Buffer)
	cmd := NewRootCommand(strings.NewReader(stdin), out)
	cmd.SetArgs(append([]string{"--rpc-url", chain.URL(), "--contract", chain.Address.String(), "--log-level", "error"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestFundAsAdmin(t *testing.T) {
	chain := chaintest.New(t)
	out, err := runCLI(t, chain, "", "fund", "--amount", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Admin connected successfully!")
	assert.Contains(t, out, "💰 Contract funded with 2 ETH")
	assert.Equal(t, "2000000000000000000", chain.Balance().String())
}

func TestIssuePolicyAndRefresh(t *testing.T) {
	chain := chaintest.New(t)
	out, err := runCLI(t, chain, "", "issue-policy",
		"--holder", chaintest.AliceAccount.String(), "--premium", "0.1", "--coverage", "5", "--duration", "365")
	require.NoError(t, err)
	assert.Contains(t, out, "✅ Policy #0 issued for "+chaintest.AliceAccount.String())

	chain.SetAccounts(chaintest.AliceAccount)
	out, err = runCLI(t, chain, "", "refresh")
	require.NoError(t, err)
	assert.Contains(t, out, "[Connected]")
	assert.Contains(t, out, "✅ Policies and Claims refreshed successfully.")
	assert.Regexp(t, `#0\s+5 ETH\s+0.1 ETH`, out)
}

func TestAdminCommandFails(t *testing.T) {
	chain := chaintest.New(t)
	out, err := runCLI(t, chain, "", "approve-claim", "--claim", "9")
	var cf *commandFailed
	require.ErrorAs(t, err, &cf)
	assert.Regexp(t, "IN010903.*approveClaim", err)
	assert.Contains(t, out, "❌ Approval failed: ")
	assert.Contains(t, out, "Claim does not exist")
}

func TestAdminConnectDenied(t *testing.T) {
	chain := chaintest.New(t)
	chain.Accounts = chain.Accounts[1:]
	out, err := runCLI(t, chain, "", "pay-claim", "--claim", "0")
	var cf *commandFailed
	require.ErrorAs(t, err, &cf)
	assert.Contains(t, out, "[Access Denied]")
	assert.Equal(t, 0, chain.Calls("eth_sendTransaction"))
}

func TestConnectCommands(t *testing.T) {
	chain := chaintest.New(t)
	out, err := runCLI(t, chain, "", "admin")
	require.NoError(t, err)
	assert.Contains(t, out, "[Admin: "+insapi.Identity(chaintest.InsurerAccount.String()).Short()+"]")

	out, err = runCLI(t, chain, "", "connect", "--wallet", "none")
	var cf *commandFailed
	require.ErrorAs(t, err, &cf)
	assert.Contains(t, out, "[Wallet Not Found]")
}

func TestConfigErrors(t *testing.T) {
	chain := chaintest.New(t)
	_, err := runCLI(t, chain, "", "connect", "--wallet", "browser")
	assert.Regexp(t, "IN010005", err)

	_, err = runCLI(t, chain, "", "connect", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Regexp(t, "IN010000", err)

	_, err = runCLI(t, chain, "", "refresh", "extra")
	assert.Error(t, err)
}

func TestConfigFileWithFlagOverride(t *testing.T) {
	chain := chaintest.New(t)
	path := filepath.Join(t.TempDir(), "insurectl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
rpc:
  url: http://127.0.0.1:1
contract:
  address: "0x0000000000000000000000000000000000000001"
listing:
  upperBound: exclusive
`), 0644))
	out, err := runCLI(t, chain, "", "claims", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "No claims found")
	assert.Equal(t, 0, chain.Calls("eth_call:claims"))
}

func TestShell(t *testing.T) {
	chain := chaintest.New(t)
	chain.AddPolicy(chaintest.AliceAccount, 1, 1000000000000000000)
	chain.AddClaim(0, chaintest.AliceAccount, 500000000000000000, false, false)
	stdin := strings.Join([]string{"claims", "admin", "approve 0", "fund 1", "pay-claim 0", "claims", "log", "quit"}, "\n")
	out, err := runCLI(t, chain, stdin, "shell")
	require.NoError(t, err)

	assert.Contains(t, out, "Please connect wallet first.")
	assert.Contains(t, out, "✅ Claim #0 approved for Policy #0")
	assert.Contains(t, out, "💸 Claim #0 paid successfully for Policy #0")
	assert.Regexp(t, `0\s+0\s+0xa11c\.\.\.0001\s+0.5 ETH\s+✅\s+💸`, out)
	assert.True(t, chain.Claims()[0].Paid)
}

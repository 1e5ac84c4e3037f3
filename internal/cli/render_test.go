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
	"testing"

	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insapi"
	"github.com/stretchr/testify/assert"
)

func TestRenderPolicyholderListing(t *testing.T) {
	buf := new(bytes.Buffer)
	renderOutcome(buf, "ETH", &insapi.Outcome{
		Kind:    insapi.OutcomeListing,
		Listing: insapi.ListingPolicies,
		Policies: []*insapi.PolicyView{
			{ID: 1, Premium: "0.1", Coverage: "5", Active: true},
			{ID: 4, Premium: "1", Coverage: "10", Active: false},
		},
		Claims: []*insapi.ClaimView{
			{ID: 0, PolicyID: 1, Amount: "2", Status: insapi.ClaimPending},
			{ID: 2, PolicyID: 1, Amount: "1", Status: insapi.ClaimApproved},
			{ID: 3, PolicyID: 4, Amount: "3", Status: insapi.ClaimPaid},
		},
	})
	text := buf.String()
	assert.Regexp(t, `#1\s+5 ETH\s+0.1 ETH\s+✅ Active`, text)
	assert.Regexp(t, `#4\s+10 ETH\s+1 ETH\s+❌ Inactive`, text)
	assert.Regexp(t, `#0\s+#1\s+2 ETH\s+🕓 Pending`, text)
	assert.Regexp(t, `#2\s+#1\s+1 ETH\s+✅ Approved, Awaiting Payment`, text)
	assert.Regexp(t, `#3\s+#4\s+3 ETH\s+💸 Paid`, text)
}

func TestRenderEmptyListings(t *testing.T) {
	buf := new(bytes.Buffer)
	renderOutcome(buf, "ETH", &insapi.Outcome{Kind: insapi.OutcomeListing, Listing: insapi.ListingPolicies})
	assert.Equal(t, "My Policies\n  No policies found\nMy Claims\n  No claims found\n", buf.String())

	buf.Reset()
	renderOutcome(buf, "ETH", &insapi.Outcome{Kind: insapi.OutcomeListing, Listing: insapi.ListingAllClaims})
	assert.Equal(t, "No claims found\n", buf.String())
}

func TestRenderAdminClaims(t *testing.T) {
	buf := new(bytes.Buffer)
	renderOutcome(buf, "ETH", &insapi.Outcome{
		Kind:    insapi.OutcomeListing,
		Listing: insapi.ListingAllClaims,
		Claims: []*insapi.ClaimView{
			{ID: 0, PolicyID: 1, Claimant: "0xb0b0000000000000000000000000000000000002", Amount: "2", Status: insapi.ClaimPending},
			{ID: 1, PolicyID: 1, Claimant: "0xb0b0000000000000000000000000000000000002", Amount: "1", Status: insapi.ClaimApproved},
		},
	})
	text := buf.String()
	assert.Regexp(t, `0\s+1\s+0xb0b0\.\.\.0002\s+2 ETH\s+❌\s+❌`, text)
	assert.Regexp(t, `1\s+1\s+0xb0b0\.\.\.0002\s+1 ETH\s+✅\s+❌`, text)
}

func TestRenderLabelOnly(t *testing.T) {
	buf := new(bytes.Buffer)
	renderOutcome(buf, "ETH", &insapi.Outcome{Kind: insapi.OutcomeFailed, Label: "Invalid Contract"})
	assert.Equal(t, "[Invalid Contract]\n", buf.String())
}

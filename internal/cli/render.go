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
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insapi"
)

func activeText(active bool) string {
	if active {
		return "✅ Active"
	}
	return "❌ Inactive"
}

func claimStatusText(status insapi.ClaimStatus) string {
	switch status {
	case insapi.ClaimPaid:
		return "💸 Paid"
	case insapi.ClaimApproved:
		return "✅ Approved, Awaiting Payment"
	default:
		return "🕓 Pending"
	}
}

func mark(b bool, yes string) string {
	if b {
		return yes
	}
	return "❌"
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func renderPolicies(w io.Writer, symbol string, policies []*insapi.PolicyView) {
	_, _ = fmt.Fprintln(w, "My Policies")
	if len(policies) == 0 {
		_, _ = fmt.Fprintln(w, "  No policies found")
		return
	}
	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "  POLICY\tCOVERAGE\tPREMIUM\tSTATUS")
	for _, p := range policies {
		_, _ = fmt.Fprintf(tw, "  #%d\t%s %s\t%s %s\t%s\n", p.ID, p.Coverage, symbol, p.Premium, symbol, activeText(p.Active))
	}
	_ = tw.Flush()
}

func renderClaims(w io.Writer, symbol string, claims []*insapi.ClaimView) {
	_, _ = fmt.Fprintln(w, "My Claims")
	if len(claims) == 0 {
		_, _ = fmt.Fprintln(w, "  No claims found")
		return
	}
	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "  CLAIM\tPOLICY\tAMOUNT\tSTATUS")
	for _, c := range claims {
		_, _ = fmt.Fprintf(tw, "  #%d\t#%d\t%s %s\t%s\n", c.ID, c.PolicyID, c.Amount, symbol, claimStatusText(c.Status))
	}
	_ = tw.Flush()
}

// renderClaimsTable is the administrator view of every submitted claim
func renderClaimsTable(w io.Writer, symbol string, claims []*insapi.ClaimView) {
	if len(claims) == 0 {
		_, _ = fmt.Fprintln(w, "No claims found")
		return
	}
	tw := newTable(w)
	_, _ = fmt.Fprintln(tw, "ID\tPOLICY\tCLAIMANT\tAMOUNT\tAPPROVED\tPAID")
	for _, c := range claims {
		_, _ = fmt.Fprintf(tw, "%d\t%d\t%s\t%s %s\t%s\t%s\n",
			c.ID, c.PolicyID, insapi.Identity(c.Claimant).Short(), c.Amount, symbol,
			mark(c.Status != insapi.ClaimPending, "✅"), mark(c.Status == insapi.ClaimPaid, "💸"))
	}
	_ = tw.Flush()
}

// renderOutcome prints what the activity feed does not already show
func renderOutcome(w io.Writer, symbol string, out *insapi.Outcome) {
	if out.Label != "" {
		_, _ = fmt.Fprintf(w, "[%s]\n", out.Label)
	}
	if out.Kind != insapi.OutcomeListing {
		return
	}
	switch out.Listing {
	case insapi.ListingAllClaims:
		renderClaimsTable(w, symbol, out.Claims)
	default:
		renderPolicies(w, symbol, out.Policies)
		renderClaims(w, symbol, out.Claims)
	}
}

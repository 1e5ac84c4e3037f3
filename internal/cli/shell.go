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
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/activitylog"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/dispatcher"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/msgs"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insapi"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

type commandDispatcher interface {
	Dispatch(ctx context.Context, cmd dispatcher.Command) *insapi.Outcome
}

type shellCommand struct {
	usage string
	help  string
	build func(args []string) dispatcher.Command
}

// arg returns the positional argument, empty when missing so the command reports
// the missing field itself
func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

var shellCommands = map[string]*shellCommand{
	"connect": {
		usage: "connect",
		help:  "connect the wallet account",
		build: func([]string) dispatcher.Command { return &dispatcher.Connect{} },
	},
	"admin": {
		usage: "admin",
		help:  "connect as the insurer",
		build: func([]string) dispatcher.Command { return &dispatcher.ConnectAdmin{} },
	},
	"issue": {
		usage: "issue <holder> <premium> <coverage> <durationDays>",
		help:  "issue a policy (admin)",
		build: func(a []string) dispatcher.Command {
			return &dispatcher.IssuePolicy{Holder: arg(a, 0), Premium: arg(a, 1), Coverage: arg(a, 2), Duration: arg(a, 3)}
		},
	},
	"pay-premium": {
		usage: "pay-premium <policyId> <amount>",
		help:  "pay a premium",
		build: func(a []string) dispatcher.Command {
			return &dispatcher.PayPremium{PolicyID: arg(a, 0), Amount: arg(a, 1)}
		},
	},
	"claim": {
		usage: "claim <policyId> <amount>",
		help:  "submit a claim",
		build: func(a []string) dispatcher.Command {
			return &dispatcher.SubmitClaim{PolicyID: arg(a, 0), Amount: arg(a, 1)}
		},
	},
	"approve": {
		usage: "approve <claimId>",
		help:  "approve a claim (admin)",
		build: func(a []string) dispatcher.Command { return &dispatcher.ApproveClaim{ClaimID: arg(a, 0)} },
	},
	"pay-claim": {
		usage: "pay-claim <claimId>",
		help:  "pay an approved claim (admin)",
		build: func(a []string) dispatcher.Command { return &dispatcher.PayClaim{ClaimID: arg(a, 0)} },
	},
	"fund": {
		usage: "fund <amount>",
		help:  "fund the contract (admin)",
		build: func(a []string) dispatcher.Command { return &dispatcher.FundContract{Amount: arg(a, 0)} },
	},
	"refresh": {
		usage: "refresh",
		help:  "list my policies and claims",
		build: func([]string) dispatcher.Command { return &dispatcher.RefreshPolicyholder{} },
	},
	"claims": {
		usage: "claims",
		help:  "list all submitted claims (admin)",
		build: func([]string) dispatcher.Command { return &dispatcher.RefreshClaims{} },
	},
}

var shellCommandOrder = []string{"connect", "admin", "issue", "pay-premium", "claim", "approve", "pay-claim", "fund", "refresh", "claims"}

func parseShellCommand(ctx context.Context, fields []string) (dispatcher.Command, error) {
	sc, ok := shellCommands[fields[0]]
	if !ok {
		return nil, i18n.NewError(ctx, msgs.MsgShellUnknownCommand, fields[0])
	}
	if len(fields)-1 > len(strings.Fields(sc.usage))-1 {
		return nil, i18n.NewError(ctx, msgs.MsgShellTooManyArgs, sc.usage)
	}
	return sc.build(fields[1:]), nil
}

func printShellHelp(w io.Writer) {
	for _, name := range shellCommandOrder {
		sc := shellCommands[name]
		_, _ = fmt.Fprintf(w, "  %-52s %s\n", sc.usage, sc.help)
	}
	_, _ = fmt.Fprintf(w, "  %-52s %s\n", "log", "show the activity feed, newest first")
	_, _ = fmt.Fprintf(w, "  %-52s %s\n", "exit | quit", "leave the shell")
}

// runShell keeps one session, and one activity feed, across commands until EOF or exit
func runShell(ctx context.Context, d commandDispatcher, activity *activitylog.ActivityLog, symbol string, in io.Reader, out io.Writer) {
	scanner := bufio.NewScanner(in)
	for {
		_, _ = fmt.Fprint(out, "insurectl> ")
		if !scanner.Scan() {
			_, _ = fmt.Fprintln(out)
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "exit", "quit":
			return
		case "help":
			printShellHelp(out)
			continue
		case "log":
			activitylog.RenderAll(out, activity.Entries())
			continue
		}
		cmd, err := parseShellCommand(ctx, fields)
		if err != nil {
			_, _ = fmt.Fprintln(out, err.Error())
			continue
		}
		renderOutcome(out, symbol, d.Dispatch(ctx, cmd))
	}
}

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

// Package cli is the insurectl command line: one-shot commands that connect and
// run a single action, and an interactive shell that keeps the session.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/app"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/dispatcher"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/msgs"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/confutil"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insapi"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insconf"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	configFile string
	rpcURL     string
	contract   string
	wallet     string
	logLevel   string
}

// commandFailed is returned when the outcome was already reported on the feed
type commandFailed struct {
	err error
}

func (cf *commandFailed) Error() string {
	return cf.err.Error()
}

func (o *rootOptions) loadConfig(ctx context.Context) (*insconf.ClientConfig, error) {
	conf, err := app.LoadConfig(ctx, o.configFile)
	if err != nil {
		return nil, err
	}
	if o.rpcURL != "" {
		conf.RPC.URL = o.rpcURL
	}
	if o.contract != "" {
		conf.Contract.Address = o.contract
	}
	if o.wallet != "" {
		conf.Wallet.Type = confutil.P(o.wallet)
	}
	if o.logLevel != "" {
		conf.Log.Level = confutil.P(o.logLevel)
	}
	return conf, nil
}

func (o *rootOptions) startApp(cmd *cobra.Command) (*app.App, error) {
	ctx := cmd.Context()
	conf, err := o.loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	a, err := app.New(ctx, conf, cmd.OutOrStdout())
	if err != nil {
		return nil, err
	}
	return a, a.Start()
}

// dispatch runs one command and prints its outcome. Failures were already
// recorded on the feed.
func dispatch(cmd *cobra.Command, a *app.App, c dispatcher.Command) error {
	ctx := cmd.Context()
	out := a.Dispatcher().Dispatch(ctx, c)
	renderOutcome(cmd.OutOrStdout(), a.Units().Symbol(), out)
	if out.Kind == insapi.OutcomeFailed {
		return &commandFailed{err: i18n.NewError(ctx, msgs.MsgCommandFailed, c.Name())}
	}
	return nil
}

// runOnce connects, as the insurer for admin commands, then dispatches the command
func (o *rootOptions) runOnce(cmd *cobra.Command, admin bool, build func() dispatcher.Command) error {
	a, err := o.startApp(cmd)
	if err != nil {
		return err
	}
	defer a.Stop()

	var connect dispatcher.Command = &dispatcher.Connect{}
	if admin {
		connect = &dispatcher.ConnectAdmin{}
	}
	if err := dispatch(cmd, a, connect); err != nil {
		return err
	}
	return dispatch(cmd, a, build())
}

func NewRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	o := &rootOptions{}
	root := &cobra.Command{
		Use:           "insurectl",
		Short:         "Client for the insurance smart contract",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(out)

	pf := root.PersistentFlags()
	pf.StringVarP(&o.configFile, "config", "c", "", "YAML configuration file")
	pf.StringVar(&o.rpcURL, "rpc-url", "", "JSON/RPC endpoint of the node (overrides rpc.url)")
	pf.StringVar(&o.contract, "contract", "", "insurance contract address (overrides contract.address)")
	pf.StringVar(&o.wallet, "wallet", "", "wallet type: node, hdwallet or none (overrides wallet.type)")
	pf.StringVar(&o.logLevel, "log-level", "", "log level (overrides log.level)")

	root.AddCommand(
		o.connectCommand("connect", "Connect the wallet account", &dispatcher.Connect{}),
		o.connectCommand("admin", "Connect as the insurer account", &dispatcher.ConnectAdmin{}),
		o.issuePolicyCommand(),
		o.payPremiumCommand(),
		o.submitClaimCommand(),
		o.claimIDCommand("approve-claim", "Approve a submitted claim", func(id string) dispatcher.Command {
			return &dispatcher.ApproveClaim{ClaimID: id}
		}),
		o.claimIDCommand("pay-claim", "Pay an approved claim", func(id string) dispatcher.Command {
			return &dispatcher.PayClaim{ClaimID: id}
		}),
		o.fundCommand(),
		o.simpleCommand("refresh", "List the policies and claims of the connected account", false, func() dispatcher.Command {
			return &dispatcher.RefreshPolicyholder{}
		}),
		o.simpleCommand("claims", "List every submitted claim", true, func() dispatcher.Command { return &dispatcher.RefreshClaims{} }),
		o.shellCommand(),
	)
	return root
}

func (o *rootOptions) simpleCommand(use, short string, admin bool, build func() dispatcher.Command) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.runOnce(cmd, admin, build)
		},
	}
}

func (o *rootOptions) connectCommand(use, short string, connect dispatcher.Command) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.runConnect(cmd, connect)
		},
	}
}

func (o *rootOptions) runConnect(cmd *cobra.Command, connect dispatcher.Command) error {
	a, err := o.startApp(cmd)
	if err != nil {
		return err
	}
	defer a.Stop()
	return dispatch(cmd, a, connect)
}

func (o *rootOptions) issuePolicyCommand() *cobra.Command {
	op := &dispatcher.IssuePolicy{}
	cmd := &cobra.Command{
		Use:   "issue-policy",
		Short: "Issue a policy to a holder",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.runOnce(cmd, true, func() dispatcher.Command { return op })
		},
	}
	cmd.Flags().StringVar(&op.Holder, "holder", "", "address of the policy holder")
	cmd.Flags().StringVar(&op.Premium, "premium", "", "premium, in whole currency units")
	cmd.Flags().StringVar(&op.Coverage, "coverage", "", "coverage, in whole currency units")
	cmd.Flags().StringVar(&op.Duration, "duration", "", "duration in days")
	return cmd
}

func (o *rootOptions) payPremiumCommand() *cobra.Command {
	op := &dispatcher.PayPremium{}
	cmd := &cobra.Command{
		Use:   "pay-premium",
		Short: "Pay the premium of a policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.runOnce(cmd, false, func() dispatcher.Command { return op })
		},
	}
	cmd.Flags().StringVar(&op.PolicyID, "policy", "", "policy id")
	cmd.Flags().StringVar(&op.Amount, "amount", "", "amount, in whole currency units")
	return cmd
}

func (o *rootOptions) submitClaimCommand() *cobra.Command {
	op := &dispatcher.SubmitClaim{}
	cmd := &cobra.Command{
		Use:   "submit-claim",
		Short: "Submit a claim against a policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.runOnce(cmd, false, func() dispatcher.Command { return op })
		},
	}
	cmd.Flags().StringVar(&op.PolicyID, "policy", "", "policy id")
	cmd.Flags().StringVar(&op.Amount, "amount", "", "claim amount, in whole currency units")
	return cmd
}

func (o *rootOptions) claimIDCommand(use, short string, build func(id string) dispatcher.Command) *cobra.Command {
	var claimID string
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.runOnce(cmd, true, func() dispatcher.Command { return build(claimID) })
		},
	}
	cmd.Flags().StringVar(&claimID, "claim", "", "claim id")
	return cmd
}

func (o *rootOptions) fundCommand() *cobra.Command {
	op := &dispatcher.FundContract{}
	cmd := &cobra.Command{
		Use:   "fund",
		Short: "Fund the contract so claims can be paid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.runOnce(cmd, true, func() dispatcher.Command { return op })
		},
	}
	cmd.Flags().StringVar(&op.Amount, "amount", "", "amount, in whole currency units")
	return cmd
}

func (o *rootOptions) shellCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive shell keeping one session and activity feed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := o.startApp(cmd)
			if err != nil {
				return err
			}
			defer a.Stop()
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type 'help' for the list of commands")
			runShell(cmd.Context(), a.Dispatcher(), a.Activity(), a.Units().Symbol(), cmd.InOrStdin(), cmd.OutOrStdout())
			return nil
		},
	}
}

// Execute runs the command line, returning the process exit code
func Execute() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := NewRootCommand(os.Stdin, os.Stdout).ExecuteContext(ctx); err != nil {
		var cf *commandFailed
		if !errors.As(err, &cf) {
			_, _ = fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}
	return 0
}

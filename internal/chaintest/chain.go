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

// Package chaintest serves an in-memory insurance contract over JSON/RPC, so the
// client packages can be tested end to end against real ABI encoding.
package chaintest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/ethclient"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insconf"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insurance"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/rpcclient"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/units"
	"github.com/hyperledger/firefly-signer/pkg/abi"
	"github.com/hyperledger/firefly-signer/pkg/ethsigner"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"
)

const DefaultChainID = 1337

var (
	ContractAddress = *ethtypes.MustNewAddress("0xc0ffee254729296a45a3885639ac7e10f9d54979")
	InsurerAccount  = *ethtypes.MustNewAddress("0x1b5ebe1111111111111111111111111111111111")
	AliceAccount    = *ethtypes.MustNewAddress("0xa11ce00000000000000000000000000000000001")
	BobAccount      = *ethtypes.MustNewAddress("0xb0b0000000000000000000000000000000000002")
)

type Policy struct {
	Holder    ethtypes.Address0xHex
	Premium   *big.Int
	Coverage  *big.Int
	StartTime *big.Int
	EndTime   *big.Int
	Active    bool
}

type Claim struct {
	PolicyID uint64
	Claimant ethtypes.Address0xHex
	Amount   *big.Int
	Approved bool
	Paid     bool
}

// Chain behaves like a node with one insurance contract deployed. Exported
// switches must be set before the first request, or changed with the setters.
type Chain struct {
	ABI      abi.ABI
	Address  ethtypes.Address0xHex
	Insurer  ethtypes.Address0xHex
	Accounts []ethtypes.Address0xHex
	ChainID  int64

	// authority accessors that answer, the rest revert as if missing
	AuthorityMethods []string
	EmitEvents       bool
	// number of receipt polls answered with null before the receipt is mined
	PendingPolls int
	// failing writes are mined with status 0, instead of being rejected on submission
	MineReverts bool
	// eth_requestAccounts answers with a 4001 user rejection
	RejectAccounts bool
	// eth_requestAccounts is not implemented, only eth_accounts
	NoRequestAccounts bool
	// accounts are returned with upper case hex digits
	MixedCaseAccounts bool
	// FailRead makes a view call fail with an RPC error when it returns true
	FailRead func(method string, args []any) bool

	lock      sync.Mutex
	server    *httptest.Server
	policies  []*Policy
	claims    []*Claim
	balance   *big.Int
	nonces    map[ethtypes.Address0xHex]uint64
	receipts  map[string]*minedTX
	txCount   uint64
	callCount map[string]int
}

type minedTX struct {
	polls   int
	receipt *ethclient.TransactionReceipt
}

type revert string

func New(t testing.TB) *Chain {
	c := &Chain{
		ABI:              insurance.DefaultABI(),
		Address:          ContractAddress,
		Insurer:          InsurerAccount,
		Accounts:         []ethtypes.Address0xHex{InsurerAccount, AliceAccount, BobAccount},
		ChainID:          DefaultChainID,
		AuthorityMethods: []string{"insurer", "owner"},
		EmitEvents:       true,
		balance:          big.NewInt(0),
		nonces:           map[ethtypes.Address0xHex]uint64{},
		receipts:         map[string]*minedTX{},
		callCount:        map[string]int{},
	}
	c.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req rpcclient.RPCRequest
		require.NoError(t, json.Unmarshal(b, &req))
		res := &rpcclient.RPCResponse{JSONRpc: "2.0", ID: req.ID}
		result, rpcErr := c.handle(req.Method, req.Params)
		if rpcErr != nil {
			res.Error = rpcErr
		} else {
			res.Result, err = json.Marshal(result)
			require.NoError(t, err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(res)
	}))
	t.Cleanup(c.server.Close)
	return c
}

func (c *Chain) URL() string {
	return c.server.URL
}

// Close stops the server, so later requests fail as if the node went away
func (c *Chain) Close() {
	c.server.Close()
}

func (c *Chain) HTTPConfig() *insconf.HTTPClientConfig {
	return &insconf.HTTPClientConfig{URL: c.server.URL}
}

// EthClient connects a real client to the chain
func (c *Chain) EthClient(t testing.TB) ethclient.EthClient {
	ctx := context.Background()
	rpc, err := rpcclient.NewHTTPClient(ctx, c.HTTPConfig())
	require.NoError(t, err)
	ec, err := ethclient.WrapRPCClient(ctx, rpc)
	require.NoError(t, err)
	return ec
}

// Contract binds the chain ABI to the deployed address
func (c *Chain) Contract(t testing.TB) *insurance.Contract {
	contract, err := insurance.NewContract(context.Background(), c.EthClient(t), c.Address.String(), c.ABI)
	require.NoError(t, err)
	return contract
}

// Ether is the default 18 decimal converter
func Ether(t testing.TB) *units.Converter {
	c, err := units.NewConverter(context.Background(), &insconf.UnitsConfig{})
	require.NoError(t, err)
	return c
}

// AddPolicy writes a policy slot directly, returning its id
func (c *Chain) AddPolicy(holder ethtypes.Address0xHex, premium, coverage int64) uint64 {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.policies = append(c.policies, &Policy{
		Holder:    holder,
		Premium:   big.NewInt(premium),
		Coverage:  big.NewInt(coverage),
		StartTime: big.NewInt(1700000000),
		EndTime:   big.NewInt(1700000000 + 365*86400),
		Active:    true,
	})
	return uint64(len(c.policies) - 1)
}

// AddClaim writes a claim slot directly, returning its id
func (c *Chain) AddClaim(policyID uint64, claimant ethtypes.Address0xHex, amount int64, approved, paid bool) uint64 {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.claims = append(c.claims, &Claim{
		PolicyID: policyID,
		Claimant: claimant,
		Amount:   big.NewInt(amount),
		Approved: approved,
		Paid:     paid,
	})
	return uint64(len(c.claims) - 1)
}

// SetAccounts changes the accounts the wallet side returns, first one selected
func (c *Chain) SetAccounts(accounts ...ethtypes.Address0xHex) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.Accounts = accounts
}

func (c *Chain) SetEmitEvents(emit bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.EmitEvents = emit
}

// SetPolicyHolder overwrites the holder of a slot, zero marks it absent
func (c *Chain) SetPolicyHolder(id uint64, holder ethtypes.Address0xHex) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.policies[id].Holder = holder
}

func (c *Chain) Policies() []Policy {
	c.lock.Lock()
	defer c.lock.Unlock()
	res := make([]Policy, len(c.policies))
	for i, p := range c.policies {
		res[i] = *p
	}
	return res
}

func (c *Chain) Claims() []Claim {
	c.lock.Lock()
	defer c.lock.Unlock()
	res := make([]Claim, len(c.claims))
	for i, cl := range c.claims {
		res[i] = *cl
	}
	return res
}

func (c *Chain) Balance() *big.Int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return new(big.Int).Set(c.balance)
}

// Calls counts the requests received for a JSON/RPC method, or for a contract
// function as "eth_call:<name>" and "tx:<name>"
func (c *Chain) Calls(key string) int {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.callCount[key]
}

func (c *Chain) accountStrings() []string {
	res := make([]string, len(c.Accounts))
	for i, a := range c.Accounts {
		res[i] = a.String()
		if c.MixedCaseAccounts {
			res[i] = "0x" + strings.ToUpper(res[i][2:])
		}
	}
	return res
}

func rpcError(code rpcclient.RPCCode, msg string, args ...any) *rpcclient.RPCError {
	return &rpcclient.RPCError{Code: int64(code), Message: fmt.Sprintf(msg, args...)}
}

func revertError(reason revert) *rpcclient.RPCError {
	msg := "execution reverted"
	if reason != "" {
		msg += ": " + string(reason)
	}
	return &rpcclient.RPCError{Code: 3, Message: msg}
}

func (c *Chain) handle(method string, params []json.RawMessage) (any, *rpcclient.RPCError) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.callCount[method]++
	switch method {
	case "eth_chainId":
		return ethtypes.NewHexInteger64(c.ChainID), nil
	case "eth_requestAccounts":
		if c.NoRequestAccounts {
			return nil, rpcError(rpcclient.RPCCodeMethodNotFound, "the method eth_requestAccounts does not exist/is not available")
		}
		if c.RejectAccounts {
			return nil, rpcError(rpcclient.RPCCodeUserRejected, "User rejected the request.")
		}
		return c.accountStrings(), nil
	case "eth_accounts":
		return c.accountStrings(), nil
	case "eth_gasPrice":
		return ethtypes.NewHexInteger64(1000000000), nil
	case "eth_getTransactionCount":
		var addr ethtypes.Address0xHex
		if err := unmarshalParam(params, 0, &addr); err != nil {
			return nil, err
		}
		return ethtypes.HexUint64(c.nonces[addr]), nil
	case "eth_call", "eth_estimateGas":
		var tx ethsigner.Transaction
		if err := unmarshalParam(params, 0, &tx); err != nil {
			return nil, err
		}
		from := txFrom(&tx)
		if method == "eth_estimateGas" {
			if _, reason := c.execute(from, &tx, true); reason != nil {
				return nil, revertError(*reason)
			}
			return ethtypes.HexUint64(100000), nil
		}
		return c.call(&tx)
	case "eth_sendTransaction":
		var tx ethsigner.Transaction
		if err := unmarshalParam(params, 0, &tx); err != nil {
			return nil, err
		}
		from := txFrom(&tx)
		if from == nil {
			return nil, rpcError(rpcclient.RPCCodeInvalidRequest, "from address required")
		}
		return c.mine(*from, &tx)
	case "eth_sendRawTransaction":
		var raw ethtypes.HexBytes0xPrefix
		if err := unmarshalParam(params, 0, &raw); err != nil {
			return nil, err
		}
		from, tx, err := ethsigner.RecoverRawTransaction(context.Background(), raw, c.ChainID)
		if err != nil {
			return nil, rpcError(rpcclient.RPCCodeInvalidRequest, "invalid raw transaction: %s", err)
		}
		if tx.Nonce == nil || tx.Nonce.BigInt().Uint64() != c.nonces[*from] {
			return nil, rpcError(rpcclient.RPCCodeInvalidRequest, "nonce too low")
		}
		return c.mine(*from, tx.Transaction)
	case "eth_getTransactionReceipt":
		var hash ethtypes.HexBytes0xPrefix
		if err := unmarshalParam(params, 0, &hash); err != nil {
			return nil, err
		}
		mined := c.receipts[hash.String()]
		if mined == nil {
			return nil, nil
		}
		if mined.polls < c.PendingPolls {
			mined.polls++
			return nil, nil
		}
		return mined.receipt, nil
	default:
		return nil, rpcError(rpcclient.RPCCodeMethodNotFound, "the method %s does not exist/is not available", method)
	}
}

func unmarshalParam(params []json.RawMessage, i int, v any) *rpcclient.RPCError {
	if len(params) <= i {
		return rpcError(rpcclient.RPCCodeInvalidRequest, "missing parameter %d", i)
	}
	if err := json.Unmarshal(params[i], v); err != nil {
		return rpcError(rpcclient.RPCCodeInvalidRequest, "invalid parameter %d: %s", i, err)
	}
	return nil
}

func txFrom(tx *ethsigner.Transaction) *ethtypes.Address0xHex {
	if len(tx.From) == 0 {
		return nil
	}
	var from ethtypes.Address0xHex
	if err := json.Unmarshal(tx.From, &from); err != nil {
		return nil
	}
	return &from
}

func (c *Chain) function(data []byte) *abi.Entry {
	if len(data) < 4 {
		return nil
	}
	for _, e := range c.ABI {
		if e.Type == abi.Function && bytes.Equal(e.FunctionSelectorBytes(), data[:4]) {
			return e
		}
	}
	return nil
}

// decodeArgs returns the call arguments keyed by parameter name (or position when unnamed)
func decodeArgs(fn *abi.Entry, data []byte) (map[string]any, []any, error) {
	cv, err := fn.DecodeCallData(data)
	if err != nil {
		return nil, nil, err
	}
	flat, err := abi.NewSerializer().
		SetFormattingMode(abi.FormatAsFlatArrays).
		SetIntSerializer(abi.Base10StringIntSerializer).
		SetAddressSerializer(abi.HexAddrSerializer0xPrefix).
		SerializeJSONCtx(context.Background(), cv)
	if err != nil {
		return nil, nil, err
	}
	var positional []any
	if err := json.Unmarshal(flat, &positional); err != nil {
		return nil, nil, err
	}
	named := make(map[string]any, len(positional))
	for i, p := range fn.Inputs {
		if i < len(positional) {
			named[paramKey(p, i)] = positional[i]
		}
	}
	return named, positional, nil
}

func paramKey(p *abi.Parameter, i int) string {
	if p.Name == "" {
		return fmt.Sprintf("%d", i)
	}
	return p.Name
}

// encodeValues picks each parameter by name from the supplied values
func encodeValues(params abi.ParameterArray, values map[string]any) ([]byte, error) {
	positional := make([]any, len(params))
	for i, p := range params {
		positional[i] = values[paramKey(p, i)]
	}
	return params.EncodeABIDataValues(positional)
}

func (c *Chain) call(tx *ethsigner.Transaction) (any, *rpcclient.RPCError) {
	fn := c.function(tx.Data)
	if fn == nil {
		return nil, revertError("")
	}
	c.callCount["eth_call:"+fn.Name]++
	named, positional, err := decodeArgs(fn, tx.Data)
	if err != nil {
		return nil, rpcError(rpcclient.RPCCodeInvalidRequest, "bad call data: %s", err)
	}
	if c.FailRead != nil && c.FailRead(fn.Name, positional) {
		return nil, rpcError(rpcclient.RPCCodeInternalError, "read of %s failed", fn.Name)
	}
	var out map[string]any
	switch fn.Name {
	case "insurer", "owner":
		found := false
		for _, m := range c.AuthorityMethods {
			found = found || m == fn.Name
		}
		if !found {
			return nil, revertError("")
		}
		out = map[string]any{"0": c.Insurer.String()}
	case "nextPolicyId":
		out = map[string]any{"0": u(len(c.policies))}
	case "nextClaimId":
		out = map[string]any{"0": u(len(c.claims))}
	case "policies":
		out = c.policyValues(argUint(named, "0"))
	case "claims":
		out = c.claimValues(argUint(named, "0"))
	default:
		return nil, revertError("")
	}
	data, err := encodeValues(fn.Outputs, out)
	if err != nil {
		return nil, rpcError(rpcclient.RPCCodeInternalError, "encode %s: %s", fn.Name, err)
	}
	return ethtypes.HexBytes0xPrefix(data), nil
}

func (c *Chain) policyValues(id uint64) map[string]any {
	p := &Policy{Premium: big.NewInt(0), Coverage: big.NewInt(0), StartTime: big.NewInt(0), EndTime: big.NewInt(0)}
	if id < uint64(len(c.policies)) {
		p = c.policies[id]
	} else {
		id = 0
	}
	return map[string]any{
		"id":        u(id),
		"holder":    p.Holder.String(),
		"premium":   p.Premium,
		"coverage":  p.Coverage,
		"startTime": p.StartTime,
		"endTime":   p.EndTime,
		"active":    p.Active,
	}
}

func (c *Chain) claimValues(id uint64) map[string]any {
	cl := &Claim{Amount: big.NewInt(0)}
	if id < uint64(len(c.claims)) {
		cl = c.claims[id]
	} else {
		id = 0
	}
	return map[string]any{
		"id":       u(id),
		"policyId": u(cl.PolicyID),
		"policyID": u(cl.PolicyID),
		"claimant": cl.Claimant.String(),
		"amount":   cl.Amount,
		"approved": cl.Approved,
		"paid":     cl.Paid,
	}
}

func u[T int | uint64](v T) *big.Int {
	return new(big.Int).SetUint64(uint64(v))
}

func argUint(named map[string]any, key string) uint64 {
	return argBig(named, key).Uint64()
}

func argBig(named map[string]any, key string) *big.Int {
	s, _ := named[key].(string)
	i, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return big.NewInt(0)
	}
	return i
}

func argAddress(named map[string]any, key string) ethtypes.Address0xHex {
	s, _ := named[key].(string)
	addr, err := ethtypes.NewAddress(s)
	if err != nil {
		return ethtypes.Address0xHex{}
	}
	return *addr
}

type event struct {
	name   string
	values map[string]any
}

// execute runs a write against the contract state. With dryRun set it only
// validates, as gas estimation does.
func (c *Chain) execute(from *ethtypes.Address0xHex, tx *ethsigner.Transaction, dryRun bool) (*event, *revert) {
	fail := func(reason string) (*event, *revert) {
		r := revert(reason)
		return nil, &r
	}
	if tx.To == nil || *tx.To != c.Address {
		return nil, nil
	}
	fn := c.function(tx.Data)
	if fn == nil {
		return fail("")
	}
	named, _, err := decodeArgs(fn, tx.Data)
	if err != nil {
		return fail("bad call data")
	}
	value := big.NewInt(0)
	if tx.Value != nil {
		value = tx.Value.BigInt()
	}
	isInsurer := from != nil && *from == c.Insurer
	sender := ethtypes.Address0xHex{}
	if from != nil {
		sender = *from
	}
	if !dryRun {
		c.callCount["tx:"+fn.Name]++
	}

	switch fn.Name {
	case "issuePolicy":
		holder := argAddress(named, "holder")
		premium, coverage, duration := argBig(named, "premium"), argBig(named, "coverage"), argBig(named, "duration")
		switch {
		case !isInsurer:
			return fail("Only insurer can perform this action")
		case holder == insurance.ZeroAddress:
			return fail("Invalid holder address")
		}
		if dryRun {
			return nil, nil
		}
		start := big.NewInt(1700000000 + int64(len(c.policies)))
		c.policies = append(c.policies, &Policy{
			Holder:    holder,
			Premium:   premium,
			Coverage:  coverage,
			StartTime: start,
			EndTime:   new(big.Int).Add(start, new(big.Int).Mul(duration, big.NewInt(86400))),
			Active:    true,
		})
		return &event{name: "PolicyIssued", values: map[string]any{
			"policyId": u(len(c.policies) - 1), "holder": holder.String(), "premium": premium, "coverage": coverage,
		}}, nil
	case "payPremium":
		policyID := argUint(named, "policyId")
		switch {
		case policyID >= uint64(len(c.policies)) || c.policies[policyID].Holder == insurance.ZeroAddress:
			return fail("Policy does not exist")
		case !c.policies[policyID].Active:
			return fail("Policy is not active")
		case value.Sign() == 0:
			return fail("Premium must be greater than zero")
		}
		if dryRun {
			return nil, nil
		}
		c.balance.Add(c.balance, value)
		return &event{name: "PremiumPaid", values: map[string]any{
			"policyId": u(policyID), "payer": sender.String(), "amount": value,
		}}, nil
	case "submitClaim":
		policyID, amount := argUint(named, "policyId"), argBig(named, "amount")
		switch {
		case policyID >= uint64(len(c.policies)) || c.policies[policyID].Holder == insurance.ZeroAddress:
			return fail("Policy does not exist")
		case amount.Sign() == 0:
			return fail("Claim amount must be greater than zero")
		case amount.Cmp(c.policies[policyID].Coverage) > 0:
			return fail("Claim exceeds coverage")
		}
		if dryRun {
			return nil, nil
		}
		c.claims = append(c.claims, &Claim{PolicyID: policyID, Claimant: sender, Amount: amount})
		return &event{name: "ClaimSubmitted", values: map[string]any{
			"claimId": u(len(c.claims) - 1), "policyId": u(policyID), "claimant": sender.String(), "amount": amount,
		}}, nil
	case "approveClaim", "payClaim":
		claimID := argUint(named, "claimId")
		switch {
		case !isInsurer:
			return fail("Only insurer can perform this action")
		case claimID >= uint64(len(c.claims)) || c.claims[claimID].Claimant == insurance.ZeroAddress:
			return fail("Claim does not exist")
		}
		cl := c.claims[claimID]
		if fn.Name == "approveClaim" {
			if cl.Approved {
				return fail("Claim already approved")
			}
			if dryRun {
				return nil, nil
			}
			cl.Approved = true
			return &event{name: "ClaimApproved", values: map[string]any{
				"claimId": u(claimID), "policyId": u(cl.PolicyID),
			}}, nil
		}
		switch {
		case !cl.Approved:
			return fail("Claim not approved")
		case cl.Paid:
			return fail("Claim already paid")
		case c.balance.Cmp(cl.Amount) < 0:
			return fail("Insufficient contract balance")
		}
		if dryRun {
			return nil, nil
		}
		cl.Paid = true
		c.balance.Sub(c.balance, cl.Amount)
		return &event{name: "ClaimPaid", values: map[string]any{
			"claimId": u(claimID), "policyId": u(cl.PolicyID), "amount": cl.Amount,
		}}, nil
	case "fundContract", "fund":
		if value.Sign() == 0 {
			return fail("No funds sent")
		}
		if dryRun {
			return nil, nil
		}
		c.balance.Add(c.balance, value)
		return &event{name: "ContractFunded", values: map[string]any{
			"from": sender.String(), "amount": value,
		}}, nil
	default:
		return fail("")
	}
}

func (c *Chain) mine(from ethtypes.Address0xHex, tx *ethsigner.Transaction) (any, *rpcclient.RPCError) {
	ev, reason := c.execute(&from, tx, false)
	if reason != nil && !c.MineReverts {
		return nil, revertError(*reason)
	}
	c.nonces[from]++
	c.txCount++
	hash := keccak(fmt.Sprintf("tx-%d", c.txCount))
	blockHash := keccak(fmt.Sprintf("block-%d", c.txCount))
	receipt := &ethclient.TransactionReceipt{
		BlockHash:       blockHash,
		BlockNumber:     ethtypes.HexUint64(c.txCount),
		From:            &from,
		To:              tx.To,
		GasUsed:         ethtypes.NewHexInteger64(50000),
		TransactionHash: hash,
		Status:          ethtypes.NewHexInteger64(1),
		Logs:            []*ethclient.LogJSONRPC{},
	}
	if reason != nil {
		receipt.Status = ethtypes.NewHexInteger64(0)
	} else if ev != nil && c.EmitEvents {
		if l := c.eventLog(ev); l != nil {
			l.TransactionHash = hash
			l.BlockHash = blockHash
			l.BlockNumber = receipt.BlockNumber
			receipt.Logs = append(receipt.Logs, l)
		}
	}
	c.receipts[hash.String()] = &minedTX{receipt: receipt}
	return hash, nil
}

// eventLog encodes an event the way the EVM does: the signature hash and indexed
// values as topics, everything else ABI encoded in the data
func (c *Chain) eventLog(ev *event) *ethclient.LogJSONRPC {
	var entry *abi.Entry
	for _, e := range c.ABI {
		if e.Type == abi.Event && e.Name == ev.name {
			entry = e
		}
	}
	if entry == nil {
		return nil
	}
	topics := []ethtypes.HexBytes0xPrefix{entry.SignatureHashBytes()}
	data := abi.ParameterArray{}
	for i, p := range entry.Inputs {
		if p.Indexed {
			topic, err := abi.ParameterArray{p}.EncodeABIDataValues([]any{ev.values[paramKey(p, i)]})
			if err != nil {
				panic(err)
			}
			topics = append(topics, topic)
		} else {
			data = append(data, p)
		}
	}
	encoded, err := encodeValues(data, ev.values)
	if err != nil {
		panic(err)
	}
	addr := c.Address
	return &ethclient.LogJSONRPC{
		Address: &addr,
		Topics:  topics,
		Data:    encoded,
	}
}

func keccak(s string) ethtypes.HexBytes0xPrefix {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(s))
	return h.Sum(nil)
}

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

package rpcclient

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/msgs"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insconf"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/log"
	"github.com/go-resty/resty/v2"
	"github.com/hyperledger/firefly-common/pkg/i18n"
)

type RPCCode int64

const (
	RPCCodeParseError     RPCCode = -32700
	RPCCodeInvalidRequest RPCCode = -32600
	RPCCodeMethodNotFound RPCCode = -32601
	RPCCodeInternalError  RPCCode = -32603
	// Wallet providers (EIP-1193) report a user declining a request with this code
	RPCCodeUserRejected RPCCode = 4001
	// Wallet providers report an account or method they do not expose with this code
	RPCCodeUnauthorized RPCCode = 4100
)

type ErrorRPC interface {
	error
	RPCError() *RPCError
}

type Client interface {
	CallRPC(ctx context.Context, result interface{}, method string, params ...interface{}) ErrorRPC
}

func NewHTTPClient(ctx context.Context, conf *insconf.HTTPClientConfig) (Client, error) {
	rc, err := NewResty(ctx, conf)
	if err != nil {
		return nil, err
	}
	return WrapRestyClient(rc), nil
}

func WrapRestyClient(rc *resty.Client) Client {
	return &rpcClient{client: rc}
}

type rpcClient struct {
	client         *resty.Client
	requestCounter int64
}

type RPCRequest struct {
	JSONRpc string            `json:"jsonrpc"`
	ID      json.RawMessage   `json:"id"`
	Method  string            `json:"method"`
	Params  []json.RawMessage `json:"params,omitempty"`
}

type RPCError struct {
	Code    int64           `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *RPCError) Error() string {
	return e.Message
}

func (e *RPCError) RPCError() *RPCError {
	return e
}

type RPCResponse struct {
	JSONRpc string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

// CallRPC posts one request and decodes the result into the target. A null
// result leaves the target untouched, which is how pending receipts are seen.
func (rc *rpcClient) CallRPC(ctx context.Context, result interface{}, method string, params ...interface{}) ErrorRPC {
	req, rpcErr := buildRequest(ctx, method, params)
	if rpcErr != nil {
		return rpcErr
	}
	traceID := fmt.Sprintf("%.9d", atomic.AddInt64(&rc.requestCounter, 1))
	req.ID = json.RawMessage(`"` + traceID + `"`)

	start := time.Now()
	log.L(ctx).Debugf("RPC[%s] --> %s", traceID, method)
	traceJSON(ctx, traceID, "INPUT", req)

	res := new(RPCResponse)
	httpRes, err := rc.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(res).
		SetError(res).
		Post("")
	if err != nil {
		rpcErr := NewRPCError(ctx, RPCCodeInternalError, msgs.MsgRPCClientRequestFailed, err)
		log.L(ctx).Errorf("RPC[%s] <-- %s", traceID, rpcErr)
		return rpcErr
	}
	traceJSON(ctx, traceID, "OUTPUT", res)

	// an error object can arrive with any HTTP status, including 200
	if res.Error != nil && res.Error.Code != 0 {
		log.L(ctx).Errorf("RPC[%s] <-- [%d] %d: %s", traceID, httpRes.StatusCode(), res.Error.Code, res.Error.Message)
		return res.Error
	}
	if httpRes.IsError() {
		log.L(ctx).Errorf("RPC[%s] <-- [%d]: %s", traceID, httpRes.StatusCode(), httpRes.Body())
		return NewRPCError(ctx, RPCCodeInternalError, msgs.MsgRPCClientRequestFailed, httpRes.Status())
	}
	log.L(ctx).Debugf("RPC[%s] <-- %s [%d] OK (%s)", traceID, method, httpRes.StatusCode(), time.Since(start).Round(time.Microsecond))

	if len(res.Result) == 0 {
		return nil
	}
	if err := json.Unmarshal(res.Result, result); err != nil {
		return NewRPCError(ctx, RPCCodeParseError, msgs.MsgRPCClientResultParseFailed, result, err)
	}
	return nil
}

func traceJSON(ctx context.Context, traceID, label string, v any) {
	if log.IsTraceEnabled() {
		b, _ := json.Marshal(v)
		log.L(ctx).Tracef("RPC[%s] %s: %s", traceID, label, b)
	}
}

func buildRequest(ctx context.Context, method string, params []interface{}) (*RPCRequest, ErrorRPC) {
	req := &RPCRequest{
		JSONRpc: "2.0",
		Method:  method,
		Params:  make([]json.RawMessage, len(params)),
	}
	for i, param := range params {
		b, err := json.Marshal(param)
		if err != nil {
			return nil, NewRPCError(ctx, RPCCodeInvalidRequest, msgs.MsgRPCClientInvalidParam, i, method, err)
		}
		req.Params[i] = b
	}
	return req, nil
}

func NewRPCError(ctx context.Context, code RPCCode, msg i18n.ErrorMessageKey, inserts ...interface{}) *RPCError {
	return &RPCError{Code: int64(code), Message: i18n.NewError(ctx, msg, inserts...).Error()}
}

func WrapRPCError(code RPCCode, err error) *RPCError {
	return &RPCError{Code: int64(code), Message: err.Error()}
}

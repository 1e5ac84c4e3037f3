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

package ethclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insconf"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/rpcclient"
	"github.com/stretchr/testify/require"
)

// mockEth answers JSON/RPC methods from per-method functions. Unset methods
// return an error, as a node would for an unsupported method.
type mockEth map[string]func(params []json.RawMessage) (any, *rpcclient.RPCError)

func newTestClientAndServer(t *testing.T, mEth mockEth) (context.Context, *ethClient, func()) {
	ctx := context.Background()
	if mEth["eth_chainId"] == nil {
		mEth["eth_chainId"] = func(params []json.RawMessage) (any, *rpcclient.RPCError) {
			return "0x3039", nil // 12345
		}
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		var req rpcclient.RPCRequest
		require.NoError(t, json.Unmarshal(b, &req))
		res := &rpcclient.RPCResponse{JSONRpc: "2.0", ID: req.ID}
		fn := mEth[req.Method]
		if fn == nil {
			res.Error = &rpcclient.RPCError{Code: int64(rpcclient.RPCCodeInvalidRequest), Message: fmt.Sprintf("method %s not implemented by test", req.Method)}
		} else {
			result, rpcErr := fn(req.Params)
			if rpcErr != nil {
				res.Error = rpcErr
			} else {
				res.Result, err = json.Marshal(result)
				require.NoError(t, err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(res)
	}))

	rpc, err := rpcclient.NewHTTPClient(ctx, &insconf.HTTPClientConfig{URL: server.URL})
	require.NoError(t, err)
	ec, err := WrapRPCClient(ctx, rpc)
	require.NoError(t, err)
	return ctx, ec.(*ethClient), server.Close
}

func popErr() *rpcclient.RPCError {
	return &rpcclient.RPCError{Code: int64(rpcclient.RPCCodeInternalError), Message: "pop"}
}

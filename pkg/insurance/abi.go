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

package insurance

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"os"

	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/msgs"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/abi"
)

//go:embed abis/Insurance.json
var insuranceABIJSON []byte

// DefaultABI is the interface of the reference insurance contract
func DefaultABI() abi.ABI {
	a, err := parseABI(insuranceABIJSON)
	if err != nil {
		panic(err)
	}
	return a
}

type buildArtifact struct {
	ABI abi.ABI `json:"abi"`
}

func parseABI(b []byte) (a abi.ABI, err error) {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var artifact buildArtifact
		err = json.Unmarshal(b, &artifact)
		a = artifact.ABI
	} else {
		err = json.Unmarshal(b, &a)
	}
	if err == nil && len(a) == 0 {
		err = os.ErrInvalid
	}
	return a, err
}

// LoadABI reads a JSON ABI array, or a compiler artifact with an "abi" field.
// With no file configured the embedded interface is returned.
func LoadABI(ctx context.Context, abiFile *string) (abi.ABI, error) {
	if abiFile == nil || *abiFile == "" {
		return DefaultABI(), nil
	}
	b, err := os.ReadFile(*abiFile)
	if err == nil {
		var a abi.ABI
		if a, err = parseABI(b); err == nil {
			return a, nil
		}
	}
	return nil, i18n.WrapError(ctx, err, msgs.MsgConfigABIFileInvalid, *abiFile)
}

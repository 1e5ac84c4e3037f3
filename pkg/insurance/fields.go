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
	"context"
	"math/big"

	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/msgs"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/hyperledger/firefly-signer/pkg/ethtypes"
)

// Fields is one decoded ABI record, event or return value. Getters fail closed
// when a field is missing or holds the wrong type.
type Fields struct {
	kind   string
	id     uint64
	values map[string]any
}

func NewFields(kind string, id uint64, values map[string]any) *Fields {
	return &Fields{kind: kind, id: id, values: values}
}

func (f *Fields) lookup(ctx context.Context, names ...string) (any, string, error) {
	for _, name := range names {
		if v, ok := f.values[name]; ok && v != nil {
			return v, name, nil
		}
	}
	return nil, "", i18n.NewError(ctx, msgs.MsgContractRecordFieldMiss, f.kind, f.id, names[0])
}

func (f *Fields) Has(name string) bool {
	_, ok := f.values[name]
	return ok
}

func (f *Fields) BigInt(ctx context.Context, names ...string) (*big.Int, error) {
	v, name, err := f.lookup(ctx, names...)
	if err != nil {
		return nil, err
	}
	s, ok := v.(string)
	if ok {
		if i, ok := new(big.Int).SetString(s, 10); ok && i.Sign() >= 0 {
			return i, nil
		}
	}
	return nil, i18n.NewError(ctx, msgs.MsgContractRecordFieldBad, f.kind, f.id, name, v)
}

func (f *Fields) Uint64(ctx context.Context, names ...string) (uint64, error) {
	i, err := f.BigInt(ctx, names...)
	if err != nil {
		return 0, err
	}
	if !i.IsUint64() {
		return 0, i18n.NewError(ctx, msgs.MsgContractRecordFieldBad, f.kind, f.id, names[0], i.String())
	}
	return i.Uint64(), nil
}

func (f *Fields) Address(ctx context.Context, names ...string) (*ethtypes.Address0xHex, error) {
	v, name, err := f.lookup(ctx, names...)
	if err != nil {
		return nil, err
	}
	if s, ok := v.(string); ok {
		if addr, err := ethtypes.NewAddress(s); err == nil {
			return addr, nil
		}
	}
	return nil, i18n.NewError(ctx, msgs.MsgContractRecordFieldBad, f.kind, f.id, name, v)
}

func (f *Fields) Bool(ctx context.Context, names ...string) (bool, error) {
	v, name, err := f.lookup(ctx, names...)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, i18n.NewError(ctx, msgs.MsgContractRecordFieldBad, f.kind, f.id, name, v)
	}
	return b, nil
}

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

package units

import (
	"context"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/internal/msgs"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/confutil"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insconf"
	"github.com/hyperledger/firefly-common/pkg/i18n"
	"github.com/shopspring/decimal"
)

// MaxDecimals is the largest shift that still fits a uint256 with at least one integer digit
const MaxDecimals = 77

var (
	amountRegex = regexp.MustCompile(`^\d+(\.\d+)?$`)
	idRegex     = regexp.MustCompile(`^\d+$`)
)

// Converter moves amounts between decimal strings as typed by a user, and the integer
// base units the contract stores. All arithmetic is exact.
type Converter struct {
	decimals int32
	symbol   string
}

func NewConverter(ctx context.Context, conf *insconf.UnitsConfig) (*Converter, error) {
	decimals := confutil.Value(conf.Decimals, *insconf.UnitsDefaults.Decimals)
	if decimals < 0 || decimals > MaxDecimals {
		return nil, i18n.NewError(ctx, msgs.MsgUnitsInvalidDecimalCount, MaxDecimals, decimals)
	}
	return &Converter{
		decimals: int32(decimals),
		symbol:   confutil.StringNotEmpty(conf.Symbol, *insconf.UnitsDefaults.Symbol),
	}, nil
}

func (c *Converter) Decimals() int {
	return int(c.decimals)
}

func (c *Converter) Symbol() string {
	return c.symbol
}

func (c *Converter) parse(ctx context.Context, s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if !amountRegex.MatchString(s) {
		return decimal.Zero, i18n.NewError(ctx, msgs.MsgUnitsInvalidAmount, s)
	}
	if dot := strings.IndexByte(s, '.'); dot >= 0 && len(s)-dot-1 > int(c.decimals) {
		// would need rounding to fit in base units
		fraction := strings.TrimRight(s[dot+1:], "0")
		if len(fraction) > int(c.decimals) {
			return decimal.Zero, i18n.NewError(ctx, msgs.MsgUnitsTooManyDecimals, s, c.decimals)
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, i18n.WrapError(ctx, err, msgs.MsgUnitsInvalidAmount, s)
	}
	return d, nil
}

// ToBaseUnits validates a non-negative decimal numeral and shifts it into base units
func (c *Converter) ToBaseUnits(ctx context.Context, s string) (*big.Int, error) {
	d, err := c.parse(ctx, s)
	if err != nil {
		return nil, err
	}
	v := d.Shift(c.decimals).BigInt()
	if v.BitLen() > 256 {
		// the contract stores uint256
		return nil, i18n.NewError(ctx, msgs.MsgUnitsInvalidAmount, strings.TrimSpace(s))
	}
	return v, nil
}

// FromBaseUnits is the exact inverse of ToBaseUnits, with trailing fractional zeros removed
func (c *Converter) FromBaseUnits(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return decimal.NewFromBigInt(v, -c.decimals).String()
}

// Format renders base units with the currency symbol, for log and summary text
func (c *Converter) Format(v *big.Int) string {
	return c.FromBaseUnits(v) + " " + c.symbol
}

// Normalize returns the canonical spelling of a valid decimal numeral, which is what
// FromBaseUnits(ToBaseUnits(s)) produces
func (c *Converter) Normalize(ctx context.Context, s string) (string, error) {
	d, err := c.parse(ctx, s)
	if err != nil {
		return "", err
	}
	return d.String(), nil
}

// ParseID validates a record identifier, or a duration, typed as a non-negative integer
func ParseID(ctx context.Context, s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if !idRegex.MatchString(s) {
		return 0, i18n.NewError(ctx, msgs.MsgUnitsInvalidID, s)
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, i18n.WrapError(ctx, err, msgs.MsgUnitsInvalidID, s)
	}
	return id, nil
}

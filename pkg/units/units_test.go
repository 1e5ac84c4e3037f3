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
	"strings"
	"testing"

	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/confutil"
	"github.com/Gokul-047/Insurance-Smart-Contract-Dapp/pkg/insconf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ether = &Converter{decimals: 18, symbol: "ETH"}

func TestToBaseUnitsEther(t *testing.T) {
	ctx := context.Background()
	for in, expected := range map[string]string{
		"1.5":                            "1500000000000000000",
		"10":                             "10000000000000000000",
		"0":                              "0",
		"0.000000000000000001":           "1",
		" 2.0 ":                          "2000000000000000000",
		"007.250":                        "7250000000000000000",
		"1.500000000000000000000":        "1500000000000000000",
		"123456789012345678901234567890": "123456789012345678901234567890000000000000000000",
	} {
		v, err := ether.ToBaseUnits(ctx, in)
		require.NoError(t, err, in)
		assert.Equal(t, expected, v.String(), in)
	}
}

func TestToBaseUnitsInvalid(t *testing.T) {
	ctx := context.Background()
	for _, in := range []string{"", "   ", "abc", "-1", "+1", "1e18", "1.", ".5", "1.2.3", "0x10", "1,5", "NaN", "Infinity"} {
		_, err := ether.ToBaseUnits(ctx, in)
		assert.Regexp(t, "IN010200", err, in)
	}
}

func TestToBaseUnitsUint256Range(t *testing.T) {
	ctx := context.Background()
	v, err := ether.ToBaseUnits(ctx, "115792089237316195423570985008687907853269984665640564039457.584007913129639935")
	require.NoError(t, err)
	assert.Equal(t, 256, v.BitLen())

	for _, in := range []string{
		"115792089237316195423570985008687907853269984665640564039457.584007913129639936",
		"1" + strings.Repeat("0", 70),
	} {
		_, err = ether.ToBaseUnits(ctx, in)
		assert.Regexp(t, "IN010200", err, in)
	}
}

func TestToBaseUnitsTooPrecise(t *testing.T) {
	_, err := ether.ToBaseUnits(context.Background(), "0.0000000000000000001")
	assert.Regexp(t, "IN010201", err)
}

func TestRoundTrip(t *testing.T) {
	ctx := context.Background()
	for in, normalized := range map[string]string{
		"1.5":    "1.5",
		"10":     "10",
		"10.000": "10",
		"0.10":   "0.1",
		"000":    "0",
		"00.01":  "0.01",
		"2.0":    "2",
		"99999999999999999999.999999999999999999": "99999999999999999999.999999999999999999",
	} {
		v, err := ether.ToBaseUnits(ctx, in)
		require.NoError(t, err, in)
		assert.Equal(t, normalized, ether.FromBaseUnits(v), in)
		n, err := ether.Normalize(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, normalized, n)
	}
}

func TestFromBaseUnits(t *testing.T) {
	assert.Equal(t, "0", ether.FromBaseUnits(nil))
	assert.Equal(t, "0", ether.FromBaseUnits(big.NewInt(0)))
	assert.Equal(t, "0.000000000000000001", ether.FromBaseUnits(big.NewInt(1)))
	assert.Equal(t, "1.5 ETH", ether.Format(big.NewInt(1500000000000000000)))
}

func TestConverterCustomDecimals(t *testing.T) {
	ctx := context.Background()
	c, err := NewConverter(ctx, &insconf.UnitsConfig{
		Decimals: confutil.P(6),
		Symbol:   confutil.P("USDC"),
	})
	require.NoError(t, err)
	assert.Equal(t, 6, c.Decimals())
	assert.Equal(t, "USDC", c.Symbol())

	v, err := c.ToBaseUnits(ctx, "12.345678")
	require.NoError(t, err)
	assert.Equal(t, "12345678", v.String())
	assert.Equal(t, "12.345678 USDC", c.Format(v))

	_, err = c.ToBaseUnits(ctx, "1.0000001")
	assert.Regexp(t, "IN010201", err)
}

func TestConverterZeroDecimals(t *testing.T) {
	ctx := context.Background()
	c, err := NewConverter(ctx, &insconf.UnitsConfig{Decimals: confutil.P(0)})
	require.NoError(t, err)
	v, err := c.ToBaseUnits(ctx, "42.0")
	require.NoError(t, err)
	assert.Equal(t, "42", v.String())
	_, err = c.ToBaseUnits(ctx, "42.5")
	assert.Regexp(t, "IN010201", err)
}

func TestConverterDefaults(t *testing.T) {
	c, err := NewConverter(context.Background(), &insconf.UnitsConfig{})
	require.NoError(t, err)
	assert.Equal(t, 18, c.Decimals())
	assert.Equal(t, "ETH", c.Symbol())
}

func TestConverterBadDecimals(t *testing.T) {
	_, err := NewConverter(context.Background(), &insconf.UnitsConfig{Decimals: confutil.P(-1)})
	assert.Regexp(t, "IN010206", err)
	_, err = NewConverter(context.Background(), &insconf.UnitsConfig{Decimals: confutil.P(78)})
	assert.Regexp(t, "IN010206", err)
}

func TestParseID(t *testing.T) {
	ctx := context.Background()
	id, err := ParseID(ctx, " 5 ")
	require.NoError(t, err)
	assert.Equal(t, uint64(5), id)

	for _, in := range []string{"", "-1", "1.0", "abc", "99999999999999999999999"} {
		_, err := ParseID(ctx, in)
		assert.Regexp(t, "IN010202", err, in)
	}
}

package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevalue(t *testing.T) {
	h := PortfolioHolding{
		Quantity:    decimal.NewFromInt(5),
		AverageCost: decimal.NewFromInt(140),
	}
	h.Revalue(decimal.NewFromInt(150))

	assert.True(t, h.CurrentValue.Equal(decimal.NewFromInt(750)))
	assert.True(t, h.TotalReturn.Equal(decimal.NewFromInt(50)))
	assert.True(t, h.TotalReturnPercent.Equal(decimal.RequireFromString("7.1429")))
}

func TestRevalueZeroCost(t *testing.T) {
	h := PortfolioHolding{
		Quantity:    decimal.NewFromInt(4),
		AverageCost: decimal.Zero,
	}
	h.Revalue(decimal.NewFromInt(10))

	// 成本为0时收益率必须是0，不管市值多少
	assert.True(t, h.CurrentValue.Equal(decimal.NewFromInt(40)))
	assert.True(t, h.TotalReturnPercent.IsZero())
}

func TestDecimalMarshalsAsNumber(t *testing.T) {
	h := PortfolioHolding{
		Quantity:    decimal.RequireFromString("5.5"),
		AverageCost: decimal.RequireFromString("140.25"),
	}

	data, err := json.Marshal(h)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	// 数值字段是JSON数字而不是字符串
	quantity, ok := decoded["quantity"].(float64)
	require.True(t, ok)
	assert.Equal(t, 5.5, quantity)
}

func TestNullableUnmarshal(t *testing.T) {
	type payload struct {
		Notes Nullable[string] `json:"notes"`
	}

	// 字段缺省
	var absent payload
	require.NoError(t, json.Unmarshal([]byte(`{}`), &absent))
	assert.False(t, absent.Notes.Set)

	// 显式null
	var null payload
	require.NoError(t, json.Unmarshal([]byte(`{"notes": null}`), &null))
	assert.True(t, null.Notes.Set)
	assert.False(t, null.Notes.Valid)

	// 有值
	var present payload
	require.NoError(t, json.Unmarshal([]byte(`{"notes": "hi"}`), &present))
	assert.True(t, present.Notes.Set)
	assert.True(t, present.Notes.Valid)
	assert.Equal(t, "hi", present.Notes.Value)
}

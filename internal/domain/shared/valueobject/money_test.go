package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoneyFromFloat(100.50)
	b := NewMoneyFromFloat(49.50)

	assert.Equal(t, "150.00", a.Add(b).String())
	assert.Equal(t, "51.00", a.Subtract(b).String())
	assert.Equal(t, "-100.50", a.Negate().String())
	assert.Equal(t, "100.50", a.Negate().Abs().String())
}

func TestMoneyDivide(t *testing.T) {
	m := NewMoneyFromInt(100)

	result, err := m.DivideByInt(3)
	require.NoError(t, err)
	assert.Equal(t, "33.33", result.Round(2).String())

	_, err = m.Divide(decimal.Zero)
	assert.Error(t, err)
}

func TestMoneyComparisons(t *testing.T) {
	small := NewMoneyFromInt(10)
	big := NewMoneyFromInt(20)

	assert.True(t, small.LessThan(big))
	assert.True(t, big.GreaterThan(small))
	assert.True(t, big.GreaterThanOrEqual(big))
	assert.True(t, small.Equals(NewMoneyFromFloat(10.00)))
	assert.True(t, Zero().IsZero())
	assert.True(t, big.IsPositive())
	assert.True(t, small.Negate().IsNegative())
}

func TestMoneyFromString(t *testing.T) {
	m, err := NewMoneyFromString("1234.56")
	require.NoError(t, err)
	assert.Equal(t, "1234.56", m.String())

	_, err = NewMoneyFromString("not-a-number")
	assert.Error(t, err)
}

func TestMoneyJSON(t *testing.T) {
	m := NewMoneyFromFloat(99.9)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `"99.90"`, string(data))

	var decoded Money
	require.NoError(t, json.Unmarshal([]byte(`"42.50"`), &decoded))
	assert.Equal(t, "42.50", decoded.String())

	// bare numbers are accepted too
	require.NoError(t, json.Unmarshal([]byte(`7.25`), &decoded))
	assert.Equal(t, "7.25", decoded.String())
}

func TestMoneyScan(t *testing.T) {
	var m Money

	require.NoError(t, m.Scan("12.34"))
	assert.Equal(t, "12.34", m.String())

	require.NoError(t, m.Scan([]byte("56.78")))
	assert.Equal(t, "56.78", m.String())

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())

	assert.Error(t, m.Scan(struct{}{}))
}

func TestMoneyPercentOf(t *testing.T) {
	tests := []struct {
		name     string
		part     Money
		total    Money
		expected string
	}{
		{
			name:     "simple share",
			part:     NewMoneyFromInt(25),
			total:    NewMoneyFromInt(100),
			expected: "25",
		},
		{
			name:     "rounded to one decimal",
			part:     NewMoneyFromInt(1),
			total:    NewMoneyFromInt(3),
			expected: "33.3",
		},
		{
			name:     "zero total guards division",
			part:     NewMoneyFromInt(50),
			total:    Zero(),
			expected: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.part.PercentOf(tt.total).String())
		})
	}
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseValue(t *testing.T) {
	assert.Equal(t, 42, ParseValue("42"))
	assert.Equal(t, 3.14, ParseValue(" 3.14 "))
	assert.Equal(t, "B0001", ParseValue("B0001"))
	assert.Nil(t, ParseValue(""))
	assert.Nil(t, ParseValue("   "))
}

func TestNumeric(t *testing.T) {
	v, ok := Numeric(3)
	assert.True(t, ok)
	assert.Equal(t, 3.0, v)

	v, ok = Numeric(2.5)
	assert.True(t, ok)
	assert.Equal(t, 2.5, v)

	v, ok = Numeric("7.5")
	assert.True(t, ok)
	assert.Equal(t, 7.5, v)

	_, ok = Numeric(nil)
	assert.False(t, ok)

	_, ok = Numeric("n/a")
	assert.False(t, ok)
}

func TestFormatCell(t *testing.T) {
	assert.Equal(t, "", FormatCell(nil))
	assert.Equal(t, "text", FormatCell("text"))
	assert.Equal(t, "42", FormatCell(42))
	assert.Equal(t, "12.5", FormatCell(12.5))
	assert.Equal(t, "3", FormatCell(3.0))
	// No exponent notation for large values.
	assert.Equal(t, "1234567.89", FormatCell(1234567.89))
}

func TestCleanHeader(t *testing.T) {
	assert.Equal(t, "Spend", CleanHeader(` "Spend" `))
	assert.Equal(t, "Total Orders", CleanHeader("Total Orders"))
}

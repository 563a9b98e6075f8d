package output_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rpgo/nestegg/internal/output"
)

func TestFormatters(t *testing.T) {
	assert.Equal(t, "$123.45", output.FormatCurrency(decimal.NewFromFloat(123.45)))
	assert.Equal(t, "$1,707,613.44", output.FormatCurrency(decimal.RequireFromString("1707613.44")))
	assert.Equal(t, "$68,305", output.FormatWholeCurrency(decimal.RequireFromString("68304.54")))
	assert.Equal(t, "$1.7M", output.FormatCompactCurrency(decimal.RequireFromString("1707613.44")))
	assert.Equal(t, "12.34%", output.FormatPercentage(decimal.NewFromFloat(12.34)))
	assert.Equal(t, "7.0%", output.FormatRate(decimal.NewFromFloat(0.07)))
	assert.Equal(t, "3.5%", output.FormatRate(decimal.NewFromFloat(0.035)))
}

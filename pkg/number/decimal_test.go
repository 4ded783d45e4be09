package number

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestCeil(t *testing.T) {
	data := map[string]string{
		"0.10304":     "0.11",
		"0.100000001": "0.11",
		"0.108":       "0.11",
		"0.1":         "0.1",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			c := Ceil(Decimal(k), 2)
			assert.Equal(t, v, c.String(), "should be ceil")
		})
	}
}

func TestPercent(t *testing.T) {
	data := map[string]string{
		"0.415":   "41.50%",
		"0.33615": "33.62%",
		"0":       "0.00%",
		"1":       "100.00%",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, v, Percent(Decimal(k), 2))
		})
	}
}

func TestDecimalInvalid(t *testing.T) {
	assert.Equal(t, true, Decimal("abc").IsZero())
}

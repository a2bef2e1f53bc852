package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampedConsumptionNeverNegative(t *testing.T) {
	assert.True(t, ClampedConsumption(d("120"), d("100")).Equal(d("20")))
	assert.True(t, ClampedConsumption(d("100"), d("100")).Equal(d("0")))
	assert.True(t, ClampedConsumption(d("90"), d("100")).IsZero())
}

func TestWaterCharge(t *testing.T) {
	assert.True(t, WaterCharge(d("20"), d("15.50")).Equal(d("310.00")))
	assert.True(t, WaterCharge(d("3.3"), d("15.50")).Equal(d("51.15")))
}

// A lowered meter reading bills zero instead of a refund.
func TestClampFlowsThroughToCharge(t *testing.T) {
	c := ClampedConsumption(d("95"), d("100"))
	assert.True(t, WaterCharge(c, d("15.50")).IsZero())
}

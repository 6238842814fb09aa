package sizing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

func TestRingSizes_FRMatchesRoundedCircumference(t *testing.T) {
	for _, d := range []float64{0.5, 14.1, 16.5, 17.3, 18.9, 21.2, 23.0} {
		got := RingSizes(ptr(d), nil)
		require.NotNil(t, got.FR, "d=%v", d)
		assert.Equal(t, int(math.Round(d*math.Pi)), *got.FR, "d=%v", d)
		assert.InDelta(t, d*math.Pi, *got.CircumferenceMM, 1e-9)
	}
}

func TestRingSizes_US(t *testing.T) {
	got := RingSizes(ptr(17.3), nil)
	require.NotNil(t, got.US)
	assert.Equal(t, 7.1, *got.US)
}

func TestRingSizes_CircumferenceOverride(t *testing.T) {
	got := RingSizes(ptr(17.0), ptr(55.2))

	require.NotNil(t, got.CircumferenceMM)
	assert.Equal(t, 55.2, *got.CircumferenceMM)
	assert.Equal(t, 55, *got.FR)
	require.NotNil(t, got.US, "US size still follows the diameter")
}

func TestRingSizes_CircumferenceOnly(t *testing.T) {
	got := RingSizes(nil, ptr(52.6))

	assert.Equal(t, 53, *got.FR)
	assert.Nil(t, got.US)
}

func TestRingSizes_AbsentInput(t *testing.T) {
	assert.Equal(t, Ring{}, RingSizes(nil, nil))
	assert.Equal(t, Ring{}, RingSizesFromInput("abc", ""))
	assert.Equal(t, Ring{}, RingSizesFromInput("-3", "0"))
}

func TestRingSizesFromInput_CommaDecimal(t *testing.T) {
	got := RingSizesFromInput(" 17,3 ", "")
	require.NotNil(t, got.US)
	assert.Equal(t, 7.1, *got.US)
}

func TestBraceletLength(t *testing.T) {
	for _, w := range []float64{14, 15.55, 16.04, 17.25, 19.9} {
		got := BraceletLength(ptr(w))
		require.NotNil(t, got.RecommendedCM)
		assert.Equal(t, Round1(w+1.5), *got.RecommendedCM)
		assert.InDelta(t, Round1(w+1.5)*10, *got.RecommendedMM, 1e-9)
	}
}

func TestBraceletLength_Absent(t *testing.T) {
	assert.Equal(t, Bracelet{}, BraceletLength(nil))
	assert.Equal(t, Bracelet{}, BraceletLengthFromInput("wrist"))
}

func TestSizeRequests(t *testing.T) {
	d := ptr(17)
	ring := RingSizeRequest(d, RingSizes(d, nil))
	assert.Equal(t, 17.0, *ring.DiameterMM)
	assert.InDelta(t, 17*math.Pi, *ring.CircumferenceMM, 1e-9)
	assert.Equal(t, "MM", *ring.Standard)
	assert.Equal(t, RingLabel, *ring.Label)

	bracelet := BraceletSizeRequest(BraceletLength(ptr(16)))
	assert.Nil(t, bracelet.DiameterMM)
	assert.Equal(t, 175.0, *bracelet.CircumferenceMM)
	assert.Equal(t, BraceletLabel, *bracelet.Label)
}

package drinks

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandardglas(t *testing.T) {
	// 33cl of 5% beer
	assert.InDelta(t, 1.085, Standardglas(330, 0.05), 0.001)
	assert.Equal(t, 0.0, Standardglas(0, 0.4))
	assert.Equal(t, 0.0, Standardglas(500, 0))
}

func TestFromCentilitres(t *testing.T) {
	assert.Equal(t, 1.1, FromCentilitres(33, 5))
	// 4cl of 40% liquor
	assert.Equal(t, 1.1, FromCentilitres(4, 40))
	// 75cl of 12% wine
	assert.Equal(t, 5.9, FromCentilitres(75, 12))
}

func TestRound1(t *testing.T) {
	assert.Equal(t, 0.3, Round1(0.25))
	assert.Equal(t, 1.2, Round1(1.24))
	assert.Equal(t, -0.2, Round1(-0.25))
}

func TestRound1JustBelowHalf(t *testing.T) {
	// The float closest below 1.05 still rounds up
	assert.Equal(t, 1.1, Round1(math.Nextafter(1.05, 0)))
	assert.Equal(t, 0.3, Round1(math.Nextafter(0.25, 0)))
	assert.Equal(t, 2.5, Round1(math.Nextafter(2.45, 0)))
}

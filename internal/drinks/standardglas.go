// Package drinks contains calculations around served drinks
package drinks

import "math"

const (
	// Density of ethanol in g/cm³ at 20°C
	alcoholDensity = 0.7893
	// One standard glass contains 12g of alcohol
	gramsPerStandardglas = 12
)

// Difference between 1 and the next float64, added before rounding so values a hair below a .x5 boundary round up
var epsilon = math.Nextafter(1, 2) - 1

// Standardglas returns the number of standard glasses in volumeMl millilitres of a drink with the given alcohol
// content (as a fraction, 0.05 for 5%)
func Standardglas(volumeMl, alcFraction float64) float64 {
	return volumeMl * alcFraction * alcoholDensity / gramsPerStandardglas
}

// FromCentilitres calculates the standard glasses for a volume in centilitres and an alcohol content in percent,
// rounded to one decimal as it is shown on an article
func FromCentilitres(volumeCl, percent float64) float64 {
	return Round1(Standardglas(volumeCl*10, percent/100))
}

// Round1 rounds to one decimal with halves rounded up (towards positive infinity), as the article form does
func Round1(v float64) float64 {
	return math.Floor((v+epsilon)*10+0.5) / 10
}

package utils

import "math"

// Round rounds a currency amount to two decimal places.
func Round(value float64) float64 {
    return math.Round(value*100) / 100
}

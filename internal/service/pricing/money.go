package pricing

import "math"

// Round2 округляет сумму до центов
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromCents(cents int64) float64 {
	return float64(cents) / 100
}

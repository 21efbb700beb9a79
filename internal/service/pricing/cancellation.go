package pricing

import "time"

// CancellationQuote сумма штрафа и возврата при отмене
type CancellationQuote struct {
	DaysUntilStart float64
	FeePercent     int64
	Fee            float64
	Refund         float64
}

// CancellationFeePercent процент штрафа в зависимости от количества суток до начала аренды
func CancellationFeePercent(daysUntilStart float64) int64 {
	switch {
	case daysUntilStart < 1:
		return 100
	case daysUntilStart < 3:
		return 50
	case daysUntilStart < 7:
		return 25
	default:
		return 0
	}
}

// QuoteCancellation делит итоговую цену на штраф и возврат; fee + refund == total с точностью до цента
func QuoteCancellation(total float64, start, now time.Time) CancellationQuote {
	daysUntilStart := start.Sub(now).Hours() / 24
	percent := CancellationFeePercent(daysUntilStart)

	totalCents := toCents(total)
	feeCents := totalCents * percent / 100

	return CancellationQuote{
		DaysUntilStart: daysUntilStart,
		FeePercent:     percent,
		Fee:            fromCents(feeCents),
		Refund:         fromCents(totalCents - feeCents),
	}
}

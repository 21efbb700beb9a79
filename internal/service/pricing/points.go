package pricing

import (
	"math"
	"time"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
)

// PaymentPoints баллы за оплату: floor(totalPrice / 10)
func PaymentPoints(totalPrice float64) int {
	if totalPrice <= 0 {
		return 0
	}
	return int(math.Floor(totalPrice / domain.DefaultPaymentPointsDivisor))
}

// FinalizePoints баллы за финализацию: round(totalPrice) плюс бонус за раннее бронирование
func (c *Calculator) FinalizePoints(totalPrice float64, createdAt, pickup time.Time) int {
	points := int(math.Round(totalPrice))
	if points < 0 {
		points = 0
	}
	if c.IsEarlyBooking(createdAt, pickup) {
		points += c.rules.EarlyBookingBonus
	}
	return points
}

// IsEarlyBooking бронирование сделано не менее чем за EarlyBookingDays суток до получения
func (c *Calculator) IsEarlyBooking(createdAt, pickup time.Time) bool {
	return pickup.Sub(createdAt) >= time.Duration(c.rules.EarlyBookingDays)*24*time.Hour
}

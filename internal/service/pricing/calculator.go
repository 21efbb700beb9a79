package pricing

import (
	"fmt"
	"math"
	"time"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
)

// Rules настраиваемые ставки и бонусы
type Rules struct {
	AdditionalDriverRate float64
	CrossLocationFee     float64
	EarlyBookingBonus    int
	EarlyBookingDays     int
}

// DefaultRules ставки по умолчанию
func DefaultRules() Rules {
	return Rules{
		AdditionalDriverRate: domain.DefaultAdditionalDriverRate,
		CrossLocationFee:     domain.DefaultCrossLocationFee,
		EarlyBookingBonus:    domain.DefaultEarlyBookingBonus,
		EarlyBookingDays:     domain.DefaultEarlyBookingDays,
	}
}

// Options выбранные опции бронирования
type Options struct {
	Insurance         domain.InsuranceOption
	AdditionalDrivers int
	ServiceIDs        []string
	PickupLocation    string
	ReturnLocation    string
}

// Breakdown разбивка стоимости
type Breakdown struct {
	DurationDays    int
	BasePrice       float64
	InsuranceCost   float64
	DriversCost     float64
	ServicesCost    float64
	LocationFee     float64
	AdditionalCosts float64
	TotalPrice      float64
	Services        []domain.AdditionalService
}

// Calculator калькулятор стоимости аренды
type Calculator struct {
	rules Rules
}

// NewCalculator создает калькулятор с заданными ставками
func NewCalculator(rules Rules) *Calculator {
	return &Calculator{rules: rules}
}

// Rules возвращает ставки калькулятора
func (c *Calculator) Rules() Rules {
	return c.rules
}

// DurationDays количество оплачиваемых суток: потолок разницы в сутках, минимум 1
func DurationDays(start, end time.Time) int {
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// InsuranceDailyRate суточная ставка страховки
func InsuranceDailyRate(option domain.InsuranceOption) (float64, error) {
	switch option {
	case "", domain.InsuranceNone:
		return 0, nil
	case domain.InsuranceBasic:
		return domain.InsuranceBasicRate, nil
	case domain.InsurancePremium:
		return domain.InsurancePremiumRate, nil
	case domain.InsuranceFull:
		return domain.InsuranceFullRate, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidInsurance, option)
	}
}

// ServicesCost стоимость услуг по суточным ставкам каталога за days суток
func ServicesCost(serviceIDs []string, days int) ([]domain.AdditionalService, float64, error) {
	services := make([]domain.AdditionalService, 0, len(serviceIDs))
	var total float64

	for _, id := range serviceIDs {
		rate, ok := domain.ServiceDailyRates[id]
		if !ok {
			return nil, 0, fmt.Errorf("%w: %q", ErrUnknownService, id)
		}
		price := Round2(rate * float64(days))
		services = append(services, domain.AdditionalService{ID: id, Price: price})
		total += price
	}

	return services, Round2(total), nil
}

// Quote рассчитывает стоимость нового бронирования
func (c *Calculator) Quote(pricePerDay float64, start, end time.Time, opts Options) (*Breakdown, error) {
	if !end.After(start) {
		return nil, ErrInvalidPeriod
	}

	breakdown, err := c.quoteDays(pricePerDay, DurationDays(start, end), opts)
	if err != nil {
		return nil, err
	}

	if opts.PickupLocation != opts.ReturnLocation {
		breakdown.LocationFee = c.rules.CrossLocationFee
	}

	breakdown.AdditionalCosts = Round2(breakdown.InsuranceCost + breakdown.DriversCost +
		breakdown.ServicesCost + breakdown.LocationFee)
	breakdown.TotalPrice = Round2(breakdown.BasePrice + breakdown.AdditionalCosts)

	return breakdown, nil
}

// QuoteExtension рассчитывает доплату за продление с oldEnd до newEnd
// Доплачиваются только сутки сверх уже оплаченных billedDays за период start..newEnd
// Сбор за возврат в другую локацию повторно не берется
func (c *Calculator) QuoteExtension(pricePerDay float64, start, oldEnd, newEnd time.Time, billedDays int, opts Options) (*Breakdown, error) {
	if !newEnd.After(oldEnd) {
		return nil, ErrInvalidPeriod
	}

	if billedDays <= 0 {
		billedDays = DurationDays(start, oldEnd)
	}
	days := DurationDays(start, newEnd) - billedDays
	if days < 0 {
		days = 0
	}

	breakdown, err := c.quoteDays(pricePerDay, days, opts)
	if err != nil {
		return nil, err
	}

	breakdown.AdditionalCosts = Round2(breakdown.InsuranceCost + breakdown.DriversCost + breakdown.ServicesCost)
	breakdown.TotalPrice = Round2(breakdown.BasePrice + breakdown.AdditionalCosts)

	return breakdown, nil
}

func (c *Calculator) quoteDays(pricePerDay float64, days int, opts Options) (*Breakdown, error) {
	if opts.AdditionalDrivers < 0 {
		return nil, ErrInvalidDrivers
	}

	insuranceRate, err := InsuranceDailyRate(opts.Insurance)
	if err != nil {
		return nil, err
	}

	services, servicesCost, err := ServicesCost(opts.ServiceIDs, days)
	if err != nil {
		return nil, err
	}

	return &Breakdown{
		DurationDays:  days,
		BasePrice:     Round2(pricePerDay * float64(days)),
		InsuranceCost: Round2(insuranceRate * float64(days)),
		DriversCost:   Round2(float64(opts.AdditionalDrivers) * c.rules.AdditionalDriverRate * float64(days)),
		ServicesCost:  servicesCost,
		Services:      services,
	}, nil
}

// SplitPrecomputed делит заранее рассчитанную итоговую цену: 80% база, остальное доп. расходы
func SplitPrecomputed(total float64) (basePrice, additionalCosts float64) {
	totalCents := toCents(total)
	baseCents := int64(math.Round(float64(totalCents) * domain.PrecomputedBaseShare))
	return fromCents(baseCents), fromCents(totalCents - baseCents)
}

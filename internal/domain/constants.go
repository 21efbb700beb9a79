package domain

// Суточные ставки страховки
const (
	InsuranceBasicRate   = 15.0
	InsurancePremiumRate = 30.0
	InsuranceFullRate    = 45.0
)

// Значения бизнес-правил по умолчанию (переопределяются конфигурацией)
const (
	DefaultAdditionalDriverRate = 10.0
	DefaultCrossLocationFee     = 50.0
	DefaultEarlyBookingBonus    = 50
	DefaultEarlyBookingDays     = 7
	DefaultPaymentPointsDivisor = 10.0
)

// Доля базовой стоимости при разбиении заранее рассчитанной итоговой цены
const PrecomputedBaseShare = 0.8

// ServiceDailyRates суточные ставки дополнительных услуг по их id
var ServiceDailyRates = map[string]float64{
	"gps":       5,
	"childSeat": 7,
	"wifi":      8,
}

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BlockingStatuses статусы, при которых автомобиль занят на даты бронирования
var BlockingStatuses = []BookingStatus{
	StatusConfirmed,
	StatusActive,
}

// Validation limits
const (
	MaxAdditionalDrivers        = 5
	MaxCancellationReasonLength = 500
	MaxLocationLength           = 200
)

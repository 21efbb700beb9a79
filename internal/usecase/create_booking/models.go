package create_booking

import (
	"time"

	"github.com/m04kA/SMC-CarRentalService/internal/domain"
)

// Request модель запроса на создание бронирования
type Request struct {
	Principal domain.Principal // Кто создает бронирование, он же владелец

	CarID     string
	StartDate time.Time
	EndDate   time.Time

	InsuranceOption    domain.InsuranceOption // Пусто означает none
	AdditionalDrivers  int
	AdditionalServices []string // ID услуг из каталога (gps, childSeat, wifi)

	PickupLocation string
	ReturnLocation string

	Status     *domain.BookingStatus // pending или confirmed, по умолчанию confirmed
	TotalPrice *float64              // Заранее рассчитанная цена, учитывается только для администратора
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking *domain.Booking
}

// BeforeSaveFunc вызывается внутри транзакции перед сохранением нового бронирования
type BeforeSaveFunc func(booking *domain.Booking, now time.Time)

// ExecuteOption дополнительная настройка одного вызова Execute
type ExecuteOption func(*executeOptions)

type executeOptions struct {
	beforeSave BeforeSaveFunc
}

// WithBeforeSave позволяет изменить бронирование перед записью в той же транзакции
func WithBeforeSave(fn BeforeSaveFunc) ExecuteOption {
	return func(o *executeOptions) {
		o.beforeSave = fn
	}
}

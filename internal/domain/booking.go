package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending" // ожидает оплаты
	StatusConfirmed BookingStatus = "confirmed"
	StatusActive    BookingStatus = "active"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
	StatusFinalized BookingStatus = "finalized"
	// StatusDraft зарезервирован: create его не выставляет, такие бронирования можно только удалить
	StatusDraft BookingStatus = "Draft"
)

// InsuranceOption уровень страховки
type InsuranceOption string

const (
	InsuranceNone    InsuranceOption = "none"
	InsuranceBasic   InsuranceOption = "basic"
	InsurancePremium InsuranceOption = "premium"
	InsuranceFull    InsuranceOption = "full"
)

// IsValid проверяет, что уровень страховки известен
func (o InsuranceOption) IsValid() bool {
	switch o {
	case InsuranceNone, InsuranceBasic, InsurancePremium, InsuranceFull:
		return true
	}
	return false
}

// AdditionalService выбранная дополнительная услуга и её итоговая цена за весь срок
type AdditionalService struct {
	ID    string  `json:"id"`
	Price float64 `json:"price"`
}

// ExtensionRecord запись в истории продлений
type ExtensionRecord struct {
	PreviousEndDate time.Time `json:"previousEndDate"`
	NewEndDate      time.Time `json:"newEndDate"`
	AdditionalDays  int       `json:"additionalDays"`
	AdditionalCost  float64   `json:"additionalCost"`
	Date            time.Time `json:"date"`
	InvoiceID       string    `json:"invoiceId"`
}

// Booking represents a car rental contract
type Booking struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	CarID  string `json:"carId"`

	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	DurationDays int       `json:"durationDays"`

	BasePrice       float64 `json:"basePrice"`
	AdditionalCosts float64 `json:"additionalCosts"`
	TotalPrice      float64 `json:"totalPrice"`

	InsuranceOption    InsuranceOption     `json:"insuranceOption"`
	AdditionalDrivers  int                 `json:"additionalDrivers"`
	AdditionalServices []AdditionalService `json:"additionalServices"`

	PickupLocation string `json:"pickupLocation"`
	ReturnLocation string `json:"returnLocation"`

	Status           BookingStatus     `json:"status"`
	ExtensionHistory []ExtensionRecord `json:"extensionHistory"`

	// Denormalized car data for history
	CarMake  string `json:"carMake,omitempty"`
	CarModel string `json:"carModel,omitempty"`

	PaymentMethod *string    `json:"paymentMethod,omitempty"`
	PaymentDate   *time.Time `json:"paymentDate,omitempty"`

	CancellationFee    *float64   `json:"cancellationFee,omitempty"`
	RefundAmount       *float64   `json:"refundAmount,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`

	FinalizedAt *time.Time `json:"finalizedAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Version версия документа в хранилище, используется для compare-and-set
	Version int64 `json:"-"`
}

// BlocksCar returns true if the booking occupies the car for its dates
func (b *Booking) BlocksCar() bool {
	return b.Status == StatusConfirmed || b.Status == StatusActive
}

// CanBeExtended returns true if the end date can be pushed forward
func (b *Booking) CanBeExtended() bool {
	return b.Status == StatusConfirmed || b.Status == StatusActive
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status != StatusCancelled &&
		b.Status != StatusCompleted &&
		b.Status != StatusDraft
}

// CanBePaid returns true if the booking is still waiting for payment
func (b *Booking) CanBePaid() bool {
	return b.Status == StatusPending
}

// CanBeDeleted returns true if the booking may be removed from the store
func (b *Booking) CanBeDeleted() bool {
	return b.Status == StatusDraft
}

// IsAccessibleBy returns true if the principal owns the booking or is an admin
func (b *Booking) IsAccessibleBy(p Principal) bool {
	return p.IsAdmin || b.UserID == p.ID
}

// BookingFilter фильтр выборки бронирований
type BookingFilter struct {
	UserID   *string
	CarID    *string
	Statuses []BookingStatus
}

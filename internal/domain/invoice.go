package domain

import "time"

// InvoiceKind тип счета
type InvoiceKind string

const (
	InvoiceKindBooking   InvoiceKind = "booking"
	InvoiceKindExtension InvoiceKind = "extension"
)

// PaymentStatus статус оплаты счета
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// InvoiceItem строка счета
type InvoiceItem struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

// Invoice счет по бронированию. После создания меняются только поля оплаты
type Invoice struct {
	ID            string        `json:"id"`
	BookingID     string        `json:"bookingId"`
	UserID        string        `json:"userId"`
	Kind          InvoiceKind   `json:"kind"`
	Amount        float64       `json:"amount"`
	Items         []InvoiceItem `json:"items"`
	PaymentStatus PaymentStatus `json:"paymentStatus"`
	PaymentMethod *string       `json:"paymentMethod,omitempty"`
	PaidAt        *time.Time    `json:"paidAt,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// ItemsTotal сумма строк счета
func (i *Invoice) ItemsTotal() float64 {
	var total float64
	for _, item := range i.Items {
		total += item.Amount
	}
	return total
}

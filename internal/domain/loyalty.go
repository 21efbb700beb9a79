package domain

import "time"

// PointsEntryType тип записи в истории баллов
type PointsEntryType string

const (
	PointsEarn   PointsEntryType = "earn"
	PointsRedeem PointsEntryType = "redeem"
)

// PointsEntry запись журнала начислений и списаний
type PointsEntry struct {
	Type        PointsEntryType `json:"type"`
	Amount      int             `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
}

// LoyaltyAccount баланс баллов пользователя и журнал операций
type LoyaltyAccount struct {
	UserID        string        `json:"userId"`
	Points        int           `json:"points"`
	PointsHistory []PointsEntry `json:"pointsHistory"`

	Version int64 `json:"-"`
}

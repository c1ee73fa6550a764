package checkout

import (
	"time"

	"github.com/google/uuid"
)

// SessionTTL bounds how long an opened gateway checkout stays
// confirmable.
const SessionTTL = time.Hour

// PaymentSession snapshots what a gateway checkout was opened for.
// Confirming a payment reconciles the live cart against it, so the
// persisted order can never drift from the amount actually charged.
type PaymentSession struct {
	UserID      uuid.UUID `json:"user_id"`
	AmountPaise int64     `json:"amount_paise"`
	Receipt     string    `json:"receipt"`
	PromoCode   string    `json:"promo_code"`
	CreatedAt   time.Time `json:"created_at"`
}

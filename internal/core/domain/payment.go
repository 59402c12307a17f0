package domain

import "time"

// PaymentStatus is the settlement state reported by the upstream platform.
type PaymentStatus string

const (
	PaymentSuccess PaymentStatus = "success"
	PaymentFailed  PaymentStatus = "failed"
	PaymentPending PaymentStatus = "pending"
)

// PaymentStatuses lists the fixed filterable value set, in display order.
var PaymentStatuses = []PaymentStatus{PaymentSuccess, PaymentFailed, PaymentPending}

// Payment is a read-only subscription payment record.
type Payment struct {
	ID            int64
	UserName      string
	Subscription  string
	Amount        float64
	Method        string
	TransactionID string
	PaidAt        *time.Time
	Status        PaymentStatus
}

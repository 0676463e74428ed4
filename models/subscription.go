package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	PlanFree      = "free"
	PlanMonthly   = "monthly"
	PlanQuarterly = "quarterly"

	SubscriptionActive          = "active"
	SubscriptionPendingPayment  = "pending_payment"
	SubscriptionPendingApproval = "pending_approval"
	SubscriptionExpired         = "expired"
	SubscriptionCanceled        = "canceled"
)

// Subscription is the access plan of one patient. A patient has at most one
// current (non-terminal) subscription at a time.
type Subscription struct {
	gorm.Model
	PatientID uint       `gorm:"index;not null"`
	PlanType  string     `gorm:"type:varchar(20);not null"`
	Status    string     `gorm:"type:varchar(30);not null;index"`
	ExpiresAt *time.Time
}

// Terminal reports whether the subscription can never become active again.
func (s *Subscription) Terminal() bool {
	return s.Status == SubscriptionExpired || s.Status == SubscriptionCanceled
}

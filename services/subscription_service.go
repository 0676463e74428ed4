package services

import (
	"fmt"
	"log"
	"time"

	"backend/config"
	"backend/models"
	"backend/utils"
)

var planDurations = map[string]time.Duration{
	models.PlanMonthly:   30 * 24 * time.Hour,
	models.PlanQuarterly: 90 * 24 * time.Hour,
}

func validPlan(planType string) bool {
	switch planType {
	case models.PlanFree, models.PlanMonthly, models.PlanQuarterly:
		return true
	}
	return false
}

// CurrentSubscription returns the patient's one non-terminal subscription,
// flipping it to expired on read when its expiry has passed.
func CurrentSubscription(actor *models.User, patientID uint) (*models.Subscription, error) {
	if _, err := PatientForActor(actor, patientID); err != nil {
		return nil, err
	}
	var sub models.Subscription
	err := config.DB.
		Where("patient_id = ? AND status NOT IN ?", patientID,
			[]string{models.SubscriptionExpired, models.SubscriptionCanceled}).
		Order("created_at DESC").
		First(&sub).Error
	if err != nil {
		return nil, fmt.Errorf("%w: subscription", ErrNotFound)
	}

	if sub.ExpiresAt != nil && time.Now().After(*sub.ExpiresAt) && sub.Status == models.SubscriptionActive {
		sub.Status = models.SubscriptionExpired
		if err := config.DB.Save(&sub).Error; err != nil {
			return nil, err
		}
	}
	return &sub, nil
}

// RequestSubscription opens a plan request for a patient. Free plans
// activate immediately; paid plans wait for the nutritionist's approval.
func RequestSubscription(actor *models.User, patientID uint, planType string) (*models.Subscription, error) {
	if !validPlan(planType) {
		return nil, fmt.Errorf("%w: unknown plan type %q", ErrValidation, planType)
	}
	p, err := PatientForActor(actor, patientID)
	if err != nil {
		return nil, err
	}

	// One current subscription per patient.
	var n int64
	config.DB.Model(&models.Subscription{}).
		Where("patient_id = ? AND status NOT IN ?", p.ID,
			[]string{models.SubscriptionExpired, models.SubscriptionCanceled}).
		Count(&n)
	if n > 0 {
		return nil, fmt.Errorf("%w: patient already has a current subscription", ErrConflict)
	}

	sub := models.Subscription{
		PatientID: p.ID,
		PlanType:  planType,
		Status:    models.SubscriptionPendingApproval,
	}
	if planType == models.PlanFree {
		sub.Status = models.SubscriptionActive
	}
	if err := config.DB.Create(&sub).Error; err != nil {
		return nil, err
	}
	return &sub, nil
}

// ApproveSubscription is a nutritionist decision. Paid plans move to
// pending_payment first; ConfirmPayment activates them and stamps expiry.
func ApproveSubscription(actor *models.User, subID uint) (*models.Subscription, error) {
	sub, err := subscriptionForDecision(actor, subID)
	if err != nil {
		return nil, err
	}
	if sub.Status != models.SubscriptionPendingApproval {
		return nil, fmt.Errorf("%w: subscription is not pending approval", ErrConflict)
	}

	if sub.PlanType == models.PlanFree {
		sub.Status = models.SubscriptionActive
	} else {
		sub.Status = models.SubscriptionPendingPayment
	}
	if err := config.DB.Save(sub).Error; err != nil {
		return nil, err
	}
	notifyPatient(sub)
	return sub, nil
}

func ConfirmPayment(actor *models.User, subID uint) (*models.Subscription, error) {
	sub, err := subscriptionForDecision(actor, subID)
	if err != nil {
		return nil, err
	}
	if sub.Status != models.SubscriptionPendingPayment {
		return nil, fmt.Errorf("%w: subscription is not awaiting payment", ErrConflict)
	}

	sub.Status = models.SubscriptionActive
	if d, ok := planDurations[sub.PlanType]; ok {
		exp := time.Now().Add(d)
		sub.ExpiresAt = &exp
	}
	if err := config.DB.Save(sub).Error; err != nil {
		return nil, err
	}
	notifyPatient(sub)
	return sub, nil
}

func RejectSubscription(actor *models.User, subID uint) (*models.Subscription, error) {
	sub, err := subscriptionForDecision(actor, subID)
	if err != nil {
		return nil, err
	}
	if sub.Terminal() || sub.Status == models.SubscriptionActive {
		return nil, fmt.Errorf("%w: subscription cannot be rejected in status %s", ErrConflict, sub.Status)
	}

	sub.Status = models.SubscriptionCanceled
	if err := config.DB.Save(sub).Error; err != nil {
		return nil, err
	}
	notifyPatient(sub)
	return sub, nil
}

func CancelSubscription(actor *models.User, subID uint) (*models.Subscription, error) {
	sub, err := subscriptionForDecision(actor, subID)
	if err != nil {
		return nil, err
	}
	if sub.Terminal() {
		return nil, fmt.Errorf("%w: subscription already %s", ErrConflict, sub.Status)
	}

	sub.Status = models.SubscriptionCanceled
	if err := config.DB.Save(sub).Error; err != nil {
		return nil, err
	}
	notifyPatient(sub)
	return sub, nil
}

func subscriptionForDecision(actor *models.User, subID uint) (*models.Subscription, error) {
	if actor.Role == models.RolePatient {
		return nil, fmt.Errorf("%w: plan decisions are the nutritionist's", ErrForbidden)
	}
	var sub models.Subscription
	if err := config.DB.First(&sub, subID).Error; err != nil {
		return nil, fmt.Errorf("%w: subscription", ErrNotFound)
	}
	if _, err := PatientForActor(actor, sub.PatientID); err != nil {
		return nil, err
	}
	return &sub, nil
}

func notifyPatient(sub *models.Subscription) {
	var p models.Patient
	if err := config.DB.First(&p, sub.PatientID).Error; err != nil || p.Email == "" {
		return
	}
	if err := utils.SendSubscriptionEmail(p.Email, sub.PlanType, sub.Status); err != nil {
		log.Printf("subscription mail to %s failed: %v", p.Email, err)
	}
}

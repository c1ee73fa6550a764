package checkout

import (
	"context"
	"time"

	"github.com/scentline/backend/internal/domain/validation"
)

// DraftTTL is how long an in-progress checkout draft stays usable
const DraftTTL = 24 * time.Hour

// Store is a string key-value store with expiry. Redis backs it in
// production; tests use an in-memory implementation.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Remove(ctx context.Context, key string) error
}

// ErrKeyNotFound is returned by Store.Get for absent keys
var ErrKeyNotFound = errKeyNotFound{}

type errKeyNotFound struct{}

func (errKeyNotFound) Error() string { return "key not found" }

// Draft is the serialized in-progress checkout state
type Draft struct {
	Form          validation.ShippingForm `json:"form"`
	PaymentMethod string                  `json:"payment_method"`
	PromoCode     string                  `json:"promo_code"`
	Step          Step                    `json:"step"`
	SavedAt       time.Time               `json:"saved_at"`
}

// NewDraft captures the wizard's current state as a draft
func NewDraft(w *Wizard) Draft {
	return Draft{
		Form:          w.Form,
		PaymentMethod: w.PaymentMethod,
		PromoCode:     w.PromoCode,
		Step:          w.Step,
		SavedAt:       time.Now(),
	}
}

// IsStale reports whether the draft is past the staleness window
func (d Draft) IsStale(now time.Time) bool {
	return now.Sub(d.SavedAt) > DraftTTL
}

// BelongsTo reports whether the draft's recipient name matches the
// profile name. A draft saved under a different name is not restored.
// Empty draft names always match.
func (d Draft) BelongsTo(profileName string) bool {
	if d.Form.Name == "" || profileName == "" {
		return true
	}
	return d.Form.Name == profileName
}

// MergeInto restores the draft into a wizard without clobbering fields
// the form already has (e.g. prefilled from the user's profile).
func (d Draft) MergeInto(w *Wizard) {
	mergeField(&w.Form.Name, d.Form.Name)
	mergeField(&w.Form.Email, d.Form.Email)
	mergeField(&w.Form.Phone, d.Form.Phone)
	mergeField(&w.Form.Address, d.Form.Address)
	mergeField(&w.Form.City, d.Form.City)
	mergeField(&w.Form.District, d.Form.District)
	mergeField(&w.Form.Pincode, d.Form.Pincode)
	mergeField(&w.PaymentMethod, d.PaymentMethod)
	mergeField(&w.PromoCode, d.PromoCode)
	if d.Step.IsValid() && d.Step > w.Step {
		w.Step = d.Step
	}
}

func mergeField(dst *string, src string) {
	if *dst == "" && src != "" {
		*dst = src
	}
}

package checkout

import (
	"github.com/scentline/backend/internal/domain/shared"
	"github.com/scentline/backend/internal/domain/validation"
)

// Step is a position in the checkout wizard
type Step int

const (
	StepShipping Step = 0
	StepPayment  Step = 1
	StepReview   Step = 2
)

// IsValid checks if the step is a known wizard position
func (s Step) IsValid() bool {
	return s >= StepShipping && s <= StepReview
}

// String returns the step name
func (s Step) String() string {
	switch s {
	case StepShipping:
		return "shipping"
	case StepPayment:
		return "payment"
	case StepReview:
		return "review"
	}
	return "unknown"
}

// Wizard is the linear checkout state machine:
// Shipping(0) -> Payment(1) -> Review(2), no skips.
type Wizard struct {
	Step          Step
	Form          validation.ShippingForm
	PaymentMethod string
	PromoCode     string
}

// NewWizard starts a wizard at the shipping step
func NewWizard() *Wizard {
	return &Wizard{Step: StepShipping}
}

// Next advances the wizard one step. Leaving the shipping step requires
// the full shipping form to validate; on failure the complete error map
// is returned and the step does not change. Leaving the payment step is
// unconditional. Review is the final step.
func (w *Wizard) Next() (validation.Errors, error) {
	switch w.Step {
	case StepShipping:
		if errs := w.Form.Validate(); !errs.Valid() {
			return errs, nil
		}
		w.Step = StepPayment
		return nil, nil
	case StepPayment:
		w.Step = StepReview
		return nil, nil
	default:
		return nil, shared.NewDomainError("INVALID_STATE", "Already at the final checkout step")
	}
}

// Back moves the wizard one step toward shipping. Entered data is
// preserved. Going back from the initial step is an error.
func (w *Wizard) Back() error {
	if w.Step <= StepShipping {
		return shared.NewDomainError("INVALID_STATE", "Already at the first checkout step")
	}
	w.Step--
	return nil
}

// CanPay reports whether the wizard is at the step where payment may start
func (w *Wizard) CanPay() bool {
	return w.Step == StepReview
}

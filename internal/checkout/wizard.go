// Package checkout turns a cart into orders through the shipping, customization and payment steps.
package checkout

import (
	"errors"
	"fmt"
)

type Step string

const (
	StepShipping      Step = "shipping"
	StepCustomization Step = "customization"
	StepPayment       Step = "payment"
)

var (
	ErrWrongStep  = errors.New("checkout is not at that step")
	ErrEmptyCart  = errors.New("cart is empty")
	ErrNoNextStep = errors.New("no step after payment")
	ErrNoPrevStep = errors.New("no step before shipping")
)

// Steps lists the wizard steps. Customization only appears for carts with customizable items.
func Steps(hasCustomizable bool) []Step {
	if hasCustomizable {
		return []Step{StepShipping, StepCustomization, StepPayment}
	}
	return []Step{StepShipping, StepPayment}
}

// Wizard moves one step at a time through Steps.
type Wizard struct {
	steps   []Step
	current int
}

func NewWizard(hasCustomizable bool) *Wizard {
	return &Wizard{steps: Steps(hasCustomizable)}
}

func (w *Wizard) Steps() []Step {
	return append([]Step(nil), w.steps...)
}

func (w *Wizard) Current() Step {
	return w.steps[w.current]
}

// Number is the 1-based position of the current step.
func (w *Wizard) Number() int {
	return w.current + 1
}

func (w *Wizard) Next() error {
	if w.current == len(w.steps)-1 {
		return ErrNoNextStep
	}
	w.current++
	return nil
}

func (w *Wizard) Back() error {
	if w.current == 0 {
		return ErrNoPrevStep
	}
	w.current--
	return nil
}

func (w *Wizard) expect(step Step) error {
	if w.Current() != step {
		return fmt.Errorf("%w: at %s, got %s", ErrWrongStep, w.Current(), step)
	}
	return nil
}

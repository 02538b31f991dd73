package api

import (
	"net/http"

	"github.com/safar/artisan-market/internal/cart"
	"github.com/safar/artisan-market/internal/checkout"
	"github.com/safar/artisan-market/internal/models"
)

type checkoutSummary struct {
	Steps   []checkout.Step `json:"steps"`
	Current checkout.Step   `json:"current"`
	Quote   checkout.Quote  `json:"quote"`
}

type checkoutRequest struct {
	Shipping      models.ShippingAddress `json:"shipping"`
	Customization checkout.Customization `json:"customization"`
	Payment       checkout.Payment       `json:"payment"`
}

func (s *Server) handleCheckoutSummary(w http.ResponseWriter, r *http.Request) {
	customer, err := customerID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var summary checkoutSummary
	err = s.Carts.With(r.Context(), sessionID(r), func(c *cart.Cart) error {
		flow, err := checkout.NewFlow(c, s.Orders, s.Validate, s.logger, customer)
		if err != nil {
			return err
		}
		summary = checkoutSummary{
			Steps:   flow.Wizard().Steps(),
			Current: flow.Wizard().Current(),
			Quote:   flow.Quote(),
		}
		return nil
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

// handleCheckout walks the whole wizard in one request. The customization step only
// runs when the cart holds a customizable product.
func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	customer, err := customerID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	var result *checkout.Result
	err = s.Carts.With(r.Context(), sessionID(r), func(c *cart.Cart) error {
		flow, err := checkout.NewFlow(c, s.Orders, s.Validate, s.logger, customer)
		if err != nil {
			return err
		}
		if err := flow.SubmitShipping(r.Context(), req.Shipping); err != nil {
			return err
		}
		if flow.Wizard().Current() == checkout.StepCustomization {
			if err := flow.SubmitCustomization(r.Context(), req.Customization); err != nil {
				return err
			}
		}
		result, err = flow.SubmitPayment(r.Context(), req.Payment)
		return err
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.logger.Info().
		Str("request_id", requestID(r)).
		Int64("customer_id", customer).
		Int("orders", len(result.Orders)).
		Msg("checkout completed")
	respondJSON(w, http.StatusCreated, result)
}

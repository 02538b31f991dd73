package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/safar/artisan-market/internal/checkout"
	"github.com/safar/artisan-market/internal/database"
	"github.com/safar/artisan-market/internal/orders"
	"github.com/safar/artisan-market/internal/prefs"
	"github.com/safar/artisan-market/internal/shops"
)

var errBadRequest = errors.New("bad request")

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

type placementFailure struct {
	Error              string   `json:"error"`
	CreatedOrderIDs    []int64  `json:"created_order_ids"`
	CompensationErrors []string `json:"compensation_errors,omitempty"`
}

// fail maps err onto a status code and writes it. Unexpected errors are logged and hidden.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var perr *checkout.PlacementError
	if errors.As(err, &perr) {
		body := placementFailure{Error: perr.Error(), CreatedOrderIDs: perr.Created}
		for _, cerr := range perr.CompensationErrors {
			body.CompensationErrors = append(body.CompensationErrors, cerr.Error())
		}
		s.logger.Error().Err(err).Str("request_id", requestID(r)).Msg("checkout placement failed")
		respondJSON(w, http.StatusBadGateway, body)
		return
	}

	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error().Err(err).Str("request_id", requestID(r)).Msg("request failed")
		respondError(w, status, "Internal Server Error")
		return
	}
	respondError(w, status, err.Error())
}

func statusFor(err error) int {
	var verrs validator.ValidationErrors
	switch {
	case database.IsNotFound(err):
		return http.StatusNotFound
	case errors.As(err, &verrs),
		errors.Is(err, errBadRequest),
		errors.Is(err, orders.ErrUnknownStatus),
		errors.Is(err, orders.ErrInvalidCursor),
		errors.Is(err, prefs.ErrInvalidRole),
		errors.Is(err, shops.ErrInvalidShop),
		errors.Is(err, checkout.ErrTooManyFiles),
		errors.Is(err, checkout.ErrFileTooLarge),
		errors.Is(err, checkout.ErrUnsupportedFile),
		errors.Is(err, checkout.ErrNotInCart):
		return http.StatusBadRequest
	case errors.Is(err, database.ErrShopURLTaken),
		errors.Is(err, orders.ErrInvalidTransition),
		errors.Is(err, checkout.ErrWrongStep),
		errors.Is(err, checkout.ErrEmptyCart):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return badRequest("invalid request body")
	}
	return nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, badRequest("invalid %s", name)
	}
	return id, nil
}

func queryInt64(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, badRequest("invalid %s", name)
	}
	return &v, nil
}

func sessionID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(headerSessionID)); id != "" {
		return id
	}
	return "default"
}

func customerID(r *http.Request) (int64, error) {
	raw := r.Header.Get(headerCustomerID)
	if raw == "" {
		return 1, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, badRequest("invalid %s header", headerCustomerID)
	}
	return id, nil
}

func urlParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

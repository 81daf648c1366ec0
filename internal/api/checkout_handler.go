package api

import (
	"errors"
	"net/http"

	"github.com/haru235/flashcard-saas/internal/api/shared"
	"github.com/haru235/flashcard-saas/internal/payment"
)

// checkoutErrorResponse is the error shape the payment endpoints expose:
// {"error": {"message": "..."}}. Browser clients read .error.message, so
// these endpoints keep their own shape instead of the shared ErrorResponse.
type checkoutErrorResponse struct {
	Error checkoutErrorBody `json:"error"`
}

type checkoutErrorBody struct {
	Message string `json:"message"`
}

// CheckoutHandler handles checkout session API requests.
type CheckoutHandler struct {
	checkoutService payment.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler with the given dependencies.
func NewCheckoutHandler(checkoutService payment.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
	}
}

// CreateSession handles POST /api/checkout_sessions.
// The "type" header picks the plan ("pro" exactly; anything else is basic).
// The processor's session object is returned verbatim.
func (h *CheckoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	planToken := r.Header.Get("type")
	origin := r.Header.Get("Origin")

	session, err := h.checkoutService.CreateSession(r.Context(), planToken, origin)
	if err != nil {
		h.respondProcessorError(w, r, err)
		return
	}

	shared.RespondWithRawJSON(w, r, http.StatusOK, session)
}

// RetrieveSession handles GET /api/checkout_sessions?session_id=...
// The processor's session object is returned verbatim.
func (h *CheckoutHandler) RetrieveSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		shared.RespondWithJSON(w, r, http.StatusBadRequest, checkoutErrorResponse{
			Error: checkoutErrorBody{Message: "session_id is required"},
		})
		return
	}

	session, err := h.checkoutService.RetrieveSession(r.Context(), sessionID)
	if err != nil {
		h.respondProcessorError(w, r, err)
		return
	}

	shared.RespondWithRawJSON(w, r, http.StatusOK, session)
}

// respondProcessorError writes the checkout error shape with the processor's
// own message when one is available. This is the one place a raw upstream
// message is intentionally forwarded to the client.
func (h *CheckoutHandler) respondProcessorError(w http.ResponseWriter, r *http.Request, err error) {
	message := "Payment processing failed"

	var procErr *payment.ProcessorError
	if errors.As(err, &procErr) && procErr.Message != "" {
		message = procErr.Message
	}

	shared.RespondWithJSON(w, r, http.StatusInternalServerError, checkoutErrorResponse{
		Error: checkoutErrorBody{Message: message},
	})
}

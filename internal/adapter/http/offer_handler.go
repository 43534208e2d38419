package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"loan-marketplace/internal/domain/identity"
	"loan-marketplace/internal/infrastructure/metrics"
	"loan-marketplace/internal/usecase/matching"

	"github.com/labstack/echo/v4"
)

type OfferMatcher interface {
	Match(ctx context.Context, callerID string, in matching.MatchInput) (*matching.MatchResultDTO, error)
}

type MatchObserver interface {
	ObserveMatch(outcome string, offers int)
}

type nopObserver struct{}

func (nopObserver) ObserveMatch(string, int) {}

type OfferHandler struct {
	uc  OfferMatcher
	obs MatchObserver
}

// NewOfferHandler: obs may be nil.
func NewOfferHandler(uc OfferMatcher, obs MatchObserver) *OfferHandler {
	if obs == nil {
		obs = nopObserver{}
	}
	return &OfferHandler{uc: uc, obs: obs}
}

type matchOffersReq struct {
	BorrowerID string `json:"borrower_id" validate:"required,borrowerid"`
}

func (h *OfferHandler) MatchOffers(c echo.Context) error {
	ctx := c.Request().Context()
	caller := identity.FromContext(ctx)
	if caller == nil {
		h.obs.ObserveMatch(metrics.OutcomeUnauthorized, 0)
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req matchOffersReq
	if err := c.Bind(&req); err != nil {
		h.obs.ObserveMatch(metrics.OutcomeInvalid, 0)
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		h.obs.ObserveMatch(metrics.OutcomeInvalid, 0)
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	dto, err := h.uc.Match(ctx, caller.UserID, matching.MatchInput(req))
	if err != nil {
		return h.fail(c, err)
	}
	h.obs.ObserveMatch(metrics.OutcomeOK, dto.Count)
	return c.JSON(http.StatusOK, dto)
}

// fail maps use-case errors to status codes. Internal details stay in the log.
func (h *OfferHandler) fail(c echo.Context, err error) error {
	ctx := c.Request().Context()
	switch {
	case errors.Is(err, matching.ErrInvalidInput):
		h.obs.ObserveMatch(metrics.OutcomeInvalid, 0)
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid borrower_id"})
	case errors.Is(err, identity.ErrUnauthenticated):
		h.obs.ObserveMatch(metrics.OutcomeUnauthorized, 0)
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	case errors.Is(err, matching.ErrForbidden):
		h.obs.ObserveMatch(metrics.OutcomeForbidden, 0)
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "forbidden"})
	case errors.Is(err, matching.ErrBorrowerNotFound):
		h.obs.ObserveMatch(metrics.OutcomeNotFound, 0)
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "borrower not found"})
	default:
		h.obs.ObserveMatch(metrics.OutcomeError, 0)
		slog.ErrorContext(ctx, "match offers failed",
			"error", err,
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to match offers"})
	}
}

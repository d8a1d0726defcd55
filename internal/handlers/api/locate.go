package api

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v3"
	"golang.org/x/sync/errgroup"

	"locationservice/internal/locator"
	"locationservice/internal/middleware"
	"locationservice/internal/models"
	"locationservice/internal/resolver"
	"locationservice/internal/validation"
)

// Batch limits
const (
	MaxBatchSize     = 100
	batchConcurrency = 8
)

// LocateHandler handles call number resolution via JSON API.
type LocateHandler struct {
	svc         *locator.Service
	owners      middleware.OwnerChecker
	defaultLang string
}

// NewLocateHandler creates a new API locate handler.
func NewLocateHandler(svc *locator.Service, owners middleware.OwnerChecker, defaultLang string) *LocateHandler {
	return &LocateHandler{svc: svc, owners: owners, defaultLang: defaultLang}
}

// Locate resolves one call number. Expects parameters validated by
// middleware.ValidateLocate.
func (h *LocateHandler) Locate(c fiber.Ctx) error {
	params, ok := middleware.GetLocateParams(c)
	if !ok {
		return jsonError(c, fiber.StatusInternalServerError, "locate parameters missing")
	}

	resp, err := h.svc.Locate(c.Context(), locator.Request{
		CallNo:     params.CallNo,
		Owner:      params.Owner,
		Collection: params.Collection,
		Lang:       params.Lang,
		Available:  params.Available,
		ID:         params.ID,
		IP:         c.IP(),
	})
	if err != nil {
		return jsonError(c, locator.StatusCode(err), locator.Message(err))
	}

	if resp.Outcome == models.OutcomeNotFound {
		return jsonStatus(c, fiber.StatusNotFound, resp)
	}
	return jsonSuccess(c, resp)
}

// Batch resolves up to MaxBatchSize call numbers of one owner concurrently.
// Results keep request order; a failing item does not fail the batch.
func (h *LocateHandler) Batch(c fiber.Ctx) error {
	var req models.BatchLocateRequest
	if err := c.Bind().Body(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if !validation.ValidateOwner(req.Owner) {
		return jsonError(c, fiber.StatusBadRequest, "invalid owner")
	}
	if req.Lang == "" {
		req.Lang = h.defaultLang
	}
	if !validation.ValidateLang(req.Lang) {
		return jsonError(c, fiber.StatusBadRequest, "invalid lang")
	}
	req.Lang = validation.NormalizeLang(req.Lang)
	req.Collection = strings.TrimSpace(req.Collection)
	if !validation.ValidateCollectionCode(req.Collection) {
		return jsonError(c, fiber.StatusBadRequest, "invalid collection")
	}

	if len(req.CallNos) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "callnos is required")
	}
	if len(req.CallNos) > MaxBatchSize {
		return jsonError(c, fiber.StatusBadRequest, "too many call numbers")
	}

	exists, err := h.owners.OwnerExists(c.Context(), req.Owner)
	if err != nil {
		slog.Error("failed to check owner", "owner", req.Owner, "error", err)
		return jsonError(c, fiber.StatusServiceUnavailable, "location database unavailable")
	}
	if !exists {
		return jsonError(c, fiber.StatusNotFound, "unknown owner")
	}

	results := make([]models.BatchLocateItem, len(req.CallNos))
	ip := c.IP()

	g, ctx := errgroup.WithContext(c.Context())
	g.SetLimit(batchConcurrency)
	for i, callNo := range req.CallNos {
		results[i].CallNo = callNo
		if valid, msg := validation.ValidateCallNumber(callNo); !valid {
			results[i].Outcome = models.OutcomeInvalid
			results[i].Error = msg
			continue
		}

		g.Go(func() error {
			resp, err := h.svc.Locate(ctx, locator.Request{
				CallNo:     callNo,
				Owner:      req.Owner,
				Collection: req.Collection,
				Lang:       req.Lang,
				Available:  true,
				IP:         ip,
			})
			if err != nil {
				results[i].Outcome = models.OutcomeError
				if errors.Is(err, resolver.ErrInvalidInput) {
					results[i].Outcome = models.OutcomeInvalid
				}
				results[i].Error = locator.Message(err)
				return nil
			}
			results[i].Outcome = resp.Outcome
			results[i].Location = resp.Location
			return nil
		})
	}
	_ = g.Wait()

	return jsonSuccess(c, models.BatchLocateResponse{
		Owner:   req.Owner,
		Results: results,
	})
}

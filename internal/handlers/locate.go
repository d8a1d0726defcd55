package handlers

import (
	"github.com/gofiber/fiber/v3"

	"locationservice/internal/config"
	"locationservice/internal/locator"
	"locationservice/internal/middleware"
	"locationservice/internal/models"
	"locationservice/internal/validation"
)

// LocateHandler serves the location page for a call number.
type LocateHandler struct {
	svc *locator.Service
	cfg *config.Config
}

// NewLocateHandler creates a new locate handler.
func NewLocateHandler(svc *locator.Service, cfg *config.Config) *LocateHandler {
	return &LocateHandler{svc: svc, cfg: cfg}
}

// Locate resolves the requested call number and renders the result as HTML,
// JSON or XML. Expects parameters validated by middleware.ValidateLocate.
func (h *LocateHandler) Locate(c fiber.Ctx) error {
	params, ok := middleware.GetLocateParams(c)
	if !ok {
		return fiber.NewError(fiber.StatusInternalServerError, "locate parameters missing")
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
		return fiber.NewError(locator.StatusCode(err), locator.Message(err))
	}

	status := fiber.StatusOK
	if resp.Outcome == models.OutcomeNotFound {
		status = fiber.StatusNotFound
	}

	switch params.Output {
	case validation.OutputJSON:
		return c.Status(status).JSON(resp)
	case validation.OutputXML:
		return c.Status(status).XML(resp)
	}

	data := PageData(h.cfg, "Location", resp.Lang)
	data["Response"] = resp

	switch resp.Outcome {
	case models.OutcomeNotAvailable:
		data["Title"] = "Not Available"
		return c.Render("not_available", data)
	case models.OutcomeNotFound:
		data["Title"] = "Not Found"
		return c.Status(status).Render("not_found", data)
	default:
		return c.Render("location", data)
	}
}

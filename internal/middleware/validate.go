package middleware

import (
	"context"
	"log/slog"
	"strings"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"locationservice/internal/validation"
)

const locateParamsKey = "locate_params"

// OwnerChecker reports whether an owner exists.
type OwnerChecker interface {
	OwnerExists(ctx context.Context, code string) (bool, error)
}

// LocateParams holds the validated query parameters of a locate request.
type LocateParams struct {
	CallNo     string
	Owner      string
	Collection string // optional collection code narrowing the search
	Lang       string
	Available  bool       // status parameter was absent or "0"
	ID         *uuid.UUID // location to show directly
	Output     string
}

// ValidateLocate checks the locate query parameters and stores them in the
// request locals. defaultLang is used when lang is absent; an explicit empty
// or malformed lang is rejected.
func ValidateLocate(owners OwnerChecker, defaultLang string) fiber.Handler {
	return func(c fiber.Ctx) error {
		output, ok := validation.NormalizeOutput(c.Query("output"))
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Unsupported output format")
		}
		// Set first so errors below are rendered in the requested format.
		c.Locals("output", output)

		params := LocateParams{
			CallNo:     c.Query("callno"),
			Owner:      c.Query("owner"),
			Collection: strings.TrimSpace(c.Query("collection")),
			Available:  c.Query("status", "0") == "0",
			Output:     output,
		}

		if valid, msg := validation.ValidateCallNumber(params.CallNo); !valid {
			return fiber.NewError(fiber.StatusBadRequest, msg)
		}

		if !validation.ValidateOwner(params.Owner) {
			return fiber.NewError(fiber.StatusBadRequest, "Owner is required and may only contain letters, digits, hyphens and underscores")
		}

		if !validation.ValidateCollectionCode(params.Collection) {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid collection code")
		}

		lang := c.Query("lang")
		if lang == "" && !c.RequestCtx().QueryArgs().Has("lang") {
			lang = defaultLang
		}
		if !validation.ValidateLang(lang) {
			return fiber.NewError(fiber.StatusBadRequest, "Language is required and must be a language code")
		}
		params.Lang = validation.NormalizeLang(lang)

		if idStr := c.Query("id"); idStr != "" {
			id, err := uuid.Parse(idStr)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Invalid location id")
			}
			params.ID = &id
		}

		exists, err := owners.OwnerExists(c.Context(), params.Owner)
		if err != nil {
			slog.Error("failed to check owner", "owner", params.Owner, "error", err)
			return fiber.NewError(fiber.StatusServiceUnavailable, "Location database unavailable")
		}
		if !exists {
			return fiber.NewError(fiber.StatusNotFound, "Unknown owner '"+params.Owner+"'")
		}

		c.Locals(locateParamsKey, params)
		return c.Next()
	}
}

// GetLocateParams returns the parameters stored by ValidateLocate.
func GetLocateParams(c fiber.Ctx) (LocateParams, bool) {
	params, ok := c.Locals(locateParamsKey).(LocateParams)
	return params, ok
}

package handlers

import (
	"github.com/gofiber/fiber/v3"

	"locationservice/internal/config"
)

// PageData builds the template data every page shares: title, page language
// and the configured site branding. An empty lang falls back to the
// configured default.
func PageData(cfg *config.Config, title, lang string) fiber.Map {
	if lang == "" {
		lang = cfg.DefaultLang
	}
	return fiber.Map{
		"Title":      title,
		"Lang":       lang,
		"SiteTitle":  cfg.SiteTitle,
		"SiteFooter": cfg.SiteFooter,
	}
}

package validation

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxCallNumberLength bounds the raw call number accepted from clients.
const MaxCallNumberLength = 500

// OwnerPattern defines the valid owner code format: alphanumeric, hyphens, underscores.
var OwnerPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// LangPattern accepts ISO 639 language codes with an optional region, e.g. "en" or "sv-FI".
var LangPattern = regexp.MustCompile(`^[a-zA-Z]{2,3}([-_][a-zA-Z0-9]{2,8})?$`)

// Output formats for the locate endpoint
const (
	OutputHTML = "html"
	OutputJSON = "json"
	OutputXML  = "xml"
)

// ValidateCallNumber checks that a call number has at least one word, is not
// too long and contains no control characters other than whitespace.
func ValidateCallNumber(callNo string) (bool, string) {
	if strings.TrimSpace(callNo) == "" {
		return false, "Call number is required"
	}
	if len(callNo) > MaxCallNumberLength {
		return false, "Call number is too long"
	}
	if !utf8.ValidString(callNo) {
		return false, "Call number must be valid UTF-8"
	}
	for _, r := range callNo {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return false, "Call number contains invalid characters"
		}
	}
	return true, ""
}

// ValidateOwner checks if an owner code matches the allowed pattern.
func ValidateOwner(owner string) bool {
	if owner == "" || len(owner) > 100 {
		return false
	}
	return OwnerPattern.MatchString(owner)
}

// MaxCollectionCodeLength bounds the optional collection parameter.
const MaxCollectionCodeLength = 100

// ValidateCollectionCode checks the optional collection code. Empty is valid.
func ValidateCollectionCode(code string) bool {
	if len(code) > MaxCollectionCodeLength || !utf8.ValidString(code) {
		return false
	}
	for _, r := range code {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// ValidateLang checks if a language code is well formed.
func ValidateLang(lang string) bool {
	return LangPattern.MatchString(lang)
}

// NormalizeLang lowercases a language code and uses "-" as the region separator.
func NormalizeLang(lang string) string {
	return strings.ReplaceAll(strings.ToLower(lang), "_", "-")
}

// NormalizeOutput returns the output format, defaulting to html.
// Returns false for unknown formats.
func NormalizeOutput(output string) (string, bool) {
	switch strings.ToLower(output) {
	case "", OutputHTML:
		return OutputHTML, true
	case OutputJSON:
		return OutputJSON, true
	case OutputXML:
		return OutputXML, true
	default:
		return "", false
	}
}

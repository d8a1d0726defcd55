package resolver

import (
	"fmt"
	"log/slog"
	"regexp"

	"locationservice/internal/models"
)

// RewriteRule rewrites a call number. ok is false when the rule does not apply.
type RewriteRule interface {
	Rewrite(callNumber string) (rewritten string, ok bool)
}

// RegexRule applies when its expression finds a match and replaces every
// match with the replacement template ($1 refers to the first group).
type RegexRule struct {
	re          *regexp.Regexp
	replacement string
}

// NewRegexRule compiles a rule from a redirect condition and operation.
func NewRegexRule(condition, operation string) (*RegexRule, error) {
	re, err := regexp.Compile(condition)
	if err != nil {
		return nil, fmt.Errorf("invalid redirect condition %q: %w", condition, err)
	}
	return &RegexRule{re: re, replacement: operation}, nil
}

// Rewrite implements RewriteRule.
func (r *RegexRule) Rewrite(callNumber string) (string, bool) {
	if !r.re.MatchString(callNumber) {
		return callNumber, false
	}
	return r.re.ReplaceAllString(callNumber, r.replacement), true
}

// ApplyFirst runs the first rule that applies and returns its output.
func ApplyFirst(rules []RewriteRule, callNumber string) (string, bool) {
	for _, rule := range rules {
		if out, ok := rule.Rewrite(callNumber); ok {
			return out, true
		}
	}
	return callNumber, false
}

// CompileRedirects turns active redirects into rules, keeping their order.
// Redirects with an invalid condition are logged and skipped.
func CompileRedirects(redirects []models.Redirect, logger *slog.Logger) []RewriteRule {
	rules := make([]RewriteRule, 0, len(redirects))
	for _, r := range redirects {
		if !r.IsActive {
			continue
		}
		rule, err := NewRegexRule(r.Condition, r.Operation)
		if err != nil {
			if logger != nil {
				logger.Warn("skipping redirect", "id", r.ID, "owner", r.OwnerCode, "kind", r.Kind, "error", err)
			}
			continue
		}
		rules = append(rules, rule)
	}
	return rules
}

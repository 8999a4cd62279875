package talent

import (
	"fmt"
	"strings"
)

// Locale selects the language of demo data, prompts and error messages.
type Locale string

const (
	LocalePolish  Locale = "pl"
	LocaleEnglish Locale = "en"
)

// Scope selects which professional networks the search query is restricted to.
type Scope string

const (
	// ScopeLinkedIn restricts search to LinkedIn and fetches a single result page.
	ScopeLinkedIn Scope = "linkedin"
	// ScopeMulti spreads search over several networks and fetches two result pages.
	ScopeMulti Scope = "multi"
)

// ParseLocale normalizes a locale name. Empty input yields the Polish default.
func ParseLocale(s string) (Locale, error) {
	switch Locale(strings.ToLower(strings.TrimSpace(s))) {
	case "", LocalePolish:
		return LocalePolish, nil
	case LocaleEnglish:
		return LocaleEnglish, nil
	default:
		return "", fmt.Errorf("unsupported locale: %s", s)
	}
}

// ParseScope normalizes a platform scope name. Empty input yields LinkedIn only.
func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case "", ScopeLinkedIn:
		return ScopeLinkedIn, nil
	case ScopeMulti:
		return ScopeMulti, nil
	default:
		return "", fmt.Errorf("unsupported scope: %s", s)
	}
}

// Pages returns how many search result pages the scope asks for.
func (s Scope) Pages() int {
	if s == ScopeMulti {
		return 2
	}
	return 1
}

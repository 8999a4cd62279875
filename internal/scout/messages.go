package scout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spigell/hr-scout/internal/talent"
)

type messages struct {
	apiError     func(service string, status int, detail string) string
	unknownError string
	searchFailed string
}

var catalog = map[talent.Locale]messages{
	talent.LocalePolish: {
		apiError: func(service string, status int, detail string) string {
			return fmt.Sprintf("Błąd %s API: %d%s", service, status, detail)
		},
		unknownError: "Nieznany błąd",
		searchFailed: "Nie udało się wyszukać kandydatów",
	},
	talent.LocaleEnglish: {
		apiError: func(service string, status int, detail string) string {
			return fmt.Sprintf("%s API error: %d%s", service, status, detail)
		},
		unknownError: "Unknown error",
		searchFailed: "Failed to search for candidates",
	},
}

func messagesFor(locale talent.Locale) messages {
	if m, ok := catalog[locale]; ok {
		return m
	}
	return catalog[talent.LocalePolish]
}

// describeError renders a failure of the search pipeline as a user-facing message.
func describeError(locale talent.Locale, err error) string {
	m := messagesFor(locale)

	var apiErr *talent.APIError
	if errors.As(err, &apiErr) {
		detail := apiErr.Message
		// Completion providers always report a reason; the search API only when it sent one.
		if detail == "" && apiErr.Service != talent.ServiceSearch {
			detail = m.unknownError
		}
		if detail != "" {
			detail = " - " + detail
		}
		return m.apiError(apiErr.Service, apiErr.StatusCode, detail)
	}

	if err == nil || strings.TrimSpace(err.Error()) == "" {
		return m.searchFailed
	}
	return err.Error()
}

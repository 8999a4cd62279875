package talent

import "fmt"

const (
	ServiceSearch = "Google Search"
	ServiceOpenAI = "OpenAI"
	ServiceGemini = "Gemini"
)

// APIError is returned when an external API answers with a non-success status.
type APIError struct {
	Service    string
	StatusCode int
	// Message is the provider's own error text, empty when the body could not be parsed.
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s api: status %d: %s", e.Service, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s api: status %d", e.Service, e.StatusCode)
}

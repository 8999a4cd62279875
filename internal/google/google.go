package google

import (
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	apiURL    = "https://www.googleapis.com/customsearch/v1"
	userAgent = "spigell/hr-scout"
	// Max value the Custom Search API accepts for num.
	perPage = 10
)

// Client queries the Google Custom Search JSON API.
type Client struct {
	apiKey   string
	engineID string
	logger   *zap.Logger
	http     *resty.Client
	APIURL   string
}

// New creates a search client. A zero timeout leaves the transport defaults in place.
func New(logger *zap.Logger, apiKey, engineID string, timeout time.Duration) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	http := resty.New().
		SetHeader("User-Agent", userAgent).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)
	if timeout > 0 {
		http.SetTimeout(timeout)
	}

	return &Client{
		apiKey:   apiKey,
		engineID: engineID,
		logger:   logger,
		http:     http,
		APIURL:   apiURL,
	}
}

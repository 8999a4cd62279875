package google

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/hr-scout/internal/talent"
)

type searchResponse struct {
	Items []talent.SearchResult `json:"items"`
}

type errorResponse struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Search runs the query and returns the result items of the requested number of pages.
// Only the first page is mandatory: failures on later pages are logged and the results
// collected so far are returned.
func (c *Client) Search(ctx context.Context, query string, pages int) ([]talent.SearchResult, error) {
	c.logger.Debug("search query", zap.String("query", query), zap.Int("pages", pages))

	items, err := c.page(ctx, query, 1)
	if err != nil {
		return nil, err
	}

	for page := 2; page <= pages; page++ {
		start := (page-1)*perPage + 1
		more, err := c.page(ctx, query, start)
		if err != nil {
			c.logger.Debug("additional search page failed, keeping collected results",
				zap.Int("start", start),
				zap.Error(err),
			)
			break
		}
		items = append(items, more...)
	}

	return items, nil
}

func (c *Client) page(ctx context.Context, query string, start int) ([]talent.SearchResult, error) {
	params := map[string]string{
		"key": c.apiKey,
		"cx":  c.engineID,
		"q":   query,
		"num": strconv.Itoa(perPage),
	}
	if start > 1 {
		params["start"] = strconv.Itoa(start)
	}

	c.logger.Debug("make request", zap.String("url", c.APIURL), zap.Int("start", start))

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(c.APIURL)
	if err != nil {
		// The request URL carries the API key, so only the underlying cause is kept.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			return nil, fmt.Errorf("google search request: %w", urlErr.Err)
		}
		return nil, fmt.Errorf("google search request: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, &talent.APIError{
			Service:    talent.ServiceSearch,
			StatusCode: resp.StatusCode(),
			Message:    errorMessage(resp.Body()),
		}
	}

	var data searchResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil, err
	}

	if data.Items == nil {
		return []talent.SearchResult{}, nil
	}
	return data.Items, nil
}

// errorMessage extracts error.message from an API error body, falling back to the
// compacted JSON body as sent by the provider. Unparseable bodies yield an empty message.
func errorMessage(body []byte) string {
	if !json.Valid(body) {
		return ""
	}

	var typed errorResponse
	if err := json.Unmarshal(body, &typed); err == nil && typed.Error != nil && typed.Error.Message != "" {
		return typed.Error.Message
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, body); err != nil {
		return ""
	}
	return compact.String()
}

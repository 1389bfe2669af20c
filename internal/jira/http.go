package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// updatePayload is the REST v2 issue update body.
type updatePayload struct {
	Fields map[string]any `json:"fields"`
}

// UpdateDescription rewrites an issue's description through the REST
// API. jira-cli sometimes converts wiki markup on create, so the raw
// markup is put back afterwards. The token travels in the
// Authorization header, never on a command line.
func (c *CLIClient) UpdateDescription(ctx context.Context, key, description string) error {
	if c.token == "" {
		return tokenMissing()
	}
	if c.server == "" {
		return &ConfigurationError{Reason: "no server configured, run 'jira init'"}
	}

	body, err := json.Marshal(updatePayload{Fields: map[string]any{"description": description}})
	if err != nil {
		return fmt.Errorf("marshal update payload: %w", err)
	}

	url := fmt.Sprintf("%s/rest/api/2/issue/%s", strings.TrimRight(c.server, "/"), key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build update request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("update %s: %w", key, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("update %s: HTTP %d: %s", key, resp.StatusCode, strings.TrimSpace(string(detail)))
	}
	return nil
}

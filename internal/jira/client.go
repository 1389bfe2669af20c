// Package jira creates and comments on tracker issues through the
// jira-cli client.
package jira

import (
	"context"

	"github.com/rhuss/rhuss-claude-marketplace/internal/logging"
)

// CreateRequest carries the already-rendered ticket body plus its
// tracker metadata. Rendering stays in the assessment package so the
// client backend can be swapped without touching formatting.
type CreateRequest struct {
	Summary     string
	Description string
	IssueType   string
	Priority    string
	Component   string
	Epic        string
	OpenInWeb   bool
}

// Client is the narrow interface to the issue tracker. The default
// implementation shells out to jira-cli; an HTTP implementation can
// replace it without callers noticing.
type Client interface {
	// CreateIssue files a new issue and returns its key (e.g. "PROJ-42").
	CreateIssue(ctx context.Context, req CreateRequest) (string, error)

	// AddComment appends a comment to an existing issue.
	AddComment(ctx context.Context, key, body string) error

	// Verify checks credentials and connectivity with a read-only call.
	Verify(ctx context.Context) error
}

// CommentBestEffort appends a comment and reports success. Comment
// failures are non-fatal to assessment workflows, so the error is
// logged rather than propagated.
func CommentBestEffort(ctx context.Context, c Client, key, body string) bool {
	if err := c.AddComment(ctx, key, body); err != nil {
		logging.Warn("failed to add comment", "issue", key, "error", err)
		return false
	}
	return true
}

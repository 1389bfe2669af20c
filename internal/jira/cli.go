package jira

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rhuss/rhuss-claude-marketplace/internal/config"
	"github.com/rhuss/rhuss-claude-marketplace/internal/executil"
	"github.com/rhuss/rhuss-claude-marketplace/internal/logging"
)

// CLIClient implements Client by shelling out to jira-cli. The API
// token reaches the child process only through its environment.
type CLIClient struct {
	binary  string
	server  string
	project string
	token   string

	verifyTimeout  time.Duration
	createTimeout  time.Duration
	commentTimeout time.Duration

	httpClient *http.Client
}

// NewCLIClient builds a client from tma configuration plus the
// jira-cli config written by 'jira init'.
func NewCLIClient(cfg *config.Config) (*CLIClient, error) {
	cliCfg, err := config.LoadJiraCLIConfig(cfg.Jira.ConfigPath)
	if err != nil {
		return nil, &ConfigurationError{Reason: err.Error()}
	}
	return &CLIClient{
		binary:         cfg.Jira.Binary,
		server:         cliCfg.Server,
		project:        cliCfg.Project.Key,
		token:          cfg.Token(),
		verifyTimeout:  cfg.Jira.VerifyTimeout,
		createTimeout:  cfg.Jira.CreateTimeout,
		commentTimeout: cfg.Jira.CommentTimeout,
		httpClient:     &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// CreateIssue files a new issue and returns its key. The token is
// checked before any subprocess starts; a failed invocation is
// surfaced immediately, never retried.
func (c *CLIClient) CreateIssue(ctx context.Context, req CreateRequest) (string, error) {
	if c.token == "" {
		return "", tokenMissing()
	}

	descFile, err := os.CreateTemp("", "jira-description-*.txt")
	if err != nil {
		return "", fmt.Errorf("create description file: %w", err)
	}
	defer os.Remove(descFile.Name())
	if _, err := descFile.WriteString(req.Description); err != nil {
		descFile.Close()
		return "", fmt.Errorf("write description file: %w", err)
	}
	descFile.Close()

	args := []string{
		"issue", "create",
		"-t", req.IssueType,
		"-s", req.Summary,
		"-T", descFile.Name(),
		"-y", req.Priority,
		"--no-input",
	}
	if req.Component != "" {
		args = append(args, "-C", req.Component)
	}
	if req.OpenInWeb {
		args = append(args, "--web")
	}

	res, err := c.run(ctx, c.createTimeout, args...)
	if err != nil {
		return "", err
	}
	if res.ExitCode != 0 {
		return "", &ExternalToolError{Tool: c.binary, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}

	key := parseIssueKey(res.Stdout)
	if key == "" {
		return "", &ExternalToolError{
			Tool:   c.binary,
			Stderr: fmt.Sprintf("could not find issue key in output: %q", strings.TrimSpace(res.Stdout)),
		}
	}

	// Epic linking and the description rewrite are follow-ups to an
	// already-created issue. The key is returned even when they fail.
	if req.Epic != "" {
		if err := c.linkEpic(ctx, req.Epic, key); err != nil {
			logging.Warn("issue created but epic link failed", "issue", key, "epic", req.Epic, "error", err)
		}
	}
	if err := c.UpdateDescription(ctx, key, req.Description); err != nil {
		logging.Warn("issue created but description update failed", "issue", key, "error", err)
	}

	return key, nil
}

// AddComment appends a comment to an existing issue.
func (c *CLIClient) AddComment(ctx context.Context, key, body string) error {
	if c.token == "" {
		return tokenMissing()
	}

	res, err := c.run(ctx, c.commentTimeout, "issue", "comment", "add", key, body)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return &ExternalToolError{Tool: c.binary, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return nil
}

// Verify checks that a token is present and that the tracker answers
// a read-only 'jira me' call.
func (c *CLIClient) Verify(ctx context.Context) error {
	if c.token == "" {
		return tokenMissing()
	}
	if c.server == "" {
		return &ConfigurationError{Reason: "no server configured, run 'jira init'"}
	}

	res, err := c.run(ctx, c.verifyTimeout, "me")
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return &ExternalToolError{Tool: c.binary, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return nil
}

// Server returns the configured tracker base URL.
func (c *CLIClient) Server() string {
	return c.server
}

// Project returns the default project key from the jira-cli config,
// or empty when none is configured.
func (c *CLIClient) Project() string {
	return c.project
}

// BrowseURL returns the web URL for an issue key.
func (c *CLIClient) BrowseURL(key string) string {
	return fmt.Sprintf("%s/browse/%s", strings.TrimRight(c.server, "/"), key)
}

func (c *CLIClient) linkEpic(ctx context.Context, epic, key string) error {
	res, err := c.run(ctx, c.verifyTimeout, "epic", "add", epic, key)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return &ExternalToolError{Tool: c.binary, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return nil
}

func (c *CLIClient) run(ctx context.Context, timeout time.Duration, args ...string) (*executil.Result, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd, err := executil.Command(ctx, c.binary, args...)
	if err != nil {
		return nil, &ConfigurationError{Reason: err.Error()}
	}
	executil.WithEnv(cmd, config.TokenEnvVar, c.token)

	res, err := executil.Run(ctx, cmd)
	if err != nil {
		return nil, fmt.Errorf("invoke %s: %w", c.binary, err)
	}
	return res, nil
}

func tokenMissing() error {
	return &ConfigurationError{
		Reason: fmt.Sprintf("%s is not set; create a personal access token in your tracker profile and export it", config.TokenEnvVar),
	}
}

// parseIssueKey extracts the issue key from jira-cli create output,
// which ends with a browse URL like
// "https://issues.example.com/browse/PROJ-42".
func parseIssueKey(stdout string) string {
	for _, line := range strings.Split(stdout, "\n") {
		if idx := strings.LastIndex(line, "browse/"); idx >= 0 {
			key := strings.TrimSpace(line[idx+len("browse/"):])
			if key != "" {
				return key
			}
		}
	}
	return ""
}

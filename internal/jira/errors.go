package jira

import (
	"errors"
	"fmt"
	"strings"
)

// ConfigurationError indicates missing or invalid tracker setup: an
// absent API token or an unreadable jira-cli config. It is always
// raised before any external process runs.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("jira configuration error: %s", e.Reason)
}

// ExternalToolError indicates the tracker CLI exited non-zero or
// produced output we could not interpret. The tool's stderr is
// preserved verbatim. Invocations are never retried.
type ExternalToolError struct {
	Tool     string
	ExitCode int
	Stderr   string
}

func (e *ExternalToolError) Error() string {
	msg := fmt.Sprintf("%s exited with code %d", e.Tool, e.ExitCode)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

// IsConfigurationError checks if an error is a ConfigurationError,
// handling wrapped errors.
func IsConfigurationError(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsExternalToolError checks if an error is an ExternalToolError,
// handling wrapped errors.
func IsExternalToolError(err error) bool {
	var te *ExternalToolError
	return errors.As(err, &te)
}

package http

import (
	"context"
	"fmt"
)

// StaticTokenSource is a TokenSource around a fixed session token, e.g. one
// read from a configuration file. It cannot renew the token.
type StaticTokenSource struct {
	SessionToken string
}

// Token returns the configured session token.
func (s StaticTokenSource) Token(context.Context) (string, error) {
	if s.SessionToken == "" {
		return "", fmt.Errorf("no site session token configured")
	}
	return s.SessionToken, nil
}

// Refresh fails; a static token has no way to renew itself.
func (s StaticTokenSource) Refresh(context.Context) error {
	return fmt.Errorf("the configured session token has expired and cannot be renewed")
}

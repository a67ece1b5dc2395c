package providers

import (
	"context"
	"fmt"
)

var _ AuthProvider = &StaticAuthProvider{}

// StaticAuthProvider treats the bearer token itself as the caller's
// identity. Development and tests only, never production.
type StaticAuthProvider struct {
}

func NewStaticAuthProvider() *StaticAuthProvider {
	return &StaticAuthProvider{}
}

func (p *StaticAuthProvider) VerifyToken(ctx context.Context, idToken string) (*TokenClaims, error) {
	if idToken == "" {
		return nil, fmt.Errorf("empty token")
	}
	return &TokenClaims{
		UID: idToken,
	}, nil
}

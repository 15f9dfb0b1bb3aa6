package service

import (
	"context"
	"time"

	"github.com/aussiebroadwan/copilot/internal/copilot/domain"
	"github.com/aussiebroadwan/copilot/pkg/jwtx"
	"github.com/aussiebroadwan/copilot/pkg/slogx"
)

// AccessToken is what a successful login hands back alongside the account.
type AccessToken struct {
	Token     string
	Type      string
	ExpiresIn time.Duration
}

// TokenService signs short-lived access tokens for logged in accounts.
type TokenService struct {
	KeyManager *jwtx.KeyManager
	Issuer     string
	Audience   []string
	TTL        time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

// Issue signs a token for account.
func (s *TokenService) Issue(ctx context.Context, account domain.PublicAccount) (AccessToken, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}

	claims := jwtx.NewAccessClaims(account.ID, account.Email, account.Name, s.Issuer, s.Audience, ttl, now().UTC())

	signer := s.KeyManager.Signer()
	raw, err := signer.Sign(claims)
	if err != nil {
		slogx.FromContext(ctx).Error("failed to sign access token", "error", err, "kid", signer.KID())
		return AccessToken{}, err
	}

	return AccessToken{Token: raw, Type: "Bearer", ExpiresIn: ttl}, nil
}

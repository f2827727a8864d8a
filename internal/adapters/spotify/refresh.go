package spotify

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/whitmore-labs/skylark/internal/core/domain"
	"github.com/whitmore-labs/skylark/internal/core/ports"
)

const defaultTokenURL = "https://accounts.spotify.com/api/token"

// Refresher exchanges a stored refresh token for a fresh access credential
// using the OAuth refresh grant.
type Refresher struct {
	conf *oauth2.Config
}

// compile-time interface assertion
var _ ports.CredentialRefresher = (*Refresher)(nil)

// NewRefresher constructs a Refresher. tokenURL overrides the Spotify account
// endpoint, mainly for tests.
func NewRefresher(clientID, clientSecret, tokenURL string) *Refresher {
	if tokenURL == "" {
		tokenURL = defaultTokenURL
	}
	return &Refresher{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     oauth2.Endpoint{TokenURL: tokenURL},
		},
	}
}

// Refresh performs one refresh-grant exchange. The returned credential keeps
// the original refresh token unless the provider rotated it.
func (r *Refresher) Refresh(ctx context.Context, refreshToken string) (domain.Credential, error) {
	src := r.conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})

	tok, err := src.Token()
	if err != nil {
		return domain.Credential{}, fmt.Errorf("spotify adapter: refresh token: %w", err)
	}

	cred := domain.Credential{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
	}
	if cred.RefreshToken == "" {
		cred.RefreshToken = refreshToken
	}
	return cred, nil
}

package auth

import (
	"context"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// refreshBuffer is how early a token is refreshed before its expiry.
// Strava access tokens last six hours; refreshing a minute early keeps a
// long ride sync from tripping a 401 mid-pagination.
const refreshBuffer = time.Minute

// TokenSource yields valid Strava tokens, refreshing through the OAuth
// config when the stored token is about to expire. Every refreshed token
// is handed to onRefresh so the caller can persist it before it is used.
type TokenSource struct {
	config    *oauth2.Config
	token     *oauth2.Token
	onRefresh func(*oauth2.Token) error
	mu        sync.Mutex
}

func NewTokenSource(cfg *oauth2.Config, token *oauth2.Token, onRefresh func(*oauth2.Token) error) *TokenSource {
	return &TokenSource{
		config:    cfg,
		token:     token,
		onRefresh: onRefresh,
	}
}

// Token returns the current token, refreshing it first when it expires
// within the buffer. A failed persistence callback fails the refresh; a
// token the store never saw must not be used.
func (ts *TokenSource) Token() (*oauth2.Token, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if time.Until(ts.token.Expiry) > refreshBuffer {
		return ts.token, nil
	}

	src := ts.config.TokenSource(context.Background(), ts.token)
	newToken, err := src.Token()
	if err != nil {
		return nil, err
	}

	if ts.onRefresh != nil {
		if err := ts.onRefresh(newToken); err != nil {
			return nil, err
		}
	}

	ts.token = newToken
	return newToken, nil
}

package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type GoogleProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

const googleUserinfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

func googleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		ClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		RedirectURL:  os.Getenv("GOOGLE_REDIRECT_URL"),
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}
}

// ExchangeGoogleCode trades an authorization code for the Google profile of
// the signing-in user plus the provider token set.
func ExchangeGoogleCode(ctx context.Context, code string) (*GoogleProfile, *oauth2.Token, error) {
	cfg := googleOAuthConfig()

	token, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	resp, err := cfg.Client(ctx, token).Get(googleUserinfoURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch user profile: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("userinfo endpoint returned status %d", resp.StatusCode)
	}

	var profile GoogleProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, nil, fmt.Errorf("failed to decode user profile: %w", err)
	}
	if profile.Email == "" {
		return nil, nil, fmt.Errorf("google profile has no email")
	}

	return &profile, token, nil
}

package google

import (
	"context"
	"errors"
	"fmt"

	"github.com/Hanjarang/news/internal/auth"
	"github.com/Hanjarang/news/internal/logger"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
)

const providerName = "google"

// Provider authenticates against Google's OIDC issuer. The raw payload
// is flat: the verified id_token claims.
type Provider struct {
	oauthConfig *oauth2.Config
	verifier    *oidc.IDTokenVerifier
}

func New(
	ctx context.Context,
	clientID string,
	clientSecret string,
	redirectURL string,
) (*Provider, error) {

	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil, errors.New("google oauth config missing required fields")
	}

	oidcProvider, err := oidc.NewProvider(ctx, "https://accounts.google.com")
	if err != nil {
		return nil, fmt.Errorf("failed to init google oidc provider: %w", err)
	}

	verifier := oidcProvider.Verifier(&oidc.Config{
		ClientID: clientID,
	})

	oauthCfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURL,
		Endpoint:     oidcProvider.Endpoint(),
		Scopes: []string{
			oidc.ScopeOpenID,
			"profile",
			"email",
		},
	}

	return &Provider{
		oauthConfig: oauthCfg,
		verifier:    verifier,
	}, nil
}

func (p *Provider) Name() string {
	return providerName
}

func (p *Provider) AuthCodeURL(state string) string {
	return p.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades the code for tokens and returns the verified id_token
// claims as the raw attribute payload.
func (p *Provider) Exchange(ctx context.Context, code string) (map[string]any, error) {
	token, err := p.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google token exchange failed: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, errors.New("google did not return id_token")
	}

	idToken, err := p.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("google id_token verification failed: %w", err)
	}

	var attrs map[string]any
	if err := idToken.Claims(&attrs); err != nil {
		return nil, fmt.Errorf("google id_token claims parse failed: %w", err)
	}

	logger.Info("google oidc verified", map[string]any{
		"issuer":          idToken.Issuer,
		"subject_present": attrs["sub"] != nil,
		"expiry_unix":     idToken.Expiry.Unix(),
	})

	return attrs, nil
}

// Identify reads the flat Google payload: sub, email, name, picture.
func (p *Provider) Identify(attrs map[string]any) (*auth.Identity, error) {
	sub, _ := attrs["sub"].(string)
	if sub == "" {
		return nil, fmt.Errorf("%w: google payload missing sub", auth.ErrMalformedPayload)
	}

	email, _ := attrs["email"].(string)
	name, _ := attrs["name"].(string)
	picture, _ := attrs["picture"].(string)

	return &auth.Identity{
		Provider:     providerName,
		ProviderID:   sub,
		Name:         name,
		Email:        email,
		ProfileImage: picture,
	}, nil
}

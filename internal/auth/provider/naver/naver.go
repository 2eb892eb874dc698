package naver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Hanjarang/news/internal/auth"

	"golang.org/x/oauth2"
)

const (
	providerName = "naver"

	userInfoURL = "https://openapi.naver.com/v1/nid/me"
)

var endpoint = oauth2.Endpoint{
	AuthURL:  "https://nid.naver.com/oauth2.0/authorize",
	TokenURL: "https://nid.naver.com/oauth2.0/token",
}

// Provider authenticates against Naver. The raw payload nests every user
// field one level down under a "response" key.
type Provider struct {
	oauthConfig *oauth2.Config
	httpClient  *http.Client
	userInfoURL string
}

func New(clientID, clientSecret, redirectURL string) (*Provider, error) {
	if clientID == "" || clientSecret == "" || redirectURL == "" {
		return nil, errors.New("naver oauth config missing required fields")
	}

	return &Provider{
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     endpoint,
		},
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		userInfoURL: userInfoURL,
	}, nil
}

func (p *Provider) Name() string {
	return providerName
}

func (p *Provider) AuthCodeURL(state string) string {
	return p.oauthConfig.AuthCodeURL(state)
}

func (p *Provider) Exchange(ctx context.Context, code string) (map[string]any, error) {
	token, err := p.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("naver token exchange failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("naver userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("naver userinfo http %d", resp.StatusCode)
	}

	var attrs map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&attrs); err != nil {
		return nil, fmt.Errorf("naver userinfo decode failed: %w", err)
	}
	return attrs, nil
}

// Identify reads the Naver payload. The "response" container is part of
// the provider contract; its absence makes the payload malformed.
func (p *Provider) Identify(attrs map[string]any) (*auth.Identity, error) {
	response, ok := attrs["response"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: naver payload missing response", auth.ErrMalformedPayload)
	}

	id, _ := response["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("%w: naver payload missing response.id", auth.ErrMalformedPayload)
	}

	name, _ := response["name"].(string)
	email, _ := response["email"].(string)
	profileImage, _ := response["profile_image"].(string)

	return &auth.Identity{
		Provider:     providerName,
		ProviderID:   id,
		Name:         name,
		Email:        email,
		ProfileImage: profileImage,
	}, nil
}

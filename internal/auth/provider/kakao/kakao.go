package kakao

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Hanjarang/news/internal/auth"

	"golang.org/x/oauth2"
)

const (
	providerName = "kakao"

	userInfoURL = "https://kapi.kakao.com/v2/user/me"
)

var endpoint = oauth2.Endpoint{
	AuthURL:  "https://kauth.kakao.com/oauth/authorize",
	TokenURL: "https://kauth.kakao.com/oauth/token",
}

// Provider authenticates against Kakao. The raw payload carries a numeric
// id at the top level plus two sibling nested objects: "properties" for
// profile data and "kakao_account" for account data.
type Provider struct {
	oauthConfig *oauth2.Config
	httpClient  *http.Client
	userInfoURL string
}

func New(clientID, clientSecret, redirectURL string) (*Provider, error) {
	if clientID == "" || redirectURL == "" {
		return nil, errors.New("kakao oauth config missing required fields")
	}

	return &Provider{
		oauthConfig: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     endpoint,
			Scopes:       []string{"profile_nickname", "profile_image", "account_email"},
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
		return nil, fmt.Errorf("kakao token exchange failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token.AccessToken)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("kakao userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("kakao userinfo http %d", resp.StatusCode)
	}

	var attrs map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&attrs); err != nil {
		return nil, fmt.Errorf("kakao userinfo decode failed: %w", err)
	}
	return attrs, nil
}

// Identify reads the Kakao payload. The numeric id is required; nickname
// and email live under optional nested containers.
func (p *Provider) Identify(attrs map[string]any) (*auth.Identity, error) {
	id := stringOfID(attrs["id"])
	if id == "" {
		return nil, fmt.Errorf("%w: kakao payload missing id", auth.ErrMalformedPayload)
	}

	identity := &auth.Identity{
		Provider:   providerName,
		ProviderID: id,
	}

	if props, ok := attrs["properties"].(map[string]any); ok {
		identity.Name, _ = props["nickname"].(string)
		identity.ProfileImage, _ = props["profile_image"].(string)
	}
	if account, ok := attrs["kakao_account"].(map[string]any); ok {
		identity.Email, _ = account["email"].(string)
	}

	return identity, nil
}

// stringOfID normalizes the id field, which arrives as float64 or
// json.Number depending on the decoder.
func stringOfID(v any) string {
	switch id := v.(type) {
	case string:
		return id
	case json.Number:
		return id.String()
	case float64:
		return strconv.FormatInt(int64(id), 10)
	case int64:
		return strconv.FormatInt(id, 10)
	default:
		return ""
	}
}

package handler

import (
	"fmt"
	"strings"

	"github.com/Hanjarang/news/internal/auth"
)

const (
	callbackPrefix   = "/login/oauth2/code/"
	initiationPrefix = "/oauth2/authorization/"
)

// knownProviders is ordered; callback patterns are checked before the
// initiation fallbacks.
var knownProviders = []string{"naver", "google", "kakao"}

// ProviderFromPath infers the provider name from the request path.
// Callback paths (/login/oauth2/code/{name}) are matched first, then
// authorization-initiation paths (/oauth2/authorization/{name}) as a
// fallback. Anything else is an unsupported provider.
func ProviderFromPath(path string) (string, error) {
	for _, name := range knownProviders {
		if strings.HasPrefix(path, callbackPrefix+name) {
			return name, nil
		}
	}
	for _, name := range knownProviders {
		if strings.HasPrefix(path, initiationPrefix+name) {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: %s", auth.ErrUnsupportedProvider, path)
}

package app

import (
	"context"
	"net/http"

	"github.com/Hanjarang/news/internal/auth/handler"
	"github.com/Hanjarang/news/internal/auth/provider"
	"github.com/Hanjarang/news/internal/auth/provider/google"
	"github.com/Hanjarang/news/internal/auth/provider/kakao"
	"github.com/Hanjarang/news/internal/auth/provider/naver"
	"github.com/Hanjarang/news/internal/auth/resolver"
	"github.com/Hanjarang/news/internal/config"
	"github.com/Hanjarang/news/internal/logger"
	"github.com/Hanjarang/news/internal/middleware"
	"github.com/Hanjarang/news/internal/news"
	"github.com/Hanjarang/news/internal/news/guardian"
	"github.com/Hanjarang/news/internal/news/index"
	"github.com/Hanjarang/news/internal/session"
	"github.com/Hanjarang/news/internal/summary"
	"github.com/Hanjarang/news/internal/summary/ai"

	"github.com/gin-gonic/gin"
)

func setupHTTP(ctx context.Context, cfg config.Config, inf *infra) (*gin.Engine, error) {
	registry := provider.NewRegistry(buildProviders(ctx, cfg)...)

	cookieOpts := session.CookieOptions{
		Secure: cfg.CookieSecure,
	}

	resolverSvc := resolver.NewService(inf.users)

	authHandler := handler.NewHandler(registry, inf.sessions, resolverSvc, inf.users, cookieOpts)

	guardianClient := guardian.New(cfg.GuardianBaseURL, cfg.GuardianAPIKey, cfg.GuardianSection)
	newsIndex := index.NewElastic(cfg.ElasticsearchURL)
	newsService := news.NewService(guardianClient, newsIndex)
	newsHandler := news.NewHandler(guardianClient, newsIndex, newsService)

	aiClient := ai.New(cfg.HuggingFaceToken)
	summaryService := summary.NewService(inf.summaries, aiClient)
	summaryHandler := summary.NewHandler(summaryService)

	gate := middleware.NewGate(middleware.DefaultRules(), inf.sessions)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gate.Handler())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})

	authHandler.RegisterRoutes(r)
	newsHandler.RegisterRoutes(r)
	summaryHandler.RegisterRoutes(r)

	return r, nil
}

// buildProviders registers only the providers whose credentials are
// configured. Google is skipped when OIDC discovery fails so one bad
// provider does not take the whole service down.
func buildProviders(ctx context.Context, cfg config.Config) []provider.Provider {
	var out []provider.Provider

	if cfg.NaverClientID != "" {
		p, err := naver.New(cfg.NaverClientID, cfg.NaverClientSecret, cfg.NaverRedirectURL)
		if err != nil {
			logger.Warn("skipping naver provider", map[string]any{"error": err.Error()})
		} else {
			out = append(out, p)
		}
	}

	if cfg.GoogleClientID != "" {
		p, err := google.New(ctx, cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
		if err != nil {
			logger.Warn("skipping google provider", map[string]any{"error": err.Error()})
		} else {
			out = append(out, p)
		}
	}

	if cfg.KakaoClientID != "" {
		p, err := kakao.New(cfg.KakaoClientID, cfg.KakaoClientSecret, cfg.KakaoRedirectURL)
		if err != nil {
			logger.Warn("skipping kakao provider", map[string]any{"error": err.Error()})
		} else {
			out = append(out, p)
		}
	}

	return out
}

package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/Hanjarang/news/internal/auth"
	"github.com/Hanjarang/news/internal/auth/provider"
	"github.com/Hanjarang/news/internal/auth/resolver"
	"github.com/Hanjarang/news/internal/logger"
	"github.com/Hanjarang/news/internal/middleware"
	"github.com/Hanjarang/news/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	sessionTTL       = 24 * time.Hour
	loginSuccessPath = "/api/v1/auth/login-success"
)

type Handler struct {
	providers  *provider.Registry
	sessions   session.Store
	resolver   resolver.Resolver
	users      resolver.UserStore
	cookieOpts session.CookieOptions
}

func NewHandler(
	registry *provider.Registry,
	sessions session.Store,
	res resolver.Resolver,
	users resolver.UserStore,
	cookieOpts session.CookieOptions,
) *Handler {
	return &Handler{
		providers:  registry,
		sessions:   sessions,
		resolver:   res,
		users:      users,
		cookieOpts: cookieOpts,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/oauth2/authorization/:provider", h.initiate)
	r.GET("/login/oauth2/code/:provider", h.callback)

	api := r.Group("/api/v1/auth")
	api.GET("/login-success", h.loginSuccess)
	api.GET("/me", h.me)
	api.GET("/user-info", h.userInfo)
	api.GET("/providers", h.listProviders)
	api.POST("/logout", h.logout)
}

// initiate redirects the client to the provider's authorization endpoint
// with a fresh CSRF state.
func (h *Handler) initiate(c *gin.Context) {
	name, err := ProviderFromPath(c.Request.URL.Path)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "지원하지 않는 OAuth2 제공자입니다."})
		return
	}

	p, err := h.providers.Get(name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "지원하지 않는 OAuth2 제공자입니다."})
		return
	}

	state := generateState(c)
	c.Redirect(http.StatusFound, p.AuthCodeURL(state))
}

// callback drives the post-authorization flow: detect the provider from
// the path, exchange the code for the raw payload, normalize it, resolve
// the user, open a session and redirect with the session handle. Any
// failure aborts the whole flow; no partial session is established.
func (h *Handler) callback(c *gin.Context) {
	name, err := ProviderFromPath(c.Request.URL.Path)
	if err != nil {
		logger.Warn("callback from unknown provider path", map[string]any{
			"path": c.Request.URL.Path,
		})
		c.JSON(http.StatusBadRequest, gin.H{"message": "지원하지 않는 OAuth2 제공자입니다."})
		return
	}

	p, err := h.providers.Get(name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "지원하지 않는 OAuth2 제공자입니다."})
		return
	}

	if !validateState(c) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "잘못된 state 값입니다."})
		return
	}

	if errParam := c.Query("error"); errParam != "" {
		logger.Warn("provider callback returned error", map[string]any{
			"provider": name,
			"error":    errParam,
		})
		c.JSON(http.StatusUnauthorized, gin.H{"message": "로그인에 실패했습니다."})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "인증 코드가 없습니다."})
		return
	}

	attrs, err := p.Exchange(c.Request.Context(), code)
	if err != nil {
		logger.Error("token exchange failed", map[string]any{
			"provider": name,
			"error":    err.Error(),
		})
		c.JSON(http.StatusUnauthorized, gin.H{"message": "로그인에 실패했습니다."})
		return
	}

	identity, err := p.Identify(attrs)
	if err != nil {
		// Never log the payload itself; it carries personal data.
		logger.Error("malformed provider payload", map[string]any{
			"provider": name,
		})
		status := http.StatusInternalServerError
		if errors.Is(err, auth.ErrMalformedPayload) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"message": "로그인에 실패했습니다."})
		return
	}

	user, err := h.resolver.Resolve(c.Request.Context(), identity)
	if err != nil {
		logger.Error("identity resolution failed", map[string]any{
			"provider": name,
			"error":    err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{"message": "로그인 처리 중 오류가 발생했습니다."})
		return
	}

	sessionID, err := session.GenerateID()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "세션 생성에 실패했습니다."})
		return
	}

	now := time.Now()
	sess := session.Session{
		SessionID:  sessionID,
		UserID:     user.ID,
		Attributes: attrs,
		CreatedAt:  now,
		ExpiresAt:  now.Add(sessionTTL),
	}

	if err := h.sessions.Create(c.Request.Context(), sess); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "세션 생성에 실패했습니다."})
		return
	}

	logger.Info("login succeeded", map[string]any{
		"provider": name,
		"user_id":  user.ID,
	})

	c.Redirect(http.StatusFound, loginSuccessPath+"?sessionId="+sessionID)
}

// loginSuccess completes the handoff. The handle carried in the redirect
// URL is single-use: the referenced session is deleted and re-created
// under a fresh id, which becomes the cookie value. A handle that leaked
// through logs or browser history is worthless after the first use.
func (h *Handler) loginSuccess(c *gin.Context) {
	handle := c.Query("sessionId")
	if handle == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "sessionId가 없습니다."})
		return
	}

	sess, err := h.sessions.Get(c.Request.Context(), handle)
	if err != nil || sess == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "인증되지 않은 사용자입니다."})
		return
	}

	newID, err := session.GenerateID()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "세션 생성에 실패했습니다."})
		return
	}

	reissued := *sess
	reissued.SessionID = newID

	if err := h.sessions.Create(c.Request.Context(), reissued); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "세션 생성에 실패했습니다."})
		return
	}
	_ = h.sessions.Delete(c.Request.Context(), handle)

	session.SetCookie(c.Writer, newID, reissued.ExpiresAt, h.cookieOpts)

	c.JSON(http.StatusOK, gin.H{
		"message":   "로그인이 성공했습니다.",
		"user":      reissued.Attributes,
		"sessionId": newID,
	})
}

func (h *Handler) me(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "인증되지 않은 사용자입니다."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": sess.Attributes})
}

// userInfo returns the persisted user row behind the current session.
func (h *Handler) userInfo(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "인증되지 않은 사용자입니다."})
		return
	}

	user, err := h.users.FindByID(c.Request.Context(), sess.UserID)
	if err != nil {
		if errors.Is(err, resolver.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "사용자를 찾을 수 없습니다."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": "사용자 조회 중 오류가 발생했습니다."})
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *Handler) listProviders(c *gin.Context) {
	providers := make(map[string]string)
	for _, name := range h.providers.Names() {
		providers[name] = initiationPrefix + name
	}

	c.JSON(http.StatusOK, gin.H{
		"providers": providers,
		"message":   "사용 가능한 OAuth2 제공자 목록",
	})
}

// logout invalidates the session server-side and deletes the cookie.
// Safe to call without an active session.
func (h *Handler) logout(c *gin.Context) {
	cookie, err := c.Request.Cookie(session.CookieName)
	if err == nil && cookie.Value != "" {
		// Best-effort; an already-expired session is not an error.
		_ = h.sessions.Delete(c.Request.Context(), cookie.Value)
	}

	session.ClearCookie(c.Writer, h.cookieOpts)

	c.JSON(http.StatusOK, gin.H{
		"message": "로그아웃되었습니다.",
		"status":  "success",
	})
}

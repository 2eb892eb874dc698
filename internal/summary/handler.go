package summary

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Hanjarang/news/internal/auth"
	"github.com/Hanjarang/news/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/api/v1/summaries", h.create)
	r.GET("/api/v1/summaries/:summaryId", h.get)
	r.DELETE("/api/v1/summaries/:summaryId", h.delete)
	r.GET("/api/v1/users/me/summaries", h.listMine)
}

type createRequest struct {
	OriginalText string `json:"originalText"`
}

// create is open to guests; only members get their summary persisted.
func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "잘못된 요청입니다."})
		return
	}

	var userID *int64
	if id, ok := middleware.CurrentUserID(c); ok {
		userID = &id
	}

	resp, err := h.service.Create(c.Request.Context(), req.OriginalText, userID)
	if err != nil {
		if errors.Is(err, ErrEmptyInput) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "요약할 텍스트가 없습니다."})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"message": "요약 생성에 실패했습니다."})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) get(c *gin.Context) {
	id, userID, ok := h.summaryAndUser(c)
	if !ok {
		return
	}

	sum, err := h.service.Get(c.Request.Context(), id, userID)
	if err != nil {
		h.respondError(c, err, "본인의 요약만 조회할 수 있습니다.")
		return
	}

	c.JSON(http.StatusOK, sum)
}

func (h *Handler) delete(c *gin.Context) {
	id, userID, ok := h.summaryAndUser(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, userID); err != nil {
		h.respondError(c, err, "본인의 요약만 삭제할 수 있습니다.")
		return
	}

	c.Status(http.StatusOK)
}

func (h *Handler) listMine(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "로그인이 필요한 서비스입니다."})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	summaries, err := h.service.ListByUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "요약 목록 조회에 실패했습니다."})
		return
	}
	if summaries == nil {
		summaries = []Summary{}
	}

	c.JSON(http.StatusOK, gin.H{"summaries": summaries})
}

func (h *Handler) summaryAndUser(c *gin.Context) (summaryID, userID int64, ok bool) {
	userID, hasUser := middleware.CurrentUserID(c)
	if !hasUser {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "로그인이 필요한 서비스입니다."})
		return 0, 0, false
	}

	id, err := strconv.ParseInt(c.Param("summaryId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "잘못된 요약 ID입니다."})
		return 0, 0, false
	}
	return id, userID, true
}

func (h *Handler) respondError(c *gin.Context, err error, ownerMessage string) {
	switch {
	case errors.Is(err, ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "요약을 찾을 수 없습니다."})
	case errors.Is(err, auth.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"message": ownerMessage})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "요약 처리 중 오류가 발생했습니다."})
	}
}

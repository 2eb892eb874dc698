package news

import (
	"net/http"

	"github.com/Hanjarang/news/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Handler exposes the search-index endpoints and the integrated news
// endpoints. All routes here are public; documents are tagged with the
// caller's user id when a session is present.
type Handler struct {
	source  Source
	index   Index
	service *Service
}

func NewHandler(source Source, index Index, service *Service) *Handler {
	return &Handler{source: source, index: index, service: service}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	es := r.Group("/api/v1/elasticsearch")
	es.GET("/health", h.indexHealth)
	es.POST("/news", h.saveDocument)
	es.GET("/news/search", h.randomByKeyword)
	es.GET("/news/latest", h.randomLatest)
	es.GET("/news/category/:category", h.randomByCategory)
	es.GET("/news/natural-language", h.randomByPhrase)
	es.GET("/news/natural-language/search", h.searchByPhrase)

	in := r.Group("/api/v1/integrated-news")
	in.GET("/health", h.serviceHealth)
	in.GET("/search-and-cache", h.searchAndCache)
	in.POST("/cache", h.cacheByKeyword)
	in.GET("/cached", h.searchCached)
	in.GET("/all-sources", h.searchAllSources)
	in.GET("/category/:category", h.cachedByCategory)
	in.POST("/cache-latest", h.cacheLatest)
	in.GET("/natural-language/search-and-cache", h.searchAndCacheByPhrase)
	in.POST("/natural-language/cache", h.cacheByPhrase)
	in.GET("/natural-language/cached", h.searchCachedByPhrase)
}

// tagUser stamps the authenticated caller's id on the document.
func tagUser(c *gin.Context, doc *Document) {
	if userID, ok := middleware.CurrentUserID(c); ok {
		doc.UserID = &userID
	}
}

func (h *Handler) indexHealth(c *gin.Context) {
	if err := h.index.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Elasticsearch 연결 실패"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Elasticsearch 연결 정상"})
}

func (h *Handler) saveDocument(c *gin.Context) {
	var doc Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "잘못된 요청입니다."})
		return
	}

	saved, err := h.index.Save(c.Request.Context(), doc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "뉴스 저장에 실패했습니다."})
		return
	}
	c.JSON(http.StatusOK, saved)
}

func (h *Handler) randomByKeyword(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "keyword가 없습니다."})
		return
	}
	h.respondRandom(c, func() (*Document, error) {
		return h.source.RandomByKeyword(c.Request.Context(), keyword)
	})
}

func (h *Handler) randomLatest(c *gin.Context) {
	h.respondRandom(c, func() (*Document, error) {
		return h.source.RandomLatest(c.Request.Context())
	})
}

func (h *Handler) randomByCategory(c *gin.Context) {
	category := c.Param("category")
	h.respondRandom(c, func() (*Document, error) {
		return h.source.RandomByCategory(c.Request.Context(), category)
	})
}

func (h *Handler) randomByPhrase(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "query가 없습니다."})
		return
	}
	h.respondRandom(c, func() (*Document, error) {
		return h.source.RandomByPhrase(c.Request.Context(), query)
	})
}

func (h *Handler) respondRandom(c *gin.Context, pick func() (*Document, error)) {
	doc, err := pick()
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"message": "뉴스 조회에 실패했습니다."})
		return
	}
	if doc == nil {
		c.Status(http.StatusNotFound)
		return
	}
	tagUser(c, doc)
	c.JSON(http.StatusOK, doc)
}

func (h *Handler) searchByPhrase(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "query가 없습니다."})
		return
	}

	docs, err := h.source.SearchByPhrase(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"message": "뉴스 검색에 실패했습니다."})
		return
	}
	for i := range docs {
		tagUser(c, &docs[i])
	}
	c.JSON(http.StatusOK, docs)
}

func (h *Handler) serviceHealth(c *gin.Context) {
	c.String(http.StatusOK, "통합 뉴스 서비스 정상 작동 중")
}

func (h *Handler) searchAndCache(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "keyword가 없습니다."})
		return
	}

	doc, err := h.service.GetAndCacheByKeyword(c.Request.Context(), keyword)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"message": "뉴스 조회에 실패했습니다."})
		return
	}
	if doc == nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *Handler) cacheByKeyword(c *gin.Context) {
	keyword := c.Query("keyword")
	if keyword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "keyword가 없습니다."})
		return
	}

	if _, err := h.service.CacheByKeyword(c.Request.Context(), keyword); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"message": "뉴스 캐싱에 실패했습니다."})
		return
	}
	c.String(http.StatusOK, "뉴스 캐싱이 완료되었습니다.")
}

func (h *Handler) searchCached(c *gin.Context) {
	keyword := c.Query("keyword")
	docs, err := h.service.SearchCached(c.Request.Context(), keyword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "뉴스 검색에 실패했습니다."})
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (h *Handler) searchAllSources(c *gin.Context) {
	keyword := c.Query("keyword")
	docs, err := h.service.SearchAllSources(c.Request.Context(), keyword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "뉴스 검색에 실패했습니다."})
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (h *Handler) cachedByCategory(c *gin.Context) {
	docs, err := h.service.SearchByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "뉴스 검색에 실패했습니다."})
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (h *Handler) cacheLatest(c *gin.Context) {
	if err := h.service.CacheLatest(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"message": "뉴스 캐싱에 실패했습니다."})
		return
	}
	c.String(http.StatusOK, "최신 뉴스 캐싱이 완료되었습니다.")
}

func (h *Handler) searchAndCacheByPhrase(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "query가 없습니다."})
		return
	}

	doc, err := h.service.GetAndCacheByPhrase(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"message": "뉴스 조회에 실패했습니다."})
		return
	}
	if doc == nil {
		c.Status(http.StatusNotFound)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *Handler) cacheByPhrase(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "query가 없습니다."})
		return
	}

	if _, err := h.service.CacheByPhrase(c.Request.Context(), query); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"message": "뉴스 캐싱에 실패했습니다."})
		return
	}
	c.String(http.StatusOK, "자연어 뉴스 캐싱이 완료되었습니다.")
}

func (h *Handler) searchCachedByPhrase(c *gin.Context) {
	query := c.Query("query")
	docs, err := h.service.SearchCached(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "뉴스 검색에 실패했습니다."})
		return
	}
	c.JSON(http.StatusOK, docs)
}

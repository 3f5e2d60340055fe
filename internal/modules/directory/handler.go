package directory

import (
	"errors"
	"net/http"

	"expertbridge/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public, unauthenticated directory.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/experts", h.ListExperts)
	rg.GET("/experts/:id", h.GetExpert)
	rg.GET("/industries", h.ListIndustries)
	rg.GET("/stats", h.GetStats)
}

// ListExperts handles GET /experts?industry=&search=
func (h *Handler) ListExperts(c *gin.Context) {
	var f Filter
	if err := c.ShouldBindQuery(&f); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeValidation, "Invalid query")
		return
	}

	experts, err := h.service.Search(c.Request.Context(), f)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, err.Error())
		return
	}
	response.Success(c, http.StatusOK, gin.H{"experts": experts, "count": len(experts)})
}

func (h *Handler) GetExpert(c *gin.Context) {
	e, err := h.service.GetExpert(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeNotFound, "Expert not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, err.Error())
		return
	}
	response.Success(c, http.StatusOK, gin.H{"expert": e})
}

func (h *Handler) ListIndustries(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"industries": Industries})
}

func (h *Handler) GetStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.CodeInternal, err.Error())
		return
	}
	response.Success(c, http.StatusOK, stats)
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/helpdesk-portal/helpdesk-service/internal/auth"
	"github.com/helpdesk-portal/helpdesk-service/internal/service"
	"github.com/rs/zerolog"
)

type CategoryHandler struct {
	svc *service.CategoryService
	log zerolog.Logger
}

func NewCategoryHandler(svc *service.CategoryService, log zerolog.Logger) *CategoryHandler {
	return &CategoryHandler{svc: svc, log: log}
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.svc.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	cat, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

// Subcategories handles GET /categories/:id/subcategories.
func (h *CategoryHandler) Subcategories(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	subs, err := h.svc.Subcategories(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	actor, _ := auth.ActorFrom(c)
	var req service.CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	cat, err := h.svc.Create(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	actor, _ := auth.ActorFrom(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req service.CategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	cat, err := h.svc.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	actor, _ := auth.ActorFrom(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category deleted successfully"})
}

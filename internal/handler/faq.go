package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/helpdesk-portal/helpdesk-service/internal/auth"
	"github.com/helpdesk-portal/helpdesk-service/internal/service"
	"github.com/rs/zerolog"
)

type FaqHandler struct {
	svc *service.FaqService
	log zerolog.Logger
}

func NewFaqHandler(svc *service.FaqService, log zerolog.Logger) *FaqHandler {
	return &FaqHandler{svc: svc, log: log}
}

// List handles GET /faqs, optionally filtered by categoryId.
func (h *FaqHandler) List(c *gin.Context) {
	var categoryID *int64
	if v := c.Query("categoryId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid categoryId"})
			return
		}
		categoryID = &id
	}
	faqs, err := h.svc.List(c.Request.Context(), categoryID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, faqs)
}

// Get handles GET /faqs/:id and counts the view.
func (h *FaqHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	faq, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, faq)
}

func (h *FaqHandler) Create(c *gin.Context) {
	actor, _ := auth.ActorFrom(c)
	var req service.FaqInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	faq, err := h.svc.Create(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, faq)
}

func (h *FaqHandler) Update(c *gin.Context) {
	actor, _ := auth.ActorFrom(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req service.FaqInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	faq, err := h.svc.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, faq)
}

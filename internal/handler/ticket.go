package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/helpdesk-portal/helpdesk-service/internal/auth"
	"github.com/helpdesk-portal/helpdesk-service/internal/exporter"
	"github.com/helpdesk-portal/helpdesk-service/internal/importer"
	"github.com/helpdesk-portal/helpdesk-service/internal/kafka"
	"github.com/helpdesk-portal/helpdesk-service/internal/model"
	"github.com/helpdesk-portal/helpdesk-service/internal/notify"
	"github.com/helpdesk-portal/helpdesk-service/internal/pagination"
	"github.com/helpdesk-portal/helpdesk-service/internal/policy"
	"github.com/helpdesk-portal/helpdesk-service/internal/service"
	"github.com/rs/zerolog"
)

type TicketHandler struct {
	svc      *service.TicketService
	importer *importer.Importer
	exporter *exporter.Exporter
	producer kafka.TicketEventProducer
	notify   *notify.Client
	log      zerolog.Logger
}

func NewTicketHandler(svc *service.TicketService, imp *importer.Importer, exp *exporter.Exporter, producer kafka.TicketEventProducer, notifier *notify.Client, log zerolog.Logger) *TicketHandler {
	return &TicketHandler{svc: svc, importer: imp, exporter: exp, producer: producer, notify: notifier, log: log}
}

// publish fans a lifecycle event out to the Kafka topic and the
// notification collaborator, both best-effort.
func (h *TicketHandler) publish(event string, t *model.Ticket) {
	if h.producer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		go func() {
			defer cancel()
			h.producer.ProduceTicketEvent(ctx, event, t)
		}()
	}
	if h.notify != nil {
		h.notify.TicketEventAsync(event, t)
	}
}

// parseID reads a positive int64 path parameter.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}

// List handles GET /tickets. With both page and limit present the response
// carries pagination metadata and status counts; otherwise it is a bare
// array of the actor's visible tickets.
func (h *TicketHandler) List(c *gin.Context) {
	actor, _ := auth.ActorFrom(c)

	var filter service.TicketFilter
	filter.Search = c.Query("search")
	filter.Status = c.Query("status")
	filter.Priority = c.Query("priority")
	if v := c.Query("categoryId"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			filter.CategoryID = &id
		}
	}
	if v := c.Query("assignedToId"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil && id >= 0 {
			filter.AssignedToID = &id
		}
	}

	var page *pagination.Page
	pageStr, limitStr := c.Query("page"), c.Query("limit")
	if pageStr != "" && limitStr != "" {
		p, errP := strconv.Atoi(pageStr)
		l, errL := strconv.Atoi(limitStr)
		if errP != nil || errL != nil || p < 1 || l < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "page and limit must be positive integers"})
			return
		}
		page = &pagination.Page{Number: p, Limit: l}
	}

	list, err := h.svc.List(c.Request.Context(), actor, filter, page)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if page == nil {
		c.JSON(http.StatusOK, list.Tickets)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *TicketHandler) Get(c *gin.Context) {
	actor, _ := auth.ActorFrom(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *TicketHandler) Create(c *gin.Context) {
	actor, _ := auth.ActorFrom(c)
	var req service.TicketCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	t, err := h.svc.Create(c.Request.Context(), actor, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	h.publish("ticket.created", t)
	c.JSON(http.StatusCreated, t)
}

func (h *TicketHandler) Update(c *gin.Context) {
	actor, _ := auth.ActorFrom(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req policy.TicketUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	t, err := h.svc.Update(c.Request.Context(), actor, id, req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	h.publish("ticket.updated", t)
	c.JSON(http.StatusOK, t)
}

func (h *TicketHandler) Delete(c *gin.Context) {
	actor, _ := auth.ActorFrom(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	t, err := h.svc.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, h.log, err)
		return
	}
	h.publish("ticket.deleted", t)
	c.JSON(http.StatusOK, gin.H{"message": "ticket deleted successfully"})
}

// Import handles POST /tickets/import: a CSV body (or multipart csvFile
// field) streamed through the reconciliation pipeline.
func (h *TicketHandler) Import(c *gin.Context) {
	actor, _ := auth.ActorFrom(c)

	body := c.Request.Body
	if file, err := c.FormFile("csvFile"); err == nil {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot read uploaded file"})
			return
		}
		defer f.Close()
		body = f
	}

	result, err := h.importer.Run(c.Request.Context(), actor, body)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Export handles GET /tickets/export: the actor's full role-scoped ticket
// set as a CSV download.
func (h *TicketHandler) Export(c *gin.Context) {
	actor, _ := auth.ActorFrom(c)
	filename := "tickets_export_" + time.Now().Format("20060102_150405") + ".csv"
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	if _, err := h.exporter.Write(c.Request.Context(), actor, c.Writer); err != nil {
		h.log.Error().Err(err).Msg("csv export failed")
	}
}

// Comments handles GET /tickets/:id/comments.
func (h *TicketHandler) Comments(c *gin.Context) {
	actor, _ := auth.ActorFrom(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	comments, err := h.svc.Comments(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

type createCommentRequest struct {
	Content    string `json:"content"`
	IsInternal bool   `json:"isInternal"`
}

// AddComment handles POST /tickets/:id/comments.
func (h *TicketHandler) AddComment(c *gin.Context) {
	actor, _ := auth.ActorFrom(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	comment, err := h.svc.AddComment(c.Request.Context(), actor, id, req.Content, req.IsInternal)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if t, err := h.svc.Get(c.Request.Context(), actor, id); err == nil {
		h.publish("comment.added", t)
	}
	c.JSON(http.StatusCreated, comment)
}

// Dashboard handles GET /dashboard.
func (h *TicketHandler) Dashboard(c *gin.Context) {
	actor, _ := auth.ActorFrom(c)
	stats, err := h.svc.Dashboard(c.Request.Context(), actor)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

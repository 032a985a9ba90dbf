package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/registrar-queue/internal/audit"
	"github.com/BruksfildServices01/registrar-queue/internal/domain/catalog"
	"github.com/BruksfildServices01/registrar-queue/internal/httperr"
	"github.com/BruksfildServices01/registrar-queue/internal/httpresp"
	"github.com/BruksfildServices01/registrar-queue/internal/middleware"
	"github.com/BruksfildServices01/registrar-queue/internal/models"
)

type ServiceHandler struct {
	repo  catalog.Repository
	audit *audit.Dispatcher
	log   zerolog.Logger
}

func NewServiceHandler(repo catalog.Repository, audit *audit.Dispatcher, log zerolog.Logger) *ServiceHandler {
	return &ServiceHandler{repo: repo, audit: audit, log: log}
}

type ServiceRequest struct {
	ID           string   `json:"id"`
	Name         string   `json:"name" binding:"required"`
	Requirements []string `json:"requirements"`
}

// --------------------------------------------------
// Public
// --------------------------------------------------

func (h *ServiceHandler) List(c *gin.Context) {
	services, err := h.repo.ListServices(c.Request.Context())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	if services == nil {
		services = []models.Service{}
	}
	httpresp.OK(c, gin.H{"services": services})
}

func (h *ServiceHandler) Get(c *gin.Context) {
	s, err := h.repo.GetService(c.Request.Context(), c.Param("id"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, gin.H{"service": s})
}

// --------------------------------------------------
// Admin
// --------------------------------------------------

func (h *ServiceHandler) Create(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Service name is required")
		return
	}

	s := &models.Service{
		ID:           req.ID,
		Name:         req.Name,
		Requirements: req.Requirements,
	}
	if err := h.repo.CreateService(c.Request.Context(), s); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	h.dispatch(c, "service_created", s.ID)
	httpresp.Created(c, gin.H{"service": s})
}

func (h *ServiceHandler) Update(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Service name is required")
		return
	}

	s := &models.Service{
		ID:           c.Param("id"),
		Name:         req.Name,
		Requirements: req.Requirements,
	}
	if err := h.repo.UpdateService(c.Request.Context(), s); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	h.dispatch(c, "service_updated", s.ID)
	httpresp.OK(c, gin.H{"service": s})
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.repo.DeleteService(c.Request.Context(), id); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	h.dispatch(c, "service_deleted", id)
	httpresp.Message(c, "Service deleted successfully")
}

func (h *ServiceHandler) dispatch(c *gin.Context, action, id string) {
	h.audit.Dispatch(audit.Event{
		UserID:   middleware.IdentityFrom(c).UserID,
		Action:   action,
		Entity:   "service",
		EntityID: id,
	})
}

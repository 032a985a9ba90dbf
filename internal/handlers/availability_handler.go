package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/registrar-queue/internal/audit"
	domain "github.com/BruksfildServices01/registrar-queue/internal/domain/appointment"
	"github.com/BruksfildServices01/registrar-queue/internal/domain/catalog"
	"github.com/BruksfildServices01/registrar-queue/internal/httperr"
	"github.com/BruksfildServices01/registrar-queue/internal/httpresp"
	"github.com/BruksfildServices01/registrar-queue/internal/middleware"
	"github.com/BruksfildServices01/registrar-queue/internal/models"
)

type AvailabilityHandler struct {
	repo  catalog.Repository
	audit *audit.Dispatcher
	log   zerolog.Logger
}

func NewAvailabilityHandler(repo catalog.Repository, audit *audit.Dispatcher, log zerolog.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{repo: repo, audit: audit, log: log}
}

type AvailabilityRequest struct {
	Date  string `json:"date" binding:"required"`
	Time  string `json:"time" binding:"required"`
	Slots *int   `json:"slots" binding:"omitempty,min=0"`
}

func (h *AvailabilityHandler) List(c *gin.Context) {
	list, err := h.repo.ListAvailability(c.Request.Context())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	if list == nil {
		list = []models.Availability{}
	}
	httpresp.OK(c, gin.H{"availabilities": list})
}

// Upsert keeps one record per date and time; posting the same pair again
// replaces its slot count.
func (h *AvailabilityHandler) Upsert(c *gin.Context) {
	var req AvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Date and time are required")
		return
	}
	if !domain.ValidDate(req.Date) {
		httperr.BadRequest(c, "invalid_date", "Date must be in YYYY-MM-DD format")
		return
	}

	// only an omitted count falls back to the default; 0 closes the slot
	slots := catalog.DefaultAvailabilitySlots
	if req.Slots != nil {
		slots = *req.Slots
	}

	a := &models.Availability{
		Date:  req.Date,
		Time:  req.Time,
		Slots: slots,
	}
	if err := h.repo.UpsertAvailability(c.Request.Context(), a); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.IdentityFrom(c).UserID,
		Action:   "availability_upserted",
		Entity:   "availability",
		EntityID: a.ID,
		Metadata: map[string]any{"date": a.Date, "time": a.Time, "slots": a.Slots},
	})

	httpresp.Created(c, gin.H{"availability": a})
}

func (h *AvailabilityHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.repo.DeleteAvailability(c.Request.Context(), id); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   middleware.IdentityFrom(c).UserID,
		Action:   "availability_deleted",
		Entity:   "availability",
		EntityID: id,
	})

	httpresp.Message(c, "Availability deleted successfully")
}

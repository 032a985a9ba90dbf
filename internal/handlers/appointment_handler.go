package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/registrar-queue/internal/domain/appointment"
	"github.com/BruksfildServices01/registrar-queue/internal/dto"
	"github.com/BruksfildServices01/registrar-queue/internal/httperr"
	"github.com/BruksfildServices01/registrar-queue/internal/httpresp"
	"github.com/BruksfildServices01/registrar-queue/internal/middleware"
	ucappointment "github.com/BruksfildServices01/registrar-queue/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create *ucappointment.CreateAppointment
	update *ucappointment.UpdateAppointment
	cancel *ucappointment.CancelAppointment
	get    *ucappointment.GetAppointment
	listMy *ucappointment.ListMyAppointments
	list   *ucappointment.ListAllAppointments
	log    zerolog.Logger
}

func NewAppointmentHandler(
	create *ucappointment.CreateAppointment,
	update *ucappointment.UpdateAppointment,
	cancel *ucappointment.CancelAppointment,
	get *ucappointment.GetAppointment,
	listMy *ucappointment.ListMyAppointments,
	list *ucappointment.ListAllAppointments,
	log zerolog.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		create: create,
		update: update,
		cancel: cancel,
		get:    get,
		listMy: listMy,
		list:   list,
		log:    log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AppointmentRequest struct {
	Name    string  `json:"name" binding:"required"`
	Email   string  `json:"email" binding:"required,email"`
	Service string  `json:"service" binding:"required"`
	Date    string  `json:"date" binding:"required"`
	Time    *string `json:"time"`
}

func (r AppointmentRequest) fields() domain.Fields {
	return domain.Fields{
		Name:    r.Name,
		Email:   r.Email,
		Service: r.Service,
		Date:    r.Date,
		Time:    r.Time,
	}
}

func bindAppointment(c *gin.Context) (AppointmentRequest, bool) {
	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Name, a valid email, service and date are required")
		return req, false
	}
	return req, true
}

// ======================================================
// CLIENT
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	req, ok := bindAppointment(c)
	if !ok {
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), ucappointment.CreateAppointmentInput{
		UserID: middleware.IdentityFrom(c).UserID,
		Fields: req.fields(),
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, dto.AppointmentResponse{Appointment: ap})
}

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	aps, err := h.listMy.Execute(c.Request.Context(), middleware.IdentityFrom(c).UserID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentsResponse(aps))
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	ap, err := h.get.Execute(c.Request.Context(), middleware.IdentityFrom(c).UserID, c.Param("id"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.AppointmentResponse{Appointment: ap})
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	req, ok := bindAppointment(c)
	if !ok {
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), ucappointment.UpdateAppointmentInput{
		ID:     c.Param("id"),
		UserID: middleware.IdentityFrom(c).UserID,
		Fields: req.fields(),
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.AppointmentResponse{Appointment: ap})
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	err := h.cancel.Execute(c.Request.Context(), middleware.IdentityFrom(c).UserID, c.Param("id"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Message(c, "Appointment cancelled successfully")
}

// ======================================================
// ADMIN
// ======================================================

func (h *AppointmentHandler) ListAll(c *gin.Context) {
	aps, err := h.list.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentsResponse(aps))
}

package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/registrar-queue/internal/dto"
	"github.com/BruksfildServices01/registrar-queue/internal/httperr"
	"github.com/BruksfildServices01/registrar-queue/internal/httpresp"
	"github.com/BruksfildServices01/registrar-queue/internal/middleware"
	"github.com/BruksfildServices01/registrar-queue/internal/usecase/queue"
)

type QueueHandler struct {
	current *queue.GetCurrentQueue
	all     *queue.GetGlobalQueue
	log     zerolog.Logger
}

func NewQueueHandler(
	current *queue.GetCurrentQueue,
	all *queue.GetGlobalQueue,
	log zerolog.Logger,
) *QueueHandler {
	return &QueueHandler{current: current, all: all, log: log}
}

// Current answers 200 with a null queueNumber when the caller has nothing
// booked.
func (h *QueueHandler) Current(c *gin.Context) {
	pos, err := h.current.Execute(c.Request.Context(), middleware.IdentityFrom(c).UserID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if pos.Appointment == nil {
		httpresp.OK(c, dto.CurrentQueueDTO{Message: "No active appointments"})
		return
	}

	httpresp.OK(c, dto.CurrentQueueDTO{
		QueueNumber: pos.QueueNumber,
		Appointment: pos.Appointment,
	})
}

func (h *QueueHandler) All(c *gin.Context) {
	aps, err := h.all.Execute(c.Request.Context())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.NewAppointmentsResponse(aps))
}

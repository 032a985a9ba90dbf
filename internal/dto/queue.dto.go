package dto

import "github.com/BruksfildServices01/registrar-queue/internal/models"

// CurrentQueueDTO keeps queueNumber in the body as null when the caller has
// no active appointment.
type CurrentQueueDTO struct {
	QueueNumber *int                `json:"queueNumber"`
	Appointment *models.Appointment `json:"appointment,omitempty"`
	Message     string              `json:"message,omitempty"`
}

type AppointmentResponse struct {
	Appointment *models.Appointment `json:"appointment"`
}

type AppointmentsResponse struct {
	Appointments []models.Appointment `json:"appointments"`
}

// NewAppointmentsResponse renders an empty list as [] rather than null.
func NewAppointmentsResponse(aps []models.Appointment) AppointmentsResponse {
	if aps == nil {
		aps = []models.Appointment{}
	}
	return AppointmentsResponse{Appointments: aps}
}

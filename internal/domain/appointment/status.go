package appointment

// ===============================
// Appointment Status
// ===============================

// Status of a stored appointment. Cancellation deletes the record, so
// confirmed is the only state that is ever persisted and the only one that
// takes part in queue numbering.
type Status string

const (
	StatusConfirmed Status = "confirmed"
)

// InitialStatus is the status assigned on creation.
func InitialStatus() Status {
	return StatusConfirmed
}

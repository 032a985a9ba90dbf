package models

import "time"

// Appointment is a citizen's reservation for a registrar service on a date.
// QueueNumber is the position within the appointment's date and
// GlobalQueueNumber the position across every date; both are written only by
// the renumbering engine and stay nil until the first pass for the scope.
type Appointment struct {
	ID string `gorm:"primaryKey;size:36" json:"id"`

	UserID string `gorm:"size:36;not null;index" json:"userId"`
	User   User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Name    string  `gorm:"size:100;not null" json:"name"`
	Email   string  `gorm:"size:100;not null" json:"email"`
	Service string  `gorm:"size:100;not null" json:"service"`
	Date    string  `gorm:"size:10;not null;index:idx_appointments_scope,priority:2" json:"date"`
	Time    *string `gorm:"size:20" json:"time"`

	Status string `gorm:"size:20;not null;default:'confirmed';index:idx_appointments_scope,priority:1" json:"status"`

	QueueNumber       *int `json:"queueNumber"`
	GlobalQueueNumber *int `json:"globalQueueNumber"`

	CreatedAt time.Time  `gorm:"not null;index" json:"createdAt"`
	UpdatedAt *time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
}

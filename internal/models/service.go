package models

// Service is a registrar service offered for booking (birth certificate,
// marriage certificate, ...). Appointments reference it by name only.
type Service struct {
	ID           string   `gorm:"primaryKey;size:64" json:"id"`
	Name         string   `gorm:"size:100;not null;index" json:"name"`
	Requirements []string `gorm:"type:text;serializer:json" json:"requirements"`
}

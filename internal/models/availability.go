package models

// Availability is an open date/time window with a number of bookable slots.
type Availability struct {
	ID    string `gorm:"primaryKey;size:36" json:"id"`
	Date  string `gorm:"size:10;not null;uniqueIndex:idx_availability_slot,priority:1" json:"date"`
	Time  string `gorm:"size:20;not null;uniqueIndex:idx_availability_slot,priority:2" json:"time"`
	Slots int    `gorm:"not null" json:"slots"`
}

package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	TimeEntryModeManual = "manual"
	TimeEntryModeTimer  = "timer"
)

type TimeEntry struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	ProjectID       uint      `gorm:"not null;index" json:"projectId"`
	PersonID        *uint     `gorm:"index" json:"personId"`
	Mode            string    `gorm:"not null;default:manual" json:"mode"`
	Date            time.Time `gorm:"type:date;not null" json:"date"`
	StartAt         time.Time `gorm:"not null" json:"startAt"`
	EndAt           time.Time `gorm:"not null" json:"endAt"`
	BreakMinutes    int       `gorm:"not null;default:0" json:"breakMinutes"`
	DurationMinutes int       `gorm:"not null;default:0" json:"durationMinutes"`
	Notes           *string   `json:"notes"`
	OwnerUserID     uint      `gorm:"not null;index" json:"ownerUserId"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// DurationMinutes returns the worked minutes between start and end minus the
// break, never negative.
func DurationMinutes(startAt time.Time, endAt time.Time, breakMinutes int) int {
	worked := int(endAt.Sub(startAt).Round(time.Minute)/time.Minute) - breakMinutes
	if worked < 0 {
		return 0
	}
	return worked
}

type Timer struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProjectID   uint      `gorm:"not null;index" json:"projectId"`
	PersonID    *uint     `json:"personId"`
	OwnerUserID uint      `gorm:"not null;uniqueIndex" json:"ownerUserId"`
	StartedAt   time.Time `gorm:"not null" json:"startedAt"`
	Notes       *string   `json:"notes"`
}

type Expense struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ProjectID   uint      `gorm:"not null;index" json:"projectId"`
	Amount      float64   `gorm:"not null" json:"amount"`
	Description string    `gorm:"not null" json:"description"`
	Company     string    `gorm:"not null" json:"company"`
	CompanyID   *uint     `json:"companyId"`
	InvoiceURL  *string   `json:"invoiceUrl"`
	Date        time.Time `gorm:"type:date;not null" json:"date"`
	OwnerUserID uint      `gorm:"not null;index" json:"ownerUserId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type JournalEntry struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	ProjectID   uint           `gorm:"not null;index" json:"projectId"`
	Date        time.Time      `gorm:"type:date;not null" json:"date"`
	Title       string         `gorm:"not null" json:"title"`
	Notes       *string        `json:"notes"`
	Tags        datatypes.JSON `json:"tags,omitempty"`
	Weather     datatypes.JSON `json:"weather,omitempty"`
	OwnerUserID uint           `gorm:"not null;index" json:"ownerUserId"`
	Photos      []Photo        `gorm:"foreignKey:JournalEntryID" json:"photos"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type Photo struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	JournalEntryID uint      `gorm:"not null;index" json:"journalEntryId"`
	URL            string    `gorm:"not null" json:"url"`
	CreatedAt      time.Time `json:"createdAt"`
}

// WeatherSnapshot is the structured blob persisted on JournalEntry.Weather.
type WeatherSnapshot struct {
	Temperature int    `json:"temperature"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Date        string `json:"date"`
}

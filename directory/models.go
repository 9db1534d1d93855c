// Package directory is the conference data layer: registered users,
// scheduled sessions, the business directory, and organizations. It backs
// the profile lookup the orchestrator runs before guardrails and every
// read the specialist agents' tools perform.
package directory

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a registered conference account. RegistrationID and QRCode are
// the two external identifiers a client may present; either resolves to
// the same row.
type User struct {
	ID             string `gorm:"primaryKey;size:64"`
	RegistrationID string `gorm:"uniqueIndex;size:64"`
	QRCode         string `gorm:"index;size:128"`
	FirstName      string `gorm:"size:128"`
	LastName       string `gorm:"size:128"`
	Email          string `gorm:"size:256"`
	Attendee       bool
	ConferenceName string `gorm:"size:256"`
	OrganizationID string `gorm:"index;size:64"`

	Company           string `gorm:"size:256"`
	Location          string `gorm:"size:256"`
	Title             string `gorm:"size:256"`
	PrimaryStream     string `gorm:"size:128"`
	SecondaryStream   string `gorm:"size:128"`
	ConferencePackage string `gorm:"size:128"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName joins the name parts, tolerating either being empty.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}

// Session is one scheduled conference slot. ConferenceDate is the
// calendar day in ISO form (2025-07-15); StartTime and EndTime carry the
// full timestamps.
type Session struct {
	ID             string `gorm:"primaryKey;size:64"`
	Topic          string `gorm:"size:512"`
	SpeakerName    string `gorm:"index;size:256"`
	RoomName       string `gorm:"size:128"`
	TrackName      string `gorm:"index;size:128"`
	ConferenceDate string `gorm:"index;size:10"`
	StartTime      time.Time
	EndTime        time.Time
	Description    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Business is a directory listing registered by a user.
type Business struct {
	ID                 string `gorm:"primaryKey;size:64"`
	UserID             string `gorm:"index;size:64"`
	CompanyName        string `gorm:"index;size:256"`
	IndustrySector     string `gorm:"size:256"`
	SubSector          string `gorm:"size:256"`
	Location           string `gorm:"size:256"`
	PositionTitle      string `gorm:"size:256"`
	LegalStructure     string `gorm:"size:128"`
	EstablishmentYear  string `gorm:"size:16"`
	ProductsOrServices string
	BriefDescription   string
	Website            string `gorm:"size:512"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Organization is the body a user belongs to.
type Organization struct {
	ID           string `gorm:"primaryKey;size:64"`
	Name         string `gorm:"size:256"`
	Description  string
	Location     string `gorm:"size:256"`
	Website      string `gorm:"size:512"`
	ContactEmail string `gorm:"size:256"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &Session{}, &Business{}, &Organization{})
}

func newRowID() string {
	return uuid.NewString()
}

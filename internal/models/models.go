package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	UID          string `gorm:"uniqueIndex;not null" json:"uid"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	DisplayName  string `json:"display_name"`
	PasswordHash string `json:"-"`
}

// Status labels a job application's place in the pipeline. Any value may
// overwrite any other; there is no enforced transition order.
type Status string

const (
	StatusApplied     Status = "Applied"
	StatusRejected    Status = "Rejected"
	StatusPhoneScreen Status = "Phone Screen"
	StatusInterview   Status = "Interview"
	StatusFinalRound  Status = "Final Round"
	StatusOffer       Status = "Offer"
	StatusAccepted    Status = "Accepted"
	StatusDeclined    Status = "Declined"
)

// StatusOptions is the display order for tabs, filters and distributions.
var StatusOptions = []Status{
	StatusApplied,
	StatusRejected,
	StatusPhoneScreen,
	StatusInterview,
	StatusFinalRound,
	StatusOffer,
	StatusAccepted,
	StatusDeclined,
}

func (s Status) Valid() bool {
	for _, opt := range StatusOptions {
		if s == opt {
			return true
		}
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

var PriorityOptions = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

type InterviewType string

const (
	InterviewBehavioral  InterviewType = "Behavioral"
	InterviewTechnical   InterviewType = "Technical"
	InterviewCaseStudy   InterviewType = "Case Study"
	InterviewPanel       InterviewType = "Panel"
	InterviewPhoneScreen InterviewType = "Phone Screen"
	InterviewOnsite      InterviewType = "Onsite"
	InterviewFinalRound  InterviewType = "Final Round"
)

var InterviewTypes = []InterviewType{
	InterviewBehavioral,
	InterviewTechnical,
	InterviewCaseStudy,
	InterviewPanel,
	InterviewPhoneScreen,
	InterviewOnsite,
	InterviewFinalRound,
}

// Interview is one logged interview event nested under a Job. Entries are
// append-only from the tracker's perspective.
type Interview struct {
	Date         string        `json:"date"`
	Type         InterviewType `json:"type"`
	Notes        string        `json:"notes"`
	Strengths    string        `json:"strengths"`
	Improvements string        `json:"improvements"`
	Rating       int           `json:"rating"` // self-assessed, 1-10
}

// InterviewList stores the nested interview array as a single JSONB column,
// keeping the document shape the records had in the original store.
type InterviewList []Interview

func (l InterviewList) Value() (driver.Value, error) {
	if l == nil {
		l = InterviewList{}
	}
	return json.Marshal(l)
}

func (l *InterviewList) Scan(value interface{}) error {
	if value == nil {
		*l = InterviewList{}
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported interview list type %T", value)
	}
	if len(b) == 0 {
		*l = InterviewList{}
		return nil
	}
	return json.Unmarshal(b, l)
}

// Job is one tracked job application.
type Job struct {
	ID        uint           `gorm:"primaryKey" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// RecordID is the store-assigned identifier handed back to clients.
	// ClientID preserves whatever placeholder the client generated before
	// the first persist.
	RecordID string `gorm:"uniqueIndex;not null" json:"id"`
	ClientID string `json:"client_id,omitempty"`
	UserID   string `gorm:"index;not null" json:"user_id"`

	Company     string        `gorm:"not null" json:"company"`
	Position    string        `gorm:"not null" json:"position"`
	DateApplied string        `json:"date_applied"`
	Status      Status        `gorm:"default:'Applied'" json:"status"`
	Priority    Priority      `gorm:"default:'Medium'" json:"priority"`
	Notes       string        `gorm:"type:text" json:"notes"`
	Interviews  InterviewList `gorm:"type:jsonb" json:"interviews"`
}

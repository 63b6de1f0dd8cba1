package dtos

import "github.com/justsurfingit/career-compass/internal/models"

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	DisplayName string `json:"display_name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ResetPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type JobRequest struct {
	Company     string `json:"company" binding:"required"`
	Position    string `json:"position" binding:"required"`
	DateApplied string `json:"date_applied"`
	Status      string `json:"status"`   // defaults to "Applied" if empty
	Priority    string `json:"priority"` // defaults to "Medium" if empty
	Notes       string `json:"notes"`
	ClientID    string `json:"client_id"`
}

// ToModel builds the draft the controller persists. Interview entries are
// never set through this request; they have their own endpoint.
func (r JobRequest) ToModel() models.Job {
	return models.Job{
		ClientID:    r.ClientID,
		Company:     r.Company,
		Position:    r.Position,
		DateApplied: r.DateApplied,
		Status:      models.Status(r.Status),
		Priority:    models.Priority(r.Priority),
		Notes:       r.Notes,
		Interviews:  models.InterviewList{},
	}
}

type InterviewRequest struct {
	Date         string `json:"date"`
	Type         string `json:"type"`
	Notes        string `json:"notes"`
	Strengths    string `json:"strengths"`
	Improvements string `json:"improvements"`
	Rating       int    `json:"rating" binding:"required,min=1,max=10"`
}

func (r InterviewRequest) ToModel() models.Interview {
	return models.Interview{
		Date:         r.Date,
		Type:         models.InterviewType(r.Type),
		Notes:        r.Notes,
		Strengths:    r.Strengths,
		Improvements: r.Improvements,
		Rating:       r.Rating,
	}
}

type JobExtractionRequest struct {
	RawHTML string `json:"raw_html" binding:"required"`
	URL     string `json:"url"`
}

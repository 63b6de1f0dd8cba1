package tracker

import (
	"time"

	"github.com/justsurfingit/career-compass/internal/models"
)

// Tab is the active tracker tab.
type Tab string

const (
	TabDashboard    Tab = "dashboard"
	TabApplications Tab = "applications"
	TabInsights     Tab = "insights"
)

// Modal is the overlay layered on top of the active tab.
type Modal string

const (
	ModalNone           Modal = ""
	ModalInterviewForm  Modal = "interview_form"
	ModalJobDetails     Modal = "job_details"
	ModalAnalysisResult Modal = "analysis_result"
)

// ViewMode is the applications-tab layout toggle.
type ViewMode string

const (
	ViewCards ViewMode = "cards"
	ViewTable ViewMode = "table"
)

// FilterAll shows every job regardless of status.
const FilterAll = "All"

// Theme is carried as a label only; rendering it is not this package's
// business.
type Theme string

const (
	ThemeDefault  Theme = "default"
	ThemeDark     Theme = "dark"
	ThemeColorful Theme = "colorful"
)

// State is the whole of the tracker's session state: the authoritative
// in-memory job collection plus the form drafts and view selections. It only
// changes through Controller operations.
type State struct {
	Jobs []models.Job

	Draft   models.Job
	Editing bool

	InterviewDraft models.Interview

	Filter     string
	View       ViewMode
	ActiveTab  Tab
	Modal      Modal
	Theme      Theme
	SelectedID string

	// LastError records the most recent store failure so a surface can
	// render it; the collection itself is never touched on failure.
	LastError string
}

// NewState returns the session state a user starts with.
func NewState() State {
	return State{
		Jobs:           []models.Job{},
		Draft:          NewJobDraft(),
		InterviewDraft: NewInterviewDraft(),
		Filter:         FilterAll,
		View:           ViewCards,
		ActiveTab:      TabDashboard,
		Modal:          ModalNone,
		Theme:          ThemeDefault,
	}
}

// NewJobDraft is the blank job form.
func NewJobDraft() models.Job {
	return models.Job{
		Status:     models.StatusApplied,
		Priority:   models.PriorityMedium,
		Interviews: models.InterviewList{},
	}
}

// NewInterviewDraft is the blank interview form: today's date, behavioral,
// mid-scale rating.
func NewInterviewDraft() models.Interview {
	return models.Interview{
		Date:   time.Now().Format("2006-01-02"),
		Type:   models.InterviewBehavioral,
		Rating: 5,
	}
}

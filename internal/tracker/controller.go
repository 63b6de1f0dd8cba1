// Package tracker holds the application state controller and the view router:
// the single source of truth for a user's job collection, form drafts and
// view selections. Every mutation goes through the record store first and is
// only mirrored locally once the store call succeeds, so local and durable
// state cannot drift.
package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/justsurfingit/career-compass/internal/analytics"
	"github.com/justsurfingit/career-compass/internal/apperr"
	"github.com/justsurfingit/career-compass/internal/models"
	"go.uber.org/zap"
)

// RecordStore is what the controller needs from the persistence side.
type RecordStore interface {
	Create(ctx context.Context, userID string, job models.Job) (models.Job, error)
	Update(ctx context.Context, recordID string, patch models.Job) (models.Job, error)
	Delete(ctx context.Context, recordID string) error
	ListByUser(ctx context.Context, userID string) ([]models.Job, error)
}

// Controller orchestrates one user's session. User actions arrive from the
// HTTP surface, so state access is serialized with a mutex even though each
// action issues at most one store call at a time.
type Controller struct {
	store RecordStore
	log   *zap.Logger

	mu     sync.Mutex
	state  State
	userID string
}

func NewController(store RecordStore, log *zap.Logger) *Controller {
	return &Controller{
		store: store,
		log:   log,
		state: NewState(),
	}
}

// UserID reports whose session the controller currently holds, or "" while
// signed out.
func (c *Controller) UserID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.userID
}

// Snapshot returns a copy of the current session state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Jobs = append([]models.Job(nil), c.state.Jobs...)
	return s
}

// LoadJobs replaces the in-memory collection with the user's stored jobs,
// newest first. On failure the prior collection is kept untouched.
func (c *Controller) LoadJobs(ctx context.Context, userID string) error {
	jobs, err := c.store.ListByUser(ctx, userID)
	if err != nil {
		c.log.Error("failed to fetch jobs", zap.String("user_id", userID), zap.Error(err))
		c.setLastError(err)
		return err
	}

	c.mu.Lock()
	c.userID = userID
	c.state.Jobs = jobs
	c.state.LastError = ""
	c.mu.Unlock()

	c.log.Info("jobs loaded", zap.String("user_id", userID), zap.Int("count", len(jobs)))
	return nil
}

// CreateJob persists the draft and, on success, prepends the store-assigned
// record to the collection and clears the draft. An empty company or position
// rejects the submission before any store call; a store failure keeps both
// the collection and the draft so the user can retry.
func (c *Controller) CreateJob(ctx context.Context, draft models.Job) (*models.Job, error) {
	if draft.Company == "" || draft.Position == "" {
		return nil, apperr.Validation("company and position are required")
	}

	if draft.DateApplied == "" {
		draft.DateApplied = time.Now().Format("2006-01-02")
	}
	if draft.Interviews == nil {
		draft.Interviews = models.InterviewList{}
	}
	if draft.ClientID == "" {
		draft.ClientID = uuid.NewString()
	}

	c.mu.Lock()
	userID := c.userID
	c.mu.Unlock()

	created, err := c.store.Create(ctx, userID, draft)
	if err != nil {
		c.log.Error("failed to save job", zap.Error(err))
		c.setLastError(err)
		return nil, err
	}

	c.mu.Lock()
	c.state.Jobs = append([]models.Job{created}, c.state.Jobs...)
	c.state.Draft = NewJobDraft()
	c.state.Editing = false
	c.state.LastError = ""
	c.mu.Unlock()

	c.log.Info("job created", zap.String("record_id", created.RecordID), zap.String("company", created.Company))
	return &created, nil
}

// UpdateJob persists the merged record and, on success, replaces the matching
// in-memory entry with the store's response, which is authoritative for
// server-set fields.
func (c *Controller) UpdateJob(ctx context.Context, recordID string, patch models.Job) (*models.Job, error) {
	if patch.Company == "" || patch.Position == "" {
		return nil, apperr.Validation("company and position are required")
	}

	c.mu.Lock()
	idx := c.indexOf(recordID)
	if idx < 0 {
		c.mu.Unlock()
		return nil, apperr.NotFound("job " + recordID + " not found")
	}
	// Interviews are append-only and never arrive through the edit form;
	// carry the logged entries forward so an edit cannot erase them.
	if len(patch.Interviews) == 0 {
		patch.Interviews = append(models.InterviewList{}, c.state.Jobs[idx].Interviews...)
	}
	c.mu.Unlock()

	updated, err := c.store.Update(ctx, recordID, patch)
	if err != nil {
		c.log.Error("failed to save job", zap.String("record_id", recordID), zap.Error(err))
		c.setLastError(err)
		return nil, err
	}

	c.mu.Lock()
	if idx = c.indexOf(recordID); idx >= 0 {
		c.state.Jobs[idx] = updated
	}
	c.state.Draft = NewJobDraft()
	c.state.Editing = false
	c.state.LastError = ""
	c.mu.Unlock()

	return &updated, nil
}

// DeleteJob removes the record from the store first and only then from the
// collection. Deleting the currently selected job clears the selection and
// closes the detail view. Without a logged-in user this is a warning no-op.
func (c *Controller) DeleteJob(ctx context.Context, recordID string) error {
	c.mu.Lock()
	userID := c.userID
	c.mu.Unlock()
	if userID == "" {
		c.log.Warn("no user found, cannot delete job", zap.String("record_id", recordID))
		return nil
	}

	if err := c.store.Delete(ctx, recordID); err != nil {
		c.log.Error("failed to delete job", zap.String("record_id", recordID), zap.Error(err))
		c.setLastError(err)
		return err
	}

	c.mu.Lock()
	kept := make([]models.Job, 0, len(c.state.Jobs))
	for _, job := range c.state.Jobs {
		if job.RecordID != recordID {
			kept = append(kept, job)
		}
	}
	c.state.Jobs = kept
	if c.state.SelectedID == recordID {
		c.state.SelectedID = ""
		if c.state.Modal == ModalJobDetails {
			c.state.Modal = ModalNone
		}
	}
	c.state.LastError = ""
	c.mu.Unlock()

	c.log.Info("job deleted", zap.String("record_id", recordID))
	return nil
}

// AddInterview appends the interview to the currently selected job, persists
// the whole updated record, then mirrors it into the collection and the
// selection and resets the interview draft.
func (c *Controller) AddInterview(ctx context.Context, recordID string, iv models.Interview) (*models.Job, error) {
	c.mu.Lock()
	if c.state.SelectedID != recordID {
		c.mu.Unlock()
		return nil, apperr.Validation("no selected job matching " + recordID)
	}
	idx := c.indexOf(recordID)
	if idx < 0 {
		c.mu.Unlock()
		return nil, apperr.NotFound("job " + recordID + " not found")
	}
	patch := c.state.Jobs[idx]
	patch.Interviews = append(append(models.InterviewList{}, patch.Interviews...), iv)
	c.mu.Unlock()

	updated, err := c.store.Update(ctx, recordID, patch)
	if err != nil {
		c.log.Error("failed to add interview", zap.String("record_id", recordID), zap.Error(err))
		c.setLastError(err)
		return nil, err
	}

	c.mu.Lock()
	if idx = c.indexOf(recordID); idx >= 0 {
		c.state.Jobs[idx] = updated
	}
	c.state.InterviewDraft = NewInterviewDraft()
	if c.state.Modal == ModalInterviewForm {
		c.state.Modal = ModalNone
	}
	c.state.LastError = ""
	c.mu.Unlock()

	return &updated, nil
}

// BeginEdit copies job into the draft and flags edit mode. The store is not
// touched until the edit is submitted.
func (c *Controller) BeginEdit(job models.Job) {
	c.mu.Lock()
	c.state.Draft = job
	c.state.Editing = true
	c.mu.Unlock()
}

// CancelEdit clears edit mode and resets the draft.
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	c.state.Draft = NewJobDraft()
	c.state.Editing = false
	c.mu.Unlock()
}

// SetDraft stores in-progress form state without persisting anything.
func (c *Controller) SetDraft(draft models.Job) {
	c.mu.Lock()
	c.state.Draft = draft
	c.mu.Unlock()
}

func (c *Controller) SetInterviewDraft(iv models.Interview) {
	c.mu.Lock()
	c.state.InterviewDraft = iv
	c.mu.Unlock()
}

// SelectJob opens the detail view for the given record.
func (c *Controller) SelectJob(recordID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.indexOf(recordID) < 0 {
		return apperr.NotFound("job " + recordID + " not found")
	}
	c.state.SelectedID = recordID
	c.state.Modal = ModalJobDetails
	return nil
}

func (c *Controller) CloseModal() {
	c.mu.Lock()
	c.state.Modal = ModalNone
	c.mu.Unlock()
}

func (c *Controller) OpenInterviewForm() {
	c.mu.Lock()
	c.state.Modal = ModalInterviewForm
	c.mu.Unlock()
}

func (c *Controller) SetTab(tab Tab) {
	c.mu.Lock()
	c.state.ActiveTab = tab
	c.mu.Unlock()
}

func (c *Controller) SetFilter(filter string) {
	c.mu.Lock()
	c.state.Filter = filter
	c.mu.Unlock()
}

func (c *Controller) SetView(view ViewMode) {
	c.mu.Lock()
	c.state.View = view
	c.mu.Unlock()
}

func (c *Controller) SetTheme(theme Theme) {
	c.mu.Lock()
	c.state.Theme = theme
	c.mu.Unlock()
}

// FilteredJobs applies the active status filter.
func (c *Controller) FilteredJobs() []models.Job {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Filter == FilterAll || c.state.Filter == "" {
		return append([]models.Job(nil), c.state.Jobs...)
	}
	var out []models.Job
	for _, job := range c.state.Jobs {
		if string(job.Status) == c.state.Filter {
			out = append(out, job)
		}
	}
	return out
}

// SelectedJob returns the job the detail view points at, or nil.
func (c *Controller) SelectedJob() *models.Job {
	c.mu.Lock()
	defer c.mu.Unlock()
	if idx := c.indexOf(c.state.SelectedID); idx >= 0 {
		job := c.state.Jobs[idx]
		return &job
	}
	return nil
}

// GenerateAnalysis runs the analytics engine over the selected job and the
// whole collection and opens the analysis modal. It always produces a result;
// a missing selection yields the placeholder analysis.
func (c *Controller) GenerateAnalysis() analytics.Analysis {
	c.mu.Lock()
	var selected *models.Job
	if idx := c.indexOf(c.state.SelectedID); idx >= 0 {
		job := c.state.Jobs[idx]
		selected = &job
	}
	jobs := append([]models.Job(nil), c.state.Jobs...)
	c.state.Modal = ModalAnalysisResult
	c.mu.Unlock()

	return analytics.GenerateInterviewAnalysis(selected, jobs)
}

// Reset drops all session state, for use on sign-out.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.state = NewState()
	c.userID = ""
	c.mu.Unlock()
}

func (c *Controller) setLastError(err error) {
	c.mu.Lock()
	c.state.LastError = err.Error()
	c.mu.Unlock()
}

// indexOf requires c.mu held.
func (c *Controller) indexOf(recordID string) int {
	if recordID == "" {
		return -1
	}
	for i, job := range c.state.Jobs {
		if job.RecordID == recordID {
			return i
		}
	}
	return -1
}

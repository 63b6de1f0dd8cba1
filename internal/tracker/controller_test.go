package tracker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/justsurfingit/career-compass/internal/apperr"
	"github.com/justsurfingit/career-compass/internal/dtos"
	"github.com/justsurfingit/career-compass/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeStore is an in-memory record store with switchable failure injection.
type fakeStore struct {
	jobs    []models.Job
	nextID  int
	fail    bool
	calls   int
	deletes []string
}

var errStoreDown = apperr.Store("store unavailable", fmt.Errorf("connection refused"))

func (f *fakeStore) Create(_ context.Context, userID string, job models.Job) (models.Job, error) {
	f.calls++
	if f.fail {
		return models.Job{}, errStoreDown
	}
	f.nextID++
	job.UserID = userID
	job.RecordID = fmt.Sprintf("rec-%d", f.nextID)
	job.CreatedAt = time.Now()
	if !job.Status.Valid() {
		job.Status = models.StatusApplied
	}
	if !job.Priority.Valid() {
		job.Priority = models.PriorityMedium
	}
	if job.Interviews == nil {
		job.Interviews = models.InterviewList{}
	}
	f.jobs = append([]models.Job{job}, f.jobs...)
	return job, nil
}

func (f *fakeStore) Update(_ context.Context, recordID string, patch models.Job) (models.Job, error) {
	f.calls++
	if f.fail {
		return models.Job{}, errStoreDown
	}
	for i, job := range f.jobs {
		if job.RecordID == recordID {
			patch.RecordID = recordID
			patch.UserID = job.UserID
			patch.CreatedAt = job.CreatedAt
			patch.UpdatedAt = time.Now()
			f.jobs[i] = patch
			return patch, nil
		}
	}
	return models.Job{}, apperr.NotFound("job " + recordID + " not found")
}

func (f *fakeStore) Delete(_ context.Context, recordID string) error {
	f.calls++
	if f.fail {
		return errStoreDown
	}
	f.deletes = append(f.deletes, recordID)
	kept := f.jobs[:0]
	for _, job := range f.jobs {
		if job.RecordID != recordID {
			kept = append(kept, job)
		}
	}
	f.jobs = kept
	return nil
}

func (f *fakeStore) ListByUser(_ context.Context, userID string) ([]models.Job, error) {
	f.calls++
	if f.fail {
		return nil, errStoreDown
	}
	var out []models.Job
	for _, job := range f.jobs {
		if job.UserID == userID {
			out = append(out, job)
		}
	}
	return out, nil
}

func newTestController(t *testing.T) (*Controller, *fakeStore) {
	store := &fakeStore{}
	c := NewController(store, zaptest.NewLogger(t))
	require.NoError(t, c.LoadJobs(context.Background(), "user-1"))
	return c, store
}

func mustCreate(t *testing.T, c *Controller, company, position string) models.Job {
	t.Helper()
	job, err := c.CreateJob(context.Background(), models.Job{Company: company, Position: position})
	require.NoError(t, err)
	return *job
}

func TestCreateJobRejectsMissingRequiredFields(t *testing.T) {
	c, store := newTestController(t)
	storeCalls := store.calls

	tests := []struct {
		name  string
		draft models.Job
	}{
		{"empty company", models.Job{Position: "Eng", Notes: "anything"}},
		{"empty position", models.Job{Company: "Acme", Priority: models.PriorityHigh}},
		{"both empty", models.Job{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.CreateJob(context.Background(), tt.draft)
			assert.True(t, apperr.IsKind(err, apperr.KindValidation))
			assert.Empty(t, c.Snapshot().Jobs)
			// no store call was made
			assert.Equal(t, storeCalls, store.calls)
		})
	}
}

func TestCreateJobPrependsAndDefaultsDate(t *testing.T) {
	c, _ := newTestController(t)

	mustCreate(t, c, "First Co", "Eng")
	job, err := c.CreateJob(context.Background(), models.Job{Company: "Acme", Position: "Eng"})
	require.NoError(t, err)

	snapshot := c.Snapshot()
	require.Len(t, snapshot.Jobs, 2)
	assert.Equal(t, "Acme", snapshot.Jobs[0].Company, "newest record sits at index 0")
	assert.Equal(t, time.Now().Format("2006-01-02"), job.DateApplied)
	assert.NotEmpty(t, job.RecordID)
	assert.NotEmpty(t, job.ClientID, "placeholder id assigned before persist")
	assert.NotNil(t, job.Interviews)

	// Draft was cleared on success.
	assert.Empty(t, snapshot.Draft.Company)
	assert.False(t, snapshot.Editing)
}

func TestCreateJobFailureKeepsStateAndDraft(t *testing.T) {
	c, store := newTestController(t)
	mustCreate(t, c, "Kept Co", "Eng")

	draft := models.Job{Company: "Acme", Position: "Eng"}
	c.SetDraft(draft)
	store.fail = true

	_, err := c.CreateJob(context.Background(), draft)
	require.Error(t, err)

	snapshot := c.Snapshot()
	require.Len(t, snapshot.Jobs, 1)
	assert.Equal(t, "Kept Co", snapshot.Jobs[0].Company)
	assert.Equal(t, "Acme", snapshot.Draft.Company, "draft preserved for retry")
	assert.NotEmpty(t, snapshot.LastError)
}

func TestUpdateJobMergesStoreResponse(t *testing.T) {
	c, _ := newTestController(t)
	created := mustCreate(t, c, "Acme", "Eng")

	patch := created
	patch.Status = models.StatusOffer
	patch.Notes = "offer received"
	updated, err := c.UpdateJob(context.Background(), created.RecordID, patch)
	require.NoError(t, err)

	assert.Equal(t, models.StatusOffer, updated.Status)
	assert.False(t, updated.UpdatedAt.IsZero(), "server-set fields come from the adapter response")

	snapshot := c.Snapshot()
	assert.Equal(t, models.StatusOffer, snapshot.Jobs[0].Status)
	assert.Equal(t, "offer received", snapshot.Jobs[0].Notes)
}

func TestUpdateJobPreservesLoggedInterviews(t *testing.T) {
	c, _ := newTestController(t)
	created := mustCreate(t, c, "Acme", "Eng")
	require.NoError(t, c.SelectJob(created.RecordID))
	_, err := c.AddInterview(context.Background(), created.RecordID, models.Interview{
		Type:      models.InterviewTechnical,
		Strengths: "communication",
		Rating:    7,
	})
	require.NoError(t, err)

	// A notes-only edit arrives with an empty interview list, the same shape
	// the edit form submits; the logged entry must survive.
	patch := dtos.JobRequest{
		Company:  "Acme",
		Position: "Eng",
		Notes:    "updated notes",
	}.ToModel()
	updated, err := c.UpdateJob(context.Background(), created.RecordID, patch)
	require.NoError(t, err)

	require.Len(t, updated.Interviews, 1)
	assert.Equal(t, models.InterviewTechnical, updated.Interviews[0].Type)

	snapshot := c.Snapshot()
	require.Len(t, snapshot.Jobs[0].Interviews, 1)
	assert.Equal(t, "updated notes", snapshot.Jobs[0].Notes)
}

func TestUpdateJobUnknownIDIsRejectedLocally(t *testing.T) {
	c, store := newTestController(t)
	mustCreate(t, c, "Acme", "Eng")
	calls := store.calls

	_, err := c.UpdateJob(context.Background(), "rec-missing", models.Job{Company: "X", Position: "Y"})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.Equal(t, calls, store.calls, "no store call for an id not in memory")
}

func TestUpdateJobFailureKeepsState(t *testing.T) {
	c, store := newTestController(t)
	created := mustCreate(t, c, "Acme", "Eng")

	store.fail = true
	patch := created
	patch.Status = models.StatusRejected
	_, err := c.UpdateJob(context.Background(), created.RecordID, patch)
	require.Error(t, err)

	assert.Equal(t, models.StatusApplied, c.Snapshot().Jobs[0].Status)
}

func TestDeleteJobWithoutUserIsWarningNoop(t *testing.T) {
	store := &fakeStore{}
	c := NewController(store, zaptest.NewLogger(t))

	assert.NoError(t, c.DeleteJob(context.Background(), "rec-1"))
	assert.Zero(t, store.calls)
}

func TestDeleteJobUnknownIDIsSafe(t *testing.T) {
	c, _ := newTestController(t)
	mustCreate(t, c, "Acme", "Eng")

	assert.NoError(t, c.DeleteJob(context.Background(), "rec-missing"))
	assert.Len(t, c.Snapshot().Jobs, 1)
}

func TestDeleteSelectedJobClearsSelection(t *testing.T) {
	c, _ := newTestController(t)
	created := mustCreate(t, c, "Acme", "Eng")
	require.NoError(t, c.SelectJob(created.RecordID))
	require.Equal(t, ModalJobDetails, c.Snapshot().Modal)

	require.NoError(t, c.DeleteJob(context.Background(), created.RecordID))

	snapshot := c.Snapshot()
	assert.Empty(t, snapshot.Jobs)
	assert.Empty(t, snapshot.SelectedID)
	assert.Equal(t, ModalNone, snapshot.Modal)
	assert.Nil(t, c.SelectedJob())
}

func TestDeleteJobLeavesEarlierReadsIntact(t *testing.T) {
	c, _ := newTestController(t)
	created := mustCreate(t, c, "Acme", "Eng")

	before := c.Snapshot()
	require.NoError(t, c.DeleteJob(context.Background(), created.RecordID))

	// Collections handed out before the delete keep their contents.
	require.Len(t, before.Jobs, 1)
	assert.Equal(t, "Acme", before.Jobs[0].Company)
	assert.Empty(t, c.Snapshot().Jobs)
}

func TestDeleteJobFailureKeepsLocalCopy(t *testing.T) {
	c, store := newTestController(t)
	created := mustCreate(t, c, "Acme", "Eng")

	store.fail = true
	require.Error(t, c.DeleteJob(context.Background(), created.RecordID))
	assert.Len(t, c.Snapshot().Jobs, 1, "store failure must not remove the local copy")
}

func TestAddInterviewAppendsAndResetsDraft(t *testing.T) {
	c, _ := newTestController(t)
	created := mustCreate(t, c, "Acme", "Eng")
	require.NoError(t, c.SelectJob(created.RecordID))
	c.OpenInterviewForm()
	c.SetInterviewDraft(models.Interview{Rating: 9, Type: models.InterviewOnsite})

	updated, err := c.AddInterview(context.Background(), created.RecordID, models.Interview{
		Date:      "2025-03-01",
		Type:      models.InterviewTechnical,
		Strengths: "communication",
		Rating:    8,
	})
	require.NoError(t, err)
	require.Len(t, updated.Interviews, 1)
	assert.Equal(t, 8, updated.Interviews[0].Rating)

	snapshot := c.Snapshot()
	assert.Len(t, snapshot.Jobs[0].Interviews, 1)
	require.NotNil(t, c.SelectedJob())
	assert.Len(t, c.SelectedJob().Interviews, 1, "selection reflects the updated record")
	assert.Equal(t, ModalNone, snapshot.Modal)
	assert.Equal(t, 5, snapshot.InterviewDraft.Rating, "interview draft reset to defaults")
	assert.Equal(t, models.InterviewBehavioral, snapshot.InterviewDraft.Type)
}

func TestAddInterviewRequiresMatchingSelection(t *testing.T) {
	c, _ := newTestController(t)
	created := mustCreate(t, c, "Acme", "Eng")

	_, err := c.AddInterview(context.Background(), created.RecordID, models.Interview{Rating: 5})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation), "no selection means no append")
}

func TestAddInterviewFailureKeepsState(t *testing.T) {
	c, store := newTestController(t)
	created := mustCreate(t, c, "Acme", "Eng")
	require.NoError(t, c.SelectJob(created.RecordID))

	store.fail = true
	_, err := c.AddInterview(context.Background(), created.RecordID, models.Interview{Rating: 5})
	require.Error(t, err)
	assert.Empty(t, c.Snapshot().Jobs[0].Interviews)
}

func TestBeginAndCancelEdit(t *testing.T) {
	c, _ := newTestController(t)
	created := mustCreate(t, c, "Acme", "Eng")

	c.BeginEdit(created)
	snapshot := c.Snapshot()
	assert.True(t, snapshot.Editing)
	assert.Equal(t, "Acme", snapshot.Draft.Company)

	c.CancelEdit()
	snapshot = c.Snapshot()
	assert.False(t, snapshot.Editing)
	assert.Empty(t, snapshot.Draft.Company)
}

func TestLoadJobsFailureKeepsPriorState(t *testing.T) {
	c, store := newTestController(t)
	mustCreate(t, c, "Acme", "Eng")

	store.fail = true
	require.Error(t, c.LoadJobs(context.Background(), "user-1"))
	assert.Len(t, c.Snapshot().Jobs, 1, "no partial overwrite on load failure")
}

func TestFilteredJobs(t *testing.T) {
	c, _ := newTestController(t)
	offer, err := c.CreateJob(context.Background(), models.Job{Company: "A", Position: "P", Status: models.StatusOffer})
	require.NoError(t, err)
	_, err = c.CreateJob(context.Background(), models.Job{Company: "B", Position: "P", Status: models.StatusApplied})
	require.NoError(t, err)

	assert.Len(t, c.FilteredJobs(), 2)

	c.SetFilter(string(models.StatusOffer))
	filtered := c.FilteredJobs()
	require.Len(t, filtered, 1)
	assert.Equal(t, offer.RecordID, filtered[0].RecordID)

	c.SetFilter(FilterAll)
	assert.Len(t, c.FilteredJobs(), 2)
}

func TestGenerateAnalysisOpensModal(t *testing.T) {
	c, _ := newTestController(t)
	created := mustCreate(t, c, "Acme", "Eng")
	require.NoError(t, c.SelectJob(created.RecordID))

	analysis := c.GenerateAnalysis()
	assert.Equal(t, 0, analysis.OverallScore)
	assert.Equal(t, 1, analysis.SuccessRate.Applied)
	assert.Equal(t, ModalAnalysisResult, c.Snapshot().Modal)
}

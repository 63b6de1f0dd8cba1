// Package store is the record store adapter: user-scoped CRUD over the jobs
// table with a newest-created-first ordering guarantee. Documents are
// validated at this boundary so the rest of the app never sees a job without
// a company, a position or an interviews slice.
package store

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/justsurfingit/career-compass/internal/apperr"
	"github.com/justsurfingit/career-compass/internal/models"
	"gorm.io/gorm"
)

type Store struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// sanitize coerces a document into the expected shape. Malformed required
// fields are rejected; soft fields fall back to their defaults.
func sanitize(job *models.Job) error {
	if job.Company == "" || job.Position == "" {
		return apperr.Validation("company and position are required")
	}
	if job.Interviews == nil {
		job.Interviews = models.InterviewList{}
	}
	if !job.Status.Valid() {
		job.Status = models.StatusApplied
	}
	if !job.Priority.Valid() {
		job.Priority = models.PriorityMedium
	}
	return nil
}

// Create persists a new job for userID and returns it with the store-assigned
// record id. Any client-generated placeholder id is kept aside as ClientID.
func (s *Store) Create(ctx context.Context, userID string, job models.Job) (models.Job, error) {
	if err := sanitize(&job); err != nil {
		return models.Job{}, err
	}
	job.ID = 0
	job.UserID = userID
	job.RecordID = uuid.NewString()

	if err := s.DB.WithContext(ctx).Create(&job).Error; err != nil {
		return models.Job{}, apperr.Store("create job", err)
	}
	return job, nil
}

// Update replaces the document identified by recordID with the merged fields
// and returns the stored row, which is authoritative for server-set fields
// such as UpdatedAt.
func (s *Store) Update(ctx context.Context, recordID string, patch models.Job) (models.Job, error) {
	if err := sanitize(&patch); err != nil {
		return models.Job{}, err
	}

	var existing models.Job
	err := s.DB.WithContext(ctx).Where("record_id = ?", recordID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Job{}, apperr.NotFound("job " + recordID + " not found")
	}
	if err != nil {
		return models.Job{}, apperr.Store("load job for update", err)
	}

	existing.Company = patch.Company
	existing.Position = patch.Position
	existing.DateApplied = patch.DateApplied
	existing.Status = patch.Status
	existing.Priority = patch.Priority
	existing.Notes = patch.Notes
	existing.Interviews = patch.Interviews

	if err := s.DB.WithContext(ctx).Save(&existing).Error; err != nil {
		return models.Job{}, apperr.Store("update job", err)
	}
	return existing, nil
}

// Delete removes the document identified by recordID. Deleting a record that
// does not exist is not an error.
func (s *Store) Delete(ctx context.Context, recordID string) error {
	if err := s.DB.WithContext(ctx).Where("record_id = ?", recordID).Delete(&models.Job{}).Error; err != nil {
		return apperr.Store("delete job", err)
	}
	return nil
}

// ListByUser returns every job owned by userID, newest created first.
func (s *Store) ListByUser(ctx context.Context, userID string) ([]models.Job, error) {
	var jobs []models.Job
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, apperr.Store("list jobs", err)
	}
	for i := range jobs {
		if jobs[i].Interviews == nil {
			jobs[i].Interviews = models.InterviewList{}
		}
	}
	return jobs, nil
}

package infrastructure

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"recruitment-system/domain"
)

// Store wraps the gorm handle with the persistence operations the handlers
// need. It validates on create/save and maps gorm's record-not-found onto
// domain.ErrNotFound. It performs no cascades: callers prune reverse
// references and remove uploaded files themselves.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Jobs

func (s *Store) CreateJob(job *domain.Job) error {
	job.ApplyDefaults()
	if err := job.Validate(); err != nil {
		return err
	}
	return wrapStoreErr(s.db.Create(job).Error)
}

func (s *Store) FindJobByID(id uint) (*domain.Job, error) {
	var job domain.Job
	if err := s.db.First(&job, id).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return &job, nil
}

// FindJobsByIDs loads the given jobs keyed by ID.
func (s *Store) FindJobsByIDs(ids []uint) (map[uint]domain.Job, error) {
	out := make(map[uint]domain.Job, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var jobs []domain.Job
	if err := s.db.Find(&jobs, ids).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	for _, j := range jobs {
		out[j.ID] = j
	}
	return out, nil
}

func (s *Store) ListJobs() ([]domain.Job, error) {
	var jobs []domain.Job
	if err := s.db.Order("created_at desc").Find(&jobs).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return jobs, nil
}

func (s *Store) SaveJob(job *domain.Job) error {
	if err := job.Validate(); err != nil {
		return err
	}
	return wrapStoreErr(s.db.Save(job).Error)
}

func (s *Store) DeleteJob(id uint) error {
	return wrapStoreErr(s.db.Delete(&domain.Job{}, id).Error)
}

// Candidates

func (s *Store) CreateCandidate(c *domain.Candidate) error {
	c.ApplyDefaults()
	if err := c.Validate(); err != nil {
		return err
	}
	return wrapStoreErr(s.db.Create(c).Error)
}

func (s *Store) FindCandidateByID(id uint) (*domain.Candidate, error) {
	var c domain.Candidate
	if err := s.db.First(&c, id).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return &c, nil
}

// FindCandidatesByIDs loads the given candidates keyed by ID. Missing IDs are
// simply absent from the map, so dangling references resolve to nothing.
func (s *Store) FindCandidatesByIDs(ids []uint) (map[uint]domain.Candidate, error) {
	out := make(map[uint]domain.Candidate, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var candidates []domain.Candidate
	if err := s.db.Find(&candidates, ids).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	for _, c := range candidates {
		out[c.ID] = c
	}
	return out, nil
}

func (s *Store) ListCandidates() ([]domain.Candidate, error) {
	var candidates []domain.Candidate
	if err := s.db.Order("created_at desc").Find(&candidates).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return candidates, nil
}

func (s *Store) SaveCandidate(c *domain.Candidate) error {
	if err := c.Validate(); err != nil {
		return err
	}
	return wrapStoreErr(s.db.Save(c).Error)
}

func (s *Store) DeleteCandidate(id uint) error {
	return wrapStoreErr(s.db.Delete(&domain.Candidate{}, id).Error)
}

// Interviews

func (s *Store) CreateInterview(iv *domain.Interview) error {
	iv.ApplyDefaults()
	if err := iv.Validate(); err != nil {
		return err
	}
	return wrapStoreErr(s.db.Create(iv).Error)
}

func (s *Store) FindInterviewByID(id uint) (*domain.Interview, error) {
	var iv domain.Interview
	if err := s.db.First(&iv, id).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return &iv, nil
}

func (s *Store) ListInterviews() ([]domain.Interview, error) {
	var interviews []domain.Interview
	if err := s.db.Order("scheduled_date asc").Find(&interviews).Error; err != nil {
		return nil, wrapStoreErr(err)
	}
	return interviews, nil
}

// ListScheduledInterviews returns only interviews still in Scheduled state,
// used as booked-slot input for the AI scheduler.
func (s *Store) ListScheduledInterviews() ([]domain.Interview, error) {
	var interviews []domain.Interview
	err := s.db.Where("status = ?", domain.InterviewStatusScheduled).
		Order("scheduled_date asc").Find(&interviews).Error
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return interviews, nil
}

func (s *Store) SaveInterview(iv *domain.Interview) error {
	if err := iv.Validate(); err != nil {
		return err
	}
	return wrapStoreErr(s.db.Save(iv).Error)
}

func (s *Store) DeleteInterview(id uint) error {
	return wrapStoreErr(s.db.Delete(&domain.Interview{}, id).Error)
}

func wrapStoreErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("store: %w", err)
}

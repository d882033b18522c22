package memory

import (
	"context"
	"sort"

	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/app/repositories"
	"github.com/yigit/admissions/internal/db"
)

// ProfileStore implements services.ApplicantProfileStore
type ProfileStore struct{ d *DB }

func applyProfileInput(p *models.ApplicantProfile, in models.ApplicantProfileInput) {
	p.FirstName = in.FirstName
	p.LastName = in.LastName
	p.DateOfBirth = in.DateOfBirth
	p.Gender = in.Gender
	p.PassportNo = in.PassportNo
	p.IDNo = in.IDNo
	p.PlaceOfBirth = in.PlaceOfBirth
	p.ContactNumber = in.ContactNumber
	p.Country = in.Country
	p.AddressLine = in.AddressLine
	p.City = in.City
	p.State = in.State
	p.ZipPostcode = in.ZipPostcode
	p.MotherFullName = in.MotherFullName
	p.FatherFullName = in.FatherFullName
	p.HeardAboutUniversity = in.HeardAboutUniversity
}

// byUser must be called with mu held
func (s *ProfileStore) byUser(userID int64) (models.ApplicantProfile, bool) {
	for _, p := range s.d.state.profiles {
		if p.UserID == userID {
			return p, true
		}
	}
	return models.ApplicantProfile{}, false
}

func (s *ProfileStore) GetByUserID(ctx context.Context, userID int64) (*models.ApplicantProfile, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	p, ok := s.byUser(userID)
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

func (s *ProfileStore) FindByUserID(ctx context.Context, q db.DBTX, userID int64, forUpdate bool) (*models.ApplicantProfile, error) {
	return s.GetByUserID(ctx, userID)
}

func (s *ProfileStore) Insert(ctx context.Context, q db.DBTX, userID int64, referenceCode string, in models.ApplicantProfileInput) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	if _, ok := s.d.state.users[userID]; !ok {
		return repositories.ErrMissingReference
	}
	if _, ok := s.byUser(userID); ok {
		return repositories.ErrProfileExists
	}
	for _, p := range s.d.state.profiles {
		if p.ReferenceCode == referenceCode {
			return repositories.ErrReferenceCodeTaken
		}
	}

	p := models.ApplicantProfile{
		ID:            s.d.id(),
		UserID:        userID,
		ReferenceCode: referenceCode,
		CreatedAt:     s.d.now(),
	}
	applyProfileInput(&p, in)
	s.d.state.profiles[p.ID] = p
	return nil
}

func (s *ProfileStore) UpdateByUserID(ctx context.Context, q db.DBTX, userID int64, in models.ApplicantProfileInput) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	p, ok := s.byUser(userID)
	if !ok {
		return repositories.ErrNotFound
	}
	applyProfileInput(&p, in)
	s.d.state.profiles[p.ID] = p
	return nil
}

// Count returns the number of stored profiles
func (s *ProfileStore) Count() int {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	return len(s.d.state.profiles)
}

// ApplicationStore implements services.ApplicationStore
type ApplicationStore struct{ d *DB }

func (s *ApplicationStore) Create(ctx context.Context, q db.DBTX, app *models.Application) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	if _, ok := s.d.state.programs[app.ProgramID]; !ok {
		return repositories.ErrMissingReference
	}
	if _, ok := s.d.state.profiles[app.ApplicantID]; !ok {
		return repositories.ErrMissingReference
	}

	app.ID = s.d.id()
	if app.Status == "" {
		app.Status = models.StatusSubmitted
	}
	app.CreatedAt = s.d.now()
	s.d.state.applications[app.ID] = *app
	return nil
}

// programSummary must be called with mu held
func (d *DB) programSummary(id int64) models.ProgramSummary {
	p := d.state.programs[id]
	return models.ProgramSummary{ID: p.ID, Name: p.Name, Level: p.Level}
}

// sortByCreated orders applications by created_at then id
func sortByCreated(apps []models.Application, desc bool) {
	sort.Slice(apps, func(i, j int) bool {
		a, b := apps[i], apps[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if desc {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.CreatedAt.Before(b.CreatedAt)
		}
		if desc {
			return a.ID > b.ID
		}
		return a.ID < b.ID
	})
}

func (s *ApplicationStore) ListByApplicant(ctx context.Context, applicantID int64, page, limit int) ([]models.ApplicationListItem, int64, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	var apps []models.Application
	for _, a := range s.d.state.applications {
		if a.ApplicantID == applicantID {
			apps = append(apps, a)
		}
	}
	sortByCreated(apps, true)

	items := []models.ApplicationListItem{}
	for _, a := range paginate(apps, page, limit) {
		items = append(items, models.ApplicationListItem{
			ID:        a.ID,
			ProgramID: a.ProgramID,
			Status:    a.Status,
			CreatedAt: a.CreatedAt,
			Program:   s.d.programSummary(a.ProgramID),
		})
	}
	return items, int64(len(apps)), nil
}

// AdminApplicationStore implements services.AdminApplicationStore
type AdminApplicationStore struct{ d *DB }

// matches must be called with mu held
func (s *AdminApplicationStore) matches(a models.Application, filter models.AdminApplicationFilter) bool {
	if filter.Status != nil && a.Status != *filter.Status {
		return false
	}
	if filter.ProgramID != nil && a.ProgramID != *filter.ProgramID {
		return false
	}
	if filter.Search != nil {
		p := s.d.state.profiles[a.ApplicantID]
		program := s.d.state.programs[a.ProgramID]
		term := *filter.Search
		if !containsFold(p.FirstName, term) && !containsFold(p.LastName, term) && !containsFold(program.Name, term) {
			return false
		}
	}
	return true
}

func (s *AdminApplicationStore) List(ctx context.Context, filter models.AdminApplicationFilter, page, limit int) ([]models.AdminApplicationListItem, int64, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	var apps []models.Application
	for _, a := range s.d.state.applications {
		if s.matches(a, filter) {
			apps = append(apps, a)
		}
	}
	sortByCreated(apps, filter.Sort != models.SortCreatedAtAsc)

	items := []models.AdminApplicationListItem{}
	for _, a := range paginate(apps, page, limit) {
		p := s.d.state.profiles[a.ApplicantID]
		items = append(items, models.AdminApplicationListItem{
			ID:         a.ID,
			Status:     a.Status,
			CreatedAt:  a.CreatedAt,
			ReviewedAt: a.ReviewedAt,
			ReviewedBy: a.ReviewedBy,
			Program:    s.d.programSummary(a.ProgramID),
			Applicant: models.ApplicantSummary{
				ID:            p.ID,
				FirstName:     p.FirstName,
				LastName:      p.LastName,
				ReferenceCode: p.ReferenceCode,
			},
		})
	}
	return items, int64(len(apps)), nil
}

func (s *AdminApplicationStore) GetDetail(ctx context.Context, id int64) (*models.AdminApplicationDetail, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	a, ok := s.d.state.applications[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &models.AdminApplicationDetail{
		ID:               a.ID,
		Status:           a.Status,
		CreatedAt:        a.CreatedAt,
		ReviewedAt:       a.ReviewedAt,
		ReviewedBy:       a.ReviewedBy,
		Program:          s.d.programSummary(a.ProgramID),
		ApplicantProfile: s.d.state.profiles[a.ApplicantID],
	}, nil
}

func (s *AdminApplicationStore) FindStatusForUpdate(ctx context.Context, q db.DBTX, id int64) (models.ApplicationStatus, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	a, ok := s.d.state.applications[id]
	if !ok {
		return "", repositories.ErrNotFound
	}
	return a.Status, nil
}

func (s *AdminApplicationStore) MarkReviewed(ctx context.Context, q db.DBTX, id int64, status models.ApplicationStatus, reviewerID int64) (*models.ApplicationReview, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	a, ok := s.d.state.applications[id]
	if !ok || a.Status != models.StatusSubmitted {
		return nil, repositories.ErrNoRowsAffected
	}
	now := s.d.now()
	reviewer := reviewerID
	a.Status = status
	a.ReviewedBy = &reviewer
	a.ReviewedAt = &now
	s.d.state.applications[id] = a

	return &models.ApplicationReview{ID: id, Status: status, ReviewedBy: reviewerID, ReviewedAt: now}, nil
}

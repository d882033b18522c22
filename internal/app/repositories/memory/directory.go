package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/yigit/admissions/internal/app/models"
	"github.com/yigit/admissions/internal/app/repositories"
	"github.com/yigit/admissions/internal/db"
)

// UserStore implements services.UserStore
type UserStore struct{ d *DB }

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	email := strings.ToLower(user.Email)
	for _, u := range s.d.state.users {
		if u.Email == email {
			return repositories.ErrDuplicateEmail
		}
	}
	user.ID = s.d.id()
	user.Email = email
	user.CreatedAt = s.d.now()
	s.d.state.users[user.ID] = *user
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	u, ok := s.d.state.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	email = strings.ToLower(email)
	for _, u := range s.d.state.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

// ProgramStore implements services.ProgramStore
type ProgramStore struct{ d *DB }

func applyProgramInput(p *models.Program, in models.ProgramInput) {
	p.Name = in.Name
	p.Level = in.Level
	p.DurationYears = in.DurationYears
	p.ShortDescription = in.ShortDescription
	p.AboutText = in.AboutText
	p.EntryRequirementsText = in.EntryRequirementsText
	p.ScholarshipsText = in.ScholarshipsText
}

func (s *ProgramStore) Create(ctx context.Context, createdBy int64, in models.ProgramInput) (*models.Program, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	if _, ok := s.d.state.users[createdBy]; !ok {
		return nil, repositories.ErrMissingReference
	}
	p := models.Program{ID: s.d.id(), CreatedBy: createdBy, CreatedAt: s.d.now()}
	applyProgramInput(&p, in)
	s.d.state.programs[p.ID] = p
	return &p, nil
}

func (s *ProgramStore) GetByID(ctx context.Context, id int64) (*models.Program, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	p, ok := s.d.state.programs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

func (s *ProgramStore) FindForShare(ctx context.Context, q db.DBTX, id int64) (*models.Program, error) {
	return s.GetByID(ctx, id)
}

func (s *ProgramStore) FindForUpdate(ctx context.Context, q db.DBTX, id int64) (*models.Program, error) {
	return s.GetByID(ctx, id)
}

func (s *ProgramStore) List(ctx context.Context, filter models.ProgramFilter, page, limit int) ([]models.Program, int64, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	var items []models.Program
	for _, p := range s.d.state.programs {
		if filter.Level != nil && p.Level != *filter.Level {
			continue
		}
		if filter.Search != nil && !containsFold(p.Name, *filter.Search) {
			continue
		}
		items = append(items, p)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].ID < items[j].ID
	})
	return paginate(items, page, limit), int64(len(items)), nil
}

func (s *ProgramStore) Update(ctx context.Context, q db.DBTX, id int64, in models.ProgramInput) (*models.Program, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	p, ok := s.d.state.programs[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	applyProgramInput(&p, in)
	s.d.state.programs[id] = p
	return &p, nil
}

func (s *ProgramStore) SetCoordinator(ctx context.Context, id int64, coordinatorID *int64) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	p, ok := s.d.state.programs[id]
	if !ok {
		return repositories.ErrNotFound
	}
	if coordinatorID != nil {
		if _, ok := s.d.state.coordinators[*coordinatorID]; !ok {
			return repositories.ErrMissingReference
		}
		v := *coordinatorID
		coordinatorID = &v
	}
	p.ProgramCoordinatorID = coordinatorID
	s.d.state.programs[id] = p
	return nil
}

// Delete removes a program and its courses. Programs with applications are kept.
func (s *ProgramStore) Delete(ctx context.Context, id int64) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	if _, ok := s.d.state.programs[id]; !ok {
		return repositories.ErrNotFound
	}
	for _, a := range s.d.state.applications {
		if a.ProgramID == id {
			return repositories.ErrReferencedRow
		}
	}
	for cid, c := range s.d.state.courses {
		if c.ProgramID == id {
			delete(s.d.state.courses, cid)
		}
	}
	delete(s.d.state.programs, id)
	return nil
}

// CourseStore implements services.CourseStore
type CourseStore struct{ d *DB }

func applyCourseInput(c *models.Course, in models.CourseInput) {
	c.YearNumber = in.YearNumber
	c.CourseName = in.CourseName
	c.CourseCode = in.CourseCode
	c.Credits = in.Credits
	c.TheoreticalHours = in.TheoreticalHours
	c.PracticalHours = in.PracticalHours
	c.DistanceHours = in.DistanceHours
	c.ECTS = in.ECTS
	c.CourseDescription = in.CourseDescription
}

// codeTaken must be called with mu held
func (s *CourseStore) codeTaken(programID, exceptID int64, code string) bool {
	for _, c := range s.d.state.courses {
		if c.ProgramID == programID && c.ID != exceptID && c.CourseCode == code {
			return true
		}
	}
	return false
}

func (s *CourseStore) Create(ctx context.Context, q db.DBTX, programID, createdBy int64, in models.CourseInput) (*models.Course, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	if _, ok := s.d.state.programs[programID]; !ok {
		return nil, repositories.ErrMissingReference
	}
	if s.codeTaken(programID, 0, in.CourseCode) {
		return nil, repositories.ErrDuplicateCourseCode
	}
	c := models.Course{ID: s.d.id(), ProgramID: programID, CreatedBy: createdBy, CreatedAt: s.d.now()}
	applyCourseInput(&c, in)
	s.d.state.courses[c.ID] = c
	return &c, nil
}

func (s *CourseStore) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	c, ok := s.d.state.courses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &c, nil
}

func (s *CourseStore) MaxYearNumber(ctx context.Context, q db.DBTX, programID int64) (int, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	year := 0
	for _, c := range s.d.state.courses {
		if c.ProgramID == programID && c.YearNumber > year {
			year = c.YearNumber
		}
	}
	return year, nil
}

func (s *CourseStore) ListByProgram(ctx context.Context, programID int64, filter models.CourseFilter) ([]models.Course, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	items := []models.Course{}
	for _, c := range s.d.state.courses {
		if c.ProgramID != programID {
			continue
		}
		if filter.Year != nil && c.YearNumber != *filter.Year {
			continue
		}
		items = append(items, c)
	}
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if filter.Sort != models.CourseSortName && a.YearNumber != b.YearNumber {
			return a.YearNumber < b.YearNumber
		}
		if a.CourseName != b.CourseName {
			return a.CourseName < b.CourseName
		}
		return a.ID < b.ID
	})
	return items, nil
}

func (s *CourseStore) Update(ctx context.Context, q db.DBTX, id int64, in models.CourseInput) (*models.Course, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	c, ok := s.d.state.courses[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if s.codeTaken(c.ProgramID, id, in.CourseCode) {
		return nil, repositories.ErrDuplicateCourseCode
	}
	applyCourseInput(&c, in)
	s.d.state.courses[id] = c
	return &c, nil
}

func (s *CourseStore) Delete(ctx context.Context, id int64) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	if _, ok := s.d.state.courses[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.d.state.courses, id)
	return nil
}

// CoordinatorStore implements services.CoordinatorStore
type CoordinatorStore struct{ d *DB }

func applyCoordinatorInput(c *models.ProgramCoordinator, in models.CoordinatorInput) {
	c.FullName = in.FullName
	c.Email = in.Email
	c.Picture = in.Picture
	c.TelephoneNumber = in.TelephoneNumber
	c.Nationality = in.Nationality
	c.AcademicQualification = in.AcademicQualification
	c.Speciality = in.Speciality
	c.OfficeLocation = in.OfficeLocation
	c.OfficeHours = in.OfficeHours
}

// emailTaken must be called with mu held
func (s *CoordinatorStore) emailTaken(exceptID int64, email string) bool {
	for _, c := range s.d.state.coordinators {
		if c.ID != exceptID && c.Email == email {
			return true
		}
	}
	return false
}

func (s *CoordinatorStore) Create(ctx context.Context, in models.CoordinatorInput) (*models.ProgramCoordinator, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	if s.emailTaken(0, in.Email) {
		return nil, repositories.ErrDuplicateEmail
	}
	c := models.ProgramCoordinator{ID: s.d.id(), CreatedAt: s.d.now()}
	applyCoordinatorInput(&c, in)
	s.d.state.coordinators[c.ID] = c
	return &c, nil
}

func (s *CoordinatorStore) GetByID(ctx context.Context, id int64) (*models.ProgramCoordinator, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	c, ok := s.d.state.coordinators[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &c, nil
}

func (s *CoordinatorStore) List(ctx context.Context, page, limit int) ([]models.ProgramCoordinator, int64, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	items := make([]models.ProgramCoordinator, 0, len(s.d.state.coordinators))
	for _, c := range s.d.state.coordinators {
		items = append(items, c)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].FullName != items[j].FullName {
			return items[i].FullName < items[j].FullName
		}
		return items[i].ID < items[j].ID
	})
	return paginate(items, page, limit), int64(len(items)), nil
}

func (s *CoordinatorStore) Update(ctx context.Context, id int64, in models.CoordinatorInput) (*models.ProgramCoordinator, error) {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	c, ok := s.d.state.coordinators[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	if s.emailTaken(id, in.Email) {
		return nil, repositories.ErrDuplicateEmail
	}
	applyCoordinatorInput(&c, in)
	s.d.state.coordinators[id] = c
	return &c, nil
}

// Delete removes a coordinator and unassigns it from its programs
func (s *CoordinatorStore) Delete(ctx context.Context, id int64) error {
	s.d.mu.Lock()
	defer s.d.mu.Unlock()

	if _, ok := s.d.state.coordinators[id]; !ok {
		return repositories.ErrNotFound
	}
	for pid, p := range s.d.state.programs {
		if p.ProgramCoordinatorID != nil && *p.ProgramCoordinatorID == id {
			p.ProgramCoordinatorID = nil
			s.d.state.programs[pid] = p
		}
	}
	delete(s.d.state.coordinators, id)
	return nil
}

func containsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(strings.TrimSpace(term)))
}

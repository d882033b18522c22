package dto

import "github.com/yigit/admissions/internal/app/models"

// ProgramRequest is the create/update program payload
type ProgramRequest struct {
	Name                  string              `json:"name" binding:"required,notblank,min=2,max=150" example:"Computer Engineering"`
	Level                 models.ProgramLevel `json:"level" binding:"required,oneof=undergraduate postgraduate" example:"undergraduate"`
	DurationYears         int                 `json:"duration_years" binding:"required,min=1,max=8" example:"4"`
	ShortDescription      string              `json:"short_description" binding:"required,min=10,max=255"`
	AboutText             string              `json:"about_text" binding:"required,min=10"`
	EntryRequirementsText string              `json:"entry_requirements_text" binding:"required,min=5"`
	ScholarshipsText      string              `json:"scholarships_text"`
}

// ToInput maps the request onto the model input
func (r *ProgramRequest) ToInput() models.ProgramInput {
	return models.ProgramInput{
		Name:                  r.Name,
		Level:                 r.Level,
		DurationYears:         r.DurationYears,
		ShortDescription:      r.ShortDescription,
		AboutText:             r.AboutText,
		EntryRequirementsText: r.EntryRequirementsText,
		ScholarshipsText:      r.ScholarshipsText,
	}
}

// ProgramListQuery are the public program list query parameters
type ProgramListQuery struct {
	PaginationQuery
	Level  string `form:"level" binding:"omitempty,oneof=undergraduate postgraduate"`
	Search string `form:"search" binding:"omitempty,notblank,max=150"`
}

// ToFilter converts the query into a repository filter
func (q *ProgramListQuery) ToFilter() models.ProgramFilter {
	var f models.ProgramFilter
	if q.Level != "" {
		level := models.ProgramLevel(q.Level)
		f.Level = &level
	}
	if q.Search != "" {
		search := q.Search
		f.Search = &search
	}
	return f
}

// AssignCoordinatorRequest sets or clears a program's coordinator. A null id unassigns.
type AssignCoordinatorRequest struct {
	ProgramCoordinatorID *int64 `json:"program_coordinator_id" binding:"omitempty,min=1" example:"3"`
}

// AssignCoordinatorResponse echoes the new assignment
type AssignCoordinatorResponse struct {
	ID                   int64  `json:"id" example:"1"`
	ProgramCoordinatorID *int64 `json:"program_coordinator_id" example:"3"`
}

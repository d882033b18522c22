package models

import "time"

// Program is a degree program owned by the dean who created it
type Program struct {
	ID                    int64        `json:"id" db:"id"`
	CreatedBy             int64        `json:"created_by" db:"created_by"`
	ProgramCoordinatorID  *int64       `json:"program_coordinator_id" db:"program_coordinator_id"`
	Name                  string       `json:"name" db:"name"`
	Level                 ProgramLevel `json:"level" db:"level"`
	DurationYears         int          `json:"duration_years" db:"duration_years"`
	ShortDescription      string       `json:"short_description" db:"short_description"`
	AboutText             string       `json:"about_text" db:"about_text"`
	EntryRequirementsText string       `json:"entry_requirements_text" db:"entry_requirements_text"`
	ScholarshipsText      string       `json:"scholarships_text" db:"scholarships_text"`
	CreatedAt             time.Time    `json:"created_at" db:"created_at"`
}

// OwnerID implements auth.OwnedResource
func (p *Program) OwnerID() int64 { return p.CreatedBy }

// ProgramInput holds the writable program fields
type ProgramInput struct {
	Name                  string
	Level                 ProgramLevel
	DurationYears         int
	ShortDescription      string
	AboutText             string
	EntryRequirementsText string
	ScholarshipsText      string
}

// ProgramFilter narrows the public program list
type ProgramFilter struct {
	Level  *ProgramLevel
	Search *string
}

// ProgramSummary is the denormalized program shown next to applications
type ProgramSummary struct {
	ID    int64        `json:"id"`
	Name  string       `json:"name"`
	Level ProgramLevel `json:"level"`
}

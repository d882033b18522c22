package dto

import "github.com/yigit/admissions/internal/app/models"

// SubmitApplicationRequest submits an application together with the full profile
type SubmitApplicationRequest struct {
	ProgramID int64                   `json:"program_id" binding:"required,min=1" example:"1"`
	Profile   ApplicantProfileRequest `json:"profile"`
}

// SubmitApplicationResponse carries the new application and the stored profile
type SubmitApplicationResponse struct {
	Application *models.Application      `json:"application"`
	Profile     *models.ApplicantProfile `json:"profile"`
}

// AdminApplicationListQuery are the dean inbox query parameters
type AdminApplicationListQuery struct {
	PaginationQuery
	Status    string `form:"status" binding:"omitempty,oneof=submitted accepted rejected"`
	ProgramID int64  `form:"program_id" binding:"omitempty,min=1"`
	Search    string `form:"search" binding:"omitempty,notblank,max=150"`
	Sort      string `form:"sort" binding:"omitempty,oneof=created_at_desc created_at_asc"`
}

// ToFilter converts the query into a repository filter
func (q *AdminApplicationListQuery) ToFilter() models.AdminApplicationFilter {
	f := models.AdminApplicationFilter{Sort: models.SortDirection(q.Sort)}
	if q.Status != "" {
		status := models.ApplicationStatus(q.Status)
		f.Status = &status
	}
	if q.ProgramID > 0 {
		id := q.ProgramID
		f.ProgramID = &id
	}
	if q.Search != "" {
		search := q.Search
		f.Search = &search
	}
	return f
}

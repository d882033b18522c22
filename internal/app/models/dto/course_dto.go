package dto

import "github.com/yigit/admissions/internal/app/models"

// CourseRequest is the create/update course payload
type CourseRequest struct {
	YearNumber        int      `json:"year_number" binding:"required,min=1" example:"1"`
	CourseName        string   `json:"course_name" binding:"required,notblank,min=2,max=150" example:"Calculus I"`
	CourseCode        string   `json:"course_code" binding:"required,notblank,min=2,max=30" example:"MATH101"`
	Credits           *float64 `json:"credits" binding:"required,min=0" example:"4"`
	TheoreticalHours  *int     `json:"theoretical_hours" binding:"required,min=0" example:"3"`
	PracticalHours    *int     `json:"practical_hours" binding:"required,min=0" example:"2"`
	DistanceHours     *int     `json:"distance_hours" binding:"required,min=0" example:"0"`
	ECTS              *float64 `json:"ects" binding:"omitempty,gt=0" example:"7.5"`
	CourseDescription string   `json:"course_description" binding:"required,notblank,min=5"`
}

// ToInput maps the request onto the model input. A missing ECTS value stays
// zero and is defaulted by the service.
func (r *CourseRequest) ToInput() models.CourseInput {
	in := models.CourseInput{
		YearNumber:        r.YearNumber,
		CourseName:        r.CourseName,
		CourseCode:        r.CourseCode,
		CourseDescription: r.CourseDescription,
	}
	if r.Credits != nil {
		in.Credits = *r.Credits
	}
	if r.TheoreticalHours != nil {
		in.TheoreticalHours = *r.TheoreticalHours
	}
	if r.PracticalHours != nil {
		in.PracticalHours = *r.PracticalHours
	}
	if r.DistanceHours != nil {
		in.DistanceHours = *r.DistanceHours
	}
	if r.ECTS != nil {
		in.ECTS = *r.ECTS
	}
	return in
}

// CourseListQuery are the course list query parameters
type CourseListQuery struct {
	Year int    `form:"year" binding:"omitempty,min=1"`
	Sort string `form:"sort" binding:"omitempty,oneof=year name"`
}

// ToFilter converts the query into a repository filter
func (q *CourseListQuery) ToFilter() models.CourseFilter {
	f := models.CourseFilter{Sort: models.CourseSort(q.Sort)}
	if q.Year > 0 {
		year := q.Year
		f.Year = &year
	}
	return f
}

// CourseListResponse is a program's full course list
type CourseListResponse struct {
	ProgramID int64           `json:"program_id" example:"1"`
	Items     []models.Course `json:"items"`
}

package dto

import "github.com/yigit/admissions/internal/app/models"

// CoordinatorRequest is the create/update coordinator payload
type CoordinatorRequest struct {
	FullName              string  `json:"full_name" binding:"required,notblank,min=2,max=150" example:"Grace Hopper"`
	Email                 string  `json:"email" binding:"required,email,max=255" example:"grace@university.edu"`
	Picture               *string `json:"picture" binding:"omitempty,max=255"`
	TelephoneNumber       *string `json:"telephone_number" binding:"omitempty,max=50"`
	Nationality           *string `json:"nationality" binding:"omitempty,max=80"`
	AcademicQualification *string `json:"academic_qualification" binding:"omitempty,max=120"`
	Speciality            *string `json:"speciality" binding:"omitempty,max=120"`
	OfficeLocation        *string `json:"office_location" binding:"omitempty,max=150"`
	OfficeHours           *string `json:"office_hours" binding:"omitempty,max=150"`
}

// ToInput maps the request onto the model input
func (r *CoordinatorRequest) ToInput() models.CoordinatorInput {
	return models.CoordinatorInput{
		FullName:              r.FullName,
		Email:                 r.Email,
		Picture:               r.Picture,
		TelephoneNumber:       r.TelephoneNumber,
		Nationality:           r.Nationality,
		AcademicQualification: r.AcademicQualification,
		Speciality:            r.Speciality,
		OfficeLocation:        r.OfficeLocation,
		OfficeHours:           r.OfficeHours,
	}
}

package models

import "time"

// Course belongs to exactly one program and is taught in one year of it
type Course struct {
	ID                int64     `json:"id" db:"id"`
	ProgramID         int64     `json:"program_id" db:"program_id"`
	CreatedBy         int64     `json:"created_by" db:"created_by"`
	YearNumber        int       `json:"year_number" db:"year_number"`
	CourseName        string    `json:"course_name" db:"course_name"`
	CourseCode        string    `json:"course_code" db:"course_code"`
	Credits           float64   `json:"credits" db:"credits"`
	TheoreticalHours  int       `json:"theoretical_hours" db:"theoretical_hours"`
	PracticalHours    int       `json:"practical_hours" db:"practical_hours"`
	DistanceHours     int       `json:"distance_hours" db:"distance_hours"`
	ECTS              float64   `json:"ects" db:"ects"`
	CourseDescription string    `json:"course_description" db:"course_description"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// DefaultECTS is applied when a course is written without an ECTS value
const DefaultECTS = 7.5

// CourseInput holds the writable course fields
type CourseInput struct {
	YearNumber        int
	CourseName        string
	CourseCode        string
	Credits           float64
	TheoreticalHours  int
	PracticalHours    int
	DistanceHours     int
	ECTS              float64
	CourseDescription string
}

// CourseFilter narrows and orders a program's course list
type CourseFilter struct {
	Year *int
	Sort CourseSort
}

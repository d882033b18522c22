package models

// Role is the single role a user account carries
type Role string

const (
	RoleDean      Role = "dean"
	RoleApplicant Role = "applicant"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleDean || r == RoleApplicant
}

// ProgramLevel is the degree level of a program
type ProgramLevel string

const (
	LevelUndergraduate ProgramLevel = "undergraduate"
	LevelPostgraduate  ProgramLevel = "postgraduate"
)

// ApplicationStatus is the review state of an application.
// The only legal transitions are submitted -> accepted and submitted -> rejected.
type ApplicationStatus string

const (
	StatusSubmitted ApplicationStatus = "submitted"
	StatusAccepted  ApplicationStatus = "accepted"
	StatusRejected  ApplicationStatus = "rejected"
)

// IsFinal reports whether the status is a terminal review outcome
func (s ApplicationStatus) IsFinal() bool {
	return s == StatusAccepted || s == StatusRejected
}

// CanTransitionTo reports whether a review may move an application from s to target
func (s ApplicationStatus) CanTransitionTo(target ApplicationStatus) bool {
	return s == StatusSubmitted && target.IsFinal()
}

// SortDirection is the created_at ordering of the admin inbox
type SortDirection string

const (
	SortCreatedAtDesc SortDirection = "created_at_desc"
	SortCreatedAtAsc  SortDirection = "created_at_asc"
)

// CourseSort selects the ordering of a program's course list
type CourseSort string

const (
	CourseSortYear CourseSort = "year"
	CourseSortName CourseSort = "name"
)

package applications

import "errors"

var (
	ErrNotFound             = errors.New("application not found")
	ErrDuplicateApplication = errors.New("student has already applied for this internship")
	ErrDeadlinePassed       = errors.New("application deadline has passed")
	ErrInternshipInactive   = errors.New("internship is not accepting applications")
	ErrNotOwner             = errors.New("application belongs to another student")
	ErrInvalidTransition    = errors.New("application status does not allow this transition")
)

package applications

import (
	"strings"
	"time"
)

// Status is the application lifecycle state. PENDING is initial;
// ACCEPTED, REJECTED, and WITHDRAWN are terminal.
type Status string

const (
	StatusPending     Status = "PENDING"
	StatusUnderReview Status = "UNDER_REVIEW"
	StatusAccepted    Status = "ACCEPTED"
	StatusRejected    Status = "REJECTED"
	StatusWithdrawn   Status = "WITHDRAWN"
)

func ParseStatus(raw string) (Status, bool) {
	switch Status(strings.ToUpper(strings.TrimSpace(raw))) {
	case StatusPending:
		return StatusPending, true
	case StatusUnderReview:
		return StatusUnderReview, true
	case StatusAccepted:
		return StatusAccepted, true
	case StatusRejected:
		return StatusRejected, true
	case StatusWithdrawn:
		return StatusWithdrawn, true
	default:
		return "", false
	}
}

// ReviewDecision reports whether the status is a terminal review
// outcome, which is what stamps reviewedAt.
func (s Status) ReviewDecision() bool {
	return s == StatusAccepted || s == StatusRejected
}

// Withdrawable reports whether a student may still withdraw from this
// state.
func (s Status) Withdrawable() bool {
	return s == StatusPending || s == StatusUnderReview
}

// Application is one student's bid for one internship. At most one
// exists per (student, internship) pair.
type Application struct {
	ID                 int64      `json:"id"`
	StudentID          string     `json:"studentId"`
	InternshipID       int64      `json:"internshipId"`
	CoverLetter        string     `json:"coverLetter"`
	ResumeURL          string     `json:"resumeUrl,omitempty"`
	PortfolioURL       string     `json:"portfolioUrl,omitempty"`
	Availability       string     `json:"availability,omitempty"`
	PreferredStartDate *time.Time `json:"preferredStartDate,omitempty"`
	Status             Status     `json:"status"`
	AppliedAt          time.Time  `json:"appliedAt"`
	ReviewedAt         *time.Time `json:"reviewedAt,omitempty"`
	ReviewerNotes      string     `json:"reviewerNotes,omitempty"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

package internships

import (
	"errors"
	"strings"
	"time"
)

var ErrNotFound = errors.New("internship not found")

// Duration buckets an internship posting by length. Values mirror the
// categories offered in the posting form.
type Duration string

const (
	DurationOneMonth    Duration = "ONE_MONTH"
	DurationTwoMonths   Duration = "TWO_MONTHS"
	DurationThreeMonths Duration = "THREE_MONTHS"
	DurationFourMonths  Duration = "FOUR_MONTHS"
	DurationFiveMonths  Duration = "FIVE_MONTHS"
	DurationSixMonths   Duration = "SIX_MONTHS"
	DurationOther       Duration = "OTHER"
)

func ParseDuration(raw string) (Duration, bool) {
	switch Duration(strings.ToUpper(strings.TrimSpace(raw))) {
	case DurationOneMonth, DurationTwoMonths, DurationThreeMonths,
		DurationFourMonths, DurationFiveMonths, DurationSixMonths, DurationOther:
		return Duration(strings.ToUpper(strings.TrimSpace(raw))), true
	default:
		return "", false
	}
}

// Internship is a posting owned by exactly one organization account.
type Internship struct {
	ID                  int64      `json:"id"`
	OrganizationID      string     `json:"organizationId"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	Requirements        string     `json:"requirements"`
	Duration            Duration   `json:"duration"`
	Location            string     `json:"location"`
	Remote              bool       `json:"isRemote"`
	StipendAmount       *float64   `json:"stipendAmount,omitempty"`
	SkillsRequired      []string   `json:"skillsRequired"`
	ApplicationDeadline time.Time  `json:"applicationDeadline"`
	StartDate           *time.Time `json:"startDate,omitempty"`
	EndDate             *time.Time `json:"endDate,omitempty"`
	MaxApplicants       int        `json:"maxApplicants"`
	Active              bool       `json:"isActive"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// AcceptsApplicationsOn reports whether the posting can receive a new
// application on the given day. The deadline day itself still counts.
func (i *Internship) AcceptsApplicationsOn(day time.Time) bool {
	if !i.Active {
		return false
	}
	deadline := dateOnly(i.ApplicationDeadline)
	return !deadline.Before(dateOnly(day))
}

func dateOnly(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

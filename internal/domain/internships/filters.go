package internships

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// SearchFilters narrows the public internship listing. Every predicate
// is optional; a nil/empty predicate matches all rows. Text predicates
// match case-insensitive substrings. Only active postings are searched.
type SearchFilters struct {
	Title    string
	Location string
	Duration *Duration
	Remote   *bool
}

type FilterError struct {
	Field   string
	Message string
}

func (e FilterError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Empty reports whether no predicate was supplied.
func (f SearchFilters) Empty() bool {
	return f.Title == "" && f.Location == "" && f.Duration == nil && f.Remote == nil
}

func ParseSearchFilters(values url.Values) (SearchFilters, error) {
	filters := SearchFilters{
		Title:    strings.TrimSpace(values.Get("title")),
		Location: strings.TrimSpace(values.Get("location")),
	}

	if raw := strings.TrimSpace(values.Get("duration")); raw != "" {
		duration, ok := ParseDuration(raw)
		if !ok {
			return filters, FilterError{Field: "duration", Message: "unknown duration category"}
		}
		filters.Duration = &duration
	}

	if raw := strings.TrimSpace(values.Get("isRemote")); raw != "" {
		remote, err := strconv.ParseBool(raw)
		if err != nil {
			return filters, FilterError{Field: "isRemote", Message: "must be true or false"}
		}
		filters.Remote = &remote
	}

	return filters, nil
}

// Matches applies the filters in-process. The postgres repository does
// the same predicate logic in SQL; this keeps list semantics testable
// without a database.
func (f SearchFilters) Matches(internship *Internship) bool {
	if !internship.Active {
		return false
	}
	if f.Title != "" && !strings.Contains(strings.ToLower(internship.Title), strings.ToLower(f.Title)) {
		return false
	}
	if f.Location != "" && !strings.Contains(strings.ToLower(internship.Location), strings.ToLower(f.Location)) {
		return false
	}
	if f.Duration != nil && internship.Duration != *f.Duration {
		return false
	}
	if f.Remote != nil && internship.Remote != *f.Remote {
		return false
	}
	return true
}

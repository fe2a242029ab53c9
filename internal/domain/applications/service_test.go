package applications

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/island-scholars/server/internal/domain/internships"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]Application
	byPair map[[2]any]int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		nextID: 1,
		byID:   make(map[int64]Application),
		byPair: make(map[[2]any]int64),
	}
}

func pairKey(studentID string, internshipID int64) [2]any {
	return [2]any{studentID, internshipID}
}

func (r *fakeRepo) Create(_ context.Context, application *Application) (*Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairKey(application.StudentID, application.InternshipID)
	if _, taken := r.byPair[key]; taken {
		return nil, ErrDuplicateApplication
	}

	stored := *application
	stored.ID = r.nextID
	r.nextID++
	r.byID[stored.ID] = stored
	r.byPair[key] = stored.ID

	result := stored
	return &result, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (*Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	result := stored
	return &result, nil
}

func (r *fakeRepo) Update(_ context.Context, application *Application) (*Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[application.ID]; !ok {
		return nil, ErrNotFound
	}
	r.byID[application.ID] = *application
	result := *application
	return &result, nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}
	delete(r.byPair, pairKey(stored.StudentID, stored.InternshipID))
	delete(r.byID, id)
	return nil
}

func (r *fakeRepo) ListByStudent(_ context.Context, studentID string) ([]Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Application
	for _, stored := range r.byID {
		if stored.StudentID == studentID {
			out = append(out, stored)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListByOrganization(_ context.Context, _ string) ([]Application, error) {
	return nil, nil
}

func (r *fakeRepo) ExistsForStudentAndInternship(_ context.Context, studentID string, internshipID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.byPair[pairKey(studentID, internshipID)]
	return ok, nil
}

type fakeDirectory struct {
	internships map[int64]internships.Internship
}

func (d *fakeDirectory) GetByID(_ context.Context, id int64) (*internships.Internship, error) {
	stored, ok := d.internships[id]
	if !ok {
		return nil, internships.ErrNotFound
	}
	result := stored
	return &result, nil
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []int64
}

func (n *recordingNotifier) ApplicationCreated(application *Application) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, application.ID)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

func openInternship(id int64, orgID string, deadline time.Time) internships.Internship {
	return internships.Internship{
		ID:                  id,
		OrganizationID:      orgID,
		Title:               "Marine Data Intern",
		Active:              true,
		ApplicationDeadline: deadline,
	}
}

const (
	studentOne = "11111111-1111-1111-1111-111111111111"
	studentTwo = "22222222-2222-2222-2222-222222222222"
	orgOne     = "33333333-3333-3333-3333-333333333333"
)

func newTestService(directory *fakeDirectory) (*Service, *fakeRepo, *recordingNotifier) {
	repo := newFakeRepo()
	notifier := &recordingNotifier{}
	service := NewService(repo, directory, notifier, zerolog.Nop())
	return service, repo, notifier
}

func futureDeadline() time.Time {
	return time.Now().UTC().AddDate(0, 0, 30)
}

func TestCreateSetsPendingAndAppliedAt(t *testing.T) {
	directory := &fakeDirectory{internships: map[int64]internships.Internship{
		10: openInternship(10, orgOne, futureDeadline()),
	}}
	service, _, notifier := newTestService(directory)

	created, err := service.Create(context.Background(), CreateParams{
		StudentID:    studentOne,
		InternshipID: 10,
		CoverLetter:  "I grew up on the reef.",
	})
	require.NoError(t, err)
	require.Equal(t, StatusPending, created.Status)
	require.False(t, created.AppliedAt.IsZero())
	require.Nil(t, created.ReviewedAt)
	require.Equal(t, 1, notifier.count())
}

func TestCreateRejectsDuplicatePair(t *testing.T) {
	directory := &fakeDirectory{internships: map[int64]internships.Internship{
		10: openInternship(10, orgOne, futureDeadline()),
	}}
	service, _, _ := newTestService(directory)

	_, err := service.Create(context.Background(), CreateParams{StudentID: studentOne, InternshipID: 10, CoverLetter: "first"})
	require.NoError(t, err)

	_, err = service.Create(context.Background(), CreateParams{StudentID: studentOne, InternshipID: 10, CoverLetter: "second"})
	require.ErrorIs(t, err, ErrDuplicateApplication)

	// A different student may still apply.
	_, err = service.Create(context.Background(), CreateParams{StudentID: studentTwo, InternshipID: 10, CoverLetter: "other student"})
	require.NoError(t, err)
}

func TestCreateDeadlineBoundaries(t *testing.T) {
	today := time.Now().UTC()
	tests := []struct {
		name     string
		deadline time.Time
		wantErr  error
	}{
		{"yesterday fails", today.AddDate(0, 0, -1), ErrDeadlinePassed},
		{"today succeeds", today, nil},
		{"future succeeds", today.AddDate(0, 0, 7), nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			directory := &fakeDirectory{internships: map[int64]internships.Internship{
				10: openInternship(10, orgOne, tc.deadline),
			}}
			service, _, _ := newTestService(directory)

			_, err := service.Create(context.Background(), CreateParams{StudentID: studentOne, InternshipID: 10, CoverLetter: "letter"})
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCreateRejectsInactiveInternship(t *testing.T) {
	closed := openInternship(10, orgOne, futureDeadline())
	closed.Active = false
	directory := &fakeDirectory{internships: map[int64]internships.Internship{10: closed}}
	service, _, _ := newTestService(directory)

	_, err := service.Create(context.Background(), CreateParams{StudentID: studentOne, InternshipID: 10, CoverLetter: "letter"})
	require.ErrorIs(t, err, ErrInternshipInactive)
}

func TestCreateUnknownInternship(t *testing.T) {
	directory := &fakeDirectory{internships: map[int64]internships.Internship{}}
	service, _, _ := newTestService(directory)

	_, err := service.Create(context.Background(), CreateParams{StudentID: studentOne, InternshipID: 99, CoverLetter: "letter"})
	require.ErrorIs(t, err, internships.ErrNotFound)
}

func TestConcurrentCreatesOneWinner(t *testing.T) {
	directory := &fakeDirectory{internships: map[int64]internships.Internship{
		10: openInternship(10, orgOne, futureDeadline()),
	}}
	service, _, _ := newTestService(directory)

	const attempts = 16
	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Create(context.Background(), CreateParams{StudentID: studentOne, InternshipID: 10, CoverLetter: "race"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var successes, duplicates int
	for err := range errs {
		switch {
		case err == nil:
			successes++
		default:
			require.ErrorIs(t, err, ErrDuplicateApplication)
			duplicates++
		}
	}
	require.Equal(t, 1, successes)
	require.Equal(t, attempts-1, duplicates)
}

func TestUpdateStatusStampsReviewedAtOnDecision(t *testing.T) {
	directory := &fakeDirectory{internships: map[int64]internships.Internship{
		10: openInternship(10, orgOne, futureDeadline()),
	}}
	service, _, _ := newTestService(directory)

	created, err := service.Create(context.Background(), CreateParams{StudentID: studentOne, InternshipID: 10, CoverLetter: "letter"})
	require.NoError(t, err)

	reviewing, err := service.UpdateStatus(context.Background(), created.ID, StatusUnderReview, "screening")
	require.NoError(t, err)
	require.Equal(t, StatusUnderReview, reviewing.Status)
	require.Nil(t, reviewing.ReviewedAt, "UNDER_REVIEW must not stamp reviewedAt")
	require.Equal(t, "screening", reviewing.ReviewerNotes)

	accepted, err := service.UpdateStatus(context.Background(), created.ID, StatusAccepted, "strong candidate")
	require.NoError(t, err)
	require.Equal(t, StatusAccepted, accepted.Status)
	require.NotNil(t, accepted.ReviewedAt)
}

func TestUpdateStatusUnknownID(t *testing.T) {
	directory := &fakeDirectory{internships: map[int64]internships.Internship{}}
	service, _, _ := newTestService(directory)

	_, err := service.UpdateStatus(context.Background(), 404, StatusAccepted, "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestWithdrawOnlyFromOpenStates(t *testing.T) {
	for _, status := range []Status{StatusAccepted, StatusRejected, StatusWithdrawn} {
		t.Run(string(status), func(t *testing.T) {
			directory := &fakeDirectory{internships: map[int64]internships.Internship{
				10: openInternship(10, orgOne, futureDeadline()),
			}}
			service, _, _ := newTestService(directory)

			created, err := service.Create(context.Background(), CreateParams{StudentID: studentOne, InternshipID: 10, CoverLetter: "letter"})
			require.NoError(t, err)

			_, err = service.UpdateStatus(context.Background(), created.ID, status, "")
			require.NoError(t, err)

			_, err = service.Withdraw(context.Background(), created.ID, studentOne)
			require.ErrorIs(t, err, ErrInvalidTransition)
		})
	}

	for _, status := range []Status{StatusPending, StatusUnderReview} {
		t.Run(string(status), func(t *testing.T) {
			directory := &fakeDirectory{internships: map[int64]internships.Internship{
				10: openInternship(10, orgOne, futureDeadline()),
			}}
			service, _, _ := newTestService(directory)

			created, err := service.Create(context.Background(), CreateParams{StudentID: studentOne, InternshipID: 10, CoverLetter: "letter"})
			require.NoError(t, err)

			if status != StatusPending {
				_, err = service.UpdateStatus(context.Background(), created.ID, status, "")
				require.NoError(t, err)
			}

			withdrawn, err := service.Withdraw(context.Background(), created.ID, studentOne)
			require.NoError(t, err)
			require.Equal(t, StatusWithdrawn, withdrawn.Status)
		})
	}
}

func TestWithdrawByForeignStudent(t *testing.T) {
	directory := &fakeDirectory{internships: map[int64]internships.Internship{
		10: openInternship(10, orgOne, futureDeadline()),
	}}
	service, _, _ := newTestService(directory)

	created, err := service.Create(context.Background(), CreateParams{StudentID: studentOne, InternshipID: 10, CoverLetter: "letter"})
	require.NoError(t, err)

	_, err = service.Withdraw(context.Background(), created.ID, studentTwo)
	require.ErrorIs(t, err, ErrNotOwner)

	// Ownership is checked before state: even a terminal application
	// reports NotOwner to a foreign requester.
	_, err = service.UpdateStatus(context.Background(), created.ID, StatusRejected, "")
	require.NoError(t, err)
	_, err = service.Withdraw(context.Background(), created.ID, studentTwo)
	require.ErrorIs(t, err, ErrNotOwner)
}

func TestLifecycleScenario(t *testing.T) {
	directory := &fakeDirectory{internships: map[int64]internships.Internship{
		10: openInternship(10, orgOne, time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)),
	}}
	service, _, _ := newTestService(directory)

	created, err := service.Create(context.Background(), CreateParams{StudentID: studentOne, InternshipID: 10, CoverLetter: "letter"})
	require.NoError(t, err)
	require.Equal(t, StatusPending, created.Status)
	require.Nil(t, created.ReviewedAt)

	rejected, err := service.UpdateStatus(context.Background(), created.ID, StatusRejected, "not a fit")
	require.NoError(t, err)
	require.Equal(t, StatusRejected, rejected.Status)
	require.NotNil(t, rejected.ReviewedAt)
	require.Equal(t, "not a fit", rejected.ReviewerNotes)

	_, err = service.Withdraw(context.Background(), created.ID, studentOne)
	require.ErrorIs(t, err, ErrInvalidTransition)
}

func TestDeleteRemovesApplication(t *testing.T) {
	directory := &fakeDirectory{internships: map[int64]internships.Internship{
		10: openInternship(10, orgOne, futureDeadline()),
	}}
	service, repo, _ := newTestService(directory)

	created, err := service.Create(context.Background(), CreateParams{StudentID: studentOne, InternshipID: 10, CoverLetter: "letter"})
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), created.ID))
	_, err = repo.GetByID(context.Background(), created.ID)
	require.ErrorIs(t, err, ErrNotFound)

	// The pair frees up after a hard delete.
	_, err = service.Create(context.Background(), CreateParams{StudentID: studentOne, InternshipID: 10, CoverLetter: "again"})
	require.NoError(t, err)
}

func TestIsParty(t *testing.T) {
	directory := &fakeDirectory{internships: map[int64]internships.Internship{
		10: openInternship(10, orgOne, futureDeadline()),
	}}
	service, _, _ := newTestService(directory)

	created, err := service.Create(context.Background(), CreateParams{StudentID: studentOne, InternshipID: 10, CoverLetter: "letter"})
	require.NoError(t, err)

	isParty, err := service.IsParty(context.Background(), created, studentOne)
	require.NoError(t, err)
	require.True(t, isParty)

	isParty, err = service.IsParty(context.Background(), created, orgOne)
	require.NoError(t, err)
	require.True(t, isParty)

	isParty, err = service.IsParty(context.Background(), created, studentTwo)
	require.NoError(t, err)
	require.False(t, isParty)
}

func TestCreateSucceedsWithoutNotifier(t *testing.T) {
	directory := &fakeDirectory{internships: map[int64]internships.Internship{
		10: openInternship(10, orgOne, futureDeadline()),
	}}
	repo := newFakeRepo()
	service := NewService(repo, directory, nil, zerolog.Nop())

	_, err := service.Create(context.Background(), CreateParams{StudentID: studentOne, InternshipID: 10, CoverLetter: "letter"})
	require.NoError(t, err)
}

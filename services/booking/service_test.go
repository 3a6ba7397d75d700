package booking_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	bookingRepo "expertbook/database/repository/booking"
	expertRepo "expertbook/database/repository/expert"
	"expertbook/models"
	"expertbook/services/booking"
)

// fakeExpertRepo is an in-memory stand-in for the expert store.
type fakeExpertRepo struct {
	mu      sync.Mutex
	experts map[string]*models.Expert
	markErr error // injected step-3 failure
}

func newFakeExpertRepo(experts ...*models.Expert) *fakeExpertRepo {
	m := make(map[string]*models.Expert, len(experts))
	for _, e := range experts {
		m[e.ID] = e
	}
	return &fakeExpertRepo{experts: m}
}

func (f *fakeExpertRepo) Create(ctx context.Context, expert *models.Expert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.experts[expert.ID] = expert
	return nil
}

func (f *fakeExpertRepo) GetByID(ctx context.Context, id string) (*models.Expert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.experts[id]
	if !ok {
		return nil, expertRepo.ErrNotFound
	}
	return e, nil
}

func (f *fakeExpertRepo) List(ctx context.Context, q expertRepo.ListQuery) ([]models.Expert, int64, error) {
	return nil, 0, errors.New("not implemented")
}

func (f *fakeExpertRepo) FindBookableSlot(ctx context.Context, expertID, date, timeLabel string) (*models.Expert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.experts[expertID]
	if !ok {
		return nil, expertRepo.ErrNotFound
	}
	for _, s := range e.Slots {
		if s.Date == date && s.Time == timeLabel && !s.IsBooked {
			return e, nil
		}
	}
	return nil, expertRepo.ErrNotFound
}

func (f *fakeExpertRepo) MarkSlotBooked(ctx context.Context, expertID, date, timeLabel string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markErr != nil {
		return f.markErr
	}
	e, ok := f.experts[expertID]
	if !ok {
		return nil // zero matches is not an error
	}
	for i, s := range e.Slots {
		if s.Date == date && s.Time == timeLabel {
			e.Slots[i].IsBooked = true
			return nil
		}
	}
	return nil
}

// fakeLedger enforces the (expert_id, date, time) unique key under a mutex,
// which is the same contract the Mongo unique index provides.
type fakeLedger struct {
	mu       sync.Mutex
	rows     []models.Booking
	seen     map[string]struct{}
	statuses map[string]int // booking id -> index into rows
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{seen: make(map[string]struct{}), statuses: make(map[string]int)}
}

func ledgerKey(expertID, date, timeLabel string) string {
	return expertID + "|" + date + "|" + timeLabel
}

func (f *fakeLedger) Insert(ctx context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := ledgerKey(b.ExpertID, b.Date, b.Time)
	if _, ok := f.seen[key]; ok {
		return bookingRepo.ErrDuplicateBooking
	}
	f.seen[key] = struct{}{}
	f.statuses[b.ID] = len(f.rows)
	f.rows = append(f.rows, *b)
	return nil
}

func (f *fakeLedger) FindByEmail(ctx context.Context, email string) ([]models.BookingWithExpert, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.BookingWithExpert
	for _, b := range f.rows {
		if b.UserEmail == email {
			out = append(out, models.BookingWithExpert{Booking: b})
		}
	}
	// newest first, matching the store's sort
	for i := 0; i < len(out); i++ {
		for j := i + 1; j < len(out); j++ {
			if out[j].CreatedAt.After(out[i].CreatedAt) {
				out[i], out[j] = out[j], out[i]
			}
		}
	}
	return out, nil
}

func (f *fakeLedger) UpdateStatus(ctx context.Context, id, status string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	idx, ok := f.statuses[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	f.rows[idx].Status = status
	b := f.rows[idx]
	return &b, nil
}

func (f *fakeLedger) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

// recordingPublisher captures every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []booking.SlotBookedPayload
}

func (p *recordingPublisher) Publish(event string, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if event == booking.EventSlotBooked {
		p.events = append(p.events, payload.(booking.SlotBookedPayload))
	}
}

func (p *recordingPublisher) published() []booking.SlotBookedPayload {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]booking.SlotBookedPayload(nil), p.events...)
}

func testExpert() *models.Expert {
	return &models.Expert{
		ID:       "exp-1",
		Name:     "Dr. Aristhotene",
		Category: "Technology",
		Slots: []models.Slot{
			{Date: "2026-03-01", Time: "10:00 AM"},
			{Date: "2026-03-01", Time: "11:00 AM"},
		},
	}
}

func newService(experts *fakeExpertRepo, ledger *fakeLedger, pub *recordingPublisher) *booking.DefaultBookingService {
	return &booking.DefaultBookingService{
		ExpertRepo:  experts,
		BookingRepo: ledger,
		Publisher:   pub,
		Logger:      zap.NewNop(),
	}
}

func validInput(email string) booking.CreateInput {
	return booking.CreateInput{
		ExpertID:  "exp-1",
		UserName:  "Test User",
		UserEmail: email,
		UserPhone: "555-0100",
		Date:      "2026-03-01",
		Time:      "10:00 AM",
	}
}

func TestCreateMutualExclusion(t *testing.T) {
	experts := newFakeExpertRepo(testExpert())
	ledger := newFakeLedger()
	pub := &recordingPublisher{}
	svc := newService(experts, ledger, pub)

	const n = 32
	results := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Create(context.Background(), validInput(fmt.Sprintf("user%d@example.com", i)))
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	var successes, failures int
	for err := range results {
		if err == nil {
			successes++
			continue
		}
		failures++
		if !errors.Is(err, booking.ErrSlotUnavailable) && !errors.Is(err, booking.ErrSlotTaken) {
			t.Fatalf("unexpected error kind: %v", err)
		}
	}

	require.Equal(t, 1, successes, "exactly one request may win the slot")
	require.Equal(t, n-1, failures)
	require.Equal(t, 1, ledger.count(), "ledger must hold exactly one row")
	require.Len(t, pub.published(), 1, "exactly one slotBooked event")
}

func TestCreateSlotUnavailable(t *testing.T) {
	experts := newFakeExpertRepo(testExpert())
	ledger := newFakeLedger()
	pub := &recordingPublisher{}
	svc := newService(experts, ledger, pub)

	cases := []struct {
		name  string
		input booking.CreateInput
	}{
		{"unknown expert", booking.CreateInput{ExpertID: "nope", Date: "2026-03-01", Time: "10:00 AM", UserEmail: "a@example.com"}},
		{"unknown slot", booking.CreateInput{ExpertID: "exp-1", Date: "2026-03-01", Time: "09:00 PM", UserEmail: "a@example.com"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.input)
			require.ErrorIs(t, err, booking.ErrSlotUnavailable)
		})
	}

	require.Zero(t, ledger.count())
	require.Empty(t, pub.published(), "failed attempts must not publish")
}

func TestCreateLostRaceAtInsert(t *testing.T) {
	experts := newFakeExpertRepo(testExpert())
	ledger := newFakeLedger()
	pub := &recordingPublisher{}
	svc := newService(experts, ledger, pub)

	// Seed the ledger directly so the slot projection still shows free:
	// the probe passes, the insert loses.
	require.NoError(t, ledger.Insert(context.Background(), &models.Booking{
		ID: "pre", ExpertID: "exp-1", Date: "2026-03-01", Time: "10:00 AM",
	}))

	_, err := svc.Create(context.Background(), validInput("b@example.com"))
	require.ErrorIs(t, err, booking.ErrSlotTaken)
	require.Len(t, pub.published(), 0)
}

func TestCreateSucceedsWhenSlotMarkFails(t *testing.T) {
	experts := newFakeExpertRepo(testExpert())
	experts.markErr = errors.New("write concern failure")
	ledger := newFakeLedger()
	pub := &recordingPublisher{}
	svc := newService(experts, ledger, pub)

	b, err := svc.Create(context.Background(), validInput("c@example.com"))
	require.NoError(t, err, "slot mark failure must not fail the booking")
	require.NotNil(t, b)
	require.Equal(t, 1, ledger.count())
	require.Len(t, pub.published(), 1)
}

func TestCreateThenImmediateRetry(t *testing.T) {
	experts := newFakeExpertRepo(testExpert())
	ledger := newFakeLedger()
	pub := &recordingPublisher{}
	svc := newService(experts, ledger, pub)

	a, err := svc.Create(context.Background(), validInput("a@example.com"))
	require.NoError(t, err)
	require.Equal(t, models.StatusConfirmed, a.Status)
	require.NotEmpty(t, a.ID)
	require.Equal(t, 1, ledger.count())

	events := pub.published()
	require.Len(t, events, 1)
	require.Equal(t, booking.SlotBookedPayload{ExpertID: "exp-1", Date: "2026-03-01", Time: "10:00 AM"}, events[0])

	// The projection is now flipped, so the retry dies at the probe.
	_, err = svc.Create(context.Background(), validInput("b@example.com"))
	require.ErrorIs(t, err, booking.ErrSlotUnavailable)
	require.Equal(t, 1, ledger.count())
	require.Len(t, pub.published(), 1)

	e, err := experts.GetByID(context.Background(), "exp-1")
	require.NoError(t, err)
	require.True(t, e.Slots[0].IsBooked)
	require.False(t, e.Slots[1].IsBooked, "other slots stay available")
}

func TestListByEmailOrdering(t *testing.T) {
	experts := newFakeExpertRepo(testExpert())
	ledger := newFakeLedger()
	svc := newService(experts, ledger, &recordingPublisher{})

	base := time.Now()
	for i, slot := range []string{"t1", "t2", "t3"} {
		require.NoError(t, ledger.Insert(context.Background(), &models.Booking{
			ID:        slot,
			ExpertID:  "exp-1",
			UserEmail: "same@example.com",
			Date:      "2026-03-01",
			Time:      slot,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}))
	}

	got, err := svc.ListByEmail(context.Background(), "same@example.com")
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "t3", got[0].ID)
	require.Equal(t, "t2", got[1].ID)
	require.Equal(t, "t1", got[2].ID)
}

func TestUpdateStatus(t *testing.T) {
	experts := newFakeExpertRepo(testExpert())
	ledger := newFakeLedger()
	svc := newService(experts, ledger, &recordingPublisher{})

	created, err := svc.Create(context.Background(), validInput("d@example.com"))
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(context.Background(), created.ID, models.StatusCompleted)
	require.NoError(t, err)
	require.Equal(t, models.StatusCompleted, updated.Status)

	_, err = svc.UpdateStatus(context.Background(), created.ID, "Cancelled")
	require.ErrorIs(t, err, booking.ErrInvalidStatus)

	_, err = svc.UpdateStatus(context.Background(), "missing-id", models.StatusPending)
	require.ErrorIs(t, err, booking.ErrNotFound)
}

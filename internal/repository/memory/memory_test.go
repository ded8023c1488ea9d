package memory

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"driveu/internal/domain"
	"driveu/internal/repository"
)

var (
	_ repository.UserRepository    = (*UserStore)(nil)
	_ repository.DriverRepository  = (*DriverStore)(nil)
	_ repository.BookingRepository = (*BookingStore)(nil)
	_ repository.PlaceRepository   = (*PlaceStore)(nil)
	_ repository.AccountRepository = (*AccountStore)(nil)
)

func TestDriverStore_ReserveIsExclusive(t *testing.T) {
	ctx := context.Background()
	store := NewDriverStore()
	if err := store.Create(ctx, &domain.Driver{ID: "driver-1", Available: true, HourlyRate: 150}); err != nil {
		t.Fatalf("create: %v", err)
	}

	var wins int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, err := store.Reserve(ctx, "driver-1", "booking-"+string(rune('a'+i%26)))
			if err != nil {
				t.Errorf("reserve: %v", err)
				return
			}
			if ok {
				atomic.AddInt32(&wins, 1)
			}
		}(i)
	}
	wg.Wait()

	if wins != 1 {
		t.Fatalf("expected exactly one reservation to win, got %d", wins)
	}
}

func TestDriverStore_ReleaseOnlyByHolder(t *testing.T) {
	ctx := context.Background()
	store := NewDriverStore()
	_ = store.Create(ctx, &domain.Driver{ID: "driver-1", Available: true})

	if ok, _ := store.Reserve(ctx, "driver-1", "booking-1"); !ok {
		t.Fatal("expected first reservation to succeed")
	}
	if err := store.Release(ctx, "driver-1", "booking-2"); err != nil {
		t.Fatalf("release: %v", err)
	}
	d, _ := store.GetByID(ctx, "driver-1")
	if d.Available || d.ActiveBookingID != "booking-1" {
		t.Fatalf("foreign release must not free the driver: %+v", d)
	}

	if err := store.Release(ctx, "driver-1", "booking-1"); err != nil {
		t.Fatalf("release: %v", err)
	}
	d, _ = store.GetByID(ctx, "driver-1")
	if !d.Available || d.ActiveBookingID != "" {
		t.Fatalf("expected driver to be free, got %+v", d)
	}
}

func TestDriverStore_RecordTripRunningAverage(t *testing.T) {
	ctx := context.Background()
	store := NewDriverStore()
	_ = store.Create(ctx, &domain.Driver{ID: "driver-1", Rating: 4, CompletedTrips: 2, TotalEarnings: 300})

	if err := store.RecordTrip(ctx, "driver-1", 450, 5); err != nil {
		t.Fatalf("record trip: %v", err)
	}

	d, _ := store.GetByID(ctx, "driver-1")
	if d.CompletedTrips != 3 || d.TotalEarnings != 750 {
		t.Errorf("unexpected totals: trips=%d earnings=%v", d.CompletedTrips, d.TotalEarnings)
	}
	if d.Rating != 4.33 {
		t.Errorf("expected rating 4.33, got %v", d.Rating)
	}
}

func TestBookingStore_UpdateComparesStatus(t *testing.T) {
	ctx := context.Background()
	store := NewBookingStore()
	b := &domain.Booking{ID: "b-1", Status: domain.BookingStatusRequested}
	_ = store.Create(ctx, b)

	accepted := *b
	accepted.Status = domain.BookingStatusAccepted
	if err := store.Update(ctx, &accepted, domain.BookingStatusRequested); err != nil {
		t.Fatalf("first update: %v", err)
	}

	denied := *b
	denied.Status = domain.BookingStatusDenied
	if err := store.Update(ctx, &denied, domain.BookingStatusRequested); !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("expected ErrConflict for stale status, got %v", err)
	}

	got, _ := store.GetByID(ctx, "b-1")
	if got.Status != domain.BookingStatusAccepted {
		t.Errorf("expected ACCEPTED to survive, got %s", got.Status)
	}
}

func TestBookingStore_ListOrdering(t *testing.T) {
	ctx := context.Background()
	store := NewBookingStore()
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"b-1", "b-2", "b-3"} {
		_ = store.Create(ctx, &domain.Booking{
			ID:          id,
			OwnerID:     "owner-1",
			DriverID:    "driver-1",
			Status:      domain.BookingStatusRequested,
			RequestedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	history, _ := store.ListByOwner(ctx, "owner-1", 2)
	if len(history) != 2 || history[0].ID != "b-3" || history[1].ID != "b-2" {
		t.Errorf("expected newest first limited to 2, got %v", bookingIDs(history))
	}

	incoming, _ := store.ListRequestedForDriver(ctx, "driver-1")
	if len(incoming) != 3 || incoming[0].ID != "b-1" {
		t.Errorf("expected oldest first, got %v", bookingIDs(incoming))
	}
}

func TestUserStore_EmailIsUnique(t *testing.T) {
	ctx := context.Background()
	store := NewUserStore()
	_ = store.Create(ctx, &domain.User{ID: "u-1", Email: "asha@example.com"})

	err := store.Create(ctx, &domain.User{ID: "u-2", Email: "ASHA@example.com"})
	if !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	u, err := store.GetByEmail(ctx, "Asha@Example.com")
	if err != nil || u.ID != "u-1" {
		t.Fatalf("expected case-insensitive lookup, got %v, %v", u, err)
	}
}

func TestAccountStore_ConflictWritesNothing(t *testing.T) {
	ctx := context.Background()
	users := NewUserStore()
	drivers := NewDriverStore()
	accounts := NewAccountStore(users, drivers)

	if err := drivers.Create(ctx, &domain.Driver{ID: "d1", HourlyRate: 150}); err != nil {
		t.Fatalf("create driver: %v", err)
	}

	user := &domain.User{ID: "d1", Email: "d1@example.com", Role: domain.RoleDriver}
	err := accounts.CreateAccount(ctx, user, &domain.Driver{ID: "d1", HourlyRate: 150})
	if !errors.Is(err, repository.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if _, err := users.GetByID(ctx, "d1"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("user row must not be written on conflict, got %v", err)
	}

	owner := &domain.User{ID: "o1", Email: "o1@example.com", Role: domain.RoleOwner}
	if err := accounts.CreateAccount(ctx, owner, nil); err != nil {
		t.Fatalf("create owner: %v", err)
	}
	if _, err := users.GetByID(ctx, "o1"); err != nil {
		t.Errorf("expected owner stored, got %v", err)
	}
}

func TestLocationIndex_IsIndexed(t *testing.T) {
	ctx := context.Background()
	index := NewLocationIndex()
	index.UpdateLocation(ctx, "d1", 28.6, 77.2)

	if ok, _ := index.IsIndexed(ctx, "d1"); !ok {
		t.Error("expected d1 indexed")
	}
	index.RemoveLocation(ctx, "d1")
	if ok, _ := index.IsIndexed(ctx, "d1"); ok {
		t.Error("expected d1 removed")
	}
}

func TestLocationIndex_FindNearbySorted(t *testing.T) {
	ctx := context.Background()
	idx := NewLocationIndex()
	_ = idx.UpdateLocation(ctx, "far", 28.70, 77.2)
	_ = idx.UpdateLocation(ctx, "near", 28.61, 77.2)
	_ = idx.UpdateLocation(ctx, "mid", 28.63, 77.2)

	got, err := idx.FindNearbyDrivers(ctx, 28.6, 77.2, 5)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got) != 2 || got[0].DriverID != "near" || got[1].DriverID != "mid" {
		t.Fatalf("unexpected result %+v", got)
	}
}

func TestLockStore_ExclusiveUntilReleasedOrExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	locks := NewLockStore()
	locks.now = func() time.Time { return now }

	token, _ := locks.AcquireBookingLock(ctx, "b-1", time.Second)
	if token == "" {
		t.Fatal("expected lock")
	}
	if again, _ := locks.AcquireBookingLock(ctx, "b-1", time.Second); again != "" {
		t.Fatal("expected lock to be held")
	}

	_ = locks.ReleaseBookingLock(ctx, "b-1", "someone-else")
	if again, _ := locks.AcquireBookingLock(ctx, "b-1", time.Second); again != "" {
		t.Fatal("release with a foreign token must not unlock")
	}

	now = now.Add(2 * time.Second)
	if again, _ := locks.AcquireBookingLock(ctx, "b-1", time.Second); again == "" {
		t.Fatal("expected expired lock to be re-acquirable")
	}
}

func TestResponseStore_Expires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewResponseStore()
	store.now = func() time.Time { return now }

	if _, found, _ := store.GetResponse(ctx, "k"); found {
		t.Fatal("expected miss on empty store")
	}
	_ = store.SetResponse(ctx, "k", []byte(`{"ok":true}`), time.Minute)

	data, found, err := store.GetResponse(ctx, "k")
	if err != nil || !found || string(data) != `{"ok":true}` {
		t.Fatalf("expected stored response, got %q %v %v", data, found, err)
	}

	now = now.Add(time.Minute)
	if _, found, _ := store.GetResponse(ctx, "k"); found {
		t.Fatal("expected response to expire")
	}
}

func bookingIDs(bs []*domain.Booking) []string {
	out := make([]string, len(bs))
	for i, b := range bs {
		out[i] = b.ID
	}
	return out
}

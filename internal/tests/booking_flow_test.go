package tests

import (
	"context"
	"errors"
	"sync"
	"testing"

	"driveu/internal/domain"
	"driveu/internal/service"
	"driveu/internal/session"
)

// ──────────────────────────────────────────────
// 4. BOOKING LIFECYCLE
// ──────────────────────────────────────────────

func createBooking(t *testing.T, f *fixture, owner session.Session, driverID string, hours int) *domain.Booking {
	t.Helper()
	pickup := delhi
	b, err := f.bookingSvc.Create(context.Background(), owner, service.CreateBookingRequest{
		DriverID:    driverID,
		Pickup:      &pickup,
		Destination: indiaGate,
		Hours:       hours,
	})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return b
}

func TestBookingFlow_HappyPath(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	owner := f.addOwner(t, "owner-1", &delhi)
	drv := f.addDriver(t, "driver-1", nearDelhi, 150)

	matches, err := f.driverSvc.FindAvailable(ctx, owner, service.AvailableDriversQuery{})
	if err != nil {
		t.Fatalf("find drivers: %v", err)
	}
	if len(matches) != 1 || matches[0].Driver.ID != "driver-1" {
		t.Fatalf("expected driver-1 nearby, got %+v", matches)
	}

	b := createBooking(t, f, owner, "driver-1", 3)
	if b.Status != domain.BookingStatusRequested {
		t.Errorf("expected REQUESTED, got %s", b.Status)
	}
	if b.Fare != 450 {
		t.Errorf("expected fare 450, got %v", b.Fare)
	}
	if b.DistanceKm <= 0 || b.EstimatedMinutes <= 0 {
		t.Errorf("expected pickup distance and ETA, got %v km / %d min", b.DistanceKm, b.EstimatedMinutes)
	}

	accepted, err := f.bookingSvc.Accept(ctx, drv, b.ID)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if accepted.Status != domain.BookingStatusAccepted {
		t.Errorf("expected ACCEPTED, got %s", accepted.Status)
	}
	if accepted.OTP != "" {
		t.Error("the driver must not see the OTP")
	}
	if d := f.driver(t, "driver-1"); d.Available || d.ActiveBookingID != b.ID {
		t.Errorf("expected driver reserved for %s, got available=%v active=%q", b.ID, d.Available, d.ActiveBookingID)
	}

	ownerView, err := f.bookingSvc.Get(ctx, owner, b.ID)
	if err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if ownerView.OTP != testOTP {
		t.Fatalf("expected owner to see OTP %s, got %q", testOTP, ownerView.OTP)
	}

	started, err := f.bookingSvc.VerifyOTP(ctx, drv, b.ID, ownerView.OTP, nil)
	if err != nil {
		t.Fatalf("verify otp: %v", err)
	}
	if started.Status != domain.BookingStatusActive {
		t.Errorf("expected ACTIVE, got %s", started.Status)
	}
	if started.ActualStartLocation == nil || *started.ActualStartLocation != delhi {
		t.Errorf("expected start location to default to pickup, got %+v", started.ActualStartLocation)
	}
	if afterStart, _ := f.bookingSvc.Get(ctx, owner, b.ID); afterStart.OTP != "" {
		t.Error("OTP must be hidden once the trip is active")
	}

	end := indiaGate
	done, err := f.bookingSvc.Complete(ctx, owner, b.ID, service.CompleteBookingRequest{
		Rating:      4.5,
		Review:      "  smooth drive ",
		EndLocation: &end,
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Status != domain.BookingStatusCompleted {
		t.Errorf("expected COMPLETED, got %s", done.Status)
	}
	if done.Rating == nil || *done.Rating != 4.5 {
		t.Errorf("expected rating 4.5, got %v", done.Rating)
	}
	if done.Review != "smooth drive" {
		t.Errorf("expected trimmed review, got %q", done.Review)
	}
	if done.ActualDistanceKm <= 0 {
		t.Errorf("expected actual distance from start and end, got %v", done.ActualDistanceKm)
	}

	d := f.driver(t, "driver-1")
	if !d.Available || d.ActiveBookingID != "" {
		t.Errorf("expected driver released, got available=%v active=%q", d.Available, d.ActiveBookingID)
	}
	if d.CompletedTrips != 1 || d.TotalEarnings != 450 || d.Rating != 4.5 {
		t.Errorf("unexpected driver stats: trips=%d earnings=%v rating=%v", d.CompletedTrips, d.TotalEarnings, d.Rating)
	}

	want := []domain.EventType{
		domain.EventBookingRequested,
		domain.EventBookingAccepted,
		domain.EventTripStarted,
		domain.EventBookingCompleted,
	}
	got := f.notifier.Types()
	if len(got) != len(want) {
		t.Fatalf("expected events %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d: expected %s, got %s", i, want[i], got[i])
		}
	}

	if f.locks.IsLocked(b.ID) {
		t.Error("booking lock must be released after each transition")
	}
}

func TestBookingCreate_Validation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	owner := f.addOwner(t, "owner-1", &delhi)
	drv := f.addDriver(t, "driver-1", nearDelhi, 150)

	testCases := []struct {
		name    string
		sess    session.Session
		req     service.CreateBookingRequest
		wantErr error
	}{
		{
			name:    "driver cannot book",
			sess:    drv,
			req:     service.CreateBookingRequest{DriverID: "driver-1", Destination: indiaGate, Hours: 2},
			wantErr: service.ErrForbidden,
		},
		{
			name:    "missing driver id",
			sess:    owner,
			req:     service.CreateBookingRequest{Destination: indiaGate, Hours: 2},
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name:    "unknown plan",
			sess:    owner,
			req:     service.CreateBookingRequest{DriverID: "driver-1", Destination: indiaGate, Hours: 5},
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name:    "zero hours",
			sess:    owner,
			req:     service.CreateBookingRequest{DriverID: "driver-1", Destination: indiaGate, Hours: 0},
			wantErr: domain.ErrInvalidArgument,
		},
		{
			name:    "destination out of range",
			sess:    owner,
			req:     service.CreateBookingRequest{DriverID: "driver-1", Destination: domain.Location{Lat: 95}, Hours: 2},
			wantErr: domain.ErrInvalidArgument,
		},
	}

	for _, tc := range testCases {
		_, err := f.bookingSvc.Create(ctx, tc.sess, tc.req)
		if !errors.Is(err, tc.wantErr) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}

	if types := f.notifier.Types(); len(types) != 0 {
		t.Errorf("rejected requests must not publish events, got %v", types)
	}
}

func TestBookingCreate_ReservedDriverUnavailable(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	owner := f.addOwner(t, "owner-1", &delhi)
	other := f.addOwner(t, "owner-2", &delhi)
	drv := f.addDriver(t, "driver-1", nearDelhi, 150)

	b := createBooking(t, f, owner, "driver-1", 1)
	if _, err := f.bookingSvc.Accept(ctx, drv, b.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}

	_, err := f.bookingSvc.Create(ctx, other, service.CreateBookingRequest{DriverID: "driver-1", Destination: indiaGate, Hours: 1})
	if !errors.Is(err, service.ErrDriverUnavailable) {
		t.Fatalf("expected ErrDriverUnavailable, got %v", err)
	}

	matches, err := f.driverSvc.FindAvailable(ctx, other, service.AvailableDriversQuery{})
	if err != nil {
		t.Fatalf("find drivers: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("reserved driver must not be listed, got %+v", matches)
	}
}

func TestBookingAccept_OnlyAssignedDriver(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	owner := f.addOwner(t, "owner-1", &delhi)
	f.addDriver(t, "driver-1", nearDelhi, 150)
	intruder := f.addDriver(t, "driver-2", nearDelhi, 150)

	b := createBooking(t, f, owner, "driver-1", 2)

	if _, err := f.bookingSvc.Accept(ctx, intruder, b.ID); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("expected ErrForbidden for another driver, got %v", err)
	}
	if _, err := f.bookingSvc.Accept(ctx, owner, b.ID); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("expected ErrForbidden for the owner, got %v", err)
	}
	if got := f.stored(t, b.ID); got.Status != domain.BookingStatusRequested {
		t.Errorf("expected booking untouched, got %s", got.Status)
	}
}

func TestBookingAccept_ConcurrentRequestsReserveOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	drv := f.addDriver(t, "driver-1", nearDelhi, 150)

	const owners = 8
	ids := make([]string, owners)
	for i := 0; i < owners; i++ {
		owner := f.addOwner(t, string(rune('a'+i))+"-owner", &delhi)
		ids[i] = createBooking(t, f, owner, "driver-1", 1).ID
	}

	var wg sync.WaitGroup
	results := make(chan error, owners)
	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			_, err := f.bookingSvc.Accept(ctx, drv, id)
			results <- err
		}(id)
	}
	wg.Wait()
	close(results)

	var accepted, busy int
	for err := range results {
		switch {
		case err == nil:
			accepted++
		case errors.Is(err, service.ErrDriverBusy):
			busy++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if accepted != 1 || busy != owners-1 {
		t.Fatalf("expected 1 accept and %d busy, got %d and %d", owners-1, accepted, busy)
	}

	var acceptedStored int
	for _, id := range ids {
		if f.stored(t, id).Status == domain.BookingStatusAccepted {
			acceptedStored++
		}
	}
	if acceptedStored != 1 {
		t.Errorf("expected exactly one stored ACCEPTED booking, got %d", acceptedStored)
	}
}

func TestBookingAccept_PersistFailureReleasesDriver(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	owner := f.addOwner(t, "owner-1", &delhi)
	drv := f.addDriver(t, "driver-1", nearDelhi, 150)
	b := createBooking(t, f, owner, "driver-1", 2)

	dbErr := errors.New("connection reset")
	f.bookings.UpdateError = dbErr

	if _, err := f.bookingSvc.Accept(ctx, drv, b.ID); !errors.Is(err, dbErr) {
		t.Fatalf("expected storage error, got %v", err)
	}
	if d := f.driver(t, "driver-1"); !d.Available || d.ActiveBookingID != "" {
		t.Errorf("expected reservation rolled back, got available=%v active=%q", d.Available, d.ActiveBookingID)
	}
	if got := f.stored(t, b.ID); got.Status != domain.BookingStatusRequested || got.OTP != "" {
		t.Errorf("expected booking untouched, got %s otp=%q", got.Status, got.OTP)
	}
}

func TestBookingAccept_LockHeld(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	owner := f.addOwner(t, "owner-1", &delhi)
	drv := f.addDriver(t, "driver-1", nearDelhi, 150)
	b := createBooking(t, f, owner, "driver-1", 2)

	f.locks.ForceAcquireFailure = true

	if _, err := f.bookingSvc.Accept(ctx, drv, b.ID); !errors.Is(err, service.ErrBookingBusy) {
		t.Fatalf("expected ErrBookingBusy, got %v", err)
	}
	if f.bookings.UpdateCallCount != 0 {
		t.Error("storage must not be touched without the lock")
	}
}

func TestBookingVerifyOTP_MismatchLeavesBookingUnchanged(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	owner := f.addOwner(t, "owner-1", &delhi)
	drv := f.addDriver(t, "driver-1", nearDelhi, 150)
	b := createBooking(t, f, owner, "driver-1", 2)
	if _, err := f.bookingSvc.Accept(ctx, drv, b.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	before := *f.stored(t, b.ID)

	for _, wrong := range []string{"0000", "12345", "", " 1234"} {
		_, err := f.bookingSvc.VerifyOTP(ctx, drv, b.ID, wrong, nil)
		if !errors.Is(err, domain.ErrOTPMismatch) {
			t.Fatalf("otp %q: expected ErrOTPMismatch, got %v", wrong, err)
		}
		if errors.Is(err, domain.ErrInvalidState) || errors.Is(err, domain.ErrInvalidArgument) {
			t.Fatalf("otp %q: mismatch must be distinguishable, got %v", wrong, err)
		}
	}

	if after := *f.stored(t, b.ID); after.Status != before.Status || after.OTP != before.OTP ||
		!after.StartedAt.Equal(before.StartedAt) || after.ActualStartLocation != nil {
		t.Errorf("booking changed after mismatches: before=%+v after=%+v", before, after)
	}
	for _, typ := range f.notifier.Types() {
		if typ == domain.EventTripStarted {
			t.Error("trip.started published for a mismatched OTP")
		}
	}

	// The correct code still works afterwards.
	current := gurgaonPark
	started, err := f.bookingSvc.VerifyOTP(ctx, drv, b.ID, testOTP, &current)
	if err != nil {
		t.Fatalf("verify with correct otp: %v", err)
	}
	if started.Status != domain.BookingStatusActive {
		t.Errorf("expected ACTIVE, got %s", started.Status)
	}
	if started.ActualStartLocation == nil || *started.ActualStartLocation != gurgaonPark {
		t.Errorf("expected reported start location, got %+v", started.ActualStartLocation)
	}
}

func TestBookingDeny_IsTerminal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	owner := f.addOwner(t, "owner-1", &delhi)
	drv := f.addDriver(t, "driver-1", nearDelhi, 150)
	b := createBooking(t, f, owner, "driver-1", 2)

	denied, err := f.bookingSvc.Deny(ctx, drv, b.ID)
	if err != nil {
		t.Fatalf("deny: %v", err)
	}
	if denied.Status != domain.BookingStatusDenied {
		t.Fatalf("expected DENIED, got %s", denied.Status)
	}
	if d := f.driver(t, "driver-1"); !d.Available {
		t.Error("denying must leave the driver available")
	}

	if _, err := f.bookingSvc.Accept(ctx, drv, b.ID); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("accept after deny: expected ErrInvalidState, got %v", err)
	}
	if _, err := f.bookingSvc.Deny(ctx, drv, b.ID); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("deny twice: expected ErrInvalidState, got %v", err)
	}
}

func TestBookingTransitions_IllegalFromEachState(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	owner := f.addOwner(t, "owner-1", &delhi)
	drv := f.addDriver(t, "driver-1", nearDelhi, 150)
	b := createBooking(t, f, owner, "driver-1", 1)

	complete := service.CompleteBookingRequest{Rating: 5}

	// REQUESTED
	if _, err := f.bookingSvc.VerifyOTP(ctx, drv, b.ID, testOTP, nil); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("verify from REQUESTED: expected ErrInvalidState, got %v", err)
	}
	if _, err := f.bookingSvc.Complete(ctx, owner, b.ID, complete); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("complete from REQUESTED: expected ErrInvalidState, got %v", err)
	}

	// ACCEPTED
	if _, err := f.bookingSvc.Accept(ctx, drv, b.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := f.bookingSvc.Deny(ctx, drv, b.ID); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("deny from ACCEPTED: expected ErrInvalidState, got %v", err)
	}
	if _, err := f.bookingSvc.Complete(ctx, owner, b.ID, complete); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("complete from ACCEPTED: expected ErrInvalidState, got %v", err)
	}

	// ACTIVE
	if _, err := f.bookingSvc.VerifyOTP(ctx, drv, b.ID, testOTP, nil); err != nil {
		t.Fatalf("verify: %v", err)
	}
	if _, err := f.bookingSvc.VerifyOTP(ctx, drv, b.ID, testOTP, nil); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("verify from ACTIVE: expected ErrInvalidState, got %v", err)
	}
	if _, err := f.bookingSvc.Accept(ctx, drv, b.ID); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("accept from ACTIVE: expected ErrInvalidState, got %v", err)
	}

	// COMPLETED
	if _, err := f.bookingSvc.Complete(ctx, drv, b.ID, complete); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if _, err := f.bookingSvc.Complete(ctx, owner, b.ID, complete); !errors.Is(err, domain.ErrInvalidState) {
		t.Errorf("complete twice: expected ErrInvalidState, got %v", err)
	}
	if d := f.driver(t, "driver-1"); d.CompletedTrips != 1 {
		t.Errorf("expected one recorded trip, got %d", d.CompletedTrips)
	}
}

func TestBookingComplete_InvalidRating(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	owner := f.addOwner(t, "owner-1", &delhi)
	drv := f.addDriver(t, "driver-1", nearDelhi, 150)
	b := createBooking(t, f, owner, "driver-1", 1)
	f.bookingSvc.Accept(ctx, drv, b.ID)
	f.bookingSvc.VerifyOTP(ctx, drv, b.ID, testOTP, nil)

	for _, r := range []float64{0, 0.9, 5.1, 4.25, -3} {
		_, err := f.bookingSvc.Complete(ctx, owner, b.ID, service.CompleteBookingRequest{Rating: r})
		if !errors.Is(err, domain.ErrInvalidArgument) {
			t.Errorf("rating %v: expected ErrInvalidArgument, got %v", r, err)
		}
	}
	if got := f.stored(t, b.ID); got.Status != domain.BookingStatusActive {
		t.Errorf("expected booking to stay ACTIVE, got %s", got.Status)
	}

	stranger := f.addOwner(t, "owner-2", nil)
	if _, err := f.bookingSvc.Complete(ctx, stranger, b.ID, service.CompleteBookingRequest{Rating: 5}); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("expected ErrForbidden for a non-participant, got %v", err)
	}
}

func TestBookingNotifierFailure_DoesNotFailOperation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	f.notifier.PublishError = errors.New("broker unreachable")

	owner := f.addOwner(t, "owner-1", &delhi)
	drv := f.addDriver(t, "driver-1", nearDelhi, 150)
	b := createBooking(t, f, owner, "driver-1", 1)

	if _, err := f.bookingSvc.Accept(ctx, drv, b.ID); err != nil {
		t.Fatalf("accept must succeed when publishing fails: %v", err)
	}
	if len(f.notifier.Types()) != 2 {
		t.Errorf("expected both publish attempts recorded, got %v", f.notifier.Types())
	}
}

// ──────────────────────────────────────────────
// 5. BOOKING QUERIES
// ──────────────────────────────────────────────

func TestBookingGet_ParticipantsOnly(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	owner := f.addOwner(t, "owner-1", &delhi)
	drv := f.addDriver(t, "driver-1", nearDelhi, 150)
	stranger := f.addOwner(t, "owner-2", &delhi)
	b := createBooking(t, f, owner, "driver-1", 1)

	if _, err := f.bookingSvc.Get(ctx, drv, b.ID); err != nil {
		t.Errorf("driver get: %v", err)
	}
	if _, err := f.bookingSvc.Get(ctx, stranger, b.ID); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestBookingHistory_ByRole(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	owner := f.addOwner(t, "owner-1", &delhi)
	other := f.addOwner(t, "owner-2", &delhi)
	drv := f.addDriver(t, "driver-1", nearDelhi, 150)
	f.addDriver(t, "driver-2", nearDelhi, 200)

	createBooking(t, f, owner, "driver-1", 1)
	createBooking(t, f, owner, "driver-2", 2)
	createBooking(t, f, other, "driver-1", 3)

	ownerHistory, err := f.bookingSvc.History(ctx, owner)
	if err != nil {
		t.Fatalf("owner history: %v", err)
	}
	if len(ownerHistory) != 2 {
		t.Errorf("expected 2 owner bookings, got %d", len(ownerHistory))
	}
	for _, b := range ownerHistory {
		if b.OwnerID != "owner-1" {
			t.Errorf("foreign booking in owner history: %+v", b)
		}
	}

	driverHistory, err := f.bookingSvc.History(ctx, drv)
	if err != nil {
		t.Fatalf("driver history: %v", err)
	}
	if len(driverHistory) != 2 {
		t.Errorf("expected 2 driver bookings, got %d", len(driverHistory))
	}
}

func TestBookingIncoming_ClosestPickupFirst(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	drv := f.addDriver(t, "driver-1", delhi, 150)
	far := f.addOwner(t, "owner-far", nil)
	near := f.addOwner(t, "owner-near", nil)
	none := f.addOwner(t, "owner-none", nil)

	farPickup := gurgaonPark
	nearPickup := nearDelhi

	mustCreate := func(sess session.Session, pickup *domain.Location) *domain.Booking {
		b, err := f.bookingSvc.Create(ctx, sess, service.CreateBookingRequest{
			DriverID: "driver-1", Pickup: pickup, Destination: indiaGate, Hours: 1,
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		return b
	}
	noPickup := mustCreate(none, nil)
	farBooking := mustCreate(far, &farPickup)
	nearBooking := mustCreate(near, &nearPickup)

	incoming, err := f.bookingSvc.Incoming(ctx, drv)
	if err != nil {
		t.Fatalf("incoming: %v", err)
	}
	if len(incoming) != 3 {
		t.Fatalf("expected 3 pending requests, got %d", len(incoming))
	}

	wantOrder := []string{nearBooking.ID, farBooking.ID, noPickup.ID}
	for i, id := range wantOrder {
		if incoming[i].Booking.ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, incoming[i].Booking.ID)
		}
	}
	if incoming[2].PickupDistanceKm != nil {
		t.Error("a request without pickup has no distance")
	}

	if _, err := f.bookingSvc.Incoming(ctx, far); !errors.Is(err, service.ErrForbidden) {
		t.Errorf("owners have no incoming list, got %v", err)
	}
}

func TestBookingCreate_OfflineDriverRejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	owner := f.addOwner(t, "owner-1", &delhi)
	drv := f.addDriver(t, "driver-1", nearDelhi, 150)

	if err := f.driverSvc.GoOffline(ctx, drv); err != nil {
		t.Fatalf("go offline: %v", err)
	}

	pickup := delhi
	_, err := f.bookingSvc.Create(ctx, owner, service.CreateBookingRequest{
		DriverID:    "driver-1",
		Pickup:      &pickup,
		Destination: indiaGate,
		Hours:       2,
	})
	if !errors.Is(err, service.ErrDriverUnavailable) {
		t.Fatalf("expected ErrDriverUnavailable, got %v", err)
	}

	if _, err := f.driverSvc.UpdateLocation(ctx, drv, service.UpdateLocationRequest{Lat: nearDelhi.Lat, Lng: nearDelhi.Lng}); err != nil {
		t.Fatalf("update location: %v", err)
	}
	createBooking(t, f, owner, "driver-1", 2)
}

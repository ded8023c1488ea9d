package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"driveu/internal/booking"
	"driveu/internal/domain"
	"driveu/internal/fare"
	"driveu/internal/geo"
	"driveu/internal/redis"
	"driveu/internal/repository"
	"driveu/internal/session"
)

// AvailabilityStore reserves drivers for bookings atomically.
type AvailabilityStore interface {
	// Reserve flips the driver from available to reserved for bookingID.
	// It returns false if the driver is already reserved.
	Reserve(ctx context.Context, driverID, bookingID string) (bool, error)

	// Release frees the driver if bookingID still holds it.
	Release(ctx context.Context, driverID, bookingID string) error
}

// BookingSettings tunes BookingService.
type BookingSettings struct {
	LockTTL     time.Duration
	AvgSpeedKmh float64
}

const historyLimit = 100

// BookingService orchestrates the booking lifecycle against storage,
// driver availability and notifications.
type BookingService struct {
	bookingRepo  repository.BookingRepository
	driverRepo   repository.DriverRepository
	availability AvailabilityStore
	lockStore    redis.LockStoreInterface
	matcher      *MatchingService // for cache invalidation, optional
	lifecycle    *booking.Lifecycle
	notifier     Notifier
	settings     BookingSettings
	log          *slog.Logger
	now          func() time.Time
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookingRepo repository.BookingRepository,
	driverRepo repository.DriverRepository,
	availability AvailabilityStore,
	lockStore redis.LockStoreInterface,
	matcher *MatchingService,
	lifecycle *booking.Lifecycle,
	notifier Notifier,
	settings BookingSettings,
	log *slog.Logger,
) *BookingService {
	if settings.LockTTL <= 0 {
		settings.LockTTL = 5 * time.Second
	}
	if settings.AvgSpeedKmh <= 0 {
		settings.AvgSpeedKmh = fare.DefaultAvgSpeedKmh
	}
	return &BookingService{
		bookingRepo:  bookingRepo,
		driverRepo:   driverRepo,
		availability: availability,
		lockStore:    lockStore,
		matcher:      matcher,
		lifecycle:    lifecycle,
		notifier:     notifier,
		settings:     settings,
		log:          log,
		now:          time.Now,
	}
}

// CreateBookingRequest contains the parameters for booking a driver.
type CreateBookingRequest struct {
	DriverID    string
	Pickup      *domain.Location
	Destination domain.Location
	Hours       int
}

// Create books an available driver for one of the hourly plans. The fare is
// fixed from the driver's current rate.
func (s *BookingService) Create(ctx context.Context, sess session.Session, req CreateBookingRequest) (*domain.Booking, error) {
	if !sess.IsOwner() {
		return nil, ErrForbidden
	}
	if req.DriverID == "" {
		return nil, invalidArgument("driver id is required")
	}
	if !req.Destination.Valid() || (req.Pickup != nil && !req.Pickup.Valid()) {
		return nil, ErrInvalidLocation
	}

	plan, ok := domain.PlanByHours(req.Hours)
	if !ok {
		return nil, ErrInvalidPlan
	}

	driver, err := s.driverRepo.GetByID(ctx, req.DriverID)
	if err != nil {
		return nil, err
	}
	if !driver.Available {
		return nil, ErrDriverUnavailable
	}
	// Offline drivers are out of the geo index and cannot be booked by id.
	online, err := s.matcher.isIndexed(ctx, driver.ID)
	if err != nil {
		return nil, err
	}
	if !online {
		return nil, ErrDriverUnavailable
	}

	b, err := s.lifecycle.Create(sess.UserID, driver.ID, req.Destination, plan, driver.HourlyRate)
	if err != nil {
		return nil, err
	}

	if req.Pickup != nil {
		pickup := *req.Pickup
		b.Pickup = &pickup
		b.DistanceKm = roundTo(geo.Distance(pickup, req.Destination), 2)
		if eta, err := fare.EstimateEta(b.DistanceKm, s.settings.AvgSpeedKmh); err == nil {
			b.EstimatedMinutes = eta
		}
	}

	if err := s.bookingRepo.Create(ctx, &b); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "booking requested",
		"booking_id", b.ID, "owner_id", b.OwnerID, "driver_id", b.DriverID, "hours", b.DurationHours, "fare", b.Fare)
	notify(ctx, s.notifier, s.log, domain.NewBookingEvent(domain.EventBookingRequested, b, s.now()))

	return &b, nil
}

// Accept confirms a request on behalf of its driver and issues the trip OTP.
// The driver is reserved atomically; a driver already holding another
// booking gets ErrDriverBusy.
func (s *BookingService) Accept(ctx context.Context, sess session.Session, bookingID string) (*domain.Booking, error) {
	var out domain.Booking
	err := s.withLock(ctx, bookingID, func() error {
		current, err := s.loadForDriver(ctx, sess, bookingID)
		if err != nil {
			return err
		}

		next, err := s.lifecycle.Accept(*current)
		if err != nil {
			return err
		}

		reserved, err := s.availability.Reserve(ctx, next.DriverID, next.ID)
		if err != nil {
			return err
		}
		if !reserved {
			return ErrDriverBusy
		}

		if err := s.persist(ctx, &next, current.Status); err != nil {
			if relErr := s.availability.Release(ctx, next.DriverID, next.ID); relErr != nil {
				s.log.ErrorContext(ctx, "failed to release driver after aborted accept",
					"booking_id", next.ID, "driver_id", next.DriverID, "error", relErr)
			}
			return err
		}

		s.matcher.invalidateDriver(ctx, next.DriverID)
		out = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "booking accepted", "booking_id", out.ID, "driver_id", out.DriverID)
	notify(ctx, s.notifier, s.log, domain.NewBookingEvent(domain.EventBookingAccepted, out, s.now()))

	return redactOTP(&out, sess), nil
}

// Deny declines a request on behalf of its driver.
func (s *BookingService) Deny(ctx context.Context, sess session.Session, bookingID string) (*domain.Booking, error) {
	var out domain.Booking
	err := s.withLock(ctx, bookingID, func() error {
		current, err := s.loadForDriver(ctx, sess, bookingID)
		if err != nil {
			return err
		}

		next, err := s.lifecycle.Deny(*current)
		if err != nil {
			return err
		}

		if err := s.persist(ctx, &next, current.Status); err != nil {
			return err
		}
		out = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "booking denied", "booking_id", out.ID, "driver_id", out.DriverID)
	notify(ctx, s.notifier, s.log, domain.NewBookingEvent(domain.EventBookingDenied, out, s.now()))

	return redactOTP(&out, sess), nil
}

// VerifyOTP starts the trip when the driver submits the owner's code. A wrong
// code returns domain.ErrOTPMismatch and leaves the booking untouched.
func (s *BookingService) VerifyOTP(ctx context.Context, sess session.Session, bookingID, otp string, current *domain.Location) (*domain.Booking, error) {
	if current != nil && !current.Valid() {
		return nil, ErrInvalidLocation
	}

	var out domain.Booking
	err := s.withLock(ctx, bookingID, func() error {
		stored, err := s.loadForDriver(ctx, sess, bookingID)
		if err != nil {
			return err
		}

		next, err := s.lifecycle.VerifyOTP(*stored, otp)
		if err != nil {
			return err
		}

		switch {
		case current != nil:
			start := *current
			next.ActualStartLocation = &start
		case stored.Pickup != nil:
			start := *stored.Pickup
			next.ActualStartLocation = &start
		}

		if err := s.persist(ctx, &next, stored.Status); err != nil {
			return err
		}
		out = next
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrOTPMismatch) {
			s.log.InfoContext(ctx, "otp mismatch", "booking_id", bookingID, "driver_id", sess.UserID)
		}
		return nil, err
	}

	s.log.InfoContext(ctx, "trip started", "booking_id", out.ID, "driver_id", out.DriverID)
	notify(ctx, s.notifier, s.log, domain.NewBookingEvent(domain.EventTripStarted, out, s.now()))

	return redactOTP(&out, sess), nil
}

// CompleteBookingRequest contains the trip wrap-up data.
type CompleteBookingRequest struct {
	Rating           float64
	Review           string
	EndLocation      *domain.Location
	ActualDistanceKm *float64
}

// Complete ends an active trip, frees the driver and folds the fare and
// rating into the driver's totals.
func (s *BookingService) Complete(ctx context.Context, sess session.Session, bookingID string, req CompleteBookingRequest) (*domain.Booking, error) {
	if req.EndLocation != nil && !req.EndLocation.Valid() {
		return nil, ErrInvalidLocation
	}
	if req.ActualDistanceKm != nil && !(*req.ActualDistanceKm >= 0) {
		return nil, invalidArgument("actual distance must not be negative")
	}

	var out domain.Booking
	err := s.withLock(ctx, bookingID, func() error {
		current, err := s.bookingRepo.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if !current.HasParticipant(sess.UserID) {
			return ErrForbidden
		}

		next, err := s.lifecycle.Complete(*current, req.Rating, req.Review)
		if err != nil {
			return err
		}

		if req.EndLocation != nil {
			end := *req.EndLocation
			next.ActualEndLocation = &end
		}
		switch {
		case req.ActualDistanceKm != nil:
			next.ActualDistanceKm = roundTo(*req.ActualDistanceKm, 2)
		case next.ActualStartLocation != nil && next.ActualEndLocation != nil:
			next.ActualDistanceKm = roundTo(geo.Distance(*next.ActualStartLocation, *next.ActualEndLocation), 2)
		}
		if !next.StartedAt.IsZero() {
			next.ActualDurationMinutes = int(math.Round(next.CompletedAt.Sub(next.StartedAt).Minutes()))
		}

		if err := s.persist(ctx, &next, current.Status); err != nil {
			return err
		}
		out = next
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The booking is already COMPLETED; driver bookkeeping failures are logged
	// rather than reported as a failed completion.
	if err := s.availability.Release(ctx, out.DriverID, out.ID); err != nil {
		s.log.ErrorContext(ctx, "failed to release driver", "booking_id", out.ID, "driver_id", out.DriverID, "error", err)
	}
	if err := s.driverRepo.RecordTrip(ctx, out.DriverID, out.Fare, *out.Rating); err != nil {
		s.log.ErrorContext(ctx, "failed to record trip", "booking_id", out.ID, "driver_id", out.DriverID, "error", err)
	}
	s.matcher.invalidateDriver(ctx, out.DriverID)

	s.log.InfoContext(ctx, "booking completed", "booking_id", out.ID, "driver_id", out.DriverID, "rating", *out.Rating)
	notify(ctx, s.notifier, s.log, domain.NewBookingEvent(domain.EventBookingCompleted, out, s.now()))

	return redactOTP(&out, sess), nil
}

// Get returns a booking the caller takes part in.
func (s *BookingService) Get(ctx context.Context, sess session.Session, bookingID string) (*domain.Booking, error) {
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.HasParticipant(sess.UserID) {
		return nil, ErrForbidden
	}
	return redactOTP(b, sess), nil
}

// History lists the caller's bookings, newest first: an owner's own bookings
// or the bookings assigned to a driver.
func (s *BookingService) History(ctx context.Context, sess session.Session) ([]*domain.Booking, error) {
	var (
		bookings []*domain.Booking
		err      error
	)
	switch sess.Role {
	case domain.RoleOwner:
		bookings, err = s.bookingRepo.ListByOwner(ctx, sess.UserID, historyLimit)
	case domain.RoleDriver:
		bookings, err = s.bookingRepo.ListByDriver(ctx, sess.UserID, historyLimit)
	default:
		return nil, ErrForbidden
	}
	if err != nil {
		return nil, err
	}

	out := make([]*domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, redactOTP(b, sess))
	}
	return out, nil
}

// IncomingBooking is a pending request with the pickup's distance from the
// driver, when both positions are known.
type IncomingBooking struct {
	Booking          *domain.Booking
	PickupDistanceKm *float64
}

// Incoming lists the driver's pending requests, closest pickup first.
// Requests without a pickup location follow in request order.
func (s *BookingService) Incoming(ctx context.Context, sess session.Session) ([]IncomingBooking, error) {
	if !sess.IsDriver() {
		return nil, ErrForbidden
	}

	pending, err := s.bookingRepo.ListRequestedForDriver(ctx, sess.UserID)
	if err != nil {
		return nil, err
	}

	driver, err := s.driverRepo.GetByID(ctx, sess.UserID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	located := driver != nil && (driver.Location.Lat != 0 || driver.Location.Lng != 0)

	out := make([]IncomingBooking, 0, len(pending))
	for _, b := range pending {
		item := IncomingBooking{Booking: redactOTP(b, sess)}
		if located && b.Pickup != nil {
			d := roundTo(geo.Distance(driver.Location, *b.Pickup), 2)
			item.PickupDistanceKm = &d
		}
		out = append(out, item)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].PickupDistanceKm, out[j].PickupDistanceKm
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})

	return out, nil
}

// loadForDriver fetches a booking and checks the caller is its driver.
func (s *BookingService) loadForDriver(ctx context.Context, sess session.Session, bookingID string) (*domain.Booking, error) {
	if !sess.IsDriver() {
		return nil, ErrForbidden
	}
	b, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.DriverID != sess.UserID {
		return nil, ErrForbidden
	}
	return b, nil
}

// persist writes next if the stored status is still prev.
func (s *BookingService) persist(ctx context.Context, next *domain.Booking, prev domain.BookingStatus) error {
	err := s.bookingRepo.Update(ctx, next, prev)
	if errors.Is(err, repository.ErrConflict) {
		return fmt.Errorf("%w: booking %s changed concurrently", domain.ErrInvalidState, next.ID)
	}
	return err
}

// withLock runs fn while holding the booking's lock.
func (s *BookingService) withLock(ctx context.Context, bookingID string, fn func() error) error {
	if bookingID == "" {
		return invalidArgument("booking id is required")
	}
	if s.lockStore == nil {
		return fn()
	}

	token, err := s.lockStore.AcquireBookingLock(ctx, bookingID, s.settings.LockTTL)
	if err != nil {
		return err
	}
	if token == "" {
		return ErrBookingBusy
	}
	defer func() {
		if err := s.lockStore.ReleaseBookingLock(context.WithoutCancel(ctx), bookingID, token); err != nil {
			s.log.WarnContext(ctx, "failed to release booking lock", "booking_id", bookingID, "error", err)
		}
	}()

	return fn()
}

// redactOTP hides the OTP from everyone but the owner, and from the owner
// once the trip has started.
func redactOTP(b *domain.Booking, sess session.Session) *domain.Booking {
	if b.OTP == "" {
		return b
	}
	visible := sess.UserID == b.OwnerID &&
		(b.Status == domain.BookingStatusRequested || b.Status == domain.BookingStatusAccepted)
	if visible {
		return b
	}
	c := *b
	c.OTP = ""
	return &c
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"bus-booking/internal/data/entity"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/dto/request"
	"bus-booking/internal/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeBusRepo and friends substitute the pgx repositories through the
// repository interfaces. fakeBookingRepo enforces the same uniqueness
// contract as the bookings_schedule_id_seat_number_key index, under a lock,
// so racing CreateIfSeatFree calls behave like racing inserts.

type fakeBusRepo struct {
	mu    sync.Mutex
	buses map[uuid.UUID]*entity.Bus
}

func newFakeBusRepo() *fakeBusRepo {
	return &fakeBusRepo{buses: make(map[uuid.UUID]*entity.Bus)}
}

func (f *fakeBusRepo) Create(ctx context.Context, bus *entity.Bus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.buses[bus.ID] = bus
	return nil
}

func (f *fakeBusRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Bus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.buses[id], nil
}

func (f *fakeBusRepo) FindAll(ctx context.Context) ([]*entity.Bus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Bus, 0, len(f.buses))
	for _, bus := range f.buses {
		out = append(out, bus)
	}
	return out, nil
}

type fakeScheduleRepo struct {
	mu        sync.Mutex
	schedules map[uuid.UUID]*entity.Schedule
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{schedules: make(map[uuid.UUID]*entity.Schedule)}
}

func (f *fakeScheduleRepo) Create(ctx context.Context, schedule *entity.Schedule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.schedules[schedule.ID] = schedule
	return nil
}

func (f *fakeScheduleRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.schedules[id], nil
}

func (f *fakeScheduleRepo) FindAll(ctx context.Context) ([]*entity.Schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Schedule, 0, len(f.schedules))
	for _, schedule := range f.schedules {
		out = append(out, schedule)
	}
	return out, nil
}

type seatKey struct {
	scheduleID uuid.UUID
	seatNumber int
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	claimed  map[seatKey]*entity.Booking
	attempts int
	failNext error
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{claimed: make(map[seatKey]*entity.Booking)}
}

func (f *fakeBookingRepo) CreateIfSeatFree(ctx context.Context, booking *entity.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.attempts++

	if f.failNext != nil {
		err := f.failNext
		f.failNext = nil
		return err
	}

	key := seatKey{scheduleID: booking.ScheduleID, seatNumber: booking.SeatNumber}
	if _, taken := f.claimed[key]; taken {
		return repository.ErrSeatTaken
	}
	f.claimed[key] = booking
	return nil
}

func (f *fakeBookingRepo) ListBookedSeats(ctx context.Context, scheduleID uuid.UUID) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var seats []int
	for key := range f.claimed {
		if key.scheduleID == scheduleID {
			seats = append(seats, key.seatNumber)
		}
	}
	return seats, nil
}

func (f *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, booking := range f.claimed {
		if booking.ID == id {
			return booking, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) FindByUserName(ctx context.Context, userName string) ([]*entity.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var bookings []*entity.Booking
	for _, booking := range f.claimed {
		if booking.UserName == userName {
			bookings = append(bookings, booking)
		}
	}
	return bookings, nil
}

type capturingPublisher struct {
	mu     sync.Mutex
	events []events.BookingCreated
}

func (p *capturingPublisher) PublishBookingCreated(ctx context.Context, event events.BookingCreated) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *capturingPublisher) published() []events.BookingCreated {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]events.BookingCreated(nil), p.events...)
}

type bookingFixture struct {
	service    BookingService
	bookings   *fakeBookingRepo
	publisher  *capturingPublisher
	scheduleID uuid.UUID
	busID      uuid.UUID
}

func newBookingFixture(t *testing.T, totalSeats int) *bookingFixture {
	t.Helper()

	busRepo := newFakeBusRepo()
	scheduleRepo := newFakeScheduleRepo()
	bookingRepo := newFakeBookingRepo()

	bus := &entity.Bus{
		Base:       entity.Base{ID: uuid.New(), CreatedAt: time.Now()},
		Name:       "Night Express",
		TotalSeats: totalSeats,
	}
	require.NoError(t, busRepo.Create(context.Background(), bus))

	schedule := &entity.Schedule{
		Base:          entity.Base{ID: uuid.New(), CreatedAt: time.Now()},
		BusID:         bus.ID,
		DepartureTime: time.Now().Add(24 * time.Hour),
		ArrivalTime:   time.Now().Add(30 * time.Hour),
		StartingPoint: "Jakarta",
		Destination:   "Surabaya",
	}
	require.NoError(t, scheduleRepo.Create(context.Background(), schedule))

	publisher := &capturingPublisher{}

	repo := &repository.Repository{
		Bus:      busRepo,
		Schedule: scheduleRepo,
		Booking:  bookingRepo,
	}

	return &bookingFixture{
		service:    NewBookingService(repo, publisher, zap.NewNop()),
		bookings:   bookingRepo,
		publisher:  publisher,
		scheduleID: schedule.ID,
		busID:      bus.ID,
	}
}

func bookReq(fx *bookingFixture, user string, seat int) *request.CreateBookingRequest {
	return &request.CreateBookingRequest{
		UserName:   user,
		ScheduleID: fx.scheduleID.String(),
		SeatNumber: seat,
	}
}

func TestGetSeatAvailabilityAllFree(t *testing.T) {
	fx := newBookingFixture(t, 2)

	seats, err := fx.service.GetSeatAvailability(context.Background(), fx.scheduleID.String())
	require.NoError(t, err)

	require.Len(t, seats, 2)
	assert.Equal(t, 1, seats[0].SeatNumber)
	assert.True(t, seats[0].IsAvailable)
	assert.Equal(t, 2, seats[1].SeatNumber)
	assert.True(t, seats[1].IsAvailable)
}

func TestGetSeatAvailabilityUnknownSchedule(t *testing.T) {
	fx := newBookingFixture(t, 2)

	_, err := fx.service.GetSeatAvailability(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, ErrScheduleNotFound)

	_, err = fx.service.GetSeatAvailability(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestCreateBookingSuccess(t *testing.T) {
	fx := newBookingFixture(t, 40)

	booking, err := fx.service.CreateBooking(context.Background(), bookReq(fx, "alice", 12))
	require.NoError(t, err)

	assert.Equal(t, "alice", booking.UserName)
	assert.Equal(t, 12, booking.SeatNumber)
	assert.Equal(t, fx.busID.String(), booking.BusID)
	assert.Equal(t, fx.scheduleID.String(), booking.ScheduleID)
	assert.NotEmpty(t, booking.ID)
	assert.False(t, booking.CreatedAt.IsZero())

	published := fx.publisher.published()
	require.Len(t, published, 1)
	assert.Equal(t, booking.ID, published[0].BookingID)
	assert.Equal(t, 12, published[0].SeatNumber)
}

func TestCreateBookingSeatOutOfRange(t *testing.T) {
	fx := newBookingFixture(t, 30)

	for _, seat := range []int{0, -3, 31} {
		_, err := fx.service.CreateBooking(context.Background(), bookReq(fx, "alice", seat))
		assert.ErrorIs(t, err, ErrSeatOutOfRange, "seat %d", seat)
	}

	// Out-of-range requests never reach the store.
	assert.Equal(t, 0, fx.bookings.attempts)
	assert.Empty(t, fx.publisher.published())
}

func TestCreateBookingUnknownSchedule(t *testing.T) {
	fx := newBookingFixture(t, 30)

	req := bookReq(fx, "alice", 1)
	req.ScheduleID = uuid.New().String()

	_, err := fx.service.CreateBooking(context.Background(), req)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestCreateBookingDanglingBusReference(t *testing.T) {
	busRepo := newFakeBusRepo()
	scheduleRepo := newFakeScheduleRepo()

	schedule := &entity.Schedule{
		Base:  entity.Base{ID: uuid.New(), CreatedAt: time.Now()},
		BusID: uuid.New(), // no such bus
	}
	require.NoError(t, scheduleRepo.Create(context.Background(), schedule))

	repo := &repository.Repository{
		Bus:      busRepo,
		Schedule: scheduleRepo,
		Booking:  newFakeBookingRepo(),
	}
	service := NewBookingService(repo, nil, zap.NewNop())

	_, err := service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		UserName:   "alice",
		ScheduleID: schedule.ID.String(),
		SeatNumber: 1,
	})
	assert.ErrorIs(t, err, ErrBusNotFound)
}

func TestCreateBookingMissingFields(t *testing.T) {
	fx := newBookingFixture(t, 30)

	_, err := fx.service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		ScheduleID: fx.scheduleID.String(),
		SeatNumber: 1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = fx.service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		UserName:   "alice",
		ScheduleID: "not-a-uuid",
		SeatNumber: 1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateBookingSeatConflict(t *testing.T) {
	fx := newBookingFixture(t, 30)

	_, err := fx.service.CreateBooking(context.Background(), bookReq(fx, "alice", 7))
	require.NoError(t, err)

	_, err = fx.service.CreateBooking(context.Background(), bookReq(fx, "bob", 7))
	assert.ErrorIs(t, err, ErrSeatTaken)

	// Only the winner's event is published.
	assert.Len(t, fx.publisher.published(), 1)
}

func TestCreateBookingConcurrentSingleWinner(t *testing.T) {
	fx := newBookingFixture(t, 2)

	const claimants = 16

	var (
		wg        sync.WaitGroup
		successes int64
		conflicts int64
		mu        sync.Mutex
	)

	start := make(chan struct{})
	for i := 0; i < claimants; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start

			_, err := fx.service.CreateBooking(context.Background(), bookReq(fx, fmt.Sprintf("rider-%d", i), 2))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrSeatTaken):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}

	close(start)
	wg.Wait()

	assert.EqualValues(t, 1, successes)
	assert.EqualValues(t, claimants-1, conflicts)

	// The booked-seat set holds seat 2 exactly once.
	seats, err := fx.bookings.ListBookedSeats(context.Background(), fx.scheduleID)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, seats)

	assert.Len(t, fx.publisher.published(), 1)
}

func TestCreateBookingRetryAfterStoreFailure(t *testing.T) {
	fx := newBookingFixture(t, 30)

	fx.bookings.failNext = errors.New("connection reset by peer")

	_, err := fx.service.CreateBooking(context.Background(), bookReq(fx, "alice", 5))
	require.ErrorIs(t, err, ErrUnavailable)
	assert.Empty(t, fx.publisher.published())

	// The failed attempt wrote nothing, so the retry behaves like a fresh call.
	booking, err := fx.service.CreateBooking(context.Background(), bookReq(fx, "alice", 5))
	require.NoError(t, err)
	assert.Equal(t, 5, booking.SeatNumber)

	seats, err := fx.bookings.ListBookedSeats(context.Background(), fx.scheduleID)
	require.NoError(t, err)
	assert.Equal(t, []int{5}, seats)
}

func TestBookingScenarioTwoSeatBus(t *testing.T) {
	fx := newBookingFixture(t, 2)
	ctx := context.Background()

	seats, err := fx.service.GetSeatAvailability(ctx, fx.scheduleID.String())
	require.NoError(t, err)
	require.Len(t, seats, 2)
	assert.True(t, seats[0].IsAvailable)
	assert.True(t, seats[1].IsAvailable)

	booking, err := fx.service.CreateBooking(ctx, bookReq(fx, "alice", 1))
	require.NoError(t, err)
	assert.Equal(t, 1, booking.SeatNumber)

	seats, err = fx.service.GetSeatAvailability(ctx, fx.scheduleID.String())
	require.NoError(t, err)
	assert.False(t, seats[0].IsAvailable)
	assert.True(t, seats[1].IsAvailable)

	_, err = fx.service.CreateBooking(ctx, bookReq(fx, "bob", 1))
	assert.ErrorIs(t, err, ErrSeatTaken)

	_, err = fx.service.CreateBooking(ctx, bookReq(fx, "bob", 3))
	assert.ErrorIs(t, err, ErrSeatOutOfRange)
}

func TestGetUserBookings(t *testing.T) {
	fx := newBookingFixture(t, 30)
	ctx := context.Background()

	_, err := fx.service.CreateBooking(ctx, bookReq(fx, "alice", 1))
	require.NoError(t, err)
	_, err = fx.service.CreateBooking(ctx, bookReq(fx, "alice", 2))
	require.NoError(t, err)
	_, err = fx.service.CreateBooking(ctx, bookReq(fx, "bob", 3))
	require.NoError(t, err)

	bookings, err := fx.service.GetUserBookings(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, bookings, 2)
	for _, booking := range bookings {
		assert.Equal(t, "alice", booking.UserName)
	}
}

func TestGetBookingTicket(t *testing.T) {
	fx := newBookingFixture(t, 30)
	ctx := context.Background()

	booking, err := fx.service.CreateBooking(ctx, bookReq(fx, "alice", 9))
	require.NoError(t, err)

	pdf, err := fx.service.GetBookingTicket(ctx, booking.ID, "alice")
	require.NoError(t, err)
	assert.True(t, len(pdf) > 500)
	assert.Equal(t, "%PDF", string(pdf[:4]))

	// Someone else's booking looks like a missing one.
	_, err = fx.service.GetBookingTicket(ctx, booking.ID, "bob")
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = fx.service.GetBookingTicket(ctx, uuid.New().String(), "alice")
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

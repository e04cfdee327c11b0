package availability

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/sporthub/server/internal/model"
	"go.uber.org/zap"
)

// --- Mock implementations ---

type MockFacilityDB struct {
	mock.Mock
}

func (m *MockFacilityDB) Create(ctx context.Context, facility *model.Facility) error {
	args := m.Called(ctx, facility)
	return args.Error(0)
}

func (m *MockFacilityDB) FindByID(ctx context.Context, id uuid.UUID) (*model.Facility, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Facility), args.Error(1)
}

func (m *MockFacilityDB) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*model.Facility, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Facility), args.Error(1)
}

func (m *MockFacilityDB) ListActive(ctx context.Context) ([]*model.Facility, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Facility), args.Error(1)
}

func (m *MockFacilityDB) Update(ctx context.Context, facility *model.Facility) error {
	args := m.Called(ctx, facility)
	return args.Error(0)
}

type MockBookingDB struct {
	mock.Mock
}

func (m *MockBookingDB) Create(ctx context.Context, booking *model.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingDB) CommitTeamBooking(ctx context.Context, booking *model.Booking, team *model.Team, ledger *model.ContributionLedger) error {
	args := m.Called(ctx, booking, team, ledger)
	return args.Error(0)
}

func (m *MockBookingDB) ConfirmIfSlotFree(ctx context.Context, bookingID uuid.UUID) (*model.Booking, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingDB) FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingDB) FindByReference(ctx context.Context, reference string) (*model.Booking, error) {
	args := m.Called(ctx, reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Booking), args.Error(1)
}

func (m *MockBookingDB) ListConfirmedForFacilityDate(ctx context.Context, facilityID uuid.UUID, date string) ([]*model.Booking, error) {
	args := m.Called(ctx, facilityID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Booking), args.Error(1)
}

func (m *MockBookingDB) ListByUser(ctx context.Context, userID uuid.UUID) ([]*model.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Booking), args.Error(1)
}

func (m *MockBookingDB) Update(ctx context.Context, booking *model.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

type MockAvailabilityCache struct {
	mock.Mock
}

func (m *MockAvailabilityCache) GetSnapshot(ctx context.Context, facilityID uuid.UUID, date string) ([]byte, error) {
	args := m.Called(ctx, facilityID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockAvailabilityCache) SetSnapshot(ctx context.Context, facilityID uuid.UUID, date string, snapshot []byte) error {
	args := m.Called(ctx, facilityID, date, snapshot)
	return args.Error(0)
}

func (m *MockAvailabilityCache) Invalidate(ctx context.Context, facilityID uuid.UUID, date string) error {
	args := m.Called(ctx, facilityID, date)
	return args.Error(0)
}

// --- Helpers ---

func testFacility() *model.Facility {
	return &model.Facility{
		ID:         uuid.New(),
		OwnerID:    uuid.New(),
		Name:       "Lekki Arena",
		HourlyRate: 5000,
		OpensAt:    8,
		ClosesAt:   22,
		IsActive:   true,
	}
}

func confirmedBooking(facilityID uuid.UUID, date string, start, hours int) *model.Booking {
	return &model.Booking{
		ID:            uuid.New(),
		FacilityID:    facilityID,
		Date:          date,
		StartHour:     start,
		DurationHours: hours,
		Status:        model.BookingStatusConfirmed,
	}
}

// --- Tests ---

func TestCheckSlot(t *testing.T) {
	facility := testFacility()
	d := NewAvailabilityDomain(nil, nil, nil, zap.NewNop())

	slot := model.Slot{FacilityID: facility.ID, Date: "2026-09-01", StartHour: 10, DurationHours: 2}

	t.Run("free slot", func(t *testing.T) {
		ok, err := d.CheckSlot(facility, slot, nil)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("overlap blocks", func(t *testing.T) {
		existing := []*model.Booking{confirmedBooking(facility.ID, "2026-09-01", 11, 2)}
		ok, err := d.CheckSlot(facility, slot, existing)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("adjacent does not block", func(t *testing.T) {
		existing := []*model.Booking{confirmedBooking(facility.ID, "2026-09-01", 12, 2)}
		ok, err := d.CheckSlot(facility, slot, existing)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("other date does not block", func(t *testing.T) {
		existing := []*model.Booking{confirmedBooking(facility.ID, "2026-09-02", 10, 2)}
		ok, err := d.CheckSlot(facility, slot, existing)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("before opening", func(t *testing.T) {
		early := model.Slot{FacilityID: facility.ID, Date: "2026-09-01", StartHour: 6, DurationHours: 2}
		_, err := d.CheckSlot(facility, early, nil)
		assert.ErrorIs(t, err, ErrInsufficientOperatingWindow)
	})

	t.Run("runs past closing", func(t *testing.T) {
		late := model.Slot{FacilityID: facility.ID, Date: "2026-09-01", StartHour: 21, DurationHours: 2}
		_, err := d.CheckSlot(facility, late, nil)
		assert.ErrorIs(t, err, ErrInsufficientOperatingWindow)
	})

	t.Run("ends exactly at closing", func(t *testing.T) {
		edge := model.Slot{FacilityID: facility.ID, Date: "2026-09-01", StartHour: 20, DurationHours: 2}
		ok, err := d.CheckSlot(facility, edge, nil)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("zero duration", func(t *testing.T) {
		zero := model.Slot{FacilityID: facility.ID, Date: "2026-09-01", StartHour: 10, DurationHours: 0}
		_, err := d.CheckSlot(facility, zero, nil)
		assert.ErrorIs(t, err, ErrInvalidDuration)
	})
}

func TestIsAvailable(t *testing.T) {
	facility := testFacility()
	slot := model.Slot{FacilityID: facility.ID, Date: "2026-09-01", StartHour: 10, DurationHours: 2}

	facilityDB := new(MockFacilityDB)
	bookingDB := new(MockBookingDB)
	facilityDB.On("FindByID", mock.Anything, facility.ID).Return(facility, nil)
	bookingDB.On("ListConfirmedForFacilityDate", mock.Anything, facility.ID, "2026-09-01").
		Return([]*model.Booking{confirmedBooking(facility.ID, "2026-09-01", 9, 2)}, nil)

	d := NewAvailabilityDomain(facilityDB, bookingDB, nil, zap.NewNop())

	ok, err := d.IsAvailable(context.Background(), slot)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsAvailable_UnknownFacility(t *testing.T) {
	facilityDB := new(MockFacilityDB)
	facilityDB.On("FindByID", mock.Anything, mock.Anything).Return(nil, nil)

	d := NewAvailabilityDomain(facilityDB, new(MockBookingDB), nil, zap.NewNop())

	_, err := d.IsAvailable(context.Background(), model.Slot{
		FacilityID: uuid.New(), Date: "2026-09-01", StartHour: 10, DurationHours: 1,
	})
	assert.ErrorIs(t, err, ErrFacilityNotFound)
}

func TestGetDaySchedule_CacheMissThenStore(t *testing.T) {
	facility := testFacility()

	cache := new(MockAvailabilityCache)
	cache.On("GetSnapshot", mock.Anything, facility.ID, "2026-09-01").Return(nil, nil)
	cache.On("SetSnapshot", mock.Anything, facility.ID, "2026-09-01", mock.Anything).Return(nil)

	facilityDB := new(MockFacilityDB)
	facilityDB.On("FindByID", mock.Anything, facility.ID).Return(facility, nil)

	bookingDB := new(MockBookingDB)
	bookingDB.On("ListConfirmedForFacilityDate", mock.Anything, facility.ID, "2026-09-01").
		Return([]*model.Booking{confirmedBooking(facility.ID, "2026-09-01", 10, 2)}, nil)

	d := NewAvailabilityDomain(facilityDB, bookingDB, cache, zap.NewNop())

	schedule, err := d.GetDaySchedule(context.Background(), facility.ID, "2026-09-01")
	require.NoError(t, err)
	require.Len(t, schedule.Hours, facility.ClosesAt-facility.OpensAt)

	byHour := make(map[int]bool)
	for _, h := range schedule.Hours {
		byHour[h.Hour] = h.Available
	}
	assert.False(t, byHour[10])
	assert.False(t, byHour[11])
	assert.True(t, byHour[9])
	assert.True(t, byHour[12])

	cache.AssertCalled(t, "SetSnapshot", mock.Anything, facility.ID, "2026-09-01", mock.Anything)
}

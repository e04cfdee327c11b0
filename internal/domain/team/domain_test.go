package team

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/sporthub/server/internal/model"
	"go.uber.org/zap"
)

// --- Mock implementations ---

type MockTeamDB struct {
	mock.Mock
}

func (m *MockTeamDB) Create(ctx context.Context, team *model.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *MockTeamDB) FindByID(ctx context.Context, id uuid.UUID) (*model.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Team), args.Error(1)
}

func (m *MockTeamDB) FindByJoinCode(ctx context.Context, code string) (*model.Team, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Team), args.Error(1)
}

func (m *MockTeamDB) ListByMember(ctx context.Context, userID uuid.UUID) ([]*model.Team, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Team), args.Error(1)
}

func (m *MockTeamDB) ListOpen(ctx context.Context) ([]*model.Team, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Team), args.Error(1)
}

func (m *MockTeamDB) Update(ctx context.Context, team *model.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

type MockMemberDB struct {
	mock.Mock
}

func (m *MockMemberDB) Create(ctx context.Context, member *model.TeamMember) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberDB) Delete(ctx context.Context, teamID, userID uuid.UUID) error {
	args := m.Called(ctx, teamID, userID)
	return args.Error(0)
}

func (m *MockMemberDB) CountByTeam(ctx context.Context, teamID uuid.UUID) (int64, error) {
	args := m.Called(ctx, teamID)
	return args.Get(0).(int64), args.Error(1)
}

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

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event interface{}) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// --- Helpers ---

func activeFacility() *model.Facility {
	return &model.Facility{
		ID:         uuid.New(),
		OwnerID:    uuid.New(),
		Name:       "Surulere Court",
		HourlyRate: 5000,
		OpensAt:    8,
		ClosesAt:   22,
		IsActive:   true,
	}
}

func recruitingTeam(creatorID uuid.UUID, maxPlayers int) *model.Team {
	teamID := uuid.New()
	return &model.Team{
		ID:            teamID,
		CreatorID:     creatorID,
		FacilityID:    uuid.New(),
		Date:          "2026-09-05",
		StartHour:     18,
		DurationHours: 2,
		MaxPlayers:    maxPlayers,
		TotalCost:     20000,
		Status:        model.TeamStatusRecruiting,
		Deadline:      time.Now().Add(24 * time.Hour),
		JoinCode:      "AB12CD",
		Members: []model.TeamMember{
			{ID: uuid.New(), TeamID: teamID, UserID: creatorID, IsCreator: true},
		},
	}
}

func validParams(facilityID uuid.UUID) CreateParams {
	return CreateParams{
		Name:          "Friday five-a-side",
		FacilityID:    facilityID,
		Date:          "2026-09-05",
		StartHour:     18,
		DurationHours: 2,
		MaxPlayers:    4,
		TotalCost:     20000,
		Deadline:      time.Now().Add(24 * time.Hour),
	}
}

func newTestDomain(teamDB *MockTeamDB, memberDB *MockMemberDB, facilityDB *MockFacilityDB) TeamDomain {
	return NewTeamDomain(teamDB, memberDB, facilityDB, nil, zap.NewNop())
}

// --- Tests ---

func TestCreate(t *testing.T) {
	facility := activeFacility()
	creatorID := uuid.New()

	teamDB := new(MockTeamDB)
	memberDB := new(MockMemberDB)
	facilityDB := new(MockFacilityDB)
	facilityDB.On("FindByID", mock.Anything, facility.ID).Return(facility, nil)
	teamDB.On("Create", mock.Anything, mock.Anything).Return(nil)
	memberDB.On("Create", mock.Anything, mock.Anything).Return(nil)

	d := newTestDomain(teamDB, memberDB, facilityDB)

	team, err := d.Create(context.Background(), creatorID, validParams(facility.ID))
	require.NoError(t, err)

	assert.Equal(t, model.TeamStatusRecruiting, team.Status)
	assert.Len(t, team.Members, 1)
	assert.True(t, team.Members[0].IsCreator)
	assert.Equal(t, creatorID, team.Members[0].UserID)
	assert.Len(t, team.JoinCode, 6)
}

func TestCreate_InvalidInputs(t *testing.T) {
	facility := activeFacility()
	d := newTestDomain(new(MockTeamDB), new(MockMemberDB), new(MockFacilityDB))

	t.Run("max players below two", func(t *testing.T) {
		params := validParams(facility.ID)
		params.MaxPlayers = 1
		_, err := d.Create(context.Background(), uuid.New(), params)
		assert.ErrorIs(t, err, ErrInvalidMaxPlayers)
	})

	t.Run("deadline in the past", func(t *testing.T) {
		params := validParams(facility.ID)
		params.Deadline = time.Now().Add(-time.Minute)
		_, err := d.Create(context.Background(), uuid.New(), params)
		assert.ErrorIs(t, err, ErrInvalidDeadline)
	})

	t.Run("non-positive cost", func(t *testing.T) {
		params := validParams(facility.ID)
		params.TotalCost = 0
		_, err := d.Create(context.Background(), uuid.New(), params)
		assert.ErrorIs(t, err, ErrInvalidTotalCost)
	})
}

func TestJoin(t *testing.T) {
	creatorID := uuid.New()
	joiner := uuid.New()
	team := recruitingTeam(creatorID, 4)

	teamDB := new(MockTeamDB)
	memberDB := new(MockMemberDB)
	teamDB.On("FindByID", mock.Anything, team.ID).Return(team, nil)
	memberDB.On("Create", mock.Anything, mock.Anything).Return(nil)

	d := newTestDomain(teamDB, memberDB, new(MockFacilityDB))

	got, err := d.Join(context.Background(), team.ID, joiner)
	require.NoError(t, err)
	assert.Len(t, got.Members, 2)
	assert.True(t, got.HasMember(joiner))
}

func TestJoin_Duplicate(t *testing.T) {
	creatorID := uuid.New()
	team := recruitingTeam(creatorID, 4)

	teamDB := new(MockTeamDB)
	teamDB.On("FindByID", mock.Anything, team.ID).Return(team, nil)

	d := newTestDomain(teamDB, new(MockMemberDB), new(MockFacilityDB))

	_, err := d.Join(context.Background(), team.ID, creatorID)
	assert.ErrorIs(t, err, ErrAlreadyMember)
}

func TestJoin_Full(t *testing.T) {
	creatorID := uuid.New()
	team := recruitingTeam(creatorID, 2)
	team.Members = append(team.Members, model.TeamMember{
		ID: uuid.New(), TeamID: team.ID, UserID: uuid.New(),
	})

	teamDB := new(MockTeamDB)
	teamDB.On("FindByID", mock.Anything, team.ID).Return(team, nil)

	d := newTestDomain(teamDB, new(MockMemberDB), new(MockFacilityDB))

	_, err := d.Join(context.Background(), team.ID, uuid.New())
	assert.ErrorIs(t, err, ErrTeamFull)
}

func TestJoin_PastDeadline_LazilyExpires(t *testing.T) {
	team := recruitingTeam(uuid.New(), 4)
	team.Deadline = time.Now().Add(-time.Hour)

	teamDB := new(MockTeamDB)
	teamDB.On("FindByID", mock.Anything, team.ID).Return(team, nil)
	teamDB.On("Update", mock.Anything, mock.MatchedBy(func(t *model.Team) bool {
		return t.Status == model.TeamStatusExpired
	})).Return(nil)

	d := newTestDomain(teamDB, new(MockMemberDB), new(MockFacilityDB))

	_, err := d.Join(context.Background(), team.ID, uuid.New())
	assert.ErrorIs(t, err, ErrDeadlinePassed)
	teamDB.AssertExpectations(t)
}

func TestJoin_ExpiredTeam(t *testing.T) {
	team := recruitingTeam(uuid.New(), 4)
	team.Status = model.TeamStatusExpired

	teamDB := new(MockTeamDB)
	teamDB.On("FindByID", mock.Anything, team.ID).Return(team, nil)

	d := newTestDomain(teamDB, new(MockMemberDB), new(MockFacilityDB))

	_, err := d.Join(context.Background(), team.ID, uuid.New())
	assert.ErrorIs(t, err, ErrTeamExpired)
}

func TestJoinByCode(t *testing.T) {
	team := recruitingTeam(uuid.New(), 4)

	teamDB := new(MockTeamDB)
	memberDB := new(MockMemberDB)
	teamDB.On("FindByJoinCode", mock.Anything, "AB12CD").Return(team, nil)
	memberDB.On("Create", mock.Anything, mock.Anything).Return(nil)

	d := newTestDomain(teamDB, memberDB, new(MockFacilityDB))

	got, err := d.JoinByCode(context.Background(), "AB12CD", uuid.New())
	require.NoError(t, err)
	assert.Len(t, got.Members, 2)
}

func TestCancel(t *testing.T) {
	creatorID := uuid.New()

	t.Run("creator cancels", func(t *testing.T) {
		team := recruitingTeam(creatorID, 4)
		teamDB := new(MockTeamDB)
		teamDB.On("FindByID", mock.Anything, team.ID).Return(team, nil)
		teamDB.On("Update", mock.Anything, mock.Anything).Return(nil)

		d := newTestDomain(teamDB, new(MockMemberDB), new(MockFacilityDB))

		got, err := d.Cancel(context.Background(), team.ID, creatorID)
		require.NoError(t, err)
		assert.Equal(t, model.TeamStatusCancelled, got.Status)
	})

	t.Run("non-creator rejected", func(t *testing.T) {
		team := recruitingTeam(creatorID, 4)
		teamDB := new(MockTeamDB)
		teamDB.On("FindByID", mock.Anything, team.ID).Return(team, nil)

		d := newTestDomain(teamDB, new(MockMemberDB), new(MockFacilityDB))

		_, err := d.Cancel(context.Background(), team.ID, uuid.New())
		assert.ErrorIs(t, err, ErrNotCreator)
	})

	t.Run("idempotent on cancelled", func(t *testing.T) {
		team := recruitingTeam(creatorID, 4)
		team.Status = model.TeamStatusCancelled
		teamDB := new(MockTeamDB)
		teamDB.On("FindByID", mock.Anything, team.ID).Return(team, nil)

		d := newTestDomain(teamDB, new(MockMemberDB), new(MockFacilityDB))

		got, err := d.Cancel(context.Background(), team.ID, creatorID)
		require.NoError(t, err)
		assert.Equal(t, model.TeamStatusCancelled, got.Status)
		teamDB.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("completed cannot be cancelled", func(t *testing.T) {
		team := recruitingTeam(creatorID, 4)
		team.Status = model.TeamStatusCompleted
		teamDB := new(MockTeamDB)
		teamDB.On("FindByID", mock.Anything, team.ID).Return(team, nil)

		d := newTestDomain(teamDB, new(MockMemberDB), new(MockFacilityDB))

		_, err := d.Cancel(context.Background(), team.ID, creatorID)
		assert.ErrorIs(t, err, ErrTeamCompleted)
	})
}

func TestListOpen_FiltersPastDeadline(t *testing.T) {
	fresh := recruitingTeam(uuid.New(), 4)
	stale := recruitingTeam(uuid.New(), 4)
	stale.Deadline = time.Now().Add(-time.Hour)

	teamDB := new(MockTeamDB)
	teamDB.On("ListOpen", mock.Anything).Return([]*model.Team{fresh, stale}, nil)

	d := newTestDomain(teamDB, new(MockMemberDB), new(MockFacilityDB))

	open, err := d.ListOpen(context.Background())
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, fresh.ID, open[0].ID)
}

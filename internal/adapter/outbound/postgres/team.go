package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sporthub/server/internal/model"
	"github.com/sporthub/server/internal/port/outbound"
	"gorm.io/gorm"
)

// teamAdapter implements outbound.TeamDatabasePort.
type teamAdapter struct {
	db *gorm.DB
}

// NewTeamAdapter creates a new team database adapter.
func NewTeamAdapter(db *gorm.DB) outbound.TeamDatabasePort {
	return &teamAdapter{db: db}
}

var _ outbound.TeamDatabasePort = (*teamAdapter)(nil)

func (a *teamAdapter) Create(ctx context.Context, team *model.Team) error {
	if err := a.db.WithContext(ctx).Omit("Members").Create(team).Error; err != nil {
		return fmt.Errorf("create team: %w", err)
	}
	return nil
}

func (a *teamAdapter) FindByID(ctx context.Context, id uuid.UUID) (*model.Team, error) {
	var team model.Team
	err := a.db.WithContext(ctx).Preload("Members").First(&team, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find team by id: %w", err)
	}
	return &team, nil
}

func (a *teamAdapter) FindByJoinCode(ctx context.Context, code string) (*model.Team, error) {
	var team model.Team
	err := a.db.WithContext(ctx).Preload("Members").First(&team, "join_code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find team by join code: %w", err)
	}
	return &team, nil
}

func (a *teamAdapter) ListByMember(ctx context.Context, userID uuid.UUID) ([]*model.Team, error) {
	var teams []*model.Team
	err := a.db.WithContext(ctx).
		Preload("Members").
		Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("team_members.user_id = ?", userID).
		Order("teams.created_at DESC").
		Find(&teams).Error
	if err != nil {
		return nil, fmt.Errorf("list teams by member: %w", err)
	}
	return teams, nil
}

func (a *teamAdapter) ListOpen(ctx context.Context) ([]*model.Team, error) {
	var teams []*model.Team
	err := a.db.WithContext(ctx).
		Preload("Members").
		Where("status = ?", model.TeamStatusRecruiting).
		Order("created_at DESC").
		Find(&teams).Error
	if err != nil {
		return nil, fmt.Errorf("list open teams: %w", err)
	}
	return teams, nil
}

func (a *teamAdapter) Update(ctx context.Context, team *model.Team) error {
	if err := a.db.WithContext(ctx).Omit("Members").Save(team).Error; err != nil {
		return fmt.Errorf("update team: %w", err)
	}
	return nil
}

// teamMemberAdapter implements outbound.TeamMemberDatabasePort.
type teamMemberAdapter struct {
	db *gorm.DB
}

// NewTeamMemberAdapter creates a new team member database adapter.
func NewTeamMemberAdapter(db *gorm.DB) outbound.TeamMemberDatabasePort {
	return &teamMemberAdapter{db: db}
}

var _ outbound.TeamMemberDatabasePort = (*teamMemberAdapter)(nil)

func (a *teamMemberAdapter) Create(ctx context.Context, member *model.TeamMember) error {
	if err := a.db.WithContext(ctx).Create(member).Error; err != nil {
		return fmt.Errorf("create team member: %w", err)
	}
	return nil
}

func (a *teamMemberAdapter) Delete(ctx context.Context, teamID, userID uuid.UUID) error {
	err := a.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&model.TeamMember{}).Error
	if err != nil {
		return fmt.Errorf("delete team member: %w", err)
	}
	return nil
}

func (a *teamMemberAdapter) CountByTeam(ctx context.Context, teamID uuid.UUID) (int64, error) {
	var count int64
	err := a.db.WithContext(ctx).
		Model(&model.TeamMember{}).
		Where("team_id = ?", teamID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count team members: %w", err)
	}
	return count, nil
}

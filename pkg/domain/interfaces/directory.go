package interfaces

import (
	"context"

	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/domain/types"
)

// DirectoryRepository defines the interface for the user/team directory.
// The directory is synced from the org configuration with a replace
// strategy at startup.
type DirectoryRepository interface {
	// GetUser retrieves a user by ID
	GetUser(ctx context.Context, orgID types.OrgID, id types.UserID) (*model.User, error)

	// ListUsers retrieves all users in the org
	ListUsers(ctx context.Context, orgID types.OrgID) ([]*model.User, error)

	// ReplaceUsers replaces the org's user directory
	ReplaceUsers(ctx context.Context, orgID types.OrgID, users []*model.User) error

	// GetTeam retrieves a team by ID
	GetTeam(ctx context.Context, orgID types.OrgID, id types.TeamID) (*model.Team, error)

	// ListTeams retrieves all teams in the org
	ListTeams(ctx context.Context, orgID types.OrgID) ([]*model.Team, error)

	// ReplaceTeams replaces the org's team directory
	ReplaceTeams(ctx context.Context, orgID types.OrgID, teams []*model.Team) error
}

package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/workyard-lab/workyard/pkg/domain/interfaces"
	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/domain/types"
)

type directoryRepository struct {
	mu    sync.RWMutex
	users map[types.OrgID]map[types.UserID]*model.User
	teams map[types.OrgID]map[types.TeamID]*model.Team
}

func newDirectoryRepository() *directoryRepository {
	return &directoryRepository{
		users: make(map[types.OrgID]map[types.UserID]*model.User),
		teams: make(map[types.OrgID]map[types.TeamID]*model.Team),
	}
}

func copyUser(u *model.User) *model.User {
	copied := *u
	return &copied
}

func copyTeam(t *model.Team) *model.Team {
	copied := *t
	copied.MemberIDs = make([]types.UserID, len(t.MemberIDs))
	copy(copied.MemberIDs, t.MemberIDs)
	return &copied
}

func (r *directoryRepository) GetUser(ctx context.Context, orgID types.OrgID, id types.UserID) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[orgID][id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "user not found", goerr.V("id", id))
	}

	return copyUser(user), nil
}

func (r *directoryRepository) ListUsers(ctx context.Context, orgID types.OrgID) ([]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.User, 0, len(r.users[orgID]))
	for _, u := range r.users[orgID] {
		result = append(result, copyUser(u))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (r *directoryRepository) ReplaceUsers(ctx context.Context, orgID types.OrgID, users []*model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	replaced := make(map[types.UserID]*model.User, len(users))
	for _, u := range users {
		replaced[u.ID] = copyUser(u)
	}
	r.users[orgID] = replaced
	return nil
}

func (r *directoryRepository) GetTeam(ctx context.Context, orgID types.OrgID, id types.TeamID) (*model.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	team, exists := r.teams[orgID][id]
	if !exists {
		return nil, goerr.Wrap(interfaces.ErrNotFound, "team not found", goerr.V("id", id))
	}

	return copyTeam(team), nil
}

func (r *directoryRepository) ListTeams(ctx context.Context, orgID types.OrgID) ([]*model.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.Team, 0, len(r.teams[orgID]))
	for _, t := range r.teams[orgID] {
		result = append(result, copyTeam(t))
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (r *directoryRepository) ReplaceTeams(ctx context.Context, orgID types.OrgID, teams []*model.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	replaced := make(map[types.TeamID]*model.Team, len(teams))
	for _, t := range teams {
		replaced[t.ID] = copyTeam(t)
	}
	r.teams[orgID] = replaced
	return nil
}

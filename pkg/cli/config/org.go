package config

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
	"github.com/workyard-lab/workyard/pkg/domain/interfaces"
	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/domain/types"
	"github.com/workyard-lab/workyard/pkg/utils/logging"
)

// Org holds the CLI flag pointing at the organization TOML file
type Org struct {
	path string
}

// Flags returns CLI flags for the org configuration
func (o *Org) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "org-config",
			Usage:       "Path to organization TOML file (users, teams, work types)",
			Required:    true,
			Sources:     cli.EnvVars("WORKYARD_ORG_CONFIG"),
			Destination: &o.path,
		},
	}
}

// OrgConfig represents the organization configuration file
type OrgConfig struct {
	ID        string     `toml:"id"`
	Name      string     `toml:"name"`
	Users     []User     `toml:"user"`
	Teams     []Team     `toml:"team"`
	WorkTypes []WorkType `toml:"work_type"`
}

// User represents a directory user entry
type User struct {
	ID    string `toml:"id"`
	Name  string `toml:"name"`
	Email string `toml:"email"`
}

// Validate checks if the User is valid
func (u *User) Validate() error {
	if err := types.UserID(u.ID).Validate(); err != nil {
		return goerr.Wrap(err, "invalid user ID")
	}
	if u.Name == "" {
		return goerr.New("user name is required", goerr.V("id", u.ID))
	}
	return nil
}

// Team represents a team configuration
type Team struct {
	ID      string   `toml:"id"`
	Name    string   `toml:"name"`
	Members []string `toml:"members"`
}

// Validate checks if the Team is valid
func (t *Team) Validate() error {
	if err := types.TeamID(t.ID).Validate(); err != nil {
		return goerr.Wrap(err, "invalid team ID")
	}
	if t.Name == "" {
		return goerr.New("team name is required", goerr.V("id", t.ID))
	}
	return nil
}

// WorkType represents a time-tracking work type
type WorkType struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

// Validate checks if the WorkType is valid
func (w *WorkType) Validate() error {
	if err := types.WorkTypeID(w.ID).Validate(); err != nil {
		return goerr.Wrap(err, "invalid work type ID")
	}
	if w.Name == "" {
		return goerr.New("work type name is required", goerr.V("id", w.ID))
	}
	return nil
}

// Validate checks the whole org configuration, including that team
// members reference declared users
func (c *OrgConfig) Validate() error {
	if err := types.OrgID(c.ID).Validate(); err != nil {
		return goerr.Wrap(err, "invalid org ID")
	}
	if c.Name == "" {
		return goerr.New("org name is required", goerr.V("id", c.ID))
	}

	userIDs := make(map[string]bool)
	for _, u := range c.Users {
		if err := u.Validate(); err != nil {
			return goerr.Wrap(err, "invalid user")
		}
		if userIDs[u.ID] {
			return goerr.New("duplicate user ID", goerr.V("id", u.ID))
		}
		userIDs[u.ID] = true
	}

	teamIDs := make(map[string]bool)
	for _, t := range c.Teams {
		if err := t.Validate(); err != nil {
			return goerr.Wrap(err, "invalid team")
		}
		if teamIDs[t.ID] {
			return goerr.New("duplicate team ID", goerr.V("id", t.ID))
		}
		teamIDs[t.ID] = true

		for _, member := range t.Members {
			if !userIDs[member] {
				return goerr.New("team member is not a declared user",
					goerr.V("team", t.ID), goerr.V("member", member))
			}
		}
	}

	workTypeIDs := make(map[string]bool)
	for _, w := range c.WorkTypes {
		if err := w.Validate(); err != nil {
			return goerr.Wrap(err, "invalid work type")
		}
		if workTypeIDs[w.ID] {
			return goerr.New("duplicate work type ID", goerr.V("id", w.ID))
		}
		workTypeIDs[w.ID] = true
	}

	return nil
}

// OrgID returns the organization ID
func (c *OrgConfig) OrgID() types.OrgID {
	return types.OrgID(c.ID)
}

// WorkTypeIDs returns the declared work type IDs
func (c *OrgConfig) WorkTypeIDs() []types.WorkTypeID {
	ids := make([]types.WorkTypeID, len(c.WorkTypes))
	for i, w := range c.WorkTypes {
		ids[i] = types.WorkTypeID(w.ID)
	}
	return ids
}

// Load parses and validates the org configuration file
func (o *Org) Load() (*OrgConfig, error) {
	data, err := os.ReadFile(o.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read org config", goerr.V("path", o.path))
	}

	return ParseOrgConfig(data)
}

// ParseOrgConfig parses and validates org configuration TOML
func ParseOrgConfig(data []byte) (*OrgConfig, error) {
	var cfg OrgConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, goerr.Wrap(err, "failed to parse org config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid org config")
	}
	return &cfg, nil
}

// Sync replaces the repository's user and team directories with the
// configured roster
func (c *OrgConfig) Sync(ctx context.Context, repo interfaces.Repository) error {
	users := make([]*model.User, len(c.Users))
	for i, u := range c.Users {
		users[i] = &model.User{
			ID:    types.UserID(u.ID),
			Name:  u.Name,
			Email: u.Email,
		}
	}
	if err := repo.Directory().ReplaceUsers(ctx, c.OrgID(), users); err != nil {
		return goerr.Wrap(err, "failed to sync users")
	}

	teams := make([]*model.Team, len(c.Teams))
	for i, t := range c.Teams {
		memberIDs := make([]types.UserID, len(t.Members))
		for j, m := range t.Members {
			memberIDs[j] = types.UserID(m)
		}
		teams[i] = &model.Team{
			ID:        types.TeamID(t.ID),
			Name:      t.Name,
			MemberIDs: memberIDs,
		}
	}
	if err := repo.Directory().ReplaceTeams(ctx, c.OrgID(), teams); err != nil {
		return goerr.Wrap(err, "failed to sync teams")
	}

	logging.Default().Info("Synced org directory",
		"org_id", c.ID,
		"users", len(users),
		"teams", len(teams),
		"work_types", len(c.WorkTypes),
	)

	return nil
}

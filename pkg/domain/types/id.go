package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

var idPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// OrgID identifies the organization owning a set of work items. All
// repository operations are scoped by it.
type OrgID string

// Validate checks if the OrgID is valid
func (o OrgID) Validate() error {
	if o == "" {
		return goerr.New("org ID cannot be empty")
	}
	if !idPattern.MatchString(string(o)) {
		return goerr.New("org ID must be lowercase alphanumeric with hyphens", goerr.V("id", o))
	}
	return nil
}

// String returns the string representation of OrgID
func (o OrgID) String() string {
	return string(o)
}

// UserID identifies a user in the org directory. IDs come from the external
// identity provider and are treated as opaque.
type UserID string

// Validate checks if the UserID is valid
func (u UserID) Validate() error {
	if u == "" {
		return goerr.New("user ID cannot be empty")
	}
	return nil
}

// String returns the string representation of UserID
func (u UserID) String() string {
	return string(u)
}

// TeamID represents a unique identifier for a team
type TeamID string

// Validate checks if the TeamID is valid
func (t TeamID) Validate() error {
	if t == "" {
		return goerr.New("team ID cannot be empty")
	}
	if !idPattern.MatchString(string(t)) {
		return goerr.New("team ID must be lowercase alphanumeric with hyphens", goerr.V("id", t))
	}
	return nil
}

// String returns the string representation of TeamID
func (t TeamID) String() string {
	return string(t)
}

// WorkTypeID represents a unique identifier for a time tracking work type
type WorkTypeID string

// Validate checks if the WorkTypeID is valid
func (w WorkTypeID) Validate() error {
	if w == "" {
		return goerr.New("work type ID cannot be empty")
	}
	if !idPattern.MatchString(string(w)) {
		return goerr.New("work type ID must be lowercase alphanumeric with hyphens", goerr.V("id", w))
	}
	return nil
}

// String returns the string representation of WorkTypeID
func (w WorkTypeID) String() string {
	return string(w)
}

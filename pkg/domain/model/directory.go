package model

import "github.com/workyard-lab/workyard/pkg/domain/types"

// User is a directory entry for a person who can act on work items
type User struct {
	ID    types.UserID
	Name  string
	Email string
}

// Team is a named group of users that a work item can be assigned to
type Team struct {
	ID        types.TeamID
	Name      string
	MemberIDs []types.UserID
}

// HasMember reports whether the user belongs to the team
func (t *Team) HasMember(userID types.UserID) bool {
	for _, id := range t.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

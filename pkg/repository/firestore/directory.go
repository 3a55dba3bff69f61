package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/workyard-lab/workyard/pkg/domain/interfaces"
	"github.com/workyard-lab/workyard/pkg/domain/model"
	"github.com/workyard-lab/workyard/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// userDoc is the Firestore document representation of model.User
type userDoc struct {
	ID    string `firestore:"ID"`
	Name  string `firestore:"Name"`
	Email string `firestore:"Email"`
}

// teamDoc is the Firestore document representation of model.Team
type teamDoc struct {
	ID        string   `firestore:"ID"`
	Name      string   `firestore:"Name"`
	MemberIDs []string `firestore:"MemberIDs"`
}

func fromUserDoc(d *userDoc) *model.User {
	return &model.User{
		ID:    types.UserID(d.ID),
		Name:  d.Name,
		Email: d.Email,
	}
}

func fromTeamDoc(d *teamDoc) *model.Team {
	members := make([]types.UserID, 0, len(d.MemberIDs))
	for _, id := range d.MemberIDs {
		members = append(members, types.UserID(id))
	}
	return &model.Team{
		ID:        types.TeamID(d.ID),
		Name:      d.Name,
		MemberIDs: members,
	}
}

type directoryRepository struct {
	client *firestore.Client
}

func newDirectoryRepository(client *firestore.Client) *directoryRepository {
	return &directoryRepository{client: client}
}

func (r *directoryRepository) usersCollection(orgID types.OrgID) *firestore.CollectionRef {
	return r.client.Collection("orgs").Doc(orgID.String()).Collection("users")
}

func (r *directoryRepository) teamsCollection(orgID types.OrgID) *firestore.CollectionRef {
	return r.client.Collection("orgs").Doc(orgID.String()).Collection("teams")
}

func (r *directoryRepository) GetUser(ctx context.Context, orgID types.OrgID, id types.UserID) (*model.User, error) {
	docSnap, err := r.usersCollection(orgID).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "user not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("id", id))
	}

	var d userDoc
	if err := docSnap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal user", goerr.V("id", id))
	}

	return fromUserDoc(&d), nil
}

func (r *directoryRepository) ListUsers(ctx context.Context, orgID types.OrgID) ([]*model.User, error) {
	iter := r.usersCollection(orgID).Documents(ctx)
	defer iter.Stop()

	result := make([]*model.User, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate users")
		}

		var d userDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal user")
		}

		result = append(result, fromUserDoc(&d))
	}

	return result, nil
}

// ReplaceUsers replaces the org's user directory (DeleteAll then SaveMany)
func (r *directoryRepository) ReplaceUsers(ctx context.Context, orgID types.OrgID, users []*model.User) error {
	if err := r.deleteAll(ctx, r.usersCollection(orgID)); err != nil {
		return goerr.Wrap(err, "failed to delete existing users")
	}

	for _, u := range users {
		doc := &userDoc{ID: u.ID.String(), Name: u.Name, Email: u.Email}
		if _, err := r.usersCollection(orgID).Doc(u.ID.String()).Set(ctx, doc); err != nil {
			return goerr.Wrap(err, "failed to save user", goerr.V("id", u.ID))
		}
	}
	return nil
}

func (r *directoryRepository) GetTeam(ctx context.Context, orgID types.OrgID, id types.TeamID) (*model.Team, error) {
	docSnap, err := r.teamsCollection(orgID).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "team not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get team", goerr.V("id", id))
	}

	var d teamDoc
	if err := docSnap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal team", goerr.V("id", id))
	}

	return fromTeamDoc(&d), nil
}

func (r *directoryRepository) ListTeams(ctx context.Context, orgID types.OrgID) ([]*model.Team, error) {
	iter := r.teamsCollection(orgID).Documents(ctx)
	defer iter.Stop()

	result := make([]*model.Team, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate teams")
		}

		var d teamDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal team")
		}

		result = append(result, fromTeamDoc(&d))
	}

	return result, nil
}

// ReplaceTeams replaces the org's team directory (DeleteAll then SaveMany)
func (r *directoryRepository) ReplaceTeams(ctx context.Context, orgID types.OrgID, teams []*model.Team) error {
	if err := r.deleteAll(ctx, r.teamsCollection(orgID)); err != nil {
		return goerr.Wrap(err, "failed to delete existing teams")
	}

	for _, t := range teams {
		members := make([]string, 0, len(t.MemberIDs))
		for _, id := range t.MemberIDs {
			members = append(members, id.String())
		}
		doc := &teamDoc{ID: t.ID.String(), Name: t.Name, MemberIDs: members}
		if _, err := r.teamsCollection(orgID).Doc(t.ID.String()).Set(ctx, doc); err != nil {
			return goerr.Wrap(err, "failed to save team", goerr.V("id", t.ID))
		}
	}
	return nil
}

func (r *directoryRepository) deleteAll(ctx context.Context, coll *firestore.CollectionRef) error {
	iter := coll.Documents(ctx)
	defer iter.Stop()

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to iterate documents")
		}
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return goerr.Wrap(err, "failed to delete document", goerr.V("path", doc.Ref.Path))
		}
	}
	return nil
}

package repository_test

import (
	"context"
	"os"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/workyard-lab/workyard/pkg/domain/interfaces"
	"github.com/workyard-lab/workyard/pkg/repository/firestore"
)

// newFirestoreRepo returns a Firestore-backed repository for integration
// tests, or skips when no project is configured.
func newFirestoreRepo(t *testing.T) interfaces.Repository {
	t.Helper()

	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}

	repo, err := firestore.New(context.Background(), projectID, os.Getenv("FIRESTORE_DATABASE_ID"))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		gt.NoError(t, repo.Close())
	})

	return repo
}

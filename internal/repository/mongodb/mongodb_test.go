package mongodb

import (
	"testing"

	"github.com/aquatrace/aquatrace/internal/repository"
)

// Each collection's repository is its own type: the per-entity Create and
// Count signatures differ, so one type could never satisfy all three
// interfaces at once. This pins the wiring the server relies on.
func TestPerEntityRepositories(t *testing.T) {
	db := &DB{
		Users:   &Users{},
		Uploads: &Uploads{},
		Stats:   &Stats{},
	}

	var users repository.UserRepository = db.Users
	var uploads repository.UploadRepository = db.Uploads
	var stats repository.StatsRepository = db.Stats

	if users == nil || uploads == nil || stats == nil {
		t.Fatal("per-entity repositories must be non-nil")
	}
}

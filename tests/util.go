package testutil

import (
	"testing"
	"time"

	"github.com/trezcool/eduverse/core"
	"github.com/trezcool/eduverse/core/catalog"
	"github.com/trezcool/eduverse/core/user"
	"github.com/trezcool/eduverse/storage/database/inmem"
)

// Latency replaces the demo delays in tests.
const Latency = 20 * time.Millisecond

// NewConfig returns the default configuration with test friendly delays.
func NewConfig() *core.Config {
	conf := core.NewConfig()
	conf.TestMode = true
	conf.Auth.Latency = Latency
	conf.Checkout.Latency = Latency
	return conf
}

func OpenDB(t *testing.T) *inmemdb.DB {
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("OpenDB() failed: %v", err)
	}
	return db
}

func NewUserService(t *testing.T, db ...*inmemdb.DB) *user.Service {
	return user.NewService(inmemdb.NewUserRepository(dbOrNew(t, db)))
}

func NewCatalogService(t *testing.T, db ...*inmemdb.DB) *catalog.Service {
	return catalog.NewService(inmemdb.NewCatalogRepository(dbOrNew(t, db)))
}

// SeededStudent returns john.doe@example.com, enrolled in courses 1, 2 and 3.
func SeededStudent(t *testing.T, svc *user.Service) user.User {
	return getUser(t, svc, "1")
}

func SeededInstructor(t *testing.T, svc *user.Service) user.User {
	return getUser(t, svc, "2")
}

func SeededAdmin(t *testing.T, svc *user.Service) user.User {
	return getUser(t, svc, "3")
}

func getUser(t *testing.T, svc *user.Service, id string) user.User {
	usr, err := svc.GetByID(id)
	if err != nil {
		t.Fatalf("getUser(%s) failed: %v", id, err)
	}
	return usr
}

func dbOrNew(t *testing.T, db []*inmemdb.DB) *inmemdb.DB {
	if len(db) > 0 {
		return db[0]
	}
	return OpenDB(t)
}

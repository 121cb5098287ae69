package inmemdb

import (
	"sync"

	"github.com/trezcool/eduverse/core/catalog"
	"github.com/trezcool/eduverse/core/user"
)

type (
	DB struct {
		user        *userTable
		course      *courseTable
		webinar     *webinarTable
		certificate *certificateTable
	}

	// tables keep insertion order: the catalog order is part of what pages show.
	userTable struct {
		sync.RWMutex
		order []string
		table map[string]*user.User
	}

	courseTable struct {
		sync.RWMutex
		order []string
		table map[string]*catalog.Course
	}

	webinarTable struct {
		sync.RWMutex
		rows []catalog.Webinar
	}

	certificateTable struct {
		sync.RWMutex
		rows []catalog.Certificate
	}
)

// Open returns a database loaded with the demo data set.
func Open() (*DB, error) {
	db := OpenEmpty()
	if err := seed(db); err != nil {
		return nil, err
	}
	return db, nil
}

// OpenEmpty returns a database with empty tables.
func OpenEmpty() *DB {
	return &DB{
		user:        &userTable{table: make(map[string]*user.User)},
		course:      &courseTable{table: make(map[string]*catalog.Course)},
		webinar:     &webinarTable{},
		certificate: &certificateTable{},
	}
}

func (t *userTable) insert(usr user.User) {
	t.Lock()
	defer t.Unlock()
	if _, ok := t.table[usr.ID]; !ok {
		t.order = append(t.order, usr.ID)
	}
	t.table[usr.ID] = &usr
}

func (t *courseTable) insert(c catalog.Course) {
	t.Lock()
	defer t.Unlock()
	if _, ok := t.table[c.ID]; !ok {
		t.order = append(t.order, c.ID)
	}
	t.table[c.ID] = &c
}

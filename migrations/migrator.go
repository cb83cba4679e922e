// Package migrations holds the versioned schema changes of the application.
//
// Each migration lives in its own file named YYYY_MM_DD_HHMMSS_<name>.go and
// registers itself from init. IDs sort chronologically, which is the order
// they are applied in. `postboard make:migration` writes new files here.
package migrations

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

// TableName is where applied migration IDs are recorded.
const TableName = "migrations"

var registry = map[string]*gormigrate.Migration{}

func register(m *gormigrate.Migration) {
	if _, dup := registry[m.ID]; dup {
		panic("duplicate migration id " + m.ID)
	}
	registry[m.ID] = m
}

// All returns every registered migration ordered by ID.
func All() []*gormigrate.Migration {
	list := make([]*gormigrate.Migration, 0, len(registry))
	for _, m := range registry {
		list = append(list, m)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

func newMigrator(db *gorm.DB) *gormigrate.Gormigrate {
	opts := *gormigrate.DefaultOptions
	opts.TableName = TableName
	return gormigrate.New(db, &opts, All())
}

// Up applies all pending migrations.
func Up(db *gorm.DB) error {
	if err := newMigrator(db).Migrate(); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// Rollback reverts the last steps applied migrations and returns how many were reverted.
func Rollback(db *gorm.DB, steps int) (int, error) {
	if steps < 1 {
		steps = 1
	}
	m := newMigrator(db)
	done := 0
	for ; done < steps; done++ {
		if err := m.RollbackLast(); err != nil {
			if errors.Is(err, gormigrate.ErrNoRunMigration) {
				break
			}
			return done, fmt.Errorf("rollback: %w", err)
		}
	}
	return done, nil
}

// Fresh reverts every applied migration and applies them all again.
func Fresh(db *gorm.DB) error {
	if _, err := Rollback(db, len(registry)); err != nil {
		return err
	}
	return Up(db)
}

// Status reports whether a migration has been applied.
type Status struct {
	ID  string
	Ran bool
}

// Statuses lists every registered migration with its applied state.
func Statuses(db *gorm.DB) ([]Status, error) {
	applied := map[string]bool{}
	if db.Migrator().HasTable(TableName) {
		var ids []string
		if err := db.Table(TableName).Pluck("id", &ids).Error; err != nil {
			return nil, fmt.Errorf("read %s: %w", TableName, err)
		}
		for _, id := range ids {
			applied[id] = true
		}
	}

	all := All()
	out := make([]Status, 0, len(all))
	for _, m := range all {
		out = append(out, Status{ID: m.ID, Ran: applied[m.ID]})
	}
	return out, nil
}

// Pending returns the number of migrations not applied yet.
func Pending(db *gorm.DB) (int, error) {
	list, err := Statuses(db)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, s := range list {
		if !s.Ran {
			n++
		}
	}
	return n, nil
}

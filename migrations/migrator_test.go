package migrations_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/postboard/migrations"
	"github.com/cppla/postboard/models"
	"github.com/cppla/postboard/testutil"
)

func TestAll_SortedByID(t *testing.T) {
	all := migrations.All()
	require.NotEmpty(t, all)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].ID, all[i].ID)
	}
}

func TestUp_CreatesTables(t *testing.T) {
	db := testutil.NewEmptyDB(t)

	pending, err := migrations.Pending(db)
	require.NoError(t, err)
	assert.Equal(t, len(migrations.All()), pending)

	require.NoError(t, migrations.Up(db))

	for _, table := range []string{"posts", "comments", "page_views", migrations.TableName} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	pending, err = migrations.Pending(db)
	require.NoError(t, err)
	assert.Zero(t, pending)

	// Running again is a no-op.
	require.NoError(t, migrations.Up(db))

	post := models.Post{Title: "Hello", Body: "World"}
	require.NoError(t, db.Create(&post).Error)
	assert.NotZero(t, post.ID)
}

func TestRollback(t *testing.T) {
	db := testutil.NewDB(t)
	all := migrations.All()

	n, err := migrations.Rollback(db, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	statuses, err := migrations.Statuses(db)
	require.NoError(t, err)
	require.Len(t, statuses, len(all))
	assert.False(t, statuses[len(statuses)-1].Ran)
	assert.True(t, statuses[0].Ran)
	assert.False(t, db.Migrator().HasTable("page_views"))

	// Asking for more steps than applied stops at the bottom.
	n, err = migrations.Rollback(db, 100)
	require.NoError(t, err)
	assert.Equal(t, len(all)-1, n)
	assert.False(t, db.Migrator().HasTable("posts"))

	n, err = migrations.Rollback(db, 1)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestFresh(t *testing.T) {
	db := testutil.NewDB(t)
	require.NoError(t, db.Create(&models.Post{Title: "Gone", Body: "soon"}).Error)

	require.NoError(t, migrations.Fresh(db))

	var count int64
	require.NoError(t, db.Model(&models.Post{}).Count(&count).Error)
	assert.Zero(t, count)

	pending, err := migrations.Pending(db)
	require.NoError(t, err)
	assert.Zero(t, pending)
}

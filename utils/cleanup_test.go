package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/postboard/models"
	"github.com/cppla/postboard/testutil"
)

func TestPrunePageViews(t *testing.T) {
	db := testutil.NewDB(t)
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.Local)
	day := func(offset int) time.Time {
		return time.Date(2024, 3, 10+offset, 0, 0, 0, 0, time.Local)
	}

	for _, pv := range []models.PageView{
		{Date: day(-40), Path: "/posts", Count: 3},
		{Date: day(-31), Path: "/posts", Count: 2},
		{Date: day(-30), Path: "/posts", Count: 1},
		{Date: day(0), Path: "/posts/1", PostID: 1, Count: 9},
	} {
		require.NoError(t, db.Create(&pv).Error)
	}

	n, err := PrunePageViews(db, 30, now)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	var left []models.PageView
	require.NoError(t, db.Order("date ASC").Find(&left).Error)
	require.Len(t, left, 2)
	assert.EqualValues(t, 1, left[0].Count)
	assert.EqualValues(t, 9, left[1].Count)
}

package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Daeuning/WSD-Assignment-03/internal/database"
	"github.com/Daeuning/WSD-Assignment-03/internal/model"
	"github.com/Daeuning/WSD-Assignment-03/internal/utilities"
)

func statOf(t *testing.T, jobID uint) model.JobStatistics {
	t.Helper()
	stat, err := database.GetStatistics(testDB.DB, jobID)
	require.NoError(t, err)
	return stat
}

func TestToggleBookmarkPairLaw(t *testing.T) {
	ctx := context.Background()
	svc := NewToggleService(testDB)
	user, err := database.NewTestUser(testDB, "toggle-law@example.com")
	require.NoError(t, err)
	job, err := database.NewTestJob(testDB, "Toggle Law Job")
	require.NoError(t, err)

	before := statOf(t, job.ID).BookmarkCount

	res, err := svc.ToggleBookmark(ctx, user.ID, job.ID)
	require.NoError(t, err)
	assert.Equal(t, ToggleResult{Added: true, State: StateAdded}, res)
	assert.Equal(t, before+1, statOf(t, job.ID).BookmarkCount)

	res, err = svc.ToggleBookmark(ctx, user.ID, job.ID)
	require.NoError(t, err)
	assert.Equal(t, ToggleResult{Added: false, State: StateRemoved}, res)
	assert.Equal(t, before, statOf(t, job.ID).BookmarkCount)

	list, err := database.FindMembershipList(testDB.DB, user.ID, model.KindBookmark)
	require.NoError(t, err)
	assert.Empty(t, list.Entries)
}

func TestToggleBalancedCounterEndsAtZero(t *testing.T) {
	ctx := context.Background()
	svc := NewToggleService(testDB)
	job, err := database.NewTestJob(testDB, "Balanced Favorite Job")
	require.NoError(t, err)

	users := make([]model.User, 4)
	for i := range users {
		users[i], err = database.NewTestUser(testDB, "balanced-"+string(rune('a'+i))+"@example.com")
		require.NoError(t, err)
	}

	for i, u := range users {
		_, err := svc.ToggleFavorite(ctx, u.ID, job.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), statOf(t, job.ID).FavoriteCount)
	}
	for i, u := range users {
		_, err := svc.ToggleFavorite(ctx, u.ID, job.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(len(users)-i-1), statOf(t, job.ID).FavoriteCount)
	}
	assert.Equal(t, int64(0), statOf(t, job.ID).FavoriteCount)
	assert.Equal(t, int64(0), statOf(t, job.ID).BookmarkCount)
}

func TestToggleConcurrentSameUser(t *testing.T) {
	ctx := context.Background()
	svc := NewToggleService(testDB)
	user, err := database.NewTestUser(testDB, "toggle-concurrent@example.com")
	require.NoError(t, err)
	job, err := database.NewTestJob(testDB, "Concurrent Toggle Job")
	require.NoError(t, err)

	// even number of toggles always ends where it started
	const n = 10
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		go func() {
			_, err := svc.ToggleBookmark(ctx, user.ID, job.ID)
			errs <- err
		}()
	}
	for i := 0; i < n; i++ {
		assert.NoError(t, <-errs)
	}

	list, err := database.FindMembershipList(testDB.DB, user.ID, model.KindBookmark)
	require.NoError(t, err)
	assert.Empty(t, list.Entries)
	assert.Equal(t, int64(0), statOf(t, job.ID).BookmarkCount)
}

func TestToggleValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewToggleService(testDB)

	_, err := svc.ToggleBookmark(ctx, uuid.Nil, database.TestJob1.ID)
	assertKind(t, utilities.KindAuthRequired, err)

	_, err = svc.ToggleBookmark(ctx, database.TestUser1.ID, 0)
	assertKind(t, utilities.KindValidation, err)

	_, err = svc.ToggleFavorite(ctx, database.TestUser1.ID, 999999)
	assertKind(t, utilities.KindNotFound, err)

	_, err = svc.ToggleFavorite(ctx, uuid.New(), database.TestJob1.ID)
	assertKind(t, utilities.KindNotFound, err)
}

func TestToggleUnknownJobLeavesNoTrace(t *testing.T) {
	ctx := context.Background()
	svc := NewToggleService(testDB)
	user, err := database.NewTestUser(testDB, "toggle-unknown@example.com")
	require.NoError(t, err)

	_, err = svc.ToggleBookmark(ctx, user.ID, 999999)
	assertKind(t, utilities.KindNotFound, err)

	// list creation was rolled back with the failed entry
	list, err := database.FindMembershipList(testDB.DB, user.ID, model.KindBookmark)
	require.NoError(t, err)
	assert.Equal(t, uint(0), list.ID)
}

func TestListMemberships(t *testing.T) {
	ctx := context.Background()
	svc := NewToggleService(testDB)
	user, err := database.NewTestUser(testDB, "list-memberships@example.com")
	require.NoError(t, err)

	for _, id := range []uint{database.TestJob1.ID, database.TestJob2.ID, database.TestJob3.ID} {
		_, err := svc.ToggleBookmark(ctx, user.ID, id)
		require.NoError(t, err)
	}

	page, err := svc.ListMemberships(ctx, user.ID, model.KindBookmark, 1, 2, "asc")
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Pagination.TotalItems)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	require.Len(t, page.Items, 2)
	assert.Equal(t, database.TestJob1.ID, page.Items[0].Job.ID)
	assert.Equal(t, database.TestJob1.Title, page.Items[0].Job.Title)
	assert.Equal(t, database.TestCompany1.Name, page.Items[0].Job.CompanyName)
	assert.Equal(t, database.TestJob2.ID, page.Items[1].Job.ID)

	page, err = svc.ListMemberships(ctx, user.ID, model.KindBookmark, 1, 10, "")
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, database.TestJob3.ID, page.Items[0].Job.ID)
	assert.Equal(t, database.TestCompany2.Name, page.Items[0].Job.CompanyName)

	favorites, err := svc.ListMemberships(ctx, user.ID, model.KindFavorite, 1, 10, "")
	require.NoError(t, err)
	assert.Empty(t, favorites.Items)
	assert.Equal(t, int64(0), favorites.Pagination.TotalItems)

	_, err = svc.ListMemberships(ctx, uuid.Nil, model.KindFavorite, 1, 10, "")
	assertKind(t, utilities.KindAuthRequired, err)
}

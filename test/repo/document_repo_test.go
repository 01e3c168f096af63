package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xxxsen/pkf/internal/model"
	appErr "github.com/xxxsen/pkf/internal/pkg/errors"
	"github.com/xxxsen/pkf/internal/pkg/timeutil"
	"github.com/xxxsen/pkf/internal/repo"
	"github.com/xxxsen/pkf/test/testutil"
)

func newDocument(userID, id string, ctime int64) *model.Document {
	return &model.Document{
		ID:                id,
		UserID:            userID,
		Title:             "title " + id,
		ContentType:       model.ContentTypeText,
		SourceType:        model.SourceTypePaste,
		RawContent:        "raw",
		NormalizedContent: "normalized",
		WordCount:         100,
		CharCount:         500,
		ReadTimeMinutes:   1,
		Ctime:             ctime,
		IngestedAt:        ctime,
		Mtime:             ctime,
	}
}

func TestDocumentRepoCRUDAndIsolation(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	docs := repo.NewDocumentRepo(db)
	user := "user-" + testutil.NewID(t)
	id := "doc-" + testutil.NewID(t)
	now := timeutil.NowUnix()

	require.NoError(t, docs.Create(context.Background(), newDocument(user, id, now)))
	require.ErrorIs(t, docs.Create(context.Background(), newDocument(user, id, now)), appErr.ErrConflict)

	fetched, err := docs.GetByID(context.Background(), user, id)
	require.NoError(t, err)
	require.Equal(t, "title "+id, fetched.Title)
	require.False(t, fetched.IsProcessed)

	_, err = docs.GetByID(context.Background(), "someone-else", id)
	require.ErrorIs(t, err, appErr.ErrNotFound)

	require.NoError(t, docs.SetProcessed(context.Background(), id, true, "", timeutil.NowUnix()))
	fetched, err = docs.GetByID(context.Background(), user, id)
	require.NoError(t, err)
	require.True(t, fetched.IsProcessed)

	require.NoError(t, docs.Delete(context.Background(), user, id))
	_, err = docs.GetByID(context.Background(), user, id)
	require.ErrorIs(t, err, appErr.ErrNotFound)
	require.ErrorIs(t, docs.Delete(context.Background(), user, id), appErr.ErrNotFound)
}

func TestDocumentRepoListOrdering(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	docs := repo.NewDocumentRepo(db)
	user := "user-" + testutil.NewID(t)
	base := timeutil.NowUnix()
	for i := 0; i < 3; i++ {
		id := "doc-" + testutil.NewID(t)
		doc := newDocument(user, id, base+int64(i))
		require.NoError(t, docs.Create(context.Background(), doc))
	}

	listed, err := docs.List(context.Background(), user, 2, 0)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	require.Greater(t, listed[0].Ctime, listed[1].Ctime)

	rest, err := docs.List(context.Background(), user, 2, 2)
	require.NoError(t, err)
	require.Len(t, rest, 1)
}

func TestDocumentRepoPriorProcessedWindow(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	docs := repo.NewDocumentRepo(db)
	user := "user-" + testutil.NewID(t)
	base := timeutil.NowUnix()

	var ids []string
	for i := 0; i < 4; i++ {
		id := "doc-" + testutil.NewID(t)
		ids = append(ids, id)
		doc := newDocument(user, id, base+int64(i))
		require.NoError(t, docs.Create(context.Background(), doc))
		if i < 3 {
			require.NoError(t, docs.SetProcessed(context.Background(), id, true, "", base+int64(i)))
		}
	}

	// Window before the newest document: processed docs only, most
	// recent first, strictly earlier ctime.
	prior, err := docs.ListPriorProcessed(context.Background(), user, base+3, 2)
	require.NoError(t, err)
	require.Len(t, prior, 2)
	require.Equal(t, ids[2], prior[0].ID)
	require.Equal(t, ids[1], prior[1].ID)
}

func TestDocumentRepoListUnscored(t *testing.T) {
	db, cleanup := testutil.OpenTestDB(t)
	defer cleanup()

	docs := repo.NewDocumentRepo(db)
	scores := repo.NewScoreRepo(db)
	user := "user-" + testutil.NewID(t)
	now := timeutil.NowUnix()

	scored := "doc-" + testutil.NewID(t)
	unscored := "doc-" + testutil.NewID(t)
	for _, id := range []string{scored, unscored} {
		require.NoError(t, docs.Create(context.Background(), newDocument(user, id, now)))
		require.NoError(t, docs.SetProcessed(context.Background(), id, true, "", now))
	}
	require.NoError(t, scores.UpsertWithRedundancies(context.Background(), &model.DocumentScore{
		DocumentID:   scored,
		UserID:       user,
		CalculatedAt: now,
	}, nil))

	pending, err := docs.ListUnscored(context.Background(), 1000)
	require.NoError(t, err)
	pendingIDs := make(map[string]bool)
	for _, doc := range pending {
		pendingIDs[doc.ID] = true
	}
	require.True(t, pendingIDs[unscored])
	require.False(t, pendingIDs[scored])
}

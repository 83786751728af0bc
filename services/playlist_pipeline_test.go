package services

import (
	"context"
	"errors"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cratedig/database"
	"cratedig/marketplace"
	"cratedig/models"
	"cratedig/youtube"
)

type fakePlaylistClient struct {
	items []youtube.VideoItem
	err   error
}

func (f *fakePlaylistClient) PlaylistItems(context.Context, string) ([]youtube.VideoItem, error) {
	return f.items, f.err
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func newTestPipeline(db *gorm.DB, videos youtube.PlaylistClient) *PlaylistPipeline {
	return NewPlaylistPipeline(db, videos, marketplace.NewAggregator())
}

const testPlaylist = "PLx0sYbCqOb8TBPRdmBHs5Iftvv9TPboYG"

func TestProcessPlaylistOwnerMismatch(t *testing.T) {
	pipeline := newTestPipeline(newTestDB(t), &fakePlaylistClient{})

	_, err := pipeline.ProcessPlaylist(context.Background(), testPlaylist, "alice", "bob")
	assert.ErrorIs(t, err, ErrOwnerMismatch)

	_, err = pipeline.ProcessPlaylist(context.Background(), testPlaylist, "", "")
	assert.ErrorIs(t, err, ErrOwnerMismatch, "empty owner must be rejected even when it matches")
}

func TestProcessPlaylistInvalidReference(t *testing.T) {
	pipeline := newTestPipeline(newTestDB(t), &fakePlaylistClient{})

	_, err := pipeline.ProcessPlaylist(context.Background(), "not a playlist!!", "alice", "alice")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestProcessPlaylistEmpty(t *testing.T) {
	pipeline := newTestPipeline(newTestDB(t), &fakePlaylistClient{items: nil})

	_, err := pipeline.ProcessPlaylist(context.Background(), testPlaylist, "alice", "alice")
	assert.ErrorIs(t, err, ErrPlaylistEmpty)
}

func TestProcessPlaylistListingFailure(t *testing.T) {
	pipeline := newTestPipeline(newTestDB(t), &fakePlaylistClient{err: errors.New("quota exceeded")})

	_, err := pipeline.ProcessPlaylist(context.Background(), testPlaylist, "alice", "alice")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrPlaylistEmpty)
}

func TestProcessPlaylist(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.OwnedRecord{
		OwnerID:       "alice",
		Artist:        "Daft Punk",
		Title:         "One More Time",
		NormalizedKey: "daft punk one more time",
	}).Error)

	videos := &fakePlaylistClient{items: []youtube.VideoItem{
		{VideoID: "v1", Title: "Daft Punk - One More Time [Official Video]"},
		{VideoID: "v2", Title: "Squarepusher - Come On My Selector"},
		{VideoID: "v3", Title: "Untitled Track"},
	}}

	summary, err := newTestPipeline(db, videos).ProcessPlaylist(context.Background(), testPlaylist, "alice", "alice")
	require.NoError(t, err)

	assert.NotEmpty(t, summary.JobID)
	assert.Equal(t, 3, summary.TrackCount)
	assert.Equal(t, 1, summary.MatchedCount)
	assert.Equal(t, 0, summary.WriteFailures)
	require.Len(t, summary.Tracks, 3)

	first := summary.Tracks[0]
	assert.Equal(t, "Daft Punk", first.Artist)
	assert.Equal(t, "One More Time", first.Title)
	assert.Equal(t, "matched", first.Status)
	assert.Equal(t, 100, first.Confidence)
	assert.NotZero(t, first.OwnedID)

	assert.Equal(t, "unmatched", summary.Tracks[1].Status)
	assert.Zero(t, summary.Tracks[1].OwnedID)

	// v3 has no artist pattern at all: still ingested, never dropped.
	assert.Equal(t, "Untitled Track", summary.Tracks[2].Title)
	assert.Equal(t, "unmatched", summary.Tracks[2].Status)

	var job models.PlaylistJob
	require.NoError(t, db.Where("job_id = ?", summary.JobID).First(&job).Error)
	assert.Equal(t, "completed", job.Status)
	assert.Equal(t, 3, job.TrackCount)
	assert.Equal(t, 1, job.MatchedCount)

	var count int64
	require.NoError(t, db.Model(&models.ProcessedTrack{}).Where("job_id = ?", summary.JobID).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestProcessPlaylistSnapshotsOwnerCatalogOnly(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&models.OwnedRecord{
		OwnerID:       "bob",
		Artist:        "Daft Punk",
		Title:         "One More Time",
		NormalizedKey: "daft punk one more time",
	}).Error)

	videos := &fakePlaylistClient{items: []youtube.VideoItem{
		{VideoID: "v1", Title: "Daft Punk - One More Time"},
	}}

	summary, err := newTestPipeline(db, videos).ProcessPlaylist(context.Background(), testPlaylist, "alice", "alice")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.MatchedCount, "another owner's records must not match")
	assert.Equal(t, "unmatched", summary.Tracks[0].Status)
}

func TestSearchMarketplaceValidation(t *testing.T) {
	pipeline := newTestPipeline(newTestDB(t), &fakePlaylistClient{})

	_, err := pipeline.SearchMarketplace(context.Background(), "Daft Punk", "One More Time", "", "alice", "bob", 0)
	assert.ErrorIs(t, err, ErrOwnerMismatch)

	_, err = pipeline.SearchMarketplace(context.Background(), "", "One More Time", "", "alice", "alice", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = pipeline.SearchMarketplace(context.Background(), "Daft Punk", "", "", "alice", "alice", 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSearchMarketplaceUnknownTrack(t *testing.T) {
	pipeline := newTestPipeline(newTestDB(t), &fakePlaylistClient{})

	_, err := pipeline.SearchMarketplace(context.Background(), "Daft Punk", "One More Time", "", "alice", "alice", 99)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSearchMarketplaceForeignTrackRejected(t *testing.T) {
	db := newTestDB(t)
	track := models.ProcessedTrack{
		JobID:    "job-1",
		OwnerID:  "bob",
		RawTitle: "Daft Punk - One More Time",
		Artist:   "Daft Punk",
		Title:    "One More Time",
		Status:   "unmatched",
	}
	require.NoError(t, db.Create(&track).Error)

	pipeline := newTestPipeline(db, &fakePlaylistClient{})

	_, err := pipeline.SearchMarketplace(context.Background(), "Daft Punk", "One More Time", "", "alice", "alice", track.ID)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestSearchMarketplaceReplacesStoredListings(t *testing.T) {
	db := newTestDB(t)
	track := models.ProcessedTrack{
		JobID:    "job-1",
		OwnerID:  "alice",
		RawTitle: "Daft Punk - One More Time",
		Artist:   "Daft Punk",
		Title:    "One More Time",
		Status:   "unmatched",
	}
	require.NoError(t, db.Create(&track).Error)
	require.NoError(t, db.Create(&models.TrackListing{
		TrackID:      track.ID,
		ProviderName: "stale",
		URL:          "https://stale.example",
	}).Error)

	pipeline := newTestPipeline(db, &fakePlaylistClient{})

	listings, err := pipeline.SearchMarketplace(context.Background(), "Daft Punk", "One More Time", "", "alice", "alice", track.ID)
	require.NoError(t, err)
	assert.Empty(t, listings, "no providers are configured")

	var count int64
	require.NoError(t, db.Model(&models.TrackListing{}).Where("track_id = ?", track.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count, "stale listings must be replaced by the fresh result")
}

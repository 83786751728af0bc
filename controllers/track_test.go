package controllers

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"cratedig/database"
	"cratedig/models"
)

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	trackController := NewTrackController(db)

	r := gin.New()
	api := r.Group("/", AuthRequired())
	api.GET("/tracks", trackController.GetTracks)
	api.GET("/tracks/:id", trackController.GetTrackByID)
	api.PUT("/tracks/:id/match", trackController.CorrectMatch)
	return r, db
}

func seedTrack(t *testing.T, db *gorm.DB, owner, status string) models.ProcessedTrack {
	t.Helper()
	track := models.ProcessedTrack{
		JobID:    "job-1",
		OwnerID:  owner,
		RawTitle: "Daft Punk - One More Time",
		Artist:   "Daft Punk",
		Title:    "One More Time",
		Status:   status,
	}
	require.NoError(t, db.Create(&track).Error)
	return track
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func doRequest(r *gin.Engine, method, path, user, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if user != "" {
		req.Header.Set("X-Auth-User", user)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func TestGetTracksScopedToOwner(t *testing.T) {
	r, db := newTestRouter(t)
	seedTrack(t, db, "alice", "unmatched")
	seedTrack(t, db, "bob", "unmatched")

	w := doRequest(r, http.MethodGet, "/tracks", "alice", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, strings.Count(w.Body.String(), `"raw_title"`))
}

func TestGetTracksStatusFilter(t *testing.T) {
	r, db := newTestRouter(t)
	seedTrack(t, db, "alice", "matched")
	seedTrack(t, db, "alice", "needs_review")

	w := doRequest(r, http.MethodGet, "/tracks?status=needs_review", "alice", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"needs_review"`)
	assert.NotContains(t, w.Body.String(), `"matched"`)
}

func TestGetTrackByIDForeignOwner(t *testing.T) {
	r, db := newTestRouter(t)
	track := seedTrack(t, db, "bob", "unmatched")

	w := doRequest(r, http.MethodGet, "/tracks/"+itoa(track.ID), "alice", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCorrectMatchLinksOwnedRecord(t *testing.T) {
	r, db := newTestRouter(t)
	track := seedTrack(t, db, "alice", "needs_review")
	owned := models.OwnedRecord{OwnerID: "alice", Artist: "Daft Punk", Title: "One More Time"}
	require.NoError(t, db.Create(&owned).Error)

	w := doRequest(r, http.MethodPut, "/tracks/"+itoa(track.ID)+"/match", "alice",
		`{"owned_record_id": `+itoa(owned.ID)+`}`)
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.ProcessedTrack
	require.NoError(t, db.First(&updated, track.ID).Error)
	assert.Equal(t, "corrected", updated.Status)
	assert.Equal(t, 100, updated.Confidence)
	require.NotNil(t, updated.OwnedRecordID)
	assert.Equal(t, owned.ID, *updated.OwnedRecordID)
}

func TestCorrectMatchClearsLink(t *testing.T) {
	r, db := newTestRouter(t)
	track := seedTrack(t, db, "alice", "needs_review")
	ownedID := uint(7)
	track.OwnedRecordID = &ownedID
	track.Confidence = 70
	require.NoError(t, db.Save(&track).Error)

	w := doRequest(r, http.MethodPut, "/tracks/"+itoa(track.ID)+"/match", "alice", `{"owned_record_id": 0}`)
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.ProcessedTrack
	require.NoError(t, db.First(&updated, track.ID).Error)
	assert.Equal(t, "unmatched", updated.Status)
	assert.Equal(t, 0, updated.Confidence)
	assert.Nil(t, updated.OwnedRecordID)
}

func TestCorrectMatchRejectsForeignOwnedRecord(t *testing.T) {
	r, db := newTestRouter(t)
	track := seedTrack(t, db, "alice", "needs_review")
	owned := models.OwnedRecord{OwnerID: "bob", Artist: "Daft Punk", Title: "One More Time"}
	require.NoError(t, db.Create(&owned).Error)

	w := doRequest(r, http.MethodPut, "/tracks/"+itoa(track.ID)+"/match", "alice",
		`{"owned_record_id": `+itoa(owned.ID)+`}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

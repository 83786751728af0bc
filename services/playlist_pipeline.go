package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"cratedig/config"
	"cratedig/marketplace"
	"cratedig/models"
	"cratedig/youtube"
)

// PlaylistPipeline runs the ingest pipeline: list playlist videos, extract
// artist/title/remix from each label, match against the owner's catalog and
// persist one ProcessedTrack per video. Marketplace enrichment runs on demand
// through SearchMarketplace.
type PlaylistPipeline struct {
	db         *gorm.DB
	videos     youtube.PlaylistClient
	matcher    *TrackMatcher
	aggregator *marketplace.Aggregator
}

func NewPlaylistPipeline(db *gorm.DB, videos youtube.PlaylistClient, aggregator *marketplace.Aggregator) *PlaylistPipeline {
	return &PlaylistPipeline{
		db:         db,
		videos:     videos,
		matcher:    NewTrackMatcher(),
		aggregator: aggregator,
	}
}

// TrackSummary is the per-track slice of a processing run's result
type TrackSummary struct {
	TrackID    uint   `json:"track_id"`
	RawTitle   string `json:"raw_title"`
	Artist     string `json:"artist"`
	Title      string `json:"title"`
	Remix      string `json:"remix,omitempty"`
	OwnedID    uint   `json:"owned_id,omitempty"`
	Confidence int    `json:"confidence"`
	Status     string `json:"status"`
}

// PlaylistSummary is the result of one full processing run. WriteFailures
// counts tracks that could not be persisted even item-by-item; the run still
// reports them rather than aborting.
type PlaylistSummary struct {
	JobID         string         `json:"job_id"`
	TrackCount    int            `json:"track_count"`
	MatchedCount  int            `json:"matched_count"`
	ReviewCount   int            `json:"review_count"`
	WriteFailures int            `json:"write_failures"`
	Tracks        []TrackSummary `json:"tracks"`
}

// ProcessPlaylist ingests every video of the playlist for ownerID. The owner
// must equal the authenticated identity (fail closed). The owned index is
// snapshotted once before the first track, so concurrent catalog edits cannot
// skew confidences within a run.
func (p *PlaylistPipeline) ProcessPlaylist(ctx context.Context, playlistURL, ownerID, authUserID string) (*PlaylistSummary, error) {
	if ownerID == "" || ownerID != authUserID {
		return nil, ErrOwnerMismatch
	}

	playlistID, err := youtube.ParsePlaylistID(playlistURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	items, err := p.videos.PlaylistItems(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("video listing failed: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrPlaylistEmpty
	}

	index, err := LoadOwnedIndex(p.db, ownerID)
	if err != nil {
		return nil, err
	}

	job := models.PlaylistJob{
		JobID:       uuid.NewString(),
		OwnerID:     ownerID,
		PlaylistURL: playlistURL,
		Status:      "running",
		TrackCount:  len(items),
	}
	if err := p.db.Create(&job).Error; err != nil {
		return nil, fmt.Errorf("failed to create playlist job: %w", err)
	}

	tracks := make([]models.ProcessedTrack, 0, len(items))
	matched, review := 0, 0
	for _, item := range items {
		info := ExtractTrackInfo(item.Title, item.Description)
		match := p.matcher.MatchOwned(info.Artist, info.Title, index)

		track := models.ProcessedTrack{
			JobID:      job.JobID,
			OwnerID:    ownerID,
			VideoID:    item.VideoID,
			RawTitle:   item.Title,
			Artist:     info.Artist,
			Title:      info.Title,
			Remix:      info.Remix,
			Confidence: match.Confidence,
			Status:     statusForMatch(match),
		}
		if match.OwnedID != 0 {
			ownedID := match.OwnedID
			track.OwnedRecordID = &ownedID
		}

		switch track.Status {
		case "matched":
			matched++
		case "needs_review":
			review++
		}
		tracks = append(tracks, track)
	}

	writeFailures := p.persistTracks(tracks)

	job.Status = "completed"
	job.MatchedCount = matched
	job.ReviewCount = review
	job.WriteFailures = writeFailures
	if err := p.db.Save(&job).Error; err != nil {
		log.Printf("Pipeline: failed to update job %s: %v", job.JobID, err)
	}

	summary := &PlaylistSummary{
		JobID:         job.JobID,
		TrackCount:    len(items),
		MatchedCount:  matched,
		ReviewCount:   review,
		WriteFailures: writeFailures,
		Tracks:        make([]TrackSummary, 0, len(tracks)),
	}
	for _, t := range tracks {
		s := TrackSummary{
			TrackID:    t.ID,
			RawTitle:   t.RawTitle,
			Artist:     t.Artist,
			Title:      t.Title,
			Remix:      t.Remix,
			Confidence: t.Confidence,
			Status:     t.Status,
		}
		if t.OwnedRecordID != nil {
			s.OwnedID = *t.OwnedRecordID
		}
		summary.Tracks = append(summary.Tracks, s)
	}
	return summary, nil
}

// persistTracks writes the batch in one go and falls back to per-item writes
// when the batch fails, returning how many tracks could not be saved at all
func (p *PlaylistPipeline) persistTracks(tracks []models.ProcessedTrack) int {
	if len(tracks) == 0 {
		return 0
	}

	err := p.db.CreateInBatches(&tracks, 100).Error
	if err == nil {
		return 0
	}
	log.Printf("Pipeline: batch insert failed, falling back to per-item writes: %v", err)

	failures := 0
	for i := range tracks {
		if tracks[i].ID != 0 {
			continue // already made it in with the batch
		}
		if err := p.db.Create(&tracks[i]).Error; err != nil {
			failures++
			log.Printf("Pipeline: failed to save track %q: %v", tracks[i].RawTitle, err)
		}
	}
	return failures
}

// SearchMarketplace aggregates offers for a track across all configured
// providers. When trackID is set the track must belong to ownerID, and the
// fresh listings replace that track's persisted ones inside a transaction so
// no two writers interleave on the same track.
func (p *PlaylistPipeline) SearchMarketplace(ctx context.Context, artist, title, remix, ownerID, authUserID string, trackID uint) ([]marketplace.Listing, error) {
	if ownerID == "" || ownerID != authUserID {
		return nil, ErrOwnerMismatch
	}
	if artist == "" || title == "" {
		return nil, fmt.Errorf("%w: artist and title are required", ErrInvalidInput)
	}

	var track models.ProcessedTrack
	if trackID != 0 {
		err := p.db.Where("id = ? AND owner_id = ?", trackID, ownerID).First(&track).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: track %d not found for owner", ErrInvalidInput, trackID)
		} else if err != nil {
			return nil, fmt.Errorf("failed to load track: %w", err)
		}
	}

	listings := p.aggregator.Aggregate(ctx, artist, title, remix)

	if trackID != 0 {
		err := p.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("track_id = ?", trackID).Delete(&models.TrackListing{}).Error; err != nil {
				return err
			}
			for _, l := range listings {
				row := models.TrackListing{
					TrackID:           trackID,
					ProviderName:      l.ProviderName,
					URL:               l.URL,
					Price:             l.Price,
					ConditionOrFormat: l.ConditionOrFormat,
					Available:         l.Available,
				}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			log.Printf("Pipeline: failed to persist listings for track %d: %v", trackID, err)
		}
	}

	return listings, nil
}

// statusForMatch buckets a match result by the configured confidence bands
func statusForMatch(match MatchResult) string {
	switch {
	case match.OwnedID == 0:
		return "unmatched"
	case match.Confidence >= config.Matching.AutoMatchConfidence:
		return "matched"
	case match.Confidence >= config.Matching.ReviewConfidence:
		return "needs_review"
	default:
		return "unmatched"
	}
}

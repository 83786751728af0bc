package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"cratedig/models"
)

// CatalogImporter loads owned records from a CSV library export. The expected
// header is artist,title with optional format and discogs release id columns;
// column order follows the header, not a fixed layout.
type CatalogImporter struct {
	db *gorm.DB
}

func NewCatalogImporter(db *gorm.DB) *CatalogImporter {
	return &CatalogImporter{db: db}
}

// ImportSummary reports what a catalog import did. Failed counts rows that
// could not be written even after the per-item fallback.
type ImportSummary struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// ImportCSV parses the export and writes the records for ownerID. The
// normalized search key is computed here, at write time, with the same
// normalizer the matcher uses. Writes go batch-first with a per-item fallback;
// a partially failing batch reduces the import, it does not abort it.
func (ci *CatalogImporter) ImportCSV(ownerID string, r io.Reader) (*ImportSummary, error) {
	if ownerID == "" {
		return nil, fmt.Errorf("%w: owner id is required", ErrInvalidInput)
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable CSV header: %v", ErrInvalidInput, err)
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	artistCol, okArtist := cols["artist"]
	titleCol, okTitle := cols["title"]
	if !okArtist || !okTitle {
		return nil, fmt.Errorf("%w: CSV must have artist and title columns", ErrInvalidInput)
	}
	formatCol, hasFormat := cols["format"]
	releaseCol, hasRelease := cols["release_id"]

	summary := &ImportSummary{}
	var records []models.OwnedRecord

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			summary.Skipped++
			continue
		}

		artist := strings.TrimSpace(field(row, artistCol))
		title := strings.TrimSpace(field(row, titleCol))
		if artist == "" || title == "" {
			summary.Skipped++
			continue
		}

		record := models.OwnedRecord{
			OwnerID:       ownerID,
			Artist:        artist,
			Title:         title,
			NormalizedKey: Normalize(artist + " " + title),
		}
		if hasFormat {
			record.Format = strings.TrimSpace(field(row, formatCol))
		}
		if hasRelease {
			if id, err := strconv.Atoi(strings.TrimSpace(field(row, releaseCol))); err == nil {
				record.DiscogsReleaseID = id
			}
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return summary, nil
	}

	if err := ci.db.CreateInBatches(&records, 200).Error; err != nil {
		log.Printf("Import: batch insert failed, falling back to per-item writes: %v", err)
		for i := range records {
			if records[i].ID != 0 {
				continue
			}
			if err := ci.db.Create(&records[i]).Error; err != nil {
				summary.Failed++
				log.Printf("Import: failed to save %q - %q: %v", records[i].Artist, records[i].Title, err)
				continue
			}
		}
	}

	summary.Imported = len(records) - summary.Failed
	return summary, nil
}

func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

package services

import (
	"fmt"

	"gorm.io/gorm"

	"cratedig/models"
)

// LoadOwnedIndex takes the per-run snapshot of a user's catalog used for
// matching. Records imported before normalized keys existed get their key
// computed on the fly; the stored rows are not touched.
func LoadOwnedIndex(db *gorm.DB, ownerID string) ([]OwnedIndexEntry, error) {
	var records []models.OwnedRecord
	if err := db.Where("owner_id = ?", ownerID).Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to load owned catalog: %w", err)
	}

	entries := make([]OwnedIndexEntry, 0, len(records))
	for _, r := range records {
		key := r.NormalizedKey
		if key == "" {
			key = Normalize(r.Artist + " " + r.Title)
		}
		entries = append(entries, OwnedIndexEntry{OwnedID: r.ID, NormalizedKey: key})
	}
	return entries, nil
}

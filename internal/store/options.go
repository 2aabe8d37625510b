package store

import (
	"errors"

	"receiptsync/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Option returns the stored value for name, or "" when unset.
func (s *Store) Option(name string) (string, error) {
	var opt models.Option
	if err := s.db.First(&opt, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return opt.Value, nil
}

func (s *Store) SetOption(name, value string) error {
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&models.Option{Name: name, Value: value}).Error
}

// Flag reads a boolean option, e.g. a bulk-sync completion flag.
func (s *Store) Flag(name string) (bool, error) {
	value, err := s.Option(name)
	if err != nil {
		return false, err
	}
	return value == "1", nil
}

func (s *Store) SetFlag(name string) error {
	return s.SetOption(name, "1")
}

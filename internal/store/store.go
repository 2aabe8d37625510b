package store

import (
	"gorm.io/gorm"
)

// Store is the persistence layer for commerce entities and sync state.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) DB() *gorm.DB {
	return s.db
}

package storage

import (
	"github.com/jmoiron/sqlx"

	"github.com/hirenest/hirenest-be/shared/postgresql"
)

// Storage handles all database operations for the API service.
type Storage struct {
	db *sqlx.DB
}

func NewStorage(pg *postgresql.Client) *Storage {
	return &Storage{
		db: pg.DB(),
	}
}

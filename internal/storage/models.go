package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Backup is one completed copy recorded in the ledger.
type Backup struct {
	ID             string
	CreatedAt      time.Time
	Source         string
	Destination    string
	Classification string
	Version        string
	SizeBytes      int64
}

// BackupFilter narrows ListBackups. Zero values mean no constraint.
type BackupFilter struct {
	Source string
	Limit  int
}

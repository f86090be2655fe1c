package soti

import "context"

// Repository separates the read side (reconciliation, projection) from the
// write side (ingestion). Lifecycle operations never touch either.
type Repository interface {
	Reader
	Writer
}

// Reader fetches presence records for a batch of IMEIs. All records per IMEI
// are returned; authority selection happens in the reconcile package.
type Reader interface {
	GetByIMEIs(ctx context.Context, imeis []string) ([]*PresenceRecord, error)
}

// Writer is used by the feed ingestion boundary only.
type Writer interface {
	BatchUpsert(ctx context.Context, records []*PresenceRecord) error
}

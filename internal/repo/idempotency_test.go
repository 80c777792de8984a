package repo

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestIdempotency_RoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	rec, err := CreateIdempotency(ctx, db, "user-1", "key-1", 42, 200, time.Hour)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.ID == "" || rec.HistoryID != 42 || rec.Status != 200 {
		t.Fatalf("record not fully populated: %+v", rec)
	}

	got, err := GetIdempotency(ctx, db, "user-1", "key-1", time.Now().UTC())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.HistoryID != 42 {
		t.Fatalf("history id mismatch: %d", got.HistoryID)
	}
}

func TestGetIdempotency_EmptyKey(t *testing.T) {
	db := newTestDB(t)
	if _, err := GetIdempotency(context.Background(), db, "u", "  ", time.Now()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for blank key, got %v", err)
	}
}

func TestGetIdempotency_Missing(t *testing.T) {
	db := newTestDB(t)
	if _, err := GetIdempotency(context.Background(), db, "u", "nope", time.Now()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetIdempotency_Expired(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := CreateIdempotency(ctx, db, "u", "k", 1, 200, time.Millisecond); err != nil {
		t.Fatalf("create: %v", err)
	}
	// Evaluate well past the TTL.
	later := time.Now().UTC().Add(time.Minute)
	if _, err := GetIdempotency(ctx, db, "u", "k", later); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expiry, got %v", err)
	}
}

func TestGetIdempotency_ScopedByUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := CreateIdempotency(ctx, db, "alice", "shared-key", 7, 200, time.Hour); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := GetIdempotency(ctx, db, "bob", "shared-key", time.Now().UTC()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("keys must be scoped per user, got %v", err)
	}
}

func TestCreateIdempotency_Duplicate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := CreateIdempotency(ctx, db, "u", "k", 1, 200, time.Hour); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := CreateIdempotency(ctx, db, "u", "k", 2, 200, time.Hour); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

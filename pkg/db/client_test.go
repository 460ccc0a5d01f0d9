package db

import (
	"context"
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type txRecord struct {
	ID   uint   `gorm:"primaryKey"`
	Name string
}

func newTestClient(t *testing.T) *Client {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("opening sqlite failed: %v", err)
	}
	if err := conn.AutoMigrate(&txRecord{}); err != nil {
		t.Fatalf("migrating failed: %v", err)
	}
	return &Client{conn: conn}
}

func TestWithTxCommits(t *testing.T) {
	t.Parallel()

	client := newTestClient(t)
	ctx := context.Background()

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&txRecord{Name: "kept"}).Error
	})
	if err != nil {
		t.Fatalf("transaction failed: %v", err)
	}

	var count int64
	if err := client.DB().Model(&txRecord{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected committed row, got %d", count)
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	t.Parallel()

	client := newTestClient(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&txRecord{Name: "discarded"}).Error; err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected callback error to surface, got %v", err)
	}

	var count int64
	if err := client.DB().Model(&txRecord{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback to discard the row, got %d", count)
	}
}

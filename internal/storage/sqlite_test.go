package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// TestMigrationsIdempotent reopens a ledger and checks nothing is applied
// twice.
func TestMigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()

	s1, err := Open(dir)
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}

	v1, err := s1.AppliedMigrations()
	if err != nil {
		t.Fatalf("AppliedMigrations: %v", err)
	}
	s1.Close()

	s2, err := Open(dir)
	if err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	defer s2.Close()

	v2, err := s2.AppliedMigrations()
	if err != nil {
		t.Fatalf("AppliedMigrations: %v", err)
	}

	if len(v1) != len(v2) {
		t.Errorf("migration count changed: %d -> %d", len(v1), len(v2))
	}
}

func TestLoadMigrations(t *testing.T) {
	ms, err := loadMigrations()
	if err != nil {
		t.Fatalf("loadMigrations: %v", err)
	}
	if len(ms) == 0 || ms[0].version != 1 || ms[0].name != "001_backups.sql" {
		t.Fatalf("first migration = %+v, want version 1 from 001_backups.sql", ms)
	}
	for i := 1; i < len(ms); i++ {
		if ms[i].version <= ms[i-1].version {
			t.Errorf("migrations out of order: %d after %d", ms[i].version, ms[i-1].version)
		}
	}

	s := openTestStore(t)
	applied, err := s.AppliedMigrations()
	if err != nil {
		t.Fatal(err)
	}
	if len(applied) != len(ms) {
		t.Errorf("applied %v, want all %d embedded migrations", applied, len(ms))
	}
}

func TestMigrationVersion(t *testing.T) {
	tests := []struct {
		name    string
		want    int
		wantErr bool
	}{
		{"001_backups.sql", 1, false},
		{"012_add_hash.sql", 12, false},
		{"backups.sql", 0, true},
		{"abc_backups.sql", 0, true},
		{"000_zero.sql", 0, true},
	}
	for _, tt := range tests {
		got, err := migrationVersion(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("migrationVersion(%q) err = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("migrationVersion(%q) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

// TestIndexesExist verifies the backups indexes are created by the migration.
func TestIndexesExist(t *testing.T) {
	s := openTestStore(t)

	for _, idx := range []string{"idx_backups_created", "idx_backups_source"} {
		var count int
		err := s.db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name=?", idx).Scan(&count)
		if err != nil {
			t.Fatalf("querying sqlite_master for %q: %v", idx, err)
		}
		if count != 1 {
			t.Errorf("index %q not found in sqlite_master", idx)
		}
	}
}

// TestSaveAndGetBackup saves a backup and retrieves it by ID.
func TestSaveAndGetBackup(t *testing.T) {
	s := openTestStore(t)

	want := Backup{
		CreatedAt:      time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
		Source:         `C:\proj\bin\Release\MyApp.exe`,
		Destination:    `D:\Backups\MyApp\MyApp_1.2.3.exe`,
		Classification: "release",
		Version:        "1.2.3",
		SizeBytes:      4096,
	}

	saved, err := s.SaveBackup(want)
	if err != nil {
		t.Fatalf("SaveBackup: %v", err)
	}
	if _, err := uuid.Parse(saved.ID); err != nil {
		t.Errorf("generated ID %q is not a UUID: %v", saved.ID, err)
	}
	want.ID = saved.ID

	got, err := s.GetBackup(saved.ID)
	if err != nil {
		t.Fatalf("GetBackup: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetBackup mismatch (-want +got):\n%s", diff)
	}
}

func TestGetBackupNotFound(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.GetBackup("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetBackup err = %v, want ErrNotFound", err)
	}
}

func TestSaveBackupDuplicateID(t *testing.T) {
	s := openTestStore(t)
	b := Backup{ID: "fixed", Source: "a", Destination: "b", Classification: "debug", Version: "1"}
	if _, err := s.SaveBackup(b); err != nil {
		t.Fatalf("first SaveBackup: %v", err)
	}
	if _, err := s.SaveBackup(b); err == nil {
		t.Error("expected error saving a duplicate ID")
	}
}

func TestListBackups(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, src := range []string{"app.exe", "tool.exe", "app.exe"} {
		_, err := s.SaveBackup(Backup{
			CreatedAt:      base.Add(time.Duration(i) * time.Hour),
			Source:         src,
			Destination:    "dst",
			Classification: "release",
			Version:        "1.0",
		})
		if err != nil {
			t.Fatalf("SaveBackup %d: %v", i, err)
		}
	}

	all, err := s.ListBackups(BackupFilter{})
	if err != nil {
		t.Fatalf("ListBackups: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("got %d backups, want 3", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].CreatedAt.After(all[i-1].CreatedAt) {
			t.Errorf("backups not newest first: %v after %v", all[i].CreatedAt, all[i-1].CreatedAt)
		}
	}

	apps, err := s.ListBackups(BackupFilter{Source: "app.exe", Limit: 1})
	if err != nil {
		t.Fatalf("ListBackups: %v", err)
	}
	if len(apps) != 1 {
		t.Fatalf("got %d backups, want 1", len(apps))
	}
	if !apps[0].CreatedAt.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("newest app.exe backup at %v, want %v", apps[0].CreatedAt, base.Add(2*time.Hour))
	}
}

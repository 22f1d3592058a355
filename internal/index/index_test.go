package index

import (
	"os"
	"testing"
	"time"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "devcase-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM articles`).Scan(&count); err != nil {
		t.Fatalf("articles table missing: %v", err)
	}
}

func TestOpen_Memory(t *testing.T) {
	db, err := Open(MemoryDSN)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()
	if err := db.UpsertArticle(ArticleRow{ID: 1, Title: "In memory", Checksum: "m"}, "body"); err != nil {
		t.Fatalf("UpsertArticle: %v", err)
	}
	if n, _ := db.Count(); n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

func TestUpsertAndGetChecksum(t *testing.T) {
	db := testDB(t)
	row := ArticleRow{
		ID:          7,
		Title:       "ERP rollout",
		Checksum:    "abc123",
		Keywords:    []string{"erp", "sap"},
		PublishedAt: "2024-03-01",
		UpdatedAt:   time.Now(),
	}
	if err := db.UpsertArticle(row, "Replacing spreadsheets."); err != nil {
		t.Fatalf("UpsertArticle: %v", err)
	}
	cs, err := db.GetChecksum(7)
	if err != nil {
		t.Fatalf("GetChecksum: %v", err)
	}
	if cs != "abc123" {
		t.Errorf("checksum = %q, want %q", cs, "abc123")
	}
}

func TestUpsertUpdatesExisting(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	_ = db.UpsertArticle(ArticleRow{ID: 1, Title: "Old", Checksum: "1", UpdatedAt: now}, "old body")
	_ = db.UpsertArticle(ArticleRow{ID: 1, Title: "New", Checksum: "2", UpdatedAt: now}, "new body")

	cs, _ := db.GetChecksum(1)
	if cs != "2" {
		t.Errorf("checksum = %q, want %q", cs, "2")
	}
	if n, _ := db.Count(); n != 1 {
		t.Errorf("count = %d, want 1", n)
	}
}

func TestDeleteArticle(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertArticle(ArticleRow{ID: 3, Checksum: "x", UpdatedAt: time.Now()}, "body")

	if err := db.DeleteArticle(3); err != nil {
		t.Fatalf("DeleteArticle: %v", err)
	}
	cs, _ := db.GetChecksum(3)
	if cs != "" {
		t.Errorf("deleted article still has checksum %q", cs)
	}
}

func TestGetChecksum_NotFound(t *testing.T) {
	db := testDB(t)
	cs, err := db.GetChecksum(404)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cs != "" {
		t.Errorf("expected empty checksum, got %q", cs)
	}
}

func TestAllChecksums(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertArticle(ArticleRow{ID: 1, Checksum: "a"}, "")
	_ = db.UpsertArticle(ArticleRow{ID: 2, Checksum: "b"}, "")

	got, err := db.AllChecksums()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[1] != "a" || got[2] != "b" {
		t.Errorf("checksums = %v", got)
	}
}

func TestSearch_Basic(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertArticle(ArticleRow{ID: 5, Title: "Search Me", Checksum: "1", UpdatedAt: time.Now()}, "uniqueword appears here")

	results, err := db.Search("uniqueword", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].ArticleID != 5 || results[0].Title != "Search Me" {
		t.Errorf("search results = %+v, want 1 hit for article 5", results)
	}
}

func TestSearch_BlankQuery(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertArticle(ArticleRow{ID: 5, Title: "Anything", Checksum: "1"}, "body")

	results, err := db.Search("   ", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if results == nil || len(results) != 0 {
		t.Errorf("blank query = %+v, want empty", results)
	}
}

package library

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/lucabaldesi/referencer/internal/bib"
)

// Cache is a disposable SQLite index over a library, used for full-text
// search and listing. The XML file stays the source of truth; the cache is
// rebuilt from it and may be deleted at any time.
type Cache struct {
	db *sql.DB
}

// selectDocFields is the standard column list for SELECT queries.
const selectDocFields = `key, doc_type, doi, title, authors, journal,
	volume, number, pages, pub_year, filename, tags_json, extras_json`

// OpenCache opens or creates a cache database at the given path. Pass
// ":memory:" for a throwaway in-process cache.
func OpenCache(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS docs (
			key TEXT PRIMARY KEY,
			doc_type TEXT NOT NULL,
			doi TEXT,
			title TEXT,
			authors TEXT,
			journal TEXT,
			volume TEXT,
			number TEXT,
			pages TEXT,
			pub_year TEXT,
			filename TEXT,
			tags_json TEXT,
			extras_json TEXT
		);

		CREATE INDEX IF NOT EXISTS idx_docs_doi ON docs(doi)
			WHERE doi IS NOT NULL AND doi != '';

		CREATE VIRTUAL TABLE IF NOT EXISTS docs_fts USING fts5(
			key,
			title,
			authors,
			journal,
			tags_text,
			extras_text
		);
	`
	_, err := db.Exec(schema)
	return err
}

// Rebuild clears the cache and reindexes every document in the library.
// Documents without a citation key are indexed under a positional key.
func (c *Cache) Rebuild(lib *Library) (int, error) {
	if _, err := c.db.Exec("DELETE FROM docs"); err != nil {
		return 0, fmt.Errorf("clearing docs table: %w", err)
	}
	if _, err := c.db.Exec("DELETE FROM docs_fts"); err != nil {
		return 0, fmt.Errorf("clearing docs_fts table: %w", err)
	}

	docStmt, err := c.db.Prepare(`
		INSERT INTO docs (` + selectDocFields + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing docs insert: %w", err)
	}
	defer docStmt.Close()

	ftsStmt, err := c.db.Prepare(`
		INSERT INTO docs_fts (key, title, authors, journal, tags_text, extras_text)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing fts insert: %w", err)
	}
	defer ftsStmt.Close()

	for i, d := range lib.Docs {
		key := d.Key
		if key == "" {
			key = fmt.Sprintf("doc-%d", i)
		}
		rec := d.Record
		if rec == nil {
			rec = bib.New()
		}

		tags := lib.TagNames(d)
		tagsJSON, err := json.Marshal(tags)
		if err != nil {
			return 0, fmt.Errorf("marshaling tags for %s: %w", key, err)
		}
		extrasJSON, err := json.Marshal(rec.Extras.All())
		if err != nil {
			return 0, fmt.Errorf("marshaling extras for %s: %w", key, err)
		}

		_, err = docStmt.Exec(
			key, rec.Type,
			nullable(rec.DOI), nullable(rec.Title), nullable(rec.Authors),
			nullable(rec.Journal), nullable(rec.Volume), nullable(rec.Number),
			nullable(rec.Pages), nullable(rec.Year),
			nullable(d.Filename), string(tagsJSON), string(extrasJSON),
		)
		if err != nil {
			return 0, fmt.Errorf("inserting doc %s: %w", key, err)
		}

		var extrasText strings.Builder
		for _, x := range rec.Extras.All() {
			extrasText.WriteString(x.Value)
			extrasText.WriteString(" ")
		}
		_, err = ftsStmt.Exec(key, rec.Title, rec.Authors, rec.Journal,
			strings.Join(tags, ", "), extrasText.String())
		if err != nil {
			return 0, fmt.Errorf("indexing doc %s: %w", key, err)
		}
	}

	return len(lib.Docs), nil
}

// Entry is one cached document as returned by queries.
type Entry struct {
	Key      string
	Filename string
	Tags     []string
	Record   *bib.Record
}

// GetByKey retrieves one cached document, or nil when absent.
func (c *Cache) GetByKey(key string) (*Entry, error) {
	row := c.db.QueryRow(`SELECT `+selectDocFields+` FROM docs WHERE key = ?`, key)
	return scanEntry(row)
}

// GetByDOI retrieves the first cached document carrying the DOI, or nil.
func (c *Cache) GetByDOI(doi string) (*Entry, error) {
	row := c.db.QueryRow(`SELECT `+selectDocFields+` FROM docs WHERE doi = ?`, doi)
	return scanEntry(row)
}

// Search performs a full-text search across titles, authors, journals,
// tags and extras.
func (c *Cache) Search(query string, limit int) ([]Entry, error) {
	rows, err := c.db.Query(`
		SELECT `+selectDocFields+`
		FROM docs
		WHERE key IN (SELECT key FROM docs_fts WHERE docs_fts MATCH ?)
		LIMIT ?`, prepareFTSQuery(query), limit)
	if err != nil {
		return nil, fmt.Errorf("searching: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// SearchField restricts the full-text search to one field: "author",
// "title", "journal" or "tag".
func (c *Cache) SearchField(field, value string, limit int) ([]Entry, error) {
	var column string
	switch field {
	case "author":
		column = "authors"
	case "title":
		column = "title"
	case "journal":
		column = "journal"
	case "tag":
		column = "tags_text"
	default:
		return nil, fmt.Errorf("unknown search field: %s", field)
	}

	rows, err := c.db.Query(`
		SELECT `+selectDocFields+`
		FROM docs
		WHERE key IN (SELECT key FROM docs_fts WHERE docs_fts MATCH ?)
		LIMIT ?`, column+":"+prepareFTSQuery(value), limit)
	if err != nil {
		return nil, fmt.Errorf("searching %s: %w", field, err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// List returns cached documents ordered by key, optionally limited.
func (c *Cache) List(limit int) ([]Entry, error) {
	query := `SELECT ` + selectDocFields + ` FROM docs ORDER BY key`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = []interface{}{limit}
	}

	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing docs: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Count returns the number of cached documents.
func (c *Cache) Count() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM docs").Scan(&count)
	return count, err
}

// scanner covers sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(s scanner) (*Entry, error) {
	var e Entry
	rec := bib.New()
	var doi, title, authors, journal sql.NullString
	var volume, number, pages, year, filename sql.NullString
	var tagsJSON, extrasJSON sql.NullString

	err := s.Scan(
		&e.Key, &rec.Type, &doi, &title, &authors, &journal,
		&volume, &number, &pages, &year, &filename, &tagsJSON, &extrasJSON,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	rec.DOI = doi.String
	rec.Title = title.String
	rec.Authors = authors.String
	rec.Journal = journal.String
	rec.Volume = volume.String
	rec.Number = number.String
	rec.Pages = pages.String
	rec.Year = year.String
	e.Filename = filename.String

	if tagsJSON.Valid && tagsJSON.String != "" {
		if err := json.Unmarshal([]byte(tagsJSON.String), &e.Tags); err != nil {
			return nil, fmt.Errorf("parsing tags JSON for %s: %w", e.Key, err)
		}
	}
	if extrasJSON.Valid && extrasJSON.String != "" {
		var extras []bib.Extra
		if err := json.Unmarshal([]byte(extrasJSON.String), &extras); err != nil {
			return nil, fmt.Errorf("parsing extras JSON for %s: %w", e.Key, err)
		}
		for _, x := range extras {
			rec.Extras.Set(x.Key, x.Value)
		}
	}

	e.Record = rec
	return &e, nil
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		if e != nil {
			entries = append(entries, *e)
		}
	}
	return entries, rows.Err()
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// prepareFTSQuery escapes special characters for FTS5 queries.
func prepareFTSQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return query
	}
	if strings.ContainsAny(query, "\"*+-:(){}[]^~") {
		query = strings.ReplaceAll(query, "\"", "\"\"")
		return "\"" + query + "\""
	}
	return query
}

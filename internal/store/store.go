package store

import (
	"database/sql"
	"encoding/json"
	"sort"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"travel_parser/internal/travel"
)

// Store holds extraction results keyed by file id. The in-memory map is
// authoritative; database writes are best-effort so a broken disk never
// fails a request.
type Store struct {
	db *sql.DB
	mu sync.RWMutex

	// In-memory result cache for fast access.
	jobs map[string]*travel.ExtractionResult
}

// NewStore opens a store with the given database path.
// If dbPath is empty or ":memory:", uses an in-memory database.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		dbPath = ":memory:"
	}

	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, err
	}

	// Initialise the schema.
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{
		db:   db,
		jobs: make(map[string]*travel.ExtractionResult),
	}

	// Load previously mirrored results into memory.
	if err := s.loadJobs(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// loadJobs loads mirrored results from the database into memory.
func (s *Store) loadJobs() error {
	rows, err := s.db.Query(`SELECT payload FROM jobs`)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			continue
		}
		var res travel.ExtractionResult
		if err := json.Unmarshal([]byte(payload), &res); err != nil {
			continue
		}
		if res.FileID != "" {
			s.jobs[res.FileID] = &res
		}
	}

	return rows.Err()
}

// Save stores a result under its file id.
func (s *Store) Save(res *travel.ExtractionResult) {
	s.mu.Lock()
	s.jobs[res.FileID] = res
	s.mu.Unlock()

	s.saveJob(res)
}

// saveJob persists a result to the database.
func (s *Store) saveJob(res *travel.ExtractionResult) {
	payload, err := json.Marshal(res)
	if err != nil {
		return
	}

	_, err = s.db.Exec(`
		INSERT INTO jobs (id, kind, filename, payload, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			kind = excluded.kind,
			filename = excluded.filename,
			payload = excluded.payload
	`, res.FileID, res.Kind, res.Filename, string(payload), res.Timestamp)
	// Silently ignore errors - the mirror is best-effort.
	_ = err
}

// Get returns the stored result for a file id.
func (s *Store) Get(fileID string) (*travel.ExtractionResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res, ok := s.jobs[fileID]
	return res, ok
}

// List returns stored results newest first, up to limit.
// A limit of zero or less means no limit.
func (s *Store) List(limit int) []*travel.ExtractionResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*travel.ExtractionResult, 0, len(s.jobs))
	for _, res := range s.jobs {
		result = append(result, res)
	}
	sort.Slice(result, func(a, b int) bool {
		return result[a].Timestamp.After(result[b].Timestamp)
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

// CleanupStale removes results older than the given duration.
func (s *Store) CleanupStale(olderThan time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)
	removed := 0

	for id, res := range s.jobs {
		if res.Timestamp.Before(cutoff) {
			delete(s.jobs, id)
			removed++
		}
	}

	// Also cleanup the mirror.
	_, _ = s.db.Exec("DELETE FROM jobs WHERE created_at < ?", cutoff)

	return removed
}

// Stats summarizes the stored results.
type Stats struct {
	Jobs    int
	Static  int
	Dynamic int
}

func (s *Store) GetStats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var stats Stats
	stats.Jobs = len(s.jobs)
	for _, res := range s.jobs {
		switch res.Kind {
		case travel.KindStatic:
			stats.Static++
		case travel.KindDynamic:
			stats.Dynamic++
		}
	}
	return stats
}

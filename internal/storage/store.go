package storage

import (
	"database/sql"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"specmap/internal/errors"
	"specmap/internal/logging"
	"specmap/internal/manifest"
)

// ManifestRow is the queryable summary of one stored manifest, without
// the snapshot body.
type ManifestRow struct {
	ID         string
	ProjectID  string
	CommitHash string
	Status     manifest.Status
	Source     string
	Error      string
	StartedAt  time.Time
	Duration   time.Duration
	CreatedAt  time.Time
}

// Store persists and retrieves manifests. Completed manifests pass
// through an in-process LRU so repeated cache-hit lookups skip the
// decompress step.
type Store struct {
	db     *DB
	codec  *snapshotCodec
	hot    *lru.Cache[string, *manifest.Manifest]
	logger *logging.Logger
}

// NewStore creates a manifest store over an open database.
func NewStore(db *DB, hotCacheSize int, logger *logging.Logger) (*Store, error) {
	codec, err := newSnapshotCodec()
	if err != nil {
		return nil, errors.Wrap(errors.StoreFailed, "failed to create snapshot codec", err)
	}
	if hotCacheSize <= 0 {
		hotCacheSize = 1
	}
	hot, err := lru.New[string, *manifest.Manifest](hotCacheSize)
	if err != nil {
		return nil, errors.Wrap(errors.StoreFailed, "failed to create hot cache", err)
	}
	return &Store{db: db, codec: codec, hot: hot, logger: logger}, nil
}

// SaveManifest inserts or replaces a manifest. Generating records are
// stored without a snapshot; terminal records carry the full body.
func (s *Store) SaveManifest(m *manifest.Manifest) error {
	var blob []byte
	var checksum string
	if m.IsTerminal() {
		var err error
		blob, checksum, err = s.codec.encode(m)
		if err != nil {
			return errors.Wrap(errors.StoreFailed, "failed to encode manifest", err)
		}
	}

	err := s.db.WithTx(func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT OR REPLACE INTO manifests
				(id, project_id, commit_hash, status, source, error,
				 started_at, duration_ms, snapshot, checksum)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			m.ID, m.ProjectID, m.CommitHash, string(m.Status), m.Source,
			m.Error, m.StartedAt.UTC().Format(time.RFC3339Nano),
			m.Duration.Milliseconds(), blob, checksum)
		return err
	})
	if err != nil {
		return errors.Wrap(errors.StoreFailed, "failed to save manifest", err)
	}

	if m.Status == manifest.StatusComplete {
		s.hot.Add(m.ID, m)
	} else {
		// A failed or restarted record must not shadow an older cached
		// copy under the same id.
		s.hot.Remove(m.ID)
	}
	return nil
}

// GetManifest loads one manifest by id, including the snapshot body
// for terminal records.
func (s *Store) GetManifest(id string) (*manifest.Manifest, error) {
	if m, ok := s.hot.Get(id); ok {
		return m, nil
	}

	var row ManifestRow
	var startedAt string
	var durationMS int64
	var blob []byte
	var checksum string
	err := s.db.conn.QueryRow(`
		SELECT id, project_id, commit_hash, status, source, error,
		       started_at, duration_ms, snapshot, checksum
		FROM manifests WHERE id = ?`, id).Scan(
		&row.ID, &row.ProjectID, &row.CommitHash, &row.Status, &row.Source,
		&row.Error, &startedAt, &durationMS, &blob, &checksum)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.ManifestNotFound, "manifest not found: "+id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.StoreFailed, "failed to load manifest", err)
	}

	if len(blob) > 0 {
		m, err := s.codec.decode(blob, checksum)
		if err != nil {
			return nil, errors.Wrap(errors.StoreFailed, "failed to decode snapshot", err)
		}
		if m.Status == manifest.StatusComplete {
			s.hot.Add(m.ID, m)
		}
		return m, nil
	}

	// Non-terminal record: reconstruct the shell from columns.
	m := &manifest.Manifest{
		ID:         row.ID,
		ProjectID:  row.ProjectID,
		CommitHash: row.CommitHash,
		Status:     row.Status,
		Source:     row.Source,
		Error:      row.Error,
		Duration:   time.Duration(durationMS) * time.Millisecond,
	}
	if t, perr := time.Parse(time.RFC3339Nano, startedAt); perr == nil {
		m.StartedAt = t
	}
	return m, nil
}

// FindComplete returns the newest complete manifest for a project at a
// commit, or nil when none exists. Generating and failed records are
// never returned.
func (s *Store) FindComplete(projectID, commitHash string) (*manifest.Manifest, error) {
	var id string
	err := s.db.conn.QueryRow(`
		SELECT id FROM manifests
		WHERE project_id = ? AND commit_hash = ? AND status = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1`,
		projectID, commitHash, string(manifest.StatusComplete)).Scan(&id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.StoreFailed, "failed to query manifests", err)
	}
	return s.GetManifest(id)
}

// ListManifests returns row summaries for a project, newest first.
// An empty projectID lists every project.
func (s *Store) ListManifests(projectID string, limit int) ([]ManifestRow, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, project_id, commit_hash, status, source, error,
		       started_at, duration_ms, created_at
		FROM manifests`
	args := []interface{}{}
	if projectID != "" {
		query += ` WHERE project_id = ?`
		args = append(args, projectID)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.conn.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(errors.StoreFailed, "failed to list manifests", err)
	}
	defer rows.Close()

	var out []ManifestRow
	for rows.Next() {
		var r ManifestRow
		var startedAt, createdAt string
		var durationMS int64
		if err := rows.Scan(&r.ID, &r.ProjectID, &r.CommitHash, &r.Status,
			&r.Source, &r.Error, &startedAt, &durationMS, &createdAt); err != nil {
			return nil, errors.Wrap(errors.StoreFailed, "failed to scan manifest row", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		if t, perr := time.Parse(time.RFC3339Nano, startedAt); perr == nil {
			r.StartedAt = t
		}
		if t, perr := time.Parse("2006-01-02 15:04:05", createdAt); perr == nil {
			r.CreatedAt = t
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

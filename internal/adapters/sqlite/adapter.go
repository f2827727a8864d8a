// Package sqlite provides a SQLite-backed implementation of the
// recommendation repository port.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously

	"github.com/whitmore-labs/skylark/internal/core/domain"
	"github.com/whitmore-labs/skylark/internal/core/ports"
)

// Adapter implements the repository port for SQLite.
type Adapter struct {
	db *sql.DB
}

// compile-time interface assertion
var _ ports.RecommendationRepository = (*Adapter)(nil)

// NewAdapter creates a connection and runs the schema migration.
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	// One connection: SQLite serializes writers anyway, and the pool would
	// hand :memory: callers a separate empty database per connection.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db}

	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully.
func (a *Adapter) Close() error {
	return a.db.Close()
}

func (a *Adapter) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS recommendations (
		id          TEXT PRIMARY KEY,
		mood        TEXT NOT NULL,
		playlist_id TEXT,
		created_at  TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS recommendation_tracks (
		recommendation_id TEXT NOT NULL REFERENCES recommendations(id),
		position          INTEGER NOT NULL,
		track_id          TEXT NOT NULL,
		title             TEXT NOT NULL,
		artist            TEXT,
		album             TEXT,
		preview_url       TEXT,
		has_features      INTEGER NOT NULL DEFAULT 0,
		energy            REAL,
		valence           REAL,
		danceability      REAL,
		acousticness      REAL,
		instrumentalness  REAL,
		PRIMARY KEY (recommendation_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_recommendation_tracks_track
		ON recommendation_tracks(track_id);

	CREATE TABLE IF NOT EXISTS tracks (
		id               TEXT PRIMARY KEY,
		title            TEXT NOT NULL,
		artist           TEXT,
		album            TEXT,
		preview_url      TEXT,
		has_features     INTEGER NOT NULL DEFAULT 0,
		energy           REAL,
		valence          REAL,
		danceability     REAL,
		acousticness     REAL,
		instrumentalness REAL
	);
	`
	if _, err := a.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Save persists one recommendation and its ranked tracks in order.
func (a *Adapter) Save(ctx context.Context, rec domain.Recommendation) error {
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Safety net: auto-rollback if we error before commit

	queryRec := `
		INSERT INTO recommendations (id, mood, playlist_id, created_at) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET playlist_id=excluded.playlist_id;
	`
	if _, err := tx.ExecContext(ctx, queryRec, rec.ID, string(rec.Mood), nullIfEmpty(rec.PlaylistID), rec.CreatedAt); err != nil {
		return fmt.Errorf("failed to save recommendation: %w", err)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM recommendation_tracks WHERE recommendation_id = ?", rec.ID); err != nil {
		return fmt.Errorf("failed to clear recommendation tracks: %w", err)
	}

	queryTrack := `
		INSERT INTO recommendation_tracks (
			recommendation_id, position, track_id, title, artist, album, preview_url,
			has_features, energy, valence, danceability, acousticness, instrumentalness
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	for i, t := range rec.Tracks {
		hasFeatures := 0
		if len(t.Features) > 0 {
			hasFeatures = 1
		}
		if _, err := tx.ExecContext(ctx, queryTrack,
			rec.ID, i, t.ID, t.Title, t.Artist, t.Album, t.PreviewURL,
			hasFeatures,
			t.Features["energy"],
			t.Features["valence"],
			t.Features["danceability"],
			t.Features["acousticness"],
			t.Features["instrumentalness"],
		); err != nil {
			return fmt.Errorf("failed to save recommendation track: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetByID loads a recommendation with its tracks in ranked order.
func (a *Adapter) GetByID(ctx context.Context, id string) (domain.Recommendation, error) {
	row := a.db.QueryRowContext(ctx,
		"SELECT id, mood, IFNULL(playlist_id, ''), created_at FROM recommendations WHERE id = ?", id)

	var rec domain.Recommendation
	var mood string
	if err := row.Scan(&rec.ID, &mood, &rec.PlaylistID, &rec.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return domain.Recommendation{}, domain.ErrNotFound
		}
		return domain.Recommendation{}, fmt.Errorf("failed to load recommendation: %w", err)
	}
	rec.Mood = domain.Mood(mood)
	rec.Tracks = []domain.Track{}

	rows, err := a.db.QueryContext(ctx, `
		SELECT track_id, title, IFNULL(artist, ''), IFNULL(album, ''), IFNULL(preview_url, ''),
			has_features,
			IFNULL(energy, 0), IFNULL(valence, 0), IFNULL(danceability, 0),
			IFNULL(acousticness, 0), IFNULL(instrumentalness, 0)
		FROM recommendation_tracks
		WHERE recommendation_id = ?
		ORDER BY position ASC
	`, rec.ID)
	if err != nil {
		return domain.Recommendation{}, fmt.Errorf("failed to load recommendation tracks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var track domain.Track
		var hasFeatures int
		var energy, valence, danceability, acousticness, instrumentalness float64
		if err := rows.Scan(
			&track.ID,
			&track.Title,
			&track.Artist,
			&track.Album,
			&track.PreviewURL,
			&hasFeatures,
			&energy,
			&valence,
			&danceability,
			&acousticness,
			&instrumentalness,
		); err != nil {
			return domain.Recommendation{}, fmt.Errorf("failed to scan recommendation track: %w", err)
		}
		if hasFeatures == 1 {
			track.Features = domain.FeatureVector{
				"energy":           energy,
				"valence":          valence,
				"danceability":     danceability,
				"acousticness":     acousticness,
				"instrumentalness": instrumentalness,
			}
		}
		rec.Tracks = append(rec.Tracks, track)
	}
	if err := rows.Err(); err != nil {
		return domain.Recommendation{}, fmt.Errorf("failed to iterate recommendation tracks: %w", err)
	}

	return rec, nil
}

// CacheTracks upserts candidate tracks into the local cache. A cached feature
// vector is only replaced when the incoming track actually carries one.
func (a *Adapter) CacheTracks(ctx context.Context, tracks []domain.Track) error {
	if len(tracks) == 0 {
		return nil
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO tracks (
			id, title, artist, album, preview_url,
			has_features, energy, valence, danceability, acousticness, instrumentalness
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title=excluded.title,
			artist=excluded.artist,
			album=excluded.album,
			preview_url=excluded.preview_url,
			has_features=MAX(tracks.has_features, excluded.has_features),
			energy=CASE WHEN excluded.has_features = 1 THEN excluded.energy ELSE tracks.energy END,
			valence=CASE WHEN excluded.has_features = 1 THEN excluded.valence ELSE tracks.valence END,
			danceability=CASE WHEN excluded.has_features = 1 THEN excluded.danceability ELSE tracks.danceability END,
			acousticness=CASE WHEN excluded.has_features = 1 THEN excluded.acousticness ELSE tracks.acousticness END,
			instrumentalness=CASE WHEN excluded.has_features = 1 THEN excluded.instrumentalness ELSE tracks.instrumentalness END;
	`
	for _, t := range tracks {
		hasFeatures := 0
		if len(t.Features) > 0 {
			hasFeatures = 1
		}
		if _, err := tx.ExecContext(ctx, query,
			t.ID, t.Title, t.Artist, t.Album, t.PreviewURL,
			hasFeatures,
			t.Features["energy"],
			t.Features["valence"],
			t.Features["danceability"],
			t.Features["acousticness"],
			t.Features["instrumentalness"],
		); err != nil {
			return fmt.Errorf("failed to cache track: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateTrackEnergy patches the analyzed energy of a cached track that had no
// catalog features.
func (a *Adapter) UpdateTrackEnergy(ctx context.Context, trackID string, energy float64) error {
	query := `
		UPDATE tracks
		SET energy = ?, has_features = 1
		WHERE id = ? AND has_features = 0
	`
	if _, err := a.db.ExecContext(ctx, query, energy, trackID); err != nil {
		return fmt.Errorf("failed to update track energy: %w", err)
	}
	return nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

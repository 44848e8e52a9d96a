package sink

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Damatnic/astral-turf-helpcenter/internal/analytics"
	"github.com/Damatnic/astral-turf-helpcenter/pkg/logger"
	"github.com/Damatnic/astral-turf-helpcenter/pkg/postgres"
	"github.com/Damatnic/astral-turf-helpcenter/pkg/resilience"
)

// SnapshotStore persists aggregated analytics stats in PostgreSQL.
//
// It requires an `analytics_snapshots` table:
//
//	CREATE TABLE analytics_snapshots (
//	    id          BIGSERIAL PRIMARY KEY,
//	    data        JSONB NOT NULL,
//	    captured_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
//	);
type SnapshotStore struct {
	db     *postgres.Client
	logger *slog.Logger
}

// NewSnapshotStore creates a snapshot store.
func NewSnapshotStore(db *postgres.Client) *SnapshotStore {
	return &SnapshotStore{
		db:     db,
		logger: logger.WithComponent("analytics-snapshots"),
	}
}

// SaveSnapshot persists a stats snapshot.
func (s *SnapshotStore) SaveSnapshot(ctx context.Context, stats analytics.Stats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshaling stats: %w", err)
	}

	err = resilience.Retry(ctx, "analytics-snapshot", resilience.RetryConfig{}, func() error {
		_, execErr := s.db.DB.ExecContext(ctx,
			`INSERT INTO analytics_snapshots (data, captured_at) VALUES ($1, $2)`,
			data, time.Now().UTC(),
		)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("saving analytics snapshot: %w", err)
	}

	s.logger.Info("analytics snapshot saved", "total_events", stats.TotalEvents)
	return nil
}

// LatestSnapshot loads the most recent snapshot. Returns nil, nil when no
// snapshots exist yet.
func (s *SnapshotStore) LatestSnapshot(ctx context.Context) (*analytics.Stats, error) {
	var data []byte
	err := s.db.DB.QueryRowContext(ctx,
		`SELECT data FROM analytics_snapshots ORDER BY captured_at DESC LIMIT 1`,
	).Scan(&data)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest snapshot: %w", err)
	}

	var stats analytics.Stats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, fmt.Errorf("unmarshaling snapshot: %w", err)
	}
	return &stats, nil
}

// StartPeriodicSave launches a goroutine that snapshots the recorder's
// stats at the given interval, with a final snapshot on shutdown.
func (s *SnapshotStore) StartPeriodicSave(ctx context.Context, recorder *analytics.Recorder, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := s.SaveSnapshot(ctx, recorder.Stats()); err != nil {
					s.logger.Error("periodic snapshot failed", "error", err)
				}
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := s.SaveSnapshot(shutdownCtx, recorder.Stats()); err != nil {
					s.logger.Error("final snapshot failed", "error", err)
				}
				return
			}
		}
	}()
	s.logger.Info("periodic snapshot started", "interval", interval)
}

package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/dayfocus/internal/prioritization/domain"
	"github.com/felixgeelhaar/dayfocus/internal/shared/infrastructure/database"
)

// SQLitePlanCache implements domain.PlanCache on the local SQLite database so
// that a plan built by one CLI run can be read back by the next.
type SQLitePlanCache struct {
	conn database.Executor
	now  func() time.Time
}

// NewSQLitePlanCache creates a cache over the plan_snapshots table.
func NewSQLitePlanCache(conn database.Executor) *SQLitePlanCache {
	return &SQLitePlanCache{conn: conn, now: time.Now}
}

// Get returns the snapshot stored for userID and date.
func (c *SQLitePlanCache) Get(ctx context.Context, userID uuid.UUID, date string) (*domain.PlanSnapshot, error) {
	var payload string
	var expiresAt sql.NullString
	err := c.conn.QueryRow(ctx,
		`SELECT payload, expires_at FROM plan_snapshots WHERE user_id = ? AND plan_date = ?`,
		userID.String(), date).Scan(&payload, &expiresAt)
	if database.IsNoRows(err) {
		return nil, domain.ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("read plan snapshot: %w", err)
	}

	if expiresAt.Valid {
		expires, err := time.Parse(time.RFC3339Nano, expiresAt.String)
		if err != nil || !c.now().Before(expires) {
			return nil, domain.ErrCacheMiss
		}
	}

	var snapshot domain.PlanSnapshot
	if err := json.Unmarshal([]byte(payload), &snapshot); err != nil {
		return nil, fmt.Errorf("decode plan snapshot: %w", err)
	}
	return &snapshot, nil
}

// Put stores snapshot, replacing any earlier plan for the same day. A
// non-positive ttl keeps it until replaced.
func (c *SQLitePlanCache) Put(ctx context.Context, snapshot domain.PlanSnapshot, ttl time.Duration) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode plan snapshot: %w", err)
	}

	var expiresAt sql.NullString
	if ttl > 0 {
		expiresAt = sql.NullString{String: c.now().Add(ttl).UTC().Format(time.RFC3339Nano), Valid: true}
	}

	_, err = c.conn.Exec(ctx, `
		INSERT INTO plan_snapshots (user_id, plan_date, payload, generated_at, expires_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id, plan_date) DO UPDATE SET
			payload = excluded.payload,
			generated_at = excluded.generated_at,
			expires_at = excluded.expires_at`,
		snapshot.UserID.String(),
		snapshot.Date,
		string(raw),
		snapshot.GeneratedAt.UTC().Format(time.RFC3339Nano),
		expiresAt,
	)
	if err != nil {
		return fmt.Errorf("store plan snapshot: %w", err)
	}
	return nil
}

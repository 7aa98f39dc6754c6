package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const (
	poolTable     = "question_pool"
	poolKeyPrefix = "questionPool:"
)

// PoolKey is the namespaced storage key of a category's pool.
func PoolKey(category string) string {
	return poolKeyPrefix + category
}

// poolRepo implements PoolRepo with one row per category.
type poolRepo struct {
	db *sql.DB
}

func (r *poolRepo) Load(ctx context.Context, category string) (*PoolRecord, error) {
	query, args := builder().Select("category", "payload", "updated_at").
		From(entsql.Table(poolTable)).
		Where(entsql.EQ("key", PoolKey(category))).
		Query()

	var (
		rec     PoolRecord
		payload string
		updated int64
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&rec.Category, &payload, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load pool %q: %w", category, err)
	}

	rec.Payload = json.RawMessage(payload)
	rec.UpdatedAt = time.UnixMilli(updated)
	return &rec, nil
}

func (r *poolRepo) Save(ctx context.Context, category string, payload json.RawMessage) error {
	query, args := builder().Insert(poolTable).
		Columns("key", "category", "payload", "updated_at").
		Values(PoolKey(category), category, string(payload), time.Now().UnixMilli()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save pool %q: %w", category, err)
	}
	return nil
}

func (r *poolRepo) Categories(ctx context.Context) ([]string, error) {
	query, args := builder().Select("key").
		From(entsql.Table(poolTable)).
		Where(entsql.HasPrefix("key", poolKeyPrefix)).
		OrderBy("key").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list pools: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("scan pool key: %w", err)
		}
		out = append(out, strings.TrimPrefix(key, poolKeyPrefix))
	}
	return out, rows.Err()
}

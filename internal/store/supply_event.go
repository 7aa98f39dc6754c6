package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const supplyEventsTable = "supply_events"

func (r *eventRepo) AppendSupply(ctx context.Context, data SupplyEventData) error {
	err := r.insert(ctx, supplyEventsTable,
		[]string{
			"timestamp", "request_id", "category", "topic", "source",
			"state", "count", "latency_ms", "error_message",
		},
		[]any{
			time.Now().UnixMilli(), data.RequestID, data.Category, data.Topic, data.Source,
			data.State, data.Count, data.LatencyMs, data.ErrorMessage,
		},
	)
	if err != nil {
		return fmt.Errorf("save supply event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySupplyEvents(ctx context.Context, opts QueryOpts) ([]SupplyEventRecord, error) {
	sel := builder().Select(
		"id", "sequence", "timestamp", "request_id", "category", "topic",
		"source", "state", "count", "latency_ms", "error_message",
	).
		From(entsql.Table(supplyEventsTable)).
		OrderBy(entsql.Desc("sequence"))
	if opts.Category != "" {
		sel.Where(entsql.EQ("category", opts.Category))
	}
	applyOpts(sel, opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query supply events: %w", err)
	}
	defer rows.Close()

	var out []SupplyEventRecord
	for rows.Next() {
		var (
			rec SupplyEventRecord
			ts  int64
		)
		if err := rows.Scan(
			&rec.ID, &rec.Sequence, &ts, &rec.RequestID, &rec.Category, &rec.Topic,
			&rec.Source, &rec.State, &rec.Count, &rec.LatencyMs, &rec.ErrorMessage,
		); err != nil {
			return nil, fmt.Errorf("scan supply event: %w", err)
		}
		rec.Timestamp = time.UnixMilli(ts)
		out = append(out, rec)
	}
	return out, rows.Err()
}

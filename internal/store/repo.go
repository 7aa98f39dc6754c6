package store

import (
	"context"
	"encoding/json"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit    int       // max results (0 = unlimited)
	After    int64     // sequence > After
	From     time.Time // timestamp >= From
	To       time.Time // timestamp <= To
	Category string    // supply events only
	Purpose  string    // LLM events only
}

// PoolRecord is the stored form of one category's question pool.
type PoolRecord struct {
	Category  string
	Payload   json.RawMessage
	UpdatedAt time.Time
}

// PoolRepo persists one serialized question sequence per category.
type PoolRepo interface {
	// Load returns the record for category, or nil if none was saved.
	Load(ctx context.Context, category string) (*PoolRecord, error)

	// Save replaces the record for category.
	Save(ctx context.Context, category string, payload json.RawMessage) error

	// Categories lists every category with a stored record, sorted.
	Categories(ctx context.Context) ([]string, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// SupplyEventData captures the outcome of one supply call.
type SupplyEventData struct {
	RequestID    string
	Category     string
	Topic        string
	Source       string
	State        string
	Count        int
	LatencyMs    int64
	ErrorMessage string
}

// SupplyEventRecord is a stored supply event.
type SupplyEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	SupplyEventData
}

// UsageStats aggregates LLM token usage for one group (purpose or model).
type UsageStats struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns one LLM event by ID, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates token usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]UsageStats, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]UsageStats, error)

	// AppendSupply records a supply call outcome.
	AppendSupply(ctx context.Context, data SupplyEventData) error

	// QuerySupplyEvents returns supply events, newest first.
	QuerySupplyEvents(ctx context.Context, opts QueryOpts) ([]SupplyEventRecord, error)
}

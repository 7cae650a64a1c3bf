package records

import "context"

// Row is one listing row awaiting decoration. Rows come straight from
// query results or API payloads, so values may be int64, int, float64
// or numeric strings depending on where they were decoded.
type Row = map[string]any

// Columns consulted and written on each row.
const (
	// TypeColumn names the record type column.
	TypeColumn = "RecordType"

	// DefaultIDColumn names the record id column unless WithIDColumn
	// overrides it.
	DefaultIDColumn = "RecordID"

	// RecordColumn is where Join attaches the joined payload.
	RecordColumn = "Record"
)

// Record types with built-in fetchers. Additional types can be
// registered with WithFetcher.
const (
	TypeDiscussion = "discussion"
	TypeComment    = "comment"
)

// DefaultExcerptLength caps the plain-text excerpt attached to each
// record.
const DefaultExcerptLength = 160

// Record is the payload Join attaches under row["Record"].
type Record struct {
	Type         string `json:"type"`
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Excerpt      string `json:"excerpt"`
	CategoryID   int64  `json:"categoryID"`
	InsertUserID int64  `json:"insertUserID"`
	URL          string `json:"url"`
}

// Fetcher loads the records of one type, keyed by id. Ids absent from
// the result are treated as missing records, not errors. Fetchers are
// called once per Join with the deduplicated ids of their type and
// must be safe for concurrent use.
type Fetcher func(ctx context.Context, ids []int64) (map[int64]*Record, error)

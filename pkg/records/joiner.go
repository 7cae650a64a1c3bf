package records

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/plazakit/plaza/pkg/cache"
	"github.com/plazakit/plaza/pkg/logger"
	"github.com/plazakit/plaza/pkg/permission"
	"github.com/plazakit/plaza/pkg/session"
)

// DefaultCacheTTL bounds how long a joined record may be served from
// cache after the underlying row changed.
const DefaultCacheTTL = 5 * time.Minute

// URLBuilder renders site URLs for joined records; *weburl.Builder
// satisfies it.
type URLBuilder interface {
	URL(path string, withDomain bool) string
}

// Joiner resolves the records referenced by listing rows. It is
// immutable after creation and safe for concurrent use.
type Joiner struct {
	pool       *pgxpool.Pool
	fetchers   map[string]Fetcher
	cache      cache.Cache[*Record]
	site       URLBuilder
	log        *slog.Logger
	flight     singleflight.Group
	cacheTTL   time.Duration
	excerptLen int
}

// Option configures a Joiner during construction.
type Option func(*Joiner)

// WithCache stores fetched records in c so repeated joins of hot rows
// skip the database.
func WithCache(c cache.Cache[*Record]) Option {
	return func(j *Joiner) {
		j.cache = c
	}
}

// WithCacheTTL sets how long cached records live. Non-positive values
// keep the default.
func WithCacheTTL(ttl time.Duration) Option {
	return func(j *Joiner) {
		if ttl > 0 {
			j.cacheTTL = ttl
		}
	}
}

// WithSite renders record URLs through the given builder, making them
// absolute. Without it URLs stay site-relative paths.
func WithSite(site URLBuilder) Option {
	return func(j *Joiner) {
		j.site = site
	}
}

// WithLogger sets the logger for cache write failures.
func WithLogger(log *slog.Logger) Option {
	return func(j *Joiner) {
		if log != nil {
			j.log = log
		}
	}
}

// WithExcerptLength caps record excerpts at n runes. Non-positive
// values keep the default.
func WithExcerptLength(n int) Option {
	return func(j *Joiner) {
		if n > 0 {
			j.excerptLen = n
		}
	}
}

// WithFetcher registers or replaces the fetcher for a record type.
// The type is matched case-insensitively against row values.
func WithFetcher(recordType string, f Fetcher) Option {
	return func(j *Joiner) {
		j.fetchers[strings.ToLower(recordType)] = f
	}
}

// New creates a Joiner with built-in discussion and comment fetchers
// bound to pool. A nil pool is allowed when every type is registered
// through WithFetcher.
func New(pool *pgxpool.Pool, opts ...Option) *Joiner {
	j := &Joiner{
		pool:       pool,
		fetchers:   make(map[string]Fetcher, 2),
		log:        logger.NewNope(),
		cacheTTL:   DefaultCacheTTL,
		excerptLen: DefaultExcerptLength,
	}
	if pool != nil {
		j.fetchers[TypeDiscussion] = j.fetchDiscussions
		j.fetchers[TypeComment] = j.fetchComments
	}

	for _, opt := range opts {
		opt(j)
	}

	return j
}

type joinConfig struct {
	viewer          permission.Checker
	idColumn        string
	unset           bool
	checkPermission bool
}

// JoinOption adjusts a single Join call.
type JoinOption func(*joinConfig)

// WithViewer checks category visibility against v instead of the
// session found in the context.
func WithViewer(v permission.Checker) JoinOption {
	return func(cfg *joinConfig) {
		if v != nil {
			cfg.viewer = v
		}
	}
}

// WithUnset drops rows whose record is missing or not visible instead
// of keeping them with a nil Record.
func WithUnset() JoinOption {
	return func(cfg *joinConfig) {
		cfg.unset = true
	}
}

// WithIDColumn reads record ids from the named column instead of
// "RecordID".
func WithIDColumn(name string) JoinOption {
	return func(cfg *joinConfig) {
		if name != "" {
			cfg.idColumn = name
		}
	}
}

// WithoutPermissionCheck attaches records regardless of whether the
// viewer can see their category. For moderation and admin listings.
func WithoutPermissionCheck() JoinOption {
	return func(cfg *joinConfig) {
		cfg.checkPermission = false
	}
}

// Join resolves the record referenced by each row and attaches it
// under row["Record"]. Rows are modified in place; the returned slice
// omits dropped rows when WithUnset is given.
//
// Rows whose type has no registered fetcher keep a nil Record and are
// never dropped, so one exotic row cannot break a mixed listing. Rows
// of a known type whose record is gone, or whose category the viewer
// cannot see, get a nil Record or are dropped per WithUnset.
func (j *Joiner) Join(ctx context.Context, rows []Row, opts ...JoinOption) ([]Row, error) {
	if len(rows) == 0 {
		return rows, nil
	}

	cfg := joinConfig{idColumn: DefaultIDColumn, checkPermission: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	viewer := cfg.viewer
	if viewer == nil {
		viewer = viewerFromContext(ctx)
	}

	type ref struct {
		typ string
		id  int64
	}
	byType := make(map[string][]int64)
	seen := make(map[ref]bool)
	for _, row := range rows {
		typ, ok := j.rowType(row)
		if !ok {
			continue
		}
		id, ok := rowID(row, cfg.idColumn)
		if !ok || seen[ref{typ, id}] {
			continue
		}
		seen[ref{typ, id}] = true
		byType[typ] = append(byType[typ], id)
	}

	found, err := j.load(ctx, byType)
	if err != nil {
		return nil, err
	}

	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		typ, ok := j.rowType(row)
		if !ok {
			row[RecordColumn] = nil
			out = append(out, row)
			continue
		}

		var rec *Record
		if id, ok := rowID(row, cfg.idColumn); ok {
			rec = found[typ][id]
		}
		if rec != nil && cfg.checkPermission &&
			!viewer.HasJunction(permission.JunctionCategory, rec.CategoryID, permission.DiscussionsView) {
			rec = nil
		}
		if rec == nil && cfg.unset {
			continue
		}
		if rec == nil {
			row[RecordColumn] = nil
		} else {
			row[RecordColumn] = rec
		}
		out = append(out, row)
	}

	return out, nil
}

// load fetches all referenced records, one batch per type, in
// parallel.
func (j *Joiner) load(ctx context.Context, byType map[string][]int64) (map[string]map[int64]*Record, error) {
	found := make(map[string]map[int64]*Record, len(byType))
	var mu sync.Mutex

	eg, ctx := errgroup.WithContext(ctx)
	for typ, ids := range byType {
		eg.Go(func() error {
			recs, err := j.loadType(ctx, typ, ids)
			if err != nil {
				return fmt.Errorf("records: load %s: %w", typ, err)
			}
			mu.Lock()
			found[typ] = recs
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return found, nil
}

// loadType serves one type's ids from cache where possible and fetches
// the rest in a single batch.
func (j *Joiner) loadType(ctx context.Context, typ string, ids []int64) (map[int64]*Record, error) {
	recs := make(map[int64]*Record, len(ids))

	missing := ids
	if j.cache != nil {
		missing = make([]int64, 0, len(ids))
		for _, id := range ids {
			rec, err := j.cache.Get(ctx, recordKey(typ, id))
			if err != nil {
				missing = append(missing, id)
				continue
			}
			recs[id] = rec
		}
	}
	if len(missing) == 0 {
		return recs, nil
	}

	fetched, err := j.fetchBatch(ctx, typ, missing)
	if err != nil {
		return nil, err
	}
	for id, rec := range fetched {
		recs[id] = rec
		if j.cache == nil {
			continue
		}
		if err := j.cache.Set(ctx, recordKey(typ, id), rec, j.cacheTTL); err != nil {
			j.log.WarnContext(ctx, "failed to cache record",
				"record_type", typ, "record_id", id, "error", err)
		}
	}

	return recs, nil
}

// fetchBatch collapses concurrent fetches of the same id set into one
// query.
func (j *Joiner) fetchBatch(ctx context.Context, typ string, ids []int64) (map[int64]*Record, error) {
	slices.Sort(ids)
	v, err, _ := j.flight.Do(flightKey(typ, ids), func() (any, error) {
		return j.fetchers[typ](ctx, ids)
	})
	if err != nil {
		return nil, err
	}
	return v.(map[int64]*Record), nil
}

// rowType normalizes the row's record type and reports whether a
// fetcher is registered for it.
func (j *Joiner) rowType(row Row) (string, bool) {
	raw, _ := row[TypeColumn].(string)
	typ := strings.ToLower(raw)
	_, ok := j.fetchers[typ]
	return typ, ok
}

// rowID reads the record id, tolerating whichever numeric type the
// row's decoder produced.
func rowID(row Row, column string) (int64, bool) {
	switch v := row[column].(type) {
	case int64:
		return v, v > 0
	case int:
		return int64(v), v > 0
	case int32:
		return int64(v), v > 0
	case float64:
		id := int64(v)
		return id, id > 0 && float64(id) == v
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		return id, err == nil && id > 0
	default:
		return 0, false
	}
}

func viewerFromContext(ctx context.Context) permission.Checker {
	if sess, ok := session.FromContext(ctx); ok && sess.Permissions != nil {
		return sess.Permissions
	}
	var guest *permission.Set
	return guest
}

func recordKey(typ string, id int64) string {
	return cache.Key("records", typ, strconv.FormatInt(id, 10))
}

func flightKey(typ string, ids []int64) string {
	var b strings.Builder
	b.WriteString(typ)
	for _, id := range ids {
		b.WriteByte(':')
		b.WriteString(strconv.FormatInt(id, 10))
	}
	return b.String()
}

// Package records joins listing rows to the records they reference.
//
// Search results, activity feeds, and moderation queues store only a
// record type and id per row. Join resolves those references in bulk
// and attaches a compact payload (name, excerpt, category, URL) under
// row["Record"], filtered by what the viewer is allowed to see.
//
// # Joining
//
// Build one Joiner per process and share it:
//
//	joiner := records.New(pool,
//		records.WithSite(site),
//		records.WithCache(cache.NewMemory[*records.Record]()),
//	)
//
//	rows, err := joiner.Join(ctx, rows)
//
// Ids are grouped by type and fetched with one query per type, types
// in parallel. The viewer defaults to the session in ctx; pass
// records.WithViewer to override, records.WithUnset to drop rows the
// viewer cannot see instead of blanking them.
//
// # Custom record types
//
// Types beyond discussions and comments register a Fetcher:
//
//	joiner := records.New(pool, records.WithFetcher("event", fetchEvents))
//
// Rows whose type has no fetcher keep a nil Record and are never
// dropped, so an unrecognized row cannot break a mixed listing.
package records

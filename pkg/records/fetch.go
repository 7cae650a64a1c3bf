package records

import (
	"context"
	"fmt"
	"strconv"

	"github.com/plazakit/plaza/pkg/format"
	"github.com/plazakit/plaza/pkg/slug"
)

const discussionsByIDQuery = `
SELECT discussion_id, name, body, category_id, insert_user_id
FROM discussions
WHERE discussion_id = ANY($1)`

// Comments carry no name or category of their own; both come from the
// parent discussion.
const commentsByIDQuery = `
SELECT c.comment_id, d.name, c.body, d.category_id, c.insert_user_id
FROM comments c
JOIN discussions d ON d.discussion_id = c.discussion_id
WHERE c.comment_id = ANY($1)`

func (j *Joiner) fetchDiscussions(ctx context.Context, ids []int64) (map[int64]*Record, error) {
	return j.fetchQuery(ctx, TypeDiscussion, discussionsByIDQuery, ids)
}

func (j *Joiner) fetchComments(ctx context.Context, ids []int64) (map[int64]*Record, error) {
	return j.fetchQuery(ctx, TypeComment, commentsByIDQuery, ids)
}

func (j *Joiner) fetchQuery(ctx context.Context, typ, query string, ids []int64) (map[int64]*Record, error) {
	rows, err := j.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	recs := make(map[int64]*Record, len(ids))
	for rows.Next() {
		var (
			id, categoryID, insertUserID int64
			name, body                   string
		)
		if err := rows.Scan(&id, &name, &body, &categoryID, &insertUserID); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		recs[id] = j.buildRecord(typ, id, name, body, categoryID, insertUserID)
	}

	return recs, rows.Err()
}

func (j *Joiner) buildRecord(typ string, id int64, name, body string, categoryID, insertUserID int64) *Record {
	return &Record{
		Type:         typ,
		ID:           id,
		Name:         name,
		Excerpt:      format.Excerpt(body, j.excerptLen),
		CategoryID:   categoryID,
		InsertUserID: insertUserID,
		URL:          j.recordURL(typ, id, name),
	}
}

// recordURL renders the canonical path for a record. Comments link
// into their discussion with an anchor, like the web UI renders them.
func (j *Joiner) recordURL(typ string, id int64, name string) string {
	n := strconv.FormatInt(id, 10)

	var path string
	switch typ {
	case TypeComment:
		path = "/discussion/comment/" + n + "#Comment_" + n
	default:
		path = "/discussion/" + n
		if s := slug.Make(name); s != "" {
			path += "/" + s
		}
	}

	if j.site != nil {
		return j.site.URL(path, true)
	}
	return path
}

// Package session provides cookie-token sessions for forum visitors,
// signed-in or guest, with pluggable persistence.
//
// A Session carries the user binding (UserID, zero for guests), the
// user's resolved permission set, arbitrary attributes, and request
// metadata. Changes flip an internal dirty flag so the manager only
// writes back sessions that actually changed.
//
// # Stores
//
// Two Store implementations ship with the package: MemoryStore for
// tests and single-node setups, and PGStore for Postgres through a pgx
// pool. Both report ErrNotFound for unknown tokens and ErrExpired for
// sessions past their expiry.
//
// # Manager
//
// The Manager ties a store to the shared cookie manager:
//
//	cookies := cookie.FromConfig(cfg)
//	sessions := session.NewManager(session.NewPGStore(pool), cookies,
//		session.WithTTL(30*24*time.Hour),
//	)
//
//	sess, err := sessions.Load(ctx, r)    // nil, nil without a cookie
//	if sess == nil {
//		sess, err = sessions.Create(ctx, r)
//	}
//	defer sessions.Save(ctx, w, sess)     // persists if dirty, sets cookie if new
//
// After sign-in, bind the user and rotate the token so the pre-login
// token cannot be replayed:
//
//	sess.SetUser(userID, perms)
//	err := sessions.Rotate(ctx, w, sess)
//
// # Permission checks
//
// Sessions answer permission questions through their resolved set:
//
//	if !sess.Can(permission.DiscussionsAdd) {
//		return ErrPermissionDenied
//	}
//	if sess.CanJunction(permission.JunctionCategory, categoryID, permission.DiscussionsView) {
//		// category is visible to this user
//	}
//
// # Expiry
//
// Expired sessions are rejected at load time, and the daemon prunes
// them in bulk on a schedule:
//
//	n, err := sessions.Purge(ctx) // DELETE FROM sessions WHERE expired
package session

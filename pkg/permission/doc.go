// Package permission models resolved user permissions: global grants
// plus junction-scoped grants such as per-category view rights.
//
// A Set is assembled once per session (usually via FromRows from a
// role-permission query), cached as JSON, and then only read. Checks
// follow three rules, in order:
//
//  1. Banned users fail every check except the ban-exempt management
//     permissions, so operators can always reach the tools that undo a
//     ban.
//  2. Admins pass every remaining check.
//  3. Otherwise the named grant decides.
//
// Junction checks fall back to the global grant when the set carries
// nothing for that row, so categories without specific permissions
// inherit the site default:
//
//	set := permission.NewSet().
//		Grant(permission.DiscussionsView).
//		GrantJunction(permission.JunctionCategory, 7, permission.DiscussionsAdd)
//
//	set.Has(permission.DiscussionsView)                                    // true
//	set.HasJunction(permission.JunctionCategory, 7, permission.DiscussionsAdd)  // true
//	set.HasJunction(permission.JunctionCategory, 9, permission.DiscussionsView) // true (global fallback)
package permission

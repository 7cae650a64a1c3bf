// Package plaza is a toolkit of focused packages for building a
// community/forum platform in Go.
//
// Each concern lives in its own package under pkg/ and stands alone;
// the root package only carries the embedded database migrations the
// daemon and the ops CLI apply.
//
// # Packages
//
//   - pkg/config: layered dotted-key configuration (garden.title, ...)
//   - pkg/weburl: site/asset URL building, trusted domains, safe redirects
//   - pkg/format: templated message substitution and content pipelines
//   - pkg/locale, pkg/translate: locale rendering rules and message lookup
//   - pkg/mentions: HTML-tag-aware @mention extraction and linking
//   - pkg/permission: permission sets with per-category junction grants
//   - pkg/session: cookie-token visitor sessions (memory or Postgres)
//   - pkg/records: joining listing rows to their referenced records
//   - pkg/theme: banner theme variable cascade served as JSON
//   - pkg/proxy: outbound fetching and legacy reverse proxying
//   - pkg/cookie, pkg/cache, pkg/db, pkg/redis, pkg/logger, pkg/id,
//     pkg/health, pkg/dnsverify, pkg/slug, pkg/uploads, pkg/clientip,
//     pkg/clilog: supporting infrastructure
//
// # Binaries
//
// cmd/plazad runs the HTTP daemon; cmd/plazactl is the ops CLI
// (asset manifests, configuration, theme inspection, domain
// verification, migrations).
package plaza

// Package letters persists scanned-correspondence records in SQLite and
// keeps their pseudonym field reconciled with the external person roster.
//
// The Store owns the letters and audit_log tables, schema initialization,
// per-field updates with last-modified tracking, deletion with optional
// best-effort file cleanup, reporting queries, and the bulk pseudonym
// resync. Every mutating operation runs as a single transaction that also
// writes its audit entry, so a crash never leaves a mutation without its
// trail. Multiple dashboard sessions share the database concurrently; WAL
// journaling plus a busy retry loop stand in for in-process locks, and
// row-level last-writer-wins is accepted.
//
// Letters reference roster rows positionally via prisoner_idx, captured
// at scan time. The roster may be reloaded or re-sorted underneath those
// indices; the store deliberately does not validate them, and Resync
// leaves out-of-bounds rows untouched. Existing data carries only
// positional indices, so switching to roster-assigned stable identifiers
// would require a coordinated migration of both tables.
package letters

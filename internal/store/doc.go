// Package store persists the download inventory: a small SQLite database
// recording which PUMS cache files have been downloaded, from where, and
// when. The cache files themselves are plain CSVs on disk; the inventory is
// bookkeeping for the CLI, not a source of truth for cache hits.
package store

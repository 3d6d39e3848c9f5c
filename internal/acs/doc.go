// Package acs fetches, caches, and assembles U.S. Census American Community
// Survey (ACS) Public Use Microdata Sample files.
//
// A DataSource is fixed to one (survey year, horizon, survey type) dataset
// and a local cache root. Per-state CSVs live at deterministic paths under
// {root}/{year}/{horizon}, mirroring the Census PUMS naming scheme, and are
// downloaded lazily on first access when the caller permits it. Loaded
// tables are gota dataframes; person tables can be widened with household
// columns by joining on the shared household serial number.
//
// The package performs no statistical computation and keeps no state beyond
// the on-disk cache. Downloads are memoized, never evicted, and written
// idempotently; callers are expected to invoke sequentially.
package acs

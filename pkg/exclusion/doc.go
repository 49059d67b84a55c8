// Package exclusion decides which discovered folders are skipped.
//
// A Policy holds full-path exclusions and name rules. Full paths are
// checked first and compared verbatim. Name rules are then checked in
// registration order and the first match wins. A rule matches a name in
// its literal form, or case-insensitively by comparing lowercased forms.
package exclusion

// Package artifacts persists audit results and the files derived from them.
//
// A [Store] owns one flat location (a directory by default, see
// [blob.Backend]) holding:
//
//	lhr-<unix-ms>.json      raw result, written verbatim
//	lhr-<unix-ms>.html      rendered report for the result with the same stem
//	assertion-results.json  JSON array, replaced on every save
//	links.json              JSON object, tested URL -> report link
//
// Enumeration and [Store.Clear] only consider names matching the lhr
// patterns, so unrelated files in the same directory are left alone.
//
// # Identifiers
//
// IDs are lhr-<milliseconds since epoch>. A store never hands out the
// same number twice and skips numbers whose raw file already exists, so
// two saves within one clock tick get consecutive numbers instead of
// overwriting each other.
//
// # Usage
//
//	store, err := artifacts.Open(".perfreport")
//	id, err := store.Save(ctx, raw)
//	results, err := store.LoadSaved(ctx, "")
package artifacts

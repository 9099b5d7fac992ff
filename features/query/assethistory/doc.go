// Package assethistory implements the Asset History query use case.
//
// It returns the append-only version trail of one asset, most recent first.
// Soft-deleted assets keep their history visible - that is where restore
// picks the version to bring back.
package assethistory

// Package removeasset implements the Remove Asset use case.
//
// Assets are never hard-deleted while loan history references them; removal
// stamps DeletedAt and appends a DELETE version record, so the asset can
// later be brought back through restore.
package removeasset

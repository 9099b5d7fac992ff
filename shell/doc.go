// Package shell contains the imperative-shell plumbing shared by the feature
// handlers: the snapshot JSON codec, retry with exponential backoff for
// storage concurrency conflicts, and the logging contract.
package shell

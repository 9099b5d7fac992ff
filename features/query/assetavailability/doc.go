// Package assetavailability implements the Asset Availability query use case.
//
// An asset is available iff no ACTIVE loan references it. The result carries
// the blocking loan when there is one, so the counter staff can see who has
// the asset and until when.
package assetavailability

// Package domain models data-claim submissions and the location catalog.
//
// # Claims
//
// A claim ties a phone number to a requested data-quota tier and, in the
// normal flow, the device position captured at submission time. Claims are
// append-only: the service assigns the id and submission timestamp at write
// time, and nothing updates or deletes a stored claim.
//
// # Phone numbers
//
// Raw input (possibly arriving keystroke by keystroke) is reduced to its
// digits and masked as "(XXX) XXX-XXXX", truncated at ten digits. A number is
// valid only when it fills the mask exactly; no area-code plausibility or
// carrier checks are performed. The value submitted for storage is the masked
// string prefixed with the fixed "+94" country code.
//
// # Locations
//
// The catalog holds named geographic points. Coordinates are stored as given,
// without range validation, to stay compatible with rows written by earlier
// deployments. The first read of an empty catalog seeds three well-known
// example points (see [SeedLocations]).
package domain

// Package timezone holds the console's display time zone.
//
// The zone is seeded from the preference store, or from the host when the
// user never picked one, and can be changed explicitly with Set. Identifiers
// are stored as given; only Location resolves them against the zone database.
package timezone

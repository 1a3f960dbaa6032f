package timezone

// Common lists the zones offered by the console's zone picker.
var Common = []string{
	"UTC",
	"America/Los_Angeles",
	"America/New_York",
	"America/Sao_Paulo",
	"Europe/London",
	"Europe/Berlin",
	"Europe/Belgrade",
	"Asia/Kolkata",
	"Asia/Singapore",
	"Asia/Tokyo",
	"Australia/Sydney",
}

// Next returns the zone after current in Common, wrapping around.
// A zone not in the list moves to the first entry.
func Next(current string) string {
	for i, z := range Common {
		if z == current {
			return Common[(i+1)%len(Common)]
		}
	}
	return Common[0]
}

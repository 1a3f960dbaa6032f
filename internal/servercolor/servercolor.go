// Package servercolor assigns each reporting server a stable color from a
// small fixed palette so charts and tables can tell servers apart.
//
// The color depends only on the set of server names, never on the order the
// caller lists them in: names are sorted and deduplicated before indexing.
// Adding or removing a server can therefore shift the colors of others.
package servercolor

import (
	"slices"

	"github.com/charmbracelet/lipgloss"
)

// Palette is the ordered list of server colors.
var Palette = [...]string{
	"#e97a35", // Orange
	"#2a9d8f", // Teal
	"#4361ee", // Blue
	"#d664ba", // Pink
	"#e9c46a", // Yellow
	"#9b5de5", // Purple
	"#57cc99", // Green
	"#ef476f", // Red
}

// Assign returns the color for name within the server set all.
// The second result is false when name is not a member of all.
func Assign(name string, all []string) (string, bool) {
	idx, found := slices.BinarySearch(sortedSet(all), name)
	if !found {
		return "", false
	}
	return Palette[idx%len(Palette)], true
}

// AssignAll returns the color of every server in servers.
// For any member n, AssignAll(servers)[n] equals the color Assign(n, servers) returns.
func AssignAll(servers []string) map[string]string {
	sorted := sortedSet(servers)
	colors := make(map[string]string, len(sorted))
	for i, name := range sorted {
		colors[name] = Palette[i%len(Palette)]
	}
	return colors
}

// Styles returns a foreground style per server in all. Looking up a name
// outside all yields the zero lipgloss.Style, which renders unstyled.
func Styles(all []string) map[string]lipgloss.Style {
	colors := AssignAll(all)
	styles := make(map[string]lipgloss.Style, len(colors))
	for name, color := range colors {
		styles[name] = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	return styles
}

func sortedSet(names []string) []string {
	sorted := slices.Clone(names)
	slices.Sort(sorted)
	return slices.Compact(sorted)
}

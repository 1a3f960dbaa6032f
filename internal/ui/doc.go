// Package ui provides theme and color support for the console's user interface.
// It defines the dark and light color schemes and a Renderer that holds the
// active scheme for the CLI and TUI presentation layers.
//
// The Renderer is the visual marker the theme controller drives: flipping it
// between dark and light swaps every palette consumers read.
package ui

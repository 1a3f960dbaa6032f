// Package theme keeps the console's dark/light flag in sync with three
// inputs: the preference the user saved, the host's preference, and explicit
// overrides from other components.
//
// Resolution at Init: a saved "dark" or "light" wins, otherwise the host
// preference decides. Afterwards host changes only apply while nothing is
// saved, Toggle saves the user's choice, and SetExternal mirrors a change made
// elsewhere without saving it. The last update processed wins.
//
// The flag is pushed to a Marker (normally *ui.Renderer) that every view
// reads its colors from, and to subscribers registered with Subscribe.
package theme

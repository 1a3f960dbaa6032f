package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// FooterModel renders the key hints.
type FooterModel struct {
	bindings []key.Binding
	width    int
	message  string
}

// NewFooterModel creates a footer listing bindings.
func NewFooterModel(bindings []key.Binding) FooterModel {
	return FooterModel{bindings: bindings}
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) {
	f.width = w
}

// SetMessage shows a transient status message next to the hints.
func (f *FooterModel) SetMessage(msg string) {
	f.message = msg
}

// View renders the footer.
func (f FooterModel) View() string {
	parts := make([]string, 0, len(f.bindings))
	for _, b := range f.bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}
	line := " " + strings.Join(parts, footerDescStyle.Render("  "))
	if f.message != "" {
		line += footerDescStyle.Render("  | ") + statusDoneStyle.Render(f.message)
	}
	return line
}

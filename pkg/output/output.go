package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/arthur-debert/xctinstall/pkg/output/styles"
)

// UnknownVersion is printed when a template carries no version
const UnknownVersion = "unknown"

// Printer writes status lines to a writer
type Printer struct {
	w      io.Writer
	styled bool
}

// New creates a Printer. styled enables lipgloss rendering.
func New(w io.Writer, styled bool) *Printer {
	return &Printer{w: w, styled: styled}
}

// NewForFile creates a Printer that styles output only when f is a colour terminal
func NewForFile(f *os.File) *Printer {
	return New(f, SupportsColor(f))
}

// SupportsColor reports whether f is a terminal that accepts colour.
// NO_COLOR disables colour regardless of the terminal.
func SupportsColor(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return termenv.NewOutput(f).ColorProfile() != termenv.Ascii
}

func (p *Printer) render(style, text string) string {
	if !p.styled {
		return text
	}
	return styles.GetStyle(style).Render(text)
}

func (p *Printer) println(parts ...string) {
	line := ""
	for _, part := range parts {
		line += part
	}
	fmt.Fprintln(p.w, line)
}

// FormatVersion returns "v<version>" or "vunknown"
func FormatVersion(version string) string {
	if version == "" {
		version = UnknownVersion
	}
	return "v" + version
}

// MissingSource reports a template source directory that does not exist
func (p *Printer) MissingSource(path string) {
	p.println(p.render("Warning", "Warning: Template source not found: "), p.render("FilePath", path))
}

// Installing reports a template being installed or updated
func (p *Printer) Installing(name, version string) {
	p.println(
		p.render("Success", "Installing Xcode template: "),
		p.render("TemplateName", name),
		" ",
		p.render("Version", FormatVersion(version)),
	)
}

// WouldInstall reports a template a dry run would install or update
func (p *Printer) WouldInstall(name, version string) {
	p.println(
		p.render("DryRunBanner", "Would install Xcode template: "),
		p.render("TemplateName", name),
		" ",
		p.render("Version", FormatVersion(version)),
	)
}

// DryRunNotice closes a dry run
func (p *Printer) DryRunNotice() {
	p.println(p.render("DryRunBanner", "DRY RUN MODE - No changes were made"))
}

// StatusRow is one line of the status table
type StatusRow struct {
	Name             string
	SourceVersion    string
	InstalledVersion string
	State            string
}

// Status prints one aligned row per template
func (p *Printer) Status(destination string, rows []StatusRow) {
	p.println(p.render("Bold", "Destination: "), p.render("FilePath", destination))
	if len(rows) == 0 {
		p.println(p.render("Muted", "No templates configured."))
		return
	}

	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r.Name))
	}

	for _, r := range rows {
		installed := "-"
		if r.InstalledVersion != "" {
			installed = FormatVersion(r.InstalledVersion)
		}
		p.println(
			"  ",
			p.render("TemplateName", fmt.Sprintf("%-*s", width, r.Name)),
			"  source ",
			p.render("Version", fmt.Sprintf("%-10s", FormatVersion(r.SourceVersion))),
			" installed ",
			p.render("Version", fmt.Sprintf("%-10s", installed)),
			" ",
			p.render(stateStyle(r.State), r.State),
		)
	}
}

func stateStyle(state string) string {
	switch state {
	case "missing":
		return "Warning"
	case "up-to-date":
		return "Muted"
	default:
		return "Info"
	}
}

// Error renders an error line the way main prints fatal errors
func Error(err error, styled bool) string {
	text := fmt.Sprintf("Error: %v", err)
	if !styled {
		return text
	}
	return styles.GetStyle("Error").Render(text)
}

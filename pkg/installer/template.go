package installer

import (
	"path/filepath"

	"github.com/arthur-debert/xctinstall/pkg/templateversion"
)

// Template is one installable template directory
type Template struct {
	// Source is the path as configured, used in messages
	Source string

	// Path is the resolved source directory
	Path string
}

// NewTemplate returns a Template whose source is already resolved
func NewTemplate(path string) Template {
	return Template{Source: path, Path: path}
}

// Name is the directory name the template is installed under
func (t Template) Name() string {
	return filepath.Base(t.Path)
}

// Action is what the installer does, or would do, with a template
type Action string

const (
	// ActionInstall copies a template that is not installed yet
	ActionInstall Action = "install"

	// ActionUpdate replaces an older installed copy
	ActionUpdate Action = "update"

	// ActionUpToDate leaves the installed copy alone
	ActionUpToDate Action = "up-to-date"

	// ActionMissing means the source directory does not exist
	ActionMissing Action = "missing"
)

// Copies reports whether the action writes to the destination
func (a Action) Copies() bool {
	return a == ActionInstall || a == ActionUpdate
}

// Outcome is the decision taken for one template
type Outcome struct {
	Template    Template
	Destination string
	Action      Action

	SourceVersion    templateversion.Version
	InstalledVersion templateversion.Version
}

// SourceVersionString is the source version for display, or "" when it is
// absent or a numeric zero
func (o Outcome) SourceVersionString() string {
	return versionLabel(o.SourceVersion)
}

// InstalledVersionString is InstalledVersion for display, like SourceVersionString
func (o Outcome) InstalledVersionString() string {
	return versionLabel(o.InstalledVersion)
}

func versionLabel(v templateversion.Version) string {
	if !v.IsValid() || v.IsZero() {
		return ""
	}
	return v.String()
}

// Report lists the outcome of every configured template, in order
type Report struct {
	Outcomes []Outcome
	DryRun   bool
}

// Count returns how many outcomes have the given action
func (r *Report) Count(action Action) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Action == action {
			n++
		}
	}
	return n
}

// Changed reports whether any template was (or would be) copied
func (r *Report) Changed() bool {
	for _, o := range r.Outcomes {
		if o.Action.Copies() {
			return true
		}
	}
	return false
}

// Resolver turns configured source paths into absolute ones
type Resolver interface {
	ResolveSource(source string) string
}

// ResolveTemplates builds Templates from configured source paths
func ResolveTemplates(r Resolver, sources []string) []Template {
	templates := make([]Template, 0, len(sources))
	for _, src := range sources {
		templates = append(templates, Template{Source: src, Path: r.ResolveSource(src)})
	}
	return templates
}

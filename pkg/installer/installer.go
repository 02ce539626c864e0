package installer

import (
	"context"
	stderrors "errors"
	"io"
	"io/fs"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/xctinstall/pkg/errors"
	"github.com/arthur-debert/xctinstall/pkg/filesystem"
	"github.com/arthur-debert/xctinstall/pkg/logging"
	"github.com/arthur-debert/xctinstall/pkg/output"
	"github.com/arthur-debert/xctinstall/pkg/paths"
	"github.com/arthur-debert/xctinstall/pkg/plist"
	"github.com/arthur-debert/xctinstall/pkg/templateversion"
	"github.com/arthur-debert/xctinstall/pkg/types"
)

// Options configures an Installer
type Options struct {
	// FS defaults to the OS filesystem
	FS types.FS

	// Destination is the directory templates are installed into
	Destination string

	// MetadataFile defaults to TemplateInfo.plist
	MetadataFile string

	// Templates are processed in order
	Templates []Template

	// Printer receives status lines; nil discards them
	Printer *output.Printer

	// DryRun reports decisions without touching the destination
	DryRun bool
}

// Installer installs templates into a destination directory
type Installer struct {
	fs           types.FS
	destination  string
	metadataFile string
	templates    []Template
	printer      *output.Printer
	dryRun       bool
	logger       zerolog.Logger
}

// New creates an Installer
func New(opts Options) *Installer {
	i := &Installer{
		fs:           opts.FS,
		destination:  opts.Destination,
		metadataFile: opts.MetadataFile,
		templates:    opts.Templates,
		printer:      opts.Printer,
		dryRun:       opts.DryRun,
		logger:       logging.GetLogger("installer"),
	}
	if i.fs == nil {
		i.fs = filesystem.NewOS()
	}
	if i.metadataFile == "" {
		i.metadataFile = paths.MetadataFile
	}
	if i.printer == nil {
		i.printer = output.New(io.Discard, false)
	}
	return i
}

// Destination returns the directory templates are installed into
func (i *Installer) Destination() string {
	return i.destination
}

// InstalledPath returns where t is installed
func (i *Installer) InstalledPath(t Template) string {
	return filepath.Join(i.destination, t.Name())
}

// GetVersion reads the version from the metadata file in templatePath.
// ok is false when the file is missing, unreadable, not a plist, or has
// no usable Version key.
func (i *Installer) GetVersion(templatePath string) (v templateversion.Version, ok bool) {
	metaPath := filepath.Join(templatePath, i.metadataFile)
	logger := i.logger.With().Str("path", metaPath).Logger()

	data, err := i.fs.ReadFile(metaPath)
	if err != nil {
		if !stderrors.Is(err, fs.ErrNotExist) {
			logger.Debug().Err(err).Msg("Unreadable template metadata, treating as unversioned")
		}
		return templateversion.Version{}, false
	}

	doc, err := plist.Parse(data)
	if err != nil {
		logger.Debug().Err(err).Msg("Unparseable template metadata, treating as unversioned")
		return templateversion.Version{}, false
	}

	v, ok = templateversion.FromDocument(doc)
	if !ok {
		logger.Debug().Msg("Template metadata has no usable version")
	}
	return v, ok
}

// ShouldCopy decides whether source should replace dest
func (i *Installer) ShouldCopy(source, dest string) bool {
	if !filesystem.Exists(i.fs, dest) {
		return true
	}

	sourceVersion, ok := i.GetVersion(source)
	if !ok {
		// An unversioned source never replaces an existing install
		return false
	}

	destVersion, ok := i.GetVersion(dest)
	if !ok {
		return true
	}

	return sourceVersion.GreaterThan(destVersion)
}

// evaluate decides what to do with t without touching the filesystem
func (i *Installer) evaluate(t Template) Outcome {
	out := Outcome{
		Template:    t,
		Destination: i.InstalledPath(t),
	}

	if !filesystem.Exists(i.fs, t.Path) {
		out.Action = ActionMissing
		return out
	}

	out.SourceVersion, _ = i.GetVersion(t.Path)
	destExists := filesystem.Exists(i.fs, out.Destination)
	if destExists {
		out.InstalledVersion, _ = i.GetVersion(out.Destination)
	}

	switch {
	case !i.ShouldCopy(t.Path, out.Destination):
		out.Action = ActionUpToDate
	case destExists:
		out.Action = ActionUpdate
	default:
		out.Action = ActionInstall
	}

	return out
}

// Plan returns the decision for every template without changing anything
func (i *Installer) Plan(ctx context.Context) ([]Outcome, error) {
	outcomes := make([]Outcome, 0, len(i.templates))
	for _, t := range i.templates {
		if err := ctx.Err(); err != nil {
			return outcomes, err
		}
		outcomes = append(outcomes, i.evaluate(t))
	}
	return outcomes, nil
}

// InstallAll installs or updates every template that needs it. The
// returned report holds the outcomes processed so far, also on error.
func (i *Installer) InstallAll(ctx context.Context) (*Report, error) {
	done := logging.LogOperationStart(i.logger, "install")
	defer done()

	report := &Report{DryRun: i.dryRun}

	if !i.dryRun {
		if err := i.fs.MkdirAll(i.destination, 0755); err != nil {
			return report, errors.Wrapf(err, errors.ErrDirCreate, "failed to create template directory %s", i.destination).
				WithDetail("path", i.destination)
		}
	}

	for _, t := range i.templates {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		out := i.evaluate(t)
		report.Outcomes = append(report.Outcomes, out)

		logger := i.logger.With().
			Str("template", t.Name()).
			Str("action", string(out.Action)).
			Logger()

		switch {
		case out.Action == ActionMissing:
			logger.Debug().Str("source", t.Path).Msg("Template source not found")
			i.printer.MissingSource(t.Source)
		case !out.Action.Copies():
			logger.Debug().Msg("Template up to date")
		case i.dryRun:
			i.printer.WouldInstall(t.Name(), out.SourceVersionString())
		default:
			i.printer.Installing(t.Name(), out.SourceVersionString())
			if err := i.replace(t, out.Destination); err != nil {
				return report, err
			}
			logger.Info().
				Str("source", t.Path).
				Str("destination", out.Destination).
				Str("version", out.SourceVersionString()).
				Msg("Template installed")
		}
	}

	return report, nil
}

// replace removes any installed copy of t and copies the source tree in its place
func (i *Installer) replace(t Template, dest string) error {
	if filesystem.Exists(i.fs, dest) {
		if err := i.fs.RemoveAll(dest); err != nil {
			return errors.Wrapf(err, errors.ErrTemplateRemove, "failed to remove installed template %s", t.Name()).
				WithDetail("path", dest)
		}
	}

	if err := filesystem.CopyTree(i.fs, t.Path, dest); err != nil {
		return errors.Wrapf(err, errors.ErrTemplateCopy, "failed to copy template %s", t.Name()).
			WithDetail("source", t.Path).
			WithDetail("path", dest)
	}

	return nil
}

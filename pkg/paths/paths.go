package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/xctinstall/pkg/errors"
)

// Environment variable names
const (
	// EnvHome is the standard home directory variable
	EnvHome = "HOME"

	// EnvXDGStateHome is the XDG state directory variable
	EnvXDGStateHome = "XDG_STATE_HOME"

	// EnvStateDir overrides the state directory for xctinstall
	EnvStateDir = "XCTINSTALL_STATE_DIR"
)

// Fixed locations. Xcode only looks for user templates under
// ~/Library/Developer/Xcode/Templates, so these are not configurable.
const (
	// AppName is the directory name for xctinstall-specific files
	AppName = "xctinstall"

	// XcodeTemplatesRel is the user template root relative to $HOME
	XcodeTemplatesRel = "Library/Developer/Xcode/Templates"

	// FileTemplatesDir holds file templates; each subdirectory is a group
	FileTemplatesDir = "File Templates"

	// MetadataFile is the template metadata file read for the version
	MetadataFile = "TemplateInfo.plist"

	// LogFileName is the name of the log file
	LogFileName = "xctinstall.log"
)

// Paths resolves the install destination and template sources
type Paths interface {
	DestinationDir() string
	ResolveSource(source string) string
}

// Options configures New. Zero values select the defaults.
type Options struct {
	// Group is the folder under "File Templates" that Xcode shows as a section
	Group string

	// Destination replaces <FileTemplatesDir>/<Group> entirely when set
	Destination string

	// WorkDir is the base for relative template sources (default: cwd)
	WorkDir string
}

type paths struct {
	homeDir     string
	workDir     string
	destination string
}

// New creates a Paths instance
func New(opts Options) (Paths, error) {
	home, err := GetHomeDirectory()
	if err != nil {
		return nil, err
	}

	p := &paths{homeDir: home}

	workDir := opts.WorkDir
	if workDir == "" {
		workDir, err = os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrFileAccess, "failed to get working directory")
		}
	}
	p.workDir, err = filepath.Abs(expandHomeWith(home, workDir))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", workDir)
	}

	if opts.Destination != "" {
		p.destination = filepath.Clean(expandHomeWith(home, opts.Destination))
	} else {
		if opts.Group == "" {
			return nil, errors.New(errors.ErrInvalidInput, "template group must not be empty")
		}
		if strings.ContainsRune(opts.Group, filepath.Separator) || opts.Group == "." || opts.Group == ".." {
			return nil, errors.Newf(errors.ErrInvalidInput, "invalid template group %q", opts.Group)
		}
		p.destination = filepath.Join(fileTemplatesDir(home), opts.Group)
	}

	return p, nil
}

// StateDir returns the XDG state directory for xctinstall. It does not
// need Paths because the logger is set up before configuration is loaded.
func StateDir() string {
	home, _ := GetHomeDirectory()
	return resolveStateDir(home)
}

// LogFilePath returns the path to the log file
func LogFilePath() string {
	return filepath.Join(StateDir(), LogFileName)
}

// resolveStateDir returns the state directory, respecting overrides.
// The environment is read directly because xdg caches it at init.
func resolveStateDir(home string) string {
	if dir := os.Getenv(EnvStateDir); dir != "" {
		return expandHomeWith(home, dir)
	}
	if dir := os.Getenv(EnvXDGStateHome); dir != "" {
		return filepath.Join(dir, AppName)
	}
	return filepath.Join(xdg.StateHome, AppName)
}

// fileTemplatesDir returns ~/Library/Developer/Xcode/Templates/File Templates
func fileTemplatesDir(home string) string {
	return filepath.Join(home, XcodeTemplatesRel, FileTemplatesDir)
}

// DestinationDir returns the directory templates are installed into
func (p *paths) DestinationDir() string {
	return p.destination
}

// ResolveSource makes a template source absolute. ~ is expanded and
// relative paths are joined to WorkDir.
func (p *paths) ResolveSource(source string) string {
	source = expandHomeWith(p.homeDir, source)
	if filepath.IsAbs(source) {
		return filepath.Clean(source)
	}
	return filepath.Join(p.workDir, source)
}

// GetHomeDirectory returns the user's home directory with proper error handling
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil && homeDir != "" {
		return homeDir, nil
	}
	if home := os.Getenv(EnvHome); home != "" {
		return home, nil
	}
	if xdg.Home != "" {
		return xdg.Home, nil
	}
	if err == nil {
		return "", errors.New(errors.ErrHomeDir, "home directory is not set")
	}
	return "", errors.Wrap(err, errors.ErrHomeDir, "failed to get home directory")
}

func expandHomeWith(homeDir, path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if len(path) == 1 {
		return homeDir
	}
	// Handle both ~/ and ~\
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}
	// ~something (not the user's home)
	return path
}

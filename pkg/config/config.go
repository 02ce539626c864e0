package config

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	gotoml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/xctinstall/pkg/errors"
)

const (
	// ProjectConfigFile is looked up in the working directory
	ProjectConfigFile = ".xctinstall.toml"

	// EnvPrefix prefixes environment overrides, e.g. XCTINSTALL_GROUP
	EnvPrefix = "XCTINSTALL_"
)

// Config is the effective installer configuration
type Config struct {
	Group        string   `koanf:"group" toml:"group"`
	MetadataFile string   `koanf:"metadata_file" toml:"metadata_file"`
	Destination  string   `koanf:"destination" toml:"destination"`
	Templates    []string `koanf:"templates" toml:"templates"`

	// Source is the project file that was loaded, if any
	Source string `koanf:"-" toml:"-"`
}

// LoadOptions controls where Load looks for a project file
type LoadOptions struct {
	// ConfigFile is an explicit project file. It must exist.
	ConfigFile string

	// WorkDir is searched for ProjectConfigFile when ConfigFile is empty
	WorkDir string
}

// Load builds the effective configuration
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Project file
	source, err := findProjectFile(opts)
	if err != nil {
		return nil, err
	}
	if source != "" {
		if err := k.Load(file.Provider(source), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", source)
		}
	}

	// 3. Environment. Keys are flat, so only the prefix is stripped.
	err = k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	cfg.Source = source

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func findProjectFile(opts LoadOptions) (string, error) {
	if opts.ConfigFile != "" {
		if _, err := os.Stat(opts.ConfigFile); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s", opts.ConfigFile).
				WithDetail("path", opts.ConfigFile)
		}
		return opts.ConfigFile, nil
	}

	path := filepath.Join(opts.WorkDir, ProjectConfigFile)
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return path, nil
	case stderrors.Is(err, fs.ErrNotExist):
		return "", nil
	default:
		return "", errors.Wrapf(err, errors.ErrConfigLoad, "failed to stat %s", path)
	}
}

// Validate checks invariants the installer relies on
func (c *Config) Validate() error {
	if c.Group == "" && c.Destination == "" {
		return errors.New(errors.ErrConfigValid, "either group or destination must be set")
	}
	if c.MetadataFile == "" || strings.ContainsAny(c.MetadataFile, `/\`) {
		return errors.Newf(errors.ErrConfigValid, "metadata_file must be a plain file name, got %q", c.MetadataFile)
	}

	// Two sources with the same directory name would install over each other
	seen := make(map[string]string, len(c.Templates))
	for i, tmpl := range c.Templates {
		tmpl = strings.TrimSpace(tmpl)
		if tmpl == "" {
			return errors.Newf(errors.ErrConfigValid, "templates[%d] is empty", i)
		}
		c.Templates[i] = tmpl

		name := filepath.Base(tmpl)
		if prev, dup := seen[name]; dup {
			return errors.Newf(errors.ErrConfigValid, "templates %q and %q both install as %q", prev, tmpl, name).
				WithDetail("template", name)
		}
		seen[name] = tmpl
	}

	return nil
}

// Marshal renders the configuration as TOML
func (c *Config) Marshal() ([]byte, error) {
	return gotoml.Marshal(c)
}

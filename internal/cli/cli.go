package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/xctinstall/internal/version"
	"github.com/arthur-debert/xctinstall/pkg/config"
	"github.com/arthur-debert/xctinstall/pkg/errors"
	"github.com/arthur-debert/xctinstall/pkg/filesystem"
	"github.com/arthur-debert/xctinstall/pkg/installer"
	"github.com/arthur-debert/xctinstall/pkg/logging"
	"github.com/arthur-debert/xctinstall/pkg/output"
	"github.com/arthur-debert/xctinstall/pkg/paths"
)

// globalOptions holds the persistent flags shared by every command
type globalOptions struct {
	verbosity  int
	dryRun     bool
	configFile string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "xctinstall",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		Args:    cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, opts)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&opts.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", MsgFlagConfig)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newStatusCmd(opts))
	rootCmd.AddCommand(newGenConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command. A failure is logged with its error code
// and details before being returned for the caller to print.
func Execute(ctx context.Context) error {
	err := NewRootCmd().ExecuteContext(ctx)
	if err != nil {
		logFailure(err)
	}
	return err
}

func logFailure(err error) {
	log.Debug().
		Str("code", string(errors.CodeOf(err))).
		Fields(errors.DetailsOf(err)).
		Err(err).
		Msg("Command failed")
}

// session is everything a command needs once configuration is resolved
type session struct {
	cfg   *config.Config
	paths paths.Paths
}

func loadSession(opts *globalOptions) (*session, error) {
	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf(MsgErrWorkDir, err)
	}

	cfg, err := config.Load(config.LoadOptions{
		ConfigFile: opts.configFile,
		WorkDir:    workDir,
	})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}

	p, err := paths.New(paths.Options{
		Group:       cfg.Group,
		Destination: cfg.Destination,
		WorkDir:     workDir,
	})
	if err != nil {
		return nil, fmt.Errorf(MsgErrInitPaths, err)
	}

	log.Debug().
		Str("configFile", cfg.Source).
		Str("destination", p.DestinationDir()).
		Strs("templates", cfg.Templates).
		Msg("Configuration loaded")

	return &session{cfg: cfg, paths: p}, nil
}

func (s *session) installer(printer *output.Printer, dryRun bool) *installer.Installer {
	return installer.New(installer.Options{
		FS:           filesystem.NewOS(),
		Destination:  s.paths.DestinationDir(),
		MetadataFile: s.cfg.MetadataFile,
		Templates:    installer.ResolveTemplates(s.paths, s.cfg.Templates),
		Printer:      printer,
		DryRun:       dryRun,
	})
}

// newPrinter styles output only when the command writes to a colour terminal
func newPrinter(w io.Writer) *output.Printer {
	if f, ok := w.(*os.File); ok {
		return output.NewForFile(f)
	}
	return output.New(w, false)
}

func runInstall(cmd *cobra.Command, opts *globalOptions) error {
	s, err := loadSession(opts)
	if err != nil {
		return err
	}

	printer := newPrinter(cmd.OutOrStdout())
	report, err := s.installer(printer, opts.dryRun).InstallAll(cmd.Context())
	if err != nil {
		return err
	}

	log.Info().
		Int("installed", report.Count(installer.ActionInstall)).
		Int("updated", report.Count(installer.ActionUpdate)).
		Int("upToDate", report.Count(installer.ActionUpToDate)).
		Int("missing", report.Count(installer.ActionMissing)).
		Bool("changed", report.Changed()).
		Msg("Install finished")

	if report.DryRun {
		printer.DryRunNotice()
	}
	return nil
}

func newStatusCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: MsgStatusShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(opts)
			if err != nil {
				return err
			}

			printer := newPrinter(cmd.OutOrStdout())
			inst := s.installer(printer, true)
			outcomes, err := inst.Plan(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([]output.StatusRow, 0, len(outcomes))
			for _, o := range outcomes {
				rows = append(rows, output.StatusRow{
					Name:             o.Template.Name(),
					SourceVersion:    o.SourceVersionString(),
					InstalledVersion: o.InstalledVersionString(),
					State:            string(o.Action),
				})
			}
			printer.Status(inst.Destination(), rows)
			return nil
		},
	}
}

func newGenConfigCmd(opts *globalOptions) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:   "genconfig",
		Short: MsgGenConfigShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				_, err := fmt.Fprint(cmd.OutOrStdout(), config.GetDefaultsContent())
				return err
			}

			workDir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf(MsgErrWorkDir, err)
			}
			cfg, err := config.Load(config.LoadOptions{
				ConfigFile: opts.configFile,
				WorkDir:    workDir,
			})
			if err != nil {
				return fmt.Errorf(MsgErrLoadConfig, err)
			}

			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.Info())
		},
	}
}

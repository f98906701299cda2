package cli

import (
	"fmt"
	"strings"

	"github.com/IYouKnow/dirsize/internal/dirsize"
	"github.com/IYouKnow/dirsize/internal/fsstat"
	"github.com/IYouKnow/dirsize/pkg/logger"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// version is set via ldflags.
var version = "dev"

// app carries what a single invocation needs.
type app struct {
	fsys      afero.Fs
	v         *viper.Viper
	cfgFile   string
	newLogger func(debug bool) (*zap.Logger, error)
}

func newApp() *app {
	return &app{
		fsys:      afero.NewOsFs(),
		v:         viper.New(),
		newLogger: logger.New,
	}
}

// Execute executes the root command.
func Execute() error {
	return newApp().rootCommand().Execute()
}

func (a *app) rootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dirsize <path>",
		Short: "Calculate the total size of a directory and its subdirectories",
		Long: `dirsize walks a directory tree, sums the sizes of its files and prints the
total in the largest fitting unit (B, KB, MB, GB or TB).

With --gitignore, paths matched by the .gitignore at the root are left out.`,
		Version:       version,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, args[0])
		},
	}

	cmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.dirsize.yaml)")
	cmd.Flags().BoolP("gitignore", "g", false, "Ignore paths in .gitignore (if it exists)")
	cmd.Flags().Bool("debug", false, "Enable debug logging")

	// Bind flags to viper; DIRSIZE_GITIGNORE and DIRSIZE_DEBUG are read from the environment.
	a.v.BindPFlag("gitignore", cmd.Flags().Lookup("gitignore"))
	a.v.BindPFlag("debug", cmd.Flags().Lookup("debug"))
	a.v.SetEnvPrefix("DIRSIZE")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	return cmd
}

func (a *app) run(cmd *cobra.Command, path string) error {
	if err := a.initConfig(); err != nil {
		return err
	}

	log, err := a.newLogger(a.v.GetBool("debug"))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	if used := a.v.ConfigFileUsed(); used != "" {
		log.Debug("using config file", zap.String("path", used))
	}

	report, err := dirsize.Run(a.fsys, dirsize.Options{
		Path:      path,
		GitIgnore: a.v.GetBool("gitignore"),
		Logger:    log,
	})
	if err != nil {
		return err
	}

	for _, w := range report.Warnings {
		log.Warn("entry skipped",
			zap.String("op", w.Op),
			zap.String("path", w.Path),
			zap.Error(w.Err),
		)
	}

	fields := []zap.Field{
		zap.String("root", report.Root),
		zap.Uint64("bytes", report.Bytes),
		zap.Int("files", report.Files),
		zap.Int("dirs", report.Dirs),
		zap.Int("ignored", report.Ignored),
	}
	if free, used, err := fsstat.Usage(report.Root); err == nil {
		fields = append(fields,
			zap.Uint64("fs_free_bytes", free),
			zap.Uint64("fs_used_bytes", used),
		)
	}
	log.Debug("walk finished", fields...)

	fmt.Fprintln(cmd.OutOrStdout(), report)
	return nil
}

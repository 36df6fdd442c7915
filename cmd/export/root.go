package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"folio/internal/config"
	"folio/internal/content"
	"folio/internal/export"
	applog "folio/internal/log"
	"folio/internal/resume"
	"folio/internal/views/theme"
	"folio/web"
)

type exportOptions struct {
	content  string
	out      string
	mode     string
	resume   string
	logLevel string
}

var loadConfigFunc = config.Load

func newRootCmd() *cobra.Command {
	opts := &exportOptions{}

	cmd := &cobra.Command{
		Use:           "export",
		Short:         "Render the portfolio into a directory for static hosting",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runExport(ctx, cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.content, "content", "", "Content document (.json, .yaml, .toml); defaults to CONTENT_PATH")
	cmd.Flags().StringVar(&opts.out, "out", "public", "Output directory")
	cmd.Flags().StringVar(&opts.mode, "mode", "", "Appearance mode: light, dark or system; defaults to APPEARANCE_DEFAULT")
	cmd.Flags().StringVar(&opts.resume, "resume", "", "Résumé PDF to publish; defaults to RESUME_FILE")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level; defaults to LOG_LEVEL")

	return cmd
}

func runExport(ctx context.Context, cmd *cobra.Command, opts *exportOptions) error {
	cfg, err := loadConfigFunc()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	level := opts.logLevel
	if level == "" {
		level = cfg.Logging.Level
	}
	if err := applog.SetLevel(level); err != nil {
		return err
	}

	path := opts.content
	if path == "" {
		path = cfg.Content.Path
	}
	portfolio, err := content.Load(path)
	if err != nil {
		return err
	}
	for _, issue := range content.Validate(portfolio) {
		applog.Warn(ctx, "content issue", "path", path, "issue", issue.String())
	}

	modeName := opts.mode
	if modeName == "" {
		modeName = cfg.Appearance.Default
	}
	mode, ok := theme.Parse(modeName)
	if !ok {
		return fmt.Errorf("unknown appearance mode %q", modeName)
	}

	resumePath := opts.resume
	if resumePath == "" {
		resumePath = cfg.Resume.File
	}
	doc, err := resume.Load(resumePath)
	if err != nil && !errors.Is(err, resume.ErrNotFound) {
		return err
	}
	if err != nil {
		applog.Debug(ctx, "no resume to publish", "error", err)
	}

	res, err := export.Site(ctx, export.Options{
		Portfolio: portfolio,
		Out:       opts.out,
		Mode:      mode,
		Timing:    cfg.Timing,
		Assets:    web.Static(),
		Resume:    doc,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d files to %s\n", len(res.Files), opts.out)
	return nil
}

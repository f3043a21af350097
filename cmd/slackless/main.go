// slackless archives a Slack channel's history to a CSV and a PDF from
// the command line, without waiting for an in-channel mention.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/virtualcourier/slackless/internal/archive"
	slackclient "github.com/virtualcourier/slackless/internal/slack"
)

var version = "dev"

var (
	outputDir   string
	dumpJSON    bool
	postToSlack bool
	keepFiles   bool
)

var rootCmd = &cobra.Command{
	Use:   "slackless <channel_name>",
	Short: "Archive a Slack channel's history to CSV and PDF",
	Long: `slackless creates a CSV and PDF file of a given channel's message history.
Those files can be posted back to the channel if requested.

The channel must have invited the @Virtual Courier Archive app.
Credentials are read from VC_BOT_TOKEN (environment or .env file).`,
	Args:         cobra.ExactArgs(1),
	RunE:         runArchive,
	SilenceUsage: true,
}

func init() {
	// Load .env if present (for VC_BOT_TOKEN)
	_ = godotenv.Load()

	rootCmd.Version = version
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", ".", "directory where the output folder is saved")
	rootCmd.Flags().BoolVar(&dumpJSON, "json", false, "also write the raw unparsed history as JSON")
	rootCmd.Flags().BoolVar(&postToSlack, "post", false, "send the CSV and PDF to the channel")
	rootCmd.Flags().BoolVar(&keepFiles, "keep", false, "keep images downloaded from the channel in the output folder")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runArchive(cmd *cobra.Command, args []string) error {
	token := os.Getenv("VC_BOT_TOKEN")
	if token == "" {
		return fmt.Errorf("VC_BOT_TOKEN is not set; add it to the environment or a .env file")
	}

	logger := newLogger(os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	client, err := slackclient.NewClient(slackclient.Config{
		Token:  token,
		Cookie: os.Getenv("SLACK_COOKIE"),
	}, logger)
	if err != nil {
		return err
	}

	root, err := filepath.Abs(outputDir)
	if err != nil {
		return fmt.Errorf("failed to resolve output directory: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	arch, err := archive.New(ctx, client, archive.Config{
		ChannelName: args[0],
		OutputRoot:  root,
		Logger:      logger,
	})
	if err != nil {
		return slackclient.WrapError(logger, "archive", err)
	}

	if err := arch.DownloadAttachments(ctx); err != nil {
		return err
	}

	if dumpJSON {
		if _, err := arch.WriteRawJSON(); err != nil {
			return err
		}
	}

	csvPath, err := arch.WriteCSV()
	if err != nil {
		return err
	}
	pdfPath, err := arch.WritePDF()
	if err != nil {
		return err
	}

	if postToSlack {
		if err := arch.Publish(ctx, archive.KindCSV); err != nil {
			return err
		}
		if err := arch.Publish(ctx, archive.KindPDF); err != nil {
			return err
		}
	}

	if !keepFiles {
		if err := arch.Cleanup(); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Archived %d messages from #%s\n  %s\n  %s\n",
		len(arch.Messages()), arch.Channel().Name, csvPath, pdfPath)
	return nil
}

func newLogger(level string) *zap.Logger {
	logLevel := zapcore.InfoLevel
	switch level {
	case "debug":
		logLevel = zapcore.DebugLevel
	case "warn":
		logLevel = zapcore.WarnLevel
	case "error":
		logLevel = zapcore.ErrorLevel
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stderr),
		logLevel,
	)
	return zap.New(core)
}

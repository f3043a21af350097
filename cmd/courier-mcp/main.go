// courier-mcp exposes the Virtual Courier Archive pipeline as an MCP
// tool over STDIO.
package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	archivemcp "github.com/virtualcourier/slackless/internal/mcp"
	slackclient "github.com/virtualcourier/slackless/internal/slack"
)

func main() {
	_ = godotenv.Load()

	logger := newLogger(os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	client, err := slackclient.NewClient(slackclient.Config{
		Token:  os.Getenv("VC_BOT_TOKEN"),
		Cookie: os.Getenv("SLACK_COOKIE"),
	}, logger)
	if err != nil {
		log.Fatalf("Failed to create Slack client: %v", err)
	}

	outputRoot := os.Getenv("VC_OUTPUT_DIR")
	if outputRoot == "" {
		outputRoot, err = os.Getwd()
		if err != nil {
			log.Fatalf("Failed to determine working directory: %v", err)
		}
	}

	handler := archivemcp.NewArchiver(client, outputRoot, logger)
	server := archivemcp.CreateServer(logger, handler)

	if err := server.Run(context.Background(), &mcpsdk.StdioTransport{}); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}

// newLogger writes JSON logs to stderr only; stdout carries the MCP
// transport.
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

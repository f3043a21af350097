// courier is the long-lived Virtual Courier Archive process. It listens
// for in-channel mentions over socket mode and posts a CSV and PDF of
// the channel history in response.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/virtualcourier/slackless/internal/listener"
	slackclient "github.com/virtualcourier/slackless/internal/slack"
)

var version = "dev"

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Println(version)
		return
	}

	_ = godotenv.Load()

	cfg := createConfig()
	logger := initLogger(os.Getenv("LOG_LEVEL"), logDir())
	defer logger.Sync()

	client, err := slackclient.NewClient(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to create Slack client", zap.Error(err))
	}

	outputRoot := os.Getenv("VC_OUTPUT_DIR")
	if outputRoot == "" {
		outputRoot, err = os.Getwd()
		if err != nil {
			logger.Fatal("Failed to determine working directory", zap.Error(err))
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	l := listener.New(client, listener.Config{OutputRoot: outputRoot}, logger)
	if err := l.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Fatal("Listener error", zap.Error(err))
	}
}

func createConfig() slackclient.Config {
	return slackclient.Config{
		Token:    os.Getenv("VC_BOT_TOKEN"),
		AppToken: os.Getenv("VC_CONNECT_TOKEN"),
		Cookie:   os.Getenv("SLACK_COOKIE"),
	}
}

func logDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}
	return filepath.Join(homeDir, ".virtual-courier", "logs")
}

func initLogger(level string, logDir string) *zap.Logger {
	logLevel := interpretLogLevel(level)

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.Fatalf("Failed to create log directory: %v", err)
	}
	logFileName := fmt.Sprintf("courier-%s.log", time.Now().Format("2006-01-02"))
	logFilePath := filepath.Join(logDir, logFileName)
	logFile, err := os.OpenFile(logFilePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}

	// Create cores for stderr and file
	stderrCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stderr),
		logLevel,
	)

	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logFile),
		logLevel,
	)

	// Combine both cores
	core := zapcore.NewTee(stderrCore, fileCore)

	return zap.New(core, zap.AddCaller())
}

func interpretLogLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

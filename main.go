package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/dpramesti/habitd/cmd"
	"github.com/dpramesti/habitd/internal/logger"
)

func main() {
	level := slog.LevelInfo
	if strings.EqualFold(os.Getenv("HABITD_LOG_LEVEL"), "debug") {
		level = slog.LevelDebug
	}
	if strings.EqualFold(os.Getenv("HABITD_LOG_FORMAT"), "json") {
		logger.InitJSON(level)
	} else {
		logger.Init(level)
	}

	cmd.Execute()
}

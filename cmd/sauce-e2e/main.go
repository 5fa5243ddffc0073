package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	internalcli "github.com/storefront-qa/sauce-e2e/internal/cli"
	"github.com/storefront-qa/sauce-e2e/internal/config"
	"github.com/storefront-qa/sauce-e2e/internal/logging"
)

var version = "0.1.0"

func main() {
	// Load environment variables from .env file
	loaded, err := config.LoadDotEnv()

	logger := logging.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	defer logging.Sync(logger)
	zap.ReplaceGlobals(logger)

	if err != nil {
		logger.Warn("could not read .env file, using environment variables", zap.Error(err))
	} else if !loaded {
		logger.Debug(".env file not found, using environment variables")
	}

	app := &cli.App{
		Name:     "sauce-e2e",
		Usage:    "End-to-end suite tooling for the Swag Labs storefront",
		Version:  version,
		Commands: internalcli.Commands(os.Getenv, logger),
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logging.Sync(logger)
		os.Exit(1)
	}
}

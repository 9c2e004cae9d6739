// Package main is the entry point for the cheeseshop index API server.
package main

import (
	"os"

	"github.com/cheeseshop/cheeseshop/cmd/cheeseshop-api/app"
	"github.com/cheeseshop/cheeseshop/pkg/logger"
)

func main() {
	logger.Initialize()

	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

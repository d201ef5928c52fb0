package main

import (
	"os"
	"parcels/internal/app"

	"github.com/sirupsen/logrus"
)

// @title Parcels API
// @version 1.0
// @description Package registration, delivery cost calculation and delivery company assignment.
// @BasePath /api/v1
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Error("Application stopped with error")
		os.Exit(1)
	}
}

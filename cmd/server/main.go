package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/InoxxAIsource/ai-dream-economy-protocol/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Fatal("server error")
	}
	_ = os.Stdout.Sync()
}

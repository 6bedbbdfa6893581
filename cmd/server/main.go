package main

import (
	"github.com/rotodiag/bearingkg/internal/server"
	"github.com/rotodiag/bearingkg/internal/util"
	"github.com/rotodiag/bearingkg/pkg/logger"
	"github.com/rotodiag/bearingkg/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
	})
	logger.Init(consoleLogger)

	server.Init()
}

package main

import (
	"github.com/OFFIS-RIT/chatlens/internal/server"
	"github.com/OFFIS-RIT/chatlens/internal/util"
	"github.com/OFFIS-RIT/chatlens/pkg/logger"
	"github.com/OFFIS-RIT/chatlens/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: util.GetEnvBool("DEBUG", false),
		JSON:  util.GetEnv("LOG_FORMAT") == "json",
	})
	logger.Init(consoleLogger)

	server.Init()
}

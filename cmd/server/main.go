package main

import (
	"github.com/semagraph/cognet/internal/server"
	"github.com/semagraph/cognet/internal/util"
	"github.com/semagraph/cognet/pkg/logger"
	"github.com/semagraph/cognet/pkg/logger/console"

	_ "github.com/lib/pq"
)

func main() {
	util.LoadEnv()

	consoleLogger := console.New(console.Params{
		Level: util.GetEnv("LOG_LEVEL"),
		Debug: util.GetEnvBool("DEBUG", false),
	})
	logger.Init(consoleLogger)

	server.Init()
}

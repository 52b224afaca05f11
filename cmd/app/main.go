package main

import (
	"ruang/config"
	"ruang/di"
	"ruang/shared/logger"
)

// @title Ruang API
// @version 1.0
// @description Room booking management service.
// @BasePath /
// @securityDefinitions.apikey SessionCookie
// @in header
// @name Cookie
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}

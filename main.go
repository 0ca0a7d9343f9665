package main

import (
	"give-hub/cli"
	"give-hub/common/config"
	"give-hub/common/logger"
	"give-hub/common/storage"
	"give-hub/controller"
	"give-hub/middleware"
	"give-hub/payment"
	"give-hub/router"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

func main() {
	cli.InitCli()
	config.InitConf()

	logger.SetupLogger()
	logger.SysLog("Give Hub " + config.Version + " started")

	store, err := storage.InitStorage()
	if err != nil {
		logger.FatalLog("failed to initialize reference storage: " + err.Error())
	}

	dispatcher := payment.NewDispatcher(config.LoadPaymentConfig(), store)
	donation := controller.NewDonationController(dispatcher)

	initHttpServer(donation)
}

func initHttpServer(donation *controller.DonationController) {
	if viper.GetString("gin_mode") != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	server := gin.New()
	server.Use(gin.Recovery())
	server.Use(middleware.RequestId())

	router.SetRouter(server, donation)
	port := viper.GetString("port")

	if err := server.Run(":" + port); err != nil {
		logger.FatalLog("failed to start HTTP server: " + err.Error())
	}
}

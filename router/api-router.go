package router

import (
	"give-hub/controller"
	"give-hub/middleware"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetRouter(server *gin.Engine, donation *controller.DonationController) {
	server.GET("/metrics", middleware.MetricsWithBasicAuth(), gin.WrapH(promhttp.Handler()))

	api := server.Group("/api")
	api.Use(middleware.CORS())
	api.Use(middleware.NoCache())
	{
		api.GET("/status", controller.Status)

		donationRoute := api.Group("/donation")
		{
			donationRoute.POST("", donation.PostDonation)
			// GET is kept alongside POST because the card-token processor
			// calls the templated notification URL itself.
			donationRoute.GET("/capture/:payment_id", donation.CaptureDonation)
			donationRoute.POST("/capture/:payment_id", donation.CaptureDonation)
			donationRoute.GET("/state/:reference", donation.DonationState)
		}
	}
}

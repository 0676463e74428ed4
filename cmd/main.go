package main

import (
	"os"

	"backend/config"
	"backend/routes"
	"backend/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()
	utils.InitSES()

	r := routes.SetupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}

package main

import (
	"github.com/emilycheera/nourish/config"
	"github.com/emilycheera/nourish/routes"
	"github.com/emilycheera/nourish/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()
	utils.InitSES()
	r := routes.SetupRouter()
	r.Run(":8080")
}

package main

import (
	"log"
	"os"

	"github.com/tournabay/seedbot/app"
	"github.com/tournabay/seedbot/constants"
	"github.com/tournabay/seedbot/health"
)

func main() {
	// Railway 헬스체크를 위한 HTTP 서버 시작
	port := os.Getenv("PORT")
	if port == "" {
		port = constants.DefaultHTTPPort
	}
	health.StartHealthServer(port)

	application, err := app.New()
	if err != nil {
		log.Fatal(err)
	}

	if err := application.Run(); err != nil {
		log.Fatal(err)
	}
}

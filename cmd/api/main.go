package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gabrielmlima/quizhub/internal/container"
	"github.com/gabrielmlima/quizhub/internal/router"
)

func main() {
	c := container.New()

	handler := router.New(router.RouterConfig{
		UserHandler:       c.UserContainer.Handler,
		CategoryHandler:   c.CategoryContainer.Handler,
		QuizHandler:       c.QuizContainer.Handler,
		SubmissionHandler: c.SubmissionContainer.Handler,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("listening on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

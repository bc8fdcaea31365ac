package main

import (
	"log"
	"net/http"

	"github.com/learnhub-dev/learnhub/internal/config"
	"github.com/learnhub-dev/learnhub/internal/container"
	"github.com/learnhub-dev/learnhub/internal/router"
)

func main() {
	c := container.New()

	handler := router.New(router.RouterConfig{
		UserHandler:       c.UserContainer.Handler,
		CourseHandler:     c.CourseContainer.Handler,
		LessonHandler:     c.LessonContainer.Handler,
		QuizHandler:       c.QuizContainer.Handler,
		EnrollmentHandler: c.EnrollmentContainer.Handler,
		ReportHandler:     c.ReportContainer.Handler,
		ChatHandler:       c.ChatContainer.Handler,
		UserVerifier:      c.UserContainer.Repo,
	})

	addr := config.Get().HTTPAddr
	log.Printf("listening on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

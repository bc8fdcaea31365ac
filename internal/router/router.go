package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/learnhub-dev/learnhub/internal/auth"
	"github.com/learnhub-dev/learnhub/internal/chat"
	"github.com/learnhub-dev/learnhub/internal/course"
	"github.com/learnhub-dev/learnhub/internal/enrollment"
	"github.com/learnhub-dev/learnhub/internal/lesson"
	"github.com/learnhub-dev/learnhub/internal/middlewares"
	"github.com/learnhub-dev/learnhub/internal/quiz"
	"github.com/learnhub-dev/learnhub/internal/report"
	"github.com/learnhub-dev/learnhub/internal/user"
)

type RouterConfig struct {
	UserHandler       *user.Handler
	CourseHandler     *course.Handler
	LessonHandler     *lesson.Handler
	QuizHandler       *quiz.Handler
	EnrollmentHandler *enrollment.Handler
	ReportHandler     *report.Handler
	ChatHandler       *chat.Handler
	UserVerifier      auth.UserVerifier
}

func New(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CorsMiddleware)

	requireAuth := auth.Middleware(cfg.UserVerifier)

	r.Mount("/auth", user.AuthRoutes(cfg.UserHandler))

	// The course tree carries its own public/authenticated split.
	r.Mount("/courses", course.Routes(cfg.CourseHandler, lesson.Routes(cfg.LessonHandler), requireAuth))

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)

		r.Mount("/quizzes", quiz.Routes(cfg.QuizHandler))
		r.Mount("/enrollments", enrollment.Routes(cfg.EnrollmentHandler))
		r.Mount("/reports", report.Routes(cfg.ReportHandler))
		r.Mount("/chats", chat.Routes(cfg.ChatHandler))

		r.Route("/users", func(r chi.Router) {
			r.Mount("/dashboard", report.DashboardRoutes(cfg.ReportHandler))
			r.Mount("/", user.Routes(cfg.UserHandler))
		})
	})
	return r
}

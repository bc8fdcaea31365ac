package container

import (
	"context"
	"log"

	"github.com/learnhub-dev/learnhub/internal/auth"
	"github.com/learnhub-dev/learnhub/internal/authz"
	"github.com/learnhub-dev/learnhub/internal/chat"
	"github.com/learnhub-dev/learnhub/internal/config"
	"github.com/learnhub-dev/learnhub/internal/course"
	"github.com/learnhub-dev/learnhub/internal/enrollment"
	"github.com/learnhub-dev/learnhub/internal/lesson"
	"github.com/learnhub-dev/learnhub/internal/mailer"
	"github.com/learnhub-dev/learnhub/internal/media"
	"github.com/learnhub-dev/learnhub/internal/quiz"
	"github.com/learnhub-dev/learnhub/internal/report"
	"github.com/learnhub-dev/learnhub/internal/user"
)

type Container struct {
	UserContainer       *user.UserContainer
	CourseContainer     *course.CourseContainer
	LessonContainer     *lesson.LessonContainer
	QuizContainer       *quiz.QuizContainer
	EnrollmentContainer *enrollment.EnrollmentContainer
	ReportContainer     *report.ReportContainer
	ChatContainer       *chat.ChatContainer
}

func New() *Container {
	config.Init()
	config.InitLogger()
	auth.Init()

	cfg := config.Get()
	if err := config.Connect(context.Background(), cfg.DatabaseDSN); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}
	if err := config.DB.AutoMigrate(
		&user.User{},
		&course.Course{},
		&lesson.Lesson{},
		&quiz.Quiz{},
		&quiz.Question{},
		&enrollment.Enrollment{},
		&enrollment.QuizScore{},
		&chat.Chat{},
		&chat.Message{},
	); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	uploader := media.NewHTTPUploader(media.Config{
		BaseURL: cfg.MediaBaseURL,
		APIKey:  cfg.MediaAPIKey,
		Timeout: cfg.MediaTimeout,
		Retries: cfg.MediaRetries,
	})
	mail := mailer.NewSMTPMailer(mailer.Config{
		Addr:     cfg.SMTPAddr,
		From:     cfg.SMTPFrom,
		User:     cfg.SMTPUser,
		Password: cfg.SMTPPassword,
	})

	// Repositories shared with the authorization layer are built first.
	courseRepo := course.NewRepository(config.DB)
	enrollmentRepo := enrollment.NewRepository(config.DB)
	lessonRepo := lesson.NewRepository(config.DB)
	quizRepo := quiz.NewRepository(config.DB)
	access := authz.NewCourseAccess(courseRepo, enrollmentRepo)

	userContainer := user.NewUserContainer(config.DB, uploader, mail)
	courseContainer := course.NewCourseContainer(courseRepo, uploader, access, lessonRepo)
	lessonContainer := lesson.NewLessonContainer(lessonRepo, courseRepo, uploader, access)
	quizContainer := quiz.NewQuizContainer(quizRepo, courseRepo, access)
	enrollmentContainer := enrollment.NewEnrollmentContainer(enrollmentRepo, courseRepo, quizRepo)
	reportContainer := report.NewReportContainer(config.DB)

	chatContainer, err := chat.NewChatContainer(context.Background(), config.DB, uploader)
	if err != nil {
		log.Fatalf("failed to create chat container: %v", err)
	}

	return &Container{
		UserContainer:       userContainer,
		CourseContainer:     courseContainer,
		LessonContainer:     lessonContainer,
		QuizContainer:       quizContainer,
		EnrollmentContainer: enrollmentContainer,
		ReportContainer:     reportContainer,
		ChatContainer:       chatContainer,
	}
}

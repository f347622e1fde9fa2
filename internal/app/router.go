package app

import (
	"madrasa_backend/internal/config"
	"madrasa_backend/internal/middleware"
	"madrasa_backend/internal/model"
	"madrasa_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// Public routes: catalog browsing and account creation.
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		public.GET("/courses", c.course.List)
		public.GET("/courses/categories", c.course.Categories)
		public.GET("/courses/:id", c.course.Get)
		public.GET("/courses/:id/reviews", c.course.ListReviews)
		public.GET("/groups", c.community.ListGroups)
	}

	// Authenticated routes.
	auth := router.Group("/api")
	auth.Use(middleware.AuthMiddleware(), middleware.ActivityMiddleware(repos.user))
	{
		auth.GET("/me", c.auth.Me)
		auth.PUT("/me", c.auth.UpdateProfile)
		auth.GET("/dashboard", c.learning.Dashboard)

		// Enrollment and progress.
		auth.POST("/courses/:id/enroll", c.learning.Enroll)
		auth.DELETE("/courses/:id/enroll", c.learning.Unenroll)
		auth.GET("/courses/:id/progress", c.learning.GetProgress)
		auth.POST("/courses/:id/progress/complete", c.learning.MarkComplete)

		// Video player session.
		auth.POST("/courses/:id/player", c.learning.OpenPlayer)
		auth.GET("/courses/:id/player", c.learning.PollPlayer)
		auth.DELETE("/courses/:id/player", c.learning.ClosePlayer)
		auth.POST("/courses/:id/player/select", c.learning.SelectLesson)
		auth.POST("/courses/:id/player/preview", c.learning.PreviewPlayer)
		auth.POST("/courses/:id/player/complete", c.learning.CompleteCurrent)

		// Quizzes.
		auth.GET("/sections/:sectionId/quiz", c.quiz.GetSectionQuiz)
		auth.POST("/quizzes/:quizId/submit", c.quiz.Submit)
		auth.GET("/quizzes/:quizId/attempts", c.quiz.Attempts)

		// Certificates.
		auth.GET("/certificates", c.certificate.List)
		auth.GET("/certificates/:id", c.certificate.Get)

		// Reviews.
		auth.POST("/courses/:id/reviews", c.course.AddReview)

		// Study groups.
		auth.POST("/groups", c.community.CreateGroup)
		auth.GET("/groups/mine", c.community.MyGroups)
		auth.POST("/groups/:id/join", c.community.JoinGroup)
		auth.POST("/groups/:id/leave", c.community.LeaveGroup)

		// Live classroom.
		auth.GET("/courses/:id/polls", c.live.ListPolls)
		auth.POST("/polls/:pollId/vote", c.live.Vote)
		auth.GET("/courses/:id/questions", c.live.ListQuestions)
		auth.POST("/courses/:id/questions", c.live.AskQuestion)
		auth.POST("/questions/:id/upvote", c.live.UpvoteQuestion)
	}

	// Instructor routes: authoring and classroom management.
	instructor := router.Group("/api")
	instructor.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(model.Instructor))
	{
		instructor.POST("/courses", c.course.Create)
		instructor.PUT("/courses/:id", c.course.Update)
		instructor.DELETE("/courses/:id", c.course.Delete)
		instructor.GET("/courses/:id/roster", c.learning.Roster)

		instructor.POST("/courses/:id/sections", c.course.AddSection)
		instructor.PUT("/sections/:sectionId", c.course.UpdateSection)
		instructor.DELETE("/sections/:sectionId", c.course.DeleteSection)

		instructor.POST("/sections/:sectionId/subsections", c.course.AddSubsection)
		instructor.PUT("/subsections/:subsectionId", c.course.UpdateSubsection)
		instructor.DELETE("/subsections/:subsectionId", c.course.DeleteSubsection)

		instructor.POST("/sections/:sectionId/resources", c.course.UploadResource)
		instructor.DELETE("/resources/:id", c.course.DeleteResource)

		instructor.POST("/sections/:sectionId/quiz", c.quiz.CreateQuiz)
		instructor.DELETE("/quizzes/:quizId", c.quiz.DeleteQuiz)
		instructor.POST("/quizzes/:quizId/questions", c.quiz.AddQuestion)
		instructor.PUT("/quiz-questions/:id", c.quiz.UpdateQuestion)
		instructor.DELETE("/quiz-questions/:id", c.quiz.DeleteQuestion)

		instructor.POST("/courses/:id/polls", c.live.CreatePoll)
		instructor.POST("/polls/:pollId/close", c.live.ClosePoll)
		instructor.POST("/questions/:id/answer", c.live.AnswerQuestion)
	}
}

package http

import (
	"taskapp/internal/adapter/database/postgres"
	repository "taskapp/internal/adapter/database/postgres/repository"
	"taskapp/internal/adapter/http/handler"
	"taskapp/internal/core/service"
	"taskapp/pkg/config"
	"taskapp/pkg/tracing"
)

// NewPostgresContainer mirrors NewContainer over the pgx adapter; the
// rest of the app only sees the ports.
func NewPostgresContainer(db *postgres.DB, logger *config.AppLogger, metrics *tracing.AppMetrics) *Container {
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authSvc := service.NewAuthService(userRepo)
	taskSvc := service.NewTaskService(taskRepo)

	return &Container{
		UserRepo: userRepo,
		TaskRepo: taskRepo,

		AuthService: authSvc,
		TaskService: taskSvc,

		AuthHandler:   handler.NewAuthHandler(authSvc),
		TaskHandler:   handler.NewTaskHandler(taskSvc, logger, metrics),
		HealthHandler: handler.NewHealthHandler(),
	}
}

package http

import (
	"taskapp/internal/adapter/database/sqlite"
	repository "taskapp/internal/adapter/database/sqlite/repository"
	"taskapp/internal/adapter/http/handler"
	"taskapp/internal/core/port"
	"taskapp/internal/core/service"
	"taskapp/pkg/config"
	"taskapp/pkg/tracing"
)

type Container struct {
	UserRepo port.UserRepository
	TaskRepo port.TaskRepository

	AuthService port.AuthService
	TaskService port.TaskService

	AuthHandler   *handler.AuthHandler
	TaskHandler   *handler.TaskHandler
	HealthHandler *handler.HealthHandler
}

func NewContainer(db *sqlite.DB, logger *config.AppLogger, metrics *tracing.AppMetrics) *Container {
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

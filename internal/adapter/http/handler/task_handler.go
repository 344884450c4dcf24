package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	. "taskapp/internal/adapter/http/helper"
	"taskapp/internal/adapter/http/middleware"
	. "taskapp/internal/adapter/http/validation"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/model/response"
	"taskapp/internal/core/port"
	"taskapp/internal/core/util"
	"taskapp/pkg/config"
	"taskapp/pkg/tracing"
)

type TaskHandler struct {
	svc     port.TaskService
	logger  *config.AppLogger
	metrics *tracing.AppMetrics
}

func NewTaskHandler(svc port.TaskService, logger *config.AppLogger, metrics *tracing.AppMetrics) *TaskHandler {
	return &TaskHandler{
		svc:     svc,
		logger:  logger,
		metrics: metrics,
	}
}

func (t *TaskHandler) List(c *gin.Context) {
	ctx, span := tracing.CreateChildSpan(c.Request.Context(), "handler.task.List", []attribute.KeyValue{
		attribute.String("handler.method", c.Request.Method),
		attribute.String("handler.path", c.FullPath()),
	})

	defer span.End()

	userID := c.Param("user_id")

	filter := domain.ParseTaskFilter(c.Query("status"))

	span.SetAttributes(
		attribute.String("user.id", userID),
		attribute.String("task.filter", string(filter)),
	)

	tasks, err := t.svc.List(ctx, middleware.AuthUserID(c), userID, filter)

	if err != nil {
		tracing.AddSpanError(span, err)
		t.logError(c, err, "Failed to list tasks", userID)
		SendDomainError(c, err)
		return
	}

	t.recordOperation("list")

	c.JSON(http.StatusOK, response.NewTaskListResponse(tasks))
}

func (t *TaskHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Param("user_id")

	params, err := util.ParamsToMap[request.TaskCreateRequest](c)

	if err != nil {
		SendBadRequestError(c, "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendBadRequestError(c, FormatValidationErrors(err))
		return
	}

	task := domain.Task{
		Title:       params.Title,
		Description: params.Description,
	}

	saved, err := t.svc.Create(ctx, middleware.AuthUserID(c), userID, task)

	if err != nil {
		t.logError(c, err, "Failed to create task", userID)
		SendDomainError(c, err)
		return
	}

	t.recordOperation("create")

	c.JSON(http.StatusCreated, response.NewTaskResponse(saved))
}

func (t *TaskHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Param("user_id")

	taskID, ok := t.taskIDParam(c)

	if !ok {
		return
	}

	task, err := t.svc.Get(ctx, middleware.AuthUserID(c), userID, taskID)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.NewTaskResponse(task))
}

func (t *TaskHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Param("user_id")

	taskID, ok := t.taskIDParam(c)

	if !ok {
		return
	}

	params, err := util.ParamsToMap[request.TaskUpdateRequest](c)

	if err != nil {
		SendBadRequestError(c, "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendBadRequestError(c, FormatValidationErrors(err))
		return
	}

	patch := domain.TaskPatch{
		Title:       params.Title,
		Description: params.Description,
	}

	task, err := t.svc.Update(ctx, middleware.AuthUserID(c), userID, taskID, patch)

	if err != nil {
		t.logError(c, err, "Failed to update task", userID)
		SendDomainError(c, err)
		return
	}

	t.recordOperation("update")

	c.JSON(http.StatusOK, response.NewTaskResponse(task))
}

func (t *TaskHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Param("user_id")

	taskID, ok := t.taskIDParam(c)

	if !ok {
		return
	}

	if err := t.svc.Delete(ctx, middleware.AuthUserID(c), userID, taskID); err != nil {
		SendDomainError(c, err)
		return
	}

	t.recordOperation("delete")

	c.JSON(http.StatusOK, response.DeleteResponse{
		Message: "Task deleted successfully",
		ID:      taskID,
	})
}

func (t *TaskHandler) ToggleCompletion(c *gin.Context) {
	ctx := c.Request.Context()
	userID := c.Param("user_id")

	taskID, ok := t.taskIDParam(c)

	if !ok {
		return
	}

	task, err := t.svc.ToggleCompletion(ctx, middleware.AuthUserID(c), userID, taskID)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	t.recordOperation("toggle")

	c.JSON(http.StatusOK, response.NewTaskResponse(task))
}

func (t *TaskHandler) taskIDParam(c *gin.Context) (int, bool) {
	taskID, err := strconv.Atoi(c.Param("task_id"))

	if err != nil {
		SendBadRequestError(c, "Invalid task id")
		return 0, false
	}

	return taskID, true
}

func (t *TaskHandler) recordOperation(operation string) {
	if t.metrics != nil {
		t.metrics.RecordTaskOperation(operation)
	}
}

func (t *TaskHandler) logError(c *gin.Context, err error, msg string, userID string) {
	if t.logger == nil {
		return
	}

	t.logger.ErrorWithTrace(c.Request.Context(), msg,
		zap.Error(err),
		zap.String("user_id", userID),
	)
}

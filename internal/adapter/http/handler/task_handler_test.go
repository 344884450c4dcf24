package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	. "taskapp/pkg/test"

	"taskapp/pkg/test/factory"

	"taskapp/internal/adapter/database/sqlite/repository"
	"taskapp/internal/adapter/http/handler"
	"taskapp/internal/adapter/http/routes"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
	"taskapp/internal/core/service"
	"taskapp/internal/core/token"
)

type TaskHandlerTestSuite struct {
	suite.Suite
	router *gin.Engine
	users  port.UserRepository
	alice  domain.User
	bruno  domain.User
}

func (s *TaskHandlerTestSuite) SetupTest() {
	os.Setenv("JWT_SECRET", "test-secret")

	db := InitTestDB()
	s.users = repository.NewUserRepository(db)

	taskService := service.NewTaskService(repository.NewTaskRepository(db))

	s.router = routes.SetupRouterForTests(routes.HandlersConfig{
		TaskHandler: handler.NewTaskHandler(taskService, nil, nil),
	})

	s.alice = s.createUser("alice@example.com")
	s.bruno = s.createUser("bruno@example.com")
}

func TestTaskHandlerTestSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(TaskHandlerTestSuite))
}

func (s *TaskHandlerTestSuite) createUser(email string) domain.User {
	user, err := s.users.Create(context.Background(), factory.NewUser[domain.User](map[string]any{
		"ID":    uuid.NewString(),
		"Email": email,
	}))
	assert.NoError(s.T(), err)

	return user
}

func (s *TaskHandlerTestSuite) tokenFor(user domain.User) string {
	tok, err := token.CreateTokenForUser(user.ID, user.Email)
	assert.NoError(s.T(), err)

	return tok
}

func (s *TaskHandlerTestSuite) request(method, path string, body any, bearer string) *httptest.ResponseRecorder {
	var reader *bytes.Reader

	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	return w
}

func (s *TaskHandlerTestSuite) createTask(user domain.User, body map[string]any) map[string]any {
	w := s.request(http.MethodPost, fmt.Sprintf("/api/%s/tasks", user.ID), body, s.tokenFor(user))
	assert.Equal(s.T(), http.StatusCreated, w.Code)

	var task map[string]any
	assert.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &task))

	return task
}

func (s *TaskHandlerTestSuite) decodeDetail(w *httptest.ResponseRecorder) string {
	var body map[string]string
	assert.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &body))

	return body["detail"]
}

func (s *TaskHandlerTestSuite) TestHandler_List_RequiresToken() {
	w := s.request(http.MethodGet, fmt.Sprintf("/api/%s/tasks", s.alice.ID), nil, "")

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	Expect(s.decodeDetail(w)).To(Equal("Missing or invalid authorization header"))
}

func (s *TaskHandlerTestSuite) TestHandler_List_RejectsGarbageToken() {
	w := s.request(http.MethodGet, fmt.Sprintf("/api/%s/tasks", s.alice.ID), nil, "not-a-token")

	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	Expect(s.decodeDetail(w)).To(Equal("Invalid or expired token"))
}

func (s *TaskHandlerTestSuite) TestHandler_List_PathMismatchForbidden() {
	w := s.request(http.MethodGet, fmt.Sprintf("/api/%s/tasks", s.bruno.ID), nil, s.tokenFor(s.alice))

	assert.Equal(s.T(), http.StatusForbidden, w.Code)
	Expect(s.decodeDetail(w)).To(Equal("Access forbidden"))
}

func (s *TaskHandlerTestSuite) TestHandler_List_FilterCounts() {
	s.createTask(s.alice, map[string]any{"title": "one"})
	s.createTask(s.alice, map[string]any{"title": "two"})
	done := s.createTask(s.alice, map[string]any{"title": "three"})

	w := s.request(http.MethodPatch,
		fmt.Sprintf("/api/%s/tasks/%v/complete", s.alice.ID, done["id"]), nil, s.tokenFor(s.alice))
	assert.Equal(s.T(), http.StatusOK, w.Code)

	cases := []struct {
		query string
		count int
	}{
		{"?status=pending", 2},
		{"?status=completed", 1},
		{"", 3},
	}

	for _, tc := range cases {
		w := s.request(http.MethodGet,
			fmt.Sprintf("/api/%s/tasks%s", s.alice.ID, tc.query), nil, s.tokenFor(s.alice))
		assert.Equal(s.T(), http.StatusOK, w.Code)

		var tasks []map[string]any
		assert.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &tasks))
		Expect(tasks).To(HaveLen(tc.count))
	}
}

func (s *TaskHandlerTestSuite) TestHandler_List_UnknownFilterMeansAll() {
	s.createTask(s.alice, map[string]any{"title": "one"})
	s.createTask(s.alice, map[string]any{"title": "two"})

	w := s.request(http.MethodGet,
		fmt.Sprintf("/api/%s/tasks?status=maybe", s.alice.ID), nil, s.tokenFor(s.alice))

	assert.Equal(s.T(), http.StatusOK, w.Code)

	var tasks []map[string]any
	assert.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &tasks))
	Expect(tasks).To(HaveLen(2))
}

func (s *TaskHandlerTestSuite) TestHandler_CreateTask_Defaults() {
	task := s.createTask(s.alice, map[string]any{"title": "Buy milk"})

	Expect(task["title"]).To(Equal("Buy milk"))
	Expect(task["user_id"]).To(Equal(s.alice.ID))
	Expect(task["completed"]).To(BeFalse())
	Expect(task["description"]).To(BeNil())
}

func (s *TaskHandlerTestSuite) TestHandler_CreateTask_TitleBoundaries() {
	w := s.request(http.MethodPost, fmt.Sprintf("/api/%s/tasks", s.alice.ID),
		map[string]any{"title": ""}, s.tokenFor(s.alice))
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	w = s.request(http.MethodPost, fmt.Sprintf("/api/%s/tasks", s.alice.ID),
		map[string]any{"title": strings.Repeat("a", 200)}, s.tokenFor(s.alice))
	assert.Equal(s.T(), http.StatusCreated, w.Code)

	w = s.request(http.MethodPost, fmt.Sprintf("/api/%s/tasks", s.alice.ID),
		map[string]any{"title": strings.Repeat("a", 201)}, s.tokenFor(s.alice))
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
}

func (s *TaskHandlerTestSuite) TestHandler_GetTask_OtherUsersTaskIs404() {
	task := s.createTask(s.bruno, map[string]any{"title": "bruno's secret"})

	w := s.request(http.MethodGet,
		fmt.Sprintf("/api/%s/tasks/%v", s.alice.ID, task["id"]), nil, s.tokenFor(s.alice))

	assert.Equal(s.T(), http.StatusNotFound, w.Code)
	Expect(s.decodeDetail(w)).To(Equal("Task not found"))
}

func (s *TaskHandlerTestSuite) TestHandler_GetTask_BadID() {
	w := s.request(http.MethodGet,
		fmt.Sprintf("/api/%s/tasks/abc", s.alice.ID), nil, s.tokenFor(s.alice))

	assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	Expect(s.decodeDetail(w)).To(Equal("Invalid task id"))
}

func (s *TaskHandlerTestSuite) TestHandler_UpdateTask_PartialPatch() {
	task := s.createTask(s.alice, map[string]any{"title": "original", "description": "keep me"})

	w := s.request(http.MethodPut,
		fmt.Sprintf("/api/%s/tasks/%v", s.alice.ID, task["id"]),
		map[string]any{"title": "renamed"}, s.tokenFor(s.alice))

	assert.Equal(s.T(), http.StatusOK, w.Code)

	var updated map[string]any
	assert.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &updated))
	Expect(updated["title"]).To(Equal("renamed"))
	Expect(updated["description"]).To(Equal("keep me"))
	Expect(updated["completed"]).To(BeFalse())
}

func (s *TaskHandlerTestSuite) TestHandler_EndToEndScenario() {
	aliceToken := s.tokenFor(s.alice)

	task := s.createTask(s.alice, map[string]any{"title": "Buy milk"})
	taskID := task["id"]

	w := s.request(http.MethodPatch,
		fmt.Sprintf("/api/%s/tasks/%v/complete", s.alice.ID, taskID), nil, aliceToken)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	var toggled map[string]any
	assert.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &toggled))
	Expect(toggled["completed"]).To(BeTrue())

	w = s.request(http.MethodDelete,
		fmt.Sprintf("/api/%s/tasks/%v", s.alice.ID, taskID), nil, aliceToken)
	assert.Equal(s.T(), http.StatusOK, w.Code)

	var deleted map[string]any
	assert.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &deleted))
	Expect(deleted["message"]).To(Equal("Task deleted successfully"))
	Expect(deleted["id"]).To(BeNumerically("==", taskID))

	w = s.request(http.MethodGet,
		fmt.Sprintf("/api/%s/tasks/%v", s.alice.ID, taskID), nil, aliceToken)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)
}

func (s *TaskHandlerTestSuite) TestHandler_DeleteTask_OtherUsersTaskIs404() {
	task := s.createTask(s.bruno, map[string]any{"title": "bruno's task"})

	w := s.request(http.MethodDelete,
		fmt.Sprintf("/api/%s/tasks/%v", s.alice.ID, task["id"]), nil, s.tokenFor(s.alice))

	assert.Equal(s.T(), http.StatusNotFound, w.Code)

	w = s.request(http.MethodGet,
		fmt.Sprintf("/api/%s/tasks/%v", s.bruno.ID, task["id"]), nil, s.tokenFor(s.bruno))
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

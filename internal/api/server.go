package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"task-tracker/internal/model"
	"task-tracker/internal/service"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// TaskService is the set of task operations the handlers call.
type TaskService interface {
	CreateTask(ctx context.Context, input service.TaskInput) (*model.Task, error)
	ListTasks(ctx context.Context) ([]model.Task, error)
	GetTask(ctx context.Context, id uint) (*model.Task, error)
	UpdateTask(ctx context.Context, id uint, patch model.TaskPatch) (bool, error)
	DeleteTask(ctx context.Context, id uint) (bool, error)
	MoveTask(ctx context.Context, id uint, category string) (bool, error)
	StatusCounts(ctx context.Context) (map[model.Status]int64, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
}

// Server exposes the task service over HTTP.
type Server struct {
	tasks  TaskService
	router *gin.Engine
}

// NewServer builds the router. Callers choose the gin mode beforehand.
func NewServer(tasks TaskService) *Server {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), requestID())

	s := &Server{
		tasks:  tasks,
		router: router,
	}

	api := router.Group("/api")
	{
		api.GET("/tasks", s.handleListTasks)
		api.POST("/tasks", s.handleCreateTask)
		api.GET("/tasks/:id", s.handleGetTask)
		api.PUT("/tasks/:id", s.handleUpdateTask)
		api.DELETE("/tasks/:id", s.handleDeleteTask)
		api.PUT("/tasks/:id/category", s.handleMoveTask)
		api.GET("/categories", s.handleListCategories)
		api.GET("/stats/status", s.handleStatusCounts)
	}

	return s
}

// Handler returns the underlying http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// requestID propagates an incoming X-Request-ID or generates one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

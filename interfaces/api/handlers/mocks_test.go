package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pinkcat015/todolist/domain/dto"
	"github.com/pinkcat015/todolist/domain/models"
	"github.com/pinkcat015/todolist/domain/repositories"
)

type MockTodoService struct {
	mock.Mock
}

func (m *MockTodoService) ListTodos(ctx context.Context, filter repositories.TodoListFilter) ([]models.TodoListItem, int64, error) {
	args := m.Called(ctx, filter)
	items, _ := args.Get(0).([]models.TodoListItem)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *MockTodoService) CreateTodo(ctx context.Context, userID int64, req *dto.CreateTodoRequest) (*models.Todo, error) {
	args := m.Called(ctx, userID, req)
	todo, _ := args.Get(0).(*models.Todo)
	return todo, args.Error(1)
}

func (m *MockTodoService) GetTodo(ctx context.Context, userID, todoID int64) (*models.Todo, error) {
	args := m.Called(ctx, userID, todoID)
	todo, _ := args.Get(0).(*models.Todo)
	return todo, args.Error(1)
}

func (m *MockTodoService) UpdateTodo(ctx context.Context, userID, todoID int64, req *dto.UpdateTodoRequest) (*models.Todo, error) {
	args := m.Called(ctx, userID, todoID, req)
	todo, _ := args.Get(0).(*models.Todo)
	return todo, args.Error(1)
}

func (m *MockTodoService) DeleteTodo(ctx context.Context, userID, todoID int64) error {
	return m.Called(ctx, userID, todoID).Error(0)
}

func (m *MockTodoService) CompleteTodo(ctx context.Context, userID, todoID int64) (*models.Todo, error) {
	args := m.Called(ctx, userID, todoID)
	todo, _ := args.Get(0).(*models.Todo)
	return todo, args.Error(1)
}

func (m *MockTodoService) ChangePriority(ctx context.Context, userID, todoID, priorityID int64) (*models.Todo, error) {
	args := m.Called(ctx, userID, todoID, priorityID)
	todo, _ := args.Get(0).(*models.Todo)
	return todo, args.Error(1)
}

func (m *MockTodoService) ChangeCategory(ctx context.Context, userID, todoID, categoryID int64) (*models.Todo, error) {
	args := m.Called(ctx, userID, todoID, categoryID)
	todo, _ := args.Get(0).(*models.Todo)
	return todo, args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, req *dto.RegisterRequest) (string, *models.User, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(1).(*models.User)
	return args.String(0), user, args.Error(2)
}

func (m *MockUserService) Login(ctx context.Context, req *dto.LoginRequest) (string, *models.User, error) {
	args := m.Called(ctx, req)
	user, _ := args.Get(1).(*models.User)
	return args.String(0), user, args.Error(2)
}

func (m *MockUserService) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest, avatar *dto.AvatarUpload) (*models.User, error) {
	args := m.Called(ctx, userID, req, avatar)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockUserService) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	return m.Called(ctx, userID, req).Error(0)
}

func (m *MockUserService) ForgotPassword(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockUserService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	return m.Called(ctx, req).Error(0)
}

func (m *MockUserService) AvatarURL(user *models.User) string {
	return ""
}

type MockTodoLogService struct {
	mock.Mock
}

func (m *MockTodoLogService) ListLogs(ctx context.Context, userID int64) ([]models.TodoLogEntry, error) {
	args := m.Called(ctx, userID)
	entries, _ := args.Get(0).([]models.TodoLogEntry)
	return entries, args.Error(1)
}

func (m *MockTodoLogService) ListTodoLogs(ctx context.Context, userID, todoID int64) ([]models.TodoLogEntry, error) {
	args := m.Called(ctx, userID, todoID)
	entries, _ := args.Get(0).([]models.TodoLogEntry)
	return entries, args.Error(1)
}

func (m *MockTodoLogService) DeleteLog(ctx context.Context, userID, logID int64) error {
	return m.Called(ctx, userID, logID).Error(0)
}

func (m *MockTodoLogService) ClearLogs(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

package serviceimpl

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/pinkcat015/todolist/domain/models"
	"github.com/pinkcat015/todolist/domain/ports"
	"github.com/pinkcat015/todolist/domain/repositories"
)

type MockTodoRepository struct {
	mock.Mock
}

func (m *MockTodoRepository) Create(ctx context.Context, todo *models.Todo) error {
	args := m.Called(ctx, todo)
	if args.Error(0) == nil && todo.ID == 0 {
		todo.ID = 1
	}
	return args.Error(0)
}

func (m *MockTodoRepository) GetByIDForUser(ctx context.Context, id, userID int64) (*models.Todo, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Todo), args.Error(1)
}

func (m *MockTodoRepository) Update(ctx context.Context, todo *models.Todo, rearmReminder bool) error {
	return m.Called(ctx, todo, rearmReminder).Error(0)
}

func (m *MockTodoRepository) Delete(ctx context.Context, id, userID int64) error {
	return m.Called(ctx, id, userID).Error(0)
}

type MockTodoQueryRepository struct {
	mock.Mock
}

func (m *MockTodoQueryRepository) List(ctx context.Context, filter repositories.TodoListFilter) ([]models.TodoListItem, int64, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.TodoListItem), args.Get(1).(int64), args.Error(2)
}

type MockTodoLogRepository struct {
	mock.Mock
}

func (m *MockTodoLogRepository) Create(ctx context.Context, log *models.TodoLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *MockTodoLogRepository) ListByUser(ctx context.Context, userID int64) ([]models.TodoLogEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TodoLogEntry), args.Error(1)
}

func (m *MockTodoLogRepository) ListByTodo(ctx context.Context, todoID int64) ([]models.TodoLogEntry, error) {
	args := m.Called(ctx, todoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TodoLogEntry), args.Error(1)
}

func (m *MockTodoLogRepository) DeleteForUser(ctx context.Context, logID, userID int64) error {
	return m.Called(ctx, logID, userID).Error(0)
}

func (m *MockTodoLogRepository) DeleteAllForUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) ListByUser(ctx context.Context, userID int64) ([]*models.Category, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByIDForUser(ctx context.Context, id, userID int64) (*models.Category, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *models.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id, userID int64) error {
	return m.Called(ctx, id, userID).Error(0)
}

type MockPriorityRepository struct {
	mock.Mock
}

func (m *MockPriorityRepository) List(ctx context.Context) ([]*models.Priority, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Priority), args.Error(1)
}

func (m *MockPriorityRepository) GetByID(ctx context.Context, id int64) (*models.Priority, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Priority), args.Error(1)
}

func (m *MockPriorityRepository) GetByName(ctx context.Context, name string) (*models.Priority, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Priority), args.Error(1)
}

func (m *MockPriorityRepository) Create(ctx context.Context, priority *models.Priority) error {
	return m.Called(ctx, priority).Error(0)
}

func (m *MockPriorityRepository) Update(ctx context.Context, priority *models.Priority) error {
	return m.Called(ctx, priority).Error(0)
}

func (m *MockPriorityRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil && user.ID == 0 {
		user.ID = 1
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByResetToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendPasswordReset(ctx context.Context, to, username, resetLink string) error {
	return m.Called(ctx, to, username, resetLink).Error(0)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadFile(file io.Reader, path string, size int64, contentType string) (string, error) {
	args := m.Called(file, path, size, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) DeleteFile(path string) error {
	return m.Called(path).Error(0)
}

func (m *MockStorage) GetFileURL(path string) string {
	return "http://files.local/" + path
}

func (m *MockStorage) GetProviderName() string {
	return "mock"
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetJSON(ctx context.Context, key string, target any) error {
	return m.Called(ctx, key, target).Error(0)
}

func (m *MockCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	return m.Called(ctx, key, value, ttl).Error(0)
}

func (m *MockCache) Del(ctx context.Context, keys ...string) error {
	return m.Called(ctx, keys).Error(0)
}

type MockActivityPublisher struct {
	mock.Mock
}

func (m *MockActivityPublisher) Publish(ctx context.Context, event *ports.ActivityEvent) error {
	return m.Called(ctx, event).Error(0)
}

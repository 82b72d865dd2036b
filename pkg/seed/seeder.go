package seed

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pinkcat015/todolist/domain/models"
	"github.com/pinkcat015/todolist/pkg/logger"
)

var statuses = []models.TodoStatus{
	models.TodoStatusPending,
	models.TodoStatusInProgress,
	models.TodoStatusCompleted,
}

// Summary counts the rows a seed run inserted.
type Summary struct {
	Users      int
	Priorities int
	Categories int
	Todos      int
	Logs       int
}

type Seeder struct {
	db  *gorm.DB
	fx  *Fixtures
	rnd *rand.Rand
	now func() time.Time
}

func NewSeeder(db *gorm.DB, fx *Fixtures) *Seeder {
	return &Seeder{
		db:  db,
		fx:  fx,
		rnd: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
}

// WithRand makes generated data reproducible.
func (s *Seeder) WithRand(seed int64) *Seeder {
	s.rnd = rand.New(rand.NewSource(seed))
	return s
}

// Users inserts fixture users that do not exist yet, matched by username.
func (s *Seeder) Users(ctx context.Context) (int, error) {
	created := 0
	for _, u := range s.fx.Users {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.User{}).Where("username = ?", u.Username).Count(&count).Error; err != nil {
			return created, err
		}
		if count > 0 {
			logger.Info("User already exists", "username", u.Username)
			continue
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return created, err
		}
		user := &models.User{
			Username:             u.Username,
			Email:                strings.ToLower(u.Email),
			Password:             string(hash),
			DefaultRemindMinutes: models.DefaultRemindMinutes,
		}
		if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
			return created, fmt.Errorf("create user %s: %w", u.Username, err)
		}
		logger.Info("Created user", "username", u.Username)
		created++
	}
	return created, nil
}

// Priorities inserts the fixture priorities, skipping names that exist.
func (s *Seeder) Priorities(ctx context.Context) (int, error) {
	rows := make([]models.Priority, 0, len(s.fx.Priorities))
	for _, name := range s.fx.Priorities {
		rows = append(rows, models.Priority{Name: name})
	}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rows)
	return int(res.RowsAffected), res.Error
}

// Reset empties every table except users and restarts the id sequences.
func (s *Seeder) Reset(ctx context.Context) error {
	return s.db.WithContext(ctx).
		Exec("TRUNCATE TABLE todo_logs, todos, categories, priorities RESTART IDENTITY CASCADE").Error
}

// Data seeds priorities, then per user: the fixture categories, todosPerUser todos
// and logsPerUser log rows spread over that user's todos.
func (s *Seeder) Data(ctx context.Context, todosPerUser, logsPerUser int) (Summary, error) {
	var sum Summary

	n, err := s.Priorities(ctx)
	if err != nil {
		return sum, err
	}
	sum.Priorities = n

	var priorityIDs []int64
	if err := s.db.WithContext(ctx).Model(&models.Priority{}).Pluck("id", &priorityIDs).Error; err != nil {
		return sum, err
	}

	var users []models.User
	if err := s.db.WithContext(ctx).Find(&users).Error; err != nil {
		return sum, err
	}
	if len(users) == 0 {
		logger.Warn("No users found, run `todoctl seed users` first")
		return sum, nil
	}

	for _, user := range users {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			categories := make([]models.Category, 0, len(s.fx.Categories))
			for _, name := range s.fx.Categories {
				categories = append(categories, models.Category{Name: name, UserID: user.ID})
			}
			if len(categories) > 0 {
				if err := tx.Create(&categories).Error; err != nil {
					return err
				}
			}
			categoryIDs := make([]int64, 0, len(categories))
			for _, c := range categories {
				categoryIDs = append(categoryIDs, c.ID)
			}

			todos := s.BuildTodos(user.ID, priorityIDs, categoryIDs, todosPerUser)
			if len(todos) > 0 {
				if err := tx.Omit(clause.Associations).CreateInBatches(&todos, 100).Error; err != nil {
					return err
				}
			}

			logs := s.BuildLogs(todos, logsPerUser)
			if len(logs) > 0 {
				if err := tx.CreateInBatches(&logs, 200).Error; err != nil {
					return err
				}
			}

			sum.Categories += len(categories)
			sum.Todos += len(todos)
			sum.Logs += len(logs)
			return nil
		})
		if err != nil {
			return sum, fmt.Errorf("seed data for user %d: %w", user.ID, err)
		}
		logger.Info("Seeded user data", "user_id", user.ID, "todos", todosPerUser, "logs", logsPerUser)
	}

	return sum, nil
}

// BuildTodos generates n todos from the templates with random status, priority,
// category and a deadline within the next 30 days.
func (s *Seeder) BuildTodos(userID int64, priorityIDs, categoryIDs []int64, n int) []models.Todo {
	now := s.now()
	todos := make([]models.Todo, 0, n)
	for i := 0; i < n; i++ {
		tpl := s.fx.Todos[s.rnd.Intn(len(s.fx.Todos))]
		description := tpl[1]
		deadline := now.Add(time.Duration(s.rnd.Intn(30*24)) * time.Hour).Truncate(time.Minute)

		todo := models.Todo{
			UserID:      userID,
			Title:       tpl[0],
			Description: &description,
			Deadline:    &deadline,
		}
		todo.SetStatus(statuses[s.rnd.Intn(len(statuses))])
		if id, ok := s.pick(priorityIDs); ok {
			todo.PriorityID = &id
		}
		if id, ok := s.pick(categoryIDs); ok {
			todo.CategoryID = &id
		}
		todos = append(todos, todo)
	}
	return todos
}

// BuildLogs generates n log rows for random todos. Todos must already have ids.
func (s *Seeder) BuildLogs(todos []models.Todo, n int) []models.TodoLog {
	if len(todos) == 0 || len(s.fx.LogActions) == 0 {
		return nil
	}
	logs := make([]models.TodoLog, 0, n)
	for i := 0; i < n; i++ {
		todo := todos[s.rnd.Intn(len(todos))]
		logs = append(logs, models.TodoLog{
			TodoID: todo.ID,
			Action: s.fx.LogActions[s.rnd.Intn(len(s.fx.LogActions))],
		})
	}
	return logs
}

func (s *Seeder) pick(ids []int64) (int64, bool) {
	if len(ids) == 0 {
		return 0, false
	}
	return ids[s.rnd.Intn(len(ids))], true
}

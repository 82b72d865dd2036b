package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/pinkcat015/todolist/domain/repositories"
)

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repositories.ErrNotFound
	}
	return err
}

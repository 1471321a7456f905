package sqlite

import (
	"fmt"

	"github.com/google/uuid"

	"lsp-fixtures/internal/domain"
)

func taskToRow(owner string, task domain.Task) taskRow {
	return taskRow{
		Owner:       owner,
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Priority:    task.Priority,
		Completed:   task.Completed,
		CreatedAt:   FormatTimeForDB(task.CreatedAt),
	}
}

func taskFromRow(row taskRow) (domain.Task, error) {
	createdAt, err := ParseTimeFromDB(row.CreatedAt)
	if err != nil {
		return domain.Task{}, fmt.Errorf("task %d: parse created_at: %w", row.ID, err)
	}
	return domain.Task{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		Priority:    row.Priority,
		Completed:   row.Completed,
		CreatedAt:   createdAt,
	}, nil
}

func userToRow(user domain.User) userRow {
	return userRow{
		Key:       user.Key.String(),
		DisplayID: user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: FormatTimeForDB(user.CreatedAt),
	}
}

func userFromRow(row userRow) (domain.User, error) {
	key, err := uuid.Parse(row.Key)
	if err != nil {
		return domain.User{}, fmt.Errorf("user %s: parse key: %w", row.Key, err)
	}
	createdAt, err := ParseTimeFromDB(row.CreatedAt)
	if err != nil {
		return domain.User{}, fmt.Errorf("user %s: parse created_at: %w", row.Key, err)
	}
	return domain.User{
		Key:       key,
		ID:        row.DisplayID,
		Name:      row.Name,
		Email:     row.Email,
		CreatedAt: createdAt,
	}, nil
}

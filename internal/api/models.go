package api

import (
	"time"

	"github.com/phrazzld/tasklist-api/internal/domain"
)

// CreateTaskRequest is the body of POST /api/tasks.
type CreateTaskRequest struct {
	Text string `json:"text" validate:"required"`
}

// UpdateTaskRequest is the body of PUT /api/tasks/{id}.
// Only the text can be changed; completion goes through the toggle route.
type UpdateTaskRequest struct {
	Text string `json:"text" validate:"required"`
}

// TaskResponse is the JSON form of a task.
type TaskResponse struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
}

func taskToResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:        task.ID,
		Text:      task.Text,
		Completed: task.Completed,
		CreatedAt: task.CreatedAt.UTC(),
	}
}

func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, taskToResponse(task))
	}
	return out
}

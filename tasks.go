package chatwork

import (
	"fmt"
	"net/http"
	"time"

	"github.com/lizzyg/chatwork/internal/form"
)

type RoomTasksParams struct {
	AccountID           *int64
	AssignedByAccountID *int64
	Status              TaskStatus
}

var roomTasksSchema = form.NewSchema("RoomTasksParams",
	form.Int64("account_id", "AccountID", func(p *RoomTasksParams) *int64 { return p.AccountID }),
	form.Int64("assigned_by_account_id", "AssignedByAccountID", func(p *RoomTasksParams) *int64 { return p.AssignedByAccountID }),
	form.Choice("status", "Status", func(p *RoomTasksParams) TaskStatus { return p.Status }),
)

// NewTaskParams describes a task to assign. Body and ToIDs are required; Limit is
// sent as Unix seconds.
type NewTaskParams struct {
	Body      string
	Limit     time.Time
	LimitType LimitType
	ToIDs     []int64
}

var newTaskSchema = form.NewSchema("NewTaskParams",
	form.String("body", "Body", func(p *NewTaskParams) string { return p.Body }).Require(),
	form.Converted("limit", "Limit", form.UnixSeconds, func(p *NewTaskParams) time.Time { return p.Limit }),
	form.Choice("limit_type", "LimitType", func(p *NewTaskParams) LimitType { return p.LimitType }),
	form.Int64s("to_ids", "ToIDs", func(p *NewTaskParams) []int64 { return p.ToIDs }).Require(),
)

// UpdateTaskStatusParams sets a task open or done.
type UpdateTaskStatusParams struct {
	Body TaskStatus
}

var updateTaskStatusSchema = form.NewSchema("UpdateTaskStatusParams",
	form.Choice("body", "Body", func(p *UpdateTaskStatusParams) TaskStatus { return p.Body }).Require(),
)

func taskPath(roomID, taskID int64, suffix string) string {
	return roomPath(roomID, fmt.Sprintf("/tasks/%d%s", taskID, suffix))
}

// RoomTasks lists up to 100 tasks of a room.
func (c *Client) RoomTasks(roomID int64, p *RoomTasksParams) *Call[[]Task] {
	return newCall[[]Task](c, http.MethodGet, roomPath(roomID, "/tasks"), form.Bind(roomTasksSchema, p))
}

func (c *Client) CreateTask(roomID int64, p *NewTaskParams) *Call[TaskIDs] {
	return newCall[TaskIDs](c, http.MethodPost, roomPath(roomID, "/tasks"), form.Bind(newTaskSchema, p))
}

func (c *Client) Task(roomID, taskID int64) *Call[Task] {
	return newCall[Task](c, http.MethodGet, taskPath(roomID, taskID, ""), nil)
}

func (c *Client) UpdateTaskStatus(roomID, taskID int64, p *UpdateTaskStatusParams) *Call[TaskID] {
	return newCall[TaskID](c, http.MethodPut, taskPath(roomID, taskID, "/status"), form.Bind(updateTaskStatusSchema, p))
}

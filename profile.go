package chatwork

import (
	"fmt"
	"net/http"

	"github.com/lizzyg/chatwork/internal/form"
)

// MyTasksParams filters the authenticated user's tasks.
type MyTasksParams struct {
	AssignedByAccountID *int64
	Status              TaskStatus
}

var myTasksSchema = form.NewSchema("MyTasksParams",
	form.Int64("assigned_by_account_id", "AssignedByAccountID", func(p *MyTasksParams) *int64 { return p.AssignedByAccountID }),
	form.Choice("status", "Status", func(p *MyTasksParams) TaskStatus { return p.Status }),
)

// Me returns the authenticated user's profile.
func (c *Client) Me() *Call[Profile] {
	return newCall[Profile](c, http.MethodGet, "/me", nil)
}

// MyStatus returns unread, mention and task counters.
func (c *Client) MyStatus() *Call[MyStatus] {
	return newCall[MyStatus](c, http.MethodGet, "/my/status", nil)
}

// MyTasks lists up to 100 open tasks assigned to the authenticated user.
func (c *Client) MyTasks(p *MyTasksParams) *Call[[]MyTask] {
	return newCall[[]MyTask](c, http.MethodGet, "/my/tasks", form.Bind(myTasksSchema, p))
}

func (c *Client) Contacts() *Call[[]Contact] {
	return newCall[[]Contact](c, http.MethodGet, "/contacts", nil)
}

// IncomingRequests lists pending contact requests.
func (c *Client) IncomingRequests() *Call[[]IncomingRequest] {
	return newCall[[]IncomingRequest](c, http.MethodGet, "/incoming_requests", nil)
}

// AcceptIncomingRequest approves a contact request and returns the new contact.
func (c *Client) AcceptIncomingRequest(requestID int64) *Call[Contact] {
	return newCall[Contact](c, http.MethodPut, fmt.Sprintf("/incoming_requests/%d", requestID), nil)
}

func (c *Client) RejectIncomingRequest(requestID int64) *Call[struct{}] {
	return newCall[struct{}](c, http.MethodDelete, fmt.Sprintf("/incoming_requests/%d", requestID), nil)
}

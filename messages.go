package chatwork

import (
	"net/http"
	"net/url"

	"github.com/lizzyg/chatwork/internal/form"
)

// MessagesParams controls message listing. Without Force only messages not yet
// fetched are returned.
type MessagesParams struct {
	Force *bool
}

var messagesSchema = form.NewSchema("MessagesParams",
	form.Flag("force", "Force", func(p *MessagesParams) *bool { return p.Force }),
)

type NewMessageParams struct {
	Body       string
	SelfUnread *bool
}

var newMessageSchema = form.NewSchema("NewMessageParams",
	form.String("body", "Body", func(p *NewMessageParams) string { return p.Body }).Require(),
	form.Flag("self_unread", "SelfUnread", func(p *NewMessageParams) *bool { return p.SelfUnread }),
)

// TargetMessageParams names the message up to which the read state changes.
type TargetMessageParams struct {
	MessageID string
}

var targetMessageSchema = form.NewSchema("TargetMessageParams",
	form.String("message_id", "MessageID", func(p *TargetMessageParams) string { return p.MessageID }),
)

type UpdateMessageParams struct {
	Body string
}

var updateMessageSchema = form.NewSchema("UpdateMessageParams",
	form.String("body", "Body", func(p *UpdateMessageParams) string { return p.Body }).Require(),
)

func messagePath(roomID int64, messageID string) string {
	return roomPath(roomID, "/messages/"+url.PathEscape(messageID))
}

// Messages lists up to 100 messages of a room.
func (c *Client) Messages(roomID int64, p *MessagesParams) *Call[[]Message] {
	return newCall[[]Message](c, http.MethodGet, roomPath(roomID, "/messages"), form.Bind(messagesSchema, p))
}

// SendMessage posts a message to a room.
func (c *Client) SendMessage(roomID int64, p *NewMessageParams) *Call[MessageID] {
	return newCall[MessageID](c, http.MethodPost, roomPath(roomID, "/messages"), form.Bind(newMessageSchema, p))
}

func (c *Client) MarkRead(roomID int64, p *TargetMessageParams) *Call[UnreadStatus] {
	return newCall[UnreadStatus](c, http.MethodPut, roomPath(roomID, "/messages/read"), form.Bind(targetMessageSchema, p))
}

func (c *Client) MarkUnread(roomID int64, p *TargetMessageParams) *Call[UnreadStatus] {
	return newCall[UnreadStatus](c, http.MethodPut, roomPath(roomID, "/messages/unread"), form.Bind(targetMessageSchema, p))
}

func (c *Client) Message(roomID int64, messageID string) *Call[Message] {
	return newCall[Message](c, http.MethodGet, messagePath(roomID, messageID), nil)
}

func (c *Client) UpdateMessage(roomID int64, messageID string, p *UpdateMessageParams) *Call[MessageID] {
	return newCall[MessageID](c, http.MethodPut, messagePath(roomID, messageID), form.Bind(updateMessageSchema, p))
}

func (c *Client) DeleteMessage(roomID int64, messageID string) *Call[MessageID] {
	return newCall[MessageID](c, http.MethodDelete, messagePath(roomID, messageID), nil)
}

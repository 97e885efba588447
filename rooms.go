package chatwork

import (
	"fmt"
	"net/http"

	"github.com/lizzyg/chatwork/internal/form"
)

// NewRoomParams describes a group chat to create. Name and MembersAdminIDs are required.
type NewRoomParams struct {
	Name               string
	Description        string
	IconPreset         IconPreset
	Link               *bool
	LinkCode           string
	LinkNeedAcceptance *bool
	MembersAdminIDs    []int64
	MembersMemberIDs   []int64
	MembersReadonlyIDs []int64
}

var newRoomSchema = form.NewSchema("NewRoomParams",
	form.String("name", "Name", func(p *NewRoomParams) string { return p.Name }).Require(),
	form.String("description", "Description", func(p *NewRoomParams) string { return p.Description }),
	form.Choice("icon_preset", "IconPreset", func(p *NewRoomParams) IconPreset { return p.IconPreset }),
	form.Flag("link", "Link", func(p *NewRoomParams) *bool { return p.Link }),
	form.String("link_code", "LinkCode", func(p *NewRoomParams) string { return p.LinkCode }),
	form.Flag("link_need_acceptance", "LinkNeedAcceptance", func(p *NewRoomParams) *bool { return p.LinkNeedAcceptance }),
	form.Int64s("members_admin_ids", "MembersAdminIDs", func(p *NewRoomParams) []int64 { return p.MembersAdminIDs }).Require(),
	form.Int64s("members_member_ids", "MembersMemberIDs", func(p *NewRoomParams) []int64 { return p.MembersMemberIDs }),
	form.Int64s("members_readonly_ids", "MembersReadonlyIDs", func(p *NewRoomParams) []int64 { return p.MembersReadonlyIDs }),
)

type UpdateRoomParams struct {
	Name        string
	Description string
	IconPreset  IconPreset
}

var updateRoomSchema = form.NewSchema("UpdateRoomParams",
	form.String("name", "Name", func(p *UpdateRoomParams) string { return p.Name }),
	form.String("description", "Description", func(p *UpdateRoomParams) string { return p.Description }),
	form.Choice("icon_preset", "IconPreset", func(p *UpdateRoomParams) IconPreset { return p.IconPreset }),
)

type DeleteRoomParams struct {
	ActionType DeleteAction
}

var deleteRoomSchema = form.NewSchema("DeleteRoomParams",
	form.Choice("action_type", "ActionType", func(p *DeleteRoomParams) DeleteAction { return p.ActionType }).Require(),
)

// UpdateRoomMembersParams replaces the full member list of a room.
type UpdateRoomMembersParams struct {
	MembersAdminIDs    []int64
	MembersMemberIDs   []int64
	MembersReadonlyIDs []int64
}

var updateRoomMembersSchema = form.NewSchema("UpdateRoomMembersParams",
	form.Int64s("members_admin_ids", "MembersAdminIDs", func(p *UpdateRoomMembersParams) []int64 { return p.MembersAdminIDs }).Require(),
	form.Int64s("members_member_ids", "MembersMemberIDs", func(p *UpdateRoomMembersParams) []int64 { return p.MembersMemberIDs }),
	form.Int64s("members_readonly_ids", "MembersReadonlyIDs", func(p *UpdateRoomMembersParams) []int64 { return p.MembersReadonlyIDs }),
)

// LinkParams configures a room's invitation link.
type LinkParams struct {
	Code           string
	Description    string
	NeedAcceptance *bool
}

var linkSchema = form.NewSchema("LinkParams",
	form.String("code", "Code", func(p *LinkParams) string { return p.Code }),
	form.String("description", "Description", func(p *LinkParams) string { return p.Description }),
	form.Flag("need_acceptance", "NeedAcceptance", func(p *LinkParams) *bool { return p.NeedAcceptance }),
)

func roomPath(roomID int64, suffix string) string {
	return fmt.Sprintf("/rooms/%d%s", roomID, suffix)
}

// Rooms lists the chats the authenticated user belongs to.
func (c *Client) Rooms() *Call[[]Room] {
	return newCall[[]Room](c, http.MethodGet, "/rooms", nil)
}

// CreateRoom creates a group chat.
func (c *Client) CreateRoom(p *NewRoomParams) *Call[RoomID] {
	return newCall[RoomID](c, http.MethodPost, "/rooms", form.Bind(newRoomSchema, p))
}

func (c *Client) Room(roomID int64) *Call[Room] {
	return newCall[Room](c, http.MethodGet, roomPath(roomID, ""), nil)
}

// UpdateRoom changes the name, description or icon of a group chat.
func (c *Client) UpdateRoom(roomID int64, p *UpdateRoomParams) *Call[RoomID] {
	return newCall[RoomID](c, http.MethodPut, roomPath(roomID, ""), form.Bind(updateRoomSchema, p))
}

// DeleteRoom leaves or deletes a group chat.
func (c *Client) DeleteRoom(roomID int64, p *DeleteRoomParams) *Call[struct{}] {
	return newCall[struct{}](c, http.MethodDelete, roomPath(roomID, ""), form.Bind(deleteRoomSchema, p))
}

func (c *Client) RoomMembers(roomID int64) *Call[[]Member] {
	return newCall[[]Member](c, http.MethodGet, roomPath(roomID, "/members"), nil)
}

func (c *Client) UpdateRoomMembers(roomID int64, p *UpdateRoomMembersParams) *Call[MembersSummary] {
	return newCall[MembersSummary](c, http.MethodPut, roomPath(roomID, "/members"), form.Bind(updateRoomMembersSchema, p))
}

func (c *Client) RoomLink(roomID int64) *Call[Link] {
	return newCall[Link](c, http.MethodGet, roomPath(roomID, "/link"), nil)
}

func (c *Client) CreateRoomLink(roomID int64, p *LinkParams) *Call[Link] {
	return newCall[Link](c, http.MethodPost, roomPath(roomID, "/link"), form.Bind(linkSchema, p))
}

func (c *Client) UpdateRoomLink(roomID int64, p *LinkParams) *Call[Link] {
	return newCall[Link](c, http.MethodPut, roomPath(roomID, "/link"), form.Bind(linkSchema, p))
}

func (c *Client) DeleteRoomLink(roomID int64) *Call[Link] {
	return newCall[Link](c, http.MethodDelete, roomPath(roomID, "/link"), nil)
}

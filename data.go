package chatwork

import (
	"bytes"
	"strconv"
	"time"

	"github.com/invopop/jsonschema"

	"github.com/lizzyg/chatwork/internal/form"
)

// UnixTime is a timestamp carried on the wire as Unix seconds.
type UnixTime struct {
	time.Time
}

func (t UnixTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("0"), nil
	}
	s, err := form.UnixSeconds.Encode(t.Time)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

func (t *UnixTime) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(bytes.TrimSpace(b), `"`)
	if len(b) == 0 || string(b) == "null" {
		t.Time = time.Time{}
		return nil
	}
	v, err := form.UnixSeconds.Decode(string(b))
	if err != nil {
		return err
	}
	t.Time = v.(time.Time)
	return nil
}

// JSONSchema describes UnixTime as an integer for schema export.
func (UnixTime) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{Type: "integer", Description: "Unix time in seconds"}
}

func (t UnixTime) String() string {
	return strconv.FormatInt(t.Unix(), 10)
}

// Account is the short account form embedded in messages, tasks and files.
type Account struct {
	AccountID      int64  `json:"account_id"`
	Name           string `json:"name"`
	AvatarImageURL string `json:"avatar_image_url"`
}

// Profile is the authenticated user's own account.
type Profile struct {
	AccountID        int64  `json:"account_id"`
	RoomID           int64  `json:"room_id"`
	Name             string `json:"name"`
	ChatworkID       string `json:"chatwork_id"`
	OrganizationID   int64  `json:"organization_id"`
	OrganizationName string `json:"organization_name"`
	Department       string `json:"department"`
	Title            string `json:"title"`
	URL              string `json:"url"`
	Introduction     string `json:"introduction"`
	Mail             string `json:"mail"`
	TelOrganization  string `json:"tel_organization"`
	TelExtension     string `json:"tel_extension"`
	TelMobile        string `json:"tel_mobile"`
	Skype            string `json:"skype"`
	Facebook         string `json:"facebook"`
	Twitter          string `json:"twitter"`
	AvatarImageURL   string `json:"avatar_image_url"`
	LoginMail        string `json:"login_mail"`
}

// MyStatus holds the unread, mention and task counters of the authenticated user.
type MyStatus struct {
	UnreadRoomNum  int64 `json:"unread_room_num"`
	MentionRoomNum int64 `json:"mention_room_num"`
	MytaskRoomNum  int64 `json:"mytask_room_num"`
	UnreadNum      int64 `json:"unread_num"`
	MentionNum     int64 `json:"mention_num"`
	MytaskNum      int64 `json:"mytask_num"`
}

type TaskRoom struct {
	RoomID   int64  `json:"room_id"`
	Name     string `json:"name"`
	IconPath string `json:"icon_path"`
}

// MyTask is a task assigned to the authenticated user.
type MyTask struct {
	TaskID            int64      `json:"task_id"`
	Room              TaskRoom   `json:"room"`
	AssignedByAccount Account    `json:"assigned_by_account"`
	MessageID         string     `json:"message_id"`
	Body              string     `json:"body"`
	LimitTime         UnixTime   `json:"limit_time"`
	Status            TaskStatus `json:"status"`
	LimitType         LimitType  `json:"limit_type"`
}

type Contact struct {
	AccountID        int64  `json:"account_id"`
	RoomID           int64  `json:"room_id"`
	Name             string `json:"name"`
	ChatworkID       string `json:"chatwork_id"`
	OrganizationID   int64  `json:"organization_id"`
	OrganizationName string `json:"organization_name"`
	Department       string `json:"department"`
	AvatarImageURL   string `json:"avatar_image_url"`
}

type Room struct {
	RoomID         int64    `json:"room_id"`
	Name           string   `json:"name"`
	Type           RoomType `json:"type"`
	Role           Role     `json:"role"`
	Sticky         bool     `json:"sticky"`
	UnreadNum      int64    `json:"unread_num"`
	MentionNum     int64    `json:"mention_num"`
	MytaskNum      int64    `json:"mytask_num"`
	MessageNum     int64    `json:"message_num"`
	FileNum        int64    `json:"file_num"`
	TaskNum        int64    `json:"task_num"`
	IconPath       string   `json:"icon_path"`
	LastUpdateTime UnixTime `json:"last_update_time"`
	Description    string   `json:"description,omitempty"`
}

type RoomID struct {
	RoomID int64 `json:"room_id"`
}

type Member struct {
	AccountID        int64  `json:"account_id"`
	Role             Role   `json:"role"`
	Name             string `json:"name"`
	ChatworkID       string `json:"chatwork_id"`
	OrganizationID   int64  `json:"organization_id"`
	OrganizationName string `json:"organization_name"`
	Department       string `json:"department"`
	AvatarImageURL   string `json:"avatar_image_url"`
}

// MembersSummary lists account ids per role after a membership update.
type MembersSummary struct {
	Admin    []int64 `json:"admin"`
	Member   []int64 `json:"member"`
	Readonly []int64 `json:"readonly"`
}

type Message struct {
	MessageID  string   `json:"message_id"`
	Account    Account  `json:"account"`
	Body       string   `json:"body"`
	SendTime   UnixTime `json:"send_time"`
	UpdateTime UnixTime `json:"update_time"`
}

type MessageID struct {
	MessageID string `json:"message_id"`
}

// UnreadStatus is returned after marking messages read or unread.
type UnreadStatus struct {
	UnreadNum  int64 `json:"unread_num"`
	MentionNum int64 `json:"mention_num"`
}

type Task struct {
	TaskID            int64      `json:"task_id"`
	Account           Account    `json:"account"`
	AssignedByAccount Account    `json:"assigned_by_account"`
	MessageID         string     `json:"message_id"`
	Body              string     `json:"body"`
	LimitTime         UnixTime   `json:"limit_time"`
	Status            TaskStatus `json:"status"`
	LimitType         LimitType  `json:"limit_type"`
}

type TaskIDs struct {
	TaskIDs []int64 `json:"task_ids"`
}

type TaskID struct {
	TaskID int64 `json:"task_id"`
}

type File struct {
	FileID      int64    `json:"file_id"`
	Account     Account  `json:"account"`
	MessageID   string   `json:"message_id"`
	Filename    string   `json:"filename"`
	Filesize    int64    `json:"filesize"`
	UploadTime  UnixTime `json:"upload_time"`
	DownloadURL string   `json:"download_url,omitempty"`
}

type FileID struct {
	FileID int64 `json:"file_id"`
}

// Link is a room's invitation link.
type Link struct {
	Public         bool   `json:"public"`
	URL            string `json:"url"`
	NeedAcceptance bool   `json:"need_acceptance"`
	Description    string `json:"description"`
}

// IncomingRequest is a pending contact request addressed to the authenticated user.
type IncomingRequest struct {
	RequestID        int64  `json:"request_id"`
	AccountID        int64  `json:"account_id"`
	Message          string `json:"message"`
	Name             string `json:"name"`
	ChatworkID       string `json:"chatwork_id"`
	OrganizationID   int64  `json:"organization_id"`
	OrganizationName string `json:"organization_name"`
	Department       string `json:"department"`
	AvatarImageURL   string `json:"avatar_image_url"`
}

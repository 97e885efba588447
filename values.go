package chatwork

import "fmt"

// enumNames maps enum members (starting at 1) to their Go symbol and wire string.
// The zero member of every enum means "not set".
type enumNames [][2]string

func (n enumNames) symbol(v int) string {
	if v < 1 || v > len(n) {
		return ""
	}
	return n[v-1][0]
}

func (n enumNames) wire(v int) string {
	if v < 1 || v > len(n) {
		return ""
	}
	return n[v-1][1]
}

func (n enumNames) marshal(typ string, v int) ([]byte, error) {
	if v == 0 {
		return []byte{}, nil
	}
	w := n.wire(v)
	if w == "" {
		w = n.symbol(v)
	}
	if w == "" {
		return nil, fmt.Errorf("chatwork: invalid %s %d", typ, v)
	}
	return []byte(w), nil
}

func (n enumNames) parse(typ string, b []byte) (int, error) {
	s := string(b)
	if s == "" {
		return 0, nil
	}
	for i, name := range n {
		if name[1] == s || name[0] == s {
			return i + 1, nil
		}
	}
	return 0, fmt.Errorf("chatwork: unknown %s %q", typ, s)
}

// IconPreset is a room icon.
type IconPreset int

const (
	IconGroup IconPreset = iota + 1
	IconCheck
	IconDocument
	IconMeeting
	IconEvent
	IconProject
	IconBusiness
	IconStudy
	IconSecurity
	IconStar
	IconIdea
	IconHeart
)

var iconPresetNames = enumNames{
	{"Group", "group"},
	{"Check", "check"},
	{"Document", "document"},
	{"Meeting", "meeting"},
	{"Event", "event"},
	{"Project", "project"},
	{"Business", "business"},
	{"Study", "study"},
	{"Security", "security"},
	{"Star", "star"},
	{"Idea", "idea"},
	{"Heart", "heart"},
}

func (v IconPreset) Symbol() string { return iconPresetNames.symbol(int(v)) }
func (v IconPreset) Wire() string   { return iconPresetNames.wire(int(v)) }
func (v IconPreset) String() string { return v.Wire() }

func (v IconPreset) MarshalText() ([]byte, error) {
	return iconPresetNames.marshal("icon preset", int(v))
}

func (v *IconPreset) UnmarshalText(b []byte) error {
	n, err := iconPresetNames.parse("icon preset", b)
	*v = IconPreset(n)
	return err
}

// Role is a member's permission within a room.
type Role int

const (
	RoleAdmin Role = iota + 1
	RoleMember
	RoleReadonly
)

var roleNames = enumNames{
	{"Admin", "admin"},
	{"Member", "member"},
	{"Readonly", "readonly"},
}

func (v Role) Symbol() string { return roleNames.symbol(int(v)) }
func (v Role) Wire() string   { return roleNames.wire(int(v)) }
func (v Role) String() string { return v.Wire() }

func (v Role) MarshalText() ([]byte, error) { return roleNames.marshal("role", int(v)) }

func (v *Role) UnmarshalText(b []byte) error {
	n, err := roleNames.parse("role", b)
	*v = Role(n)
	return err
}

// RoomType distinguishes the personal, direct and group chats.
type RoomType int

const (
	RoomMy RoomType = iota + 1
	RoomDirect
	RoomGroup
)

var roomTypeNames = enumNames{
	{"My", "my"},
	{"Direct", "direct"},
	{"Group", "group"},
}

func (v RoomType) Symbol() string { return roomTypeNames.symbol(int(v)) }
func (v RoomType) Wire() string   { return roomTypeNames.wire(int(v)) }
func (v RoomType) String() string { return v.Wire() }

func (v RoomType) MarshalText() ([]byte, error) { return roomTypeNames.marshal("room type", int(v)) }

func (v *RoomType) UnmarshalText(b []byte) error {
	n, err := roomTypeNames.parse("room type", b)
	*v = RoomType(n)
	return err
}

type TaskStatus int

const (
	TaskOpen TaskStatus = iota + 1
	TaskDone
)

var taskStatusNames = enumNames{
	{"Open", "open"},
	{"Done", "done"},
}

func (v TaskStatus) Symbol() string { return taskStatusNames.symbol(int(v)) }
func (v TaskStatus) Wire() string   { return taskStatusNames.wire(int(v)) }
func (v TaskStatus) String() string { return v.Wire() }

func (v TaskStatus) MarshalText() ([]byte, error) {
	return taskStatusNames.marshal("task status", int(v))
}

func (v *TaskStatus) UnmarshalText(b []byte) error {
	n, err := taskStatusNames.parse("task status", b)
	*v = TaskStatus(n)
	return err
}

// LimitType is the precision of a task deadline.
type LimitType int

const (
	LimitNone LimitType = iota + 1
	LimitDate
	LimitTime
)

var limitTypeNames = enumNames{
	{"None", "none"},
	{"Date", "date"},
	{"Time", "time"},
}

func (v LimitType) Symbol() string { return limitTypeNames.symbol(int(v)) }
func (v LimitType) Wire() string   { return limitTypeNames.wire(int(v)) }
func (v LimitType) String() string { return v.Wire() }

func (v LimitType) MarshalText() ([]byte, error) {
	return limitTypeNames.marshal("limit type", int(v))
}

func (v *LimitType) UnmarshalText(b []byte) error {
	n, err := limitTypeNames.parse("limit type", b)
	*v = LimitType(n)
	return err
}

// DeleteAction selects between leaving a room and deleting it.
type DeleteAction int

const (
	ActionLeave DeleteAction = iota + 1
	ActionDelete
)

var deleteActionNames = enumNames{
	{"Leave", "leave"},
	{"Delete", "delete"},
}

func (v DeleteAction) Symbol() string { return deleteActionNames.symbol(int(v)) }
func (v DeleteAction) Wire() string   { return deleteActionNames.wire(int(v)) }
func (v DeleteAction) String() string { return v.Wire() }

func (v DeleteAction) MarshalText() ([]byte, error) {
	return deleteActionNames.marshal("delete action", int(v))
}

func (v *DeleteAction) UnmarshalText(b []byte) error {
	n, err := deleteActionNames.parse("delete action", b)
	*v = DeleteAction(n)
	return err
}

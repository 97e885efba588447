package chatwork

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	moderr "github.com/lizzyg/chatwork/errors"
)

type recorded struct {
	method string
	path   string
	query  string
	body   string
	ctype  string
}

type recorder struct {
	mu   sync.Mutex
	reqs []recorded
}

func (r *recorder) last() recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.reqs) == 0 {
		return recorded{}
	}
	return r.reqs[len(r.reqs)-1]
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reqs)
}

func newTestClient(t *testing.T, respond func(w http.ResponseWriter, r *http.Request)) (*Client, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		rec.mu.Lock()
		rec.reqs = append(rec.reqs, recorded{
			method: r.Method,
			path:   r.URL.EscapedPath(),
			query:  r.URL.RawQuery,
			body:   string(b),
			ctype:  r.Header.Get("Content-Type"),
		})
		rec.mu.Unlock()
		if respond != nil {
			respond(w, r)
			return
		}
		_, _ = io.WriteString(w, "null")
	}))
	t.Cleanup(srv.Close)

	cfg := DefaultConfig()
	cfg.BaseURL = srv.URL + "/v2"
	cfg.Token = "tok"
	cfg.MaxFileSize = 64
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewFromConfig(cfg, WithLogger(logger), WithHTTPClient(srv.Client())), rec
}

func run[T any](call *Call[T]) error {
	resp, err := call.Do(context.Background())
	if err != nil {
		return err
	}
	return resp.Err()
}

func TestEndpoints(t *testing.T) {
	limit := time.Unix(1700000000, 0)
	cases := []struct {
		name   string
		method string
		path   string
		wire   string
		call   func(c *Client) error
	}{
		{"Me", "GET", "/v2/me", "", func(c *Client) error { return run(c.Me()) }},
		{"MyStatus", "GET", "/v2/my/status", "", func(c *Client) error { return run(c.MyStatus()) }},
		{"MyTasks", "GET", "/v2/my/tasks", "assigned_by_account_id=5&status=open", func(c *Client) error {
			return run(c.MyTasks(&MyTasksParams{AssignedByAccountID: Int64(5), Status: TaskOpen}))
		}},
		{"Contacts", "GET", "/v2/contacts", "", func(c *Client) error { return run(c.Contacts()) }},
		{"Rooms", "GET", "/v2/rooms", "", func(c *Client) error { return run(c.Rooms()) }},
		{"CreateRoom", "POST", "/v2/rooms", "name=A&icon_preset=group&members_admin_ids=1%2C2", func(c *Client) error {
			return run(c.CreateRoom(&NewRoomParams{Name: "A", IconPreset: IconGroup, MembersAdminIDs: []int64{1, 2}}))
		}},
		{"Room", "GET", "/v2/rooms/10", "", func(c *Client) error { return run(c.Room(10)) }},
		{"UpdateRoom", "PUT", "/v2/rooms/10", "description=new&icon_preset=star", func(c *Client) error {
			return run(c.UpdateRoom(10, &UpdateRoomParams{Description: "new", IconPreset: IconStar}))
		}},
		{"DeleteRoom", "DELETE", "/v2/rooms/10", "action_type=leave", func(c *Client) error {
			return run(c.DeleteRoom(10, &DeleteRoomParams{ActionType: ActionLeave}))
		}},
		{"RoomMembers", "GET", "/v2/rooms/10/members", "", func(c *Client) error { return run(c.RoomMembers(10)) }},
		{"UpdateRoomMembers", "PUT", "/v2/rooms/10/members", "members_admin_ids=1&members_readonly_ids=3%2C4", func(c *Client) error {
			return run(c.UpdateRoomMembers(10, &UpdateRoomMembersParams{MembersAdminIDs: []int64{1}, MembersReadonlyIDs: []int64{3, 4}}))
		}},
		{"Messages", "GET", "/v2/rooms/10/messages", "force=1", func(c *Client) error {
			return run(c.Messages(10, &MessagesParams{Force: Bool(true)}))
		}},
		{"SendMessage", "POST", "/v2/rooms/10/messages", "body=hello+world&self_unread=0", func(c *Client) error {
			return run(c.SendMessage(10, &NewMessageParams{Body: "hello world", SelfUnread: Bool(false)}))
		}},
		{"MarkRead", "PUT", "/v2/rooms/10/messages/read", "message_id=99", func(c *Client) error {
			return run(c.MarkRead(10, &TargetMessageParams{MessageID: "99"}))
		}},
		{"MarkUnread", "PUT", "/v2/rooms/10/messages/unread", "message_id=99", func(c *Client) error {
			return run(c.MarkUnread(10, &TargetMessageParams{MessageID: "99"}))
		}},
		{"Message", "GET", "/v2/rooms/10/messages/99", "", func(c *Client) error { return run(c.Message(10, "99")) }},
		{"UpdateMessage", "PUT", "/v2/rooms/10/messages/99", "body=edited", func(c *Client) error {
			return run(c.UpdateMessage(10, "99", &UpdateMessageParams{Body: "edited"}))
		}},
		{"DeleteMessage", "DELETE", "/v2/rooms/10/messages/99", "", func(c *Client) error { return run(c.DeleteMessage(10, "99")) }},
		{"RoomTasks", "GET", "/v2/rooms/10/tasks", "account_id=1&status=done", func(c *Client) error {
			return run(c.RoomTasks(10, &RoomTasksParams{AccountID: Int64(1), Status: TaskDone}))
		}},
		{"CreateTask", "POST", "/v2/rooms/10/tasks", "body=do+it&limit=1700000000&limit_type=time&to_ids=1%2C2", func(c *Client) error {
			return run(c.CreateTask(10, &NewTaskParams{Body: "do it", Limit: limit, LimitType: LimitTime, ToIDs: []int64{1, 2}}))
		}},
		{"Task", "GET", "/v2/rooms/10/tasks/7", "", func(c *Client) error { return run(c.Task(10, 7)) }},
		{"UpdateTaskStatus", "PUT", "/v2/rooms/10/tasks/7/status", "body=done", func(c *Client) error {
			return run(c.UpdateTaskStatus(10, 7, &UpdateTaskStatusParams{Body: TaskDone}))
		}},
		{"Files", "GET", "/v2/rooms/10/files", "account_id=3", func(c *Client) error {
			return run(c.Files(10, &FilesParams{AccountID: Int64(3)}))
		}},
		{"File", "GET", "/v2/rooms/10/files/4", "create_download_url=1", func(c *Client) error {
			return run(c.File(10, 4, &FileParams{CreateDownloadURL: Bool(true)}))
		}},
		{"RoomLink", "GET", "/v2/rooms/10/link", "", func(c *Client) error { return run(c.RoomLink(10)) }},
		{"CreateRoomLink", "POST", "/v2/rooms/10/link", "code=team&need_acceptance=1", func(c *Client) error {
			return run(c.CreateRoomLink(10, &LinkParams{Code: "team", NeedAcceptance: Bool(true)}))
		}},
		{"UpdateRoomLink", "PUT", "/v2/rooms/10/link", "description=join+us", func(c *Client) error {
			return run(c.UpdateRoomLink(10, &LinkParams{Description: "join us"}))
		}},
		{"DeleteRoomLink", "DELETE", "/v2/rooms/10/link", "", func(c *Client) error { return run(c.DeleteRoomLink(10)) }},
		{"IncomingRequests", "GET", "/v2/incoming_requests", "", func(c *Client) error { return run(c.IncomingRequests()) }},
		{"AcceptIncomingRequest", "PUT", "/v2/incoming_requests/8", "", func(c *Client) error { return run(c.AcceptIncomingRequest(8)) }},
		{"RejectIncomingRequest", "DELETE", "/v2/incoming_requests/8", "", func(c *Client) error { return run(c.RejectIncomingRequest(8)) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestClient(t, nil)
			if err := tc.call(c); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			got := rec.last()
			if got.method != tc.method || got.path != tc.path {
				t.Fatalf("got %s %s, want %s %s", got.method, got.path, tc.method, tc.path)
			}
			wire := got.body
			if tc.method == "GET" || tc.method == "DELETE" {
				wire = got.query
			}
			if wire != tc.wire {
				t.Fatalf("wire = %q, want %q", wire, tc.wire)
			}
		})
	}
}

func TestCreateRoom_RequiresAdmins(t *testing.T) {
	c, rec := newTestClient(t, nil)
	_, err := c.CreateRoom(&NewRoomParams{Name: "A", IconPreset: IconGroup}).Do(context.Background())

	var ve *moderr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Type != "NewRoomParams" || ve.Field != "MembersAdminIDs" || ve.Wire != "members_admin_ids" {
		t.Fatalf("unexpected error: %+v", ve)
	}
	if rec.count() != 0 {
		t.Fatal("no request expected")
	}
}

func TestCreateTask_NilParams(t *testing.T) {
	c, rec := newTestClient(t, nil)
	if _, err := c.CreateTask(1, nil).Do(context.Background()); !errors.Is(err, moderr.ErrRequiredField) {
		t.Fatalf("expected ErrRequiredField, got %v", err)
	}
	if rec.count() != 0 {
		t.Fatal("no request expected")
	}
}

func TestUploadFile(t *testing.T) {
	c, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"file_id":42}`)
	})
	resp, err := c.UploadFile(10, &NewFileParams{File: FileText("hello.txt", "hi"), Message: "caption"}).Do(context.Background())
	if err != nil || !resp.Success || resp.Data.FileID != 42 {
		t.Fatalf("unexpected outcome: %+v %v", resp, err)
	}
	got := rec.last()
	if got.method != "POST" || got.path != "/v2/rooms/10/files" || !strings.HasPrefix(got.ctype, "multipart/form-data") {
		t.Fatalf("unexpected request: %+v", got)
	}
	if !strings.Contains(got.body, `filename="hello.txt"`) || !strings.Contains(got.body, "caption") {
		t.Fatalf("unexpected body: %s", got.body)
	}

	_, err = c.UploadFile(10, &NewFileParams{File: FileBytes("big.bin", make([]byte, 65))}).Do(context.Background())
	if !errors.Is(err, moderr.ErrFileTooLarge) {
		t.Fatalf("expected ErrFileTooLarge, got %v", err)
	}
	if rec.count() != 1 {
		t.Fatalf("oversized upload must not be sent, got %d requests", rec.count())
	}
}

func TestUploadFile_RunTwice(t *testing.T) {
	c, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"file_id":42}`)
	})
	files := []*FileContent{
		FileBytes("a.txt", []byte("PAYLOAD")),
		FileReader("b.txt", strings.NewReader("PAYLOAD")),
	}
	for _, file := range files {
		call := c.UploadFile(10, &NewFileParams{File: file})
		if _, err := call.Do(context.Background()); err != nil {
			t.Fatalf("%s first run: %v", file.Name, err)
		}
		first := rec.last().body
		if _, err := call.Go(context.Background()).Await(); err != nil {
			t.Fatalf("%s second run: %v", file.Name, err)
		}
		second := rec.last().body
		for i, body := range []string{first, second} {
			if !strings.Contains(body, "PAYLOAD") {
				t.Fatalf("%s run %d uploaded an empty file:\n%s", file.Name, i+1, body)
			}
		}
	}
	if rec.count() != 4 {
		t.Fatalf("expected four requests, got %d", rec.count())
	}
}

func TestFailureEnvelope(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"errors":["Invalid API token"]}`)
	})
	resp, err := c.Me().Do(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Success || resp.StatusCode != 401 || resp.Error.Errors[0] != "Invalid API token" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
	if resp.Data != (Profile{}) {
		t.Fatalf("data must be zero: %+v", resp.Data)
	}
	if !errors.Is(resp.Err(), moderr.ErrAPI) {
		t.Fatalf("Err() should wrap ErrAPI: %v", resp.Err())
	}
}

func TestRoomDecoding(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"room_id":10,"name":"Team","type":"group","role":"readonly",
			"sticky":true,"icon_path":"https://example.com/ico.png","last_update_time":1700000000}`)
	})
	resp, err := c.Room(10).Do(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r := resp.Data
	if r.Type != RoomGroup || r.Role != RoleReadonly || !r.Sticky {
		t.Fatalf("unexpected room: %+v", r)
	}
	if !r.LastUpdateTime.Equal(time.Unix(1700000000, 0)) {
		t.Fatalf("unexpected time: %v", r.LastUpdateTime)
	}
}

func TestTaskDecoding_UnknownStatus(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"task_id":1,"status":"archived"}`)
	})
	_, err := c.Task(1, 1).Do(context.Background())
	if !errors.Is(err, moderr.ErrDecodeResponse) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

func TestThenAndGo(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"unread_room_num":2,"mytask_num":3}`)
	})
	ctx := context.Background()

	pending := c.MyStatus().Go(ctx)
	viaGo, err := pending.Await()
	if err != nil || viaGo.Data.UnreadRoomNum != 2 {
		t.Fatalf("Go: %+v %v", viaGo, err)
	}

	var viaThen Response[MyStatus]
	<-c.MyStatus().Then(ctx, func(r Response[MyStatus], err error) { viaThen = r })
	if viaThen != viaGo {
		t.Fatalf("Then %+v differs from Go %+v", viaThen, viaGo)
	}
}

func TestNew(t *testing.T) {
	c := New("secret")
	cfg := c.Config()
	if cfg.BaseURL != "https://api.chatwork.com/v2" || cfg.TokenHeader != "X-ChatWorkToken" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Token != "" {
		t.Fatal("Config must not expose the token")
	}
	if c.token != "secret" {
		t.Fatalf("token = %q", c.token)
	}
}

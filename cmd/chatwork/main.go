// chatwork is a small command-line front end for the Chatwork API client.
// Every command prints the response envelope as indented JSON and exits with
// status 1 when the call fails.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/pflag"

	"github.com/lizzyg/chatwork"
	"github.com/lizzyg/chatwork/internal/config"
	"github.com/lizzyg/chatwork/internal/util"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	token      string
	verbose    bool
	force      bool
	selfUnread bool
	message    string
}

func run(argv []string, out io.Writer) error {
	var opts options
	flagSet := pflag.NewFlagSet("chatwork", pflag.ContinueOnError)
	flagSet.StringVar(&opts.configPath, "config", "", "config file (yaml, json or jsonc); default ./chatwork.yaml")
	flagSet.StringVar(&opts.token, "token", "", "API token (overrides config and CHATWORK__TOKEN)")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log every request to stderr")
	flagSet.BoolVar(&opts.force, "force", false, "messages: return the latest messages even if already read")
	flagSet.BoolVar(&opts.selfUnread, "self-unread", false, "send: leave the message unread for yourself")
	flagSet.StringVar(&opts.message, "message", "", "upload: message posted with the file")
	flagSet.Usage = func() { printHelp(flagSet) }

	if err := flagSet.Parse(argv); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	args := flagSet.Args()
	if len(args) == 0 {
		printHelp(flagSet)
		return errors.New("missing command")
	}

	if args[0] == "schema" {
		if len(args) != 2 {
			return errors.New("usage: chatwork schema <type>")
		}
		return printSchema(out, args[1])
	}

	client, err := newClient(opts)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return dispatch(ctx, client, opts, args, out)
}

func newClient(opts options) (*chatwork.Client, error) {
	var cfg *config.Config
	var err error
	if opts.configPath != "" {
		cfg, err = config.LoadFile(opts.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if opts.token != "" {
		cfg.Token = opts.token
	}
	if cfg.Token == "" {
		return nil, errors.New("no API token: set chatwork.token, CHATWORK__TOKEN or --token")
	}
	if name, ok := config.Unresolved(cfg.Token); ok {
		return nil, fmt.Errorf("API token references %s, which is not set", name)
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	return chatwork.NewFromConfig(*cfg, chatwork.WithLogger(logger)), nil
}

func dispatch(ctx context.Context, c *chatwork.Client, opts options, args []string, out io.Writer) error {
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "me":
		return emit(ctx, out, c.Me())
	case "status":
		return emit(ctx, out, c.MyStatus())
	case "tasks":
		return emit(ctx, out, c.MyTasks(nil))
	case "contacts":
		return emit(ctx, out, c.Contacts())
	case "rooms":
		return emit(ctx, out, c.Rooms())
	case "room", "members", "messages":
		if len(rest) != 1 {
			return fmt.Errorf("usage: chatwork %s <room_id>", cmd)
		}
		roomID, err := parseID(rest[0])
		if err != nil {
			return err
		}
		switch cmd {
		case "room":
			return emit(ctx, out, c.Room(roomID))
		case "members":
			return emit(ctx, out, c.RoomMembers(roomID))
		default:
			p := &chatwork.MessagesParams{}
			if opts.force {
				p.Force = chatwork.Bool(true)
			}
			return emit(ctx, out, c.Messages(roomID, p))
		}
	case "send":
		if len(rest) != 2 {
			return errors.New("usage: chatwork send <room_id> <body>")
		}
		roomID, err := parseID(rest[0])
		if err != nil {
			return err
		}
		p := &chatwork.NewMessageParams{Body: rest[1]}
		if opts.selfUnread {
			p.SelfUnread = chatwork.Bool(true)
		}
		return emit(ctx, out, c.SendMessage(roomID, p))
	case "upload":
		if len(rest) != 2 {
			return errors.New("usage: chatwork upload <room_id> <path>")
		}
		roomID, err := parseID(rest[0])
		if err != nil {
			return err
		}
		f, err := os.Open(rest[1])
		if err != nil {
			return err
		}
		defer f.Close()
		return emit(ctx, out, c.UploadFile(roomID, &chatwork.NewFileParams{
			File:    chatwork.FileReader(filepath.Base(rest[1]), f),
			Message: opts.message,
		}))
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

// emit runs call, prints its envelope and turns a failure envelope into an error.
func emit[T any](ctx context.Context, out io.Writer, call *chatwork.Call[T]) error {
	resp, err := call.Do(ctx)
	if err != nil {
		return err
	}
	b, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(out, string(b))
	return resp.Err()
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

var schemaTypes = map[string]any{
	"profile":          &chatwork.Profile{},
	"status":           &chatwork.MyStatus{},
	"mytask":           &chatwork.MyTask{},
	"contact":          &chatwork.Contact{},
	"room":             &chatwork.Room{},
	"member":           &chatwork.Member{},
	"members_summary":  &chatwork.MembersSummary{},
	"message":          &chatwork.Message{},
	"unread_status":    &chatwork.UnreadStatus{},
	"task":             &chatwork.Task{},
	"file":             &chatwork.File{},
	"link":             &chatwork.Link{},
	"incoming_request": &chatwork.IncomingRequest{},
}

func printSchema(out io.Writer, name string) error {
	obj, ok := schemaTypes[strings.ToLower(name)]
	if !ok {
		names := make([]string, 0, len(schemaTypes))
		for n := range schemaTypes {
			names = append(names, n)
		}
		sort.Strings(names)
		return fmt.Errorf("unknown type %q (known: %s)", name, strings.Join(names, ", "))
	}
	schema, err := util.GenerateJSONSchema(obj)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, schema)
	return nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `Usage: chatwork [flags] <command> [args]

Commands:
  me                        show your profile
  status                    show unread/mention/task counters
  tasks                     list your open tasks
  contacts                  list contacts
  rooms                     list rooms
  room <room_id>            show one room
  members <room_id>         list room members
  messages <room_id>        list messages (--force for already read ones)
  send <room_id> <body>     post a message
  upload <room_id> <path>   upload a file (--message to attach text)
  schema <type>             print the JSON schema of a response type

Flags:
`)
	flagSet.PrintDefaults()
}

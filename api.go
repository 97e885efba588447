package chatwork

import (
	"io"

	"github.com/lizzyg/chatwork/internal/config"
	"github.com/lizzyg/chatwork/internal/core"
	"github.com/lizzyg/chatwork/internal/dispatch"
	"github.com/lizzyg/chatwork/internal/form"
)

// Response is the envelope every endpoint yields.
// Success is StatusCode < 400; Error is set iff the call failed.
type Response[T any] = core.Response[T]

// ErrorData is the error body returned by the API.
type ErrorData = core.ErrorData

// Call is a prepared request. Run it with Do (blocking), Go (awaitable) or
// Then (callback); all three share one code path and yield identical outcomes.
type Call[T any] = dispatch.Call[T]

// Pending is an in-flight call started with Call.Go.
type Pending[T any] = dispatch.Pending[T]

// Config holds the connection settings shared by every request.
type Config = config.Config

// FileContent is a named upload payload.
type FileContent = form.FileContent

// FileBytes builds an upload payload from memory.
func FileBytes(name string, data []byte) *FileContent { return form.FileBytes(name, data) }

// FileText builds an upload payload from a string.
func FileText(name, text string) *FileContent { return form.FileText(name, text) }

// FileReader builds an upload payload from a stream. The stream is read when the
// request is sent.
func FileReader(name string, r io.Reader) *FileContent { return form.FileReader(name, r) }

// DefaultConfig returns the settings of the public Chatwork API.
func DefaultConfig() Config { return config.Default() }

// Bool returns a pointer to v, for optional boolean parameters.
func Bool(v bool) *bool { return &v }

// Int64 returns a pointer to v, for optional integer parameters.
func Int64(v int64) *int64 { return &v }

package dispatch

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	moderr "github.com/lizzyg/chatwork/errors"
	"github.com/lizzyg/chatwork/internal/config"
	"github.com/lizzyg/chatwork/internal/core"
	"github.com/lizzyg/chatwork/internal/form"
)

// maxResponseSize bounds how much of a response body is read.
const maxResponseSize int64 = 64 << 20

// Dispatcher sends single API requests. It holds only read-only settings and is
// safe for concurrent use.
type Dispatcher struct {
	baseURL     string
	tokenHeader string
	maxFileSize int64
	httpClient  *http.Client
	logger      *slog.Logger
}

// New builds a dispatcher. A nil hc gets an http.Client with cfg.Timeout;
// a nil logger falls back to slog.Default().
func New(cfg config.Config, hc *http.Client, logger *slog.Logger) *Dispatcher {
	cfg = cfg.WithDefaults()
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		tokenHeader: cfg.TokenHeader,
		maxFileSize: cfg.MaxFileSize,
		httpClient:  hc,
		logger:      logger,
	}
}

type body struct {
	reader      io.Reader
	contentType string
	multipart   bool
}

// Send performs one request and classifies the result. Failures reported by the
// server, and transport failures, come back as envelopes; the error return is kept
// for validation, size-limit, unsupported-method and decode problems.
func Send[T any](ctx context.Context, d *Dispatcher, token, method, path string, params form.Encoder) (core.Response[T], error) {
	requestURL, b, err := d.prepare(method, path, params)
	if err != nil {
		return core.Response[T]{}, err
	}

	callID := uuid.NewString()
	start := time.Now()
	status, payload, sendErr := d.roundTrip(ctx, token, method, requestURL, b)

	d.logger.Info("chatwork call",
		slog.String("call_id", callID),
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Bool("multipart", b.multipart),
		slog.Duration("latency_ms", time.Since(start)),
		slog.Bool("error", sendErr != nil || status >= 400),
	)

	if sendErr != nil {
		return core.Fail[T](core.TransportStatus, core.ErrorData{Errors: []string{sendErr.Error()}}), nil
	}
	return classify[T](status, payload)
}

// prepare validates the method and encodes params into a URL and body.
// Nothing here touches the network.
func (d *Dispatcher) prepare(method, path string, params form.Encoder) (string, body, error) {
	requestURL := d.baseURL + path
	var b body

	switch method {
	case http.MethodGet, http.MethodDelete, http.MethodPost, http.MethodPut:
	default:
		return "", b, &moderr.UnsupportedMethodError{Method: method}
	}
	if params == nil {
		return requestURL, b, nil
	}

	var items []form.Item
	if params.HasFiles() {
		parts, err := params.BuildParts(d.maxFileSize)
		if err != nil {
			return "", b, err
		}
		if parts.Multipart {
			if method != http.MethodPost && method != http.MethodPut {
				return "", b, &moderr.UnsupportedMethodError{Method: method, Multipart: true}
			}
			var buf bytes.Buffer
			contentType, err := form.WriteMultipart(&buf, parts)
			if err != nil {
				return "", b, fmt.Errorf("chatwork: encoding multipart body: %w", err)
			}
			return requestURL, body{reader: &buf, contentType: contentType, multipart: true}, nil
		}
		items = parts.TextItems()
	} else {
		var err error
		if items, err = params.Marshal(); err != nil {
			return "", b, err
		}
	}

	if len(items) == 0 {
		return requestURL, b, nil
	}
	encoded := form.Encode(items)
	if method == http.MethodGet || method == http.MethodDelete {
		return requestURL + "?" + encoded, b, nil
	}
	return requestURL, body{reader: strings.NewReader(encoded), contentType: "application/x-www-form-urlencoded"}, nil
}

func (d *Dispatcher) roundTrip(ctx context.Context, token, method, requestURL string, b body) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, requestURL, b.reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set(d.tokenHeader, token)
	req.Header.Set("Accept", "application/json")
	if b.contentType != "" {
		req.Header.Set("Content-Type", b.contentType)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, payload, nil
}

func classify[T any](status int, payload []byte) (core.Response[T], error) {
	trimmed := bytes.TrimSpace(payload)

	if status >= 400 {
		var e core.ErrorData
		if len(trimmed) == 0 || json.Unmarshal(trimmed, &e) != nil || len(e.Errors) == 0 {
			e = core.ErrorData{Errors: []string{fallbackMessage(status, trimmed)}}
		}
		return core.Fail[T](status, e), nil
	}

	var data T
	if len(trimmed) > 0 {
		if err := json.Unmarshal(trimmed, &data); err != nil {
			return core.Response[T]{}, &moderr.SerializationError{StatusCode: status, Type: fmt.Sprintf("%T", data), Err: err}
		}
	}
	return core.Ok(status, data), nil
}

func fallbackMessage(status int, payload []byte) string {
	if len(payload) > 0 {
		return string(payload)
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return fmt.Sprintf("http %d", status)
}

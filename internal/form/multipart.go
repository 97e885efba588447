package form

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/textproto"
	"path/filepath"
	"strings"
	"sync"

	moderr "github.com/lizzyg/chatwork/errors"
)

// FileContent is a named file payload for multipart uploads. In-memory payloads are
// sent unchanged on every run of a request. A stream is read once, on the first run,
// and the buffered bytes are reused afterwards. Use it by pointer only.
type FileContent struct {
	Name string

	data   []byte
	stream io.Reader

	once sync.Once
	read int64 // limit the stream was buffered under
	err  error
}

// FileBytes wraps an in-memory payload. data must not be modified while requests
// built from it are running.
func FileBytes(name string, data []byte) *FileContent {
	return &FileContent{Name: name, data: data}
}

// FileText wraps a text payload.
func FileText(name, text string) *FileContent {
	return &FileContent{Name: name, data: []byte(text)}
}

// FileReader wraps a stream. It is read when the first request is built, up to the
// dispatcher's file size limit.
func FileReader(name string, r io.Reader) *FileContent {
	return &FileContent{Name: name, stream: r}
}

// payload returns the bytes to send, checked against max.
func (fc *FileContent) payload(field string, max int64) ([]byte, error) {
	limit := max
	if fc.stream != nil {
		fc.once.Do(func() {
			fc.read = max
			data, err := io.ReadAll(io.LimitReader(fc.stream, max+1))
			if err != nil {
				fc.err = fmt.Errorf("form: reading %s: %w", fc.Name, err)
				return
			}
			fc.data = data
		})
		if fc.err != nil {
			return nil, fc.err
		}
		// the stream was cut off at the first limit; its full length is unknown
		if int64(len(fc.data)) > fc.read {
			limit = min(limit, fc.read)
		}
	}
	if int64(len(fc.data)) > limit {
		return nil, &moderr.SizeLimitError{Field: field, Filename: fc.Name, Max: limit}
	}
	if fc.data == nil {
		return []byte{}, nil
	}
	return fc.data, nil
}

type PartKind int

const (
	TextPart PartKind = iota + 1
	FilePart
)

// Part is one section of a multipart body.
type Part struct {
	Kind     PartKind
	Name     string
	Value    string // text parts
	Filename string // file parts
	Data     []byte // file parts
}

// Parts is the result of BuildParts. Multipart is true iff Items holds a file part.
type Parts struct {
	Items     []Part
	Multipart bool
}

// TextItems returns the text parts as form items, for requests that stay url-encoded.
func (p Parts) TextItems() []Item {
	items := make([]Item, 0, len(p.Items))
	for _, part := range p.Items {
		if part.Kind == TextPart {
			items = append(items, Item{Name: part.Name, Value: part.Value})
		}
	}
	return items
}

// BuildParts renders p as multipart sections. File payloads are read into memory and
// must not exceed maxFileSize bytes; text fields encode exactly as in Marshal.
func BuildParts[P any](s *Schema[P], p *P, maxFileSize int64) (Parts, error) {
	var out Parts
	for _, f := range s.Fields {
		v, ok := f.value(p)
		if !ok {
			if f.Required {
				return Parts{}, missing(s, f)
			}
			continue
		}
		if fc, isFile := v.(*FileContent); isFile {
			data, err := fc.payload(f.Name, maxFileSize)
			if err != nil {
				return Parts{}, err
			}
			out.Items = append(out.Items, Part{Kind: FilePart, Name: f.Wire, Filename: fc.Name, Data: data})
			out.Multipart = true
			continue
		}
		text, err := encodeValue(f.Strategy, f.Converter, v)
		if err != nil {
			return Parts{}, fmt.Errorf("form: %s.%s: %w", s.Type, f.Name, err)
		}
		out.Items = append(out.Items, Part{Kind: TextPart, Name: f.Wire, Value: text})
	}
	return out, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// WriteMultipart writes parts as a multipart/form-data body and returns its content type.
func WriteMultipart(w io.Writer, parts Parts) (string, error) {
	mw := multipart.NewWriter(w)
	for _, part := range parts.Items {
		switch part.Kind {
		case TextPart:
			if err := mw.WriteField(part.Name, part.Value); err != nil {
				return "", err
			}
		case FilePart:
			h := make(textproto.MIMEHeader)
			h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
				quoteEscaper.Replace(part.Name), quoteEscaper.Replace(part.Filename)))
			h.Set("Content-Type", ContentType(part.Filename))
			pw, err := mw.CreatePart(h)
			if err != nil {
				return "", err
			}
			if _, err := pw.Write(part.Data); err != nil {
				return "", err
			}
		}
	}
	if err := mw.Close(); err != nil {
		return "", err
	}
	return mw.FormDataContentType(), nil
}

// contentTypes pins the types of common attachments so the result does not depend on
// the host's MIME tables.
var contentTypes = map[string]string{
	".txt":  "text/plain",
	".csv":  "text/csv",
	".htm":  "text/html",
	".html": "text/html",
	".css":  "text/css",
	".js":   "text/javascript",
	".json": "application/json",
	".xml":  "application/xml",
	".pdf":  "application/pdf",
	".zip":  "application/zip",
	".gz":   "application/gzip",
	".7z":   "application/x-7z-compressed",
	".rar":  "application/vnd.rar",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":  "application/vnd.ms-excel",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".ppt":  "application/vnd.ms-powerpoint",
	".pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".ico":  "image/vnd.microsoft.icon",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".mp4":  "video/mp4",
	".mov":  "video/quicktime",
}

// ContentType derives a MIME type from the filename extension. Extensions outside
// the fixed table fall back to the mime package.
func ContentType(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if t, ok := contentTypes[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}

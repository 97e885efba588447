package chatwork

import (
	"fmt"
	"net/http"

	"github.com/lizzyg/chatwork/internal/form"
)

type FilesParams struct {
	AccountID *int64
}

var filesSchema = form.NewSchema("FilesParams",
	form.Int64("account_id", "AccountID", func(p *FilesParams) *int64 { return p.AccountID }),
)

type FileParams struct {
	CreateDownloadURL *bool
}

var fileSchema = form.NewSchema("FileParams",
	form.Flag("create_download_url", "CreateDownloadURL", func(p *FileParams) *bool { return p.CreateDownloadURL }),
)

// NewFileParams uploads File with an optional message. The payload is limited to
// the configured maximum file size.
type NewFileParams struct {
	File    *FileContent
	Message string
}

var newFileSchema = form.NewSchema("NewFileParams",
	form.Upload("file", "File", func(p *NewFileParams) *FileContent { return p.File }).Require(),
	form.String("message", "Message", func(p *NewFileParams) string { return p.Message }),
)

// Files lists up to 100 files of a room.
func (c *Client) Files(roomID int64, p *FilesParams) *Call[[]File] {
	return newCall[[]File](c, http.MethodGet, roomPath(roomID, "/files"), form.Bind(filesSchema, p))
}

// UploadFile sends a multipart upload to a room.
func (c *Client) UploadFile(roomID int64, p *NewFileParams) *Call[FileID] {
	return newCall[FileID](c, http.MethodPost, roomPath(roomID, "/files"), form.Bind(newFileSchema, p))
}

func (c *Client) File(roomID, fileID int64, p *FileParams) *Call[File] {
	return newCall[File](c, http.MethodGet, roomPath(roomID, fmt.Sprintf("/files/%d", fileID)), form.Bind(fileSchema, p))
}

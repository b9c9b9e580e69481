package removebg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/armanrma7/rmbg/media"
)

const (
	removePath = "/remove-bg-tb"
	healthPath = "/health"

	// how much of an error response body to keep for reporting
	maxErrorBody = 4 << 10
)

type Config struct {
	BaseURL string

	// Timeout of zero imposes none: a stalled backend blocks the submission
	// until the caller's context gives up.
	Timeout time.Duration
}

// Cutout is the backend's answer: an opaque image blob, expected to be a PNG
// with an alpha channel, rendered or saved as-is.
type Cutout struct {
	Name    string
	Mime    string
	Content []byte
}

// Client talks to the Transparent Background API. A single request per
// submission, no retries: every failure ends the attempt and is surfaced
// to the caller.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")

	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
}

// Remove uploads the prepared image as the multipart field "file" and returns
// the transparent cutout. Options are validated before any network I/O.
func (c *Client) Remove(ctx context.Context, img *media.PreparedImage, opts Options) (*Cutout, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreatePart(fileHeader("file", img.Name, img.Mime))
	if err != nil {
		return nil, errors.Wrap(ErrNetwork, err.Error())
	}

	if _, err := part.Write(img.Content); err != nil {
		return nil, errors.Wrap(ErrNetwork, err.Error())
	}

	if err := writer.Close(); err != nil {
		return nil, errors.Wrap(ErrNetwork, err.Error())
	}

	url := c.cfg.BaseURL + removePath + "?" + opts.query().Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, errors.Wrap(ErrNetwork, err.Error())
	}

	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(ErrNetwork, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := ioutil.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &ResponseError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	content, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(ErrNetwork, err.Error())
	}

	mime := resp.Header.Get("Content-Type")
	if mime == "" {
		mime = media.PNG
	}

	return &Cutout{
		Name:    media.PNGName(img.Name),
		Mime:    mime,
		Content: content,
	}, nil
}

// Health probes GET /health. A nil error means the backend is reachable and
// answered with a success status.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+healthPath, nil)
	if err != nil {
		return errors.Wrap(ErrNetwork, err.Error())
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(ErrNetwork, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := ioutil.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &ResponseError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	return nil
}

// fileHeader builds the multipart part the way a browser does: both a file
// name and the file's own content type.
func fileHeader(field, filename, mime string) textproto.MIMEHeader {
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, escapeQuotes(filename)))
	if mime == "" {
		mime = "application/octet-stream"
	}
	h.Set("Content-Type", mime)

	return h
}

func escapeQuotes(s string) string {
	return strings.NewReplacer("\\", "\\\\", `"`, "\\\"").Replace(s)
}

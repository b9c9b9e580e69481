package removebg

import (
	"context"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armanrma7/rmbg/media"
)

var fakeCutout = []byte("\x89PNG\r\n\x1a\nfake png payload")

func preparedFixture() *media.PreparedImage {
	return &media.PreparedImage{
		Name:    "subject.png",
		Mime:    "image/png",
		Content: []byte("prepared image bytes"),
		Width:   1000,
		Height:  500,
		Resized: true,
	}
}

func TestClient_Remove(t *testing.T) {
	t.Run("uploads the file as multipart and decodes the cutout", func(t *testing.T) {
		var gotQuery map[string][]string
		var gotFile []byte
		var gotFilename string

		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/remove-bg-tb", r.URL.Path)
			gotQuery = r.URL.Query()

			require.NoError(t, r.ParseMultipartForm(1<<20))
			file, header, err := r.FormFile("file")
			require.NoError(t, err)
			defer file.Close()

			gotFilename = header.Filename
			gotFile, err = ioutil.ReadAll(file)
			require.NoError(t, err)

			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(fakeCutout)
		}))
		defer backend.Close()

		client := NewClient(Config{BaseURL: backend.URL})

		cutout, err := client.Remove(context.Background(), preparedFixture(), DefaultOptions())
		require.NoError(t, err)

		assert.Equal(t, "subject.png", gotFilename)
		assert.Equal(t, []byte("prepared image bytes"), gotFile)

		assert.Equal(t, []string{"fast"}, gotQuery["mode"])
		assert.Equal(t, []string{"static"}, gotQuery["resize"])
		assert.Equal(t, []string{"rgba"}, gotQuery["output_type"])
		assert.Equal(t, []string{"false"}, gotQuery["reverse"])
		assert.Equal(t, []string{"true"}, gotQuery["crop"])
		assert.Equal(t, []string{"10"}, gotQuery["crop_margin"])
		_, thresholdSent := gotQuery["threshold"]
		assert.False(t, thresholdSent, "threshold must be omitted when unset")

		assert.Equal(t, "subject.png", cutout.Name)
		assert.Equal(t, "image/png", cutout.Mime)
		assert.Equal(t, fakeCutout, cutout.Content)
	})

	t.Run("a set threshold is serialized into the query", func(t *testing.T) {
		var gotThreshold string

		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotThreshold = r.URL.Query().Get("threshold")
			_, _ = w.Write(fakeCutout)
		}))
		defer backend.Close()

		client := NewClient(Config{BaseURL: backend.URL})

		opts := DefaultOptions()
		threshold := 0.75
		opts.Threshold = &threshold

		_, err := client.Remove(context.Background(), preparedFixture(), opts)
		require.NoError(t, err)
		assert.Equal(t, "0.75", gotThreshold)
	})

	t.Run("a non-2xx status surfaces as a ResponseError carrying the code", func(t *testing.T) {
		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "remover exploded", http.StatusServiceUnavailable)
		}))
		defer backend.Close()

		client := NewClient(Config{BaseURL: backend.URL})

		cutout, err := client.Remove(context.Background(), preparedFixture(), DefaultOptions())
		assert.Nil(t, cutout)

		var respErr *ResponseError
		require.True(t, errors.As(err, &respErr))
		assert.Equal(t, http.StatusServiceUnavailable, respErr.StatusCode)
		assert.Contains(t, respErr.Body, "remover exploded")
	})

	t.Run("an unreachable backend surfaces as ErrNetwork", func(t *testing.T) {
		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		backend.Close() // nothing is listening anymore

		client := NewClient(Config{BaseURL: backend.URL})

		cutout, err := client.Remove(context.Background(), preparedFixture(), DefaultOptions())
		assert.Nil(t, cutout)
		assert.True(t, errors.Is(err, ErrNetwork))
	})

	t.Run("invalid options never reach the backend", func(t *testing.T) {
		var calls int
		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
		}))
		defer backend.Close()

		client := NewClient(Config{BaseURL: backend.URL})

		opts := DefaultOptions()
		opts.Mode = "ludicrous"

		_, err := client.Remove(context.Background(), preparedFixture(), opts)

		vErr, ok := err.(*ValidationError)
		require.True(t, ok)
		assert.Contains(t, vErr.Errors(), "mode")
		assert.Equal(t, 0, calls)
	})

	t.Run("the derived cutout name strips the source extension", func(t *testing.T) {
		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(fakeCutout)
		}))
		defer backend.Close()

		client := NewClient(Config{BaseURL: backend.URL})

		img := preparedFixture()
		img.Name = "original.jpg"
		img.Mime = "image/jpeg"

		cutout, err := client.Remove(context.Background(), img, DefaultOptions())
		require.NoError(t, err)
		assert.Equal(t, "original.png", cutout.Name)
	})
}

func TestClient_Health(t *testing.T) {
	t.Run("a healthy backend yields no error", func(t *testing.T) {
		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/health", r.URL.Path)
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		}))
		defer backend.Close()

		client := NewClient(Config{BaseURL: backend.URL})
		assert.NoError(t, client.Health(context.Background()))
	})

	t.Run("a failing backend yields a ResponseError", func(t *testing.T) {
		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusInternalServerError)
		}))
		defer backend.Close()

		client := NewClient(Config{BaseURL: backend.URL})

		err := client.Health(context.Background())
		var respErr *ResponseError
		require.True(t, errors.As(err, &respErr))
		assert.Equal(t, http.StatusInternalServerError, respErr.StatusCode)
	})

	t.Run("an unreachable backend yields ErrNetwork", func(t *testing.T) {
		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		backend.Close()

		client := NewClient(Config{BaseURL: backend.URL})
		assert.True(t, errors.Is(client.Health(context.Background()), ErrNetwork))
	})
}

package webui

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"strconv"
	"strings"

	"github.com/gosimple/slug"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/armanrma7/rmbg/media"
	"github.com/armanrma7/rmbg/preparer"
	"github.com/armanrma7/rmbg/removebg"
	"github.com/armanrma7/rmbg/submission"
)

func (s *Server) page(ctx echo.Context) error {
	return ctx.HTML(http.StatusOK, pageHTML)
}

func (s *Server) removeBackground(ctx echo.Context) error {
	file, err := ctx.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "no file selected")
	}

	source, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not read the selected file")
	}
	defer source.Close()

	content, err := ioutil.ReadAll(source)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "could not read the selected file")
	}

	mime := file.Header.Get("Content-Type")
	if mime == "" {
		mime = media.SniffMime(content)
	}

	src := &media.SourceImage{
		Name:    file.Filename,
		Mime:    mime,
		Content: content,
	}

	opts := s.optionsFromForm(ctx)

	if err := s.session.Select(src); err != nil {
		return mapError(err)
	}

	cutout, err := s.session.Submit(ctx.Request().Context(), opts)
	if err != nil {
		return mapError(err)
	}

	name := slug.Make(strings.TrimSuffix(cutout.Name, ".png")) + ".png"
	ctx.Response().Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", name))

	return ctx.Blob(http.StatusOK, cutout.Mime, cutout.Content)
}

func (s *Server) healthStatus(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, s.health.Status())
}

func (s *Server) getPreferences(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, s.prefs.Snapshot())
}

func (s *Server) updatePreferences(ctx echo.Context) error {
	var snapshot PreferencesSnapshot
	if err := ctx.Bind(&snapshot); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed preferences payload")
	}

	if err := s.prefs.Apply(snapshot); err != nil {
		return mapError(err)
	}

	return ctx.JSON(http.StatusOK, s.prefs.Snapshot())
}

// optionsFromForm starts from the stored preferences and lets the form
// override individual tuning knobs per submission.
func (s *Server) optionsFromForm(ctx echo.Context) removebg.Options {
	opts := s.prefs.Options()

	if v := ctx.FormValue("mode"); v != "" {
		opts.Mode = v
	}

	if v := ctx.FormValue("resize"); v != "" {
		opts.Resize = v
	}

	if v := ctx.FormValue("output_type"); v != "" {
		opts.OutputType = v
	}

	if v := ctx.FormValue("threshold"); v != "" {
		if t, err := strconv.ParseFloat(v, 64); err == nil {
			opts.Threshold = &t
		}
	}

	if v := ctx.FormValue("reverse"); v != "" {
		opts.Reverse = v == "true"
	}

	if v := ctx.FormValue("crop"); v != "" {
		opts.Crop = v == "true"
	}

	if v := ctx.FormValue("crop_margin"); v != "" {
		if m, err := strconv.Atoi(v); err == nil {
			opts.CropMargin = m
		}
	}

	return opts
}

type errorResponse struct {
	Message string            `json:"message"`
	Status  int               `json:"status,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

func mapError(err error) error {
	if errors.Is(err, submission.ErrBusy) {
		return echo.NewHTTPError(http.StatusConflict, errorResponse{Message: "another submission is in flight"})
	}

	if errors.Is(err, preparer.ErrBadImage) {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, errorResponse{Message: "the selected file is not a valid image"})
	}

	if vErr, ok := err.(*removebg.ValidationError); ok {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, errorResponse{
			Message: "The given data was invalid",
			Details: vErr.Errors(),
		})
	}

	var respErr *removebg.ResponseError
	if errors.As(err, &respErr) {
		return echo.NewHTTPError(http.StatusBadGateway, errorResponse{
			Message: "background removal failed",
			Status:  respErr.StatusCode,
		})
	}

	if errors.Is(err, removebg.ErrNetwork) {
		return echo.NewHTTPError(http.StatusBadGateway, errorResponse{Message: "could not reach the background removal backend"})
	}

	return echo.NewHTTPError(http.StatusInternalServerError, errorResponse{Message: err.Error()})
}

package removebg

import (
	"fmt"
	"net/url"
	"strconv"
)

const (
	ModeFast        = "fast"
	ModeBase        = "base"
	ModeBaseNightly = "base-nightly"

	ResizeStatic  = "static"
	ResizeDynamic = "dynamic"
)

const (
	minCropMargin = 0
	maxCropMargin = 200
)

// Options select the remote algorithm variant and its tuning knobs. The
// exact parameter set is the backend's contract; this client only validates
// ranges and serializes.
type Options struct {
	Mode       string
	Resize     string
	OutputType string

	// Threshold is optional; nil means the backend default applies and the
	// parameter is omitted from the query entirely.
	Threshold *float64

	Reverse    bool
	Crop       bool
	CropMargin int
}

func DefaultOptions() Options {
	return Options{
		Mode:       ModeFast,
		Resize:     ResizeStatic,
		OutputType: "rgba",
		Crop:       true,
		CropMargin: 10,
	}
}

func (o Options) Validate() error {
	vErr := NewValidationError()

	switch o.Mode {
	case ModeFast, ModeBase, ModeBaseNightly:
	default:
		vErr.Add("mode", fmt.Sprintf("unsupported mode %s", o.Mode))
	}

	switch o.Resize {
	case ResizeStatic, ResizeDynamic:
	default:
		vErr.Add("resize", fmt.Sprintf("unsupported resize strategy %s", o.Resize))
	}

	if o.Threshold != nil && (*o.Threshold < 0 || *o.Threshold > 1) {
		vErr.Add("threshold", fmt.Sprintf("threshold %v is out of range 0..1", *o.Threshold))
	}

	if o.CropMargin < minCropMargin || o.CropMargin > maxCropMargin {
		vErr.Add("crop_margin", fmt.Sprintf("crop margin %d is out of range %d..%d", o.CropMargin, minCropMargin, maxCropMargin))
	}

	if !vErr.Empty() {
		return vErr
	}

	return nil
}

func (o Options) query() url.Values {
	q := url.Values{}
	q.Set("mode", o.Mode)
	q.Set("resize", o.Resize)
	q.Set("output_type", o.OutputType)

	if o.Threshold != nil {
		q.Set("threshold", strconv.FormatFloat(*o.Threshold, 'f', -1, 64))
	}

	q.Set("reverse", strconv.FormatBool(o.Reverse))
	q.Set("crop", strconv.FormatBool(o.Crop))
	q.Set("crop_margin", strconv.Itoa(o.CropMargin))

	return q
}

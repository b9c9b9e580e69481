package removebg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_Validate(t *testing.T) {
	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, DefaultOptions().Validate())
	})

	t.Run("every mode variant is accepted", func(t *testing.T) {
		for _, mode := range []string{ModeFast, ModeBase, ModeBaseNightly} {
			opts := DefaultOptions()
			opts.Mode = mode
			assert.NoError(t, opts.Validate(), "mode %s", mode)
		}
	})

	t.Run("out of range values are collected per field", func(t *testing.T) {
		threshold := 1.5
		opts := Options{
			Mode:       "warp",
			Resize:     "sideways",
			OutputType: "rgba",
			Threshold:  &threshold,
			CropMargin: 999,
		}

		err := opts.Validate()
		vErr, ok := err.(*ValidationError)
		require.True(t, ok)

		details := vErr.Errors()
		assert.Contains(t, details, "mode")
		assert.Contains(t, details, "resize")
		assert.Contains(t, details, "threshold")
		assert.Contains(t, details, "crop_margin")
	})

	t.Run("threshold boundaries are inclusive", func(t *testing.T) {
		for _, v := range []float64{0, 1} {
			threshold := v
			opts := DefaultOptions()
			opts.Threshold = &threshold
			assert.NoError(t, opts.Validate(), "threshold %v", v)
		}
	})
}

func TestOptions_Query(t *testing.T) {
	t.Run("boolean knobs serialize as true/false strings", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Reverse = true
		opts.Crop = false

		q := opts.query()
		assert.Equal(t, "true", q.Get("reverse"))
		assert.Equal(t, "false", q.Get("crop"))
	})
}

package preparer

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	_ "golang.org/x/image/webp"

	"github.com/armanrma7/rmbg/media"
)

var ErrBadImage = errors.New("preparer bad image provided")
var ErrPrepareFailed = errors.New("preparer could not prepare image")

const (
	DefaultMaxSide = 1024

	// DefaultQuality is advisory: the PNG encoder ignores it, it is kept
	// for parity with lossy encoders.
	DefaultQuality = 92
)

type Config struct {
	MaxSide int
	Quality int
}

// Preparer conditionally downscales a source image so that its longest side
// fits within MaxSide, re-encoding to PNG. Sources that already fit are
// returned byte-identical with their media type unchanged.
type Preparer struct {
	cfg Config
}

func New(cfg Config) *Preparer {
	if cfg.MaxSide <= 0 {
		cfg.MaxSide = DefaultMaxSide
	}

	if cfg.Quality <= 0 {
		cfg.Quality = DefaultQuality
	}

	return &Preparer{cfg: cfg}
}

func (p *Preparer) MaxSide() int {
	return p.cfg.MaxSide
}

// Prepare decodes the source exactly once; bytes that do not decode as an
// image fail with ErrBadImage, never a silent pass-through.
func (p *Preparer) Prepare(source *media.SourceImage) (*media.PreparedImage, error) {
	img, sourceFormat, err := image.Decode(bytes.NewReader(source.Content))
	if err != nil {
		return nil, errors.Wrap(ErrBadImage, err.Error())
	}

	width := img.Bounds().Dx()
	height := img.Bounds().Dy()

	longest := width
	if height > longest {
		longest = height
	}

	if longest <= p.cfg.MaxSide {
		return &media.PreparedImage{
			Name:    source.Name,
			Mime:    source.Mime,
			Content: source.Content,
			Width:   width,
			Height:  height,
		}, nil
	}

	if sourceFormatCarriesExif(sourceFormat) {
		lr := io.LimitReader(bytes.NewReader(source.Content), maxExifSize)
		img = reorient(img, lr)
		width = img.Bounds().Dx()
		height = img.Bounds().Dy()
	}

	// target dimensions are rounded per axis independently, which can drift
	// the aspect ratio by one rounding unit at extreme ratios
	scale := float64(p.cfg.MaxSide) / float64(longest)
	targetWidth := int(math.Round(float64(width) * scale))
	targetHeight := int(math.Round(float64(height) * scale))

	resized := imaging.Resize(img, targetWidth, targetHeight, imaging.Lanczos)

	buf := &bytes.Buffer{}
	if err := png.Encode(buf, resized); err != nil {
		return nil, errors.Wrapf(ErrPrepareFailed, "could not encode image to png %v", err)
	}

	return &media.PreparedImage{
		Name:    media.PNGName(source.Name),
		Mime:    media.PNG,
		Content: buf.Bytes(),
		Width:   resized.Bounds().Dx(),
		Height:  resized.Bounds().Dy(),
		Resized: true,
	}, nil
}

package main

import (
	"context"
	"flag"
	"io/ioutil"
	"path/filepath"

	"github.com/armanrma7/rmbg/cmd/initialize"
	"github.com/armanrma7/rmbg/media"
	"github.com/armanrma7/rmbg/preparer"
	"github.com/armanrma7/rmbg/removebg"
	"github.com/armanrma7/rmbg/submission"
)

var (
	in         = flag.String("in", "", "Path to the source image")
	out        = flag.String("out", "", "Path for the resulting PNG (default: source name with .png)")
	baseURL    = flag.String("url", "", "Backend base URL (default: REMOVEBG_BASE_URL)")
	maxSide    = flag.Int("max-side", preparer.DefaultMaxSide, "Longest side the upload may have")
	mode       = flag.String("mode", removebg.ModeFast, "Algorithm variant: fast, base or base-nightly")
	resizeOpt  = flag.String("resize", removebg.ResizeStatic, "Backend resampling strategy: static or dynamic")
	outputType = flag.String("output-type", "rgba", "Backend output type")
	threshold  = flag.Float64("threshold", -1, "Segmentation threshold 0..1 (negative: backend default)")
	reverse    = flag.Bool("reverse", false, "Invert the segmentation mask")
	crop       = flag.Bool("crop", true, "Crop the result to the subject")
	cropMargin = flag.Int("crop-margin", 10, "Margin in pixels kept around the cropped subject")
)

func main() {
	flag.Parse()

	log := initialize.Logger()

	if *in == "" {
		log.Fatalln("-in is required")
	}

	var client *removebg.Client
	if *baseURL != "" {
		client = removebg.NewClient(removebg.Config{BaseURL: *baseURL})
	} else {
		initialize.DotEnv()
		client = initialize.ClientFromEnv()
	}

	content, err := ioutil.ReadFile(*in)
	if err != nil {
		log.Fatalln(err)
	}

	name := filepath.Base(*in)
	source := &media.SourceImage{
		Name:    name,
		Mime:    media.GuessMimeFromExtension(media.ExtractExtension(name)),
		Content: content,
	}

	opts := removebg.Options{
		Mode:       *mode,
		Resize:     *resizeOpt,
		OutputType: *outputType,
		Reverse:    *reverse,
		Crop:       *crop,
		CropMargin: *cropMargin,
	}
	if *threshold >= 0 {
		opts.Threshold = threshold
	}

	session := submission.NewSession(preparer.New(preparer.Config{MaxSide: *maxSide}), client, log)
	if err := session.Select(source); err != nil {
		log.Fatalln(err)
	}

	cutout, err := session.Submit(context.Background(), opts)
	if err != nil {
		log.Fatalln(err)
	}

	target := *out
	if target == "" {
		target = filepath.Join(filepath.Dir(*in), cutout.Name)
	}

	if err := ioutil.WriteFile(target, cutout.Content, 0644); err != nil {
		log.Fatalln(err)
	}

	log.Infof("wrote %s (%d bytes)", target, len(cutout.Content))
}

package webui

import (
	"sync"

	"github.com/armanrma7/rmbg/media"
	"github.com/armanrma7/rmbg/preparer"
	"github.com/armanrma7/rmbg/removebg"
	"github.com/armanrma7/rmbg/submission"
)

// Preferences replaces the browser's persisted UI settings with an explicit
// configuration object: handed to the server at startup, written back on
// change, never ambient global state and never persisted to disk.
type Preferences struct {
	mu      sync.RWMutex
	opts    removebg.Options
	maxSide int
}

type PreferencesSnapshot struct {
	Mode       string   `json:"mode"`
	Resize     string   `json:"resize"`
	OutputType string   `json:"outputType"`
	Threshold  *float64 `json:"threshold,omitempty"`
	Reverse    bool     `json:"reverse"`
	Crop       bool     `json:"crop"`
	CropMargin int      `json:"cropMargin"`
	MaxSide    int      `json:"maxSide"`
}

func NewPreferences(opts removebg.Options, maxSide int) *Preferences {
	return &Preferences{opts: opts, maxSide: maxSide}
}

func (p *Preferences) Options() removebg.Options {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.opts
}

func (p *Preferences) MaxSide() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.maxSide
}

func (p *Preferences) Snapshot() PreferencesSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return PreferencesSnapshot{
		Mode:       p.opts.Mode,
		Resize:     p.opts.Resize,
		OutputType: p.opts.OutputType,
		Threshold:  p.opts.Threshold,
		Reverse:    p.opts.Reverse,
		Crop:       p.opts.Crop,
		CropMargin: p.opts.CropMargin,
		MaxSide:    p.maxSide,
	}
}

// Preparer returns a prepare step bound to the stored maxSide preference:
// a preference change applies to the next submission, not just the snapshot.
func (p *Preferences) Preparer() submission.Preparer {
	return &preferencesPreparer{prefs: p}
}

type preferencesPreparer struct {
	prefs *Preferences
}

func (pp *preferencesPreparer) Prepare(source *media.SourceImage) (*media.PreparedImage, error) {
	return preparer.New(preparer.Config{MaxSide: pp.prefs.MaxSide()}).Prepare(source)
}

// Apply validates and stores a full preferences snapshot. Invalid payloads
// leave the stored preferences untouched.
func (p *Preferences) Apply(s PreferencesSnapshot) error {
	opts := removebg.Options{
		Mode:       s.Mode,
		Resize:     s.Resize,
		OutputType: s.OutputType,
		Threshold:  s.Threshold,
		Reverse:    s.Reverse,
		Crop:       s.Crop,
		CropMargin: s.CropMargin,
	}

	if err := opts.Validate(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.opts = opts
	if s.MaxSide > 0 {
		p.maxSide = s.MaxSide
	}

	return nil
}

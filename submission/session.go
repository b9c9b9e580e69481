package submission

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"
	"github.com/sirupsen/logrus"

	"github.com/armanrma7/rmbg/media"
	"github.com/armanrma7/rmbg/removebg"
)

type State string

const (
	Idle       State = "idle"
	Previewing State = "previewing"
	Submitting State = "submitting"
	Done       State = "done"
	Failed     State = "failed"
)

// ErrBusy - a submission is already in flight; the trigger stays disabled
// until it finishes.
var ErrBusy = errors.New("submission already in flight")

type Preparer interface {
	Prepare(source *media.SourceImage) (*media.PreparedImage, error)
}

type Remover interface {
	Remove(ctx context.Context, img *media.PreparedImage, opts removebg.Options) (*removebg.Cutout, error)
}

// Session is the submission state machine:
//
//	Idle -> Previewing -> Submitting -> Done | Failed
//
// Select and Clear return it to a ready state, one submission runs at a time,
// and a submission with no selected file is a no-op. There is no retry and
// no mid-flight abort: once started, a submission runs to completion or
// failure.
type Session struct {
	preparer Preparer
	remover  Remover
	logger   *logrus.Logger

	mu      sync.Mutex
	state   State
	source  *media.SourceImage
	result  *removebg.Cutout
	lastErr error
}

func NewSession(p Preparer, r Remover, logger *logrus.Logger) *Session {
	if logger == nil {
		logger = logrus.New()
	}

	return &Session{
		preparer: p,
		remover:  r,
		logger:   logger,
		state:    Idle,
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state
}

// Select stages a new source image, discarding any previous selection,
// result and error.
func (s *Session) Select(source *media.SourceImage) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Submitting {
		return ErrBusy
	}

	s.source = source
	s.result = nil
	s.lastErr = nil
	s.state = Previewing

	return nil
}

// Clear drops the selection and returns the session to Idle.
func (s *Session) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Submitting {
		return ErrBusy
	}

	s.source = nil
	s.result = nil
	s.lastErr = nil
	s.state = Idle

	return nil
}

// Submit runs one attempt: prepare, then upload. With no selection it is a
// no-op returning (nil, nil) and the backend is never contacted.
func (s *Session) Submit(ctx context.Context, opts removebg.Options) (*removebg.Cutout, error) {
	s.mu.Lock()
	if s.state == Submitting {
		s.mu.Unlock()
		return nil, ErrBusy
	}

	if s.source == nil {
		s.mu.Unlock()
		return nil, nil
	}

	source := s.source
	s.state = Submitting
	s.result = nil
	s.lastErr = nil
	s.mu.Unlock()

	log := s.logger.WithField("submission", ksuid.New().String())
	log.Infof("submitting %s (%d bytes)", source.Name, source.Size())

	prepared, err := s.preparer.Prepare(source)
	if err != nil {
		return nil, s.fail(log, err)
	}

	if prepared.Resized {
		log.Infof("downscaled %s to %dx%d before upload", source.Name, prepared.Width, prepared.Height)
	}

	cutout, err := s.remover.Remove(ctx, prepared, opts)
	if err != nil {
		return nil, s.fail(log, err)
	}

	s.mu.Lock()
	s.state = Done
	s.result = cutout
	s.mu.Unlock()

	log.Infof("received cutout %s (%d bytes)", cutout.Name, len(cutout.Content))

	return cutout, nil
}

func (s *Session) Result() *removebg.Cutout {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.result
}

func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastErr
}

func (s *Session) fail(log *logrus.Entry, err error) error {
	s.mu.Lock()
	s.state = Failed
	s.lastErr = err
	s.mu.Unlock()

	log.Errorln(err)

	return err
}

package client

import (
	"errors"
	"io"
	"sync"
)

// Recorder is the two-state capture toggle: Start begins recording from an
// audio source, Stop ends it and returns whatever was captured. Stopping
// early simply truncates the capture; there is no pause/resume.
type Recorder struct {
	mu        sync.Mutex
	src       io.Reader
	recording bool
}

var (
	ErrAlreadyRecording = errors.New("recording already in progress")
	ErrNotRecording     = errors.New("no recording in progress")
)

func (r *Recorder) Start(src io.Reader) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.recording {
		return ErrAlreadyRecording
	}
	r.src = src
	r.recording = true
	return nil
}

func (r *Recorder) Stop() ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.recording {
		return nil, ErrNotRecording
	}
	r.recording = false
	src := r.src
	r.src = nil
	return io.ReadAll(src)
}

func (r *Recorder) Recording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

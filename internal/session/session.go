// Package session holds the request lifecycle as an explicit state value so
// the interface layer stays a renderer of state plus a dispatcher of intents.
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mxzhao/niaoyu/internal/report"
)

// Phase tracks where a decode request is in its lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseLoading
	PhaseReady
	PhaseFailed
)

var (
	ErrEmptyRequest   = errors.New("nothing to decode")
	ErrUploadInFlight = errors.New("attachment upload still in progress")
)

// Request is the input bundle handed from the input screen to the result
// screen.
type Request struct {
	Text      string
	PersonaID string
	FireLevel int
	FileID    string
}

// Validate enforces the submission guard: trimmed text or an attachment
// reference must be present.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Text) == "" && r.FileID == "" {
		return ErrEmptyRequest
	}
	return nil
}

// Key identifies the inputs. The workflow is triggered at most once per key;
// redraws of the result screen must not duplicate the remote call. The text
// is quoted so a "|" inside it cannot collide with the field separators.
func (r Request) Key() string {
	return fmt.Sprintf("%q|%s|%d|%s", r.Text, r.PersonaID, r.FireLevel, r.FileID)
}

// WireText is the text as sent to the workflow, padded to a single space when
// empty because the remote rejects empty variables.
func (r Request) WireText() string {
	if r.Text == "" {
		return " "
	}
	return r.Text
}

// AttachmentPhase tracks the single attachment slot.
type AttachmentPhase int

const (
	AttachmentNone AttachmentPhase = iota
	AttachmentUploading
	AttachmentReady
	AttachmentFailed
)

type attachment struct {
	phase  AttachmentPhase
	path   string
	fileID string
	errMsg string
	gen    int
}

// Session is the orchestration state machine:
//
//	Idle -> Submitting -> Loading -> Ready | Failed -> (reset) Idle
//
// plus the attachment slot, which runs its own none/uploading/ready/failed
// cycle on the input screen. Single goroutine use only; the UI loop owns it.
type Session struct {
	phase      Phase
	req        Request
	result     report.Report
	errMsg     string
	lastRunKey string
	attach     attachment
}

func New() *Session {
	return &Session{}
}

func (s *Session) Phase() Phase { return s.phase }

func (s *Session) Request() Request { return s.req }

func (s *Session) Result() report.Report { return s.result }

func (s *Session) ErrMsg() string { return s.errMsg }

// CanSubmit is the input screen's gate: no upload in flight, and either text
// or an uploaded attachment present.
func (s *Session) CanSubmit(text string) bool {
	if s.attach.phase == AttachmentUploading {
		return false
	}
	req := Request{Text: text, FileID: s.attach.fileID}
	return req.Validate() == nil
}

// Submit moves Idle to Submitting with the collected inputs. The attachment
// reference, if one is ready, is folded into the request here.
func (s *Session) Submit(req Request) error {
	if s.attach.phase == AttachmentUploading {
		return ErrUploadInFlight
	}
	req.FileID = s.attach.fileID
	if err := req.Validate(); err != nil {
		return err
	}
	s.req = req
	s.phase = PhaseSubmitting
	s.result = report.Report{}
	s.errMsg = ""
	return nil
}

// ShouldRun reports whether the workflow call for the current request still
// needs to be issued, and marks it issued. Only a change of inputs makes it
// fire again, so re-entering the loading screen cannot duplicate the call.
func (s *Session) ShouldRun() bool {
	if s.phase != PhaseSubmitting && s.phase != PhaseLoading {
		return false
	}
	key := s.req.Key()
	if key == s.lastRunKey {
		return false
	}
	s.lastRunKey = key
	s.phase = PhaseLoading
	return true
}

// Resolve terminates a run in Ready with the parsed report.
func (s *Session) Resolve(r report.Report) {
	if s.phase != PhaseLoading {
		return
	}
	s.result = r
	s.phase = PhaseReady
}

// Fail terminates a run in Failed. The message is shown to the user verbatim.
func (s *Session) Fail(err error) {
	if s.phase != PhaseLoading && s.phase != PhaseSubmitting {
		return
	}
	s.errMsg = err.Error()
	s.phase = PhaseFailed
}

// Reset returns to Idle, discarding the request, result, and attachment. The
// run key is cleared too: a fresh submission of identical inputs is a new
// entry and runs again.
func (s *Session) Reset() {
	s.phase = PhaseIdle
	s.req = Request{}
	s.result = report.Report{}
	s.errMsg = ""
	s.lastRunKey = ""
	s.removeAttachment()
}

// BeginUpload claims the attachment slot. It returns the upload generation
// used to match the eventual outcome; a stale outcome is ignored.
func (s *Session) BeginUpload(path string) (int, error) {
	if s.attach.phase == AttachmentUploading {
		return 0, ErrUploadInFlight
	}
	s.attach.gen++
	s.attach.phase = AttachmentUploading
	s.attach.path = path
	s.attach.fileID = ""
	s.attach.errMsg = ""
	return s.attach.gen, nil
}

// UploadSucceeded records the reference token. Returns false when the result
// no longer matters (slot cleared or re-claimed since).
func (s *Session) UploadSucceeded(gen int, fileID string) bool {
	if gen != s.attach.gen || s.attach.phase != AttachmentUploading {
		return false
	}
	s.attach.phase = AttachmentReady
	s.attach.fileID = fileID
	return true
}

// UploadFailed clears the in-progress slot so the user can retry.
func (s *Session) UploadFailed(gen int, msg string) bool {
	if gen != s.attach.gen || s.attach.phase != AttachmentUploading {
		return false
	}
	s.attach = attachment{gen: s.attach.gen, phase: AttachmentFailed, errMsg: msg}
	return true
}

// RemoveAttachment empties the slot. An in-flight upload is not cancelled;
// its result is simply ignored when it lands.
func (s *Session) RemoveAttachment() {
	s.removeAttachment()
}

func (s *Session) removeAttachment() {
	s.attach = attachment{gen: s.attach.gen + 1}
}

func (s *Session) AttachmentPhase() AttachmentPhase { return s.attach.phase }

func (s *Session) AttachmentPath() string { return s.attach.path }

func (s *Session) AttachmentFileID() string { return s.attach.fileID }

func (s *Session) AttachmentError() string { return s.attach.errMsg }

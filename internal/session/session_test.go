package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mxzhao/niaoyu/internal/report"
)

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{name: "text present", req: Request{Text: "老板又让我周末改方案"}},
		{name: "attachment only", req: Request{FileID: "file-123"}},
		{name: "both present", req: Request{Text: "看图", FileID: "file-123"}},
		{name: "empty", req: Request{}, wantErr: ErrEmptyRequest},
		{name: "whitespace only", req: Request{Text: "   \n\t"}, wantErr: ErrEmptyRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWireText(t *testing.T) {
	assert.Equal(t, " ", Request{}.WireText(), "empty text is padded for the remote")
	assert.Equal(t, "原文", Request{Text: "原文"}.WireText())
}

func TestRequestKeyDistinguishesFieldBoundaries(t *testing.T) {
	// A "|" in the pasted text must not make two different inputs share a key.
	a := Request{Text: "a|boss", FireLevel: 2}
	b := Request{Text: "a", PersonaID: "boss", FireLevel: 2}
	assert.NotEqual(t, a.Key(), b.Key())
}

func TestSubmitResolveCycle(t *testing.T) {
	s := New()
	require.Equal(t, PhaseIdle, s.Phase())

	require.NoError(t, s.Submit(Request{Text: "改方案", PersonaID: "boss", FireLevel: 2}))
	assert.Equal(t, PhaseSubmitting, s.Phase())

	require.True(t, s.ShouldRun())
	assert.Equal(t, PhaseLoading, s.Phase())

	// Redraws of the loading screen must not re-trigger the call.
	assert.False(t, s.ShouldRun())
	assert.False(t, s.ShouldRun())

	s.Resolve(report.Report{Subtext: "其实是催你"})
	assert.Equal(t, PhaseReady, s.Phase())
	assert.Equal(t, "其实是催你", s.Result().Subtext)
}

func TestSubmitRejectsEmptyRequest(t *testing.T) {
	s := New()
	assert.ErrorIs(t, s.Submit(Request{Text: "  "}), ErrEmptyRequest)
	assert.Equal(t, PhaseIdle, s.Phase())
}

func TestFailCarriesMessageVerbatim(t *testing.T) {
	s := New()
	require.NoError(t, s.Submit(Request{Text: "x"}))
	require.True(t, s.ShouldRun())

	s.Fail(errors.New("dify workflow error: status 500"))
	assert.Equal(t, PhaseFailed, s.Phase())
	assert.Equal(t, "dify workflow error: status 500", s.ErrMsg())
}

func TestResetAllowsIdenticalResubmission(t *testing.T) {
	s := New()
	req := Request{Text: "同样的输入", PersonaID: "boss", FireLevel: 2}

	require.NoError(t, s.Submit(req))
	require.True(t, s.ShouldRun())
	s.Resolve(report.Report{Response: "好的"})

	s.Reset()
	assert.Equal(t, PhaseIdle, s.Phase())
	assert.Empty(t, s.Result().Response)

	require.NoError(t, s.Submit(req))
	assert.True(t, s.ShouldRun(), "a fresh entry with the same inputs is a new run")
}

func TestChangedInputsTriggerNewRun(t *testing.T) {
	s := New()
	require.NoError(t, s.Submit(Request{Text: "a", PersonaID: "boss", FireLevel: 2}))
	require.True(t, s.ShouldRun())
	s.Resolve(report.Report{})

	require.NoError(t, s.Submit(Request{Text: "a", PersonaID: "boss", FireLevel: 3}))
	assert.True(t, s.ShouldRun())
}

func TestUploadLifecycle(t *testing.T) {
	s := New()

	gen, err := s.BeginUpload("/tmp/shot.png")
	require.NoError(t, err)
	assert.Equal(t, AttachmentUploading, s.AttachmentPhase())

	// Submission is blocked while the upload is in flight, even with text.
	assert.False(t, s.CanSubmit("有文字也不行"))
	assert.ErrorIs(t, s.Submit(Request{Text: "x"}), ErrUploadInFlight)

	// A second upload cannot claim the slot.
	_, err = s.BeginUpload("/tmp/other.png")
	assert.ErrorIs(t, err, ErrUploadInFlight)

	require.True(t, s.UploadSucceeded(gen, "file-123"))
	assert.Equal(t, AttachmentReady, s.AttachmentPhase())
	assert.Equal(t, "file-123", s.AttachmentFileID())

	// Attachment alone enables submission despite empty text.
	assert.True(t, s.CanSubmit(""))
	require.NoError(t, s.Submit(Request{PersonaID: "boss", FireLevel: 2}))
	assert.Equal(t, "file-123", s.Request().FileID)
}

func TestUploadFailureClearsSlot(t *testing.T) {
	s := New()

	gen, err := s.BeginUpload("/tmp/shot.png")
	require.NoError(t, err)

	require.True(t, s.UploadFailed(gen, "file too large"))
	assert.Equal(t, AttachmentFailed, s.AttachmentPhase())
	assert.Empty(t, s.AttachmentFileID(), "no reference may survive a failed upload")
	assert.Equal(t, "file too large", s.AttachmentError())

	// Submission stays blocked until there is text or a successful retry.
	assert.False(t, s.CanSubmit(""))

	_, err = s.BeginUpload("/tmp/shot.png")
	assert.NoError(t, err, "retry must be possible after failure")
}

func TestStaleUploadResultIgnored(t *testing.T) {
	s := New()

	gen, err := s.BeginUpload("/tmp/shot.png")
	require.NoError(t, err)

	// User removes the attachment while the upload is still in flight.
	s.RemoveAttachment()
	assert.Equal(t, AttachmentNone, s.AttachmentPhase())

	assert.False(t, s.UploadSucceeded(gen, "file-123"), "stale success must be dropped")
	assert.Empty(t, s.AttachmentFileID())

	assert.False(t, s.UploadFailed(gen, "late failure"))
	assert.Equal(t, AttachmentNone, s.AttachmentPhase())
}

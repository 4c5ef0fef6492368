package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/mxzhao/niaoyu/internal/config"
	"github.com/mxzhao/niaoyu/internal/dify"
	"github.com/mxzhao/niaoyu/internal/identity"
	"github.com/mxzhao/niaoyu/internal/report"
	"github.com/mxzhao/niaoyu/internal/session"
)

type view int

const (
	viewSetup view = iota
	viewInput
	viewLoading
	viewResult
	viewError
)

const copiedFlashDuration = 2 * time.Second

type App struct {
	width    int
	height   int
	view     view
	state    *state
	logger   *zap.Logger
	quitting bool
}

func NewApp(cfg *config.Config, logger *zap.Logger) *App {
	s := newState()

	if cfg == nil {
		s.needsSetup = true
		s.config = config.DefaultConfig()
	} else {
		s.config = cfg
	}

	a := &App{
		view:   viewInput,
		state:  s,
		logger: logger,
	}
	if s.needsSetup {
		a.view = viewSetup
	} else {
		a.connect()
	}
	return a
}

// connect builds the remote client and identity provider from the config.
func (a *App) connect() {
	st := a.state
	st.client = dify.NewClient(st.config.BaseURL, st.config.APIKey, st.config.UploadTimeout(), st.config.RunTimeout())

	if path, err := config.IdentityPath(); err == nil {
		st.identity = identity.NewProvider(identity.NewFileStore(path))
	} else {
		// No usable config dir; the id lives for this process only.
		st.identity = identity.NewProvider(&identity.MemStore{})
	}
}

func (a *App) Init() tea.Cmd {
	if a.state.needsSetup {
		a.state.apiKeyInput.Focus()
		return tea.Batch(tea.WindowSize(), textinput.Blink)
	}

	a.state.textInput.Focus()
	return tea.Batch(tea.WindowSize(), textinput.Blink, a.checkConn())
}

// checkConn probes the remote once at startup so a dead endpoint shows up
// before the first submission.
func (a *App) checkConn() tea.Cmd {
	client := a.state.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return connCheckMsg{err: client.Ping(ctx)}
	}
}

type (
	setupCompleteMsg struct{}
	setupErrorMsg    struct{ error }
	connCheckMsg     struct{ err error }
	copyExpiredMsg   struct{ gen int }

	uploadResultMsg struct {
		gen int
		ref dify.FileRef
		err error
	}

	runResultMsg struct {
		key  string
		text string
		err  error
	}
)

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd := a.handleKey(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case setupCompleteMsg:
		a.state.needsSetup = false
		a.state.setupError = nil
		a.connect()
		a.state.textInput.Focus()
		a.view = viewInput
		return a, tea.Batch(textinput.Blink, a.checkConn())

	case setupErrorMsg:
		a.state.setupError = msg.error
		return a, nil

	case connCheckMsg:
		a.state.connErr = msg.err
		if msg.err != nil {
			a.logger.Warn("connectivity check failed", zap.Error(msg.err))
		}
		return a, nil

	case uploadResultMsg:
		return a, a.handleUploadResult(msg)

	case runResultMsg:
		a.handleRunResult(msg)
		return a, nil

	case copyExpiredMsg:
		if msg.gen == a.state.copyGen {
			a.state.copied = false
		}
		return a, nil

	default:
		// Spinner frames while an upload or run is pending.
		if a.view == viewLoading || a.state.sess.AttachmentPhase() == session.AttachmentUploading {
			var cmd tea.Cmd
			a.state.spin, cmd = a.state.spin.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	// Route typing to whichever input owns the view.
	switch {
	case a.view == viewSetup:
		var cmd tea.Cmd
		a.state.apiKeyInput, cmd = a.state.apiKeyInput.Update(msg)
		cmds = append(cmds, cmd)
	case a.view == viewInput && a.state.attaching:
		var cmd tea.Cmd
		a.state.attachInput, cmd = a.state.attachInput.Update(msg)
		cmds = append(cmds, cmd)
	case a.view == viewInput && a.state.sess.AttachmentPhase() != session.AttachmentUploading &&
		a.state.sess.AttachmentPhase() != session.AttachmentReady:
		// Text entry is disabled while an attachment occupies the slot.
		var cmd tea.Cmd
		a.state.textInput, cmd = a.state.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		if a.view == viewInput && a.state.attaching {
			a.state.attaching = false
			a.state.attachInput.Reset()
			return nil
		}
		if a.view == viewResult || a.view == viewError {
			a.goBack()
			return textinput.Blink
		}
		a.quitting = true
		return tea.Quit

	case key.Matches(msg, keys.Enter):
		switch a.view {
		case viewSetup:
			return a.finishSetup()
		case viewInput:
			if a.state.attaching {
				return a.confirmAttach()
			}
			return a.handleSubmit()
		}
	}

	switch a.view {
	case viewInput:
		return a.handleInputKey(msg)
	case viewResult:
		return a.handleResultKey(msg)
	}

	return nil
}

func (a *App) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	st := a.state

	switch {
	case key.Matches(msg, keys.Up):
		st.personaIdx = (st.personaIdx + len(config.Personas) - 1) % len(config.Personas)
	case key.Matches(msg, keys.Down):
		st.personaIdx = (st.personaIdx + 1) % len(config.Personas)
	case key.Matches(msg, keys.Tab):
		st.fireLevel++
		if st.fireLevel > config.MaxFireLevel {
			st.fireLevel = config.MinFireLevel
		}
	case key.Matches(msg, keys.Attach):
		if st.sess.AttachmentPhase() == session.AttachmentUploading {
			return nil
		}
		// Text and attachment are mutually exclusive in both directions:
		// typed text blocks attaching, a held attachment blocks typing.
		if strings.TrimSpace(st.textInput.Value()) != "" {
			return nil
		}
		st.attaching = true
		st.textInput.Blur()
		st.attachInput.Focus()
		return textinput.Blink
	case key.Matches(msg, keys.Remove):
		st.sess.RemoveAttachment()
		st.textInput.Focus()
		return textinput.Blink
	}

	return nil
}

func (a *App) handleResultKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Copy):
		return a.copyReply()
	case key.Matches(msg, keys.NewItem):
		a.goBack()
		return textinput.Blink
	}
	return nil
}

func (a *App) finishSetup() tea.Cmd {
	cfg := a.state.config
	cfg.APIKey = strings.TrimSpace(a.state.apiKeyInput.Value())
	if cfg.APIKey == "" {
		return nil
	}
	return func() tea.Msg {
		if err := cfg.Save(); err != nil {
			return setupErrorMsg{err}
		}
		return setupCompleteMsg{}
	}
}

// confirmAttach claims the attachment slot and starts the upload.
func (a *App) confirmAttach() tea.Cmd {
	st := a.state

	path := expandHome(strings.TrimSpace(st.attachInput.Value()))
	if path == "" {
		return nil
	}
	st.attaching = false
	st.attachInput.Reset()

	gen, err := st.sess.BeginUpload(path)
	if err != nil {
		return nil
	}
	if !isImagePath(path) {
		st.sess.UploadFailed(gen, "不是图片文件: "+filepath.Base(path))
		return nil
	}
	st.textInput.Blur()

	a.logger.Info("uploading attachment", zap.String("path", path))
	return tea.Batch(st.spin.Tick, a.uploadCmd(path, gen))
}

func (a *App) uploadCmd(path string, gen int) tea.Cmd {
	client := a.state.client
	timeout := a.state.config.UploadTimeout()
	user := a.state.identity.GetOrCreate()

	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return uploadResultMsg{gen: gen, err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		ref, err := client.UploadFile(ctx, filepath.Base(path), data, user)
		return uploadResultMsg{gen: gen, ref: ref, err: err}
	}
}

func (a *App) handleUploadResult(msg uploadResultMsg) tea.Cmd {
	st := a.state

	if msg.err != nil {
		if st.sess.UploadFailed(msg.gen, msg.err.Error()) {
			a.logger.Warn("attachment upload failed", zap.Error(msg.err))
			st.textInput.Focus()
			return textinput.Blink
		}
		return nil
	}

	if st.sess.UploadSucceeded(msg.gen, msg.ref.ID) {
		a.logger.Info("attachment uploaded", zap.String("file_id", msg.ref.ID))
	}
	return nil
}

func (a *App) handleSubmit() tea.Cmd {
	st := a.state

	if !st.sess.CanSubmit(st.textInput.Value()) {
		return nil
	}

	req := session.Request{
		Text:      st.textInput.Value(),
		PersonaID: config.Personas[st.personaIdx].ID,
		FireLevel: st.fireLevel,
	}
	if err := st.sess.Submit(req); err != nil {
		return nil
	}

	a.view = viewLoading
	a.logger.Info("decode submitted",
		zap.String("persona", req.PersonaID),
		zap.Int("fire_level", req.FireLevel),
		zap.Bool("attachment", st.sess.Request().FileID != ""))

	return tea.Batch(st.spin.Tick, a.startRun())
}

// startRun issues the workflow call for the current request, at most once per
// input key.
func (a *App) startRun() tea.Cmd {
	st := a.state
	if !st.sess.ShouldRun() {
		return nil
	}

	req := st.sess.Request()
	client := st.client
	timeout := st.config.RunTimeout()
	user := st.identity.GetOrCreate()

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		var files []dify.FileDescriptor
		if req.FileID != "" {
			files = append(files, dify.ImageFile(dify.FileRef{ID: req.FileID}))
		}

		in := dify.RunInput{
			PersonaName: config.PersonaName(req.PersonaID),
			FireLevel:   req.FireLevel,
			Text:        req.Text,
		}
		text, err := client.RunWorkflow(ctx, in, files, user)
		return runResultMsg{key: req.Key(), text: text, err: err}
	}
}

func (a *App) handleRunResult(msg runResultMsg) {
	st := a.state

	// A result for inputs we have since navigated away from.
	if msg.key != st.sess.Request().Key() {
		return
	}

	if msg.err != nil {
		st.sess.Fail(msg.err)
		a.logger.Warn("workflow run failed", zap.Error(msg.err))
		a.view = viewError
		return
	}

	rep := report.Parse(msg.text)
	if rep.Degraded {
		a.logger.Warn("no section markers in workflow output; showing raw text")
	}
	st.sess.Resolve(rep)
	a.view = viewResult
}

func (a *App) copyReply() tea.Cmd {
	resp := a.state.sess.Result().Response
	if resp == "" {
		return nil
	}
	if err := clipboard.WriteAll(resp); err != nil {
		a.logger.Warn("clipboard write failed", zap.Error(err))
		return nil
	}
	a.state.copied = true
	a.state.copyGen++
	gen := a.state.copyGen
	return tea.Tick(copiedFlashDuration, func(time.Time) tea.Msg {
		return copyExpiredMsg{gen: gen}
	})
}

// goBack discards the whole request and returns to a clean input screen.
func (a *App) goBack() {
	st := a.state
	st.sess.Reset()
	st.textInput.Reset()
	st.attachInput.Reset()
	st.attaching = false
	st.copied = false
	st.textInput.Focus()
	a.view = viewInput
}

var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".bmp":  true,
}

func isImagePath(path string) bool {
	return imageExts[strings.ToLower(filepath.Ext(path))]
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewSetup:
		return a.renderSetup()
	case viewLoading:
		return a.renderLoading()
	case viewResult:
		return a.renderResult()
	case viewError:
		return a.renderError()
	default:
		return a.renderInput()
	}
}

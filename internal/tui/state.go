package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/mxzhao/niaoyu/internal/config"
	"github.com/mxzhao/niaoyu/internal/dify"
	"github.com/mxzhao/niaoyu/internal/identity"
	"github.com/mxzhao/niaoyu/internal/session"
)

type state struct {
	// Config
	config     *config.Config
	needsSetup bool
	setupError error

	// Setup
	apiKeyInput textinput.Model

	// Remote boundary
	client   *dify.Client
	identity *identity.Provider
	connErr  error

	// Request lifecycle
	sess *session.Session

	// Input screen
	textInput   textinput.Model
	personaIdx  int
	fireLevel   int
	attachInput textinput.Model
	attaching   bool

	// Loading
	spin spinner.Model

	// Result
	copied  bool
	copyGen int
}

func newState() *state {
	input := textinput.New()
	input.Placeholder = "粘贴那句让你血压升高的话..."
	input.CharLimit = 2000
	input.Width = 60

	apiKey := textinput.New()
	apiKey.Placeholder = "Paste your Dify app key here..."
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.CharLimit = 200
	apiKey.Width = 50

	attach := textinput.New()
	attach.Placeholder = "Path to the screenshot, e.g. ~/shot.png"
	attach.CharLimit = 500
	attach.Width = 50

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(colorPrimary)

	return &state{
		apiKeyInput: apiKey,
		textInput:   input,
		attachInput: attach,
		spin:        spin,
		fireLevel:   2,
		sess:        session.New(),
	}
}

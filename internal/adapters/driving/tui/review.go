package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/dentract/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/dentract/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/dentract/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/dentract/internal/core/domain"
)

// stage tracks where the current file is in the review.
type stage int

const (
	stageRecognising stage = iota
	stageRecognised
	stageParsed
	stageSaved
	stageDone
)

// Review walks through scan files one at a time: recognise, show the
// text, parse on request, show the record, save on request.
type Review struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	files []string
	index int
	stage stage

	text     string
	scan     *domain.Scan
	err      error
	status   string
	saved    int
	showHelp bool
	width    int
}

// Ensure Review implements tea.Model.
var _ tea.Model = (*Review)(nil)

// NewReview creates a review over files.
func NewReview(ctx context.Context, ports *Ports, files []string) (*Review, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating review: %w", err)
	}
	if len(files) == 0 {
		return nil, ErrNoFiles
	}

	return &Review{
		ports:  ports,
		ctx:    ctx,
		styles: styles.DefaultStyles(),
		keymap: keymap.DefaultKeyMap(),
		files:  files,
		width:  80,
	}, nil
}

// Saved returns how many records were saved during the review.
func (r *Review) Saved() int {
	return r.saved
}

// Init starts recognising the first file.
func (r *Review) Init() tea.Cmd {
	return r.recognise(r.files[0])
}

// Update handles messages.
func (r *Review) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		return r, nil

	case tea.KeyMsg:
		return r.handleKey(msg)

	case messages.Recognised:
		if msg.Path != r.current() {
			return r, nil
		}
		r.stage = stageRecognised
		r.text = msg.Text
		r.err = msg.Err
		return r, nil

	case messages.Parsed:
		if msg.Err != nil {
			r.err = msg.Err
			return r, nil
		}
		r.scan = msg.Scan
		r.stage = stageParsed
		r.status = ""
		return r, nil

	case messages.Saved:
		if msg.Err != nil {
			r.err = msg.Err
			return r, nil
		}
		r.saved++
		r.stage = stageSaved
		r.status = "saved " + msg.ScanID
		return r, nil
	}

	return r, nil
}

func (r *Review) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, r.keymap.Quit):
		r.stage = stageDone
		return r, tea.Quit

	case key.Matches(msg, r.keymap.Help):
		r.showHelp = !r.showHelp
		return r, nil

	case key.Matches(msg, r.keymap.Parse):
		if r.stage != stageRecognised || r.err != nil {
			return r, nil
		}
		return r, r.parse(r.current(), r.text)

	case key.Matches(msg, r.keymap.Save):
		if r.stage != stageParsed {
			return r, nil
		}
		return r, r.save(r.scan)

	case key.Matches(msg, r.keymap.Next):
		if r.stage == stageRecognising {
			return r, nil
		}
		if r.index+1 >= len(r.files) {
			r.stage = stageDone
			return r, tea.Quit
		}
		r.index++
		r.reset()
		return r, r.recognise(r.current())
	}

	return r, nil
}

// View renders the review screen.
func (r *Review) View() string {
	if r.stage == stageDone {
		return fmt.Sprintf("Reviewed %d file(s), saved %d record(s).\n", r.index+1, r.saved)
	}

	var b strings.Builder
	b.WriteString(r.styles.Title.Render(
		fmt.Sprintf("%s  (%d/%d)", filepath.Base(r.current()), r.index+1, len(r.files))))
	b.WriteString("\n\n")

	switch r.stage {
	case stageRecognising:
		b.WriteString(r.styles.Muted.Render("Recognising text..."))
		b.WriteString("\n")
	default:
		b.WriteString(r.renderText())
		if r.scan != nil {
			b.WriteString("\n")
			b.WriteString(r.renderRecord())
		}
	}

	if r.err != nil {
		b.WriteString("\n")
		b.WriteString(r.styles.Error.Render("Error: " + r.err.Error()))
		b.WriteString("\n")
	}
	if r.status != "" {
		b.WriteString("\n")
		b.WriteString(r.styles.Success.Render(r.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(r.renderHelp())
	return b.String()
}

func (r *Review) renderText() string {
	text := r.text
	if text == "" {
		text = "(no text)"
	}
	panel := r.styles.Panel.Width(r.panelWidth()).Render(r.styles.Muted.Render(text))
	return r.styles.Subtitle.Render("Recognised text") + "\n" + panel + "\n"
}

func (r *Review) renderRecord() string {
	rows := make([]string, 0, len(domain.Fields))
	for _, f := range domain.Fields {
		label := r.styles.Label.Render(f.String())
		value := r.styles.Absent.Render("not found")
		if v, ok := r.scan.Record.Value(f); ok {
			value = r.styles.Value.Render(v)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, label, value))
	}
	panel := r.styles.Panel.Width(r.panelWidth()).Render(strings.Join(rows, "\n"))
	return r.styles.Subtitle.Render("Patient record") + "\n" + panel + "\n"
}

func (r *Review) renderHelp() string {
	bindings := r.keymap.ShortHelp()
	if r.showHelp {
		bindings = nil
		for _, group := range r.keymap.FullHelp() {
			bindings = append(bindings, group...)
		}
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		hints = append(hints, b.Help().Key+" "+b.Help().Desc)
	}
	return r.styles.Help.Render(strings.Join(hints, " • "))
}

func (r *Review) panelWidth() int {
	if r.width <= 4 {
		return 76
	}
	return r.width - 4
}

func (r *Review) current() string {
	return r.files[r.index]
}

func (r *Review) reset() {
	r.stage = stageRecognising
	r.text = ""
	r.scan = nil
	r.err = nil
	r.status = ""
}

func (r *Review) recognise(path string) tea.Cmd {
	ctx, intake := r.ctx, r.ports.Intake
	return func() tea.Msg {
		text, err := intake.Recognise(ctx, path)
		return messages.Recognised{Path: path, Text: text, Err: err}
	}
}

func (r *Review) parse(path, text string) tea.Cmd {
	ctx, intake := r.ctx, r.ports.Intake
	return func() tea.Msg {
		scan, err := intake.Ingest(ctx, path, text, false)
		return messages.Parsed{Scan: scan, Err: err}
	}
}

func (r *Review) save(scan *domain.Scan) tea.Cmd {
	ctx, intake := r.ctx, r.ports.Intake
	return func() tea.Msg {
		if err := intake.Save(ctx, scan); err != nil {
			return messages.Saved{Err: err}
		}
		return messages.Saved{ScanID: scan.ID}
	}
}

// Run starts the review as a full-screen program and returns the number
// of records saved.
func Run(ctx context.Context, ports *Ports, files []string) (int, error) {
	review, err := NewReview(ctx, ports, files)
	if err != nil {
		return 0, err
	}

	p := tea.NewProgram(review, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return review.Saved(), err
	}
	return review.Saved(), nil
}

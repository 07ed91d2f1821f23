package main

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/grindlemire/go-motion/internal/config"
	"github.com/grindlemire/go-motion/screen"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func (c *CLI) playCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Animate a list interactively",
		Long: `Shows the configured items as an animated list. Rows fade in when added,
glide when the list is reordered and fade out before they leave.

Keys: s shuffle, r reverse, a add, d remove, q quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			m, err := newPlayModel(cfg, screen.NewPainter(nil))
			if err != nil {
				return err
			}
			p := tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("run play: %w", err)
			}
			return m.err
		},
	}
}

// frameMsg asks the model to advance its animations one frame.
type frameMsg time.Time

// playModel is the bubbletea model of the play command.
type playModel struct {
	stage   *screen.Stage
	list    *screen.List
	painter *screen.Painter
	keys    []string
	added   int
	rng     *rand.Rand
	frame   time.Duration
	err     error
}

func newPlayModel(cfg config.Config, painter *screen.Painter) (*playModel, error) {
	stage, list := newScene(cfg)
	m := &playModel{
		stage:   stage,
		list:    list,
		painter: painter,
		rng:     rand.New(rand.NewPCG(cfg.Seed, cfg.Seed)),
		frame:   time.Second / time.Duration(cfg.FPS),
	}
	if err := m.setKeys(slices.Clone(cfg.Items)); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *playModel) Init() tea.Cmd {
	return m.tick()
}

func (m *playModel) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKey(msg.String())
	case frameMsg:
		if err := step(m.stage, m.list); err != nil {
			m.err = err
			return m, tea.Quit
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *playModel) handleKey(key string) tea.Cmd {
	var next []string
	switch key {
	case "q", "ctrl+c", "esc":
		return tea.Quit
	case "s":
		next = (config.Step{Op: config.OpShuffle}).Apply(m.keys, m.rng)
	case "r":
		next = (config.Step{Op: config.OpReverse}).Apply(m.keys, m.rng)
	case "a":
		m.added++
		next = (config.Step{Op: config.OpAdd, Keys: []string{fmt.Sprintf("new-%d", m.added)}}).Apply(m.keys, m.rng)
	case "d":
		if len(m.keys) == 0 {
			return nil
		}
		victim := m.keys[m.rng.IntN(len(m.keys))]
		next = (config.Step{Op: config.OpRemove, Keys: []string{victim}}).Apply(m.keys, m.rng)
	default:
		return nil
	}
	if err := m.setKeys(next); err != nil {
		m.err = err
		return tea.Quit
	}
	return nil
}

func (m *playModel) setKeys(keys []string) error {
	if err := m.list.Set(rowsFor(keys)); err != nil {
		return err
	}
	m.keys = keys
	return nil
}

func (m *playModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("motion"))
	b.WriteString("\n\n")
	b.WriteString(m.painter.Render(m.stage))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(errStyle.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(fmt.Sprintf("s shuffle  r reverse  a add  d remove  q quit  [%d rows]", len(m.keys))))
	return b.String()
}

package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type batchProgressMsg struct {
	done  int
	total int
}

type batchDoneMsg struct {
	err error
}

type batchSpinnerModel struct {
	spinner spinner.Model
	label   string
	run     tea.Cmd
	done    int
	total   int
	err     error
	stopped bool
}

func newBatchSpinnerModel(label string, total int, run tea.Cmd) batchSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return batchSpinnerModel{
		spinner: s,
		label:   label,
		run:     run,
		total:   total,
	}
}

func (m batchSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run)
}

func (m batchSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case batchProgressMsg:
		if msg.done > m.done {
			m.done = msg.done
		}
		m.total = msg.total
		return m, nil
	case batchDoneMsg:
		m.stopped = true
		m.err = msg.err
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m batchSpinnerModel) View() string {
	if m.stopped {
		return ""
	}

	return fmt.Sprintf("%s %s %d/%d", m.spinner.View(), m.label, m.done, m.total)
}

// runBatchSpinner shows a spinner on output while run executes. run receives
// a progress callback that is safe to call from several goroutines.
func runBatchSpinner(ctx context.Context, output io.Writer, total int, run func(context.Context, func(done, total int)) error) error {
	var p *tea.Program

	progress := func(done, total int) {
		p.Send(batchProgressMsg{done: done, total: total})
	}
	runCmd := func() tea.Msg {
		return batchDoneMsg{err: run(ctx, progress)}
	}

	p = tea.NewProgram(
		newBatchSpinnerModel("Simulating paths...", total, runCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	result, ok := finalModel.(batchSpinnerModel)
	if !ok {
		return fmt.Errorf("unexpected final spinner model type %T", finalModel)
	}

	return result.err
}

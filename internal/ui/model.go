package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nconklindev/castmerge/internal/config"
	"github.com/nconklindev/castmerge/internal/processor"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type state int

const (
	stateSizeChart state = iota
	stateProductDetails
	stateExclusions
	stateProcessing
	stateComplete
	stateError
)

type Model struct {
	proc           *processor.Processor
	state          state
	filepicker     filepicker.Model
	sizeChart      string
	productDetails string
	exclusions     textinput.Model
	inputErr       string
	outcome        processor.ImportOutcome
	errMsg         string
	width          int
	height         int
	progress       progress.Model
	progressChan   chan float64
	resultChan     chan importDoneMsg
}

type importDoneMsg struct {
	outcome processor.ImportOutcome
}

type progressMsg float64

type waitForProgressMsg struct{}

// InitialModel starts the import flow at the size chart picker.
func InitialModel(proc *processor.Processor) Model {
	fp := filepicker.New()
	fp.AllowedTypes = []string{".xlsx", ".xls"}
	fp.CurrentDirectory, _ = os.Getwd()

	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(accentColor)
	fp.Styles.Symlink = lipgloss.NewStyle().Foreground(softColor)
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(softColor)
	fp.Styles.File = lipgloss.NewStyle().Foreground(plainColor)
	fp.Styles.Permission = lipgloss.NewStyle().Foreground(mutedColor)
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	fp.Styles.FileSize = lipgloss.NewStyle().Foreground(mutedColor)

	ti := textinput.New()
	ti.Placeholder = "masterdata, Legend"
	ti.Prompt = "Exclude sheets: "
	ti.SetValue(strings.Join(proc.Config().Import.ExcludeSheets, ", "))
	ti.CharLimit = 256

	return Model{
		proc:       proc,
		state:      stateSizeChart,
		filepicker: fp,
		exclusions: ti,
		progress:   progress.New(progress.WithGradient("#2BB3A3", "#7FD8CB")),
	}
}

func (m Model) Init() tea.Cmd {
	return m.filepicker.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// title, step line, help text and padding
		height := msg.Height - 14
		if height < 5 {
			height = 5
		}
		m.filepicker.SetHeight(height)
		m.progress.Width = max(min(msg.Width-12, 60), 10)

		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case stateSizeChart, stateProductDetails:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			}

		case stateExclusions:
			switch msg.String() {
			case "ctrl+c", "esc":
				return m, tea.Quit
			case "enter":
				names := config.ParseSheetList([]string{m.exclusions.Value()})
				if err := config.ValidateSheetNames(names); err != nil {
					m.inputErr = err.Error()
					return m, nil
				}
				m.exclusions.Blur()
				m.state = stateProcessing
				return m.runImport(names)
			}
			var cmd tea.Cmd
			m.exclusions, cmd = m.exclusions.Update(msg)
			m.inputErr = ""
			return m, cmd

		case stateComplete, stateError:
			switch msg.String() {
			case "ctrl+c", "q", "enter", "esc":
				return m, tea.Quit
			}
		}

	case importDoneMsg:
		m.outcome = msg.outcome
		if !msg.outcome.Success {
			m.errMsg = msg.outcome.Message
			m.state = stateError
			return m, nil
		}
		m.state = stateComplete
		return m, nil

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case progressMsg:
		if m.state == stateProcessing {
			cmd := m.progress.SetPercent(float64(msg))
			return m, tea.Batch(cmd, waitForProgress(m.progressChan, m.resultChan))
		}
		return m, nil

	case waitForProgressMsg:
		return m, waitForProgress(m.progressChan, m.resultChan)
	}

	if m.state == stateSizeChart || m.state == stateProductDetails {
		var cmd tea.Cmd
		m.filepicker, cmd = m.filepicker.Update(msg)

		if didSelect, path := m.filepicker.DidSelectFile(msg); didSelect {
			return m.selectFile(path), cmd
		}
		return m, cmd
	}

	return m, nil
}

// selectFile records path for the current picker step and advances.
func (m Model) selectFile(path string) Model {
	if m.state == stateSizeChart {
		m.sizeChart = path
		m.state = stateProductDetails
		return m
	}

	m.productDetails = path
	m.state = stateExclusions
	m.exclusions.Focus()
	return m
}

// outputPath places the merged workbook next to the size chart.
func (m Model) outputPath() string {
	return filepath.Join(filepath.Dir(m.sizeChart), m.proc.Config().Import.OutputFilename)
}

func (m Model) runImport(exclude []string) (Model, tea.Cmd) {
	m.progressChan = make(chan float64, 100)
	m.resultChan = make(chan importDoneMsg, 1)

	progressChan := m.progressChan
	resultChan := m.resultChan
	req := processor.ImportRequest{
		SizeChart:      m.sizeChart,
		ProductDetails: m.productDetails,
		OutputFile:     m.outputPath(),
		ExcludeSheets:  exclude,
		OnSheet: func(done, total int, sheet string) {
			progressChan <- float64(done) / float64(total)
		},
	}
	proc := m.proc

	go func() {
		outcome := proc.Import(req)

		resultChan <- importDoneMsg{outcome: outcome}
		close(progressChan)
		close(resultChan)
	}()

	return m, tea.Batch(
		waitForProgress(progressChan, resultChan),
		m.progress.Init(),
	)
}

func waitForProgress(progressChan chan float64, resultChan chan importDoneMsg) tea.Cmd {
	return func() tea.Msg {
		if progressChan == nil {
			return nil
		}

		p, ok := <-progressChan
		if !ok {
			if res, ok := <-resultChan; ok {
				return res
			}
			return nil
		}

		return progressMsg(p)
	}
}

func (m Model) View() string {
	switch m.state {
	case stateSizeChart, stateProductDetails:
		return m.viewFilePicker()
	case stateExclusions:
		return m.viewExclusions()
	case stateProcessing:
		return m.viewProcessing()
	case stateComplete:
		return m.viewComplete()
	case stateError:
		return m.viewError()
	}
	return ""
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("castmerge - Size Chart & Product Details Import"))
	s.WriteString("\n")

	if m.state == stateSizeChart {
		s.WriteString(StepStyle.Render("Step 1 of 3"))
		s.WriteString(SubtitleStyle.Render(" Select the size chart workbook (SKU file)"))
	} else {
		s.WriteString(SubtitleStyle.Render("Size chart: " + filepath.Base(m.sizeChart)))
		s.WriteString("\n")
		s.WriteString(StepStyle.Render("Step 2 of 3"))
		s.WriteString(SubtitleStyle.Render(" Select the product details workbook (Style file)"))
	}

	s.WriteString("\n\n")
	s.WriteString(m.filepicker.View())
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("Press q to quit"))

	return s.String()
}

func (m Model) viewExclusions() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("Sheets to Exclude"))
	s.WriteString("\n")
	s.WriteString(StepStyle.Render("Step 3 of 3"))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("Size chart:      %s\n", PathStyle.Render(filepath.Base(m.sizeChart))))
	s.WriteString(fmt.Sprintf("Product details: %s\n", PathStyle.Render(filepath.Base(m.productDetails))))
	s.WriteString("\n")
	s.WriteString(m.exclusions.View())
	s.WriteString("\n")

	if m.inputErr != "" {
		s.WriteString("\n")
		s.WriteString(WarnStyle.Render(m.inputErr))
		s.WriteString("\n")
	}

	s.WriteString(HelpStyle.Render("comma-separated sheet names • enter: merge • esc: quit"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewProcessing() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("Processing..."))
	s.WriteString("\n\n")
	s.WriteString("Merging size chart sheets with product details...")
	s.WriteString("\n\n")
	s.WriteString(m.progress.View())

	return BoxStyle.Render(s.String())
}

func (m Model) viewComplete() string {
	var s strings.Builder
	res := m.outcome.ImportResult

	s.WriteString(TitleStyle.Render("✓ Merge Complete!"))
	s.WriteString("\n\n")
	s.WriteString(SuccessStyle.Render("Output: " + truncatePath(res.OutputFile, m.width-20)))
	s.WriteString("\n\n")
	s.WriteString(fmt.Sprintf("Rows:    %d\n", res.RowsProcessed))
	s.WriteString(fmt.Sprintf("Columns: %d\n", res.ColumnsCount))
	s.WriteString(fmt.Sprintf("Sheets:  %d\n", res.SheetsProcessed))
	if len(res.SheetsSkipped) > 0 {
		s.WriteString(WarnStyle.Render("Skipped: " + strings.Join(res.SheetsSkipped, ", ")))
		s.WriteString("\n")
	}
	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("Press enter to exit"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewError() string {
	var s strings.Builder

	s.WriteString(ErrorStyle.Render("✗ Error"))
	s.WriteString("\n\n")
	s.WriteString(m.errMsg)
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("Press enter to exit"))

	return BoxStyle.Render(s.String())
}

// truncatePath keeps the tail of p within limit characters.
func truncatePath(p string, limit int) string {
	if limit < 30 {
		limit = 30
	}
	if len(p) <= limit {
		return p
	}
	return "..." + p[len(p)-limit+3:]
}

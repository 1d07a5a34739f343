package view

import (
	"fmt"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/jpcarvalho/clubledger/internal/fee"
	"github.com/jpcarvalho/clubledger/internal/money"
)

type GenerateModel struct {
	CommonModel
	feeService *fee.Service

	form    *huh.Form
	running bool
	status  string
	err     error

	// Form bindings
	formMonth  string
	formYear   string
	formAmount string
}

func NewGenerateModel(feeSvc *fee.Service) GenerateModel {
	now := time.Now()

	m := GenerateModel{
		feeService: feeSvc,
		formMonth:  strconv.Itoa(int(now.Month())),
		formYear:   strconv.Itoa(now.Year()),
		formAmount: "15.00",
	}
	m.form = m.newForm()

	return m
}

func (m GenerateModel) newForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("month").
				Title("Month (1-12)").
				Value(&m.formMonth).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n < 1 || n > 12 {
						return fmt.Errorf("month must be between 1 and 12")
					}

					return nil
				}),

			huh.NewInput().
				Key("year").
				Title("Year").
				Value(&m.formYear).
				Validate(func(s string) error {
					n, err := strconv.Atoi(s)
					if err != nil || n < 2000 || n > 2100 {
						return fmt.Errorf("year must be between 2000 and 2100")
					}

					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Amount (EUR)").
				Value(&m.formAmount).
				Validate(func(s string) error {
					cents, err := money.Parse(s)
					if err != nil || cents < 0 {
						return fmt.Errorf("invalid amount")
					}

					return nil
				}),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m GenerateModel) Title() string     { return "Generate Fees" }
func (m GenerateModel) ShortHelp() string { return "Navigate form | Esc: back" }

func (m GenerateModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m GenerateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case generatedMsg:
		m.running = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.status = fmt.Sprintf("Created %d fees for %02d/%d", msg.created, msg.month, msg.year)
		}

		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	if m.running || m.status != "" || m.err != nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.running = true

	return m, m.generateCmd()
}

func (m GenerateModel) View() string {
	if m.running {
		return lipgloss.NewStyle().Padding(2).Render("Generating fees...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v\n\nEsc: back", m.err))
	}

	if m.status != "" {
		return lipgloss.NewStyle().Padding(2).Render(m.status + "\n\nEsc: back")
	}

	panel := lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(48).
		Render("Generate Monthly Fees\n\nOne pendente fee per active member.\nExisting fees are left untouched.\n\n" + m.form.View())

	return lipgloss.NewStyle().Padding(1).Render(panel)
}

type generatedMsg struct {
	created int
	month   int
	year    int
	err     error
}

func (m GenerateModel) generateCmd() tea.Cmd {
	// Read through the form keys; the bound fields belong to an earlier copy
	// of the model.
	month, _ := strconv.Atoi(m.form.GetString("month"))
	year, _ := strconv.Atoi(m.form.GetString("year"))
	amount, _ := money.Parse(m.form.GetString("amount"))

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		created, err := m.feeService.Generate(ctx, month, year, amount)

		return generatedMsg{created: created, month: month, year: year, err: err}
	}
}

package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/jpcarvalho/clubledger/internal/fee"
	"github.com/jpcarvalho/clubledger/internal/transaction"
)

type feesState int

const (
	feesStateBrowse feesState = iota
	feesStatePay
)

type FeesModel struct {
	CommonModel
	feeService *fee.Service

	state feesState
	table table.Model
	fees  []*fee.Fee
	form  *huh.Form

	statusFilterIdx int

	filter  fee.ListFilter
	loading bool
	err     error
	status  string

	// Form bindings
	formDate   string
	formMethod string
}

func NewFeesModel(feeSvc *fee.Service) FeesModel {
	columns := []table.Column{
		{Title: "Member", Width: 38},
		{Title: "Period", Width: 9},
		{Title: "Amount", Width: 12},
		{Title: "Status", Width: 10},
		{Title: "Paid on", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return FeesModel{
		feeService: feeSvc,
		table:      t,
		filter:     fee.ListFilter{},
	}
}

func (m FeesModel) Title() string { return "Membership Fees" }
func (m FeesModel) ShortHelp() string {
	if m.state == feesStatePay {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | p: mark paid | s: status filter | r: refresh"
}

func (m FeesModel) Init() tea.Cmd {
	return m.loadFeesCmd()
}

func (m FeesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadFeesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.fees = msg.fees
		m.refreshTable()

		return m, nil

	case feePaidMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		} else {
			m.status = "Fee marked as paid"
		}

		m.state = feesStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadFeesCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case feesStateBrowse:
		return m.updateBrowse(msg)
	case feesStatePay:
		return m.updatePay(msg)
	}

	return m, nil
}

func (m FeesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadFeesCmd()
		case "p":
			return m.enterPayMode()
		case "s":
			m.statusFilterIdx = (m.statusFilterIdx + 1) % 3
			m.applyFilter()

			return m, m.loadFeesCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m FeesModel) enterPayMode() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.fees) {
		return m, nil
	}

	if m.fees[idx].Status == fee.StatusPaga {
		m.status = "Fee is already paid"
		return m, nil
	}

	m.formDate = FormatDate(time.Now())
	m.formMethod = string(transaction.MethodMBWay)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("payment_date").
				Title("Payment date").
				Value(&m.formDate).
				Validate(func(s string) error {
					_, err := time.Parse(time.DateOnly, s)
					return err
				}),

			huh.NewSelect[string]().
				Key("payment_method").
				Title("Payment method").
				Options(
					huh.NewOption("MB Way", string(transaction.MethodMBWay)),
					huh.NewOption("Transferência", string(transaction.MethodTransferencia)),
					huh.NewOption("Multibanco", string(transaction.MethodMultibanco)),
					huh.NewOption("Dinheiro", string(transaction.MethodDinheiro)),
					huh.NewOption("Cartão", string(transaction.MethodCartao)),
				).
				Value(&m.formMethod),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = feesStatePay
	m.table.Blur()

	return m, m.form.Init()
}

func (m FeesModel) updatePay(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = feesStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.payCmd()
}

func (m FeesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading fees...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	statusLabels := []string{"All", "Pendente", "Paga"}

	header := fmt.Sprintf("Filter: [s] Status: %s", activeStyle(statusLabels[m.statusFilterIdx]))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == feesStatePay && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render("Mark Fee as Paid\n\n" + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *FeesModel) applyFilter() {
	switch m.statusFilterIdx {
	case 1:
		s := fee.StatusPendente
		m.filter.Status = &s
	case 2:
		s := fee.StatusPaga
		m.filter.Status = &s
	default:
		m.filter.Status = nil
	}
}

func (m *FeesModel) refreshTable() {
	today := time.Now()

	rows := make([]table.Row, 0, len(m.fees))

	for _, f := range m.fees {
		paidOn := ""
		if f.PaymentDate != nil {
			paidOn = FormatDate(*f.PaymentDate)
		}

		rows = append(rows, table.Row{
			f.UserID.String(),
			fmt.Sprintf("%02d/%d", f.Month, f.Year),
			FormatAmount(f.Amount),
			string(fee.EffectiveStatus(f, today)),
			paidOn,
		})
	}

	m.table.SetRows(rows)
}

// Messages

type loadFeesMsg struct {
	fees []*fee.Fee
	err  error
}

func (m FeesModel) loadFeesCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		fees, err := m.feeService.List(ctx, m.filter)

		return loadFeesMsg{fees: fees, err: err}
	}
}

type feePaidMsg struct {
	err error
}

func (m FeesModel) payCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.fees) {
		return nil
	}

	id := m.fees[idx].ID
	dateStr := m.form.GetString("payment_date")
	method := transaction.PaymentMethod(m.form.GetString("payment_method"))

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		paymentDate, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return feePaidMsg{err: err}
		}

		if _, err := m.feeService.MarkPaid(ctx, id, paymentDate, method); err != nil {
			return feePaidMsg{err: err}
		}

		return feePaidMsg{}
	}
}

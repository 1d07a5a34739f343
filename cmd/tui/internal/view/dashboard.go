package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jpcarvalho/clubledger/internal/report"
)

type DashboardModel struct {
	CommonModel
	reportService *report.Service

	summary *report.Summary
	loading bool
	err     error
}

func NewDashboardModel(reportSvc *report.Service) DashboardModel {
	return DashboardModel{reportService: reportSvc, loading: true}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadSummaryCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadSummaryMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.summary = msg.summary

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadSummaryCmd()
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading summary...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	s := m.summary

	var b strings.Builder

	title := lipgloss.NewStyle().Bold(true).Render("Club Finances")
	b.WriteString(title + "\n\n")

	b.WriteString(fmt.Sprintf("Balance:        %s\n", FormatAmount(s.Balance)))
	b.WriteString(fmt.Sprintf("This month in:  %s\n", FormatAmount(s.MonthlyRevenue)))
	b.WriteString(fmt.Sprintf("This month out: %s\n", FormatAmount(s.MonthlyExpense)))
	b.WriteString(fmt.Sprintf("Overdue fees:   %d\n\n", s.OverdueFees))

	b.WriteString(lipgloss.NewStyle().Faint(true).Render("Last months") + "\n")

	for _, p := range s.Trend {
		b.WriteString(fmt.Sprintf("%s  in %12s  out %12s\n", p.Label, FormatAmount(p.Revenue), FormatAmount(p.Expense)))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

type loadSummaryMsg struct {
	summary *report.Summary
	err     error
}

func (m DashboardModel) loadSummaryCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		summary, err := m.reportService.Summarize(ctx, time.Now())

		return loadSummaryMsg{summary: summary, err: err}
	}
}

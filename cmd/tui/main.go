package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/jpcarvalho/clubledger/cmd/tui/internal/view"
	"github.com/jpcarvalho/clubledger/internal/config"
	"github.com/jpcarvalho/clubledger/internal/database"
	"github.com/jpcarvalho/clubledger/internal/fee"
	feeStore "github.com/jpcarvalho/clubledger/internal/fee/store"
	"github.com/jpcarvalho/clubledger/internal/member"
	"github.com/jpcarvalho/clubledger/internal/report"
	reportStore "github.com/jpcarvalho/clubledger/internal/report/store"
)

type model struct {
	feeService    *fee.Service
	reportService *report.Service

	currentView View

	dashboardView view.DashboardModel
	feesView      view.FeesModel
	generateView  view.GenerateModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewFees      View = 2
	ViewGenerate  View = 3
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	members := member.NewClient(cfg.Members.DirectoryURL, cfg.Members.CacheTTL)

	feeSvc := fee.NewService(feeStore.New(db), members)
	reportSvc := report.NewService(reportStore.New(db))

	return model{
		feeService:    feeSvc,
		reportService: reportSvc,
		currentView:   ViewMenu,
		dashboardView: view.NewDashboardModel(reportSvc),
		feesView:      view.NewFeesModel(feeSvc),
		generateView:  view.NewGenerateModel(feeSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.reportService)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewFees
				m.feesView = view.NewFeesModel(m.feeService)

				return m, m.feesView.Init()
			case "3":
				m.currentView = ViewGenerate
				m.generateView = view.NewGenerateModel(m.feeService)

				return m, m.generateView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewFees:
		var newModel tea.Model
		newModel, cmd = m.feesView.Update(msg)
		m.feesView = newModel.(view.FeesModel)
	case ViewGenerate:
		var newModel tea.Model
		newModel, cmd = m.generateView.Update(msg)
		m.generateView = newModel.(view.GenerateModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"ClubLedger TUI\n\n" +
				"1. Dashboard\n" +
				"2. Membership Fees\n" +
				"3. Generate Monthly Fees\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		return m.dashboardView.View()
	case ViewFees:
		return m.feesView.View()
	case ViewGenerate:
		return m.generateView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}

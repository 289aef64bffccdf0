package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jdevries/fysio/internal/stats"
	"github.com/jdevries/fysio/internal/store"
)

const chartDays = 14

// progressModel renders the derived statistics: streak, adherence grades,
// and a completion chart over the last two weeks. Everything is recomputed
// from the full history on refresh; there is no cached aggregation.
type progressModel struct {
	store  *store.Store
	user   *store.User
	width  int
	height int

	history []store.WorkoutRecord
	chart   barchart.Model
}

func newProgressModel(s *store.Store) progressModel {
	return progressModel{
		store: s,
		chart: barchart.New(60, 10),
	}
}

func (p *progressModel) setSize(w, h int) {
	p.width = w
	p.height = h
}

func (p *progressModel) setUser(u *store.User) {
	p.user = u
	p.history = nil
}

func (p progressModel) refresh() tea.Cmd {
	if p.user == nil {
		return nil
	}
	userID := p.user.ID
	s := p.store
	return func() tea.Msg {
		return progressDataMsg{history: s.LoadHistory(userID)}
	}
}

func (p progressModel) update(msg tea.Msg) (progressModel, tea.Cmd) {
	switch msg := msg.(type) {
	case progressDataMsg:
		p.history = msg.history
		p.buildChart()
		return p, nil
	}
	return p, nil
}

func (p *progressModel) buildChart() {
	chartWidth := p.width - 8
	if chartWidth < 28 {
		chartWidth = 28
	}

	p.chart = barchart.New(chartWidth, 10)

	// Highest completion per day, zero bars for rest days.
	byDay := make(map[string]int)
	for _, r := range p.history {
		if r.CompletionPercentage > byDay[r.Date] {
			byDay[r.Date] = r.CompletionPercentage
		}
	}

	today := stats.Today()
	var bars []barchart.BarData
	for i := chartDays - 1; i >= 0; i-- {
		day := today.AddDays(-i)
		pct := byDay[day.String()]

		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if pct == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}
		bars = append(bars, barchart.BarData{
			Label: day.String()[8:], // day of month
			Values: []barchart.BarValue{
				{Name: day.String(), Value: float64(pct), Style: style},
			},
		})
	}

	p.chart.PushAll(bars)
	p.chart.Draw()
}

// --- View ---

func (p progressModel) view() string {
	w := p.width - 4

	streakPanel := p.renderStreakPanel(w)
	adherencePanel := p.renderAdherencePanel(w)
	chartPanel := p.renderChartPanel(w)

	return lipgloss.JoinVertical(lipgloss.Left, streakPanel, adherencePanel, chartPanel)
}

func (p progressModel) renderStreakPanel(w int) string {
	today := stats.Today()
	streak := stats.CurrentStreak(p.history, today)

	number := bigNumberStyle.Width(w - 6).Render(fmt.Sprintf("%d day streak", streak))
	message := mutedStyle.Render(stats.StreakMessage(streak))

	content := lipgloss.JoinVertical(lipgloss.Center, number, message)
	if streak > 0 {
		return activePanelStyle.Width(w).Render(content)
	}
	return panelStyle.Width(w).Render(content)
}

func (p progressModel) renderAdherencePanel(w int) string {
	today := stats.Today()
	weekly := stats.WeeklyAdherence(p.history, today, p.store.WeekStart())
	overall := stats.OverallAdherence(p.history, today)

	title := titleStyle.Render("Adherence")

	var rows []string
	rows = append(rows, title)
	if len(p.history) == 0 {
		rows = append(rows, mutedStyle.Render("Log your first workout to see adherence."))
	} else {
		rows = append(rows,
			"  This week  "+renderGrade(weekly),
			"  Overall    "+renderGrade(overall),
			subtitleStyle.Render(fmt.Sprintf("  %d workouts logged in total", len(p.history))),
		)
	}
	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func renderGrade(pct int) string {
	grade := stats.LetterGrade(pct)
	label := lipgloss.NewStyle().Foreground(lipgloss.Color(grade.Color)).Bold(true).Render(grade.Label)
	return fmt.Sprintf("%-24s %3d%%", label, pct)
}

func (p progressModel) renderChartPanel(w int) string {
	title := titleStyle.Render("Last 14 Days") + "  " + mutedStyle.Render("completion %")
	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", p.chart.View()),
	)
}

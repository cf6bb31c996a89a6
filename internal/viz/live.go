package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/phycosim/internal/climate"
	"github.com/san-kum/phycosim/internal/engine"
	"github.com/san-kum/phycosim/internal/kinetics"
)

type TickMsg time.Time

// LiveModel replays a daily simulation in the terminal, one simulated day
// per tick. The run happens up front; the model only walks the series, so
// pausing and scrubbing never disturb the physics.
type LiveModel struct {
	species    string
	scenario   engine.Scenario
	result     *engine.Result
	dayToMonth []int

	day     int
	running bool
	speed   int // simulated days per tick
}

func NewLiveModel(species string, sc engine.Scenario) (LiveModel, error) {
	res, err := engine.Run(sc)
	if err != nil {
		return LiveModel{}, err
	}
	return LiveModel{
		species:    species,
		scenario:   sc,
		result:     res,
		dayToMonth: climate.DayToMonthMap(sc.StartMonth, sc.DurationDays),
		running:    true,
		speed:      1,
	}, nil
}

func (m LiveModel) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.day = 0
		case "[":
			if m.day > 0 {
				m.day--
			}
		case "]":
			if m.day < m.result.Days()-1 {
				m.day++
			}
		case "+", "=":
			if m.speed < 16 {
				m.speed *= 2
			}
		case "-", "_":
			if m.speed > 1 {
				m.speed /= 2
			}
		}
	case TickMsg:
		if m.running {
			m.day += m.speed
			if m.day >= m.result.Days() {
				m.day = m.result.Days() - 1
				m.running = false
			}
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

func (m LiveModel) View() string {
	if m.result.Days() == 0 {
		return "no data"
	}

	mi := m.dayToMonth[m.day]
	month := m.scenario.Climate.Months[mi]
	r := m.result

	harvestsSoFar := 0
	for _, d := range r.HarvestDays {
		if d <= m.day {
			harvestsSoFar++
		}
	}

	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value)
	}

	status := "running"
	if !m.running {
		status = "paused"
	}

	lines := []string{
		headerStyle.Render(fmt.Sprintf("%s in %s", m.species, m.scenario.Climate.Name)),
		row("day", fmt.Sprintf("%d / %d  (%s, %s)", m.day+1, r.Days(),
			climate.MonthNames[mi], seasonStyle(string(month.Season)).Render(string(month.Season)))),
		row("biomass", fmt.Sprintf("%.3f g/L", r.Biomass[m.day])),
		row("growth rate", fmt.Sprintf("%.4f /day", r.GrowthRate[m.day])),
		row("productivity", fmt.Sprintf("%6.2f g/m2/day %s", r.Productivity[m.day],
			ProductivityGauge(r.Productivity[m.day], 20))),
		row("CO2 fixed so far", fmt.Sprintf("%.1f g/m2", r.CO2CumulativeGm2[m.day])),
		row("harvests", fmt.Sprintf("%d", harvestsSoFar)),
		"",
		row("biomass history", Sparkline(r.Biomass[:m.day+1], 60)),
		row("progress", ProgressBar(float64(m.day+1)/float64(r.Days()), 40)+"  "+status),
	}

	// threshold line helps read the harvest cycling
	if m.scenario.HarvestThreshold > 0 {
		lines = append(lines, row("harvest threshold", fmt.Sprintf("%.1f g/L (inoculum %.1f g/L)",
			m.scenario.HarvestThreshold, m.scenario.InitialBiomass)))
	}
	if p := r.Productivity[m.day]; p > kinetics.ProductivityCeiling {
		lines = append(lines, warnStyle.Render(fmt.Sprintf("! %.1f g/m2/day exceeds the %.0f g/m2/day ceiling",
			p, kinetics.ProductivityCeiling)))
	}

	lines = append(lines, helpStyle.Render("space pause  [ ] scrub  +/- speed  r restart  q quit"))

	return panelStyle.Render(strings.Join(lines, "\n"))
}

// RunLive starts the interactive viewer and blocks until the user quits.
func RunLive(species string, sc engine.Scenario) error {
	model, err := NewLiveModel(species, sc)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(model).Run()
	return err
}

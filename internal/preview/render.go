package preview

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/luki/gauge/internal/card"
	"github.com/luki/gauge/internal/chart"
	"github.com/luki/gauge/internal/geometry"
	"github.com/luki/gauge/internal/scene"
	"github.com/luki/gauge/internal/state"
)

// ── Color palette ────────────────────────────────────────────────────

var (
	colorTitleBg  = lipgloss.Color("17")
	colorTitleFg  = lipgloss.Color("51")
	colorBorder   = lipgloss.Color("62")
	colorName     = lipgloss.Color("147")
	colorEntity   = lipgloss.Color("243")
	colorLabel    = lipgloss.Color("252")
	colorDim      = lipgloss.Color("240")
	colorFooterBg = lipgloss.Color("235")
	colorCrit     = lipgloss.Color("196")
	colorPaused   = lipgloss.Color("196")
)

func (m Model) renderTitleBar(width int) string {
	logo := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorTitleFg).
		Render("GAUGE PREVIEW")

	dimS := lipgloss.NewStyle().Foreground(colorDim)

	var statusParts []string
	statusParts = append(statusParts, dimS.Render(fmt.Sprintf("up %s", fmtDuration(time.Since(m.startTime)))))

	if !m.lastPoll.IsZero() {
		statusParts = append(statusParts, dimS.Render(m.lastPoll.Format("15:04:05")))
	}

	if m.paused {
		p := lipgloss.NewStyle().
			Foreground(colorPaused).
			Bold(true).
			Render("PAUSED")
		statusParts = append(statusParts, p)
	}

	if m.opts.StatesPath != "" {
		statusParts = append(statusParts, dimS.Render(m.opts.StatesPath))
	}

	sep := dimS.Render(" │ ")
	right := strings.Join(statusParts, sep)

	gap := width - lipgloss.Width(logo) - lipgloss.Width(right) - 4
	if gap < 1 {
		gap = 1
	}
	filler := strings.Repeat(" ", gap)

	return lipgloss.NewStyle().
		Background(colorTitleBg).
		Width(width).
		Padding(0, 1).
		Render(logo + filler + right)
}

// marks places the statistic markers, secondary needles and the primary
// needle on the unrolled scale, in drawing order.
func (m Model) marks() []chart.Mark {
	cfg := m.opts.Card
	var marks []chart.Mark

	for _, st := range card.Stats {
		if v, ok := state.Numeric(m.snapshot, cfg.StatEntity(st)); ok {
			marks = append(marks, chart.Mark{Value: v, Rune: '┃', Color: cfg.StatColor(st)})
		}
	}

	needles := m.scene.Needles()
	for i, n := range needles {
		if i == len(needles)-1 {
			break // primary
		}
		marks = append(marks, chart.Mark{
			Value: geometry.AngleToValue(n.Angle, cfg.Min, cfg.Max),
			Rune:  '▲',
			Color: n.Fill,
		})
	}

	if m.scene.Numeric {
		marks = append(marks, chart.Mark{Value: m.scene.Value, Rune: '◆', Color: cfg.NeedleColor})
	}
	return marks
}

// title is the card name, else the entity's friendly name, else its id.
func (m Model) title() string {
	if m.opts.Card.Name != "" {
		return m.opts.Card.Name
	}
	if v, ok := m.snapshot.Lookup(m.opts.Card.Entity); ok && v.Name != "" {
		return v.Name
	}
	return m.opts.Card.Entity
}

func (m Model) renderGaugePanel(totalWidth int) string {
	cfg := m.opts.Card
	sc := m.scene

	innerWidth := totalWidth - 4
	if innerWidth < 30 {
		innerWidth = 30
	}

	loLabel := strconv.FormatFloat(cfg.Min, 'f', -1, 64)
	hiLabel := strconv.FormatFloat(cfg.Max, 'f', -1, 64)

	scaleWidth := innerWidth - len(loLabel) - len(hiLabel) - 2
	if scaleWidth < 15 {
		scaleWidth = 15
	}
	if scaleWidth > 140 {
		scaleWidth = 140
	}

	dimS := lipgloss.NewStyle().Foreground(colorDim)
	valS := lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	frameL := lipgloss.NewStyle().Foreground(colorBorder).Render("▕")
	frameR := lipgloss.NewStyle().Foreground(colorBorder).Render("▏")

	var rows []string

	header := lipgloss.NewStyle().Bold(true).Foreground(colorName).Render(m.title()) +
		"  " + lipgloss.NewStyle().Foreground(colorEntity).Render(cfg.Entity)
	var captions []string
	for _, c := range []string{cfg.LeftText, cfg.RightText} {
		if c != "" {
			captions = append(captions, c)
		}
	}
	if len(captions) > 0 {
		header += "  " + dimS.Render(strings.Join(captions, " · "))
	}
	rows = append(rows, header)

	value := sc.ValueText
	if sc.Unit != "" {
		value += " " + sc.Unit
	}
	valueColor := "gray"
	if sc.Numeric {
		valueColor = geometry.ColorAt(sc.Ranges, sc.Value, valueColor)
	}
	rows = append(rows, chart.RenderValue(value, valueColor, true)+
		dimS.Render(fmt.Sprintf("  needle %.1f°", sc.Angle)))

	scale := chart.RenderScale(sc.Ranges, cfg.Min, cfg.Max, m.marks(), scaleWidth)
	rows = append(rows, dimS.Render(loLabel)+" "+scale+" "+dimS.Render(hiLabel))

	var stats []string
	for _, st := range card.Stats {
		v, ok := state.Numeric(m.snapshot, cfg.StatEntity(st))
		if !ok {
			continue
		}
		stats = append(stats, dimS.Render(string(st)+" ")+
			chart.RenderValue(scene.FormatNumber(v, cfg.StatDecimals, cfg.DecimalSeparator), cfg.StatColor(st), false))
	}
	if len(stats) > 0 {
		rows = append(rows, strings.Join(stats, "  "))
	}

	for _, e := range sc.Layer(scene.LayerNeedleInfo) {
		if t, ok := e.Shape.(scene.Text); ok {
			rows = append(rows, chart.RenderValue(t.Content, t.Fill, false))
		}
	}

	if hist := m.history.Get(cfg.Entity); hist != nil && hist.Len() > 0 {
		dec, sep := cfg.StatDecimals, cfg.DecimalSeparator
		histStats := dimS.Render(" avg") + valS.Render(scene.FormatNumber(hist.Avg(), dec, sep)) +
			dimS.Render(" lo") + valS.Render(scene.FormatNumber(hist.WindowMin(), dec, sep)) +
			dimS.Render(" pk") + valS.Render(scene.FormatNumber(hist.WindowMax(), dec, sep))

		// the sparkline row must fit beside its stats or the panel wraps it
		sparkWidth := min(scaleWidth, innerWidth-len(loLabel)-2-lipgloss.Width(histStats))
		if sparkWidth < 10 {
			sparkWidth = 10
		}

		pts := hist.LastNPoints(sparkWidth)
		spark := chart.RenderSparklinePoints(pts, sparkWidth, cfg.Min, cfg.Max, sc.Ranges, "gray")
		pad := strings.Repeat(" ", len(loLabel))

		rows = append(rows, pad+frameL+spark+frameR+histStats)

		timeline := chart.RenderTimeline(pts, sparkWidth)
		if strings.TrimSpace(timeline) != "" {
			rows = append(rows, pad+" "+timeline)
		}

		rows = append(rows, pad+" "+
			dimS.Render("since start  min ")+valS.Render(scene.FormatNumber(hist.Min, dec, sep))+
			dimS.Render("  peak ")+valS.Render(scene.FormatNumber(hist.Peak, dec, sep)))
	}

	panelContent := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(totalWidth).
		Render(panelContent)
}

func (m Model) renderEventsPanel(totalWidth int) string {
	dimS := lipgloss.NewStyle().Foreground(colorDim)
	labelS := lipgloss.NewStyle().Foreground(colorLabel)

	var rows []string
	if m.status != "" {
		rows = append(rows, labelS.Render(m.status))
	}
	for i := len(m.events) - 1; i >= 0; i-- {
		ev := m.events[i]
		id := ev.ID
		if len(id) > 8 {
			id = id[:8]
		}
		rows = append(rows, dimS.Render(ev.Time.Local().Format("15:04:05")+" "+id+" ")+
			labelS.Render(truncate(kindName(ev.Kind), 10)+" → "+ev.Action.Action))
	}
	if len(rows) == 0 {
		rows = append(rows, dimS.Render("No actions yet"))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1).
		Width(totalWidth).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (m Model) renderFooter(width int) string {
	dimS := lipgloss.NewStyle().Foreground(colorDim)
	labelS := lipgloss.NewStyle().Foreground(colorLabel)

	legend := labelS.Render("◆") + dimS.Render(" value ") +
		labelS.Render("▲") + dimS.Render(" needle ") +
		labelS.Render("┃") + dimS.Render(" min/max/avg")

	keys := dimS.Render("q") + labelS.Render(":quit") +
		dimS.Render("  enter/d/h") + labelS.Render(":tap/double/hold") +
		dimS.Render("  p") + labelS.Render(":pause")

	gap := width - lipgloss.Width(legend) - lipgloss.Width(keys) - 4
	if gap < 1 {
		gap = 1
	}
	filler := strings.Repeat(" ", gap)

	return lipgloss.NewStyle().
		Background(colorFooterBg).
		Width(width).
		Padding(0, 1).
		Render(legend + filler + keys)
}

func truncate(s string, w int) string {
	if len(s) <= w {
		return s
	}
	if w <= 3 {
		return s[:w]
	}
	return s[:w-1] + "…"
}

func fmtDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

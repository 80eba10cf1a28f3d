package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/gosuda/vdraw"
	"github.com/gosuda/vdraw/ast"
)

// model is the override form: one input per declaration field and a live
// preview of the rendered document.
type model struct {
	cfg       appConfig
	prog      *vdraw.Program
	fields    []fieldInput
	inputs    []textinput.Model
	focus     int
	preview   viewport.Model
	ready     bool
	status    string
	seq       int
	submit    bool
	submitted bool
	result    renderResult
	lastErr   error
}

var (
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	inputStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("24")).Padding(0, 1)
	labelStyle    = lipgloss.NewStyle().Bold(true).Width(18)
	requiredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	statusStyle   = lipgloss.NewStyle().Faint(true)
	previewStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
)

func newModel(cfg appConfig) (model, error) {
	raw, err := vdraw.ParseOverrides(cfg.overrides)
	if err != nil {
		return model{}, err
	}
	prog, err := compile(cfg)
	if err != nil {
		return model{}, err
	}
	sig := prog.Signature()
	m := model{
		cfg:     cfg,
		prog:    prog,
		preview: viewport.New(80, 10),
		status:  "rendering",
	}
	for _, name := range sig.Names() {
		f := sig[name]
		m.fields = append(m.fields, fieldInput{name: name, typeName: f.Type.String(), required: !f.HasDefault})
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 256
		ti.Width = 40
		if f.HasDefault {
			ti.Placeholder = "(default)"
		} else {
			ti.Placeholder = "required"
		}
		if f.Type == ast.Color {
			ti.Placeholder += " #rrggbb or rgba(...)"
		}
		ti.SetValue(raw[name])
		m.inputs = append(m.inputs, ti)
	}
	if len(m.inputs) > 0 {
		m.inputs[0].Focus()
	}
	return m, nil
}

func renderCmd(prog *vdraw.Program, seq int, raw map[string]string) tea.Cmd {
	return func() tea.Msg {
		res, err := render(prog, raw)
		return renderDoneMsg{seq: seq, result: res, err: err}
	}
}

func (m model) values() map[string]string {
	out := map[string]string{}
	for i, f := range m.fields {
		if v := strings.TrimSpace(m.inputs[i].Value()); v != "" {
			out[f.name] = v
		}
	}
	return out
}

func (m *model) rerender() tea.Cmd {
	m.seq++
	m.status = "rendering"
	return renderCmd(m.prog, m.seq, m.values())
}

func (m *model) moveFocus(delta int) {
	if len(m.inputs) == 0 {
		return
	}
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + len(m.inputs)) % len(m.inputs)
	m.inputs[m.focus].Focus()
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, renderCmd(m.prog, m.seq, m.values()))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h := msg.Height - len(m.fields) - 5
		if h < 3 {
			h = 3
		}
		m.preview.Width = msg.Width - 2
		m.preview.Height = h
		m.ready = true
		return m, nil

	case renderDoneMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.lastErr = msg.err
		if msg.err != nil {
			m.submit = false
			m.status = "error"
			m.preview.SetContent(errStyle.Render(msg.err.Error()))
			return m, nil
		}
		m.result = msg.result
		m.status = fmt.Sprintf("ok: %d figures", msg.result.figures)
		m.preview.SetContent(msg.result.svg)
		if m.submit {
			m.submitted = true
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "down":
			m.moveFocus(1)
			return m, nil
		case "shift+tab", "up":
			m.moveFocus(-1)
			return m, nil
		case "enter":
			m.submit = true
			return m, m.rerender()
		case "pgup", "pgdown":
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd
		}
		if len(m.inputs) == 0 {
			return m, nil
		}
		before := m.inputs[m.focus].Value()
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		if m.inputs[m.focus].Value() != before {
			return m, tea.Batch(cmd, m.rerender())
		}
		return m, cmd
	}

	if len(m.inputs) > 0 {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

// swatch previews a hex colour value.
func swatch(value string) string {
	c, err := colorful.Hex(strings.TrimSpace(value))
	if err != nil {
		return "  "
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("  ")
}

func (m model) View() string {
	if !m.ready {
		return "initializing..."
	}
	var b strings.Builder
	for i, f := range m.fields {
		label := f.name + ": " + f.typeName
		if f.required {
			label = requiredStyle.Render("*") + label
		}
		input := m.inputs[i].View()
		if i == m.focus {
			input = inputStyle.Render(input)
		}
		sw := ""
		if f.typeName == ast.Color.String() {
			sw = swatch(m.inputs[i].Value()) + " "
		}
		fmt.Fprintf(&b, "%s %s%s\n", labelStyle.Render(label), sw, input)
	}
	if len(m.fields) == 0 {
		b.WriteString(statusStyle.Render("no declaration fields") + "\n")
	}
	b.WriteString(previewStyle.Render(m.preview.View()))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(m.status + "  tab: next field  enter: write  esc: quit"))
	return b.String()
}

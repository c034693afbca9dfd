package plot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lixenwraith/liveterm/audio"
	"github.com/lixenwraith/liveterm/eventlog"
	"github.com/lixenwraith/liveterm/live"
	"github.com/lixenwraith/liveterm/logx"
	"github.com/lixenwraith/liveterm/style"
	"github.com/lixenwraith/liveterm/terminal"
	"github.com/mattn/go-runewidth"
	"pkt.systems/pslog"
)

// Mode is the field currently being edited
type Mode int

const (
	ModeIdle Mode = iota
	ModeFunction
	ModeDomain
	ModeSteps
	ModeLabel
)

func (m Mode) String() string {
	switch m {
	case ModeFunction:
		return "function"
	case ModeDomain:
		return "domain"
	case ModeSteps:
		return "steps"
	case ModeLabel:
		return "label"
	default:
		return "idle"
	}
}

const (
	headerText = "Click a button to modify the plot (hold Esc to quit)"
	buttonRow  = 2
	inputRow   = 10
)

// Options configures the plot editor
type Options struct {
	Function string
	Domain   string
	Steps    int
	Label    string

	Surface   Surface
	Feedback  *audio.Feedback
	Formatter *style.Formatter
	Logger    pslog.Logger
}

type button struct {
	mode     Mode
	text     string
	bg       style.Color
	from, to int // screen columns [from, to)
}

// Editor is a live.Consumer editing the function, domain, steps and label of a plot
// Committing a field re-samples the function and sends the Series to the Surface
type Editor struct {
	opts Options
	ev   *Evaluator
	log  pslog.Logger

	mode  Mode
	input []rune

	function string
	domain   string
	steps    string
	label    string
	a, b     float64
	n        int

	series  Series
	buttons []button
	exitBtn button
	view    live.View
	done    bool
}

// New creates a plot editor; invalid initial domain or steps fall back to "-1, 1" and 1000
func New(opts Options) *Editor {
	if opts.Surface == nil {
		opts.Surface = NewMemorySurface()
	}
	if opts.Formatter == nil {
		opts.Formatter = style.NewFormatter(style.ColorModeTrueColor)
	}
	e := &Editor{
		opts: opts,
		ev:   NewEvaluator(),
		log:  logx.WithConsumer(logx.OrDiscard(opts.Logger), "plot"),
	}

	e.domain = strings.TrimSpace(opts.Domain)
	a, b, err := e.ev.Domain(e.domain)
	if err != nil {
		e.domain = "-1, 1"
		a, b = -1, 1
	}
	e.a, e.b = a, b

	e.n = opts.Steps
	if e.n < 2 || e.n > MaxSteps {
		e.n = 1000
	}
	e.steps = strconv.Itoa(e.n)
	e.label = opts.Label

	if fn := strings.TrimSpace(opts.Function); fn != "" {
		if x, y, err := e.ev.Sample(fn, e.a, e.b, e.n); err == nil {
			e.function = fn
			e.publish(x, y)
		} else {
			e.log.Debug("initial function rejected", "function", fn, "err", err)
		}
	}
	return e
}

// Close releases the evaluator
func (e *Editor) Close() {
	e.ev.Close()
}

// Mode reports the field being edited
func (e *Editor) Mode() Mode { return e.mode }

// Input returns the uncommitted text of the current field
func (e *Editor) Input() string { return string(e.input) }

// Committed returns the committed function, domain, steps and label
func (e *Editor) Committed() (function, domain, steps, label string) {
	return e.function, e.domain, e.steps, e.label
}

// Series returns the last committed series
func (e *Editor) Series() Series { return e.series }

func (e *Editor) Init(view live.View) (live.Frame, error) {
	e.layout(view)
	return e.frame(), nil
}

func (e *Editor) Step(batch eventlog.Batch, view live.View) (live.Frame, error) {
	e.layout(view)
	for _, k := range batch.Keys {
		e.HandleKey(k)
	}
	for _, p := range batch.Pointers {
		e.HandlePointer(p)
	}
	return e.frame(), nil
}

// HandleKey edits the input of the active field
func (e *Editor) HandleKey(k terminal.Key) {
	if e.mode == ModeIdle {
		return
	}
	switch k {
	case terminal.KeyEsc:
		e.mode = ModeIdle
		e.input = nil
	case terminal.KeyEnter:
		e.commit()
	case terminal.KeyBackspace:
		if len(e.input) > 0 {
			e.input = e.input[:len(e.input)-1]
		}
	default:
		r, ok := k.Rune()
		if !ok || !validRune(e.mode, r) {
			e.opts.Feedback.Reject()
			return
		}
		e.input = append(e.input, r)
	}
}

// HandlePointer activates buttons on left click
func (e *Editor) HandlePointer(p terminal.PointerEvent) {
	if p.Action != terminal.LeftClick || p.Row != buttonRow {
		return
	}
	if p.Col >= e.exitBtn.from && p.Col < e.exitBtn.to {
		e.done = true
		return
	}
	for _, b := range e.buttons {
		if p.Col >= b.from && p.Col < b.to {
			e.enter(b.mode)
			return
		}
	}
}

func (e *Editor) enter(m Mode) {
	e.mode = m
	switch m {
	case ModeFunction:
		e.input = []rune(e.function)
	case ModeDomain:
		e.input = []rune(e.domain)
	case ModeSteps:
		e.input = []rune(e.steps)
	case ModeLabel:
		e.input = []rune(e.label)
	}
}

// commit validates the input; on failure both the committed state and the input are kept
func (e *Editor) commit() {
	text := strings.TrimSpace(string(e.input))
	fn, a, b, n := e.function, e.a, e.b, e.n

	var err error
	switch e.mode {
	case ModeFunction:
		fn = text
	case ModeDomain:
		a, b, err = e.ev.Domain(text)
	case ModeSteps:
		n, err = e.ev.Steps(text)
	}
	if err != nil {
		e.reject(err)
		return
	}

	var x, y []float64
	if fn != "" {
		x, y, err = e.ev.Sample(fn, a, b, n)
		if err != nil {
			e.reject(err)
			return
		}
	}

	switch e.mode {
	case ModeFunction:
		e.function = fn
	case ModeDomain:
		e.domain, e.a, e.b = text, a, b
	case ModeSteps:
		e.steps, e.n = strconv.Itoa(n), n
	case ModeLabel:
		e.label = text
	}
	e.mode = ModeIdle
	e.input = nil

	if fn != "" {
		e.publish(x, y)
	}
	e.opts.Feedback.Commit()
}

func (e *Editor) reject(err error) {
	e.log.Debug("edit rejected", "mode", e.mode.String(), "input", string(e.input), "err", err)
	e.opts.Feedback.Reject()
}

func (e *Editor) publish(x, y []float64) {
	e.series = Series{
		X: x,
		Y: y,
		Labels: map[string]string{
			LabelFunction: e.function,
			LabelDomain:   e.domain,
			LabelSteps:    e.steps,
			LabelTitle:    e.label,
		},
	}
	if err := e.opts.Surface.Update(e.series); err != nil {
		e.log.Error("surface update failed", "err", err)
		return
	}
	e.log.Debug("surface updated", "points", len(x))
}

func validRune(m Mode, r rune) bool {
	switch m {
	case ModeFunction:
		return isASCIILetter(r) || isDigit(r) || strings.ContainsRune(".()+-*/%^, ", r)
	case ModeDomain:
		return isDigit(r) || strings.ContainsRune(",.-+Ee ", r)
	case ModeSteps:
		return isDigit(r) || strings.ContainsRune(".-+Ee", r)
	case ModeLabel:
		return r >= ' '
	}
	return false
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

// --- Rendering ---

func (e *Editor) layout(view live.View) {
	e.view = view
	e.buttons = e.buttons[:0]
	col := 1
	for _, b := range []struct {
		mode Mode
		bg   string
	}{
		{ModeFunction, "purple"},
		{ModeDomain, "green"},
		{ModeSteps, "blue"},
		{ModeLabel, "teal"},
	} {
		text := " " + b.mode.String() + " "
		e.buttons = append(e.buttons, button{
			mode: b.mode,
			text: text,
			bg:   style.MustParse(b.bg),
			from: col,
			to:   col + len(text),
		})
		col += len(text)
	}

	exit := " exit "
	from := view.Width - len(exit) - 1
	if from < col+1 {
		from = col + 1
	}
	e.exitBtn = button{text: exit, bg: style.MustParse("red"), from: from, to: from + len(exit)}
}

func (e *Editor) buttonBar() string {
	white := style.MustParse("white")
	var sb strings.Builder
	sb.WriteByte(' ')
	for _, b := range e.buttons {
		sb.WriteString(e.opts.Formatter.Format(b.text, white, b.bg, style.Bold))
	}
	sb.WriteString(strings.Repeat(" ", e.exitBtn.from-e.buttons[len(e.buttons)-1].to))
	sb.WriteString(e.opts.Formatter.Format(e.exitBtn.text, white, e.exitBtn.bg, style.Bold))
	return sb.String()
}

func (e *Editor) frame() live.Frame {
	fn := e.function
	if fn == "" {
		fn = "(none)"
	}
	lines := []string{
		"",
		" " + headerText,
		e.buttonBar(),
		"",
		" f(x) = " + fn,
		fmt.Sprintf(" domain = [%g, %g]   steps = %d   label = %s", e.a, e.b, e.n, e.label),
		"",
	}

	if len(e.series.Y) > 0 {
		lines = append(lines, " "+Sparkline(e.series.Y, e.view.Width-2))
		if lo, hi, ok := bounds(e.series.Y); ok {
			lines = append(lines, fmt.Sprintf(" y in [%g, %g]", lo, hi))
		} else {
			lines = append(lines, " y has no finite values")
		}
	} else {
		lines = append(lines, "", "")
	}
	lines = append(lines, "")

	f := live.Frame{Lines: lines, Done: e.done}
	if e.mode == ModeIdle {
		return f
	}

	prompt := map[Mode]string{
		ModeFunction: " f(x) := ",
		ModeDomain:   " (x0, x1): ",
		ModeSteps:    " steps = ",
		ModeLabel:    " label = ",
	}[e.mode]
	input := string(e.input)
	f.Lines = append(f.Lines, prompt+input)
	f.CursorVisible = true
	f.CursorShape = terminal.CursorBar
	f.CursorRow = min(inputRow, max(e.view.Height-1, 0))
	f.CursorCol = min(runewidth.StringWidth(prompt+input), max(e.view.Width-1, 0))
	return f
}

// Package monitor is a terminal dashboard showing the core state, the
// disassembly around PC, the serial output and the log while a ROM runs.
package monitor

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/valerio/go-jeebie-core/jeebie/debug"
)

const (
	leftPanelWidth = 40
	registerHeight = 11
	disasmHeight   = 9
	minTermWidth   = 80
	minTermHeight  = 24
	logCapacity    = 200
)

// DebugDataProvider is the machine being watched.
type DebugDataProvider interface {
	ExtractDebugData() *debug.CompleteDebugData
}

// Command is what the user asked for during the last Update.
type Command int

const (
	CommandNone Command = iota
	// CommandQuit asks the driver to stop.
	CommandQuit
	// CommandStep asks for a single instruction while paused.
	CommandStep
)

// Monitor draws a DebugDataProvider on a tcell screen.
type Monitor struct {
	screen    tcell.Screen
	provider  DebugDataProvider
	logBuffer *LogBuffer
	logLevel  slog.Level
	paused    bool
	disasm    *debug.DisasmBuffer

	previousLogger *slog.Logger
}

// New creates a monitor drawing on screen. The screen is initialized by Init.
func New(screen tcell.Screen, provider DebugDataProvider) *Monitor {
	return &Monitor{
		screen:    screen,
		provider:  provider,
		logBuffer: NewLogBuffer(logCapacity),
		logLevel:  slog.LevelInfo,
		disasm:    debug.NewDisasmBuffer(disasmHeight),
	}
}

// NewTerminal creates a monitor on the controlling terminal.
func NewTerminal(provider DebugDataProvider) (*Monitor, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %w", err)
	}
	return New(screen, provider), nil
}

// Init takes over the screen and redirects the default logger into the
// monitor until Cleanup.
func (m *Monitor) Init() error {
	if err := m.screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}

	m.previousLogger = slog.Default()
	slog.SetDefault(slog.New(NewLogBufferHandler(m.logBuffer, slog.LevelDebug)))

	m.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	m.screen.Clear()
	slog.Info("Monitor initialized")
	return nil
}

// Cleanup restores the terminal and the default logger.
func (m *Monitor) Cleanup() {
	if m.previousLogger != nil {
		slog.SetDefault(m.previousLogger)
		m.previousLogger = nil
	}
	m.screen.Fini()
}

// Paused reports whether the user paused execution.
func (m *Monitor) Paused() bool {
	return m.paused
}

// Logs returns the buffer holding the captured log records.
func (m *Monitor) Logs() *LogBuffer {
	return m.logBuffer
}

// Update handles pending input without blocking and redraws the screen.
func (m *Monitor) Update() Command {
	cmd := CommandNone
	for m.screen.HasPendingEvent() {
		switch ev := m.screen.PollEvent().(type) {
		case *tcell.EventKey:
			if c := m.processKeyEvent(ev); c != CommandNone && cmd != CommandQuit {
				cmd = c
			}
		case *tcell.EventResize:
			m.screen.Sync()
		}
	}

	m.render()
	return cmd
}

func (m *Monitor) processKeyEvent(ev *tcell.EventKey) Command {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return CommandQuit
	case tcell.KeyRune:
	default:
		return CommandNone
	}

	switch ev.Rune() {
	case 'q':
		return CommandQuit
	case ' ':
		m.paused = !m.paused
		slog.Info("Execution toggled", "paused", m.paused)
	case 'n':
		if m.paused {
			return CommandStep
		}
	case '+', '=':
		m.changeLogLevel(1)
	case '-':
		m.changeLogLevel(-1)
	}
	return CommandNone
}

func (m *Monitor) changeLogLevel(direction int) {
	oldLevel := m.logLevel
	switch direction {
	case -1:
		switch m.logLevel {
		case slog.LevelDebug:
			m.logLevel = slog.LevelInfo
		case slog.LevelInfo:
			m.logLevel = slog.LevelWarn
		case slog.LevelWarn:
			m.logLevel = slog.LevelError
		}
	case 1:
		switch m.logLevel {
		case slog.LevelError:
			m.logLevel = slog.LevelWarn
		case slog.LevelWarn:
			m.logLevel = slog.LevelInfo
		case slog.LevelInfo:
			m.logLevel = slog.LevelDebug
		}
	}
	if oldLevel != m.logLevel {
		slog.Info("Log filter changed", "from", oldLevel, "to", m.logLevel)
	}
}

func (m *Monitor) render() {
	termWidth, termHeight := m.screen.Size()
	m.screen.Clear()
	if termWidth < minTermWidth || termHeight < minTermHeight {
		style := tcell.StyleDefault.Foreground(tcell.ColorRed)
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", minTermWidth, minTermHeight)
		m.drawText(0, termHeight/2, termWidth, msg, style)
		m.screen.Show()
		return
	}

	data := m.provider.ExtractDebugData()
	dividerX := leftPanelWidth
	rightX := dividerX + 2
	rightWidth := termWidth - rightX
	serialHeight := (termHeight - 3) / 2

	m.drawBorders(termWidth, termHeight, dividerX, serialHeight, data)
	if data != nil {
		m.drawRegisters(1, 1, leftPanelWidth-2, data)
		m.drawDisassembly(1, registerHeight+2, leftPanelWidth-2, data)
		m.drawSerial(rightX, 1, rightWidth, serialHeight, data.Serial)
	}
	logsY := serialHeight + 2
	m.drawLogs(rightX, logsY, rightWidth, termHeight-1-logsY)

	m.screen.Show()
}

func (m *Monitor) drawBorders(termWidth, termHeight, dividerX, serialHeight int, data *debug.CompleteDebugData) {
	borderStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	titleStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)

	for y := 0; y < termHeight-1; y++ {
		m.screen.SetContent(dividerX, y, '│', nil, borderStyle)
	}

	registerEndY := registerHeight + 1
	for x := 0; x < dividerX; x++ {
		m.screen.SetContent(x, registerEndY, '─', nil, borderStyle)
	}
	m.screen.SetContent(dividerX, registerEndY, '┤', nil, borderStyle)

	logsTitleY := serialHeight + 1
	for x := dividerX + 1; x < termWidth; x++ {
		m.screen.SetContent(x, logsTitleY, '─', nil, borderStyle)
	}
	m.screen.SetContent(dividerX, logsTitleY, '├', nil, borderStyle)

	title := " CPU "
	if data != nil && data.Title != "" {
		title = fmt.Sprintf(" CPU: %s ", data.Title)
	}
	m.drawText(1, 0, dividerX-1, title, titleStyle)
	m.drawText(1, registerEndY, dividerX-1, " Disassembly ", titleStyle)
	m.drawText(dividerX+2, 0, termWidth-dividerX-2, " Serial ", titleStyle)

	levelStr := "INFO"
	switch m.logLevel {
	case slog.LevelDebug:
		levelStr = "DEBUG"
	case slog.LevelWarn:
		levelStr = "WARN"
	case slog.LevelError:
		levelStr = "ERROR"
	}
	m.drawText(dividerX+2, logsTitleY, termWidth-dividerX-2, fmt.Sprintf(" Logs [%s] (-/+ filter) ", levelStr), titleStyle)

	helpText := " SPACE=pause/resume N=step Q/ESC=quit | Logs: +/- filter "
	m.drawText(0, termHeight-1, termWidth, helpText, borderStyle)
}

func (m *Monitor) drawRegisters(startX, startY, width int, data *debug.CompleteDebugData) {
	cpu := data.CPU

	statusStr := strings.ToUpper(cpu.State.String())
	if m.paused {
		statusStr = "PAUSED"
	}
	last := cpu.Last
	if last == "" {
		last = "-"
	}

	lines := []string{
		fmt.Sprintf("Status: %s", statusStr),
		fmt.Sprintf("A: 0x%02X  F: 0x%02X  [%s]", cpu.A, cpu.F, flagString(cpu.F)),
		fmt.Sprintf("B: 0x%02X  C: 0x%02X", cpu.B, cpu.C),
		fmt.Sprintf("D: 0x%02X  E: 0x%02X", cpu.D, cpu.E),
		fmt.Sprintf("H: 0x%02X  L: 0x%02X", cpu.H, cpu.L),
		fmt.Sprintf("SP: 0x%04X  PC: 0x%04X", cpu.SP, cpu.PC),
		fmt.Sprintf("IME: %s  IE: 0x%02X  IF: 0x%02X",
			map[bool]string{true: "ON", false: "OFF"}[cpu.IME],
			data.InterruptEnable, data.InterruptFlags),
		fmt.Sprintf("DIV: 0x%02X TIMA: 0x%02X TMA: 0x%02X TAC: 0x%02X",
			data.Timer.DIV, data.Timer.TIMA, data.Timer.TMA, data.Timer.TAC),
		fmt.Sprintf("Last: %s", last),
		fmt.Sprintf("Instructions: %d", data.Instructions),
		fmt.Sprintf("Cycles: %d", cpu.Cycles),
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	for i, line := range lines {
		if i >= registerHeight {
			break
		}
		m.drawText(startX, startY+i, width, line, style)
	}
}

func flagString(f uint8) string {
	const names = "ZNHC"
	out := []byte("----")
	for i := range names {
		if f&(0x80>>i) != 0 {
			out[i] = names[i]
		}
	}
	return string(out)
}

func (m *Monitor) drawDisassembly(startX, startY, width int, data *debug.CompleteDebugData) {
	if data.Memory == nil {
		return
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorGreen)
	currentStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)

	lines := debug.CreateDisassemblyWithBuffer(data.Memory, data.CPU.PC, disasmHeight, m.disasm)
	for i, disasmLine := range lines {
		prefix := " "
		useStyle := style
		if disasmLine.IsCurrent {
			prefix = "→"
			useStyle = currentStyle
		}
		line := fmt.Sprintf("%s0x%04X: %s", prefix, disasmLine.Address, disasmLine.Instruction)
		m.drawText(startX, startY+i, width, line, useStyle)
	}
}

func (m *Monitor) drawSerial(startX, startY, width, height int, output string) {
	if width <= 0 || height <= 0 {
		return
	}

	lines := strings.Split(output, "\n")
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}

	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for i, line := range lines {
		m.drawText(startX, startY+i, width, line, style)
	}
}

func (m *Monitor) drawLogs(startX, startY, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}

	allLogs := m.logBuffer.GetRecent(height * 4)
	logs := make([]LogEntry, 0, height)
	for _, entry := range allLogs {
		if entry.Level >= m.logLevel {
			logs = append(logs, entry)
			if len(logs) >= height {
				break
			}
		}
	}

	debugStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	infoStyle := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	warnStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	errStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)

	for i, logEntry := range logs {
		style := infoStyle
		switch logEntry.Level {
		case slog.LevelDebug:
			style = debugStyle
		case slog.LevelWarn:
			style = warnStyle
		case slog.LevelError:
			style = errStyle
		}

		logText := FormatLogEntry(logEntry)
		if len(logText) > width && width > 3 {
			logText = logText[:width-3] + "..."
		}
		m.drawText(startX, startY+i, width, logText, style)
	}
}

// drawText writes text on row y, clipped to width cells.
func (m *Monitor) drawText(x, y, width int, text string, style tcell.Style) {
	i := 0
	for _, ch := range text {
		if i >= width {
			return
		}
		m.screen.SetContent(x+i, y, ch, nil, style)
		i++
	}
}

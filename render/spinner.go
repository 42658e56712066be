package render

import (
	"time"
)

// SpinnerStyle defines different spinner animation styles.
type SpinnerStyle int

const (
	// SpinnerBraille uses smooth braille dot animation
	SpinnerBraille SpinnerStyle = iota
	// SpinnerDots uses growing dots animation
	SpinnerDots
	// SpinnerASCII is the classic bar, safe for any terminal
	SpinnerASCII
)

// Spinner provides animated loading indicators.
type Spinner struct {
	style    SpinnerStyle
	frame    int
	lastTick time.Time
	interval time.Duration
}

// NewSpinner creates a new spinner with the given style.
func NewSpinner(style SpinnerStyle) *Spinner {
	return &Spinner{
		style:    style,
		lastTick: time.Now(),
		interval: 80 * time.Millisecond,
	}
}

// Tick advances the spinner animation if enough time has passed.
// Returns true if the frame changed.
func (s *Spinner) Tick() bool {
	now := time.Now()
	if now.Sub(s.lastTick) >= s.interval {
		s.frame++
		s.lastTick = now
		return true
	}
	return false
}

// Reset resets the spinner to its initial state.
func (s *Spinner) Reset() {
	s.frame = 0
	s.lastTick = time.Now()
}

// Frame returns the current animation frame string.
func (s *Spinner) Frame() string {
	frames := s.frames()
	return frames[s.frame%len(frames)]
}

// Width returns the display width of the spinner.
func (s *Spinner) Width() int {
	return StringWidth(s.Frame())
}

func (s *Spinner) frames() []string {
	switch s.style {
	case SpinnerBraille:
		return []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	case SpinnerDots:
		return []string{"   ", ".  ", ".. ", "...", " ..", "  .", "   "}
	default:
		return []string{"|", "/", "-", "\\"}
	}
}

// LoadingDisplay is a boxed spinner with a message, drawn over the page while
// a request is in flight.
type LoadingDisplay struct {
	spinner *Spinner
	message string
	box     BoxStyle
}

// NewLoadingDisplay creates a new loading display.
func NewLoadingDisplay(style SpinnerStyle, message string, box BoxStyle) *LoadingDisplay {
	return &LoadingDisplay{
		spinner: NewSpinner(style),
		message: message,
		box:     box,
	}
}

// Tick advances the animation.
func (ld *LoadingDisplay) Tick() bool {
	return ld.spinner.Tick()
}

// Draw renders the loading display in a centered box.
func (ld *LoadingDisplay) Draw(c *Canvas, title string, boxStyle, spinnerStyle Style) {
	width := c.Width()
	height := c.Height()

	spinnerFrame := ld.spinner.Frame()
	message := TruncateToWidth(ld.message, width-8)
	textWidth := StringWidth(spinnerFrame + " " + message)

	boxWidth := textWidth + 6
	if boxWidth < 30 {
		boxWidth = 30
	}
	if boxWidth > width {
		boxWidth = width
	}
	boxHeight := 5

	startX := (width - boxWidth) / 2
	startY := (height - boxHeight) / 2

	c.Fill(startX, startY, boxWidth, boxHeight, boxStyle)
	c.DrawBox(startX, startY, boxWidth, boxHeight, ld.box, boxStyle)

	if title != "" {
		titleWidth := StringWidth(title) + 2
		titleX := startX + (boxWidth-titleWidth)/2
		c.Set(titleX, startY, ' ', boxStyle)
		n := c.WriteString(titleX+1, startY, title, Style{Bold: true}.WithBackground(boxStyle))
		c.Set(titleX+1+n, startY, ' ', boxStyle)
	}

	contentX := startX + (boxWidth-textWidth)/2
	contentY := startY + 2

	n := c.WriteString(contentX, contentY, spinnerFrame, spinnerStyle)
	c.WriteString(contentX+n+1, contentY, message, boxStyle)
}

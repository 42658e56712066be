package page

import (
	"strings"

	"snoo/content"
	"snoo/term"
	"snoo/theme"
)

type itemWindow struct {
	win      *term.Window
	sub      *content.Submission
	inverted bool
}

// Draw renders the whole page and flushes it. Screens below the minimum
// size are left blank.
func (p *Subreddit) Draw() error {
	rows, cols := p.term.Size()
	p.term.Clear()
	if rows < minHeight || cols < minWidth {
		return p.term.Refresh()
	}

	p.drawHeader(cols)
	p.drawBanner(cols)
	p.drawContent(2, rows-3, cols)
	p.drawFooter(rows-1, cols)
	return p.term.Refresh()
}

func (p *Subreddit) drawHeader(cols int) {
	win := p.term.Window(0, 0, 1, cols)
	win.Fill(theme.TitleBar)
	win.AddLine(0, 0, p.Name().Header(), theme.TitleBar)
}

func (p *Subreddit) drawBanner(cols int) {
	win := p.term.Window(1, 0, 1, cols)
	win.Fill(theme.OrderBar)

	text := banner
	if p.searching() {
		text = searchBanner
	}
	items := strings.Split(text, " ")
	width := 0
	for _, item := range items {
		width += len(item)
	}
	spacing := max(1, (cols-width-1)/(len(items)-1))
	text = strings.Join(items, strings.Repeat(" ", spacing))
	win.AddLine(0, 0, text, theme.OrderBar)

	if sort, _ := p.Name().Sort(); sort != "" {
		if i := strings.Index(text, "]"+sort); i >= 0 {
			win.Restyle(0, i-2, 3, theme.OrderBarHighlight)
		}
	}
}

// drawContent lays out as many items as fit in the rows starting at top.
// When the navigator is inverted the items are stacked upwards from the
// bottom; a page that does not fill up is redrawn the right way up.
func (p *Subreddit) drawContent(top, height, cols int) {
	var items []itemWindow
	inverted := p.nav.Inverted
	step := p.nav.Step()

	row := 0
	if inverted {
		row = height - 1
	}
	available := height
	full := false

	err := p.content.Iterate(p.ctx, p.nav.PageIndex, step, cols-2, func(sub *content.Submission) bool {
		n := min(available, sub.Rows)
		start := row
		if inverted {
			start = row - n + 1
		}
		items = append(items, itemWindow{
			win:      p.term.Window(top+start, 0, n, cols),
			sub:      sub,
			inverted: inverted,
		})
		available -= n + 1
		row += step * (n + 1)
		if available <= 0 {
			full = true
			return false
		}
		return true
	})
	if err != nil {
		p.logger.Warn("drawing listing", "err", err)
	}

	if (!full || len(items) == 1) && p.nav.Inverted {
		p.nav.Flip(max(len(items)-1, 0))
		p.term.Window(top, 0, height, cols).Fill(theme.Normal)
		p.drawContent(top, height, cols)
		return
	}

	if p.nav.CursorIndex >= len(items) {
		p.nav.CursorIndex = max(len(items)-1, 0)
	}
	p.windows = len(items)

	for i, item := range items {
		if p.nav.AbsoluteIndex() >= 0 && i == p.nav.CursorIndex {
			item.win.Select()
		}
		p.renderer.Draw(item.win, item.sub, item.inverted)
	}
}

func (p *Subreddit) drawFooter(row, cols int) {
	win := p.term.Window(row, 0, 1, cols)
	win.Fill(theme.HelpBar)
	win.AddLine(0, 0, footer, theme.HelpBar)
	if p.matcher.IsPending() {
		pending := p.matcher.Pending()
		win.AddLine(0, cols-1-len(pending), pending, theme.HelpBar)
	}
}

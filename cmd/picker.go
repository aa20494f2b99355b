package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const pickerPageSize = 20

var errPickerCancelled = errors.New("selection cancelled")

type key int

const (
	keyNone key = iota
	keyUp
	keyDown
	keyLeft
	keyRight
	keyEnter
	keySpace
	keyQuit
)

// readKey decodes one keypress from a raw-mode terminal. Windows consoles
// prefix arrows with 0 or 224; ANSI terminals send ESC [ A-D.
func readKey(r *bufio.Reader) (key, error) {
	b1, err := r.ReadByte()
	if err != nil {
		return keyNone, err
	}
	if b1 == 0 || b1 == 224 {
		b2, err := r.ReadByte()
		if err != nil {
			return keyNone, err
		}
		switch b2 {
		case 72:
			return keyUp, nil
		case 80:
			return keyDown, nil
		case 75:
			return keyLeft, nil
		case 77:
			return keyRight, nil
		}
		return keyNone, nil
	}

	switch b1 {
	case 27:
		if r.Buffered() == 0 {
			return keyQuit, nil
		}
		if b2, _ := r.ReadByte(); b2 != '[' || r.Buffered() == 0 {
			return keyNone, nil
		}
		b3, _ := r.ReadByte()
		switch b3 {
		case 'A':
			return keyUp, nil
		case 'B':
			return keyDown, nil
		case 'C':
			return keyRight, nil
		case 'D':
			return keyLeft, nil
		}
	case '\r', '\n':
		return keyEnter, nil
	case ' ':
		return keySpace, nil
	case 3, 'q':
		return keyQuit, nil
	}
	return keyNone, nil
}

// picker is a paginated list selection. ↑/↓ move within a page, ←/→ change
// page. In multi mode Space toggles the highlighted option and Enter confirms;
// in single mode Enter picks the highlighted option.
type picker struct {
	title    string
	options  []string
	multi    bool
	pageSize int

	page     int
	selected int
	chosen   map[int]bool
}

func newPicker(title string, options []string, multi bool) *picker {
	return &picker{
		title:    title,
		options:  options,
		multi:    multi,
		pageSize: pickerPageSize,
		chosen:   make(map[int]bool),
	}
}

func (p *picker) pages() int {
	return (len(p.options) + p.pageSize - 1) / p.pageSize
}

func (p *picker) pageLen() int {
	start := p.page * p.pageSize
	if start+p.pageSize > len(p.options) {
		return len(p.options) - start
	}
	return p.pageSize
}

func (p *picker) current() int {
	return p.page*p.pageSize + p.selected
}

// handle applies a key and reports whether the picker has finished.
func (p *picker) handle(k key) (done bool, err error) {
	switch k {
	case keyUp:
		if p.selected > 0 {
			p.selected--
		}
	case keyDown:
		if p.selected < p.pageLen()-1 {
			p.selected++
		}
	case keyLeft:
		if p.page > 0 {
			p.page--
			p.selected = 0
		}
	case keyRight:
		if p.page < p.pages()-1 {
			p.page++
			p.selected = 0
		}
	case keySpace:
		if p.multi {
			i := p.current()
			p.chosen[i] = !p.chosen[i]
		}
	case keyEnter:
		if !p.multi {
			p.chosen = map[int]bool{p.current(): true}
			return true, nil
		}
		if len(p.selection()) == 0 {
			// Enter with nothing toggled takes the highlighted option.
			p.chosen[p.current()] = true
		}
		return true, nil
	case keyQuit:
		return true, errPickerCancelled
	}
	return false, nil
}

// selection returns the chosen options in list order.
func (p *picker) selection() []string {
	var out []string
	for i, opt := range p.options {
		if p.chosen[i] {
			out = append(out, opt)
		}
	}
	return out
}

func (p *picker) render(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
	fmt.Fprintf(w, "%s\r\n", p.title)
	start := p.page * p.pageSize
	for i := start; i < start+p.pageLen(); i++ {
		prefix := "  "
		if i-start == p.selected {
			prefix = "> "
		}
		mark := ""
		if p.multi {
			mark = "[ ] "
			if p.chosen[i] {
				mark = "[x] "
			}
		}
		fmt.Fprintf(w, "%s%s%s\r\n", prefix, mark, p.options[i])
	}
	help := "↑/↓ navigate, ←/→ page, Enter select, Esc cancel"
	if p.multi {
		help = "↑/↓ navigate, ←/→ page, Space toggle, Enter confirm, Esc cancel"
	}
	fmt.Fprintf(w, "(%s)  Page %d/%d\r\n", help, p.page+1, p.pages())
}

// run drives the picker from a raw-mode terminal until a selection is made.
func (p *picker) run(in *os.File, out io.Writer) ([]string, error) {
	if len(p.options) == 0 {
		return nil, fmt.Errorf("nothing to choose for %q", strings.ToLower(p.title))
	}
	enableVirtualTerminal()

	fd := int(in.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	reader := bufio.NewReader(in)
	p.render(out)
	for {
		k, err := readKey(reader)
		if err != nil {
			return nil, err
		}
		done, err := p.handle(k)
		if err != nil {
			fmt.Fprint(out, "\r\n")
			return nil, err
		}
		if done {
			fmt.Fprint(out, "\r\n")
			return p.selection(), nil
		}
		p.render(out)
	}
}

// pickOne asks for a single option on the terminal.
func pickOne(title string, options []string) (string, error) {
	got, err := newPicker(title, options, false).run(os.Stdin, os.Stdout)
	if err != nil {
		return "", err
	}
	return got[0], nil
}

// pickMany asks for one or more options on the terminal.
func pickMany(title string, options []string) ([]string, error) {
	return newPicker(title, options, true).run(os.Stdin, os.Stdout)
}

package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"gridcalc/spreadsheet"
)

const prompt = "sheet> "

type scannerResult struct {
	line string
	ok   bool
}

// Session bundles one prompt loop's collaborator state against a shared
// Sheet. Multiple Sessions (one per TCP connection, say) may run
// concurrently against the same Sheet; the Sheet's own lock is what makes
// that safe.
type Session struct {
	sheet    *spreadsheet.Sheet
	viewport *Viewport
	history  *History
}

// NewSession builds a console session over sheet with a fresh viewport and
// undo/redo history.
func NewSession(sheet *spreadsheet.Sheet) *Session {
	return &Session{
		sheet:    sheet,
		viewport: NewViewport(sheet.Rows(), sheet.Cols()),
		history:  NewHistory(),
	}
}

// Start runs the prompt loop from spec §4.8 against in/out: command
// dispatch on q/disable_output/enable_output/w a s d/scroll_to/u/r/export,
// falling through to the core for any other line containing "=". Every
// command prints a "[<elapsed>] (ok|err)" status line, matching the timing
// display the core itself never produces.
func (s *Session) Start(in io.Reader, out io.Writer) {
	var (
		scanCh chan scannerResult
		tty    *ttyInput
	)
	if ti, ok := newTTYInput(in, out); ok {
		tty = ti
		defer tty.Close()
	} else {
		scanner := bufio.NewScanner(in)
		scanCh = make(chan scannerResult)
		go scanInput(scanner, scanCh)
	}

	sessionOut := out
	if tty != nil {
		sessionOut = newTTYLineWriter(out)
	}

	fmt.Fprintf(sessionOut, "gridcalc console (%dx%d)\n", s.sheet.Rows(), s.sheet.Cols())
	fmt.Fprintf(sessionOut, "commands: q, w/a/s/d, scroll_to <cell>, disable_output, enable_output, u, r, export <path>, DST=EXPR\n\n")

	if !s.viewport.OutputHidden() {
		fmt.Fprint(sessionOut, RenderASCII(s.sheet, s.viewport))
	}

	for {
		var (
			line string
			ok   bool
		)
		if tty != nil {
			line, ok = tty.readLine(prompt)
		} else {
			fmt.Fprint(out, prompt)
			line, ok = waitForInput(scanCh)
		}
		if !ok {
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		start := time.Now()
		quit, err := s.dispatch(line, sessionOut)
		elapsed := time.Since(start)

		status := "ok"
		if err != nil {
			status = "err: " + err.Error()
		}
		fmt.Fprintf(sessionOut, "[%s] (%s)\n", elapsed.Round(time.Millisecond), status)

		if quit {
			return
		}
		if !s.viewport.OutputHidden() {
			fmt.Fprint(sessionOut, RenderASCII(s.sheet, s.viewport))
		}
	}
}

// dispatch runs one command line, per the surface in spec §6.1.
func (s *Session) dispatch(line string, out io.Writer) (quit bool, err error) {
	switch {
	case line == "q":
		return true, nil
	case line == "disable_output":
		s.viewport.SetOutputHidden(true)
		return false, nil
	case line == "enable_output":
		s.viewport.SetOutputHidden(false)
		return false, nil
	case line == "w":
		s.viewport.Pan(-10, 0)
		return false, nil
	case line == "s":
		s.viewport.Pan(10, 0)
		return false, nil
	case line == "a":
		s.viewport.Pan(0, -10)
		return false, nil
	case line == "d":
		s.viewport.Pan(0, 10)
		return false, nil
	case strings.HasPrefix(line, "scroll_to "):
		return false, s.scrollTo(strings.TrimSpace(line[len("scroll_to "):]))
	case line == "u":
		_, err := s.history.Undo(s.sheet)
		return false, err
	case line == "r":
		_, err := s.history.Redo(s.sheet)
		return false, err
	case strings.HasPrefix(line, "export "):
		return false, ExportCSV(s.sheet, strings.TrimSpace(line[len("export "):]))
	case strings.Contains(line, "="):
		return false, s.submit(line)
	default:
		return false, fmt.Errorf("unrecognized command: %s", line)
	}
}

func (s *Session) submit(line string) error {
	dst := strings.TrimSpace(line[:strings.IndexByte(line, '=')])
	if err := s.sheet.Submit(line); err != nil {
		return err
	}
	s.history.RecordEdit(dst, line)
	return nil
}

func (s *Session) scrollTo(cellText string) error {
	row, col, ok := spreadsheet.ParseCellText(cellText)
	if !ok {
		return fmt.Errorf("not a cell: %s", cellText)
	}
	s.viewport.ScrollTo(row, col)
	return nil
}

func scanInput(scanner *bufio.Scanner, out chan<- scannerResult) {
	defer close(out)
	for scanner.Scan() {
		out <- scannerResult{line: scanner.Text(), ok: true}
	}
}

func waitForInput(scanCh <-chan scannerResult) (string, bool) {
	res, ok := <-scanCh
	if !ok {
		return "", false
	}
	return res.line, res.ok
}

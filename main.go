package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gridcalc/console"
	"gridcalc/events"
	"gridcalc/spreadsheet"
)

const (
	minRows = 1
	maxRows = 1000
	minCols = 1
	maxCols = 18278
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	sub := os.Args[1]
	switch sub {
	case "-h", "--help", "help":
		usage()
		return
	case "serve":
		os.Exit(serveCommand(os.Args[2:]))
	case "console-server":
		os.Exit(consoleServerCommand(os.Args[2:]))
	case "console-client":
		os.Exit(consoleClientCommand(os.Args[2:]))
	case "events":
		os.Exit(eventsCommand(os.Args[2:]))
	default:
		os.Exit(runCommand(os.Args[1:]))
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage:\n")
	fmt.Fprintf(os.Stderr, "  gridcalc <rows> <cols>                      run the terminal console against a new sheet\n")
	fmt.Fprintf(os.Stderr, "  gridcalc serve <rows> <cols> [addr]         start the websocket server (default :8080)\n")
	fmt.Fprintf(os.Stderr, "  gridcalc console-server <rows> <cols> <addr>  start a remote TCP console server\n")
	fmt.Fprintf(os.Stderr, "  gridcalc console-client <addr>              connect to a remote TCP console server\n")
	fmt.Fprintf(os.Stderr, "  gridcalc events <rows> <cols> <zmq-addr>    run the terminal console, publishing edits over ZeroMQ\n")
	fmt.Fprintf(os.Stderr, "  gridcalc help                               show this help message\n")
}

// runCommand is the bare core invocation: prog <rows> <cols>, starting the
// terminal console loop against a fresh sheet, per spec §6.4.
func runCommand(args []string) int {
	rows, cols, err := parseDimensions(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		usage()
		return 2
	}

	sheet := spreadsheet.NewSheet(rows, cols)
	session := console.NewSession(sheet)
	session.Start(os.Stdin, os.Stdout)
	return 0
}

func serveCommand(args []string) int {
	if len(args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: gridcalc serve <rows> <cols> [addr]\n")
		return 2
	}
	rows, cols, err := parseDimensions(args[:2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		return 2
	}

	addr := normalizeAddr(":8080", args[2:])

	sheet := spreadsheet.NewSheet(rows, cols)
	srv := spreadsheet.NewServer(sheet)
	if err := srv.Start(addr); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		return 1
	}
	return 0
}

func consoleServerCommand(args []string) int {
	if len(args) != 3 {
		fmt.Fprintf(os.Stderr, "Usage: gridcalc console-server <rows> <cols> <addr>\n")
		return 2
	}
	rows, cols, err := parseDimensions(args[:2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		return 2
	}

	sheet := spreadsheet.NewSheet(rows, cols)
	if err := console.Server(args[2], sheet); err != nil {
		fmt.Fprintf(os.Stderr, "console server error: %v\n", err)
		return 1
	}
	return 0
}

func consoleClientCommand(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: gridcalc console-client <addr>\n")
		return 2
	}
	if err := console.Client(args[0]); err != nil {
		fmt.Fprintf(os.Stderr, "console client error: %v\n", err)
		return 1
	}
	return 0
}

// eventsCommand runs the same terminal console loop as runCommand, but
// additionally opens a ZeroMQ PUB socket and publishes every committed edit
// (and everything it recalculates) as a CellChanged event, per spec §6.4/§9.2.
func eventsCommand(args []string) int {
	if len(args) != 3 {
		fmt.Fprintf(os.Stderr, "Usage: gridcalc events <rows> <cols> <zmq-addr>\n")
		return 2
	}
	rows, cols, err := parseDimensions(args[:2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		return 2
	}

	publisher, err := events.Listen(args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "events error: %v\n", err)
		return 1
	}
	defer publisher.Close()

	sheet := spreadsheet.NewSheet(rows, cols)
	sheet.OnCommit(func(affected []int) {
		for _, idx := range affected {
			row, col := idx/cols, idx%cols
			publisher.Publish(sheet.Name(row, col), sheet.ValueAt(row, col))
		}
	})

	session := console.NewSession(sheet)
	session.Start(os.Stdin, os.Stdout)
	return 0
}

func parseDimensions(args []string) (rows, cols int, err error) {
	if len(args) < 2 {
		return 0, 0, fmt.Errorf("expected <rows> <cols>")
	}
	rows, err = strconv.Atoi(args[0])
	if err != nil || rows < minRows || rows > maxRows {
		return 0, 0, fmt.Errorf("rows must be an integer in [%d, %d], got %q", minRows, maxRows, args[0])
	}
	cols, err = strconv.Atoi(args[1])
	if err != nil || cols < minCols || cols > maxCols {
		return 0, 0, fmt.Errorf("cols must be an integer in [%d, %d], got %q", minCols, maxCols, args[1])
	}
	return rows, cols, nil
}

// normalizeAddr mirrors the teacher's address-normalization habit in its
// spreadsheet/playground CLI glue: a bare port gets a leading colon, and
// "localhost" is stripped to avoid IPv4/IPv6 bind mismatches.
func normalizeAddr(def string, rest []string) string {
	if len(rest) == 0 {
		return def
	}
	addr := rest[0]
	addr = strings.Replace(addr, "localhost", "", 1)
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}
	return addr
}

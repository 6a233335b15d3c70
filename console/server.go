package console

import (
	"errors"
	"fmt"
	"io"
	"net"
	"os"

	"golang.org/x/term"

	"gridcalc/spreadsheet"
)

// Server starts a remote console listener on addr (e.g. "localhost:9000"),
// attaching each accepted connection to its own Session against the shared
// sheet, per spec §4.8.
func Server(addr string, sheet *spreadsheet.Sheet) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("console: failed to listen on %s: %w", addr, err)
	}
	defer listener.Close()

	fmt.Printf("gridcalc console server listening on %s\n", addr)

	for {
		conn, err := listener.Accept()
		if err != nil {
			fmt.Fprintf(os.Stderr, "console: accept failed: %v\n", err)
			continue
		}
		go handleConnection(conn, sheet)
	}
}

func handleConnection(conn net.Conn, sheet *spreadsheet.Sheet) {
	defer conn.Close()
	fmt.Printf("console: connection from %s\n", conn.RemoteAddr())

	session := NewSession(sheet)
	session.Start(conn, conn)

	fmt.Printf("console: connection closed from %s\n", conn.RemoteAddr())
}

// Client connects to a remote console server and pipes the local terminal
// (put into raw mode when possible) to and from the connection.
func Client(addr string) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("console: failed to connect to %s: %w", addr, err)
	}
	defer conn.Close()

	fmt.Printf("connected to %s (Ctrl+C to disconnect)\n", addr)

	restore, rawEnabled := enableClientRawMode(os.Stdin, os.Stdout)
	if rawEnabled {
		defer restore()
	}

	serverOut := io.Writer(os.Stdout)
	if rawEnabled {
		serverOut = newTTYLineWriter(os.Stdout)
	}

	done := make(chan error, 2)
	go func() {
		_, copyErr := io.Copy(serverOut, conn)
		done <- copyErr
	}()
	go func() {
		_, copyErr := io.Copy(conn, os.Stdin)
		done <- copyErr
	}()

	if copyErr := <-done; copyErr != nil && !errors.Is(copyErr, io.EOF) && !errors.Is(copyErr, net.ErrClosed) {
		return fmt.Errorf("console: stream copy failed: %w", copyErr)
	}
	return nil
}

func enableClientRawMode(stdin, stdout *os.File) (func() error, bool) {
	if stdin == nil || stdout == nil {
		return nil, false
	}
	if !term.IsTerminal(int(stdin.Fd())) || !term.IsTerminal(int(stdout.Fd())) {
		return nil, false
	}
	state, err := term.MakeRaw(int(stdin.Fd()))
	if err != nil {
		return nil, false
	}
	return func() error {
		return term.Restore(int(stdin.Fd()), state)
	}, true
}

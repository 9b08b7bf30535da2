package control

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ReadLines feeds r into rx, one "address value" pair per line, until EOF.
// Blank lines and lines starting with # are ignored; malformed lines are
// reported through onErr and skipped.
func ReadLines(r io.Reader, rx *Receiver, onErr func(error)) error {
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if err := sendLine(rx, text); err != nil && onErr != nil {
			onErr(fmt.Errorf("control: line %d: %w", line, err))
		}
	}
	return sc.Err()
}

func sendLine(rx *Receiver, text string) error {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return fmt.Errorf("want \"address value\", got %q", text)
	}
	v, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return err
	}
	return rx.Send(fields[0], v)
}

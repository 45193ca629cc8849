package journal

import (
	"bufio"
	"io"

	schema "github.com/mutablelogic/go-cdp/pkg/schema"
)

////////////////////////////////////////////////////////////////////////////////
// STREAMING LINE PARSER
//
// A record is framed by its own field structure, not by '\n' alone: a
// newline only ends a record once at least JournalMinCommas commas have been
// seen outside a quoted region. This lets base64 path fields span arbitrary
// read boundaries without corrupting the framing, and is invariant to the
// size of the underlying reads because bufio.Reader does its own internal
// buffering regardless of how this scanner consumes it one byte at a time.

// lineScanner reads framed journal records from the underlying reader.
type lineScanner struct {
	br *bufio.Reader
}

func newLineScanner(r io.Reader) *lineScanner {
	return &lineScanner{br: bufio.NewReaderSize(r, 4096)}
}

// next returns the next complete record line (without its trailing
// newline). It returns io.EOF once the stream is exhausted, and any other
// read error as it comes from the underlying reader; any trailing
// bytes that never reach a valid frame end (a truncated final record) are
// discarded rather than returned, matching the append-only journal's
// guarantee that every committed record is newline-terminated.
func (s *lineScanner) next() (string, error) {
	var line []byte
	inString := false
	commas := 0

	for {
		b, err := s.br.ReadByte()
		if err != nil {
			return "", err
		}

		if b == '"' {
			inString = !inString
		} else if b == ',' && !inString {
			commas++
		}

		if b == '\n' && !inString && commas >= schema.JournalMinCommas {
			return string(line), nil
		}
		line = append(line, b)
	}
}

package journal

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkedReader feeds the underlying bytes back n at a time, to exercise the
// scanner against arbitrary read boundaries regardless of bufio's own
// internal buffer size.
type chunkedReader struct {
	data []byte
	n    int
}

func (c *chunkedReader) Read(p []byte) (int, error) {
	if len(c.data) == 0 {
		return 0, io.EOF
	}
	n := c.n
	if n > len(p) {
		n = len(p)
	}
	if n > len(c.data) {
		n = len(c.data)
	}
	copy(p, c.data[:n])
	c.data = c.data[n:]
	return n, nil
}

func buildJournalText(t *testing.T, count int) (string, []string) {
	t.Helper()
	var b strings.Builder
	var lines []string
	for i := 0; i < count; i++ {
		record := sampleRecord()
		record.Inode = uint64(i)
		line := encodeLine(record)
		b.WriteString(line)
		lines = append(lines, strings.TrimSuffix(line, "\n"))
	}
	return b.String(), lines
}

func TestLineScannerSplitInvariance(t *testing.T) {
	text, want := buildJournalText(t, 50)

	for _, chunkSize := range []int{1, 2, 3, 7, 64, 4096} {
		scanner := newLineScanner(&chunkedReader{data: []byte(text), n: chunkSize})
		var got []string
		for {
			line, err := scanner.next()
			if err == io.EOF {
				break
			}
			require.NoError(t, err)
			got = append(got, line)
		}
		assert.Equalf(t, want, got, "chunk size %d", chunkSize)
	}
}

func TestLineScannerIgnoresCommaInsideQuotedField(t *testing.T) {
	raw := `1,2,3,4,5,6,7,"ro,ot","root",0,0,"bmFtZQ==",""` + "\n"
	scanner := newLineScanner(strings.NewReader(raw))

	line, err := scanner.next()
	require.NoError(t, err)
	assert.Equal(t, strings.TrimSuffix(raw, "\n"), line)

	_, err = scanner.next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineScannerDiscardsTruncatedTrailingRecord(t *testing.T) {
	text, want := buildJournalText(t, 3)
	text += `1,2,3,4,5,6,7,"root","root",0,0,"partial`

	scanner := newLineScanner(strings.NewReader(text))
	var got []string
	for {
		line, err := scanner.next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		got = append(got, line)
	}
	assert.Equal(t, want, got)
}

package console

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
)

// Console reads answers from a reader, prints to a writer and keeps a
// transcript of every line exchanged in either direction.
type Console struct {
	scanner    *bufio.Scanner
	out        io.Writer
	logger     logrus.FieldLogger
	transcript []string
}

// New builds a console over the given streams.
func New(in io.Reader, out io.Writer, logger logrus.FieldLogger) *Console {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Console{
		scanner: scanner,
		out:     out,
		logger:  logger,
	}
}

// ReadLine returns the next input line without its line terminator. Bytes
// that are not valid UTF-8 are replaced with U+FFFD.
func (c *Console) ReadLine() (string, bool) {
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			c.logger.WithError(err).Warn("read input")
		}
		return "", false
	}
	line := strings.ToValidUTF8(strings.TrimRight(c.scanner.Text(), "\r"), "\uFFFD")
	c.transcript = append(c.transcript, line)
	return line, true
}

// WriteLine prints one line.
func (c *Console) WriteLine(line string) {
	c.transcript = append(c.transcript, line)
	if _, err := fmt.Fprintln(c.out, line); err != nil {
		c.logger.WithError(err).Warn("write output")
	}
}

// SaveTranscript writes the transcript to w, one line per entry.
func (c *Console) SaveTranscript(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, line := range c.transcript {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

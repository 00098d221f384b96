package helpers

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// prefixWriter writes each line of output prefixed with the host name.
type prefixWriter struct {
	mu     sync.Mutex
	out    io.Writer
	prefix string
	buf    bytes.Buffer
}

func newPrefixWriter(out io.Writer, prefix string) *prefixWriter {
	return &prefixWriter{out: out, prefix: prefix}
}

func (w *prefixWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	for {
		i := bytes.IndexByte(w.buf.Bytes(), '\n')
		if i < 0 {
			break
		}
		line := w.buf.Next(i + 1)
		if _, err := fmt.Fprintf(w.out, "     %s %s", w.prefix, line); err != nil {
			return 0, err
		}
	}

	return len(p), nil
}

// Flush writes the last incomplete line, if any.
func (w *prefixWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.buf.Len() > 0 {
		fmt.Fprintf(w.out, "     %s %s\n", w.prefix, w.buf.String())
		w.buf.Reset()
	}
}

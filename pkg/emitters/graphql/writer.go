package graphql

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

// sdlWriter accumulates schema definition language output.
type sdlWriter struct {
	buf    bytes.Buffer
	writer *bufio.Writer
}

func newSDLWriter() *sdlWriter {
	w := &sdlWriter{}
	w.writer = bufio.NewWriter(&w.buf)
	return w
}

func (w *sdlWriter) emitf(format string, args ...any) {
	fmt.Fprintf(w.writer, format, args...)
}

func (w *sdlWriter) String() string {
	w.writer.Flush()
	return w.buf.String()
}

// sdlEscaper rewrites the characters significant inside SDL string literals.
var sdlEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
)

// escapeSDL makes raw text safe inside a double-quoted SDL string.
func escapeSDL(raw string) string {
	return sdlEscaper.Replace(raw)
}

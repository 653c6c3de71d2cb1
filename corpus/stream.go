package corpus

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/hupe1980/relterm/blobstore"
	"github.com/hupe1980/relterm/compress"
	"github.com/hupe1980/relterm/internal/resource"
)

// readBufferSize is the read-ahead buffer of a stream.
const readBufferSize = 1 << 20

// ctxCheckInterval is how many lines are read between context checks.
const ctxCheckInterval = 1024

// Tokenize splits a line on runs of whitespace. Leading and trailing
// whitespace yields no empty tokens.
func Tokenize(line string) []string {
	return strings.Fields(line)
}

// Stream iterates the tokenized lines of one source.
type Stream struct {
	src    Source
	format compress.Format
	rc     *resource.Controller
}

// StreamOption configures a Stream.
type StreamOption func(*Stream)

// WithController throttles reads through the controller's IO limit.
func WithController(rc *resource.Controller) StreamOption {
	return func(s *Stream) {
		s.rc = rc
	}
}

// WithFormat overrides the compression format implied by the source name.
func WithFormat(f compress.Format) StreamOption {
	return func(s *Stream) {
		s.format = f
	}
}

// NewStream creates a stream over src.
func NewStream(src Source, opts ...StreamOption) *Stream {
	s := &Stream{
		src:    src,
		format: compress.FormatOf(src.Name()),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Streams creates one stream per blob name.
func Streams(store blobstore.Store, names []string, opts ...StreamOption) []*Stream {
	streams := make([]*Stream, len(names))
	for i, name := range names {
		streams[i] = NewStream(BlobSource{Store: store, Key: name}, opts...)
	}
	return streams
}

// Name returns the source name.
func (s *Stream) Name() string {
	return s.src.Name()
}

// Each calls fn with the tokens of every line in order and returns the
// number of lines read. An error from fn stops the iteration and is
// returned unchanged; read failures are returned as *SourceError.
func (s *Stream) Each(ctx context.Context, fn func(tokens []string) error) (int, error) {
	lines := 0
	err := s.lines(ctx, func(line string) error {
		lines++
		return fn(Tokenize(line))
	})
	return lines, err
}

// CountLines returns the number of lines of the source.
func (s *Stream) CountLines(ctx context.Context) (int, error) {
	lines := 0
	err := s.lines(ctx, func(string) error {
		lines++
		return nil
	})
	return lines, err
}

func (s *Stream) lines(ctx context.Context, fn func(line string) error) error {
	raw, err := s.src.Open(ctx)
	if err != nil {
		return &SourceError{Source: s.src.Name(), Err: err}
	}
	defer func() { _ = raw.Close() }()

	var r io.Reader = raw
	if s.rc != nil {
		r = resource.NewRateLimitedReader(ctx, r, s.rc)
	}

	dec, err := compress.NewReader(r, s.format)
	if err != nil {
		return &SourceError{Source: s.src.Name(), Err: err}
	}
	defer func() { _ = dec.Close() }()

	br := bufio.NewReaderSize(dec, readBufferSize)
	n := 0
	for {
		line, rerr := br.ReadString('\n')
		if rerr != nil && !errors.Is(rerr, io.EOF) {
			return &SourceError{Source: s.src.Name(), Line: n + 1, Err: rerr}
		}
		if line == "" && rerr != nil {
			return nil
		}

		n++
		if n%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if err := fn(strings.TrimRight(line, "\r\n")); err != nil {
			return err
		}
		if rerr != nil {
			return nil
		}
	}
}

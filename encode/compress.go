package encode

import (
	"bufio"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression selects the framing around a binary tag document.
type Compression int

const (
	NoCompression Compression = iota
	Gzip
	Zstd
)

func (c Compression) String() string {
	switch c {
	case NoCompression:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	}
	return "<unknown compression>"
}

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// wrapWriter returns the writer to encode into plus a finish func that
// flushes and closes any compression framing.
func (cfg *encConfig) wrapWriter(w io.Writer) (io.Writer, func() error, error) {
	switch cfg.compression {
	case NoCompression:
		return w, func() error { return nil }, nil
	case Gzip:
		zw := gzip.NewWriter(w)
		return zw, zw.Close, nil
	case Zstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, nil, err
		}
		return zw, zw.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown compression %d", cfg.compression)
}

// unwrapReader sniffs compression framing and returns a reader over the
// raw document.
func unwrapReader(br *bufio.Reader) (*bufio.Reader, error) {
	head, err := br.Peek(4)
	if err != nil && len(head) < 2 {
		return br, nil // too short to be compressed; let Decode report
	}
	if len(head) >= 2 && head[0] == gzipMagic[0] && head[1] == gzipMagic[1] {
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("%w: bad gzip framing: %v", ErrCorrupt, err)
		}
		return bufio.NewReader(zr), nil
	}
	if len(head) >= 4 &&
		head[0] == zstdMagic[0] && head[1] == zstdMagic[1] &&
		head[2] == zstdMagic[2] && head[3] == zstdMagic[3] {
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("%w: bad zstd framing: %v", ErrCorrupt, err)
		}
		return bufio.NewReader(zr.IOReadCloser()), nil
	}
	return br, nil
}

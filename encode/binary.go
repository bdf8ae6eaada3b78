package encode

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/JaggerJo/Prowl/tag"
)

// Binary document layout, all multi-byte integers big-endian:
//
//	magic   "PTAG"
//	version byte (currently 1)
//	tag     type byte, then the payload
//
// Payloads:
//
//	Null                nothing
//	Byte                1 byte
//	Short/Int/Long      2/4/8 bytes
//	Float/Double        IEEE 754, 4/8 bytes
//	String/ByteArray    uvarint length + bytes
//	List                element type byte, uvarint count, payloads
//	                    (elements carry no per-element type byte)
//	Compound            uvarint count, per entry: uvarint key length,
//	                    key bytes, element type byte, payload

const (
	magic   = "PTAG"
	version = 1
)

var (
	ErrBadMagic   = errors.New("not a tag document")
	ErrBadVersion = errors.New("unsupported tag document version")
	ErrCorrupt    = errors.New("corrupt tag document")
)

// maxLen caps decoded string/array/collection lengths so a corrupt
// length prefix cannot drive allocation.
const maxLen = 1 << 30

// maxDocNodes bounds the total number of list elements and compound
// entries one document may declare. Counts cost almost no input bytes,
// so without a cumulative budget a few bytes of corrupt input could
// demand gigabytes of decoded nodes.
const maxDocNodes = 1 << 24

// decoder carries the input and the remaining node budget for one
// document.
type decoder struct {
	r      *bufio.Reader
	budget int
}

func (d *decoder) charge(n int) error {
	if n > d.budget {
		return fmt.Errorf("%w: document declares more than %d nodes", ErrCorrupt, maxDocNodes)
	}
	d.budget -= n
	return nil
}

// Encode writes t as a binary tag document.
func Encode(t tag.Tag, w io.Writer, opts ...EncodeOption) error {
	cfg := newEncConfig(opts)
	cw, finish, err := cfg.wrapWriter(w)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(cw)
	if _, err := bw.WriteString(magic); err != nil {
		return err
	}
	if err := bw.WriteByte(version); err != nil {
		return err
	}
	if err := writeTagged(bw, t); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return finish()
}

// Decode reads one binary tag document, transparently decompressing
// gzip or zstd framing.
func Decode(r io.Reader) (tag.Tag, error) {
	br, err := unwrapReader(bufio.NewReader(r))
	if err != nil {
		return nil, err
	}
	head := make([]byte, len(magic)+1)
	if _, err := io.ReadFull(br, head); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadMagic, err)
	}
	if string(head[:len(magic)]) != magic {
		return nil, ErrBadMagic
	}
	if head[len(magic)] != version {
		return nil, fmt.Errorf("%w: %d", ErrBadVersion, head[len(magic)])
	}
	d := &decoder{r: br, budget: maxDocNodes}
	return d.readTagged()
}

func writeTagged(w *bufio.Writer, t tag.Tag) error {
	if t == nil {
		t = tag.NewNull()
	}
	if err := w.WriteByte(byte(t.TagType())); err != nil {
		return err
	}
	return writePayload(w, t)
}

func writePayload(w *bufio.Writer, t tag.Tag) error {
	switch x := t.(type) {
	case *tag.Null:
		return nil
	case *tag.Byte:
		return w.WriteByte(x.Value)
	case *tag.Short:
		return writeBE(w, uint16(x.Value))
	case *tag.Int:
		return writeBE(w, uint32(x.Value))
	case *tag.Long:
		return writeBE(w, uint64(x.Value))
	case *tag.Float:
		return writeBE(w, math.Float32bits(x.Value))
	case *tag.Double:
		return writeBE(w, math.Float64bits(x.Value))
	case *tag.String:
		return writeBytes(w, []byte(x.Value))
	case *tag.ByteArray:
		return writeBytes(w, x.Value)
	case *tag.List:
		if err := w.WriteByte(byte(x.ListType())); err != nil {
			return err
		}
		if err := writeUvarint(w, uint64(x.Len())); err != nil {
			return err
		}
		for i := 0; i < x.Len(); i++ {
			e, err := x.At(i)
			if err != nil {
				return err
			}
			if err := writePayload(w, e); err != nil {
				return err
			}
		}
		return nil
	case *tag.Compound:
		if err := writeUvarint(w, uint64(x.Len())); err != nil {
			return err
		}
		for i := 0; i < x.Len(); i++ {
			key, v := x.Entry(i)
			if err := writeBytes(w, []byte(key)); err != nil {
				return err
			}
			if err := writeTagged(w, v); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("cannot encode tag %T", t)
}

func (d *decoder) readTagged() (tag.Tag, error) {
	tb, err := d.r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return d.readPayload(tag.Type(tb))
}

func (d *decoder) readPayload(ty tag.Type) (tag.Tag, error) {
	r := d.r
	switch ty {
	case tag.NullType:
		return tag.NewNull(), nil
	case tag.ByteType:
		b, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
		return tag.FromByte(b), nil
	case tag.ShortType:
		var v uint16
		if err := readBE(r, &v); err != nil {
			return nil, err
		}
		return tag.FromShort(int16(v)), nil
	case tag.IntType:
		var v uint32
		if err := readBE(r, &v); err != nil {
			return nil, err
		}
		return tag.FromInt(int32(v)), nil
	case tag.LongType:
		var v uint64
		if err := readBE(r, &v); err != nil {
			return nil, err
		}
		return tag.FromLong(int64(v)), nil
	case tag.FloatType:
		var v uint32
		if err := readBE(r, &v); err != nil {
			return nil, err
		}
		return tag.FromFloat(math.Float32frombits(v)), nil
	case tag.DoubleType:
		var v uint64
		if err := readBE(r, &v); err != nil {
			return nil, err
		}
		return tag.FromDouble(math.Float64frombits(v)), nil
	case tag.StringType:
		b, err := readBytes(r)
		if err != nil {
			return nil, err
		}
		return tag.FromString(string(b)), nil
	case tag.ByteArrayType:
		b, err := readBytes(r)
		if err != nil {
			return nil, err
		}
		return tag.FromByteArray(b), nil
	case tag.ListType:
		return d.readList()
	case tag.CompoundType:
		return d.readCompound()
	}
	return nil, fmt.Errorf("%w: unknown tag type %d", ErrCorrupt, ty)
}

func (d *decoder) readList() (tag.Tag, error) {
	et, err := d.r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	n, err := readLen(d.r)
	if err != nil {
		return nil, err
	}
	if err := d.charge(n); err != nil {
		return nil, err
	}
	l := tag.NewList(tag.Type(et))
	for i := 0; i < n; i++ {
		e, err := d.readPayload(tag.Type(et))
		if err != nil {
			return nil, err
		}
		if err := l.Add(e); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
		}
	}
	return l, nil
}

func (d *decoder) readCompound() (tag.Tag, error) {
	n, err := readLen(d.r)
	if err != nil {
		return nil, err
	}
	if err := d.charge(n); err != nil {
		return nil, err
	}
	c := tag.NewCompound()
	for i := 0; i < n; i++ {
		key, err := readBytes(d.r)
		if err != nil {
			return nil, err
		}
		k := string(key)
		if c.Has(k) {
			return nil, fmt.Errorf("%w: duplicate compound key %q", ErrCorrupt, k)
		}
		v, err := d.readTagged()
		if err != nil {
			return nil, err
		}
		c.Set(k, v)
	}
	return c, nil
}

func writeBE(w io.Writer, v any) error {
	return binary.Write(w, binary.BigEndian, v)
}

func readBE(r io.Reader, v any) error {
	if err := binary.Read(r, binary.BigEndian, v); err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return nil
}

func writeUvarint(w *bufio.Writer, v uint64) error {
	var buf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(buf[:], v)
	_, err := w.Write(buf[:n])
	return err
}

func writeBytes(w *bufio.Writer, b []byte) error {
	if err := writeUvarint(w, uint64(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

func readLen(r *bufio.Reader) (int, error) {
	v, err := binary.ReadUvarint(r)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if v > maxLen {
		return 0, fmt.Errorf("%w: length %d exceeds limit", ErrCorrupt, v)
	}
	return int(v), nil
}

func readBytes(r *bufio.Reader) ([]byte, error) {
	n, err := readLen(r)
	if err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return b, nil
}

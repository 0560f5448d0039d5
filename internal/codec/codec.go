// Package codec implements the versioned binary serialization for
// dictionary elements and the on-disk dump format. Elements are encoded
// with a little-endian length-prefixed layout and compressed individually
// with zstd so the query store can keep blobs compressed in memory and pay
// the decompression cost per lookup only.
package codec

import (
	"encoding/binary"
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/Alex-Programs/nuenki-dictionary/internal/entity"
)

// FormatVersion is bumped on any change to the wire layout.
const FormatVersion = 1

// DefaultCompressionLevel mirrors the zstd level the dump was tuned at.
const DefaultCompressionLevel = 4

// Codec owns a zstd encoder/decoder pair. EncodeAll/DecodeAll are safe for
// concurrent use, so one Codec serves all builder workers and all lookups.
type Codec struct {
	enc *zstd.Encoder
	dec *zstd.Decoder
}

// New creates a Codec compressing at the given zstd level.
func New(level int) (*Codec, error) {
	if level <= 0 {
		level = DefaultCompressionLevel
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(level)))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}
	return &Codec{enc: enc, dec: dec}, nil
}

// Compress serializes the element payload and wraps the zstd frame with the
// element's index pair. Key and Lang stay outside the blob: the store needs
// them without decompressing.
func (c *Codec) Compress(e *entity.DictionaryElement) entity.CompressedElement {
	return entity.CompressedElement{
		Key:  e.Key,
		Lang: e.Lang,
		Blob: c.enc.EncodeAll(encodeElement(e), nil),
	}
}

// Decompress inflates a wrapper back into a full element.
func (c *Codec) Decompress(w entity.CompressedElement) (*entity.DictionaryElement, error) {
	raw, err := c.dec.DecodeAll(w.Blob, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %v", entity.ErrCorruptDump, err)
	}
	e, err := decodeElement(raw)
	if err != nil {
		return nil, err
	}
	e.Key = w.Key
	e.Lang = w.Lang
	return e, nil
}

// encodeElement lays out the payload carried inside the compressed blob.
// Key and Lang are intentionally absent.
func encodeElement(e *entity.DictionaryElement) []byte {
	w := newWriter()
	w.str(e.Word)
	w.strs(e.Audio)
	w.str(e.IPA)
	w.strs(e.WordTypes)
	w.u32(uint32(len(e.Definitions)))
	for _, d := range e.Definitions {
		w.u32(uint32(len(d.Text)))
		for _, f := range d.Text {
			w.u8(uint8(f.Kind))
			w.str(f.Text)
		}
		w.strs(d.Tags)
	}
	w.str(e.DereferencedText)
	return w.bytes()
}

func decodeElement(raw []byte) (*entity.DictionaryElement, error) {
	r := newReader(raw)
	e := &entity.DictionaryElement{}
	e.Word = r.str()
	e.Audio = r.strs()
	e.IPA = r.str()
	e.WordTypes = r.strs()
	n := r.u32()
	if r.err == nil && n > 0 {
		e.Definitions = make([]entity.Definition, 0, n)
		for i := uint32(0); i < n && r.err == nil; i++ {
			var d entity.Definition
			fn := r.u32()
			for j := uint32(0); j < fn && r.err == nil; j++ {
				kind := entity.FragmentKind(r.u8())
				d.Text = append(d.Text, entity.Fragment{Kind: kind, Text: r.str()})
			}
			d.Tags = r.strs()
			e.Definitions = append(e.Definitions, d)
		}
	}
	e.DereferencedText = r.str()
	if r.err != nil {
		return nil, fmt.Errorf("%w: element payload: %v", entity.ErrCorruptDump, r.err)
	}
	return e, nil
}

type writer struct {
	buf []byte
}

func newWriter() *writer { return &writer{buf: make([]byte, 0, 256)} }

func (w *writer) bytes() []byte { return w.buf }

func (w *writer) u8(v uint8)   { w.buf = append(w.buf, v) }
func (w *writer) u16(v uint16) { w.buf = binary.LittleEndian.AppendUint16(w.buf, v) }
func (w *writer) u32(v uint32) { w.buf = binary.LittleEndian.AppendUint32(w.buf, v) }
func (w *writer) u64(v uint64) { w.buf = binary.LittleEndian.AppendUint64(w.buf, v) }

func (w *writer) str(s string) {
	w.u32(uint32(len(s)))
	w.buf = append(w.buf, s...)
}

func (w *writer) strs(ss []string) {
	w.u32(uint32(len(ss)))
	for _, s := range ss {
		w.str(s)
	}
}

type reader struct {
	buf []byte
	off int
	err error
}

func newReader(buf []byte) *reader { return &reader{buf: buf} }

func (r *reader) fail() {
	if r.err == nil {
		r.err = fmt.Errorf("truncated at offset %d", r.off)
	}
}

func (r *reader) u8() uint8 {
	if r.err != nil || r.off+1 > len(r.buf) {
		r.fail()
		return 0
	}
	v := r.buf[r.off]
	r.off++
	return v
}

func (r *reader) u16() uint16 {
	if r.err != nil || r.off+2 > len(r.buf) {
		r.fail()
		return 0
	}
	v := binary.LittleEndian.Uint16(r.buf[r.off:])
	r.off += 2
	return v
}

func (r *reader) u32() uint32 {
	if r.err != nil || r.off+4 > len(r.buf) {
		r.fail()
		return 0
	}
	v := binary.LittleEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v
}

func (r *reader) u64() uint64 {
	if r.err != nil || r.off+8 > len(r.buf) {
		r.fail()
		return 0
	}
	v := binary.LittleEndian.Uint64(r.buf[r.off:])
	r.off += 8
	return v
}

func (r *reader) str() string {
	n := int(r.u32())
	if r.err != nil || r.off+n > len(r.buf) {
		r.fail()
		return ""
	}
	s := string(r.buf[r.off : r.off+n])
	r.off += n
	return s
}

func (r *reader) strs() []string {
	n := int(r.u32())
	if r.err != nil || n == 0 {
		return nil
	}
	out := make([]string, 0, n)
	for i := 0; i < n && r.err == nil; i++ {
		out = append(out, r.str())
	}
	return out
}

func (r *reader) take(n int) []byte {
	if r.err != nil || r.off+n > len(r.buf) {
		r.fail()
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

package codec

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/Alex-Programs/nuenki-dictionary/internal/entity"
)

// dumpMagic leads every dump file, followed by a u16 format version.
var dumpMagic = []byte("NDIC")

// SortElements orders wrappers by (lang, key). Map-backed phases hand their
// results over in arbitrary order; sorting here makes rebuilds from
// identical inputs byte-identical.
func SortElements(elements []entity.CompressedElement) {
	sort.Slice(elements, func(i, j int) bool {
		if elements[i].Lang != elements[j].Lang {
			return elements[i].Lang < elements[j].Lang
		}
		return elements[i].Key < elements[j].Key
	})
}

// EncodeDump serializes the wrapper vector into the versioned dump layout.
func EncodeDump(elements []entity.CompressedElement) []byte {
	w := newWriter()
	w.buf = append(w.buf, dumpMagic...)
	w.u16(FormatVersion)
	w.u64(uint64(len(elements)))
	for _, el := range elements {
		w.str(el.Key)
		w.str(string(el.Lang))
		w.u32(uint32(len(el.Blob)))
		w.buf = append(w.buf, el.Blob...)
	}
	return w.bytes()
}

// DecodeDump parses a dump file image back into the wrapper vector.
func DecodeDump(raw []byte) ([]entity.CompressedElement, error) {
	r := newReader(raw)
	magic := r.take(len(dumpMagic))
	if r.err != nil || string(magic) != string(dumpMagic) {
		return nil, fmt.Errorf("%w: bad magic", entity.ErrCorruptDump)
	}
	version := r.u16()
	if version != FormatVersion {
		return nil, fmt.Errorf("%w: unsupported format version %d", entity.ErrCorruptDump, version)
	}
	count := r.u64()
	elements := make([]entity.CompressedElement, 0, count)
	for i := uint64(0); i < count; i++ {
		var el entity.CompressedElement
		el.Key = r.str()
		el.Lang = entity.Language(r.str())
		blobLen := int(r.u32())
		blob := r.take(blobLen)
		if r.err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", entity.ErrCorruptDump, i, r.err)
		}
		el.Blob = append([]byte(nil), blob...)
		elements = append(elements, el)
	}
	return elements, nil
}

// WriteDump writes the dump atomically: a temp file in the target directory
// renamed over the destination once fully flushed.
func WriteDump(path string, elements []entity.CompressedElement) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp dump: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(EncodeDump(elements)); err != nil {
		tmp.Close()
		return fmt.Errorf("write dump: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync dump: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close dump: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename dump into place: %w", err)
	}
	return nil
}

// ReadDump loads and parses a dump file.
func ReadDump(path string) ([]entity.CompressedElement, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read dump: %w", err)
	}
	return DecodeDump(raw)
}

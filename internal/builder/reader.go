package builder

import (
	"bytes"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// lineReader hands out batches of newline-delimited records from a
// memory-mapped file. Batches are slices into the mapping, so workers read
// the page cache directly instead of copying every line through a buffer.
type lineReader struct {
	file *os.File
	data mmap.MMap
	off  int
}

func openLineReader(path string) (*lineReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("mmap input: %w", err)
	}
	return &lineReader{file: f, data: m}, nil
}

// nextBatch returns up to n lines, without trailing newlines. An empty
// result means end of input.
func (lr *lineReader) nextBatch(n int) [][]byte {
	batch := make([][]byte, 0, n)
	for len(batch) < n && lr.off < len(lr.data) {
		rest := lr.data[lr.off:]
		idx := bytes.IndexByte(rest, '\n')
		var line []byte
		if idx < 0 {
			line = rest
			lr.off = len(lr.data)
		} else {
			line = rest[:idx]
			lr.off += idx + 1
		}
		if len(line) == 0 {
			continue
		}
		batch = append(batch, line)
	}
	return batch
}

func (lr *lineReader) Close() error {
	merr := lr.data.Unmap()
	cerr := lr.file.Close()
	if merr != nil {
		return merr
	}
	return cerr
}

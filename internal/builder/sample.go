package builder

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Alex-Programs/nuenki-dictionary/internal/entity"
)

// writeSample dumps every sampleEvery-th element as indented JSON so a
// build can be spot-checked by eye without decoding the binary dump.
func writeSample(path string, elements []*entity.DictionaryElement) error {
	sample := make([]*entity.DictionaryElement, 0, len(elements)/sampleEvery+1)
	for i, el := range elements {
		if i%sampleEvery == 0 {
			sample = append(sample, el)
		}
	}

	raw, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal sample: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write sample file: %w", err)
	}
	return nil
}

package dictionary

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// MarshalJSON writes an entry as [sorted, word].
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{e.Sorted, e.Word})
}

// UnmarshalJSON reads an entry from [sorted, word].
func (e *Entry) UnmarshalJSON(data []byte) error {
	var pair []string
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("%w: entry has %d fields, want [sorted, word]", ErrInvalidIndex, len(pair))
	}
	e.Sorted, e.Word = pair[0], pair[1]
	return nil
}

// Load reads and validates an index file. FormatUnknown detects the format
// from the file extension.
func Load(path string, format FileFormat) (*Index, error) {
	var err error
	if format == FormatUnknown {
		if format, err = DetectFileFormat(path); err != nil {
			return nil, err
		}
	} else if err = ValidateFileFormat(path, format); err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open index %s: %w", path, err)
	}
	defer file.Close()

	start := time.Now()
	ix, err := Decode(bufio.NewReader(file), format)
	if err != nil {
		return nil, fmt.Errorf("failed to load index %s: %w", path, err)
	}
	ix.source = path

	log.Debugf("Loaded %s index %s: %d signatures, %d words in %v",
		format, filepath.Base(path), ix.Len(), ix.WordCount(), time.Since(start))
	return ix, nil
}

// Decode reads an index in the given format from r.
func Decode(r io.Reader, format FileFormat) (*Index, error) {
	var buckets map[string][]Entry
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&buckets); err != nil {
			return nil, fmt.Errorf("decoding json index: %w", err)
		}
	case FormatMsgpack:
		if err := msgpack.NewDecoder(r).Decode(&buckets); err != nil {
			return nil, fmt.Errorf("decoding msgpack index: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, format)
	}
	return NewIndex(buckets)
}

// Encode writes the index to w. Keys are written in sorted order so the
// output is reproducible.
func (ix *Index) Encode(w io.Writer, format FileFormat) error {
	buckets := ix.Buckets()
	switch format {
	case FormatJSON:
		return json.NewEncoder(w).Encode(buckets)
	case FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		enc.SetSortMapKeys(true)
		return enc.Encode(buckets)
	}
	return fmt.Errorf("%w: %v", ErrUnknownFormat, format)
}

// Save writes the index to path, creating or truncating the file.
func (ix *Index) Save(path string, format FileFormat) error {
	file, err := os.Create(path)
	if err != nil {
		log.Errorf("Failed to create index file: %v", err)
		return err
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	if err := ix.Encode(w, format); err != nil {
		return fmt.Errorf("failed to encode index %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	log.Debugf("Wrote %s index %s: %d signatures", format, path, ix.Len())
	return file.Close()
}

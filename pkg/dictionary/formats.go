package dictionary

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrUnknownFormat is returned when a file's index format cannot be determined.
var ErrUnknownFormat = errors.New("unknown index format")

// FileFormat represents the on-disk encodings of an index
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatJSON               // {"sig": [["sorted","word"], ...]}
	FormatMsgpack            // same shape, msgpack encoded
)

// FormatInfo contains metadata about an index file format
type FormatInfo struct {
	Format      FileFormat
	Name        string
	Description string
	Extensions  []string
	MinSize     int64 // Minimum expected file size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatJSON: {
		Format:      FormatJSON,
		Name:        "json",
		Description: "JSON Signature Index",
		Extensions:  []string{".json"},
		MinSize:     2, // "{}"
	},
	FormatMsgpack: {
		Format:      FormatMsgpack,
		Name:        "msgpack",
		Description: "Msgpack Signature Index",
		Extensions:  []string{".msgpack", ".mpk"},
		MinSize:     1, // empty fixmap
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Name
	}
	return "unknown"
}

// ParseFormat maps a config or flag value to a FileFormat.
// The empty string means "detect from the file" and yields FormatUnknown.
// A format matches on its name or on one of its extensions without the dot.
func ParseFormat(name string) (FileFormat, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return FormatUnknown, nil
	}
	for _, info := range ListSupportedFormats() {
		if key == info.Name || slices.Contains(info.Extensions, "."+key) {
			return info.Format, nil
		}
	}
	return FormatUnknown, fmt.Errorf("%w: %q (supported: %s)", ErrUnknownFormat, name, FormatNames())
}

// FormatNames lists the supported format names for help and error text,
// e.g. "json or msgpack".
func FormatNames() string {
	formats := ListSupportedFormats()
	names := make([]string, len(formats))
	for i, info := range formats {
		names[i] = info.Name
	}
	if len(names) < 2 {
		return strings.Join(names, "")
	}
	return strings.Join(names[:len(names)-1], ", ") + " or " + names[len(names)-1]
}

// ValidateFileFormat checks if a file matches the expected format
func ValidateFileFormat(filename string, expectedFormat FileFormat) error {
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to stat file %s: %w", filename, err)
	}
	if fileInfo.IsDir() {
		return fmt.Errorf("%s is a directory, not an index file", filename)
	}

	formatInfo, exists := GetFormatInfo(expectedFormat)
	if !exists {
		return fmt.Errorf("%w: %v", ErrUnknownFormat, expectedFormat)
	}

	if fileInfo.Size() < formatInfo.MinSize {
		return fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), formatInfo.Description, formatInfo.MinSize)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !slices.Contains(formatInfo.Extensions, ext) {
		return fmt.Errorf("file %s has invalid extension %s for format %s (expected: %v)",
			filename, ext, formatInfo.Description, formatInfo.Extensions)
	}

	lead, err := leadingByte(filename)
	if err != nil {
		return err
	}
	switch expectedFormat {
	case FormatJSON:
		if lead != '{' {
			return fmt.Errorf("file %s does not start with a JSON object (got %q)", filename, lead)
		}
	case FormatMsgpack:
		if !isMsgpackMap(lead) {
			return fmt.Errorf("file %s does not start with a msgpack map (got 0x%02x)", filename, lead)
		}
	}

	log.Debugf("Index file %s validated as %s", filename, formatInfo.Description)
	return nil
}

// leadingByte returns the first byte of the file, skipping JSON whitespace.
func leadingByte(filename string) (byte, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	r := bufio.NewReader(file)
	for {
		b, err := r.ReadByte()
		if err != nil {
			return 0, fmt.Errorf("failed to read header from %s: %w", filename, err)
		}
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		}
		return b, nil
	}
}

// fixmap, map16 or map32
func isMsgpackMap(b byte) bool {
	return b&0xf0 == 0x80 || b == 0xde || b == 0xdf
}

// DetectFileFormat attempts to detect the format of a file from its extension
func DetectFileFormat(filename string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, info := range ListSupportedFormats() {
		if !slices.Contains(info.Extensions, ext) {
			continue
		}
		if err := ValidateFileFormat(filename, info.Format); err != nil {
			return FormatUnknown, err
		}
		return info.Format, nil
	}
	return FormatUnknown, fmt.Errorf("%w: unable to detect format for file %s", ErrUnknownFormat, filename)
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}

// ListSupportedFormats returns all supported formats ordered by format id
func ListSupportedFormats() []FormatInfo {
	formats := make([]FormatInfo, 0, len(supportedFormats))
	for _, info := range supportedFormats {
		formats = append(formats, info)
	}
	slices.SortFunc(formats, func(a, b FormatInfo) int { return int(a.Format) - int(b.Format) })
	return formats
}

package printer

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/bethropolis/dir-concat/internal/utils"
	"golang.org/x/text/encoding/charmap"
)

// ReadContent reads the file at path for output. Files that are not regular
// or larger than maxSize (when maxSize > 0) are rejected. Content that is
// not valid UTF-8 is decoded as ISO-8859-1 and a warning is logged.
func ReadContent(path string, maxSize int64, logger utils.Logger) ([]byte, error) {
	if logger == nil {
		logger = utils.NoopLogger{}
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("not a regular file")
	}
	if maxSize > 0 && info.Size() > maxSize {
		return nil, fmt.Errorf("file size %d exceeds limit %d bytes", info.Size(), maxSize)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	if !utf8.Valid(content) {
		logger.Warn("UTF-8 decoding failed for %s, reading it as ISO-8859-1", path)
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(content)
		if err != nil {
			return nil, fmt.Errorf("failed to decode file: %w", err)
		}
		content = decoded
	}

	return content, nil
}

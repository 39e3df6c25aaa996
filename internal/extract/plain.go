package extract

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// FirstLineExtractor takes the first line of the file as the title. This is
// the convention for the plain-text content family, where the first line of
// an entry is its headline.
type FirstLineExtractor struct{}

// ExtractTitle implements TitleExtractor.
func (e *FirstLineExtractor) ExtractTitle(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	reader := bufio.NewReader(f)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		// Opened but unreadable counts as "no title", not as an open
		// failure; the basename fallback applies.
		return "", nil
	}

	return strings.TrimRight(line, "\r\n"), nil
}

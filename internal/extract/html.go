package extract

import (
	"os"
	"regexp"
)

// titleElement matches the first <title> element, case-insensitively, with
// dot matching newlines so multi-line titles are captured whole. The inner
// text is kept verbatim; surrounding whitespace is not normalized.
var titleElement = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)

// HTMLExtractor reads the whole file and takes the text of its first
// <title> element.
type HTMLExtractor struct{}

// ExtractTitle implements TitleExtractor.
func (e *HTMLExtractor) ExtractTitle(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	m := titleElement.FindSubmatch(data)
	if m == nil {
		return "", nil
	}
	return string(m[1]), nil
}

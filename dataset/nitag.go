package dataset

import (
	"bufio"
	"bytes"
	"fmt"
	"html"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/giygas/vaccines-api/dataset/entities"
	"github.com/giygas/vaccines-api/logging"
	"golang.org/x/text/encoding/charmap"
)

// NoDataFound is the summary of a country block without any recognised tag.
const NoDataFound = "No Data Found"

const (
	tagCommittee       = "committee"
	tagYearEstablished = "year established"
	tagYearEvaluated   = "year evaluated"
	tagWebsite         = "website"
)

var nitagTags = []string{tagCommittee, tagYearEstablished, tagYearEvaluated, tagWebsite}

var nitagLabels = map[string]string{
	tagCommittee:       "Committee",
	tagYearEstablished: "Year established",
	tagYearEvaluated:   "Year evaluated",
	tagWebsite:         "Website",
}

// NitagStats counts what ParseNitags skipped.
type NitagStats struct {
	Blocks        int
	SkippedBlocks int
	IgnoredLines  int
}

// decodeText returns a UTF-8 reader over b, decoding from ISO-8859-1 when b
// is not valid UTF-8.
func decodeText(b []byte) io.Reader {
	if utf8.Valid(b) {
		return bytes.NewReader(b)
	}
	return charmap.ISO8859_1.NewDecoder().Reader(bytes.NewReader(b))
}

// splitTag splits a "Tag: value" line. The tag is lower-cased.
func splitTag(line string) (string, string, bool) {
	tag, value, ok := strings.Cut(line, ":")
	if !ok {
		return "", "", false
	}
	return strings.ToLower(strings.TrimSpace(tag)), strings.TrimSpace(value), true
}

func isKnownTag(tag string) bool {
	_, ok := nitagLabels[tag]
	return ok
}

// ParseNitags reads country blocks separated by blank lines. The first line of
// a block is the country name, the following lines are "Tag: value" pairs.
// Only Committee, Year established, Year evaluated and Website are kept, the
// first occurrence of each wins. Blocks that start with a tag line have no
// country and are skipped. Lines starting with '#' are comments.
func ParseNitags(r io.Reader) ([]entities.CountryNitag, NitagStats, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, NitagStats{}, fmt.Errorf("failed to read nitag text: %w", err)
	}

	scanner := bufio.NewScanner(decodeText(raw))
	scanner.Buffer(make([]byte, 0), 1*1024*1024)

	var (
		nitags []entities.CountryNitag
		stats  NitagStats
		block  []string
	)

	flush := func() {
		if len(block) == 0 {
			return
		}
		stats.Blocks++
		n, ignored, ok := parseBlock(block)
		stats.IgnoredLines += ignored
		if ok {
			nitags = append(nitags, n)
		} else {
			stats.SkippedBlocks++
		}
		block = block[:0]
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		if line == "" {
			flush()
			continue
		}
		block = append(block, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, stats, fmt.Errorf("scanner error in nitag text: %w", err)
	}
	flush()

	if stats.SkippedBlocks > 0 || stats.IgnoredLines > 0 {
		logging.Warn("NITAG text skip statistics",
			"blocks", stats.Blocks,
			"skipped_blocks", stats.SkippedBlocks,
			"ignored_lines", stats.IgnoredLines,
		)
	}

	if nitags == nil {
		nitags = []entities.CountryNitag{}
	}
	return nitags, stats, nil
}

func parseBlock(lines []string) (entities.CountryNitag, int, bool) {
	country := strings.TrimSpace(strings.TrimPrefix(lines[0], "\ufeff"))
	if tag, _, ok := splitTag(country); ok && isKnownTag(tag) {
		return entities.CountryNitag{}, 0, false
	}

	values := make(map[string]string, len(nitagTags))
	ignored := 0
	for _, line := range lines[1:] {
		tag, value, ok := splitTag(line)
		if !ok || !isKnownTag(tag) {
			ignored++
			continue
		}
		if _, seen := values[tag]; seen {
			continue
		}
		values[tag] = value
	}

	n := entities.CountryNitag{
		Country:         country,
		Committee:       values[tagCommittee],
		YearEstablished: values[tagYearEstablished],
		YearEvaluated:   values[tagYearEvaluated],
		Website:         values[tagWebsite],
	}
	n.Summary = nitagSummary(values)
	return n, ignored, true
}

func nitagSummary(values map[string]string) string {
	var sb strings.Builder
	for _, tag := range nitagTags {
		value := values[tag]
		if value == "" {
			continue
		}

		sb.WriteString("<p><strong>")
		sb.WriteString(nitagLabels[tag])
		sb.WriteString(":</strong> ")
		escaped := html.EscapeString(value)
		if tag == tagWebsite && (strings.HasPrefix(value, "http://") || strings.HasPrefix(value, "https://")) {
			fmt.Fprintf(&sb, `<a href="%s" target="_blank" rel="noopener noreferrer">%s</a>`, escaped, escaped)
		} else {
			sb.WriteString(escaped)
		}
		sb.WriteString("</p>")
	}

	if sb.Len() == 0 {
		return NoDataFound
	}
	return sb.String()
}

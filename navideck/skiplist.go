package navideck

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Sentinel errors for skip-list diagnostics. None of them is fatal: the parser
// always returns the entries it could use.
var (
	// ErrMalformedSkipEntry is reported for a line that is not an integer.
	ErrMalformedSkipEntry = errors.New("malformed skip entry")
	// ErrSkipEntryOutOfRange is reported for a slide number outside 1..nSlides.
	ErrSkipEntryOutOfRange = errors.New("skip entry out of range")
	// ErrSkipListNotFound is reported when no skip list exists for a deck.
	ErrSkipListNotFound = errors.New("skip list not found")
)

// ParseSkipList reads newline-delimited 1-based slide numbers and returns the
// sorted, de-duplicated 0-based real indices to skip.
//
// Blank lines are ignored. Malformed and out-of-range lines are discarded and
// reported through the returned error, which joins one diagnostic per line.
func ParseSkipList(r io.Reader, nSlides int) ([]int, error) {
	seen := make(map[int]struct{})
	var diags []error

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		n, err := strconv.Atoi(line)
		if err != nil {
			diags = append(diags, fmt.Errorf("line %d: %q: %w", lineNo, line, ErrMalformedSkipEntry))
			continue
		}
		if n < 1 || n > nSlides {
			diags = append(diags, fmt.Errorf("line %d: slide %d not in 1..%d: %w", lineNo, n, nSlides, ErrSkipEntryOutOfRange))
			continue
		}
		seen[n-1] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		diags = append(diags, fmt.Errorf("read skip list: %w", err))
	}

	skip := make([]int, 0, len(seen))
	for s := range seen {
		skip = append(skip, s)
	}
	sort.Ints(skip)

	return skip, errors.Join(diags...)
}

package navideck

import (
	"fmt"
	"sort"
)

// SlideMapping is the immutable real→user index table.
//
// UserToReal(u) is the real slide shown at user position u. The table is
// strictly increasing; real slides absent from it are skipped.
type SlideMapping struct {
	realCount  int
	userToReal []int
}

// BuildMapping walks real slides 0..nSlides-1 in order and keeps every slide
// that is not in skip. Skip entries outside [0, nSlides) and duplicates are
// ignored, so the caller may pass unsorted input.
func BuildMapping(nSlides int, skip []int) SlideMapping {
	if nSlides < 0 {
		nSlides = 0
	}

	skipped := make(map[int]struct{}, len(skip))
	for _, s := range skip {
		if s >= 0 && s < nSlides {
			skipped[s] = struct{}{}
		}
	}

	userToReal := make([]int, 0, nSlides-len(skipped))
	for ri := 0; ri < nSlides; ri++ {
		if _, ok := skipped[ri]; ok {
			continue
		}
		userToReal = append(userToReal, ri)
	}

	return SlideMapping{realCount: nSlides, userToReal: userToReal}
}

// RealCount returns the number of physical slides.
func (m SlideMapping) RealCount() int { return m.realCount }

// UserCount returns the number of navigable slides.
func (m SlideMapping) UserCount() int { return len(m.userToReal) }

// UserToReal returns the real slide index shown at user position u.
func (m SlideMapping) UserToReal(u int) int { return m.userToReal[u] }

// Table returns a copy of the mapping table.
func (m SlideMapping) Table() []int {
	out := make([]int, len(m.userToReal))
	copy(out, m.userToReal)
	return out
}

// Skipped returns the sorted real indices excluded from user navigation.
func (m SlideMapping) Skipped() []int {
	var out []int
	u := 0
	for ri := 0; ri < m.realCount; ri++ {
		if u < len(m.userToReal) && m.userToReal[u] == ri {
			u++
			continue
		}
		out = append(out, ri)
	}
	return out
}

// UserIndexFor returns the smallest user index whose real slide is >= ri.
// ok is false when ri lies beyond every mapped slide.
func (m SlideMapping) UserIndexFor(ri int) (u int, ok bool) {
	u = sort.SearchInts(m.userToReal, ri)
	return u, u < len(m.userToReal)
}

// withFallback returns a mapping that always has at least one entry.
// A deck where every slide is skipped behaves like a one-slide deck.
func (m SlideMapping) withFallback() SlideMapping {
	if len(m.userToReal) > 0 {
		return m
	}
	return SlideMapping{realCount: m.realCount, userToReal: []int{0}}
}

// mustValidate panics when the table is not strictly increasing or holds
// values outside the real range. A broken table means a programming error.
func (m SlideMapping) mustValidate() {
	limit := m.realCount
	if limit < 1 {
		limit = 1
	}
	for u, ri := range m.userToReal {
		if ri < 0 || ri >= limit {
			panic(fmt.Sprintf("navideck: mapping entry %d = %d outside [0, %d)", u, ri, limit))
		}
		if u > 0 && m.userToReal[u-1] >= ri {
			panic(fmt.Sprintf("navideck: mapping not strictly increasing at %d (%d >= %d)", u, m.userToReal[u-1], ri))
		}
	}
}

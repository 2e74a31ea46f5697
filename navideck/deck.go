package navideck

import (
	"bufio"
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Slide is one physical page of a deck.
type Slide struct {
	Markdown string // body without presenter notes
	Title    string // first heading, empty if none
	Notes    string // presenter notes from a <!-- notes: ... --> comment
}

// Deck is a markdown presentation split into slides. It is the metadata
// provider for a Controller.
type Deck struct {
	SourcePath string
	Slides     []Slide
}

// SlideCount returns the number of physical slides.
func (d *Deck) SlideCount() int { return len(d.Slides) }

// Slide returns slide i, or false when i is outside the deck (for example
// the virtual black slide).
func (d *Deck) Slide(i int) (Slide, bool) {
	if i < 0 || i >= len(d.Slides) {
		return Slide{}, false
	}
	return d.Slides[i], true
}

var (
	separatorPattern = regexp.MustCompile(`^ {0,3}-{3,}\s*$`)
	fencePattern     = regexp.MustCompile("^ {0,3}(`{3,}|~{3,})")
)

// ParseDeck splits markdown into slides. A line of three or more dashes
// preceded by a blank line (or at the top of the file) separates slides;
// dashes right under a paragraph stay a setext heading, and fenced code is
// never split.
func ParseDeck(source []byte, sourcePath string) *Deck {
	var chunks []string
	var current strings.Builder
	fence := ""
	prevBlank := true

	scanner := bufio.NewScanner(bytes.NewReader(source))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()

		if m := fencePattern.FindStringSubmatch(line); m != nil {
			marker := m[1][:3]
			switch {
			case fence == "":
				fence = marker
			case fence == marker:
				fence = ""
			}
		} else if fence == "" && prevBlank && separatorPattern.MatchString(line) {
			chunks = append(chunks, current.String())
			current.Reset()
			prevBlank = true
			continue
		}

		current.WriteString(line)
		current.WriteByte('\n')
		prevBlank = strings.TrimSpace(line) == ""
	}
	chunks = append(chunks, current.String())

	deck := &Deck{SourcePath: sourcePath}
	for i, chunk := range chunks {
		// a leading separator (front matter style) does not open an empty slide
		if i == 0 && strings.TrimSpace(chunk) == "" && len(chunks) > 1 {
			continue
		}
		deck.Slides = append(deck.Slides, parseSlide(chunk))
	}
	return deck
}

func parseSlide(chunk string) Slide {
	source := []byte(chunk)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var title string
	var notes []string
	type span struct{ start, stop int }
	var cut []span

	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n := node.(type) {
		case *ast.Heading:
			if title == "" {
				var b strings.Builder
				for child := n.FirstChild(); child != nil; child = child.NextSibling() {
					if t, ok := child.(*ast.Text); ok {
						b.Write(t.Segment.Value(source))
					}
				}
				title = strings.TrimSpace(b.String())
			}
			return ast.WalkSkipChildren, nil
		case *ast.HTMLBlock:
			if n.HTMLBlockType != ast.HTMLBlockType2 || n.Lines().Len() == 0 {
				return ast.WalkSkipChildren, nil
			}
			var raw strings.Builder
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				raw.Write(seg.Value(source))
			}
			stop := lines.At(lines.Len() - 1).Stop
			if n.HasClosure() {
				raw.Write(n.ClosureLine.Value(source))
				stop = n.ClosureLine.Stop
			}
			if note, ok := noteText(raw.String()); ok {
				notes = append(notes, note)
				cut = append(cut, span{start: lines.At(0).Start, stop: stop})
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	body := chunk
	for i := len(cut) - 1; i >= 0; i-- {
		body = body[:cut[i].start] + body[cut[i].stop:]
	}

	return Slide{
		Markdown: strings.TrimSpace(body),
		Title:    title,
		Notes:    strings.Join(notes, "\n\n"),
	}
}

// noteText extracts the text of a <!-- notes: ... --> comment.
func noteText(comment string) (string, bool) {
	s := strings.TrimSpace(comment)
	s = strings.TrimPrefix(s, "<!--")
	s = strings.TrimSuffix(s, "-->")
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "notes:") {
		return "", false
	}
	return strings.TrimSpace(s[len("notes:"):]), true
}

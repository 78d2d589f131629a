package parser

import "strings"

// The segmenter is a single-pass line scanner. Each line is classified as a
// date marker, the start/continuation/end of a multi-line block, or a
// single-line block. Scanning is driven by a pure transition function over
// an explicit two-state machine, so the segmenter can be exercised line by
// line in tests.

// scanState is the segmenter's state between lines.
type scanState struct {
	inBlock bool
	start   int // first line index of the open block, valid when inBlock
}

// block is a contiguous, inclusive line range forming one logical entry.
type block struct {
	start, end int
}

// segments is the result of scanning a file: the emitted blocks in input
// order and the date text found at each date marker line.
type segments struct {
	blocks []block
	dates  map[int]string
	// openStart is the start index of a block left unterminated at EOF,
	// or -1 when every block closed properly.
	openStart int
}

// transition consumes one non-date line and returns the next state plus the
// block it completes, if any.
func transition(state scanState, index int, line string, openMarkers, closeMarkers []string) (scanState, *block) {
	switch {
	case !state.inBlock && containsAny(line, openMarkers):
		// Header-only signal; the block is emitted once it closes.
		return scanState{inBlock: true, start: index}, nil

	case state.inBlock && containsAny(line, closeMarkers):
		return scanState{}, &block{start: state.start, end: index}

	case state.inBlock:
		return state, nil

	case strings.TrimSpace(line) == "":
		return state, nil

	default:
		return state, &block{start: index, end: index}
	}
}

func containsAny(line string, markers []string) bool {
	for _, m := range markers {
		if m != "" && strings.Contains(line, m) {
			return true
		}
	}
	return false
}

// scan runs the state machine over all lines. Date marker lines are indexed
// and excluded from blocks; they do not affect block state.
func (p *Parser) scan(lines []string) segments {
	seg := segments{
		dates:     make(map[int]string),
		openStart: -1,
	}

	var state scanState
	for i, line := range lines {
		if date, ok := p.compiled.IsDateLine(line); ok {
			seg.dates[i] = date
			continue
		}

		var emitted *block
		state, emitted = transition(state, i, line, p.compiled.MultilineOpen, p.compiled.MultilineClose)
		if emitted != nil {
			seg.blocks = append(seg.blocks, *emitted)
		}
	}

	if state.inBlock {
		seg.openStart = state.start
	}

	return seg
}

// datesInEffect computes, for every line index, the text of the nearest
// preceding date marker line.
func datesInEffect(lineCount int, dates map[int]string) []string {
	inEffect := make([]string, lineCount)
	current := ""
	for i := 0; i < lineCount; i++ {
		if date, ok := dates[i]; ok {
			current = date
		}
		inEffect[i] = current
	}
	return inEffect
}

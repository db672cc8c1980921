package openhours

// segment is a piece of the cleaned input together with its position.
type segment struct {
	text string
	span Span
}

// splitSegments splits s on sep, keeping empty pieces. offset is the
// position of s within the cleaned input.
func splitSegments(s string, offset int, sep byte) []segment {
	var segs []segment
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == sep {
			segs = append(segs, segment{
				text: s[start:i],
				span: Span{offset + start, offset + i},
			})
			start = i + 1
		}
	}
	return segs
}

// fields splits a segment on whitespace, dropping empty pieces.
func fields(seg segment) []segment {
	var out []segment
	s := seg.text
	i := 0
	for i < len(s) {
		for i < len(s) && isWhitespace(s[i]) {
			i++
		}
		start := i
		for i < len(s) && !isWhitespace(s[i]) {
			i++
		}
		if i > start {
			out = append(out, segment{
				text: s[start:i],
				span: Span{seg.span.Start + start, seg.span.Start + i},
			})
		}
	}
	return out
}

// split splits a segment on sep.
func (seg segment) split(sep byte) []segment {
	return splitSegments(seg.text, seg.span.Start, sep)
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

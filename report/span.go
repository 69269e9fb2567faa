package report

// TextSpan represents a range or "span" of source text.  It is used to specify
// erroneous or otherwise significant source text in a Nano program.  Text
// spans are half-open: the starting position is the position of the first
// character in the span and the ending position is the position just past the
// last character in the span.  The line and column numbers are
// zero-indexed; they are converted to one-indexed positions for display.
type TextSpan struct {
	// The line and column beginning the text span.
	StartLine, StartCol int

	// The line and column ending the text span.
	EndLine, EndCol int
}

// NewSpanOver returns a new text span which spans over and between the two
// given text spans.
func NewSpanOver(start, end *TextSpan) *TextSpan {
	return &TextSpan{
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

package resolver

import "strings"

// Tokenize splits a call number into words. Any run of whitespace separates
// words and leading or trailing whitespace is dropped, so no word is empty.
func Tokenize(callNumber string) []string {
	return strings.Fields(callNumber)
}

// Normalize returns the single-spaced form of a call number.
func Normalize(callNumber string) string {
	return strings.Join(Tokenize(callNumber), " ")
}

// Window is a contiguous run of words, identified by its start index and length.
type Window struct {
	Start  int
	Length int
}

// Text joins the words covered by the window with single spaces.
func (w Window) Text(words []string) string {
	return strings.Join(words[w.Start:w.Start+w.Length], " ")
}

// Windows returns every window of the given length over words, left to right.
func Windows(words []string, length int) []Window {
	return windowSpans(len(words), length)
}

// TailWords returns single-word windows starting at index count-1 and moving
// back to index 0.
func TailWords(words []string, count int) []Window {
	return tailSpans(min(count, len(words)))
}

func windowSpans(n, length int) []Window {
	if length <= 0 || length > n {
		return nil
	}
	spans := make([]Window, 0, n-length+1)
	for start := 0; start+length <= n; start++ {
		spans = append(spans, Window{Start: start, Length: length})
	}
	return spans
}

func tailSpans(count int) []Window {
	if count <= 0 {
		return nil
	}
	spans := make([]Window, 0, count)
	for i := 0; i < count; i++ {
		spans = append(spans, Window{Start: count - 1 - i, Length: 1})
	}
	return spans
}

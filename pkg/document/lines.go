package document

// LineInfo locates one line within a byte buffer.
type LineInfo struct {
	// StartOffset is the offset of the first byte of the line.
	StartOffset int
	// NewlineStart is the offset of the line terminator (\n or \r\n), or the
	// buffer length for a final line without one.
	NewlineStart int
	// EndOffset is the offset just past the terminator.
	EndOffset int
}

// BuildLines returns line metadata for content. Both LF and CRLF line
// endings are recognized. A trailing terminator yields a final empty line,
// and empty content yields one empty line.
func BuildLines(content []byte) []LineInfo {
	var lines []LineInfo
	lineStart := 0

	for idx, char := range content {
		if char != '\n' {
			continue
		}
		newlineStart := idx
		if idx > 0 && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	return append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})
}

// SplitLines splits text into lines without their terminators.
func SplitLines(text string) []string {
	infos := BuildLines([]byte(text))
	out := make([]string, len(infos))
	for i, info := range infos {
		out[i] = text[info.StartOffset:info.NewlineStart]
	}
	return out
}

package server

import (
	"bytes"
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/ballerina-platform/ballerinalsw/internal/util"
)

// utf16OffsetToUTF8 converts a UTF-16 offset to a UTF-8 offset in the given string.
func utf16OffsetToUTF8(s string, utf16Offset int) int {
	if utf16Offset <= 0 {
		return 0
	}

	var utf16Units, utf8Bytes int
	for _, r := range s {
		if utf16Units >= utf16Offset {
			break
		}
		utf16Units += utf16.RuneLen(r)
		utf8Bytes += utf8.RuneLen(r)
	}
	return utf8Bytes
}

// utf8OffsetToUTF16 converts a UTF-8 offset to a UTF-16 offset in the given string.
func utf8OffsetToUTF16(s string, utf8Offset int) int {
	if utf8Offset <= 0 {
		return 0
	}

	var utf8Bytes, utf16Units int
	for _, r := range s {
		if utf8Bytes >= utf8Offset {
			break
		}
		utf8Bytes += utf8.RuneLen(r)
		utf16Units += utf16.RuneLen(r)
	}
	return utf16Units
}

// positionOffset converts an LSP position to a byte offset in content. Lines
// past the end map to the end of content; characters past the end of a line
// map to the end of that line.
func positionOffset(content []byte, position protocol.Position) int {
	lineOffset := 0
	for range position.Line {
		i := bytes.IndexByte(content[lineOffset:], '\n')
		if i < 0 {
			return len(content)
		}
		lineOffset += i + 1
	}

	lineEnd := len(content)
	if i := bytes.IndexByte(content[lineOffset:], '\n'); i >= 0 {
		lineEnd = lineOffset + i
	}
	line := string(content[lineOffset:lineEnd])
	return lineOffset + utf16OffsetToUTF8(line, int(position.Character))
}

// offsetPosition converts a byte offset in content to an LSP position.
func offsetPosition(content []byte, offset int) protocol.Position {
	offset = util.Clamp(offset, 0, len(content))
	lineStart := bytes.LastIndexByte(content[:offset], '\n') + 1
	return protocol.Position{
		Line:      protocol.UInteger(bytes.Count(content[:lineStart], []byte{'\n'})),
		Character: protocol.UInteger(utf8OffsetToUTF16(string(content[lineStart:offset]), offset-lineStart)),
	}
}

// Package escape decodes C-style escaped byte strings as written by the
// protobuf text format for bytes fields such as tensor_content.
package escape

import "strings"

// simpleEscapes maps the character after a backslash to its byte value.
var simpleEscapes = [256]byte{
	't':  '\t',
	'n':  '\n',
	'r':  '\r',
	'\'': '\'',
	'"':  '"',
	'\\': '\\',
}

// Unescape replaces every `\ddd` (three octal digits) and every `\t`, `\n`,
// `\r`, `\'`, `\"`, `\\` sequence in text with the byte it encodes.
// The returned string holds raw bytes, one per decoded character.
//
// Scanning is left to right without overlap, and the octal form wins when
// both could start at the same backslash. Octal codes above 0377 keep their
// low 8 bits. Anything else, a lone backslash included, is copied as is.
func Unescape(text string) string {
	i := strings.IndexByte(text, '\\')
	if i < 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	b.WriteString(text[:i])

	for i < len(text) {
		c := text[i]
		if c != '\\' || i+1 >= len(text) {
			b.WriteByte(c)
			i++
			continue
		}

		if i+3 < len(text) && isOctal(text[i+1]) && isOctal(text[i+2]) && isOctal(text[i+3]) {
			code := int(text[i+1]-'0')<<6 | int(text[i+2]-'0')<<3 | int(text[i+3]-'0')
			b.WriteByte(byte(code))
			i += 4
			continue
		}

		next := text[i+1]
		if v := simpleEscapes[next]; v != 0 {
			b.WriteByte(v)
			i += 2
			continue
		}

		b.WriteByte(c)
		i++
	}
	return b.String()
}

func isOctal(c byte) bool {
	return c >= '0' && c <= '7'
}

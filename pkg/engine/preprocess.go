package engine

import "strings"

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource rewrites script source into something zygomys reads:
//
//  1. :keyword becomes the string literal "__kw_keyword", so keywords
//     never need registering as globals.
//  2. kebab-case identifiers become snake_case (zygomys reads a hyphen
//     between letters as subtraction).
//  3. ; line comments become // comments.
//
// String literals, both quoted and backticked, pass through untouched.
func preprocessSource(source string) string {
	p := preprocessor{src: source}
	p.out.Grow(len(source) + len(source)/4)
	for p.i < len(p.src) {
		switch c := p.src[p.i]; {
		case c == '"':
			p.quoted('"', true)
		case c == '`':
			p.quoted('`', false)
		case c == ';':
			p.comment()
		case c == ':' && p.peek() == '=':
			p.emit(2)
		case c == ':' && isLetter(p.peek()):
			p.keyword()
		case c == '-' && p.i > 0 && isIdentChar(p.src[p.i-1]) && isLetter(p.peek()):
			p.out.WriteByte('_')
			p.i++
		default:
			p.emit(1)
		}
	}
	return p.out.String()
}

type preprocessor struct {
	src string
	i   int
	out strings.Builder
}

func (p *preprocessor) peek() byte {
	if p.i+1 < len(p.src) {
		return p.src[p.i+1]
	}
	return 0
}

// emit copies the next n bytes unchanged.
func (p *preprocessor) emit(n int) {
	p.out.WriteString(p.src[p.i : p.i+n])
	p.i += n
}

// quoted copies a string literal through its closing delimiter.
func (p *preprocessor) quoted(delim byte, escapes bool) {
	p.emit(1)
	for p.i < len(p.src) && p.src[p.i] != delim {
		if escapes && p.src[p.i] == '\\' && p.i+1 < len(p.src) {
			p.emit(2)
			continue
		}
		p.emit(1)
	}
	if p.i < len(p.src) {
		p.emit(1)
	}
}

// comment turns a run of semicolons into // and copies the rest of the line.
func (p *preprocessor) comment() {
	p.out.WriteString("//")
	for p.i < len(p.src) && p.src[p.i] == ';' {
		p.i++
	}
	for p.i < len(p.src) && p.src[p.i] != '\n' {
		p.emit(1)
	}
}

func (p *preprocessor) keyword() {
	j := p.i + 1
	for j < len(p.src) && isKWChar(p.src[j]) {
		j++
	}
	p.out.WriteByte('"')
	p.out.WriteString(kwPrefix)
	p.out.WriteString(p.src[p.i+1 : j])
	p.out.WriteByte('"')
	p.i = j
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

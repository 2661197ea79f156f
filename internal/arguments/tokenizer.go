package arguments

import (
	"strings"
)

const (
	doubleQuoteByteConstant = '"'
	backslashByteConstant   = '\\'
	separatorBytesConstant  = " \t\n\r\v\f"
)

// Tokenize splits rawLine into tokens.
//
// ASCII whitespace outside double quotes separates tokens. A double quote toggles
// quoting; inside quotes a backslash escapes a following double quote and is
// otherwise kept literally. Backslashes outside quotes are ordinary characters.
// Unterminated quotes are not an error: the accumulated text becomes the last token.
// The line is scanned byte by byte so that tokens keep their exact bytes, valid UTF-8 or not.
func Tokenize(rawLine string) []string {
	tokenizer := lineTokenizer{}
	for byteIndex := 0; byteIndex < len(rawLine); byteIndex++ {
		tokenizer.consume(rawLine[byteIndex])
	}
	return tokenizer.finish()
}

type lineTokenizer struct {
	tokens        []string
	currentToken  strings.Builder
	insideQuotes  bool
	escapePending bool
}

func (tokenizer *lineTokenizer) consume(character byte) {
	switch {
	case character == doubleQuoteByteConstant:
		if tokenizer.escapePending {
			tokenizer.appendCharacter(character)
			return
		}
		tokenizer.insideQuotes = !tokenizer.insideQuotes
	case character == backslashByteConstant && tokenizer.insideQuotes:
		if tokenizer.escapePending {
			tokenizer.currentToken.WriteByte(backslashByteConstant)
		}
		tokenizer.escapePending = true
	case isSeparator(character) && !tokenizer.insideQuotes:
		tokenizer.flushToken()
	default:
		tokenizer.appendCharacter(character)
	}
}

func (tokenizer *lineTokenizer) appendCharacter(character byte) {
	if tokenizer.escapePending && character != doubleQuoteByteConstant {
		tokenizer.currentToken.WriteByte(backslashByteConstant)
	}
	tokenizer.currentToken.WriteByte(character)
	tokenizer.escapePending = false
}

func isSeparator(character byte) bool {
	return strings.IndexByte(separatorBytesConstant, character) >= 0
}

func (tokenizer *lineTokenizer) flushToken() {
	if tokenizer.currentToken.Len() == 0 {
		return
	}
	tokenizer.tokens = append(tokenizer.tokens, tokenizer.currentToken.String())
	tokenizer.currentToken.Reset()
}

func (tokenizer *lineTokenizer) finish() []string {
	if tokenizer.escapePending {
		tokenizer.currentToken.WriteByte(backslashByteConstant)
		tokenizer.escapePending = false
	}

	finalToken := strings.Trim(tokenizer.currentToken.String(), separatorBytesConstant)
	tokenizer.currentToken.Reset()
	if len(finalToken) > 0 {
		tokenizer.tokens = append(tokenizer.tokens, finalToken)
	}

	return tokenizer.tokens
}

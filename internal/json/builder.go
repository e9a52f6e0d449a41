package json

import (
	"fmt"

	"github.com/mcncl/parson/internal/errors"
)

// DefaultMaxDepth bounds object/array nesting when no limit is configured.
const DefaultMaxDepth = 10000

// Options configures the value builder.
type Options struct {
	// MaxDepth is the deepest allowed container nesting. Zero means DefaultMaxDepth.
	MaxDepth int
}

// DefaultOptions returns default builder options.
func DefaultOptions() Options {
	return Options{MaxDepth: DefaultMaxDepth}
}

// Parse tokenizes input and builds its Value tree.
func Parse(input string) (Value, error) {
	return ParseWithOptions(input, DefaultOptions())
}

// ParseWithOptions tokenizes input and builds its Value tree with custom options.
// Tokenization completes before building starts.
func ParseWithOptions(input string, opts Options) (Value, error) {
	tokens, err := Tokenize(input)
	if err != nil {
		return Value{}, err
	}
	return BuildWithOptions(tokens, opts)
}

// Build consumes tokens depth-first and returns the single root Value.
func Build(tokens []Token) (Value, error) {
	return BuildWithOptions(tokens, DefaultOptions())
}

// BuildWithOptions is Build with custom options.
//
// Whitespace tokens are ignored at every level. A token sequence with no
// significant tokens builds the null Value.
func BuildWithOptions(tokens []Token, opts Options) (Value, error) {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	b := &builder{tokens: tokens, maxDepth: opts.MaxDepth}

	var root Value
	haveRoot := false
	for {
		tok, ok := b.next()
		if !ok {
			return root, nil
		}
		if haveRoot {
			return Value{}, errors.NewStructuralError(
				fmt.Sprintf("unexpected %s after root value", tok.Kind),
				tok.Offset,
				errors.ErrUnexpectedToken,
			)
		}
		if tok.Kind != TokenOpenBrace && tok.Kind != TokenOpenBracket && !tok.IsScalar() {
			return Value{}, errors.NewStructuralError(
				fmt.Sprintf("failed to parse object, is it a valid one? found %s", tok.Kind),
				tok.Offset,
				errors.ErrUnexpectedToken,
			)
		}

		val, err := b.value(tok, 0)
		if err != nil {
			return Value{}, err
		}
		root, haveRoot = val, true
	}
}

type builder struct {
	tokens   []Token
	pos      int
	maxDepth int
}

// next returns the next non-whitespace token.
func (b *builder) next() (Token, bool) {
	for b.pos < len(b.tokens) {
		tok := b.tokens[b.pos]
		b.pos++
		if tok.Kind != TokenWhitespace {
			return tok, true
		}
	}
	return Token{}, false
}

// value builds the value that starts with tok, which must be a scalar or an
// opening brace/bracket. depth is the nesting depth of the enclosing container.
func (b *builder) value(tok Token, depth int) (Value, error) {
	switch tok.Kind {
	case TokenOpenBrace:
		return b.object(tok, depth+1)
	case TokenOpenBracket:
		return b.array(tok, depth+1)
	case TokenString:
		return NewString(tok.Text), nil
	case TokenNumber:
		return NewNumber(tok.Number), nil
	case TokenBoolean:
		return NewBool(tok.Bool), nil
	case TokenNull:
		return NewNull(), nil
	}
	return Value{}, errors.NewStructuralError(
		fmt.Sprintf("expected a value, found %s", tok.Kind),
		tok.Offset,
		errors.ErrUnexpectedToken,
	)
}

func (b *builder) checkDepth(open Token, depth int) error {
	if depth > b.maxDepth {
		return errors.NewStructuralError(
			fmt.Sprintf("nesting depth exceeds the maximum of %d", b.maxDepth),
			open.Offset,
			errors.ErrMaxDepth,
		)
	}
	return nil
}

// object runs the key/value state machine until the matching '}'.
// A string read in key mode becomes the pending key; ':' switches to value
// mode; the next value is stored under the pending key (replacing any
// earlier member of that name) and the machine returns to key mode.
func (b *builder) object(open Token, depth int) (Value, error) {
	if err := b.checkDepth(open, depth); err != nil {
		return Value{}, err
	}

	members := make(map[string]Value)
	var key string
	hasKey, valueMode := false, false

	for {
		tok, ok := b.next()
		if !ok {
			return Value{}, errors.NewStructuralError(
				fmt.Sprintf("unterminated object starting at offset %d", open.Offset),
				open.Offset,
				errors.ErrUnexpectedToken,
			)
		}

		switch tok.Kind {
		case TokenCloseBrace:
			return NewObject(members), nil
		case TokenComma:
			hasKey, valueMode = false, false
		case TokenColon:
			if !hasKey {
				return Value{}, errors.NewStructuralError("expected an object key before ':'", tok.Offset, errors.ErrUnexpectedToken)
			}
			valueMode = true
		case TokenCloseBracket:
			return Value{}, errors.NewStructuralError("unexpected ']' inside object", tok.Offset, errors.ErrUnexpectedToken)
		default:
			if tok.Kind == TokenString && !valueMode {
				key, hasKey = tok.Text, true
				continue
			}
			if !hasKey {
				return Value{}, errors.NewStructuralError(
					fmt.Sprintf("expected an object key, found %s", tok.Kind),
					tok.Offset,
					errors.ErrUnexpectedToken,
				)
			}
			val, err := b.value(tok, depth)
			if err != nil {
				return Value{}, err
			}
			members[key] = val
			hasKey, valueMode = false, false
		}
	}
}

// array appends each value until the matching ']'. Commas separate elements.
func (b *builder) array(open Token, depth int) (Value, error) {
	if err := b.checkDepth(open, depth); err != nil {
		return Value{}, err
	}

	items := make([]Value, 0)
	for {
		tok, ok := b.next()
		if !ok {
			return Value{}, errors.NewStructuralError(
				fmt.Sprintf("unterminated array starting at offset %d", open.Offset),
				open.Offset,
				errors.ErrUnexpectedToken,
			)
		}

		switch tok.Kind {
		case TokenCloseBracket:
			return NewArray(items), nil
		case TokenComma:
		case TokenColon, TokenCloseBrace:
			return Value{}, errors.NewStructuralError(
				fmt.Sprintf("unexpected %s inside array", tok.Kind),
				tok.Offset,
				errors.ErrUnexpectedToken,
			)
		default:
			val, err := b.value(tok, depth)
			if err != nil {
				return Value{}, err
			}
			items = append(items, val)
		}
	}
}

package strukt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/strukt-dev/strukt/ast"
	"github.com/strukt-dev/strukt/i18n"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType   = "invalid_type"
	CodeMissing       = "missing"
	CodeUnexpectedKey = "unexpected_key"
	CodeForbidden     = "forbidden"
	CodeUnionMember   = "union_member"
)

// ParseIssue is one entry of the error tree. The set of variants is closed:
// TypeIssue, ForbiddenIssue, MissingIssue, UnexpectedIssue, IndexIssue,
// KeyIssue and UnionMemberIssue.
type ParseIssue interface {
	parseIssue()
}

// TypeIssue reports that a value's runtime shape does not match Expected.
type TypeIssue struct {
	Expected ast.AST
	Actual   any
	Message  string // optional override; rendered instead of the default
}

// ForbiddenIssue reports that a hook required suspension while the caller
// requested a strictly synchronous run.
type ForbiddenIssue struct{}

// MissingIssue reports an absent required key or index.
type MissingIssue struct{}

// UnexpectedIssue reports a key or index present in the input but not
// permitted by the schema.
type UnexpectedIssue struct {
	Actual any
}

// IndexIssue wraps failures at a tuple/array position. Issues is non-empty.
type IndexIssue struct {
	Index  int
	Issues []ParseIssue
}

// KeyIssue wraps failures at an object property. Issues is non-empty.
type KeyIssue struct {
	Key    ast.PropertyKey
	Issues []ParseIssue
}

// UnionMemberIssue wraps the failure of one attempted union member.
// Issues is non-empty.
type UnionMemberIssue struct {
	Issues []ParseIssue
}

func (TypeIssue) parseIssue()        {}
func (ForbiddenIssue) parseIssue()   {}
func (MissingIssue) parseIssue()     {}
func (UnexpectedIssue) parseIssue()  {}
func (IndexIssue) parseIssue()       {}
func (KeyIssue) parseIssue()         {}
func (UnionMemberIssue) parseIssue() {}

// ParseError is the failure result of a decode/encode run: a non-empty
// ordered sequence of issues mirroring the shape of the input.
type ParseError struct {
	Issues []ParseIssue
}

// newParseError wraps issues; a decode result is either a value or exactly
// one non-empty ParseError, so empty input returns nil.
func newParseError(issues []ParseIssue) error {
	if len(issues) == 0 {
		return nil
	}
	return &ParseError{Issues: issues}
}

// Error summarizes the first few flattened issues.
func (e *ParseError) Error() string {
	flat := e.Flatten()
	if len(flat) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(flat)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := flat[i]
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AsParseError extracts a ParseError from an error using errors.As internally.
func AsParseError(err error) (*ParseError, bool) {
	if err == nil {
		return nil, false
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// Issue is the flat, path-qualified rendering of one tree entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/2/price).
	Code    string // One of the codes listed above.
	Message string
}

// Issues is a flat rendering of a ParseError tree.
type Issues []Issue

// Flatten renders the error tree into path-qualified issues in discovery
// order. Composite entries contribute their children under an extended
// path; union member wrappers keep the parent path.
func (e *ParseError) Flatten() Issues {
	var out Issues
	return flattenInto(out, "", e.Issues)
}

func flattenInto(dst Issues, path string, issues []ParseIssue) Issues {
	p := path
	if p == "" {
		p = "/"
	}
	for _, is := range issues {
		switch it := is.(type) {
		case TypeIssue:
			msg := it.Message
			if msg == "" {
				msg = i18n.T(CodeInvalidType, map[string]string{"expected": TypeName(it.Expected)})
			}
			dst = append(dst, Issue{Path: p, Code: CodeInvalidType, Message: msg})
		case MissingIssue:
			dst = append(dst, Issue{Path: p, Code: CodeMissing, Message: i18n.T(CodeMissing, nil)})
		case UnexpectedIssue:
			dst = append(dst, Issue{Path: p, Code: CodeUnexpectedKey, Message: i18n.T(CodeUnexpectedKey, nil)})
		case ForbiddenIssue:
			dst = append(dst, Issue{Path: p, Code: CodeForbidden, Message: i18n.T(CodeForbidden, nil)})
		case IndexIssue:
			dst = flattenInto(dst, fmt.Sprintf("%s/%d", path, it.Index), it.Issues)
		case KeyIssue:
			dst = flattenInto(dst, path+"/"+it.Key.String(), it.Issues)
		case UnionMemberIssue:
			dst = flattenInto(dst, path, it.Issues)
		}
	}
	return dst
}

// TypeName renders a node for error messages: the identifier annotation
// when present, otherwise a short structural name.
func TypeName(a ast.AST) string {
	if a == nil {
		return "unknown"
	}
	if id, ok := a.Annotations()[ast.AnnotationIdentifier].(string); ok && id != "" {
		return id
	}
	switch n := a.(type) {
	case *ast.Literal:
		if n.Value == nil {
			return "null"
		}
		if s, ok := n.Value.(string); ok {
			return fmt.Sprintf("%q", s)
		}
		return fmt.Sprintf("%v", n.Value)
	case *ast.UniqueSymbol:
		return n.Sym.String()
	case *ast.Enums:
		return "enums"
	case *ast.Tuple:
		return "tuple"
	case *ast.Struct:
		return "struct"
	case *ast.Union:
		return "union"
	case *ast.Lazy:
		return "lazy"
	case *ast.Refinement:
		return TypeName(n.From) + " (refined)"
	case *ast.TypeAlias:
		return TypeName(n.Type)
	default:
		switch a.Kind() {
		case ast.KindUndefined:
			return "undefined"
		case ast.KindVoid:
			return "void"
		case ast.KindNever:
			return "never"
		case ast.KindUnknown:
			return "unknown"
		case ast.KindAny:
			return "any"
		case ast.KindString:
			return "string"
		case ast.KindNumber:
			return "number"
		case ast.KindBoolean:
			return "boolean"
		case ast.KindBigInt:
			return "bigint"
		case ast.KindSymbol:
			return "symbol"
		case ast.KindObject:
			return "object"
		}
		return "unknown"
	}
}

package parser

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/mmrzaf/mocker/internal/domain"
)

const tableKeyword = "table"

var columnTypes = map[string]domain.ColumnType{
	"int":     domain.IntType,
	"long":    domain.IntType,
	"uint":    domain.UnsignedIntType,
	"float":   domain.FloatType,
	"double":  domain.FloatType,
	"bool":    domain.BooleanType,
	"boolean": domain.BooleanType,
	"string":  domain.StringType(domain.UnboundedLength),
}

// Parser is a recursive-descent parser for the table configuration language:
//
//	table users {
//		id    uint   #row(),
//		name  string $null(10) #first_name()
//	}
type Parser struct {
	cur *Cursor
}

func New(content string) *Parser {
	return &Parser{cur: NewCursor(content)}
}

func Parse(content string) (*domain.Config, error) {
	return New(content).Parse()
}

func ParseFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	return Parse(string(data))
}

func (p *Parser) Parse() (*domain.Config, error) {
	cfg := &domain.Config{}
	for {
		table, ok, err := p.parseTable()
		if err != nil {
			return nil, err
		}
		if !ok {
			return cfg, nil
		}
		cfg.Tables = append(cfg.Tables, table)
	}
}

// errAt attaches a position to err. Running out of input is reported at
// the end of the text regardless of where the token started.
func (p *Parser) errAt(pos Position, err error) error {
	var syntaxErr *SyntaxError
	if errors.As(err, &syntaxErr) {
		return err
	}
	if errors.Is(err, ErrEndOfInput) {
		return &SyntaxError{Pos: p.cur.Position(), Err: ErrEndOfFile}
	}
	return &SyntaxError{Pos: pos, Err: err}
}

func (p *Parser) skipSpace() {
	for {
		r, err := p.cur.Peek()
		if err != nil || !unicode.IsSpace(r) {
			return
		}
		_, _ = p.cur.Next()
	}
}

// skipSeparators skips whitespace and commas; a comma outside of an
// argument list acts as a line break.
func (p *Parser) skipSeparators() {
	for {
		r, err := p.cur.Peek()
		if err != nil || !(unicode.IsSpace(r) || r == ',') {
			return
		}
		_, _ = p.cur.Next()
	}
}

func (p *Parser) requireSpace() error {
	pos := p.cur.Position()
	r, err := p.cur.Peek()
	if err != nil {
		return p.errAt(pos, err)
	}
	if !unicode.IsSpace(r) {
		return p.errAt(pos, unexpected(string(r), "whitespace"))
	}
	p.skipSpace()
	return nil
}

func isDelimiter(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune("{}(),$#", r)
}

func (p *Parser) parseName() (string, error) {
	pos := p.cur.Position()
	name, err := p.cur.NextUntil(isDelimiter)
	if err != nil {
		return "", p.errAt(pos, err)
	}
	if name == "" {
		r, _ := p.cur.Peek()
		return "", p.errAt(pos, unexpected(string(r), "name"))
	}
	return name, nil
}

func (p *Parser) parseTable() (domain.Table, bool, error) {
	p.skipSeparators()
	if p.cur.AtEnd() {
		return domain.Table{}, false, nil
	}

	pos := p.cur.Position()
	keyword, err := p.cur.NextN(len(tableKeyword))
	if err != nil {
		return domain.Table{}, false, p.errAt(pos, err)
	}
	if keyword != tableKeyword {
		return domain.Table{}, false, p.errAt(pos, unexpected(keyword, `"table"`))
	}
	if err := p.requireSpace(); err != nil {
		return domain.Table{}, false, err
	}

	name, err := p.parseName()
	if err != nil {
		return domain.Table{}, false, err
	}
	p.skipSpace()

	columns, err := p.parseColumns()
	if err != nil {
		return domain.Table{}, false, err
	}
	return domain.Table{Name: name, Columns: columns}, true, nil
}

func (p *Parser) parseColumns() ([]domain.Column, error) {
	pos := p.cur.Position()
	r, err := p.cur.Next()
	if err != nil {
		return nil, p.errAt(pos, err)
	}
	if r != '{' {
		return nil, p.errAt(pos, unexpected(string(r), `"{"`))
	}

	var columns []domain.Column
	for {
		p.skipSeparators()
		pos = p.cur.Position()
		r, err := p.cur.Peek()
		if err != nil {
			return nil, p.errAt(pos, err)
		}
		if r == '}' {
			if len(columns) == 0 {
				return nil, p.errAt(pos, unexpected("}", "column name"))
			}
			_, _ = p.cur.Next()
			return columns, nil
		}

		column, delim, err := p.parseColumn()
		if err != nil {
			return nil, err
		}
		columns = append(columns, column)

		// the delimiter was consumed while reading the column; `}` closes
		// the table, `,` means another column (or a trailing comma) follows
		if delim == '}' {
			return columns, nil
		}
	}
}

func (p *Parser) parseColumn() (domain.Column, rune, error) {
	start := p.cur.Position()
	name, err := p.parseName()
	if err != nil {
		return domain.Column{}, 0, err
	}
	if err := p.requireSpace(); err != nil {
		return domain.Column{}, 0, err
	}

	typ, err := p.parseType()
	if err != nil {
		return domain.Column{}, 0, err
	}

	column := domain.Column{Name: name, Type: typ}
	var provider *domain.ProviderSpec
	for {
		pos := p.cur.Position()
		r, err := p.cur.Next()
		if err != nil {
			return domain.Column{}, 0, p.errAt(pos, err)
		}

		switch {
		case r == '}' || r == ',':
			if provider == nil {
				return domain.Column{}, 0, p.errAt(start, ErrNoProvider)
			}
			column.Provider = *provider
			return column, r, nil
		case unicode.IsSpace(r):
		case r == '$':
			constraint, err := p.parseConstraint(pos)
			if err != nil {
				return domain.Column{}, 0, err
			}
			column.Constraints = append(column.Constraints, constraint)
		case r == '#':
			if provider != nil {
				return domain.Column{}, 0, p.errAt(pos, ErrMultipleProviders)
			}
			name, args, err := p.parseCall()
			if err != nil {
				return domain.Column{}, 0, err
			}
			provider = &domain.ProviderSpec{Name: name, Arguments: args}
		default:
			return domain.Column{}, 0, p.errAt(pos, unexpected(string(r), `"$", "#", "," or "}"`))
		}
	}
}

func (p *Parser) parseType() (domain.ColumnType, error) {
	pos := p.cur.Position()
	token, err := p.cur.NextUntil(func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune("$#,}(", r)
	})
	if err != nil {
		return domain.ColumnType{}, p.errAt(pos, err)
	}

	typ, ok := columnTypes[token]
	if !ok {
		return domain.ColumnType{}, p.errAt(pos, unexpected(token, "Type"))
	}
	if typ.Kind != domain.KindString {
		return typ, nil
	}

	if r, err := p.cur.Peek(); err != nil || r != '(' {
		return typ, nil
	}
	_, _ = p.cur.Next()

	pos = p.cur.Position()
	text, err := p.cur.NextUntil(func(r rune) bool { return r == ')' })
	if err != nil {
		return domain.ColumnType{}, p.errAt(pos, err)
	}
	_, _ = p.cur.Next()

	length, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || length <= 0 {
		return domain.ColumnType{}, p.errAt(pos, unexpected(text, "positive int"))
	}
	return domain.StringType(length), nil
}

func (p *Parser) parseConstraint(pos Position) (domain.Constraint, error) {
	name, args, err := p.parseCall()
	if err != nil {
		return domain.Constraint{}, err
	}
	if err := checkConstraint(name, args); err != nil {
		return domain.Constraint{}, p.errAt(pos, err)
	}
	return domain.Constraint{Name: name, Arguments: args}, nil
}

func checkConstraint(name string, args []domain.Argument) error {
	switch name {
	case domain.ConstraintPrimary:
		if len(args) > 0 {
			return domain.TooManyArguments(len(args), 0)
		}
		return nil
	case domain.ConstraintNull:
		return checkSingleArgument(args, domain.ArgInt, "int")
	case domain.ConstraintLink:
		return checkSingleArgument(args, domain.ArgString, "string")
	default:
		return unexpected(name, "Constraint")
	}
}

func checkSingleArgument(args []domain.Argument, kind domain.ArgumentKind, expected string) error {
	switch {
	case len(args) == 0:
		return domain.TooFewArguments(0, 1)
	case len(args) > 1:
		return domain.TooManyArguments(len(args), 1)
	case args[0].Kind != kind:
		return unexpected(args[0].String(), expected)
	}
	return nil
}

func isIdentRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// parseCall parses `name(arg, ...)` after the leading `$` or `#`.
func (p *Parser) parseCall() (string, []domain.Argument, error) {
	pos := p.cur.Position()
	name, err := p.cur.NextUntil(func(r rune) bool { return !isIdentRune(r) })
	if err != nil {
		return "", nil, p.errAt(pos, err)
	}
	if name == "" {
		r, _ := p.cur.Peek()
		return "", nil, p.errAt(pos, unexpected(string(r), "name"))
	}

	pos = p.cur.Position()
	r, err := p.cur.Next()
	if err != nil {
		return "", nil, p.errAt(pos, err)
	}
	if r != '(' {
		return "", nil, p.errAt(pos, unexpected(string(r), `"("`))
	}

	args, err := p.parseArguments()
	if err != nil {
		return "", nil, err
	}
	return name, args, nil
}

func (p *Parser) parseArguments() ([]domain.Argument, error) {
	p.skipSpace()
	pos := p.cur.Position()
	r, err := p.cur.Peek()
	if err != nil {
		return nil, p.errAt(pos, err)
	}
	if r == ')' {
		_, _ = p.cur.Next()
		return nil, nil
	}

	var args []domain.Argument
	for {
		p.skipSpace()
		arg, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		p.skipSpace()
		pos = p.cur.Position()
		r, err := p.cur.Next()
		if err != nil {
			return nil, p.errAt(pos, err)
		}
		switch r {
		case ')':
			return args, nil
		case ',':
		default:
			return nil, p.errAt(pos, unexpected(string(r), `"," or ")"`))
		}
	}
}

func (p *Parser) parseLiteral() (domain.Argument, error) {
	pos := p.cur.Position()
	r, err := p.cur.Peek()
	if err != nil {
		return domain.Argument{}, p.errAt(pos, err)
	}
	if r == '"' || r == '\'' {
		s, err := p.parseQuoted(r)
		if err != nil {
			return domain.Argument{}, p.errAt(pos, err)
		}
		return domain.StringArg(s), nil
	}

	token, err := p.cur.NextUntil(func(r rune) bool {
		return r == ',' || r == ')' || unicode.IsSpace(r)
	})
	if err != nil {
		return domain.Argument{}, p.errAt(pos, err)
	}
	if token == "" {
		return domain.Argument{}, p.errAt(pos, unexpected(string(r), "literal"))
	}

	arg, err := literalFromToken(token)
	if err != nil {
		return domain.Argument{}, p.errAt(pos, err)
	}
	return arg, nil
}

// parseQuoted reads a quoted string. A backslash takes the next rune
// literally.
func (p *Parser) parseQuoted(quote rune) (string, error) {
	_, _ = p.cur.Next()

	var sb strings.Builder
	for {
		r, err := p.cur.Next()
		if err != nil {
			return "", err
		}
		switch r {
		case quote:
			return sb.String(), nil
		case '\\':
			escaped, err := p.cur.Next()
			if err != nil {
				return "", err
			}
			sb.WriteRune(escaped)
		default:
			sb.WriteRune(r)
		}
	}
}

func literalFromToken(token string) (domain.Argument, error) {
	switch token {
	case "true":
		return domain.BoolArg(true), nil
	case "false":
		return domain.BoolArg(false), nil
	}

	if !looksNumeric(token) {
		return domain.StringArg(token), nil
	}

	if strings.ContainsAny(token, ".eE") {
		f, err := strconv.ParseFloat(token, 64)
		if err != nil {
			return domain.Argument{}, unexpected(token, "float")
		}
		return domain.FloatArg(f), nil
	}

	i, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return domain.Argument{}, unexpected(token, "int")
	}
	return domain.IntArg(i), nil
}

func looksNumeric(token string) bool {
	s := token
	if s[0] == '-' || s[0] == '+' {
		s = s[1:]
	}
	if s != "" && s[0] == '.' {
		s = s[1:]
	}
	return s != "" && s[0] >= '0' && s[0] <= '9'
}

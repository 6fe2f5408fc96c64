package restore

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// Statement is one SQL statement of a plain-format dump. COPY ... FROM stdin
// statements carry their data rows in CopyData.
type Statement struct {
	SQL      string
	CopyData []byte
	Line     int // line the statement starts on
}

// IsCopy reports whether the statement streams rows from the dump.
func (s Statement) IsCopy() bool {
	return s.CopyData != nil
}

var (
	dollarTagRe   = regexp.MustCompile(`^\$([A-Za-z_][A-Za-z0-9_]*)?\$`)
	copyFromStdin = regexp.MustCompile(`(?is)^COPY\s.+\sFROM\s+stdin\b`)

	ErrUnterminatedCopy = errors.New("unterminated COPY block")
)

// Splitter reads a plain SQL dump and yields its statements one by one.
// It understands quoted strings, quoted identifiers, dollar quoting, comments
// and the COPY data blocks written by pg_dump. psql meta-commands such as
// \connect are skipped.
type Splitter struct {
	r          *bufio.Reader
	lineNo     int
	pending    string
	hasPending bool

	buf        strings.Builder
	startLine  int
	inSingle   bool
	inDouble   bool
	dollarTag  string
	blockDepth int
}

// NewSplitter returns a Splitter reading from r.
func NewSplitter(r io.Reader) *Splitter {
	return &Splitter{r: bufio.NewReaderSize(r, 64*1024)}
}

// Next returns the next statement, or io.EOF when the dump is exhausted.
func (s *Splitter) Next() (Statement, error) {
	for {
		line, err := s.nextLine()
		if errors.Is(err, io.EOF) {
			if s.inQuote() {
				return Statement{}, fmt.Errorf("line %d: unterminated quoted text at end of dump", s.startLine)
			}
			if sql := strings.TrimSpace(s.buf.String()); sql != "" {
				s.buf.Reset()
				return Statement{SQL: sql, Line: s.startLine}, nil
			}
			return Statement{}, io.EOF
		}
		if err != nil {
			return Statement{}, err
		}

		if s.atStatementStart() && strings.HasPrefix(strings.TrimSpace(line), `\`) {
			continue
		}

		sql, rest, done := s.consume(line)
		if !done {
			continue
		}
		if strings.TrimSpace(rest) != "" {
			s.pending, s.hasPending = rest, true
		}
		if sql == "" {
			continue
		}

		stmt := Statement{SQL: sql, Line: s.startLine}
		if copyFromStdin.MatchString(sql) {
			data, err := s.readCopyData()
			if err != nil {
				return Statement{}, fmt.Errorf("line %d: %w", stmt.Line, err)
			}
			stmt.CopyData = data
		}
		return stmt, nil
	}
}

func (s *Splitter) nextLine() (string, error) {
	if s.hasPending {
		s.hasPending = false
		return s.pending, nil
	}
	line, err := s.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	s.lineNo++
	return strings.TrimRight(line, "\r\n"), nil
}

func (s *Splitter) atStatementStart() bool {
	return !s.inQuote() && strings.TrimSpace(s.buf.String()) == ""
}

func (s *Splitter) inQuote() bool {
	return s.inSingle || s.inDouble || s.dollarTag != "" || s.blockDepth > 0
}

// consume feeds one line into the statement buffer. When a terminating
// semicolon is found it returns the statement and the rest of the line.
func (s *Splitter) consume(line string) (sql, rest string, done bool) {
	if s.atStatementStart() {
		s.startLine = s.lineNo
	}
	for i := 0; i < len(line); {
		c := line[i]
		switch {
		case s.blockDepth > 0:
			switch {
			case strings.HasPrefix(line[i:], "*/"):
				s.blockDepth--
				i += 2
			case strings.HasPrefix(line[i:], "/*"):
				s.blockDepth++
				i += 2
			default:
				i++
			}
			continue

		case s.dollarTag != "":
			if strings.HasPrefix(line[i:], s.dollarTag) {
				s.buf.WriteString(s.dollarTag)
				i += len(s.dollarTag)
				s.dollarTag = ""
				continue
			}

		case s.inSingle:
			if c == '\'' {
				if i+1 < len(line) && line[i+1] == '\'' {
					s.buf.WriteString("''")
					i += 2
					continue
				}
				s.inSingle = false
			}

		case s.inDouble:
			if c == '"' {
				s.inDouble = false
			}

		default:
			switch {
			case strings.HasPrefix(line[i:], "--"):
				i = len(line)
				continue
			case strings.HasPrefix(line[i:], "/*"):
				s.blockDepth++
				i += 2
				continue
			case c == '\'':
				s.inSingle = true
			case c == '"':
				s.inDouble = true
			case c == '$' && (i == 0 || !isIdentByte(line[i-1])):
				if tag := dollarTagRe.FindString(line[i:]); tag != "" {
					s.dollarTag = tag
					s.buf.WriteString(tag)
					i += len(tag)
					continue
				}
			case c == ';':
				sql = strings.TrimSpace(s.buf.String())
				s.buf.Reset()
				return sql, line[i+1:], true
			}
		}
		s.buf.WriteByte(c)
		i++
	}
	s.buf.WriteByte('\n')
	return "", "", false
}

// readCopyData collects COPY rows up to the \. terminator.
func (s *Splitter) readCopyData() ([]byte, error) {
	var data strings.Builder
	for {
		line, err := s.nextLine()
		if errors.Is(err, io.EOF) {
			return nil, ErrUnterminatedCopy
		}
		if err != nil {
			return nil, err
		}
		if line == `\.` {
			out := make([]byte, 0, data.Len())
			return append(out, data.String()...), nil
		}
		data.WriteString(line)
		data.WriteByte('\n')
	}
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

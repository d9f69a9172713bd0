package linter

import (
	"bufio"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pycoding/pycoding/internal/domain"
	"github.com/pycoding/pycoding/internal/domain/diagnostics"
)

// textLineRe matches `path:row:col: CODE message`. The column and code are
// optional since pyflakes omits codes and older versions omit columns.
var textLineRe = regexp.MustCompile(`^(.+?):(\d+):(?:(\d+):)?\s+(?:([A-Z]+\d+)\s+)?(.*)$`)

// ParseText parses the flake8/pycodestyle/pyflakes text format.
// Lines and columns are converted to 0-based.
func ParseText(linter string, output []byte) []domain.Diagnostic {
	out := []domain.Diagnostic{}
	sc := bufio.NewScanner(strings.NewReader(string(output)))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		m := textLineRe.FindStringSubmatch(sc.Text())
		if m == nil {
			continue
		}
		line, _ := strconv.Atoi(m[2])
		col := 0
		if m[3] != "" {
			c, _ := strconv.Atoi(m[3])
			col = diagnostics.FromOneBased(c)
		}
		code, msg := m[4], strings.TrimSpace(m[5])
		if code == "" && linter == "pyflakes" && isSyntaxMessage(msg) {
			code = "E9"
		}
		out = append(out, domain.Diagnostic{
			Severity: diagnostics.SeverityForCode(code),
			Line:     diagnostics.FromOneBased(line),
			Column:   col,
			Message:  formatMessage(code, msg),
			Code:     code,
			Source:   linter,
		})
	}
	return out
}

func isSyntaxMessage(msg string) bool {
	lower := strings.ToLower(msg)
	return strings.Contains(lower, "syntax") || strings.Contains(lower, "unexpected") ||
		strings.Contains(lower, "indent")
}

func formatMessage(code, msg string) string {
	if code == "" {
		return msg
	}
	return code + " " + msg
}

type pylintMessage struct {
	Type      string `json:"type"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	Symbol    string `json:"symbol"`
	Message   string `json:"message"`
	MessageID string `json:"message-id"`
}

// ParsePylintJSON parses `pylint --output-format=json`. Pylint columns are
// already 0-based.
func ParsePylintJSON(output []byte) ([]domain.Diagnostic, error) {
	if len(strings.TrimSpace(string(output))) == 0 {
		return []domain.Diagnostic{}, nil
	}
	var msgs []pylintMessage
	if err := json.Unmarshal(output, &msgs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseOutput, err)
	}
	out := make([]domain.Diagnostic, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, domain.Diagnostic{
			Severity: diagnostics.SeverityForPylintType(m.Type),
			Line:     diagnostics.FromOneBased(m.Line),
			Column:   max(m.Column, 0),
			Message:  fmt.Sprintf("[%s] %s", m.MessageID, m.Message),
			Code:     m.MessageID,
			Source:   "pylint",
		})
	}
	return out, nil
}

type ruffMessage struct {
	Code     *string `json:"code"`
	Message  string  `json:"message"`
	Filename string  `json:"filename"`
	Location struct {
		Row    int `json:"row"`
		Column int `json:"column"`
	} `json:"location"`
}

// ParseRuffJSON parses `ruff check --output-format=json`. A null code marks
// a syntax error.
func ParseRuffJSON(output []byte) ([]domain.Diagnostic, error) {
	if len(strings.TrimSpace(string(output))) == 0 {
		return []domain.Diagnostic{}, nil
	}
	var msgs []ruffMessage
	if err := json.Unmarshal(output, &msgs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParseOutput, err)
	}
	out := make([]domain.Diagnostic, 0, len(msgs))
	for _, m := range msgs {
		d := domain.Diagnostic{
			Line:    diagnostics.FromOneBased(m.Location.Row),
			Column:  diagnostics.FromOneBased(m.Location.Column),
			Message: m.Message,
			Source:  "ruff",
		}
		if m.Code == nil || *m.Code == "" {
			d.Severity = domain.SeverityFatal
		} else {
			d.Code = *m.Code
			d.Severity = diagnostics.SeverityForCode(d.Code)
			d.Message = formatMessage(d.Code, m.Message)
		}
		out = append(out, d)
	}
	return out, nil
}

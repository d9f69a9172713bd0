package diagnostics

import (
	"strings"

	"github.com/pycoding/pycoding/internal/domain"
)

var (
	fatalPrefixes    = []string{"E999", "E901", "E902", "E113", "F82"}
	refactorPrefixes = []string{"VNE", "W6", "E800"}
	warningPrefixes  = []string{"F402", "F403", "F405", "E722", "E112", "F812", "F9", "F83"}
)

// SeverityForCode maps a flake8/pycodestyle/pyflakes code to a severity.
func SeverityForCode(code string) domain.Severity {
	code = strings.TrimSpace(code)
	if s := domain.Severity(code); s.Valid() {
		return s
	}
	switch {
	case hasAnyPrefix(code, fatalPrefixes):
		return domain.SeverityFatal
	case hasAnyPrefix(code, refactorPrefixes):
		return domain.SeverityRefactor
	case strings.HasPrefix(code, "E"):
		return domain.SeverityError
	case strings.HasPrefix(code, "W"), hasAnyPrefix(code, warningPrefixes):
		return domain.SeverityWarning
	default:
		return domain.SeverityConvention
	}
}

// SeverityForPylintType maps pylint's message type to a severity.
// "info" and unknown types are conventions.
func SeverityForPylintType(t string) domain.Severity {
	if s := domain.Severity(strings.ToLower(strings.TrimSpace(t))); s.Valid() {
		return s
	}
	return domain.SeverityConvention
}

// FromOneBased converts a linter's 1-based line number to a 0-based one.
func FromOneBased(line int) int {
	return max(line-1, 0)
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

package argtree

import (
	"errors"
	"log/slog"
	"math"
	"strconv"
	"strings"
)

// ParseBoolean parses the numeric boolean spelling of the argument language.
// True is "1" or "+1", false is "0", "+0" or "-0".
func ParseBoolean(s string) (bool, error) {
	switch s {
	case "1", "+1":
		return true, nil
	case "0", "+0", "-0":
		return false, nil
	case "":
		return false, ErrUnexpectedToken.With(slog.String("expected", "boolean"))
	default:
		return false, ErrMalformedBoolean.With(slog.String("token", s))
	}
}

// ParseFloat parses a real number.
//
// Accepted spellings are "nan", "inf" and "infinity" in any letter case with
// an optional sign, and decimal numbers with at least one leading digit, an
// optional fraction and an optional exponent. ".5" and "1e" are rejected,
// "3." is accepted.
func ParseFloat(s string) (float64, error) {
	if s == "" {
		return 0, ErrUnexpectedToken.With(slog.String("expected", "number"))
	}

	body, sign := s, 1.0
	switch body[0] {
	case '-':
		sign = -1

		fallthrough
	case '+':
		body = body[1:]
	}

	switch strings.ToLower(body) {
	case "nan":
		return math.NaN(), nil
	case "inf", "infinity":
		return math.Inf(int(sign)), nil
	}

	if !isDecimal(body) {
		return 0, ErrMalformedNumber.With(slog.String("token", s))
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) && math.IsInf(f, 0) {
			return 0, ErrNumericOverflow.With(slog.String("token", s))
		}

		if !errors.Is(err, strconv.ErrRange) {
			return 0, ErrMalformedNumber.Wrap(err).With(slog.String("token", s))
		}
	}

	return f, nil
}

// ParseUnsigned parses an optionally "+"-prefixed run of decimal digits that
// must fit in bitSize bits.
func ParseUnsigned(s string, bitSize int) (uint64, error) {
	if s == "" {
		return 0, ErrUnexpectedToken.With(slog.String("expected", "integer"))
	}

	digits := strings.TrimPrefix(s, "+")
	if !isDigits(digits) {
		return 0, ErrMalformedNumber.With(slog.String("token", s))
	}

	n, err := strconv.ParseUint(digits, 10, bitSize)
	if err != nil {
		return 0, ErrNumericOverflow.With(
			slog.String("token", s),
			slog.Int("bits", bitSize),
		)
	}

	return n, nil
}

// ParseSigned parses an optionally signed run of decimal digits that must fit
// in bitSize bits.
func ParseSigned(s string, bitSize int) (int64, error) {
	if s == "" {
		return 0, ErrUnexpectedToken.With(slog.String("expected", "integer"))
	}

	digits := s
	if digits[0] == '+' || digits[0] == '-' {
		digits = digits[1:]
	}

	if !isDigits(digits) {
		return 0, ErrMalformedNumber.With(slog.String("token", s))
	}

	n, err := strconv.ParseInt(s, 10, bitSize)
	if err != nil {
		return 0, ErrNumericOverflow.With(
			slog.String("token", s),
			slog.Int("bits", bitSize),
		)
	}

	return n, nil
}

// ParsePath parses a file path from the beginning of s and returns it with
// the number of bytes consumed.
//
// A path delimited by single or double quotes is returned without its
// delimiters and may contain separators. Otherwise the path is the maximal
// run of non-separator bytes, which may be empty.
func ParsePath(s string) (string, int, error) {
	if s == "" {
		return "", 0, nil
	}

	if q := s[0]; q == '\'' || q == '"' {
		end := strings.IndexByte(s[1:], q)
		if end < 0 {
			return "", 0, ErrUnterminatedQuotedPath.With(
				slog.String("delimiter", string(q)),
			)
		}

		return s[1 : end+1], end + 2, nil
	}

	n := tokenLen(s)

	return s[:n], n, nil
}

// isDecimal reports whether s is digits with an optional fraction and an
// optional exponent.
func isDecimal(s string) bool {
	i := skipDigits(s, 0)
	if i == 0 {
		return false
	}

	if i < len(s) && s[i] == '.' {
		i = skipDigits(s, i+1)
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}

		j := skipDigits(s, i)
		if j == i {
			return false
		}

		i = j
	}

	return i == len(s)
}

func isDigits(s string) bool {
	return s != "" && skipDigits(s, 0) == len(s)
}

func skipDigits(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}

	return i
}

// Value formatting, the inverse of the parsers above.

func formatBoolean(b bool) string {
	if b {
		return "1"
	}

	return "0"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatInt[T ~int32 | ~int64](n T) string {
	return strconv.FormatInt(int64(n), 10)
}

func formatUint[T ~uint32 | ~uint64](n T) string {
	return strconv.FormatUint(uint64(n), 10)
}

// formatPath quotes p when it would not otherwise read back as one path.
func formatPath(p string) string {
	if !strings.ContainsAny(p, " \t") && !strings.HasPrefix(p, "'") &&
		!strings.HasPrefix(p, `"`) {
		return p
	}

	if strings.ContainsRune(p, '"') {
		return "'" + p + "'"
	}

	return `"` + p + `"`
}

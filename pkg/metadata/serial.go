package metadata

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
)

const DefaultSerialPrefix string = "AST"

type SerialNumber struct {
	prefix string
	suffix string
}

// NewSerialNumber builds a serial for an asset registered without one. The
// prefix is taken from the category name, the suffix from a random UUID.
func NewSerialNumber(categoryName string) SerialNumber {
	return newSerialNumber(categoryName, uuid.New())
}

func newSerialNumber(categoryName string, id uuid.UUID) SerialNumber {
	return SerialNumber{
		prefix: serialPrefix(categoryName),
		suffix: strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8]),
	}
}

func (s SerialNumber) String() string {
	return s.prefix + "-" + s.suffix
}

func serialPrefix(categoryName string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(categoryName) {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			continue
		}
		b.WriteRune(r)
		if b.Len() == 3 {
			break
		}
	}
	if b.Len() == 0 {
		return DefaultSerialPrefix
	}
	return b.String()
}

// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package hdkey

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// DefaultPath is the BIP44 path of the first external address of the first
// Bitcoin account, which BitClout uses for its account key.
const DefaultPath = "m/44'/0'/0'/0/0"

// ErrInvalidPath is returned for malformed derivation paths.
var ErrInvalidPath = errors.New("invalid derivation path")

// Path is a sequence of child indices below the master key.
type Path []uint32

// ParsePath parses a path such as "m/44'/0'/0'/0/0". The hardened marker may
// be an apostrophe, "h" or "H".
func ParsePath(s string) (Path, error) {
	elems := strings.Split(strings.TrimSpace(s), "/")
	if strings.TrimSpace(elems[0]) != "m" {
		return nil, fmt.Errorf("%w: %q must start with m", ErrInvalidPath, s)
	}

	path := make(Path, 0, len(elems)-1)
	for _, elem := range elems[1:] {
		elem = strings.TrimSpace(elem)

		var offset uint32
		if trimmed := strings.TrimRight(elem, "'hH"); len(trimmed) == len(elem)-1 {
			offset = HardenedKeyStart
			elem = trimmed
		}

		if elem == "" {
			return nil, fmt.Errorf("%w: empty element in %q", ErrInvalidPath, s)
		}
		v, err := strconv.ParseUint(elem, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: element %q: %v", ErrInvalidPath, elem, err)
		}
		if v >= HardenedKeyStart {
			return nil, fmt.Errorf("%w: element %q out of range", ErrInvalidPath, elem)
		}

		path = append(path, uint32(v)+offset)
	}

	return path, nil
}

// MustParsePath is like ParsePath but panics on error. It is meant for
// package level constants.
func MustParsePath(s string) Path {
	p, err := ParsePath(s)
	if err != nil {
		panic(err)
	}
	return p
}

func (p Path) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, index := range p {
		b.WriteString("/")
		if index >= HardenedKeyStart {
			b.WriteString(strconv.FormatUint(uint64(index-HardenedKeyStart), 10))
			b.WriteString("'")
			continue
		}
		b.WriteString(strconv.FormatUint(uint64(index), 10))
	}
	return b.String()
}

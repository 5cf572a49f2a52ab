package ahi

import (
	"errors"
	"strings"
)

var errBadMetadata = errors.New("ahi: metadata pairs must look like key=value")

// Pair is a single metadata entry.
type Pair struct {
	Key, Value string
}

// Metadata is the free-form key/value list attached to an image. The core
// never interprets it.
type Metadata []Pair

func (md Metadata) Clone() Metadata {
	if md == nil {
		return nil
	}
	return append(Metadata(nil), md...)
}

func (md Metadata) Equal(o Metadata) bool {
	if len(md) != len(o) {
		return false
	}
	for i := range md {
		if md[i] != o[i] {
			return false
		}
	}
	return true
}

// String formats md as "k=v, k2=v2", the form ParseMetadata accepts.
func (md Metadata) String() string {
	parts := make([]string, len(md))
	for i, p := range md {
		parts[i] = p.Key + "=" + p.Value
	}
	return strings.Join(parts, ", ")
}

// ParseMetadata parses comma separated key=value pairs. Surrounding
// whitespace is trimmed and an empty string yields no metadata.
func ParseMetadata(s string) (Metadata, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var md Metadata
	for _, part := range strings.Split(s, ",") {
		k, v, ok := strings.Cut(part, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, errBadMetadata
		}
		md = append(md, Pair{Key: k, Value: strings.TrimSpace(v)})
	}
	return md, nil
}

package tag

import (
	"fmt"
	"strconv"
	"strings"
)

// GetPath navigates a tag tree using a dotted path with bracketed list
// indices, e.g. "a.b[0].c". An empty path returns root.
//
// Keys containing '.', '[' or ']' are not addressable this way; the
// path syntax exists for tooling and diagnostics, not as a general
// query language.
func GetPath(root Tag, path string) (Tag, error) {
	cur := root
	for _, seg := range splitPath(path) {
		switch s := seg.(type) {
		case string:
			c, ok := cur.(*Compound)
			if !ok {
				return nil, fmt.Errorf("%w: %q into %s", ErrPath, s, cur.TagType())
			}
			v, ok := c.Get(s)
			if !ok {
				return nil, fmt.Errorf("%w: no key %q", ErrPath, s)
			}
			cur = v
		case int:
			l, ok := cur.(*List)
			if !ok {
				return nil, fmt.Errorf("%w: [%d] into %s", ErrPath, s, cur.TagType())
			}
			v, err := l.At(s)
			if err != nil {
				return nil, fmt.Errorf("%w: [%d]: %v", ErrPath, s, err)
			}
			cur = v
		}
	}
	return cur, nil
}

// splitPath breaks "a.b[0]" into segments: "a", "b", 0. Malformed
// index syntax falls back to a literal string segment, which then fails
// lookup with a path error.
func splitPath(path string) []any {
	var segs []any
	for _, part := range strings.Split(path, ".") {
		if part == "" {
			continue
		}
		for {
			open := strings.IndexByte(part, '[')
			if open < 0 {
				if part != "" {
					segs = append(segs, part)
				}
				break
			}
			if open > 0 {
				segs = append(segs, part[:open])
			}
			close := strings.IndexByte(part[open:], ']')
			if close < 0 {
				segs = append(segs, part[open:])
				break
			}
			idxStr := part[open+1 : open+close]
			idx, err := strconv.Atoi(idxStr)
			if err != nil {
				segs = append(segs, part[open:open+close+1])
			} else {
				segs = append(segs, idx)
			}
			part = part[open+close+1:]
		}
	}
	return segs
}

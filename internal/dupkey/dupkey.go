// Package dupkey finds object members declared twice in a JSON document.
// Decoders keep the last occurrence silently, so catalog sources are
// checked before they are decoded.
package dupkey

import (
	"bytes"
	"errors"
	"io"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Duplicate is a repeated object member.
type Duplicate struct {
	// Path is the JSON Pointer of the repeated member.
	Path string
	Key  string
}

type frame struct {
	object    bool
	keys      map[string]struct{}
	expectKey bool
	key       string
	index     int
}

// Find reports up to limit duplicates in data; limit <= 0 means no limit.
func Find(data []byte, limit int) ([]Duplicate, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var out []Duplicate
	var stack []frame
	done := func() {
		if n := len(stack); n > 0 {
			top := &stack[n-1]
			if top.object {
				top.expectKey = true
			} else {
				top.index++
			}
		}
	}
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{':
				stack = append(stack, frame{object: true, keys: map[string]struct{}{}, expectKey: true})
			case '[':
				stack = append(stack, frame{})
			default:
				if n := len(stack); n > 0 {
					stack = stack[:n-1]
				}
				done()
			}
		case string:
			if n := len(stack); n > 0 && stack[n-1].object && stack[n-1].expectKey {
				top := &stack[n-1]
				if _, seen := top.keys[v]; seen {
					out = append(out, Duplicate{Path: pointer(stack[:n-1]) + "/" + escape(v), Key: v})
					if limit > 0 && len(out) >= limit {
						return out, nil
					}
				}
				top.keys[v] = struct{}{}
				top.key = v
				top.expectKey = false
				continue
			}
			done()
		default:
			done()
		}
	}
}

func pointer(stack []frame) string {
	var b strings.Builder
	for _, f := range stack {
		b.WriteByte('/')
		if f.object {
			b.WriteString(escape(f.key))
		} else {
			b.WriteString(strconv.Itoa(f.index))
		}
	}
	return b.String()
}

func escape(key string) string {
	return strings.NewReplacer("~", "~0", "/", "~1").Replace(key)
}

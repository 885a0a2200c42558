package form

import (
	"fmt"
	"strconv"
	"strings"
)

// GetPath resolves a dotted path ("address.city", "tags.0") in root.
func GetPath(root map[string]any, path string) (any, bool) {
	if root == nil || path == "" {
		return nil, false
	}
	current := any(root)
	for _, segment := range strings.Split(path, ".") {
		switch node := current.(type) {
		case map[string]any:
			next, ok := node[segment]
			if !ok {
				return nil, false
			}
			current = next
		case []any:
			idx, err := strconv.Atoi(segment)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			current = node[idx]
		default:
			return nil, false
		}
	}
	return current, true
}

// SetPath writes value at a dotted path, creating intermediate maps and
// slices. Numeric segments address slice elements.
func SetPath(root map[string]any, path string, value any) error {
	if root == nil {
		return fmt.Errorf("form: root map is nil")
	}
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("form: path is empty")
	}
	_, err := setSegment(root, strings.Split(path, "."), path, value)
	return err
}

// setSegment writes value below node and returns the possibly grown node so
// callers can store slices that were reallocated.
func setSegment(node any, segments []string, path string, value any) (any, error) {
	segment := segments[0]
	last := len(segments) == 1

	switch typed := node.(type) {
	case map[string]any:
		if last {
			typed[segment] = value
			return typed, nil
		}
		child, err := setSegment(containerFor(typed[segment], segments[1]), segments[1:], path, value)
		if err != nil {
			return nil, err
		}
		typed[segment] = child
		return typed, nil

	case []any:
		idx, err := strconv.Atoi(segment)
		if err != nil {
			return nil, fmt.Errorf("form: expected numeric segment in %q, got %q", path, segment)
		}
		if idx < 0 {
			return nil, fmt.Errorf("form: negative index in path %q", path)
		}
		if len(typed) <= idx {
			typed = append(typed, make([]any, idx+1-len(typed))...)
		}
		if last {
			typed[idx] = value
			return typed, nil
		}
		child, err := setSegment(containerFor(typed[idx], segments[1]), segments[1:], path, value)
		if err != nil {
			return nil, err
		}
		typed[idx] = child
		return typed, nil

	default:
		return nil, fmt.Errorf("form: unexpected container for segment %q in %q", segment, path)
	}
}

// containerFor returns existing when it can hold next, or a fresh container
// matching the kind of segment next addresses.
func containerFor(existing any, next string) any {
	index := isIndex(next)
	switch existing.(type) {
	case []any:
		if index {
			return existing
		}
	case map[string]any:
		if !index {
			return existing
		}
	}
	if index {
		return []any{}
	}
	return make(map[string]any)
}

func isIndex(segment string) bool {
	_, err := strconv.Atoi(segment)
	return err == nil
}

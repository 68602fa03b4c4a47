package bind

import (
	"fmt"
	"strings"
)

// Path is a pre-parsed dotted property path, resolved from the root object.
type Path []string

// ParsePath splits s on dots. Segments are trimmed and must be non-empty and
// free of braces, which delimit template markers.
func ParsePath(s string) (Path, error) {
	if strings.TrimSpace(s) == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	segments := strings.Split(s, ".")
	p := make(Path, len(segments))
	for i, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			return nil, fmt.Errorf("%w: empty segment %d in %q", ErrInvalidPath, i, s)
		}
		if strings.ContainsAny(seg, "{}") {
			return nil, fmt.Errorf("%w: brace in segment %d of %q", ErrInvalidPath, i, s)
		}
		p[i] = seg
	}
	return p, nil
}

func (p Path) String() string {
	return strings.Join(p, ".")
}

// Parent is every segment but the last. The parent of a single segment path
// is empty, meaning the root.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// resolve walks p from root. Each reactive property passed through is handed to
// visit before its value is read, so callers can collect registrations.
func resolve(root *Object, p Path, visit func(*Property)) (any, error) {
	var cur any = root
	for i, seg := range p {
		switch c := cur.(type) {
		case *Object:
			if prop, ok := c.props[seg]; ok {
				if visit != nil {
					visit(prop)
				}
				cur = prop.value
			} else {
				cur = c.extra[seg]
			}
		case map[string]any:
			cur = c[seg]
		case nil:
			return nil, &PathResolutionError{Path: p, Segment: i, Reason: "parent is undefined"}
		default:
			return nil, &PathResolutionError{Path: p, Segment: i, Reason: fmt.Sprintf("parent is %T, not an object", c)}
		}
	}
	return cur, nil
}

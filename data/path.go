package data

import "strings"

// CleanRelativePath normalizes a container-relative path: separators become
// forward slashes, leading and trailing slashes are stripped and zero-length
// segments are removed. Returns ErrInvalidPath when nothing remains, so an
// empty or all-slash path can never resolve to a real entry. A ".." segment
// is rejected outright; container paths address downward only.
func CleanRelativePath(path string) (string, error) {
	path = strings.ReplaceAll(path, "\\", "/")

	parts := strings.Split(path, "/")
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" || part == "." {
			continue
		}
		if part == ".." {
			return "", ErrInvalidPath
		}
		segments = append(segments, part)
	}

	if len(segments) == 0 {
		return "", ErrInvalidPath
	}

	return strings.Join(segments, "/"), nil
}

// ParentPath returns the parent of a cleaned relative path.
// The root parent is the empty string.
func ParentPath(path string) string {
	idx := strings.LastIndexByte(path, '/')
	if idx < 0 {
		return ""
	}
	return path[:idx]
}

// BaseName returns the last segment of a cleaned relative path.
func BaseName(path string) string {
	idx := strings.LastIndexByte(path, '/')
	if idx < 0 {
		return path
	}
	return path[idx+1:]
}

package request

import "regexp"

// filesystemPrefix matches the prefixes that mark a path as a filesystem
// reference:
//   - "./", "../" and their backslash forms
//   - a leading '/' or '\'
//   - a drive letter followed by a separator, e.g. "C:\" or "c:/"
var filesystemPrefix = regexp.MustCompile(`^(?:\.{1,2}[/\\]|[/\\]|[A-Za-z]:[/\\])`)

// IsModule reports whether path is a module reference, i.e. a name resolved
// by package lookup rather than directly on the filesystem.
//
// Dot-prefixed names that are not relative paths, such as ".scripted" or
// "..../doh", are module references. The empty path is not a reference of
// either kind and reports false.
func IsModule(path string) bool {
	return path != "" && !filesystemPrefix.MatchString(path)
}

package dropbox

import "strings"

// NormalizePath makes a remote path absolute by prepending "/" when it is
// missing. Applying it more than once has no further effect.
func NormalizePath(p string) string {
	if strings.HasPrefix(p, "/") {
		return p
	}

	return "/" + p
}

// JoinPath joins a remote folder and a file name with exactly one separator
// and returns the normalized result. An empty or root folder yields "/name".
func JoinPath(folder, name string) string {
	folder = strings.TrimRight(folder, "/")
	name = strings.TrimLeft(name, "/")

	return NormalizePath(folder + "/" + name)
}

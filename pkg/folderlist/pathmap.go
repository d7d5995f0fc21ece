package folderlist

import (
	"regexp"
	"strings"
)

// rootedVolume matches a source path anchored at a volume root, e.g. `D:\Music`.
var rootedVolume = regexp.MustCompile(`^[A-Za-z]:\\`)

// 🗺️ MapDestination derives the destination path for a source folder. A
// volume-rooted source keeps its structure below the volume root: `D:\Music\Jazz`
// under `Z:\mirror` becomes `Z:\mirror\Music\Jazz` regardless of the source
// drive letter. A non-rooted source is joined as-is after stripping a single
// leading separator. `..` segments are not normalized; callers supply
// absolute, already-resolved paths.
func MapDestination(sourcePath, destRoot string) string {
	rest := sourcePath
	if rootedVolume.MatchString(sourcePath) {
		rest = sourcePath[3:]
	} else if len(rest) > 0 && (rest[0] == '\\' || rest[0] == '/') {
		rest = rest[1:]
	}
	return joinBackslash(destRoot, rest)
}

// joinBackslash joins with the copy tool's native separator. filepath.Join is
// deliberately avoided: on non-Windows hosts it would rewrite the separators
// the external tool expects.
func joinBackslash(root, rest string) string {
	root = strings.TrimRight(root, `\`)
	rest = strings.TrimLeft(rest, `\`)
	if rest == "" {
		return root
	}
	return root + `\` + rest
}

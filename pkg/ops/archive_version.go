package ops

import "regexp"

// Archive names follow vpm.<repo>.<plugin>-<major>.<minor>.<patch>.zip.
var versionSuffix = regexp.MustCompile(`-(\d+\.\d+\.\d+)\.zip$`)

// ExtractVersion pulls the dotted version out of an archive filename. The
// match is purely syntactic, anchored at the end of the name; no
// normalization of the components is performed.
func ExtractVersion(filename string) (string, bool) {
	m := versionSuffix.FindStringSubmatch(filename)
	if m == nil {
		return "", false
	}

	return m[1], true
}

package naming

import (
	"path/filepath"
	"strings"
)

// OutputExt is the extension of every produced file.
const OutputExt = ".mp4"

// fallbackStem names output for sources whose name has no usable stem.
const fallbackStem = "video"

// SuggestedName returns the source base name with its extension replaced
// by .mp4. "00012.MTS" becomes "00012.mp4".
func SuggestedName(source string) string {
	base := filepath.Base(strings.TrimSpace(source))
	if base == "." || base == string(filepath.Separator) {
		base = ""
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.TrimSpace(stem)
	if stem == "" {
		stem = fallbackStem
	}
	return stem + OutputExt
}

// GetOutputPath joins outputDir and fileName. An empty outputDir means the
// current directory.
func GetOutputPath(outputDir, fileName string) string {
	if outputDir == "" {
		outputDir = "."
	}
	return filepath.Join(outputDir, filepath.Base(fileName))
}

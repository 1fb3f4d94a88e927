package util

import (
	"os"
	"path"
)

func VerifyExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}

// LocateFile searches the given directories for a file when it does not
// exist at its given path, returning the first hit.
func LocateFile(filename string, dirs []string) (string, bool) {
	if VerifyExists(filename) {
		return filename, true
	}
	for _, dir := range dirs {
		candidate := path.Join(dir, filename)
		if VerifyExists(candidate) {
			return candidate, true
		}
	}
	return filename, false
}

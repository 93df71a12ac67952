package build

import "os"

// writeFile writes content to path, truncating any existing file.
func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

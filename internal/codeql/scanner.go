package codeql

import (
	"bufio"
	"io"
	"os"
)

// scanTable streams raw lines (terminators included) from a table file into
// visit. Returning false from visit stops the scan early. Open and read
// failures come back as *AccessError carrying label and path; the file
// handle is released on every exit path.
func scanTable(path, label string, visit func(raw string) bool) error {
	f, err := os.Open(path)
	if err != nil {
		return newAccessError(err, label, path)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	for {
		line, err := r.ReadString('\n')
		if line != "" {
			if !visit(line) {
				return nil
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return newAccessError(err, label, path)
		}
	}
}

// Package symbols loads dial alphabets from files.
package symbols

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Load reads one symbol per line from the provided file path. Blank lines
// are skipped; lines starting with '#' are comments.
func Load(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only symbol file.
			_ = cerr
		}
	}()

	var symbols []string
	scanner := bufio.NewScanner(file)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if !Valid(text) {
			return nil, fmt.Errorf("%s:%d: symbol %q contains whitespace", path, line, text)
		}
		symbols = append(symbols, text)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("symbol file is empty")
	}
	return symbols, nil
}

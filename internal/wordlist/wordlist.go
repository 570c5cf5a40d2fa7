// Package wordlist provides the common-word lists used for fuzzy
// correction candidates.
package wordlist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	_ "embed"
)

//go:embed words_en.txt
var embeddedEnglish string

// Default returns the embedded English common-word list, lowercased and
// deduplicated.
func Default() []string {
	words, err := parse(strings.NewReader(embeddedEnglish))
	if err != nil {
		// The embedded list is fixed at build time; a scan error here
		// would be a packaging bug.
		panic(err)
	}
	return words
}

// Load reads one word per line from the provided file path, lowercases
// entries, drops blanks and duplicates, and keeps the file order.
func Load(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	words, err := parse(file)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}

func parse(r io.Reader) ([]string, error) {
	var words []string
	seen := map[string]struct{}{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if word == "" {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

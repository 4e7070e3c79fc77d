package provider

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadQuotes reads a fortune-style quote file: quotes separated by lines
// containing only "%". Surrounding whitespace is trimmed per quote and empty
// quotes are dropped.
func LoadQuotes(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open quote file: %w", err)
	}
	defer f.Close()

	var (
		quotes  []string
		current strings.Builder
	)

	flush := func() {
		quote := strings.TrimSpace(current.String())
		current.Reset()
		if quote != "" {
			quotes = append(quotes, quote)
		}
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "%" {
			flush()
			continue
		}
		if current.Len() > 0 {
			current.WriteByte('\n')
		}
		current.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read quote file: %w", err)
	}
	flush()

	if len(quotes) == 0 {
		return nil, fmt.Errorf("quote file %q contains no quotes", path)
	}
	return quotes, nil
}

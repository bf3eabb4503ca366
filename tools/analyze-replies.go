//go:build ignore

// Analyze-replies dumps the header fields of captured discovery replies.
//
// Input is a text file of raw reply blocks separated by blank lines,
// as captured with e.g. `socat -u UDP4-RECVFROM:43210,fork -`.
//
// Usage: go run tools/analyze-replies.go <capture-file>
package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/glintlab/glint/internal/protocol"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: analyze-replies <capture-file>")
		fmt.Println("Example: analyze-replies captures/scan-20260823.txt")
		os.Exit(1)
	}

	filename := os.Args[1]
	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		os.Exit(1)
	}

	blocks := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n\n")

	fmt.Printf("=== Glint Reply Analyzer ===\n")
	fmt.Printf("File: %s\n\n", filename)

	count := 0
	for _, block := range blocks {
		if strings.TrimSpace(block) == "" {
			continue
		}
		count++
		analyzeBlock(count, block)
	}

	fmt.Printf("%d repl%s analyzed\n", count, plural(count))
}

func analyzeBlock(num int, block string) {
	headers := protocol.ParseHeaders(block)

	fmt.Printf("----------------------------------------\n")
	fmt.Printf("Reply #%d - %d field(s)\n", num, len(headers))
	fmt.Printf("----------------------------------------\n")

	if headers.Get("id") == "" {
		fmt.Println("  !! no id field - this reply would be dropped")
	}

	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		fmt.Printf("  %-16s %s\n", k, headers[k])
	}
	fmt.Println()
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}

package practice

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// WriteText writes the drill set as a plain-text worksheet, one block
// per question with the answer and explanation after the options.
func WriteText(w io.Writer, questions []Question) error {
	var blocks []string
	for i, q := range questions {
		labels := make([]string, 0, len(q.Options))
		for label := range q.Options {
			labels = append(labels, label)
		}
		sort.Strings(labels)

		var opts strings.Builder
		for j, label := range labels {
			if j > 0 {
				opts.WriteByte('\n')
			}
			fmt.Fprintf(&opts, "%s. %s", label, q.Options[label])
		}

		block := fmt.Sprintf("第%d题：\n%s\n%s\n\n答案：%s\n解析：%s\n\n-------------------\n",
			i+1, q.Text, opts.String(), q.CorrectAnswer, q.Explanation)
		blocks = append(blocks, block)
	}

	_, err := io.WriteString(w, strings.Join(blocks, "\n"))
	return err
}

// ExportFile writes the drill set worksheet to the given path.
func ExportFile(path string, questions []Question) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	if err := WriteText(f, questions); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return f.Close()
}

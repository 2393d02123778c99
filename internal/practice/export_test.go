package practice

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteText(t *testing.T) {
	var b strings.Builder
	if err := WriteText(&b, validQuestions()); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	out := b.String()

	// One block per question, ruled off from the next.
	if got := strings.Count(out, "-------------------"); got != QuestionCount {
		t.Errorf("expected %d rule separators, got %d", QuestionCount, got)
	}
	for _, header := range []string{"第1题：", "第2题：", "第3题："} {
		if !strings.Contains(out, header) {
			t.Errorf("missing question header %q", header)
		}
	}
	// Options in label order.
	for _, line := range []string{"A. 甲", "B. 乙", "C. 丙", "D. 丁"} {
		if !strings.Contains(out, line) {
			t.Errorf("missing option line %q", line)
		}
	}
	if !strings.Contains(out, "答案：B") {
		t.Error("missing answer line")
	}
	if !strings.Contains(out, "解析：因为……") {
		t.Error("missing explanation line")
	}

	idxA := strings.Index(out, "A. 甲")
	idxD := strings.Index(out, "D. 丁")
	if idxA < 0 || idxD < 0 || idxA > idxD {
		t.Error("options should appear in A-D order")
	}
}

func TestExportFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "drill.txt")
	if err := ExportFile(path, validQuestions()); err != nil {
		t.Fatalf("ExportFile: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(data), "第1题：") {
		t.Error("exported file should contain the worksheet")
	}
}

package classifier_test

import (
	"testing"

	"github.com/tidyvault/tidyvault/pkg/internal/classifier"
)

// TestJSONMappingParser 测试 JSON 模式的响应解析.
func TestJSONMappingParser(t *testing.T) {
	p := classifier.NewResponseParser("json")

	body := `{"Tax_Form_1099.pdf": "Tax Documents", "Lease_2024.pdf": "Tenant Records"}`

	got := p.Parse(body)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d: %v", len(got), got)
	}

	if got["Tax_Form_1099.pdf"] != "tax-documents" {
		t.Errorf("expected normalized folder tax-documents, got %q", got["Tax_Form_1099.pdf"])
	}

	if got["Lease_2024.pdf"] != "tenant-records" {
		t.Errorf("expected normalized folder tenant-records, got %q", got["Lease_2024.pdf"])
	}
}

// TestJSONMappingParserTolerance 模型常在 JSON 前后加说明文字或代码栅栏，解析必须容忍.
func TestJSONMappingParserTolerance(t *testing.T) {
	p := classifier.NewResponseParser("json")

	body := "Here is the mapping you asked for:\n```json\n" +
		`{"a.pdf": "Receipts", "b.pdf": 42}` + "\n```\nLet me know if you need more."

	got := p.Parse(body)

	// 非字符串值跳过，不影响其他记录
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d: %v", len(got), got)
	}

	if got["a.pdf"] != "receipts" {
		t.Errorf("expected receipts, got %q", got["a.pdf"])
	}
}

// TestJSONMappingParserGarbage 完全无法解析的响应返回空映射而不是 panic.
func TestJSONMappingParserGarbage(t *testing.T) {
	p := classifier.NewResponseParser("json")

	for _, body := range []string{"", "no json here", "{broken", "}{"} {
		if got := p.Parse(body); len(got) != 0 {
			t.Errorf("Parse(%q) = %v, want empty", body, got)
		}
	}
}

// TestLineMappingParser 测试文本模式的逐行解析.
func TestLineMappingParser(t *testing.T) {
	p := classifier.NewResponseParser("text")

	body := `Tax_Form_1099.pdf: Tax Documents
- Lease_2024.pdf: Tenant Records
* photo.png: Photos

malformed line without separator
: Missing Name
Empty_Folder.pdf:   `

	got := p.Parse(body)
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d: %v", len(got), got)
	}

	want := map[string]string{
		"Tax_Form_1099.pdf": "tax-documents",
		"Lease_2024.pdf":    "tenant-records",
		"photo.png":         "photos",
	}

	for name, folder := range want {
		if got[name] != folder {
			t.Errorf("got[%q] = %q, want %q", name, got[name], folder)
		}
	}
}

// TestLineMappingParserFirstColon 只在第一个分隔符处切分，文件夹名里的冒号保留.
func TestLineMappingParserFirstColon(t *testing.T) {
	p := classifier.LineMappingParser{}

	got := p.Parse("report_q1.pdf: Reports: Quarterly")
	if got["report_q1.pdf"] != "reports-quarterly" {
		t.Errorf("expected reports-quarterly, got %q", got["report_q1.pdf"])
	}
}

// TestNewResponseParserDefault 未知模式退回 JSON 解析.
func TestNewResponseParserDefault(t *testing.T) {
	p := classifier.NewResponseParser("bogus")

	got := p.Parse(`{"a.pdf": "Receipts"}`)
	if got["a.pdf"] != "receipts" {
		t.Errorf("expected JSON parser for unknown mode, got %v", got)
	}
}

package classifier_test

import (
	"testing"

	"github.com/tidyvault/tidyvault/pkg/internal/classifier"
)

// TestNormalize 测试文件夹名归一化.
func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Tax Documents", "tax-documents"},
		{"  Tenant   Records  ", "tenant-records"},
		{"Receipts", "receipts"},
		{"already-normalized", "already-normalized"},
		{"", ""},
		{"   ", ""},
	}

	for _, c := range cases {
		if got := classifier.Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// TestNormalizeIdempotent 归一化必须幂等：对已归一化的输出再归一化不改变结果.
func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Tax Documents", "Bank Statements", "Misc & Other", "photos_2024"}

	for _, in := range inputs {
		once := classifier.Normalize(in)

		if twice := classifier.Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

// TestCanonicalize 测试低质量标签到规范标签的映射.
func TestCanonicalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Tax", "tax-documents"},
		{"taxes", "tax-documents"},
		{"1099", "tax-documents"},
		{"W-2", "tax-documents"},
		{"Lease", "tenant-records"},
		{"Tenants", "tenant-records"},
		{"Invoices", "receipts"},
		{"Misc", classifier.DefaultFolder},
		{"other", classifier.DefaultFolder},
		{"Unknown", classifier.DefaultFolder},
		// 非低质量标签保持归一化结果
		{"Insurance", "insurance"},
		{"Bank Statements", "bank-statements"},
	}

	for _, c := range cases {
		if got := classifier.Canonicalize(c.in); got != c.want {
			t.Errorf("Canonicalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// TestCanonicalizeEmpty 空输入必须落到兜底文件夹，保证全函数.
func TestCanonicalizeEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "---"} {
		if got := classifier.Canonicalize(in); got != classifier.DefaultFolder {
			t.Errorf("Canonicalize(%q) = %q, want %q", in, got, classifier.DefaultFolder)
		}
	}
}

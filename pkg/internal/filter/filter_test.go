package filter_test

import (
	"testing"

	"github.com/yeisme/ngdrive/pkg/internal/filter"
	"github.com/yeisme/ngdrive/pkg/internal/types"
)

func sampleFiles() []types.FileObject {
	names := []string{
		"report.pdf",
		"Notes.docx",
		"legacy.DOC",
		"budget.xlsx",
		"Q3.XLS",
		"photo.png",
		"archive.tar.gz",
		"README",
	}

	files := make([]types.FileObject, 0, len(names))
	for _, n := range names {
		files = append(files, types.FileObject{Name: n})
	}

	return files
}

// TestParseCategory 测试分类解析，包括空串与未知分类.
func TestParseCategory(t *testing.T) {
	cases := []struct {
		in      string
		want    filter.Category
		wantErr bool
	}{
		{"", filter.CategoryAll, false},
		{"All", filter.CategoryAll, false},
		{"all", filter.CategoryAll, false},
		{"PDF", filter.CategoryPDF, false},
		{"pdf", filter.CategoryPDF, false},
		{"Docs", filter.CategoryDocs, false},
		{"Excel", filter.CategoryExcel, false},
		{"Video", "", true},
	}

	for _, c := range cases {
		got, err := filter.ParseCategory(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseCategory(%q): expected error, got nil", c.in)
			}

			continue
		}

		if err != nil {
			t.Errorf("ParseCategory(%q): unexpected error %v", c.in, err)
			continue
		}

		if got != c.want {
			t.Errorf("ParseCategory(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// TestExt 测试扩展名提取.
func TestExt(t *testing.T) {
	cases := map[string]string{
		"report.pdf":     "pdf",
		"legacy.DOC":     "doc",
		"archive.tar.gz": "gz",
		"README":         "",
		".hidden":        "hidden",
	}

	for name, want := range cases {
		if got := filter.Ext(name); got != want {
			t.Errorf("Ext(%q) = %q, want %q", name, got, want)
		}
	}
}

// TestCategoryMatches 测试分类匹配，扩展名大小写不敏感.
func TestCategoryMatches(t *testing.T) {
	if !filter.CategoryAll.Matches("anything.bin") {
		t.Error("All should match any file")
	}

	if !filter.CategoryPDF.Matches("report.pdf") {
		t.Error("PDF should match report.pdf")
	}

	if filter.CategoryPDF.Matches("report.pdf.bak") {
		t.Error("PDF should not match report.pdf.bak")
	}

	// Docs 同时覆盖 doc 与 docx，大小写不敏感
	if !filter.CategoryDocs.Matches("Notes.docx") || !filter.CategoryDocs.Matches("legacy.DOC") {
		t.Error("Docs should match both .docx and .DOC")
	}

	if !filter.CategoryExcel.Matches("Q3.XLS") || !filter.CategoryExcel.Matches("budget.xlsx") {
		t.Error("Excel should match both .XLS and .xlsx")
	}

	if filter.CategoryExcel.Matches("budget.csv") {
		t.Error("Excel should not match .csv")
	}
}

// TestApplyCategoryOnly 测试仅按分类过滤.
func TestApplyCategoryOnly(t *testing.T) {
	got := filter.Apply(sampleFiles(), filter.CategoryDocs, "")
	if len(got) != 2 {
		t.Fatalf("expected 2 docs, got %d", len(got))
	}

	if got[0].Name != "Notes.docx" || got[1].Name != "legacy.DOC" {
		t.Errorf("unexpected docs result: %v", got)
	}
}

// TestApplyQueryOnly 测试仅按搜索过滤，大小写不敏感.
func TestApplyQueryOnly(t *testing.T) {
	got := filter.Apply(sampleFiles(), filter.CategoryAll, "NOTES")
	if len(got) != 1 || got[0].Name != "Notes.docx" {
		t.Errorf("expected [Notes.docx], got %v", got)
	}

	// 子串在中间也应匹配
	got = filter.Apply(sampleFiles(), filter.CategoryAll, "ort")
	if len(got) != 1 || got[0].Name != "report.pdf" {
		t.Errorf("expected [report.pdf], got %v", got)
	}
}

// TestApplyCombined 测试分类与搜索同时生效（AND）.
func TestApplyCombined(t *testing.T) {
	got := filter.Apply(sampleFiles(), filter.CategoryExcel, "budget")
	if len(got) != 1 || got[0].Name != "budget.xlsx" {
		t.Errorf("expected [budget.xlsx], got %v", got)
	}

	// 分类匹配但搜索不匹配
	got = filter.Apply(sampleFiles(), filter.CategoryExcel, "report")
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

// TestApplyEmptyInput 测试空列表输入.
func TestApplyEmptyInput(t *testing.T) {
	got := filter.Apply(nil, filter.CategoryAll, "")
	if len(got) != 0 {
		t.Errorf("expected empty result for nil input, got %v", got)
	}
}

// TestApplyDoesNotMutate 测试过滤不修改输入切片.
func TestApplyDoesNotMutate(t *testing.T) {
	files := sampleFiles()
	before := len(files)

	_ = filter.Apply(files, filter.CategoryPDF, "")

	if len(files) != before {
		t.Error("Apply mutated the input slice")
	}
}

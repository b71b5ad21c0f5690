package service_test

import (
	"strings"
	"testing"

	"github.com/yeisme/ngdrive/pkg/internal/service"
	"github.com/yeisme/ngdrive/pkg/internal/types"
)

// TestPlanPreviewMode 测试扩展名到预览模式的映射.
func TestPlanPreviewMode(t *testing.T) {
	cases := []struct {
		name string
		want types.PreviewMode
	}{
		{"report.pdf", types.PreviewModeInline},
		{"photo.JPG", types.PreviewModeInline},
		{"photo.jpeg", types.PreviewModeInline},
		{"logo.png", types.PreviewModeInline},
		{"anim.gif", types.PreviewModeInline},
		{"notes.txt", types.PreviewModeInline},
		{"page.html", types.PreviewModeInline},
		{"contract.doc", types.PreviewModeViewer},
		{"contract.DOCX", types.PreviewModeViewer},
		{"slides.ppt", types.PreviewModeViewer},
		{"slides.pptx", types.PreviewModeViewer},
		{"sheet.xls", types.PreviewModeViewer},
		{"sheet.xlsx", types.PreviewModeViewer},
		{"archive.zip", types.PreviewModeDownload},
		{"binary.bin", types.PreviewModeDownload},
		{"noextension", types.PreviewModeDownload},
	}

	for _, c := range cases {
		if got := service.PlanPreviewMode(c.name); got != c.want {
			t.Errorf("PlanPreviewMode(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}

// TestViewerURL 测试外部查看器地址的包装与转义.
func TestViewerURL(t *testing.T) {
	raw := "https://minio.local/user-files/contract.docx?X-Amz-Signature=abc&X-Amz-Expires=3600"
	got := service.ViewerURL("https://docs.google.com/viewer", raw)

	if !strings.HasPrefix(got, "https://docs.google.com/viewer?url=") {
		t.Errorf("unexpected prefix: %s", got)
	}

	if !strings.HasSuffix(got, "&embedded=true") {
		t.Errorf("missing embedded flag: %s", got)
	}

	// 原始链接必须整体转义，签名参数不能泄漏为查看器自身参数
	if strings.Contains(got, "X-Amz-Signature=abc&") {
		t.Errorf("raw url not escaped: %s", got)
	}

	if !strings.Contains(got, "%3A%2F%2F") {
		t.Errorf("scheme separator not escaped: %s", got)
	}
}

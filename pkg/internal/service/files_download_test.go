package service_test

import (
	"strings"
	"testing"

	"github.com/yeisme/ngdrive/pkg/internal/service"
)

// TestAttachmentDisposition 测试附件下载头的文件名转义.
func TestAttachmentDisposition(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"report.pdf", `attachment; filename="report.pdf"`},
		{"季度 报告.xlsx", `attachment; filename="季度 报告.xlsx"`},
		{`quo"te.txt`, `attachment; filename="quo\"te.txt"`},
	}

	for _, tc := range cases {
		got := service.AttachmentDisposition(tc.name)
		if got != tc.want {
			t.Errorf("AttachmentDisposition(%q) = %q, want %q", tc.name, got, tc.want)
		}

		if !strings.HasPrefix(got, "attachment; ") {
			t.Errorf("missing attachment prefix: %q", got)
		}
	}
}

package handle_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/ngdrive/pkg/internal/handle"
)

// TestDeleteFileRequiresConfirm 测试未确认的删除请求返回 428 且不触达存储.
// 处理器在构造文件服务之前短路，存储客户端缺失也不会被触碰.
func TestDeleteFileRequiresConfirm(t *testing.T) {
	gin.SetMode(gin.TestMode)

	e := gin.New()
	e.DELETE("/api/v1/files/:name", handle.DeleteFile)

	cases := []struct {
		name  string
		query string
	}{
		{"missing confirm", ""},
		{"confirm false", "?confirm=false"},
		{"confirm wrong value", "?confirm=yes"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodDelete, "/api/v1/files/report.pdf"+tc.query, nil)
			e.ServeHTTP(w, req)

			if w.Code != http.StatusPreconditionRequired {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusPreconditionRequired)
			}

			if !strings.Contains(w.Body.String(), "confirm=true") {
				t.Errorf("body %q does not explain the confirm requirement", w.Body.String())
			}
		})
	}
}

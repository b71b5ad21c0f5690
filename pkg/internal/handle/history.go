package handle

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/ngdrive/pkg/internal/service"
	"github.com/yeisme/ngdrive/pkg/log"
)

// History 返回当前用户的最近浏览记录.
//
//	@Summary		最近浏览
//	@Description	返回当前用户的最近浏览记录，按浏览时间从新到旧，最多保留固定条数
//	@Tags			浏览记录
//	@Produce		json
//	@Success		200	{object}	types.HistoryResponse	"浏览记录"
//	@Failure		400	{object}	map[string]string		"缺少用户"
//	@Failure		500	{object}	map[string]string		"服务器内部错误"
//	@Router			/api/v1/history [get]
func History(c *gin.Context) {
	l := log.Logger()

	user, err := currentUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	svc := service.NewFileService(c.Request.Context())

	res, err := svc.History(c.Request.Context(), user)
	if err != nil {
		l.Error().Err(err).Msg("load history failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	c.JSON(http.StatusOK, res)
}

// ClearHistory 清空当前用户的浏览记录.
//
//	@Summary		清空浏览记录
//	@Tags			浏览记录
//	@Produce		json
//	@Success		200	{object}	map[string]string	"已清空"
//	@Failure		400	{object}	map[string]string	"缺少用户"
//	@Router			/api/v1/history [delete]
func ClearHistory(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	svc := service.NewFileService(c.Request.Context())

	if err := svc.ClearHistory(c.Request.Context(), user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "history cleared"})
}

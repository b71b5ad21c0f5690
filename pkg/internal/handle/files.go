package handle

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeisme/ngdrive/pkg/internal/filter"
	"github.com/yeisme/ngdrive/pkg/internal/service"
	"github.com/yeisme/ngdrive/pkg/log"
)

// ListFiles 列出对象桶中的文件，支持分类与关键字过滤.
//
//	@Summary		文件列表
//	@Description	返回对象桶中的文件列表（按名称升序），支持 category 与 q 过滤，两者为 AND 关系
//	@Tags			文件
//	@Produce		json
//	@Param			category	query		string					false	"分类：All/PDF/Docs/Excel，默认 All"
//	@Param			q			query		string					false	"文件名关键字，大小写不敏感"
//	@Param			refresh		query		bool					false	"为 true 时先强制刷新列表快照"
//	@Success		200			{object}	types.ListFilesResponse	"文件列表"
//	@Failure		400			{object}	map[string]string		"分类无效"
//	@Failure		500			{object}	map[string]string		"服务器内部错误"
//	@Router			/api/v1/files [get]
func ListFiles(c *gin.Context) {
	l := log.Logger()

	category, err := filter.ParseCategory(c.Query("category"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	svc := service.NewFileService(c.Request.Context())

	if c.Query("refresh") == "true" {
		if err := svc.RefreshListing(c.Request.Context()); err != nil {
			l.Error().Err(err).Msg("refresh listing failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

			return
		}
	}

	res, err := svc.ListFiles(c.Request.Context(), category, c.Query("q"))
	if err != nil {
		l.Error().Err(err).Msg("list files failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	c.JSON(http.StatusOK, res)
}

// UploadFile 上传单个文件（multipart 表单字段 file）.
//
//	@Summary		上传文件
//	@Description	上传单个文件到对象桶，对象键即文件名，同名对象直接覆盖
//	@Tags			文件
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file						true	"文件内容"
//	@Success		200		{object}	types.UploadFileResponse	"上传结果"
//	@Failure		400		{object}	map[string]string			"请求参数错误"
//	@Failure		500		{object}	map[string]string			"服务器内部错误"
//	@Router			/api/v1/files [post]
func UploadFile(c *gin.Context) {
	l := log.Logger()

	user, err := currentUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file field"})
		return
	}

	if fileHeader.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing file name"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer src.Close()

	svc := service.NewFileService(c.Request.Context())

	res, err := svc.Upload(c.Request.Context(), user, fileHeader.Filename,
		src, fileHeader.Size, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		l.Error().Err(err).Str("file", fileHeader.Filename).Msg("upload failed")
		c.JSON(http.StatusInternalServerError, res)

		return
	}

	c.JSON(http.StatusOK, res)
}

// PreviewFile 生成文件预览链接.
//
//	@Summary		预览文件
//	@Description	返回预览链接与模式（inline/viewer/download），成功后同步写入浏览记录
//	@Tags			文件
//	@Produce		json
//	@Param			name	path		string						true	"文件名"
//	@Success		200		{object}	types.PreviewFileResponse	"预览链接"
//	@Failure		404		{object}	map[string]string			"文件不存在"
//	@Failure		500		{object}	map[string]string			"服务器内部错误"
//	@Router			/api/v1/files/{name}/preview [get]
func PreviewFile(c *gin.Context) {
	l := log.Logger()

	user, err := currentUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	name := c.Param("name")

	svc := service.NewFileService(c.Request.Context())

	res, err := svc.Preview(c.Request.Context(), user, name)
	if err != nil {
		if errors.Is(err, service.ErrFileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
			return
		}

		l.Error().Err(err).Str("file", name).Msg("preview failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}

	c.JSON(http.StatusOK, res)
}

// DownloadFile 以附件形式转发对象字节.
//
//	@Summary		下载文件
//	@Description	服务端读取对象并以附件形式返回字节流
//	@Tags			文件
//	@Produce		octet-stream
//	@Param			name	path		string				true	"文件名"
//	@Success		200		{file}		file				"对象字节流"
//	@Failure		404		{object}	map[string]string	"文件不存在"
//	@Failure		500		{object}	map[string]string	"服务器内部错误"
//	@Router			/api/v1/files/{name}/download [get]
func DownloadFile(c *gin.Context) {
	l := log.Logger()

	user, err := currentUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	name := c.Param("name")

	svc := service.NewFileService(c.Request.Context())

	reader, info, err := svc.Download(c.Request.Context(), user, name)
	if err != nil {
		if errors.Is(err, service.ErrFileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
			return
		}

		l.Error().Err(err).Str("file", name).Msg("download failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})

		return
	}
	defer func() {
		_ = reader.Close()
	}()

	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.DataFromReader(http.StatusOK, info.Size, contentType, reader, map[string]string{
		"Content-Disposition": service.AttachmentDisposition(name),
	})
}

// DeleteFile 删除文件，必须显式携带 confirm=true.
//
//	@Summary		删除文件
//	@Description	从对象桶删除文件，未携带 confirm=true 时返回 428 要求确认
//	@Tags			文件
//	@Produce		json
//	@Param			name	path		string						true	"文件名"
//	@Param			confirm	query		bool						true	"确认删除，必须为 true"
//	@Success		200		{object}	types.DeleteFileResponse	"删除结果"
//	@Failure		404		{object}	map[string]string			"文件不存在"
//	@Failure		428		{object}	map[string]string			"缺少删除确认"
//	@Failure		500		{object}	map[string]string			"服务器内部错误"
//	@Router			/api/v1/files/{name} [delete]
func DeleteFile(c *gin.Context) {
	l := log.Logger()

	user, err := currentUser(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing user"})
		return
	}

	if c.Query("confirm") != "true" {
		c.JSON(http.StatusPreconditionRequired, gin.H{"error": "deletion requires confirm=true"})
		return
	}

	name := c.Param("name")

	svc := service.NewFileService(c.Request.Context())

	res, err := svc.Delete(c.Request.Context(), user, name)
	if err != nil {
		if errors.Is(err, service.ErrFileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
			return
		}

		l.Error().Err(err).Str("file", name).Msg("delete failed")
		c.JSON(http.StatusInternalServerError, res)

		return
	}

	c.JSON(http.StatusOK, res)
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xdiner/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db     *gorm.DB
	store  *service.ContentStore
	images *service.ImageService
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, imageAPIKey string) *API {
	return &API{
		db:     gdb,
		store:  service.NewContentStore(gdb),
		images: service.NewImageService(imageAPIKey),
	}
}

// Store 暴露内容存储，便于测试种入数据或替换时钟。
func (a *API) Store() *service.ContentStore {
	return a.store
}

// Images 暴露图片服务，便于测试替换 HTTP 客户端。
func (a *API) Images() *service.ImageService {
	return a.images
}

// respondStoreError 将内容存储的拒绝映射为对操作者可见的 JSON 错误。
// 所有存储错误都是局部可恢复的：聚合保持上一个有效状态。
func respondStoreError(c *gin.Context, err error) {
	var validation *service.ValidationError
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Message, "field": validation.Field})
	case errors.Is(err, service.ErrReservationNotFound):
		respondError(c, http.StatusNotFound, "订座记录不存在")
	case errors.Is(err, service.ErrInvalidStatusTransition):
		respondError(c, http.StatusConflict, "不允许的订座状态变更")
	default:
		respondError(c, http.StatusInternalServerError, "操作失败，请稍后重试")
	}
}

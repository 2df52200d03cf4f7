package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xdiner/internal/service"
)

type menuItemRequest struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Image       string  `json:"image"`
}

func menuPayload(content service.SiteContent) []gin.H {
	items := make([]gin.H, 0, len(content.Menu))
	for _, item := range content.Menu {
		items = append(items, gin.H{
			"id":          item.ID,
			"name":        item.Name,
			"price":       item.Price,
			"category":    item.Category,
			"description": item.Description,
			"image":       item.Image,
		})
	}
	return items
}

// GetMenu 返回后台菜单列表，价格为原始数值供编辑表单使用。
func (a *API) GetMenu(c *gin.Context) {
	content, err := a.store.Snapshot()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取站点内容失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"menu": menuPayload(content)})
}

// UpsertMenuItem 创建或更新一道菜品。
func (a *API) UpsertMenuItem(c *gin.Context) {
	var payload menuItemRequest
	if !bindJSON(c, &payload, "请填写完整的菜品信息") {
		return
	}

	content, err := a.store.UpsertMenuItem(service.MenuItemInput{
		ID:          payload.ID,
		Name:        payload.Name,
		Price:       payload.Price,
		Category:    payload.Category,
		Description: payload.Description,
		Image:       payload.Image,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "菜品已保存", "menu": menuPayload(content)})
}

// DeleteMenuItem 删除一道菜品；目标不存在时同样视为成功。
func (a *API) DeleteMenuItem(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的菜品 ID")
		return
	}

	content, err := a.store.RemoveMenuItem(id)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "菜品已删除", "menu": menuPayload(content)})
}

type generateImageRequest struct {
	Prompt string `json:"prompt"`
}

// GenerateImage 为菜品或文章生成配图。
// 失败时图片服务已兜底，这里只需处理在途互斥；生成期间其余接口不受影响。
func (a *API) GenerateImage(c *gin.Context) {
	var payload generateImageRequest
	if !bindJSON(c, &payload, "请填写图片描述") {
		return
	}

	ref, err := a.images.AcquireImage(c.Request.Context(), payload.Prompt)
	if err != nil {
		if errors.Is(err, service.ErrImageRequestInFlight) {
			respondError(c, http.StatusConflict, "上一次图片生成尚未完成")
			return
		}
		respondError(c, http.StatusInternalServerError, "图片生成失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"image": ref})
}

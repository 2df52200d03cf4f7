package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xdiner/internal/service"
)

// settingsRequest 的指针字段区分"未提交"与"提交空值"，
// 以便存储层按字段做部分合并。
type settingsRequest struct {
	Name           *string `json:"name"`
	Tagline        *string `json:"tagline"`
	PrimaryColor   *string `json:"primaryColor"`
	Theme          *string `json:"theme"`
	Font           *string `json:"font"`
	SEOTitle       *string `json:"seoTitle"`
	SEODescription *string `json:"seoDescription"`
}

func (r settingsRequest) toInput() service.SettingsInput {
	return service.SettingsInput{
		Name:           r.Name,
		Tagline:        r.Tagline,
		PrimaryColor:   r.PrimaryColor,
		Theme:          r.Theme,
		Font:           r.Font,
		SEOTitle:       r.SEOTitle,
		SEODescription: r.SEODescription,
	}
}

func settingsPayload(settings service.Settings) gin.H {
	return gin.H{
		"name":           settings.Name,
		"tagline":        settings.Tagline,
		"primaryColor":   settings.PrimaryColor,
		"theme":          settings.Theme,
		"font":           settings.Font,
		"seoTitle":       settings.SEOTitle,
		"seoDescription": settings.SEODescription,
	}
}

// GetSettings 返回当前站点配置，design 与 seo 页签共用。
func (a *API) GetSettings(c *gin.Context) {
	content, err := a.store.Snapshot()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取站点内容失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settingsPayload(content.Settings)})
}

// UpdateSettings 保存站点配置。编辑器提交什么就传什么，
// 不做任何额外校验，存储层的拒绝会原样展示给操作者。
func (a *API) UpdateSettings(c *gin.Context) {
	var payload settingsRequest
	if !bindJSON(c, &payload, "请填写有效的站点配置") {
		return
	}

	content, err := a.store.ReplaceSettings(payload.toInput())
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "配置已保存",
		"settings": settingsPayload(content.Settings),
	})
}

type hoursRequest struct {
	Hours []hourEntry `json:"hours"`
}

type hourEntry struct {
	Day  string `json:"day"`
	Time string `json:"time"`
}

// UpdateHours 整体替换营业时间。
func (a *API) UpdateHours(c *gin.Context) {
	var payload hoursRequest
	if !bindJSON(c, &payload, "请填写有效的营业时间") {
		return
	}

	inputs := make([]service.HourInput, 0, len(payload.Hours))
	for _, hour := range payload.Hours {
		inputs = append(inputs, service.HourInput{Day: hour.Day, Time: hour.Time})
	}

	content, err := a.store.ReplaceHours(inputs)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	hours := make([]gin.H, 0, len(content.Hours))
	for _, hour := range content.Hours {
		hours = append(hours, gin.H{"day": hour.Day, "time": hour.Time})
	}
	c.JSON(http.StatusOK, gin.H{"message": "营业时间已更新", "hours": hours})
}

type blogPostRequest struct {
	Title   string `json:"title"`
	Date    string `json:"date"`
	Content string `json:"content"`
	Image   string `json:"image"`
}

// CreateBlogPost 发布一篇文章。
func (a *API) CreateBlogPost(c *gin.Context) {
	var payload blogPostRequest
	if !bindJSON(c, &payload, "请填写完整的文章信息") {
		return
	}

	content, err := a.store.AddBlogPost(service.BlogPostInput{
		Title:   payload.Title,
		Date:    payload.Date,
		Content: payload.Content,
		Image:   payload.Image,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	created := content.Blog[len(content.Blog)-1]
	c.JSON(http.StatusCreated, gin.H{
		"message": "文章已发布",
		"post": gin.H{
			"id":    created.ID,
			"title": created.Title,
			"date":  created.Date,
		},
	})
}

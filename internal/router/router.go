package router

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/xdiner/internal/handler"
)

// SetupRouter 配置 Gin 引擎和路由。
// 后台分组不挂认证中间件：admin 只是一个普通页面，
// 所有页面始终可达（访问控制明确不在当前范围内）。
func SetupRouter(api *handler.API, sessionSecret string) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件，保存页面与后台页签状态
	store := cookie.NewStore([]byte(sessionSecret))
	r.Use(sessions.Sessions("xdiner_session", store))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 前台页面投影与提交入口
	public := r.Group("/api")
	{
		public.GET("/pages/home", api.ShowHome)
		public.GET("/pages/menu", api.ShowMenu)
		public.GET("/pages/blog", api.ShowBlog)
		public.GET("/pages/contact", api.ShowContact)

		public.GET("/view", api.GetViewState)
		public.POST("/navigate", api.Navigate)

		public.POST("/reservations", api.CreateReservation)
		public.POST("/inquiries", api.CreateInquiry)
	}

	// 后台管理路由
	admin := r.Group("/admin/api")
	{
		admin.GET("/state", api.ShowAdminState)
		admin.POST("/tab", api.SelectAdminTab)
		admin.GET("/overview", api.GetOverview)

		admin.GET("/menu", api.GetMenu)
		admin.POST("/menu", api.UpsertMenuItem)
		admin.DELETE("/menu/:id", api.DeleteMenuItem)

		admin.GET("/reservations", api.ListReservations)
		admin.PUT("/reservations/:id/status", api.UpdateReservationStatus)
		admin.GET("/inquiries", api.ListInquiries)

		admin.GET("/settings", api.GetSettings)
		admin.PUT("/settings", api.UpdateSettings)
		admin.PUT("/hours", api.UpdateHours)

		admin.POST("/posts", api.CreateBlogPost)
		admin.POST("/images/generate", api.GenerateImage)
	}

	return r
}

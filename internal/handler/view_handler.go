package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/xdiner/internal/view"
)

const (
	sessionKeyActiveView = "active_view"
	sessionKeyAdminTab   = "admin_tab"
)

// activeView 读取会话中的当前页面，缺省为首页。
func activeView(session sessions.Session) view.View {
	raw, _ := session.Get(sessionKeyActiveView).(string)
	if v, ok := view.ParseView(raw); ok {
		return v
	}
	return view.DefaultView
}

// activeAdminTab 读取会话中的后台页签；离开后台不会清除该值，
// 因此再次进入后台时会回到上次选中的页签。
func activeAdminTab(session sessions.Session) view.AdminTab {
	raw, _ := session.Get(sessionKeyAdminTab).(string)
	if t, ok := view.ParseAdminTab(raw); ok {
		return t
	}
	return view.DefaultAdminTab
}

type navigateRequest struct {
	View string `json:"view"`
}

type selectTabRequest struct {
	Tab string `json:"tab"`
}

func viewStatePayload(session sessions.Session) gin.H {
	return gin.H{
		"view":     activeView(session),
		"adminTab": activeAdminTab(session),
	}
}

// GetViewState 返回当前页面与后台页签。
func (a *API) GetViewState(c *gin.Context) {
	c.JSON(http.StatusOK, viewStatePayload(sessions.Default(c)))
}

// Navigate 直接跳转到目标页面；合法页面之间的切换永远不会被拒绝。
func (a *API) Navigate(c *gin.Context) {
	var payload navigateRequest
	if !bindJSON(c, &payload, "请指定要跳转的页面") {
		return
	}

	v, ok := view.ParseView(payload.View)
	if !ok {
		respondError(c, http.StatusBadRequest, "未知的页面")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionKeyActiveView, string(v))
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "会话保存失败")
		return
	}

	c.JSON(http.StatusOK, viewStatePayload(session))
}

// SelectAdminTab 切换后台页签并记入会话。
func (a *API) SelectAdminTab(c *gin.Context) {
	var payload selectTabRequest
	if !bindJSON(c, &payload, "请指定要切换的页签") {
		return
	}

	tab, ok := view.ParseAdminTab(payload.Tab)
	if !ok {
		respondError(c, http.StatusBadRequest, "未知的页签")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionKeyAdminTab, string(tab))
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "会话保存失败")
		return
	}

	c.JSON(http.StatusOK, viewStatePayload(session))
}

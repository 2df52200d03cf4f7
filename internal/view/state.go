package view

import "strings"

// View 表示互斥的顶级页面。
type View string

// AdminTab 表示后台侧边栏的子页签。
type AdminTab string

const (
	ViewHome    View = "home"
	ViewMenu    View = "menu"
	ViewAdmin   View = "admin"
	ViewBlog    View = "blog"
	ViewContact View = "contact"

	TabOverview AdminTab = "overview"
	TabMenu     AdminTab = "menu"
	TabBookings AdminTab = "bookings"
	TabDesign   AdminTab = "design"
	TabSEO      AdminTab = "seo"
)

// DefaultView 是进入站点时的初始页面。
const DefaultView = ViewHome

// DefaultAdminTab 是首次进入后台时的页签。
const DefaultAdminTab = TabOverview

var views = map[View]bool{
	ViewHome: true, ViewMenu: true, ViewAdmin: true, ViewBlog: true, ViewContact: true,
}

var adminTabs = map[AdminTab]bool{
	TabOverview: true, TabMenu: true, TabBookings: true, TabDesign: true, TabSEO: true,
}

// ParseView 归一化页面名，未知值返回 false。
func ParseView(raw string) (View, bool) {
	v := View(strings.ToLower(strings.TrimSpace(raw)))
	return v, views[v]
}

// ParseAdminTab 归一化后台页签名，未知值返回 false。
func ParseAdminTab(raw string) (AdminTab, bool) {
	t := AdminTab(strings.ToLower(strings.TrimSpace(raw)))
	return t, adminTabs[t]
}

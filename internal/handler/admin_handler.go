package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/xdiner/internal/db"
	"github.com/xdiner/internal/service"
)

// ShowAdminState 返回后台入口状态：恢复上次选中的页签并附带概览统计。
func (a *API) ShowAdminState(c *gin.Context) {
	content, err := a.store.Snapshot()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取站点内容失败")
		return
	}

	session := sessions.Default(c)
	c.JSON(http.StatusOK, gin.H{
		"activeTab": activeAdminTab(session),
		"overview":  overviewPayload(content),
	})
}

// GetOverview 返回概览页签的统计卡片数据。
func (a *API) GetOverview(c *gin.Context) {
	content, err := a.store.Snapshot()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取站点内容失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"overview": overviewPayload(content)})
}

func overviewPayload(content service.SiteContent) gin.H {
	pending := 0
	for _, r := range content.Reservations {
		if r.Status == db.ReservationPending {
			pending++
		}
	}
	return gin.H{
		"pendingBookings": pending,
		"reservations":    len(content.Reservations),
		"inquiries":       len(content.Inquiries),
		"menuItems":       len(content.Menu),
		"blogPosts":       len(content.Blog),
		"revision":        content.Revision,
	}
}

// ListReservations 返回全部订座记录，供 bookings 页签展示。
func (a *API) ListReservations(c *gin.Context) {
	content, err := a.store.Snapshot()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取站点内容失败")
		return
	}

	items := make([]gin.H, 0, len(content.Reservations))
	for _, r := range content.Reservations {
		items = append(items, reservationPayload(r))
	}
	c.JSON(http.StatusOK, gin.H{"reservations": items})
}

type statusRequest struct {
	Status string `json:"status"`
}

// UpdateReservationStatus 推进订座状态，存储层的拒绝原样回给操作者。
func (a *API) UpdateReservationStatus(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的订座 ID")
		return
	}

	var payload statusRequest
	if !bindJSON(c, &payload, "请指定目标状态") {
		return
	}

	content, err := a.store.UpdateReservationStatus(id, payload.Status)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	for _, r := range content.Reservations {
		if r.ID == id {
			c.JSON(http.StatusOK, gin.H{"message": "状态已更新", "reservation": reservationPayload(r)})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "状态已更新"})
}

func reservationPayload(r service.Reservation) gin.H {
	return gin.H{
		"id":               r.ID,
		"name":             r.Name,
		"email":            r.Email,
		"date":             r.Date,
		"time":             r.Time,
		"guests":           r.Guests,
		"status":           r.Status,
		"confirmationCode": r.ConfirmationCode,
	}
}

// ListInquiries 返回全部留言，后台只读。
func (a *API) ListInquiries(c *gin.Context) {
	content, err := a.store.Snapshot()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取站点内容失败")
		return
	}

	items := make([]gin.H, 0, len(content.Inquiries))
	for _, q := range content.Inquiries {
		items = append(items, gin.H{
			"id":      q.ID,
			"name":    q.Name,
			"email":   q.Email,
			"subject": q.Subject,
			"message": q.Message,
			"date":    q.Date,
		})
	}
	c.JSON(http.StatusOK, gin.H{"inquiries": items})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xdiner/internal/service"
	"github.com/xdiner/internal/view"
)

// renderPage 每次渲染都重新读取内容快照，避免使用过期数据。
func (a *API) renderPage(c *gin.Context, v view.View) {
	content, err := a.store.Snapshot()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取站点内容失败")
		return
	}
	c.JSON(http.StatusOK, view.Render(content, v))
}

// ShowHome 返回首页投影：hero、完整菜单、营业时间与订座区块共用同一快照。
func (a *API) ShowHome(c *gin.Context) {
	a.renderPage(c, view.ViewHome)
}

// ShowMenu 返回独立菜单页投影。
func (a *API) ShowMenu(c *gin.Context) {
	a.renderPage(c, view.ViewMenu)
}

// ShowBlog 返回博客列表投影。
func (a *API) ShowBlog(c *gin.Context) {
	a.renderPage(c, view.ViewBlog)
}

// ShowContact 返回联系页投影。
func (a *API) ShowContact(c *gin.Context) {
	a.renderPage(c, view.ViewContact)
}

type reservationRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Date   string `json:"date"`
	Time   string `json:"time"`
	Guests int    `json:"guests"`
}

type inquiryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// CreateReservation 处理前台订座提交，校验全部由内容存储负责。
func (a *API) CreateReservation(c *gin.Context) {
	var payload reservationRequest
	if !bindJSON(c, &payload, "请填写完整的订座信息") {
		return
	}

	content, err := a.store.AddReservation(service.ReservationInput{
		Name:   payload.Name,
		Email:  payload.Email,
		Date:   payload.Date,
		Time:   payload.Time,
		Guests: payload.Guests,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	created := content.Reservations[len(content.Reservations)-1]
	c.JSON(http.StatusCreated, gin.H{
		"message":          "订座已提交",
		"reservationId":    created.ID,
		"confirmationCode": created.ConfirmationCode,
		"status":           created.Status,
	})
}

// CreateInquiry 处理前台留言提交。
func (a *API) CreateInquiry(c *gin.Context) {
	var payload inquiryRequest
	if !bindJSON(c, &payload, "请填写完整的留言信息") {
		return
	}

	content, err := a.store.AddInquiry(service.InquiryInput{
		Name:    payload.Name,
		Email:   payload.Email,
		Subject: payload.Subject,
		Message: payload.Message,
	})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	created := content.Inquiries[len(content.Inquiries)-1]
	c.JSON(http.StatusCreated, gin.H{
		"message":   "留言已收到",
		"inquiryId": created.ID,
	})
}

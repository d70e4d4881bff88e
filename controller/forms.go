package controller

import (
	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"

	"github.com/Xushengqwer/foundation_service/models/dto"
	"github.com/Xushengqwer/foundation_service/service"
)

// FormsController 公开表单：联系、感言、捐赠、邮件订阅
type FormsController struct {
	formsService service.FormsService
}

// NewFormsController 构造函数
func NewFormsController(formsService service.FormsService) *FormsController {
	return &FormsController{formsService: formsService}
}

// SubmitContact 联系表单
// @Summary      提交联系留言
// @Description  name、email、subject、message 必填；inquiry_type 缺省为 general。校验失败时不会保存任何记录。
// @Tags         forms (表单)
// @Accept       json
// @Produce      json
// @Param        request body dto.ContactRequest true "联系留言"
// @Success      200 {object} vo.ContactReceiptResponseWrapper "留言已保存"
// @Failure      400 {object} vo.ValidationErrorResponseWrapper "参数校验失败"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/site/contact [post]
func (ctrl *FormsController) SubmitContact(c *gin.Context) {
	var req dto.ContactRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}
	receipt, err := ctrl.formsService.SubmitContact(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "提交留言")
		return
	}
	response.RespondSuccess(c, receipt, "感谢您的留言，我们会尽快回复")
}

// SubmitTestimonial 感言投稿
// @Summary      提交感言
// @Description  multipart/form-data，可附带 image 文件。提交后为未审核状态，审核通过后才会公开展示。
// @Tags         forms (表单)
// @Accept       multipart/form-data
// @Produce      json
// @Param        name formData string true "姓名" maxLength(200)
// @Param        organization formData string false "机构" maxLength(200)
// @Param        testimonial_type formData string false "类型" Enums(personal, partner, donor, beneficiary)
// @Param        content formData string true "感言内容"
// @Param        image formData file false "头像或照片"
// @Success      200 {object} vo.TestimonialReceiptResponseWrapper "感言已提交"
// @Failure      400 {object} vo.ValidationErrorResponseWrapper "参数校验失败或图片过大"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/site/testimonials [post]
func (ctrl *FormsController) SubmitTestimonial(c *gin.Context) {
	var req dto.TestimonialRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}
	receipt, err := ctrl.formsService.SubmitTestimonial(c.Request.Context(), &req, optionalFile(c, "image"))
	if err != nil {
		respondServiceError(c, err, "提交感言")
		return
	}
	response.RespondSuccess(c, receipt, "感谢您的分享，审核通过后将会展示")
}

// RecordDonation 捐赠登记
// @Summary      登记捐赠
// @Description  只记录捐赠信息，不发起支付。状态固定为 pending，并返回收据编号。
// @Tags         forms (表单)
// @Accept       json
// @Produce      json
// @Param        request body dto.DonationRequest true "捐赠信息"
// @Success      200 {object} vo.DonationReceiptResponseWrapper "捐赠已登记"
// @Failure      400 {object} vo.ValidationErrorResponseWrapper "参数校验失败或合作伙伴无效"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/site/donations [post]
func (ctrl *FormsController) RecordDonation(c *gin.Context) {
	var req dto.DonationRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}
	receipt, err := ctrl.formsService.RecordDonation(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "登记捐赠")
		return
	}
	response.RespondSuccess(c, receipt, "感谢您的捐赠")
}

// Subscribe 邮件订阅
// @Summary      订阅邮件
// @Description  已订阅的邮箱不会报错，返回 already_subscribed=true；已退订的邮箱会重新激活。
// @Tags         forms (表单)
// @Accept       json
// @Produce      json
// @Param        request body dto.NewsletterSubscribeRequest true "订阅信息"
// @Success      200 {object} vo.NewsletterResponseWrapper "订阅结果"
// @Failure      400 {object} vo.ValidationErrorResponseWrapper "参数校验失败"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/site/newsletter/subscribe [post]
func (ctrl *FormsController) Subscribe(c *gin.Context) {
	var req dto.NewsletterSubscribeRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}
	result, err := ctrl.formsService.Subscribe(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "订阅")
		return
	}
	msg := "订阅成功"
	if result.AlreadySubscribed {
		msg = "该邮箱已订阅"
	}
	response.RespondSuccess(c, result, msg)
}

// Unsubscribe 退订邮件
// @Summary      退订邮件
// @Tags         forms (表单)
// @Accept       json
// @Produce      json
// @Param        request body dto.NewsletterUnsubscribeRequest true "退订邮箱"
// @Success      200 {object} vo.NewsletterResponseWrapper "已退订"
// @Failure      400 {object} vo.ValidationErrorResponseWrapper "参数校验失败"
// @Failure      404 {object} vo.BaseResponseWrapper "邮箱未订阅"
// @Failure      500 {object} vo.BaseResponseWrapper "服务器内部错误"
// @Router       /api/v1/site/newsletter/unsubscribe [post]
func (ctrl *FormsController) Unsubscribe(c *gin.Context) {
	var req dto.NewsletterUnsubscribeRequest
	if err := c.ShouldBind(&req); err != nil {
		respondBindError(c, err)
		return
	}
	result, err := ctrl.formsService.Unsubscribe(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "退订")
		return
	}
	response.RespondSuccess(c, result, "已退订")
}

// RegisterRoutes 注册表单路由
func (ctrl *FormsController) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/contact", ctrl.SubmitContact)
	group.POST("/testimonials", ctrl.SubmitTestimonial)
	group.POST("/donations", ctrl.RecordDonation)
	newsletter := group.Group("/newsletter")
	{
		newsletter.POST("/subscribe", ctrl.Subscribe)
		newsletter.POST("/unsubscribe", ctrl.Unsubscribe)
	}
}

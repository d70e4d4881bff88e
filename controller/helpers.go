package controller

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/Xushengqwer/go-common/response"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/Xushengqwer/foundation_service/middleware"
	"github.com/Xushengqwer/foundation_service/models/vo"
	"github.com/Xushengqwer/foundation_service/myErrors"
	"github.com/Xushengqwer/foundation_service/workflow"
)

// RegisterValidatorTagNames 让校验错误使用 json / form 中的字段名，而不是 Go 结构体字段名
func RegisterValidatorTagNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return field.Name
	})
}

// respondBindError 参数绑定失败时返回 400。字段校验失败时 data.fields 给出每个字段的错误信息。
func respondBindError(c *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的请求参数: "+err.Error())
		return
	}
	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		fields[fe.Field()] = fieldMessage(fe)
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, vo.ValidationErrorResponseWrapper{
		Code:    int(response.ErrCodeClientInvalidInput),
		Message: "参数校验失败",
		Data:    vo.ValidationErrorData{Fields: fields},
	})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "不能为空"
	case "email":
		return "邮箱格式不正确"
	case "url":
		return "链接格式不正确"
	case "max":
		return fmt.Sprintf("长度不能超过 %s", fe.Param())
	case "len":
		return fmt.Sprintf("长度必须为 %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("取值必须是以下之一: %s", fe.Param())
	case "gt":
		return fmt.Sprintf("必须大于 %s", fe.Param())
	case "gte":
		return fmt.Sprintf("不能小于 %s", fe.Param())
	case "lte":
		return fmt.Sprintf("不能大于 %s", fe.Param())
	}
	return fmt.Sprintf("校验失败 (%s)", fe.Tag())
}

// respondServiceError 把服务层错误映射为 HTTP 状态码
func respondServiceError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, myErrors.ErrPermissionDenied):
		response.RespondError(c, http.StatusForbidden, response.ErrCodeClientUnauthorized, "没有权限"+action)
	case errors.Is(err, commonerrors.ErrRepoNotFound):
		response.RespondError(c, http.StatusNotFound, response.ErrCodeClientResourceNotFound, action+"失败: 资源不存在")
	case errors.Is(err, myErrors.ErrSlugTaken):
		response.RespondError(c, http.StatusConflict, response.ErrCodeClientInvalidInput, "slug 已被其他文章占用")
	case errors.Is(err, myErrors.ErrInvalidTransition):
		response.RespondError(c, http.StatusConflict, response.ErrCodeClientInvalidInput, "不允许的状态变更")
	case errors.Is(err, myErrors.ErrInvalidSlug),
		errors.Is(err, myErrors.ErrInvalidPartner),
		errors.Is(err, myErrors.ErrUploadTooLarge):
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, action+"失败: "+err.Error())
	case errors.Is(err, myErrors.ErrAssetStorageDisabled):
		response.RespondError(c, http.StatusServiceUnavailable, response.ErrCodeServerInternal, "图片存储未启用，暂时无法上传图片")
	case errors.Is(err, myErrors.ErrInvalidCredentials):
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "用户名或密码错误")
	default:
		response.RespondError(c, http.StatusInternalServerError, response.ErrCodeServerInternal, action+"失败: "+err.Error())
	}
}

// currentActor 取出 StaffAuth 注入的账号，缺失时直接返回 401
func currentActor(c *gin.Context) (workflow.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		response.RespondError(c, http.StatusUnauthorized, response.ErrCodeClientUnauthorized, "无法获取当前登录账号")
		return workflow.Actor{}, false
	}
	return actor, true
}

func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.RespondError(c, http.StatusBadRequest, response.ErrCodeClientInvalidInput, "无效的 ID 格式")
		return 0, false
	}
	return id, true
}

// optionalFile 读取 multipart 中的单个可选文件，非 multipart 请求或未上传时返回 nil
func optionalFile(c *gin.Context, field string) *multipart.FileHeader {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil
	}
	return fh
}

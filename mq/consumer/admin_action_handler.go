package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Xushengqwer/go-common/commonerrors"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/Xushengqwer/foundation_service/constant"
	"github.com/Xushengqwer/foundation_service/models/dto"
	"github.com/Xushengqwer/foundation_service/myErrors"
	"github.com/Xushengqwer/foundation_service/service"
)

// AdminActionHandler 消费管理后台下发的批量操作
type AdminActionHandler struct {
	logger        *zap.Logger
	actionService service.AdminActionService
	timeout       time.Duration
}

func NewAdminActionHandler(logger *zap.Logger, actionService service.AdminActionService) *AdminActionHandler {
	return &AdminActionHandler{
		logger:        logger,
		actionService: actionService,
		timeout:       constant.AdminActionHandleTimeout,
	}
}

// Handle 解析并执行一条批量操作。无法解析或执行失败的消息只记录日志，不重试。
func (h *AdminActionHandler) Handle(ctx context.Context, msg kafka.Message) error {
	var action dto.AdminActionMessage
	if err := json.Unmarshal(msg.Value, &action); err != nil {
		h.logger.Error("反序列化后台操作消息失败", zap.Error(err), zap.ByteString("value", msg.Value))
		return nil
	}
	fields := []zap.Field{
		zap.String("event_id", action.EventID),
		zap.String("entity", action.Entity),
		zap.String("action", action.Action),
		zap.Uint64s("ids", action.IDs),
		zap.Uint64("actor_id", action.ActorID),
	}
	h.logger.Info("收到后台批量操作", fields...)

	execCtx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	if err := h.actionService.Execute(execCtx, action); err != nil {
		switch {
		case errors.Is(err, myErrors.ErrUnsupportedAdminAction):
			h.logger.Warn("不支持的后台操作，已丢弃", fields...)
		case errors.Is(err, myErrors.ErrPermissionDenied):
			h.logger.Warn("发起账号无权执行该操作，已丢弃", fields...)
		case errors.Is(err, commonerrors.ErrRepoNotFound):
			h.logger.Warn("部分目标不存在", append(fields, zap.Error(err))...)
		default:
			h.logger.Error("执行后台批量操作失败", append(fields, zap.Error(err))...)
		}
		return nil
	}

	h.logger.Info("后台批量操作执行完成", fields...)
	return nil
}

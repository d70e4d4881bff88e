package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Xushengqwer/foundation_service/dependencies"
	"github.com/Xushengqwer/foundation_service/myErrors"
)

// uploadedAsset 已上传到 COS 的图片
type uploadedAsset struct {
	URL       string
	ObjectKey string
}

// mediaStore 封装图片上传与清理，文章封面和感言头像共用
type mediaStore struct {
	cosClient dependencies.COSClientInterface // 为 nil 表示未配置对象存储
	maxBytes  int64                           // <= 0 表示不限制
	logger    *zap.Logger
}

func newMediaStore(cosClient dependencies.COSClientInterface, maxUploadSizeMB int64, logger *zap.Logger) *mediaStore {
	return &mediaStore{
		cosClient: cosClient,
		maxBytes:  maxUploadSizeMB * 1024 * 1024,
		logger:    logger,
	}
}

// generateObjectKey 规则：<prefix>YYYYMMDD/<tag>_<uuid>.<ext>
func generateObjectKey(prefix, tag, originalFilename string, now time.Time) string {
	extension := strings.ToLower(filepath.Ext(originalFilename))
	return fmt.Sprintf("%s%s/%s_%s%s",
		prefix,
		now.Format("20060102"),
		tag,
		uuid.NewString(),
		extension,
	)
}

// upload 上传单张图片。fileHeader 为 nil 时返回 (nil, nil)。
func (m *mediaStore) upload(ctx context.Context, prefix, tag string, fileHeader *multipart.FileHeader) (*uploadedAsset, error) {
	if fileHeader == nil {
		return nil, nil
	}
	if m.cosClient == nil {
		return nil, myErrors.ErrAssetStorageDisabled
	}
	if m.maxBytes > 0 && fileHeader.Size > m.maxBytes {
		return nil, myErrors.ErrUploadTooLarge
	}

	file, err := fileHeader.Open()
	if err != nil {
		m.logger.Error("打开上传图片失败", zap.String("filename", fileHeader.Filename), zap.Error(err))
		return nil, fmt.Errorf("打开图片文件 %s 失败: %w", fileHeader.Filename, err)
	}
	defer file.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
		m.logger.Warn("未提供图片的内容类型，使用默认值",
			zap.String("filename", fileHeader.Filename),
			zap.String("defaultContentType", contentType))
	}

	objectKey := generateObjectKey(prefix, tag, fileHeader.Filename, time.Now())
	url, err := m.cosClient.UploadFile(ctx, objectKey, file, fileHeader.Size, contentType)
	if err != nil {
		m.logger.Error("上传图片到 COS 失败",
			zap.String("filename", fileHeader.Filename),
			zap.String("objectKey", objectKey),
			zap.Error(err))
		return nil, fmt.Errorf("上传图片 %s 到 COS 失败: %w", fileHeader.Filename, err)
	}
	m.logger.Info("成功上传图片到 COS", zap.String("objectKey", objectKey), zap.String("url", url))
	return &uploadedAsset{URL: url, ObjectKey: objectKey}, nil
}

// discard 数据库写入失败后删除已上传的孤儿对象。
// 使用独立的 context，请求被取消时也要完成清理。
func (m *mediaStore) discard(asset *uploadedAsset) {
	if asset == nil || m.cosClient == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := m.cosClient.DeleteObject(ctx, asset.ObjectKey); err != nil {
		m.logger.Error("清理 COS 孤儿对象失败", zap.String("objectKey", asset.ObjectKey), zap.Error(err))
		return
	}
	m.logger.Info("已清理 COS 孤儿对象", zap.String("objectKey", asset.ObjectKey))
}

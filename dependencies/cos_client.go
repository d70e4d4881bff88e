package dependencies

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/Xushengqwer/go-common/core"
	"github.com/tencentyun/cos-go-sdk-v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/Xushengqwer/foundation_service/config"
)

// COSClientInterface 媒体文件（文章封面、感言头像、合作伙伴图片）存储客户端
type COSClientInterface interface {
	// UploadFile 上传对象并返回公开访问 URL。objectKey 由调用方生成。
	UploadFile(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error)
	// DeleteObject 删除对象，用于保存失败后清理已上传的图片
	DeleteObject(ctx context.Context, objectKey string) error
}

type cosClient struct {
	objects    *cos.ObjectService
	publicBase *url.URL
	logger     *zap.Logger
}

// InitCOS 按配置创建媒体存储客户端。
// 未配置密钥时返回 (nil, nil)，此时站点照常运行但不接受图片上传。
func InitCOS(cfg *config.COSConfig, logger *core.ZapLogger) (COSClientInterface, error) {
	if cfg == nil || !cfg.Enabled() {
		logger.Warn("未配置 COS 密钥，图片上传将被禁用")
		return nil, nil
	}
	if cfg.BucketName == "" || cfg.AppID == "" || cfg.Region == "" {
		return nil, fmt.Errorf("COS 配置缺少 bucketName / appID / region")
	}

	bucket, err := url.Parse(fmt.Sprintf("https://%s-%s.cos.%s.myqcloud.com", cfg.BucketName, cfg.AppID, cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("拼接 COS 存储桶地址失败: %w", err)
	}
	public := bucket
	if cfg.BaseURL != "" {
		if public, err = url.Parse(cfg.BaseURL); err != nil {
			return nil, fmt.Errorf("解析 COS baseURL %q 失败: %w", cfg.BaseURL, err)
		}
	}

	httpClient := &http.Client{
		Transport: &cos.AuthorizationTransport{
			SecretID:  cfg.SecretID,
			SecretKey: cfg.SecretKey,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
	logger.Info("媒体存储已启用",
		zap.String("bucket", cfg.BucketName),
		zap.String("region", cfg.Region),
		zap.String("publicBase", public.String()),
	)
	return newCOSClient(bucket, public, httpClient, logger.Logger()), nil
}

func newCOSClient(bucket, publicBase *url.URL, httpClient *http.Client, logger *zap.Logger) *cosClient {
	return &cosClient{
		objects:    cos.NewClient(&cos.BaseURL{BucketURL: bucket}, httpClient).Object,
		publicBase: publicBase,
		logger:     logger,
	}
}

// objectURL 公开访问地址 = publicBase 的路径 + 对象键
func (c *cosClient) objectURL(objectKey string) string {
	u := *c.publicBase
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + strings.TrimPrefix(objectKey, "/")
	return u.String()
}

func (c *cosClient) UploadFile(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) (string, error) {
	resp, err := c.objects.Put(ctx, objectKey, reader, &cos.ObjectPutOptions{
		ObjectPutHeaderOptions: &cos.ObjectPutHeaderOptions{
			ContentType:   contentType,
			ContentLength: size,
		},
	})
	if err != nil {
		c.logger.Error("上传媒体文件失败", zap.String("key", objectKey), zap.Error(err))
		return "", fmt.Errorf("上传 %s 失败: %w", objectKey, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", unexpectedStatus("上传", objectKey, resp.Response)
	}
	return c.objectURL(objectKey), nil
}

func (c *cosClient) DeleteObject(ctx context.Context, objectKey string) error {
	resp, err := c.objects.Delete(ctx, objectKey)
	if err != nil {
		c.logger.Error("删除媒体文件失败", zap.String("key", objectKey), zap.Error(err))
		return fmt.Errorf("删除 %s 失败: %w", objectKey, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return unexpectedStatus("删除", objectKey, resp.Response)
	}
	c.logger.Debug("已删除媒体文件", zap.String("key", objectKey))
	return nil
}

func unexpectedStatus(op, objectKey string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return fmt.Errorf("%s %s 返回状态码 %d: %s", op, objectKey, resp.StatusCode, strings.TrimSpace(string(body)))
}

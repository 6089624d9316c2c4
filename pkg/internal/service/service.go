// Package service 实现整理引擎的业务逻辑：未整理文件列举、建议生成、
// 移动批次的应用与回退、整理历史维护.不处理 HTTP 细节.
package service

import (
	"context"
	"errors"
	"path"
	"strings"
	"sync"

	minio "github.com/minio/minio-go/v7"

	"github.com/tidyvault/tidyvault/pkg/configs"
	ctxPkg "github.com/tidyvault/tidyvault/pkg/context"
	"github.com/tidyvault/tidyvault/pkg/internal/classifier"
	nlog "github.com/tidyvault/tidyvault/pkg/log"
)

const (
	// DefaultSliceCapacity 默认slice预分配容量.
	DefaultSliceCapacity = 100
)

var (
	// ErrNothingToRevert 历史为空，没有可回退的批次.属正常空状态，不是故障.
	ErrNothingToRevert = errors.New("nothing to revert")
	// ErrHistoryCorrupt 历史文档无法解析.追加时按空历史处理，回退时致命.
	ErrHistoryCorrupt = errors.New("organization history corrupt")
)

// applyMu 串行化 apply/revert/move：历史文档是一次读-改-写，引擎假定同一时刻
// 至多一个在途的整理操作（单写者）.跨进程部署时需由外层保证.
var applyMu sync.Mutex

// ObjectStore 整理引擎依赖的对象存储原语，由 s3.Client 实现.
// 测试中以内存实现替代.
type ObjectStore interface {
	ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	CopyObject(ctx context.Context, dst minio.CopyDestOptions, src minio.CopySrcOptions) (minio.UploadInfo, error)
	RemoveObject(ctx context.Context, bucket string, object string, opts minio.RemoveObjectOptions) error
	GetObjectBytes(ctx context.Context, bucket, object string) ([]byte, error)
	PutObjectBytes(ctx context.Context, bucket, object string, data []byte, contentType string) error
}

// OrganizerService 负责整理引擎的全部操作.
type OrganizerService struct {
	store    ObjectStore
	bucket   string
	gateway  classifier.Classifier // 语言模型网关，可能为 nil（禁用时）
	fallback *classifier.RuleClassifier
	cfg      configs.OrganizerConfig
}

// NewOrganizerService 从 context 获取依赖实例.
func NewOrganizerService(c context.Context) *OrganizerService {
	s3c := ctxPkg.GetS3Client(c)

	// 为了安全起见，应该直接 panic 而不是返回 nil，依赖此服务就不需要再检查
	if s3c == nil || s3c.Client == nil {
		nlog.Logger().Fatal().Msg("storage clients not initialized")
	}

	appCfg := configs.GetConfig()

	return &OrganizerService{
		store:    s3c,
		bucket:   appCfg.S3.BucketName,
		gateway:  ctxPkg.GetClassifier(c),
		fallback: classifier.NewRuleClassifier(appCfg.Organizer.FallbackRules),
		cfg:      appCfg.Organizer,
	}
}

// prefixSegment 返回整理命名空间段（不含斜杠）.
func (o *OrganizerService) prefixSegment() string {
	p := strings.Trim(o.cfg.OrganizedPrefix, "/")
	if p == "" {
		p = configs.DefaultOrganizedPrefix
	}

	return p
}

// isOrganized 键中包含整理命名空间段即视为已整理.
func (o *OrganizerService) isOrganized(key string) bool {
	p := o.prefixSegment()

	return strings.HasPrefix(key, p+"/") || strings.Contains(key, "/"+p+"/")
}

// isMetadata 引擎自身的元数据命名空间（历史文档等）.
func (o *OrganizerService) isMetadata(key string) bool {
	return strings.HasPrefix(key, "_metadata/")
}

// organizedPath 计算移动目标键: <prefix>/<folder>/<basename>.
func (o *OrganizerService) organizedPath(folder, objectKey string) string {
	return path.Join(o.prefixSegment(), folder, path.Base(objectKey))
}

// parentFolder 对象键的父级段，位于桶根时为空.
func parentFolder(key string) string {
	dir := path.Dir(key)
	if dir == "." || dir == "/" {
		return ""
	}

	return dir
}

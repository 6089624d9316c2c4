package service

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	minio "github.com/minio/minio-go/v7"

	"github.com/tidyvault/tidyvault/pkg/configs"
	ctxPkg "github.com/tidyvault/tidyvault/pkg/context"
	s3c "github.com/tidyvault/tidyvault/pkg/internal/storage/s3"
	"github.com/tidyvault/tidyvault/pkg/internal/types"
	nlog "github.com/tidyvault/tidyvault/pkg/log"
)

const (
	// DefaultPresignedOpTimeout 默认预签名操作超时时间.
	DefaultPresignedOpTimeout = 15 * time.Minute
)

// FileService 负责文件上传（存入未整理命名空间，即桶根），不处理 HTTP 细节.
type FileService struct {
	s3Client *s3c.Client
	bucket   string
}

// NewFileService 从 context 获取依赖实例.
func NewFileService(c context.Context) *FileService {
	cli := ctxPkg.GetS3Client(c)

	// 为了安全起见，应该直接 panic 而不是返回 nil，依赖此服务就不需要再检查
	if cli == nil || cli.Client == nil {
		nlog.Logger().Fatal().Msg("storage clients not initialized")
	}

	return &FileService{
		s3Client: cli,
		bucket:   configs.GetConfig().S3.BucketName,
	}
}

// uploadObjectKey 上传对象键：取文件名的最后一段放在桶根（未整理命名空间）.
func uploadObjectKey(fileName string) (string, error) {
	name := path.Base(fileName)
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("invalid file name %q", fileName)
	}

	return name, nil
}

// PresignedPutURLs 生成预签名 PUT URLs，用于客户端批量直接上传.
func (fs *FileService) PresignedPutURLs(ctx context.Context, req *types.UploadFilesRequest) (*types.UploadFilesResponse, error) {
	results := make([]types.PresignedPutItem, 0, len(req.Files))

	for _, file := range req.Files {
		objectKey, err := uploadObjectKey(file.FileName)
		if err != nil {
			return nil, err
		}

		// 生成预签名 PUT URL
		url, err := fs.s3Client.PresignedPutObject(ctx, fs.bucket, objectKey, DefaultPresignedOpTimeout)
		if err != nil {
			return nil, fmt.Errorf("presign put for %s: %w", file.FileName, err)
		}

		results = append(results, types.PresignedPutItem{
			ObjectKey: objectKey,
			PutURL:    url.String(),
			ExpiresIn: int(DefaultPresignedOpTimeout.Seconds()),
		})
	}

	return &types.UploadFilesResponse{Results: results}, nil
}

// UploadSingleFile 直接上传单个小文件.
func (fs *FileService) UploadSingleFile(ctx context.Context, fileName string,
	fileReader io.Reader, size int64, contentType string) (*types.UploadFileResponse, error) {
	objectKey, err := uploadObjectKey(fileName)
	if err != nil {
		return nil, err
	}

	info, err := fs.s3Client.PutObject(ctx, fs.bucket, objectKey, fileReader, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return nil, fmt.Errorf("upload %s: %w", fileName, err)
	}

	return &types.UploadFileResponse{
		ObjectKey:    objectKey,
		Size:         info.Size,
		ETag:         info.ETag,
		LastModified: info.LastModified.UTC().Format(time.RFC3339),
	}, nil
}

// Package context 拓展上下文功能，将存储、分类器等依赖集成到上下文中，方便在应用程序各处传递和使用.
package context

import (
	"context"

	"github.com/tidyvault/tidyvault/pkg/internal/classifier"
	"github.com/tidyvault/tidyvault/pkg/internal/storage"
	s3c "github.com/tidyvault/tidyvault/pkg/internal/storage/s3"
)

type ContextKey string

const (
	StorageManagerKey ContextKey = "storageManager"
	ClassifierKey     ContextKey = "classifier"
)

// WithStorageManager 将 Manager 存储到 context 中.
func WithStorageManager(ctx context.Context, mgr *storage.Manager) context.Context {
	return context.WithValue(ctx, StorageManagerKey, mgr)
}

// GetManager 从 context 中获取 Manager.
func GetManager(ctx context.Context) *storage.Manager {
	if mgr, ok := ctx.Value(StorageManagerKey).(*storage.Manager); ok {
		return mgr
	}

	return nil
}

// GetS3Client 从 context 中获取 S3 客户端.
func GetS3Client(ctx context.Context) *s3c.Client {
	if mgr := GetManager(ctx); mgr != nil {
		return mgr.GetS3Client()
	}

	return nil
}

// WithClassifier 将分类器存储到 context 中.
func WithClassifier(ctx context.Context, cls classifier.Classifier) context.Context {
	return context.WithValue(ctx, ClassifierKey, cls)
}

// GetClassifier 从 context 中获取分类器，未注入时返回 nil（调用方退回规则分类）.
func GetClassifier(ctx context.Context) classifier.Classifier {
	if cls, ok := ctx.Value(ClassifierKey).(classifier.Classifier); ok {
		return cls
	}

	return nil
}

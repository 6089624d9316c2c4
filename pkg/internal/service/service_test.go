package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	minio "github.com/minio/minio-go/v7"

	"github.com/tidyvault/tidyvault/pkg/configs"
	"github.com/tidyvault/tidyvault/pkg/internal/classifier"
)

const testBucket = "tidyvault-test"

// fakeStore 内存对象存储，实现 ObjectStore，供 service 测试使用.
// failCopyTo / failRemove 按键注入失败.
type fakeStore struct {
	mu         sync.Mutex
	objects    map[string][]byte
	failCopyTo map[string]bool
	failRemove map[string]bool
}

func newFakeStore(keys ...string) *fakeStore {
	s := &fakeStore{
		objects:    make(map[string][]byte),
		failCopyTo: make(map[string]bool),
		failRemove: make(map[string]bool),
	}
	for _, k := range keys {
		s.objects[k] = []byte("data:" + k)
	}

	return s
}

func (s *fakeStore) ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	s.mu.Lock()

	sizes := make(map[string]int64, len(s.objects))
	keys := make([]string, 0, len(s.objects))

	for k, data := range s.objects {
		keys = append(keys, k)
		sizes[k] = int64(len(data))
	}

	s.mu.Unlock()
	sort.Strings(keys)

	ch := make(chan minio.ObjectInfo, len(keys))

	for _, k := range keys {
		ch <- minio.ObjectInfo{
			Key:          k,
			Size:         sizes[k],
			ETag:         "\"etag-" + k + "\"",
			LastModified: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		}
	}
	close(ch)

	return ch
}

func (s *fakeStore) CopyObject(ctx context.Context, dst minio.CopyDestOptions, src minio.CopySrcOptions) (minio.UploadInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failCopyTo[dst.Object] {
		return minio.UploadInfo{}, fmt.Errorf("injected copy failure for %s", dst.Object)
	}

	data, ok := s.objects[src.Object]
	if !ok {
		return minio.UploadInfo{}, minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."}
	}

	s.objects[dst.Object] = data

	return minio.UploadInfo{Bucket: dst.Bucket, Key: dst.Object}, nil
}

func (s *fakeStore) RemoveObject(ctx context.Context, bucket, object string, opts minio.RemoveObjectOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failRemove[object] {
		return fmt.Errorf("injected remove failure for %s", object)
	}

	delete(s.objects, object)

	return nil
}

func (s *fakeStore) GetObjectBytes(ctx context.Context, bucket, object string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, ok := s.objects[object]
	if !ok {
		return nil, minio.ErrorResponse{Code: "NoSuchKey", Message: "The specified key does not exist."}
	}

	return data, nil
}

func (s *fakeStore) PutObjectBytes(ctx context.Context, bucket, object string, data []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[object] = data

	return nil
}

func (s *fakeStore) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.objects[key]

	return ok
}

// fakeGateway 可编程的分类网关.
type fakeGateway struct {
	mapping map[string]string
	err     error
}

func (g *fakeGateway) Classify(ctx context.Context, names []string) (map[string]string, error) {
	if g.err != nil {
		return nil, g.err
	}

	return g.mapping, nil
}

// newTestService 构造直连 fakeStore 的 OrganizerService.
func newTestService(store *fakeStore, gateway classifier.Classifier) *OrganizerService {
	return &OrganizerService{
		store:    store,
		bucket:   testBucket,
		gateway:  gateway,
		fallback: classifier.NewRuleClassifier(nil),
		cfg: configs.OrganizerConfig{
			OrganizedPrefix: configs.DefaultOrganizedPrefix,
			HistoryKey:      configs.DefaultHistoryKey,
		},
	}
}

package data

import (
	"context"

	"github.com/hcmlabs/blogpipe/internal/biz/repo"
	"github.com/hcmlabs/blogpipe/internal/infra/webdav"
)

// storageRepo implements the Storage repository over the WebDAV client
type storageRepo struct {
	client *webdav.Client
}

// NewStorageRepo creates a new Storage repository
func NewStorageRepo(client *webdav.Client) repo.StorageRepo {
	return &storageRepo{client: client}
}

// Upload stores content at the remote path
func (r *storageRepo) Upload(ctx context.Context, remotePath string, content []byte) error {
	return r.client.Upload(ctx, remotePath, content)
}

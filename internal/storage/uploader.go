// Package storage uploads tree photos to the Firebase-backed GCS bucket and
// returns tokenized public URLs.
package storage

import (
	"context"
	"fmt"
	"net/url"
	"path"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

type Uploader struct {
	client *gcs.Client
	bucket string
}

func NewUploader(ctx context.Context, bucket string) (*Uploader, error) {
	client, err := gcs.NewClient(ctx, option.WithScopes(gcs.ScopeReadWrite))
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	return &Uploader{client: client, bucket: bucket}, nil
}

// UploadTreePhoto stores the image under tree-photos/<uid>/ and returns a
// public download URL carrying a fresh Firebase download token.
func (u *Uploader) UploadTreePhoto(ctx context.Context, uid, filename, contentType string, data []byte) (string, error) {
	token := uuid.NewString()
	objectPath := path.Join("tree-photos", uid, uuid.NewString()+path.Ext(filename))
	obj := u.client.Bucket(u.bucket).Object(objectPath)
	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{
		"firebaseStorageDownloadTokens": token,
	}
	if _, err := w.Write(data); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	publicURL := fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		u.bucket, url.PathEscape(objectPath), token)
	return publicURL, nil
}

func (u *Uploader) Close() error {
	return u.client.Close()
}

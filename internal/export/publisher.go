package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"jobtracker/internal/storage"
)

var ErrEmptyFile = errors.New("export file is empty")

// Link is what a client receives after an export: a filename and a time-limited URL.
type Link struct {
	Filename  string    `json:"filename"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Publisher stores rendered files and hands out download links.
type Publisher interface {
	Publish(ctx context.Context, ownerID string, f File) (*Link, error)
}

type publisher struct {
	store  storage.Storage
	expiry time.Duration
	now    func() time.Time
}

// NewPublisher uploads through store and presigns links valid for expiry.
func NewPublisher(store storage.Storage, expiry time.Duration) Publisher {
	return &publisher{store: store, expiry: expiry, now: time.Now}
}

var _ Publisher = (*publisher)(nil)

func (p *publisher) Publish(ctx context.Context, ownerID string, f File) (*Link, error) {
	if len(f.Body) == 0 {
		return nil, ErrEmptyFile
	}
	key := storage.ExportKey(ownerID, f.Filename)

	info, err := p.store.Put(ctx, key, bytes.NewReader(f.Body), storage.PutObjectOptions{
		Size:        int64(len(f.Body)),
		ContentType: f.ContentType,
		Metadata:    map[string]string{"owner-id": ownerID},
	})
	if err != nil {
		return nil, fmt.Errorf("upload export: %w", err)
	}

	url, err := p.store.PresignGet(ctx, info.Key, p.expiry)
	if err != nil {
		// Drop the orphan; the client never learns its key.
		if delErr := p.store.Delete(ctx, info.Key); delErr != nil {
			return nil, fmt.Errorf("presign failed: %v; cleanup failed: %v", err, delErr)
		}
		return nil, fmt.Errorf("presign export: %w", err)
	}
	return &Link{Filename: f.Filename, URL: url, ExpiresAt: p.now().Add(p.expiry).UTC()}, nil
}

package wizard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PhotoStatus is the upload lifecycle of one queued photo.
type PhotoStatus string

const (
	PhotoPending   PhotoStatus = "pending"
	PhotoUploading PhotoStatus = "uploading"
	PhotoDone      PhotoStatus = "done"
	PhotoFailed    PhotoStatus = "failed"
)

const (
	DefaultMaxFiles     = 10
	DefaultMaxSizeBytes = 5 * 1024 * 1024 // 5 MiB per file
)

// Uploader is the photo upload collaborator: binary in, resolved URL out.
type Uploader interface {
	Upload(ctx context.Context, fileName string, content []byte) (string, error)
}

// PhotoFile is a file handed to the wizard by the caller.
type PhotoFile struct {
	Name    string
	Content []byte
}

// PhotoItem is one entry in the photo queue. Oversized files are kept as
// failed items rather than silently dropped.
type PhotoItem struct {
	ID       string
	FileName string
	Content  []byte
	Preview  string
	URL      string
	Progress int
	Status   PhotoStatus
	Err      string
}

// AddPhotos queues files up to MaxFiles; extra files are ignored. Files
// over MaxSizeBytes are queued as failed with a per-item error.
func (w *Wizard) AddPhotos(files []PhotoFile) {
	room := w.MaxFiles - len(w.Photos)
	if room < 0 {
		room = 0
	}
	if len(files) > room {
		files = files[:room]
	}
	for _, f := range files {
		item := PhotoItem{
			ID:       uuid.New().String(),
			FileName: f.Name,
			Content:  f.Content,
			Status:   PhotoPending,
		}
		if int64(len(f.Content)) > w.MaxSizeBytes {
			item.Content = nil
			item.Status = PhotoFailed
			item.Err = "File too large (max 5MB)"
		} else {
			item.Preview = fmt.Sprintf("file://%s/%d", f.Name, time.Now().UnixMilli())
		}
		w.Photos = append(w.Photos, item)
	}
}

// RemovePhoto drops an item from the queue.
func (w *Wizard) RemovePhoto(id string) {
	for i, p := range w.Photos {
		if p.ID == id {
			w.Photos = append(w.Photos[:i], w.Photos[i+1:]...)
			return
		}
	}
}

// MovePhoto swaps an item with its neighbor (offset -1 or +1); the queue
// order defines image positions, first item is the cover.
func (w *Wizard) MovePhoto(id string, offset int) {
	if offset != -1 && offset != 1 {
		return
	}
	for i, p := range w.Photos {
		if p.ID == id {
			j := i + offset
			if j < 0 || j >= len(w.Photos) {
				return
			}
			w.Photos[i], w.Photos[j] = w.Photos[j], w.Photos[i]
			return
		}
	}
}

// UploadPhoto runs one item through the upload collaborator. A failed
// upload marks only that item; siblings are untouched. Also used for retry.
func (w *Wizard) UploadPhoto(ctx context.Context, id string) error {
	idx := -1
	for i, p := range w.Photos {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 || w.Uploader == nil || len(w.Photos[idx].Content) == 0 {
		return nil
	}
	w.Photos[idx].Status = PhotoUploading
	w.Photos[idx].Progress = 0
	w.Photos[idx].Err = ""

	url, err := w.Uploader.Upload(ctx, w.Photos[idx].FileName, w.Photos[idx].Content)
	if err != nil {
		w.Photos[idx].Status = PhotoFailed
		w.Photos[idx].Err = err.Error()
		return err
	}
	w.Photos[idx].URL = url
	w.Photos[idx].Progress = 100
	w.Photos[idx].Status = PhotoDone
	return nil
}

// UploadPending uploads every pending item in order; per-item failures are
// isolated and do not stop the batch.
func (w *Wizard) UploadPending(ctx context.Context) {
	for _, p := range w.Photos {
		if p.Status == PhotoPending {
			_ = w.UploadPhoto(ctx, p.ID)
		}
	}
}

package doctor

import (
	"context"
	"fmt"
	"time"

	"github.com/hay-kot/moment/internal/core/session"
)

// StorageCheck reports on the persisted rotation session.
type StorageCheck struct {
	store    session.Store
	path     string
	duration time.Duration
	now      func() time.Time
}

// NewStorageCheck creates a check of the session stored at path.
func NewStorageCheck(store session.Store, path string, duration time.Duration) *StorageCheck {
	return &StorageCheck{store: store, path: path, duration: duration, now: time.Now}
}

func (c *StorageCheck) Name() string {
	return "Session Storage"
}

func (c *StorageCheck) Run(ctx context.Context) Result {
	result := Result{Name: c.Name()}

	sess, ok := c.store.Load(ctx)
	switch {
	case !ok:
		result.Items = append(result.Items, CheckItem{
			Label:  "Session",
			Status: StatusPass,
			Detail: "none stored, a new one starts on next run",
		})
	case sess.IsEmpty():
		result.Items = append(result.Items, CheckItem{
			Label:  "Session",
			Status: StatusWarn,
			Detail: "stored session has no chunk order and will be replaced",
		})
	case sess.Expired(c.now(), c.duration):
		result.Items = append(result.Items, CheckItem{
			Label:  "Session",
			Status: StatusPass,
			Detail: "expired, a new one starts on next run",
		})
	default:
		left := sess.StartTime().Add(c.duration).Sub(c.now()).Round(time.Minute)
		result.Items = append(result.Items, CheckItem{
			Label:  "Session",
			Status: StatusPass,
			Detail: fmt.Sprintf("chunk %d/%d, %d quote(s) buffered, expires in %s",
				sess.Pointer, len(sess.ChunkOrder), len(sess.Remaining), left),
		})
	}

	// A save round trip proves the file is writable and lockable.
	if ok {
		if err := c.store.Save(ctx, sess); err != nil {
			result.Items = append(result.Items, CheckItem{
				Label:  "Writable",
				Status: StatusFail,
				Detail: err.Error(),
			})
			return result
		}
	}

	result.Items = append(result.Items, CheckItem{
		Label:  "Location",
		Status: StatusPass,
		Detail: c.path,
	})

	return result
}

// Package media keeps uploaded files on the public disk.
package media

import (
	"context"
	"net/http"
	"time"

	"github.com/gosimple/slug"
)

// Storage persists files and returns their public URLs.
type Storage interface {
	Put(ctx context.Context, name string, img *Image) (string, error)
	Delete(ctx context.Context, url string) error
}

// Mountable is implemented by disks served by this process.
type Mountable interface {
	Mount() (prefix string, fs http.FileSystem)
}

// Filename builds stored file name from upload time and placement area.
func Filename(now time.Time, area, ext string) string {
	return slug.Make(now.Format("2006-01-02 15:04:05")+"-"+area) + "." + ext
}

package media

import (
	"context"

	"github.com/spf13/afero"
	"go.uber.org/fx"

	"github.com/polkiloo/marketplace/internal/config"
)

// Module provides the configured public disk.
var Module = fx.Provide(newStorage)

type storageParams struct {
	fx.In

	Ctx    context.Context
	Config *config.Config
}

func newStorage(p storageParams) (Storage, error) {
	if p.Config.Media.Disk == config.MediaDiskS3 {
		return NewS3Storage(p.Ctx, p.Config.Media)
	}
	return NewLocalStorage(afero.NewOsFs(), p.Config.Media.Root, p.Config.Media.PublicURL), nil
}

package repository

import (
	"context"

	"github.com/smallbiznis/retailpos/internal/catalog/domain"
	"github.com/smallbiznis/retailpos/internal/config"
	obslogger "github.com/smallbiznis/retailpos/internal/observability/logger"
	"github.com/smallbiznis/retailpos/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    config.Config
	Log       *zap.Logger
}

// Provide selects the catalog backend from configuration.
func Provide(p Params) (domain.Store, error) {
	backend := p.Config.Catalog.Backend
	if backend == "" || backend == config.BackendFile {
		return NewFileStore(p.Config.Data.ProductsPath(), p.Log), nil
	}

	dialector, err := db.Dialect(backend, p.Config.Catalog.DSN)
	if err != nil {
		return nil, err
	}
	conn, err := db.Open(dialector, obslogger.NewGormLogger(p.Log))
	if err != nil {
		return nil, err
	}
	if p.Lifecycle != nil {
		p.Lifecycle.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				sqlDB, err := conn.DB()
				if err != nil {
					return err
				}
				return sqlDB.Close()
			},
		})
	}

	p.Log.Debug("catalog backend selected", zap.String("backend", backend))
	return NewSQLStore(conn)
}

package wire

import (
	"context"
	"io"
	"log"
	"os"

	"github.com/spf13/viper"

	"github.com/mithrel/hanashi/internal/config"
	"github.com/mithrel/hanashi/internal/db"
	"github.com/mithrel/hanashi/internal/library"
)

// App aggregates the major services for easy injection.
type App struct {
	Cfg    *viper.Viper
	Log    *log.Logger
	Store  db.Store
	Lib    *library.Library
	closer io.Closer
}

// BuildApp wires dependencies with the provided config.
func BuildApp(ctx context.Context, cfg *viper.Viper) (*App, error) {
	logger := log.New(os.Stderr, "hanashi ", log.LstdFlags)
	store, closer, err := db.Open(ctx, config.DBURL(cfg))
	if err != nil {
		return nil, err
	}
	return &App{
		Cfg:    cfg,
		Log:    logger,
		Store:  store,
		Lib:    library.New(store),
		closer: closer,
	}, nil
}

// Close releases the store.
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

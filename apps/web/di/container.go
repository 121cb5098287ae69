// Package di wires the web application with a dig container.
package di

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoweb "github.com/trezcool/eduverse/apps/web/echo"
	"github.com/trezcool/eduverse/core"
	"github.com/trezcool/eduverse/core/catalog"
	"github.com/trezcool/eduverse/core/certificate"
	"github.com/trezcool/eduverse/core/classroom"
	"github.com/trezcool/eduverse/core/progress"
	"github.com/trezcool/eduverse/core/session"
	"github.com/trezcool/eduverse/core/user"
	emailsvc "github.com/trezcool/eduverse/services/email"
	logsvc "github.com/trezcool/eduverse/services/logger"
	"github.com/trezcool/eduverse/storage/assets/fsassets"
	"github.com/trezcool/eduverse/storage/assets/gcsassets"
	inmemdb "github.com/trezcool/eduverse/storage/database/inmem"
	"github.com/trezcool/eduverse/storage/kv/inmemkv"
	"github.com/trezcool/eduverse/storage/kv/rediskv"
)

// Closers are closed, in reverse order, when the application stops.
type Closers struct {
	mu   sync.Mutex
	list []io.Closer
}

func (c *Closers) add(cl io.Closer) {
	c.mu.Lock()
	c.list = append(c.list, cl)
	c.mu.Unlock()
}

func (c *Closers) Close(logger core.Logger) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.list) - 1; i >= 0; i-- {
		if err := c.list[i].Close(); err != nil {
			logger.Error(fmt.Sprintf("closing resource: %v", err), err)
		}
	}
	c.list = nil
}

func newLogger(conf *core.Config) core.Logger {
	return logsvc.NewRollbarLogger(logsvc.NewLogrus(conf, os.Stdout), conf)
}

func newValidator() (*validator.Validate, ut.Translator) {
	return core.NewValidator()
}

func newKeyValueStore(conf *core.Config, logger core.Logger, closers *Closers) core.KeyValueStore {
	if conf.Storage.Backend != "redis" {
		return inmemkv.New()
	}

	store := rediskv.New(rediskv.NewClient(conf), conf.Visitor.TTL)
	if err := store.Ping(context.Background()); err != nil {
		logger.Fatal(fmt.Sprintf("connecting to redis: %v", err), err)
	}
	closers.add(store)
	return store
}

func newAssetSource(conf *core.Config, logger core.Logger, closers *Closers) core.AssetSource {
	if conf.Assets.Backend != "gcs" {
		return fsassets.New(conf.Assets.Dir)
	}

	client, err := gcsassets.NewClient(context.Background(), conf.Assets.GCSCredentialsFile)
	if err != nil {
		logger.Fatal(fmt.Sprintf("creating storage client: %v", err), err)
	}
	src := gcsassets.New(client, conf.Assets.GCSBucket)
	closers.add(src)
	return src
}

func newDB(logger core.Logger) *inmemdb.DB {
	db, err := inmemdb.Open()
	if err != nil {
		logger.Fatal(fmt.Sprintf("seeding database: %v", err), err)
	}
	return db
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newValidator))
	must(c.Provide(func() *Closers { return &Closers{} }))
	must(c.Provide(newKeyValueStore))
	must(c.Provide(newAssetSource))
	must(c.Provide(newDB))
	must(c.Provide(inmemdb.NewUserRepository))
	must(c.Provide(inmemdb.NewCatalogRepository))
	must(c.Provide(user.NewService))
	must(c.Provide(catalog.NewService))
	must(c.Provide(emailsvc.NewService))
	must(c.Provide(session.NewManager))
	must(c.Provide(progress.NewService))
	must(c.Provide(certificate.NewGenerator))
	must(c.Provide(classroom.NewAssetLoader))
	must(c.Provide(echoweb.NewServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/trezcool/eduverse/core"
	"github.com/trezcool/eduverse/core/catalog"
	"github.com/trezcool/eduverse/core/certificate"
	"github.com/trezcool/eduverse/core/user"
	logsvc "github.com/trezcool/eduverse/services/logger"
	inmemdb "github.com/trezcool/eduverse/storage/database/inmem"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(logsvc.NewLogrus(conf, os.Stderr), conf)

	db, err := inmemdb.Open()
	if err != nil {
		logger.Fatal(fmt.Sprintf("seeding database: %v", err), err)
	}
	validate, _ := core.NewValidator()

	// start CLI
	cli := commandLine{
		out:      os.Stdout,
		usrSvc:   user.NewService(inmemdb.NewUserRepository(db)),
		catSvc:   catalog.NewService(inmemdb.NewCatalogRepository(db)),
		certGen:  certificate.NewGenerator(conf),
		validate: validate,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error(fmt.Sprintf("admin: %v", err), err)
		}
		os.Exit(1)
	}
}

package main

import (
	"context"
	"net/http"

	"cloyt/admin"
	"cloyt/bizerror"
	"cloyt/common"
	"cloyt/domain"
	"cloyt/infra/tracing"
	"cloyt/persistence"
	"cloyt/servehttp"
	"cloyt/session"
	"cloyt/syncer"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	common.Log.Info("service start")

	if err := godotenv.Load(); err != nil {
		common.Log.Infof("no .env file loaded: %v", err)
	}

	dbConfig, err := persistence.ParseDatabaseConfigFromEnv()
	if err != nil {
		common.Log.Fatalf("parse database config failed %v", err)
	}

	// create database (no conflict)
	if dbConfig.DriverType == "mysql" {
		if err := persistence.PrepareMysqlDatabase(dbConfig.DriverArgs); err != nil {
			common.Log.Fatalf("failed to prepare database %v", err)
		}
	}

	// connect database
	ds := &persistence.DataSourceManager{DatabaseConfig: dbConfig}
	if err := ds.Start(); err != nil {
		common.Log.Fatalf("database connection failed %v", err)
	}
	defer ds.Stop()
	persistence.ActiveDataSourceManager = ds

	// database migration (race condition)
	err = ds.GormDB(context.Background()).AutoMigrate(
		&domain.Employee{}, &domain.Project{}, &domain.WorkItemType{},
		&domain.ProjectMember{}, &domain.WorkItem{}).Error
	if err != nil {
		common.Log.Fatalf("database migration failed %v", err)
	}

	syncConfig, err := syncer.ParseSyncConfigFromEnv()
	if err != nil {
		common.Log.Fatalf("parse sync config failed %v", err)
	}
	synchronizer, err := syncer.NewSynchronizer(*syncConfig)
	if err != nil {
		common.Log.Fatalf("build synchronizer failed %v", err)
	}
	go synchronizer.Run()

	adminAccount, err := session.ParseAdminAccountFromEnv()
	if err != nil {
		common.Log.Fatalf("parse admin account failed %v", err)
	}

	engine := gin.Default()
	engine.Use(bizerror.ErrorHandling(), tracing.TracingIngress())
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "cloyt")
	})

	session.RegisterSessionsHandler(engine, adminAccount)
	admin.RegisterEmployeesHandler(engine, session.SimpleAuthFilter())
	admin.RegisterProjectsHandler(engine, session.SimpleAuthFilter())
	admin.RegisterProjectMembersHandler(engine, session.SimpleAuthFilter())
	admin.RegisterWorkItemsHandler(engine, session.SimpleAuthFilter())

	servehttp.StartHTTPServer(engine)
}

package main

import (
	"fmt"
	"os"

	"csirt-registry/internal/config"
	"csirt-registry/internal/database"
	"csirt-registry/internal/identity"
	"csirt-registry/internal/logging"
	"csirt-registry/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	if err := logging.Setup(cfg.LogLevel); err != nil {
		logrus.Fatalf("invalid LOG_LEVEL: %v", err)
	}
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Open(cfg.DBDSN)
	if err != nil {
		logrus.Fatal(err)
	}

	local := cfg.AuthProvider == config.ProviderLocal
	if cfg.AutoMigrate {
		if err := database.Migrate(db, local); err != nil {
			logrus.Fatal(err)
		}
	}

	var provider identity.Provider
	if local {
		if err := database.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			logrus.WithError(err).Error("failed to seed default admin")
		}
		provider = identity.NewLocal(db, cfg.JWTSecret)
	} else {
		provider = identity.NewSupabase(cfg.SupabaseURL, cfg.ServiceRoleKey, nil)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := server.NewRouter(cfg, server.Deps{
		Store:    database.NewGormStore(db),
		Identity: provider,
		Registry: registry,
	})

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	logrus.WithField("auth_provider", cfg.AuthProvider).Infof("starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		logrus.Fatalf("server error: %v", err)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/ridloal/product-service/internal/platform/config"
	"github.com/ridloal/product-service/internal/platform/database"
	"github.com/ridloal/product-service/internal/platform/logger"
	"github.com/ridloal/product-service/internal/platform/middleware"
	productAPI "github.com/ridloal/product-service/internal/product/api"
	productRepo "github.com/ridloal/product-service/internal/product/repository"
	productService "github.com/ridloal/product-service/internal/product/service"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "product-service",
		Short: "Product catalog service",
	}
	rootCmd.AddCommand(serveCommand(), migrateCommand())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load Config
			cfg := config.Load()
			gin.SetMode(cfg.Server.GinMode)

			logger.Info("Starting Product Service...", logger.Fields{"backend": cfg.DB.Backend})

			// Setup Database
			repo, closeDB, err := openRepository(cfg.DB)
			if err != nil {
				logger.Error("Failed to connect to database for Product Service", err)
				return err
			}
			defer closeDB()

			// Setup Dependencies
			prodService := productService.NewProductService(repo)
			productHandler := productAPI.NewProductHandler(prodService, middleware.BearerAuth(cfg.Auth.JWTSecret))
			if cfg.Auth.JWTSecret == "" {
				logger.Warn("JWT_SECRET_KEY not set, product writes are unauthenticated")
			}

			router := productAPI.NewRouter(productHandler)

			logger.Info("Product Service running on port " + cfg.Server.Port)
			if err := router.Run(cfg.Server.Port); err != nil {
				logger.Error("Failed to run Product Service server", err)
				return err
			}
			return nil
		},
	}
}

// openRepository connects the configured backend and returns its repository
// together with a close function.
func openRepository(cfg config.DBConfig) (productRepo.ProductRepository, func(), error) {
	switch cfg.Backend {
	case config.BackendGorm:
		db, err := database.OpenGorm(cfg)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
		if cfg.AutoMigrate {
			if err := productRepo.AutoMigrate(db); err != nil {
				closeFn()
				return nil, nil, fmt.Errorf("auto migrate failed: %w", err)
			}
		}
		return productRepo.NewGormProductRepository(db), closeFn, nil

	case config.BackendSQLX, "":
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, nil, err
		}
		if cfg.AutoMigrate {
			if err := database.Migrate(db.DB, database.MigrateUp); err != nil {
				db.Close()
				return nil, nil, err
			}
		}
		return productRepo.NewPostgresProductRepository(db), func() { db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown DB_BACKEND %q", cfg.Backend)
	}
}

func migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "apply or revert the SQL schema migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{database.MigrateUp, database.MigrateDown},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			db, err := database.Connect(cfg.DB)
			if err != nil {
				return err
			}
			defer db.Close()

			return database.Migrate(db.DB, args[0])
		},
	}
}

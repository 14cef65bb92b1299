package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"world-manager/core/config"
	"world-manager/core/loader"
	"world-manager/core/logger"
	"world-manager/core/middleware/auth"
	"world-manager/core/middleware/rayid"
	"world-manager/core/source"
	"world-manager/core/storage"
	"world-manager/core/store"

	"world-manager/feature/integrity"
	"world-manager/feature/items"
	"world-manager/feature/world"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the world manager server",
	Long:  `Starts the HTTP inspection server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to the table store
		client, err := store.NewClient(cfg.Store)
		if err != nil {
			logg.Fatal("Failed to create store client", zap.Error(err))
		}
		st := store.New(client, logg)
		tables := cfg.Store.Tables()

		// 4. Document source (Storage client only needed in bucket mode)
		var storageClient storage.Client
		if cfg.Source.Mode == source.ModeBucket {
			storageClient, err = storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
		}
		src, err := source.New(cfg.Source, storageClient, cfg.Storage.Bucket)
		if err != nil {
			logg.Fatal("Failed to create document source", zap.Error(err))
		}
		logg.Info("Document source ready", zap.String("mode", cfg.Source.Mode))

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()

		// Register Features
		worldFeature := world.NewFeature(st, tables, src, cfg.World, logg)
		mgr.Register(worldFeature)
		mgr.Register(items.NewFeature(st, tables, logg))
		mgr.Register(integrity.NewFeature(worldFeature.Service(), st, tables, src, cfg.World, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(cfg.Server.Addr()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meal-concierge/internal/api"
	"meal-concierge/internal/app"
	"meal-concierge/internal/auth"
	"meal-concierge/internal/config"
	"meal-concierge/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.NewFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.UsesDefaultAdminKey() {
		log.Warn("ADMIN_RELOAD_KEY is not set; admin tokens use the placeholder key")
	}

	ctx := context.Background()

	switch os.Args[1] {
	case "admin-token":
		tokenCmd := flag.NewFlagSet("admin-token", flag.ExitOnError)
		ttl := tokenCmd.Duration("ttl", auth.DefaultTTL, "Token lifetime")
		tokenCmd.Parse(os.Args[2:])

		issuer, err := auth.NewIssuer(cfg.AdminKey, *ttl)
		if err != nil {
			log.Fatal("failed to create token issuer", "error", err)
		}
		token, err := issuer.IssueAdminToken()
		if err != nil {
			log.Fatal("failed to issue admin token", "error", err)
		}
		fmt.Println(token)
		return
	}

	application, closeApp, err := app.Build(ctx, cfg, log)
	if err != nil {
		log.Fatal("failed to initialize application", "error", err)
	}
	defer closeApp()

	switch os.Args[1] {
	case "serve":
		if err := serve(cfg, application, log); err != nil {
			log.Error("server failed", "error", err)
		}
	case "plan":
		runPlan(ctx, application, log)
	case "seed-catalog":
		n, err := application.SeedCatalog(ctx)
		if err != nil {
			log.Fatal("seeding failed", "error", err)
		}
		fmt.Printf("Stored %d seed menu items.\n", n)
	case "import-catalog":
		importCmd := flag.NewFlagSet("import-catalog", flag.ExitOnError)
		file := importCmd.String("file", "", "JSON array of menu items")
		importCmd.Parse(os.Args[2:])
		if *file == "" {
			fmt.Println("import-catalog requires -file")
			os.Exit(1)
		}

		f, err := os.Open(*file)
		if err != nil {
			log.Fatal("failed to open catalog file", "file", *file, "error", err)
		}
		defer f.Close()

		n, err := application.ImportCatalog(ctx, f)
		if err != nil {
			log.Fatal("import failed", "file", *file, "error", err)
		}
		fmt.Printf("Imported %d menu items. Catalog now has %d items.\n", n, application.Catalog().Len())
	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		affected, err := application.CleanupMetrics(ctx, *days)
		if err != nil {
			log.Fatal("cleanup failed", "error", err)
		}
		fmt.Printf("Successfully removed %d old metric records.\n", affected)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runPlan(ctx context.Context, application *app.App, log *logger.Logger) {
	planCmd := flag.NewFlagSet("plan", flag.ExitOnError)
	var req app.PlanRequest
	planCmd.StringVar(&req.Calories, "calories", "", "Explicit daily calories")
	planCmd.StringVar(&req.TDEE, "tdee", "", "Total daily energy expenditure")
	planCmd.StringVar(&req.Goal, "goal", "", "loss25, maintain or gain10")
	planCmd.StringVar(&req.Sex, "sex", "", "male or female")
	planCmd.StringVar(&req.WeightLb, "weight-lb", "", "Body weight in pounds")
	planCmd.StringVar(&req.HeightIn, "height-in", "", "Height in inches")
	planCmd.StringVar(&req.Age, "age", "", "Age in years")
	planCmd.StringVar(&req.Activity, "activity", "", "sedentary, light, moderate, very or athlete")
	planCmd.StringVar(&req.ProteinStrategy, "protein-strategy", "", "percent or per_lb")
	planCmd.StringVar(&req.ProteinPercent, "protein-percent", "", "Protein share of calories (0-1)")
	planCmd.StringVar(&req.ProteinPerLb, "protein-per-lb", "", "Protein grams per lb of body weight")
	planCmd.StringVar(&req.Cuisine, "cuisine", "", "Cuisine prefix filter")
	planCmd.StringVar(&req.Chain, "chain", "", "Restaurant chain filter")
	planCmd.StringVar(&req.Days, "days", "", "Number of days")
	planCmd.StringVar(&req.MealsPerDay, "meals-per-day", "", "Meals per day")
	planCmd.StringVar(&req.Seed, "seed", "", "Random seed for a reproducible plan")
	planCmd.Parse(os.Args[2:])

	plan, err := application.GeneratePlan(ctx, req)
	if err != nil {
		log.Fatal("plan generation failed", "error", err)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(plan); err != nil {
		log.Fatal("failed to encode plan", "error", err)
	}
}

func serve(cfg *config.Config, application *app.App, log *logger.Logger) error {
	issuer, err := auth.NewIssuer(cfg.AdminKey, auth.DefaultTTL)
	if err != nil {
		return err
	}

	router := api.NewRouter(api.RouterConfig{
		Handler:        api.NewHandler(application, log),
		Verifier:       issuer,
		Log:            log,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("http server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return err
	case <-quit:
	}
	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

func printUsage() {
	fmt.Println("Usage: meal-concierge <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  serve              Run the HTTP API")
	fmt.Println("  plan               Print a meal plan as JSON (see plan -h)")
	fmt.Println("  seed-catalog       Store the built-in seed menu in the database")
	fmt.Println("  import-catalog     Import menu items from a JSON file (-file)")
	fmt.Println("  admin-token        Print a short-lived admin API token")
	fmt.Println("  metrics-cleanup    Remove old metric records (-days)")
}

package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"pitchcraft/internal/catalog"
	"pitchcraft/internal/config"
	"pitchcraft/internal/domain/services"
	"pitchcraft/internal/repository/postgres"
	"pitchcraft/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before seeding (fresh start)")
	schemaOnly := flag.Bool("schema-only", false, "Only set up schema, don't seed demo data")
	demoUserID := flag.String("user", "00000000-0000-0000-0000-000000000001", "User id to own the demo proposal")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("🚫 BLOCKED: Cannot run --drop-tables in production environment")
	}

	// Setup logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	if *schemaOnly {
		log.Printf("🏗️  Setting up schema only (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	} else {
		log.Printf("🌱 Seeding database (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)
	}

	// Create database connection pool
	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("🗑️  Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("✅ Tables dropped")
	}

	log.Println("📋 Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("✅ Schema ready")

	if *schemaOnly {
		log.Println("✅ Schema setup complete (schema-only mode)")
		return
	}

	// Create repositories and services
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	proposalRepo := postgres.NewProposalRepository(repoConfig)
	sectionRepo := postgres.NewSectionRepository(repoConfig)

	proposalService := service.NewProposalService(proposalRepo, sectionRepo, logger)
	sectionService := service.NewSectionService(proposalRepo, sectionRepo, logger)

	registry, err := catalog.NewRegistry()
	if err != nil {
		log.Fatalf("Failed to load section type catalog: %v", err)
	}

	// Seed a demo proposal with one section per catalog type
	log.Println("📝 Seeding demo proposal...")

	status := "draft"
	clientName := "Acme Corp"
	currency := "USD"
	estimatedValue := 12500.0
	proposal, err := proposalService.CreateProposal(ctx, &services.CreateProposalRequest{
		UserID:         *demoUserID,
		Title:          "Website redesign proposal",
		ClientName:     &clientName,
		Currency:       &currency,
		EstimatedValue: &estimatedValue,
		Status:         &status,
	})
	if err != nil {
		log.Fatalf("Failed to create demo proposal: %v", err)
	}
	log.Printf("✅ Created proposal %s", proposal.ID)

	for _, st := range registry.List() {
		heading := st.DefaultHeading
		typeID := st.ID
		section, err := sectionService.SaveSection(ctx, &services.SaveSectionRequest{
			UserID:     *demoUserID,
			ProposalID: proposal.ID,
			Type:       &typeID,
			OrderIndex: st.DefaultOrder,
			Heading:    &heading,
			Content:    st.Description,
		})
		if err != nil {
			log.Printf("❌ Failed to create section '%s': %v", st.ID, err)
			continue
		}
		log.Printf("✅ Created section %s (%s)", section.ID, st.ID)
	}

	log.Println("🎉 Seeding complete!")
}

// runSchema creates tables if they don't exist.
//
// proposal_sections.proposal_id deliberately carries no REFERENCES clause:
// deleting a proposal does not touch its sections, so a schema-level foreign
// key would reject deletes of proposals that still have sections. The
// reference is enforced by the application layer instead (see DESIGN.md).
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	createProposals := `
		CREATE TABLE IF NOT EXISTS ` + tables.Proposals + ` (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			title TEXT NOT NULL,
			client_name TEXT,
			project_name TEXT,
			currency TEXT,
			estimated_value DOUBLE PRECISION,
			status TEXT,
			notes TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createProposals); err != nil {
		return err
	}

	ownerIndex := `
		CREATE INDEX IF NOT EXISTS ` + tables.Proposals + `_user_id_idx
		ON ` + tables.Proposals + ` (user_id)
	`
	if _, err := pool.Exec(ctx, ownerIndex); err != nil {
		return err
	}

	createSections := `
		CREATE TABLE IF NOT EXISTS ` + tables.Sections + ` (
			id TEXT PRIMARY KEY,
			proposal_id TEXT NOT NULL,
			type TEXT,
			order_index INTEGER NOT NULL,
			heading TEXT,
			content TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createSections); err != nil {
		return err
	}

	parentIndex := `
		CREATE INDEX IF NOT EXISTS ` + tables.Sections + `_proposal_id_idx
		ON ` + tables.Sections + ` (proposal_id)
	`
	if _, err := pool.Exec(ctx, parentIndex); err != nil {
		return err
	}

	return nil
}

// dropAllTables drops the proposal tables for a clean slate
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	for _, table := range []string{tables.Sections, tables.Proposals} {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return err
		}
	}
	return nil
}

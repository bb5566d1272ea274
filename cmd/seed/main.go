// seed inserts development sample data for local testing.
// Idempotent: skips inserts if the dev org already exists. IDs are fixed
// so repeated runs and other tooling can reference them.
package main

import (
	"context"
	"log"
	"os"

	"callmonitor/internal/config"
	"callmonitor/internal/db"
	membershipdomain "callmonitor/internal/membership/domain"
	membershiprepo "callmonitor/internal/membership/repository"
	orgdomain "callmonitor/internal/organization/domain"
	orgrepo "callmonitor/internal/organization/repository"
	systemdomain "callmonitor/internal/system/domain"
	systemrepo "callmonitor/internal/system/repository"
)

const (
	devOrgID        = "00000000-0000-0000-0000-0000000000a1"
	devToolID       = "00000000-0000-0000-0000-0000000000b1"
	devUserID       = "00000000-0000-0000-0000-0000000000c1"
	devUserEmail    = "dev@example.com"
	devMembershipID = "00000000-0000-0000-0000-0000000000d1"
	devControlSysID = "00000000-0000-0000-0000-0000000000e1"
	devAISysID      = "00000000-0000-0000-0000-0000000000e2"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer conn.Close()

	ctx := context.Background()
	orgs := orgrepo.NewPostgresRepository(conn)
	members := membershiprepo.NewPostgresRepository(conn)
	systems := systemrepo.NewPostgresRepository(conn)

	existing, err := orgs.GetOrganizationByID(ctx, devOrgID)
	if err != nil {
		log.Fatalf("seed check: %v", err)
	}
	if existing != nil {
		log.Println("Seed already applied (dev org exists). Skipping.")
		os.Exit(0)
	}

	// The users table has no repository of its own; only the seed writes it.
	if _, err := conn.ExecContext(ctx,
		`INSERT INTO users (id, email, name, status) VALUES ($1, $2, $3, 'active')`,
		devUserID, devUserEmail, "Dev User",
	); err != nil {
		log.Fatalf("create dev user: %v", err)
	}

	if err := orgs.CreateOrganization(ctx, &orgdomain.Org{
		ID:        devOrgID,
		Name:      "ACME Dev",
		Plan:      "paid",
		ToolID:    devToolID,
		CreatedBy: devUserID,
	}); err != nil {
		log.Fatalf("create org: %v", err)
	}

	if err := members.CreateMembership(ctx, &membershipdomain.Membership{
		ID:     devMembershipID,
		OrgID:  devOrgID,
		UserID: devUserID,
		Role:   membershipdomain.RoleAdmin,
	}); err != nil {
		log.Fatalf("create membership: %v", err)
	}

	if err := systems.CreateSystem(ctx, &systemdomain.System{
		ID:  devControlSysID,
		Key: systemdomain.KeyControlPlane,
	}); err != nil {
		log.Fatalf("create control system: %v", err)
	}
	if err := systems.CreateSystem(ctx, &systemdomain.System{
		ID:  devAISysID,
		Key: systemdomain.KeyAI,
	}); err != nil {
		log.Fatalf("create AI system: %v", err)
	}

	log.Println("Seed completed successfully.")
	log.Printf("Dev org: %s (plan paid), user: %s", devOrgID, devUserID)
}

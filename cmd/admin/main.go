package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"helpdesk/backend/internal/config"
	"helpdesk/backend/internal/models"
	"helpdesk/backend/internal/reporting"
	"helpdesk/backend/internal/storage"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "seed":
		if err := seed(storageSvc); err != nil {
			log.Fatalf("Error seeding reference data: %v", err)
		}
		fmt.Println("Reference data seeded.")
	case "promote":
		if len(os.Args) != 4 {
			fmt.Println("Usage: admin promote <username> <user|engineer|admin>")
			os.Exit(1)
		}
		if err := promote(storageSvc, os.Args[2], models.Role(os.Args[3])); err != nil {
			log.Fatalf("Error promoting user: %v", err)
		}
		fmt.Printf("User %s is now %s.\n", os.Args[2], os.Args[3])
	case "rollup":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin rollup <YYYY-MM-DD>")
			os.Exit(1)
		}
		day, err := time.Parse("2006-01-02", os.Args[2])
		if err != nil {
			fmt.Println("Invalid date. Use YYYY-MM-DD.")
			os.Exit(1)
		}
		if err := reporting.NewService(storageSvc).RollupDay(day); err != nil {
			log.Fatalf("Error computing rollup: %v", err)
		}
		fmt.Printf("Metrics rollup for %s stored.\n", os.Args[2])
	case "export":
		if len(os.Args) != 5 {
			fmt.Println("Usage: admin export <from YYYY-MM-DD> <to YYYY-MM-DD> <file.csv>")
			os.Exit(1)
		}
		if err := export(storageSvc, os.Args[2], os.Args[3], os.Args[4]); err != nil {
			log.Fatalf("Error exporting complaints: %v", err)
		}
		fmt.Printf("Complaints exported to %s.\n", os.Args[4])
	default:
		usage()
	}
}

func usage() {
	fmt.Println("Usage: admin <seed|promote|rollup|export> [args]")
	os.Exit(1)
}

// seed creates the workflow statuses, default complaint types and knowledge
// base categories. Existing rows with the same name are left alone.
func seed(s *storage.Service) error {
	statuses := []models.Status{
		{Name: config.StatusOpen, Description: "Newly submitted, awaiting triage", Order: 1},
		{Name: config.StatusInProgress, Description: "An engineer is working on it", Order: 2},
		{Name: config.StatusWaitingForUser, Description: "Waiting for information from the submitter", Order: 3},
		{Name: config.StatusResolved, Description: "Fixed, awaiting user confirmation", Order: 4, IsClosed: true},
		{Name: config.StatusClosed, Description: "Confirmed resolved by the user", Order: 5, IsClosed: true},
		{Name: config.StatusRejected, Description: "Not a valid complaint", Order: 6, IsClosed: true},
	}
	existing, err := s.ListStatuses()
	if err != nil {
		return err
	}
	known := map[string]bool{}
	for _, st := range existing {
		known[st.Name] = true
	}
	for _, st := range statuses {
		if known[st.Name] {
			continue
		}
		st.IsActive = true
		if err := s.SaveStatus(&st); err != nil {
			return err
		}
	}

	types := []models.ComplaintType{
		{Name: "Hardware", Description: "Desktops, laptops, printers and peripherals"},
		{Name: "Software", Description: "Installed applications and licensing"},
		{Name: "Network", Description: "Connectivity, VPN and Wi-Fi"},
		{Name: "Account", Description: "Passwords, access rights and email"},
		{Name: "Other", Description: "Anything that fits nowhere else"},
	}
	existingTypes, err := s.ListActiveComplaintTypes()
	if err != nil {
		return err
	}
	knownTypes := map[string]bool{}
	for _, t := range existingTypes {
		knownTypes[t.Name] = true
	}
	for _, t := range types {
		if knownTypes[t.Name] {
			continue
		}
		t.IsActive = true
		if err := s.SaveComplaintType(&t); err != nil {
			return err
		}
	}

	faqCategories := []models.FAQCategory{
		{Name: "Accounts", Description: "Passwords, access and sign-in problems", Order: 1},
		{Name: "Equipment", Description: "Workstations, printers and peripherals", Order: 2},
		{Name: "Connectivity", Description: "Network, VPN and Wi-Fi", Order: 3},
	}
	existingCategories, err := s.ListFAQCategories()
	if err != nil {
		return err
	}
	knownCategories := map[string]bool{}
	for _, cat := range existingCategories {
		knownCategories[cat.Name] = true
	}
	for _, cat := range faqCategories {
		if knownCategories[cat.Name] {
			continue
		}
		cat.IsActive = true
		if err := s.SaveFAQCategory(&cat); err != nil {
			return err
		}
	}
	return nil
}

func promote(s *storage.Service, username string, role models.Role) error {
	if role != models.RoleUser && role != models.RoleEngineer && role != models.RoleAdmin {
		return fmt.Errorf("unknown role %q", role)
	}
	user, err := s.GetUserByUsername(username)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %q not found", username)
	}
	user.Role = role
	return s.SaveUser(user)
}

func export(s *storage.Service, fromArg, toArg, path string) error {
	from, err := time.Parse("2006-01-02", fromArg)
	if err != nil {
		return fmt.Errorf("invalid from date: %w", err)
	}
	to, err := time.Parse("2006-01-02", toArg)
	if err != nil {
		return fmt.Errorf("invalid to date: %w", err)
	}
	to = to.AddDate(0, 0, 1)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return reporting.NewService(s).ExportCSV(f, from, to)
}

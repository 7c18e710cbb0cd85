package cmd

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicore/hr-management/internal/employee"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with bootstrap data",
	Long:  `Seed departments, positions and a super admin account for development and first-run setup.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		_, db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		if clearData {
			fmt.Println("Clearing existing data...")
			for _, table := range []string{
				"workspace_messages", "workspace_members", "workspaces",
				"projects", "clients", "employees", "positions", "departments",
			} {
				if err := db.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
		}

		departments := []struct {
			Code string
			Name string
		}{
			{"ADM", "Administration"},
			{"CARD", "Cardiology"},
			{"PED", "Pediatrics"},
			{"LAB", "Laboratory"},
		}

		deptIDs := make(map[string]string)
		for _, d := range departments {
			var id string
			row := db.Raw("SELECT id FROM departments WHERE code = ?", d.Code).Row()
			if err := row.Scan(&id); err == nil {
				deptIDs[d.Code] = id
				continue
			}

			id = uuid.NewString()
			if err := db.Exec(
				"INSERT INTO departments (id, code, name, is_active, created_at, updated_at) VALUES (?, ?, ?, true, now(), now())",
				id, d.Code, d.Name).Error; err != nil {
				log.Fatalf("failed to insert department %s: %v", d.Code, err)
			}
			deptIDs[d.Code] = id
			fmt.Println("Seeded department:", d.Code)
		}

		positions := []struct {
			Code      string
			Title     string
			Dept      string
			IsManager bool
			IsMedical bool
		}{
			{"DIR", "Director", "ADM", true, false},
			{"OFFMGR", "Office Manager", "ADM", true, false},
			{"PHYS", "Physician", "CARD", false, true},
			{"NURSE", "Nurse", "CARD", false, true},
			{"LABTECH", "Lab Technician", "LAB", false, true},
		}

		positionIDs := make(map[string]string)
		for _, p := range positions {
			var id string
			row := db.Raw("SELECT id FROM positions WHERE code = ?", p.Code).Row()
			if err := row.Scan(&id); err == nil {
				positionIDs[p.Code] = id
				continue
			}

			id = uuid.NewString()
			if err := db.Exec(
				"INSERT INTO positions (id, code, title, department_id, is_manager, is_medical, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, true, now(), now())",
				id, p.Code, p.Title, deptIDs[p.Dept], p.IsManager, p.IsMedical).Error; err != nil {
				log.Fatalf("failed to insert position %s: %v", p.Code, err)
			}
			positionIDs[p.Code] = id
			fmt.Println("Seeded position:", p.Code)
		}

		adminEmail := "admin@clinicore.local"
		var exists int
		row := db.Raw("SELECT 1 FROM employees WHERE email = ?", adminEmail).Row()
		if err := row.Scan(&exists); err == nil {
			fmt.Println("super admin already exists:", adminEmail)
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte("changeme-on-first-login"), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash bootstrap password: %v", err)
		}

		year := 0
		db.Raw("SELECT EXTRACT(YEAR FROM now())::int").Row().Scan(&year)

		var lastNumber string
		db.Raw("SELECT employee_number FROM employees WHERE employee_number LIKE ? ORDER BY employee_number DESC LIMIT 1",
			employee.NumberPrefix("ADM", year)+"%").Row().Scan(&lastNumber)

		number, err := employee.NextNumber("ADM", year, lastNumber)
		if err != nil {
			log.Fatalf("failed to allocate employee number: %v", err)
		}

		if err := db.Exec(
			`INSERT INTO employees (id, employee_number, email, password_hash, first_name, last_name,
			 department_id, position_id, role, status, hire_date, is_active, created_at, updated_at)
			 VALUES (?, ?, ?, ?, 'System', 'Administrator', ?, ?, 'super_admin', 'active', now(), true, now(), now())`,
			uuid.NewString(), number, adminEmail, string(hash),
			deptIDs["ADM"], positionIDs["DIR"]).Error; err != nil {
			log.Fatalf("failed to insert super admin: %v", err)
		}

		fmt.Println("Seeded super admin:", adminEmail)
	},
}

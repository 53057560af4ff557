package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dealdesk/dealdesk/internal/audit"
	"github.com/dealdesk/dealdesk/internal/config"
	"github.com/dealdesk/dealdesk/internal/database"
	"github.com/dealdesk/dealdesk/internal/database/emails"
	"github.com/dealdesk/dealdesk/internal/database/imports"
	"github.com/dealdesk/dealdesk/internal/database/templates"
	"github.com/dealdesk/dealdesk/internal/database/users"
	"github.com/dealdesk/dealdesk/internal/entities"
	"github.com/dealdesk/dealdesk/internal/importer"
)

// ImportTemplatesCommand imports a legacy task-template export file directly
// from disk, without going through the HTTP API.
type ImportTemplatesCommand struct {
	FilePath     string
	DatabasePath string
	ArchiveDir   string
	Username     string
	Verbose      bool
}

func NewImportTemplatesCommand() *ImportTemplatesCommand {
	return &ImportTemplatesCommand{}
}

func (cmd *ImportTemplatesCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("import-templates", flag.ExitOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Path to the legacy export XML file (required)")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.StringVar(&cmd.ArchiveDir, "archive", "./audit", "Directory for archived import payloads")
	fs.StringVar(&cmd.Username, "user", "", "Username to attribute the import to (must be a coordinator or admin)")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s import-templates -file <path> -user <username> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Import workflow templates from a legacy task-template export file.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s import-templates -file export.xml -user jane\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		return fmt.Errorf("required flag -file not provided")
	}
	if cmd.Username == "" {
		return fmt.Errorf("required flag -user not provided")
	}

	return nil
}

func (cmd *ImportTemplatesCommand) Run() error {
	fmt.Println("Template Import")
	fmt.Println("===============")

	if _, err := os.Stat(cmd.FilePath); os.IsNotExist(err) {
		return fmt.Errorf("export file not found: %s", cmd.FilePath)
	}

	payload, err := os.ReadFile(cmd.FilePath)
	if err != nil {
		return fmt.Errorf("failed to read export file: %w", err)
	}

	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}

	db, err := database.NewDatabase(absDBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	user, err := users.NewRepository(db.DB).GetUserByUsername(cmd.Username)
	if err != nil {
		return fmt.Errorf("user %q not found", cmd.Username)
	}
	if user.Role != entities.UserRoleCoordinator && user.Role != entities.UserRoleAdmin {
		return fmt.Errorf("user %q is not a coordinator", cmd.Username)
	}

	pipeline := importer.NewPipeline(
		templates.NewRepository(db.DB),
		emails.NewRepository(db.DB),
		imports.NewRepository(db.DB),
		audit.NewArchiver(cmd.ArchiveDir),
	)

	fmt.Printf("File: %s\n", cmd.FilePath)
	fmt.Printf("Database: %s\n\n", absDBPath)

	result, err := pipeline.Run(filepath.Base(cmd.FilePath), payload, user.ID)
	if err != nil {
		fmt.Println("\n=== Import Failed ===")
		fmt.Printf("Templates imported before failure: %d\n", result.TemplatesImported)
		fmt.Printf("Tasks imported before failure: %d\n", result.TasksImported)
		return err
	}

	fmt.Println("=== Import Summary ===")
	fmt.Printf("Import record: %d\n", result.ImportID)
	fmt.Printf("Templates imported: %d\n", result.TemplatesImported)
	fmt.Printf("Tasks imported: %d\n", result.TasksImported)
	fmt.Printf("Email templates imported: %d\n", result.EmailsImported)

	fmt.Println("\nImport complete!")
	return nil
}

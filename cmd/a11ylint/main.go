package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/a11ykit/a11ylint/internal/api"
	"github.com/a11ykit/a11ylint/internal/contrast"
	"github.com/a11ykit/a11ylint/internal/ir"
	"github.com/a11ykit/a11ylint/internal/reporting"
	"github.com/a11ykit/a11ylint/internal/rules"
	"github.com/a11ykit/a11ylint/internal/rulesdsl"
	"github.com/a11ykit/a11ylint/internal/security"
	"github.com/a11ykit/a11ylint/internal/shared"
	"github.com/a11ykit/a11ylint/internal/snapshot"
	"github.com/a11ykit/a11ylint/internal/storage"
)

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "scan":
		scanCmd(os.Args[2:])
	case "report":
		reportCmd(os.Args[2:])
	case "diff":
		diffCmd(os.Args[2:])
	case "serve":
		serveCmd(os.Args[2:])
	case "useradd":
		userAddCmd(os.Args[2:])
	case "version":
		fmt.Println("a11ylint schema:", ir.SchemaVersion)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `a11ylint - accessibility checker for rendered UI snapshots

Usage:
  a11ylint scan    --path <snapshot-dir> --out <reports-dir> [--db ./a11ylint.db] [--platform ios] [--config ./configs/a11ylint.yaml]
  a11ylint report  --scan <scan-id>      --out <reports-dir> [--db ./a11ylint.db] [--config ./configs/a11ylint.yaml]
  a11ylint diff    --base <scan-id> --head <scan-id> --out <reports-dir> [--db ./a11ylint.db]
  a11ylint serve   --addr :8080 [--db ./a11ylint.db] [--config ./configs/a11ylint.yaml]
  a11ylint useradd --username <name> --password <pw> [--role viewer] [--db ./a11ylint.db]
  a11ylint version
`)
}

func scanCmd(args []string) {
	fs := flag.NewFlagSet("scan", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	inPath := fs.String("path", "", "Path to snapshot directory")
	outDir := fs.String("out", "", "Output directory for reports")
	dbPath := fs.String("db", "", "SQLite database path")
	platform := fs.String("platform", "", "Target platform: ios|android|web")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	logger := shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	// precedence: flags > config > defaults
	if *inPath == "" && len(cfg.Scan.Sources) > 0 {
		*inPath = cfg.Scan.Sources[0]
	}
	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *platform == "" {
		*platform = cfg.Scan.Platform
	}

	if *inPath == "" {
		fmt.Fprintln(os.Stderr, "scan: --path (or scan.sources in config) is required")
		os.Exit(2)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, "scan: cannot create out dir:", err)
		os.Exit(1)
	}

	rules.SetSettings(rules.Settings{
		SeverityThreshold: cfg.Rules.SeverityThreshold,
		Disabled:          cfg.DisabledSet(),
		Platform:          *platform,
		MinTargetSize:     cfg.Rules.MinTargetSize,
		ContrastLevel:     cfg.Rules.ContrastLevel,
	})
	for _, pack := range cfg.Rules.Packs {
		n, err := rulesdsl.LoadAndRegister(pack)
		if err != nil {
			slog.Error("rule pack load error", "pack", pack, "err", err)
			os.Exit(1)
		}
		slog.Info("rule pack loaded", "pack", pack, "rules", n)
	}

	// Load snapshots
	scan, diags := snapshot.Load(*inPath)
	if len(diags.Warnings) > 0 {
		slog.Warn("snapshot warnings", "warnings", diags.Warnings)
	}
	scan.ID = "scan-" + uuid.NewString()
	scan.StartedAt = time.Now().UTC()
	scan.Context = ir.Context{
		Platform:          *platform,
		SeverityThreshold: cfg.Rules.SeverityThreshold,
		DisabledRules:     cfg.Rules.Disabled,
		MinTargetSize:     cfg.Rules.MinTargetSize,
		ContrastLevel:     cfg.Rules.ContrastLevel,
	}

	// Annotate contrast ratios, then evaluate
	contrast.AnnotateScan(&scan)
	scan.Issues = rules.Evaluate(&scan)

	// Persist & report
	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		slog.Error("db schema error", "err", err)
		os.Exit(1)
	}

	// Active waivers suppress issues before persistence
	if ws, werr := db.ListWaivers(true); werr == nil && len(ws) > 0 {
		kept, waived := rules.ApplyWaivers(scan.Issues, ws)
		if waived > 0 {
			slog.Info("waivers applied", "waived", waived)
		}
		scan.Issues = kept
	}

	if err := db.SaveScan(&scan); err != nil {
		slog.Error("db save scan error", "err", err)
		os.Exit(1)
	}

	jsonPath, _ := reporting.WriteJSON(scan.ID, *outDir, &scan)
	htmlPath, _ := reporting.WriteHTML(scan.ID, *outDir, &scan)
	logger.Info("scan complete",
		"scan", scan.ID,
		"issues", len(scan.Issues),
		"json", jsonPath,
		"html", htmlPath,
		"db", filepath.Clean(*dbPath),
	)
	fmt.Printf("Scan OK\n  Scan: %s\n  Issues: %d\n  JSON: %s\n  HTML: %s\n  DB: %s\n",
		scan.ID, len(scan.Issues), jsonPath, htmlPath, filepath.Clean(*dbPath))
}

func reportCmd(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	scanID := fs.String("scan", "", "Scan ID")
	outDir := fs.String("out", "", "Output directory")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *scanID == "" {
		fmt.Fprintln(os.Stderr, "report: --scan is required")
		os.Exit(2)
	}

	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	scan, err := db.LoadScan(*scanID)
	if err != nil {
		slog.Error("load scan error", "err", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		slog.Error("cannot create out dir", "err", err)
		os.Exit(1)
	}
	jsonPath, _ := reporting.WriteJSON(scan.ID, *outDir, &scan)
	htmlPath, _ := reporting.WriteHTML(scan.ID, *outDir, &scan)
	fmt.Printf("Report OK\n  Scan: %s\n  JSON: %s\n  HTML: %s\n", scan.ID, jsonPath, htmlPath)
}

func diffCmd(args []string) {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	base := fs.String("base", "", "Base scan ID")
	head := fs.String("head", "", "Head scan ID")
	outDir := fs.String("out", "", "Output directory")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *outDir == "" {
		*outDir = cfg.Reporting.OutDir
	}
	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *base == "" || *head == "" {
		fmt.Fprintln(os.Stderr, "diff: --base and --head are required")
		os.Exit(2)
	}
	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	br, err := db.LoadScan(*base)
	if err != nil {
		slog.Error("load base scan error", "err", err)
		os.Exit(1)
	}
	hr, err := db.LoadScan(*head)
	if err != nil {
		slog.Error("load head scan error", "err", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		slog.Error("cannot create out dir", "err", err)
		os.Exit(1)
	}
	path, _ := reporting.WriteDiffJSON(*base, *head, *outDir, &br, &hr)
	fmt.Printf("Diff OK\n  %s\n", path)
}

func serveCmd(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	addr := fs.String("addr", ":8080", "Listen address")
	dbPath := fs.String("db", "", "SQLite database path")
	sessionHours := fs.Int("session-hours", 12, "Session duration in hours")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	logger := shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		slog.Error("db schema error", "err", err)
		os.Exit(1)
	}

	srv := &api.Server{
		DB:              db,
		UserStore:       db,
		Logger:          logger,
		SessionDuration: time.Duration(*sessionHours) * time.Hour,
	}
	logger.Info("serving", "addr", *addr, "db", filepath.Clean(*dbPath))
	if err := http.ListenAndServe(*addr, srv.Routes()); err != nil {
		slog.Error("server error", "err", err)
		os.Exit(1)
	}
}

func userAddCmd(args []string) {
	fs := flag.NewFlagSet("useradd", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to YAML config (optional)")
	username := fs.String("username", "", "Username")
	password := fs.String("password", "", "Password")
	role := fs.String("role", "viewer", "Role: viewer|admin")
	dbPath := fs.String("db", "", "SQLite database path")
	_ = fs.Parse(args)

	cfg, _ := shared.LoadConfig(*configPath)
	shared.InitLogger(cfg.Logging.Format, cfg.Logging.Level)

	if *dbPath == "" {
		*dbPath = cfg.Database.DSN
	}
	if *username == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "useradd: --username and --password are required")
		os.Exit(2)
	}
	db, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		slog.Error("db open error", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.CreateSchema(); err != nil {
		slog.Error("db schema error", "err", err)
		os.Exit(1)
	}
	hash, err := security.HashPassword(*password)
	if err != nil {
		slog.Error("hash error", "err", err)
		os.Exit(1)
	}
	id, err := db.CreateUser(*username, hash, *role)
	if err != nil {
		slog.Error("create user error", "err", err)
		os.Exit(1)
	}
	fmt.Printf("User OK\n  ID: %d\n  Username: %s\n  Role: %s\n", id, *username, *role)
}

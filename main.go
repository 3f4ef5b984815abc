package main

import (
	"log"
	"net/http"
	"os"
	"os/exec"
	"runtime"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"longchen/config"
	"longchen/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("WARN: Failed to load config file: %v. Using defaults.", err)
		cfg = config.GetConfig()
	}

	log.Println("Connecting to database...")
	dbConn, err := sqlx.Open("sqlite3", cfg.DatabasePath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer dbConn.Close()
	log.Println("Database connection successful.")

	if err := database.InitDatabase(dbConn); err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}
	log.Println("Database initialization complete.")

	mux := http.NewServeMux()

	if _, err := os.Stat("static"); err == nil {
		mux.Handle("/", http.FileServer(http.Dir("./static")))
	}

	SetupRoutes(mux, dbConn)

	log.Printf("Starting server on http://localhost%s", cfg.ListenAddr)
	openBrowser("http://localhost" + cfg.ListenAddr)

	if err := http.ListenAndServe(cfg.ListenAddr, mux); err != nil {
		log.Fatalf("server start error: %v", err)
	}
}

func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = exec.Command("xdg-open", url).Start()
	}
	if err != nil {
		log.Printf("failed to open browser: %v", err)
	}
}

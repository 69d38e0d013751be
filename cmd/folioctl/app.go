package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/folio/internal/config"
	"github.com/MrJamesThe3rd/folio/internal/database"
	"github.com/MrJamesThe3rd/folio/internal/logger"
)

// app is the wiring shared by every command.
type app struct {
	cfg *config.Config
	db  *sql.DB
}

func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger.New(os.Stderr, cfg.Log.Level)

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, db: db}, nil
}

func (a *app) Close() {
	a.db.Close()
}

func (a *app) owner() (uuid.UUID, error) {
	return a.cfg.OwnerID()
}

func printMarkdown(md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}

	fmt.Print(out)
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

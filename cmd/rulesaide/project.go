package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"rulesaide/internal/assist"
	"rulesaide/internal/config"
	"rulesaide/internal/journal"
	"rulesaide/internal/reminder"
	"rulesaide/internal/store"
)

const (
	projectFile = "rulesaide.yaml"
	weaponsFile = "weapons.yaml"
)

// loadWeapons returns an empty catalogue when the project has no weapons
// file. Every attack is then allowed on range grounds.
func loadWeapons() (*config.WeaponCatalog, error) {
	catalog, err := config.LoadWeapons(weaponsFile)
	if errors.Is(err, fs.ErrNotExist) {
		return config.NewWeaponCatalog(nil), nil
	}
	return catalog, err
}

func loadReminders(cfg *config.ProjectConfig) (*reminder.Catalog, error) {
	if len(cfg.Reminders.Paths) == 0 {
		return reminder.Builtin(), nil
	}
	catalog, result, err := reminder.Load(cfg.Reminders.Paths, cfg.Exclude)
	if err != nil {
		return nil, err
	}
	for _, loadErr := range result.Errors {
		fmt.Fprintf(os.Stderr, "warning: %v\n", loadErr)
	}
	return catalog, nil
}

type assistantDeps struct {
	cfg       *config.ProjectConfig
	weapons   *config.WeaponCatalog
	reminders *reminder.Catalog
}

func loadAssistantDeps() (*assistantDeps, error) {
	cfg, err := config.LoadProjectConfig(projectFile)
	if err != nil {
		return nil, err
	}
	weapons, err := loadWeapons()
	if err != nil {
		return nil, err
	}
	reminders, err := loadReminders(cfg)
	if err != nil {
		return nil, err
	}
	return &assistantDeps{cfg: cfg, weapons: weapons, reminders: reminders}, nil
}

// newAssistant builds an assistant from the project files. db and journal
// may be nil.
func (d *assistantDeps) newAssistant(db store.Store, jr *journal.Writer, logger *log.Logger) (*assist.Assistant, error) {
	opts := assist.OptionsFromConfig(d.cfg)
	opts.Weapons = d.weapons
	opts.Reminders = d.reminders
	opts.Store = db
	opts.Logger = logger
	if jr != nil {
		opts.Journal = jr
	}
	return assist.New(opts)
}

// openJournal returns nil when journaling is disabled.
func openJournal(cfg *config.ProjectConfig, prefix string) *journal.Writer {
	if cfg.Journal.Disabled {
		return nil
	}
	return journal.NewWriter(cfg.Journal.Dir, prefix)
}

package main

import (
	"flag"
	"fmt"

	"github.com/evandert/inkpress"
	"github.com/evandert/inkpress/content"
)

func runImport(args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	configPath := fs.String("config", "site.yaml", "path to the site config file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := inkpress.LoadSiteConfig(*configPath)
	if err != nil {
		return err
	}

	store, err := inkpress.NewStore(cfg.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := content.Import(store, cfg.ContentDir)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d posts from %s into %s\n", n, cfg.ContentDir, cfg.DatabasePath)
	return nil
}

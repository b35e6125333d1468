package main

import (
	"flag"
	"log"
	"os"

	"github.com/evandert/inkpress"
	"github.com/evandert/inkpress/content"
	"github.com/evandert/inkpress/views"
)

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "site.yaml", "path to the site config file")
	dev := fs.Bool("dev", false, "dev mode: live reload, no cache headers")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := inkpress.LoadSiteConfig(*configPath)
	if err != nil {
		return err
	}
	cfg.Dev = *dev
	if *dev {
		cfg.CookieSecure = false
		if cfg.AdminPassword == "" {
			cfg.AdminPassword = "dev"
		}
		if cfg.SessionSecret == "" {
			cfg.SessionSecret = "dev-session-secret-not-for-production"
		}
	}

	// Sync the content directory into the database before taking traffic,
	// so file-based posts and admin-created posts live in one store.
	if _, err := os.Stat(cfg.ContentDir); err == nil {
		store, err := inkpress.NewStore(cfg.DatabasePath)
		if err != nil {
			return err
		}
		n, err := content.Import(store, cfg.ContentDir)
		store.Close()
		if err != nil {
			return err
		}
		log.Printf("imported %d posts from %s", n, cfg.ContentDir)
	}

	var opts []inkpress.Option
	if *dev {
		opts = append(opts, inkpress.WithLiveReload(cfg.ContentDir, func(a *inkpress.App) error {
			n, err := content.Import(a.Store, a.Config.ContentDir)
			if err != nil {
				return err
			}
			a.Cache.Invalidate()
			log.Printf("reimported %d posts", n)
			return nil
		}))
	}

	app := inkpress.New(cfg, views.Default(cfg), opts...)
	defer app.Close()
	return app.Start()
}

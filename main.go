package main

import (
	"context"

	"sipinjam/app"
	"sipinjam/notify"
	"sipinjam/routes"
)

func main() {
	application := app.MustNew()
	defer application.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Identity-created events provision profiles out of band.
	go notify.RunProfileCreator(ctx, application.Notifier, application.Repo, application.Log)
	application.StartOverdueSweep(ctx)

	r := application.Router
	r.GET("/healthz", func(c *app.Ctx) { c.JSON(200, app.H{"ok": true}) })
	routes.RegisterRoutes(r, application)

	application.Log.Infow("listening", "port", application.Config.Port)
	if err := r.Run(":" + application.Config.Port); err != nil {
		application.Log.Fatalw("server", "error", err)
	}
}

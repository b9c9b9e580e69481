package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/denismitr/goenv"
	"github.com/labstack/echo/v4"

	"github.com/armanrma7/rmbg/cmd/initialize"
	"github.com/armanrma7/rmbg/preparer"
	"github.com/armanrma7/rmbg/removebg"
	"github.com/armanrma7/rmbg/submission"
	"github.com/armanrma7/rmbg/webui"
)

func main() {
	initialize.DotEnv()

	log := initialize.Logger()
	client := initialize.ClientFromEnv()

	maxSide := initialize.IntOrDefault("RMBG_MAX_SIDE", preparer.DefaultMaxSide)
	prefs := webui.NewPreferences(removebg.DefaultOptions(), maxSide)
	session := submission.NewSession(prefs.Preparer(), client, log)

	health, err := webui.NewHealthMonitor(client, webui.DefaultHealthSchedule, log)
	if err != nil {
		log.Fatalln(err)
	}

	server := webui.NewServer(
		echo.New(),
		webui.Config{Port: goenv.MustString("WEBUI_PORT")},
		log,
		session,
		prefs,
		health,
	)

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGTERM, syscall.SIGINT)

	if err := server.Run(stopCh, 10*time.Second); err != nil {
		log.Fatalln(err)
	}
}

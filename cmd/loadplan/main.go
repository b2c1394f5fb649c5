// LoadPlan - Container Load Planner
//
// A cross-platform desktop application that places boxes into a
// shipping container one at a time and prints layer-by-layer load sheets.
//
// Build:
//   go build -o loadplan ./cmd/loadplan
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o loadplan.exe ./cmd/loadplan
//   GOOS=darwin  GOARCH=amd64 go build -o loadplan-darwin ./cmd/loadplan
//
// Using fyne-cross (recommended for proper packaging):
//   go install github.com/fyne-io/fyne-cross@latest
//   fyne-cross windows -arch=amd64
//   fyne-cross darwin  -arch=amd64,arm64

package main

import (
	"log/slog"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	fynetooltip "github.com/dweymouth/fyne-tooltip"

	"github.com/piwi3910/LoadPlan/internal/ui"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	application := app.NewWithID("com.piwi3910.loadplan")
	window := application.NewWindow("LoadPlan - Container Load Planner")

	appUI := ui.NewApp(application, window, logger)
	appUI.SetupMenus()
	window.SetContent(fynetooltip.AddWindowToolTipLayer(appUI.Build(), window.Canvas()))
	window.Resize(fyne.NewSize(1200, 800))
	window.CenterOnScreen()
	window.ShowAndRun()
}

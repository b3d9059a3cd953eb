package main

import (
	"context"
	"log/slog"
	"os"

	"classfinder-backend/cmd/classfinder/commands"
	"classfinder-backend/lib/telemetry"
)

func main() {
	telemetry.InitSlog(false)
	tel, err := telemetry.SetupFromEnv(context.Background(), "classfinder")
	if err != nil && !os.IsNotExist(err) {
		slog.Warn("telemetry setup failed, continuing without it", "err", err)
	}
	defer tel.Shutdown(context.Background())

	commands.ExecuteContext(context.Background())
}

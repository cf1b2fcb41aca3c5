package main

import (
	"context"

	"gathergen/cmd/gathergen/commands"
	"gathergen/lib/serviceutil"
	"gathergen/lib/telemetry"
)

func main() {
	ctx := serviceutil.SignalContext()
	telemetry.SetupFromEnv(ctx, "gathergen")
	telemetry.InstrumentPerfStats(ctx)

	commands.ExecuteContext(ctx)
	telemetry.Shutdown(context.Background())
}

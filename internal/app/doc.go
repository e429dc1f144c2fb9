// Package app wires the attendance dashboard together: configuration,
// telemetry, services, HTTP handlers and the server lifecycle.
//
// # Initialization Flow
//
//	1. Resolve paths from the loaded configuration
//	2. Initialize OpenTelemetry providers
//	3. Create the attendance and health services and load the cleaned data
//	4. Build the chi router with the middleware chain
//	5. Create the HTTP server
//
// # Usage
//
//	application, err := app.NewApplication(cfg, logger)
//	if err != nil {
//	    return err
//	}
//	return application.Run(ctx)
//
// Run blocks until ctx is cancelled or the server fails, then shuts the
// server down within Server.ShutdownTimeout and flushes telemetry. The package
// never calls os.Exit; the command decides the exit status.
package app

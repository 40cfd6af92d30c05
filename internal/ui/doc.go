// Package ui provides terminal UI components for the nutsmith CLI.
//
// This package uses Bubble Tea and Lipgloss to render polished terminal
// output for reconciliation passes and device commands. The components
// follow a "run once and exit" pattern rather than an interactive TUI.
//
// # Architecture
//
// The package provides three main component types:
//
//   - Header: command banner showing operation name and parameters
//   - PassProgress: progress bar with per-device outcome lines
//   - Summary/failure boxes closing out a run
//
// These are orchestrated by the PassRunner, which manages the
// banner → device lines → summary flow for a pass.
//
// # Usage Pattern
//
// Commands use this package by:
//
//  1. Creating a PassRunner with command metadata
//  2. Calling Run() with their operation function
//  3. The operation reports each device via a callback
//  4. PassRunner handles all rendering
//
// Example:
//
//	runner := ui.NewPassRunner(ui.PassRunnerConfig{
//	    Title:        "Reconciliation Pass",
//	    Command:      "nutsmith reconcile",
//	    Params:       map[string]string{"Config": cfgPath},
//	    TotalDevices: len(settings.Devices),
//	})
//
//	err := runner.Run(ctx, func(onDevice ui.DeviceCallback) (map[string]string, error) {
//	    // ... configure devices, reporting each via onDevice ...
//	    return map[string]string{"Configured": "3"}, nil
//	})
//
// # Logging Integration
//
// Logging is controlled via the NUTSMITH_LOG_LEVEL environment variable.
// When unset, zap logging is silent so the curated UI output displays
// cleanly. Set it to "debug", "info", "warn", or "error" to enable
// logging alongside the UI.
package ui

// Package cli supplies the version/logging/usage helpers for the
// compiler's single command-line entry point: a one-command driver has
// no use for a config file or a multi-subcommand registry, so this
// package keeps only version reporting, logging, and single-command
// usage text.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"
)

// Version information for all CLI tools
const (
	Version   = "0.1.0"
	BuildDate = "2025-08-22"
	CommitSHA = "unknown" // fixed placeholder; PrintVersion omits it while it is "unknown"
)

// VersionInfo contains version and build information
type VersionInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	CommitSHA string `json:"commit_sha"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Arch      string `json:"arch"`
	BuildTags string `json:"build_tags,omitempty"`
}

// GetVersionInfo returns structured version information
func GetVersionInfo() *VersionInfo {
	return &VersionInfo{
		Version:   Version,
		BuildDate: BuildDate,
		CommitSHA: CommitSHA,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

// PrintVersion prints version information in a consistent format
func PrintVersion(toolName string, jsonOutput bool) {
	info := GetVersionInfo()

	if jsonOutput {
		data, err := json.MarshalIndent(map[string]interface{}{
			"tool":         toolName,
			"version_info": info,
		}, "", "  ")
		if err != nil {
			// Fallback to plain text if JSON marshaling fails
			fmt.Fprintf(os.Stderr, "Error: Failed to marshal version info to JSON: %v\n", err)
			jsonOutput = false
		} else {
			fmt.Println(string(data))
			return
		}
	}

	if !jsonOutput {
		fmt.Printf("%s v%s\n", toolName, info.Version)
		fmt.Printf("Build Date: %s\n", info.BuildDate)
		if info.CommitSHA != "unknown" && info.CommitSHA != "" {
			fmt.Printf("Commit: %s\n", info.CommitSHA)
		}
		fmt.Printf("Go Version: %s\n", info.GoVersion)
		fmt.Printf("Platform: %s/%s\n", info.Platform, info.Arch)
	}
}

// ExitWithError prints an error message and exits with code 1
func ExitWithError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// ExitWithCode exits with the specified code and optional message
func ExitWithCode(code int, format string, args ...interface{}) {
	if format != "" {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
	os.Exit(code)
}

// Logger provides structured logging for CLI tools
type Logger struct {
	Verbose   bool
	DebugMode bool
}

// NewLogger creates a new logger instance
func NewLogger(verbose, debug bool) *Logger {
	return &Logger{
		Verbose:   verbose,
		DebugMode: debug,
	}
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	if l.Verbose {
		fmt.Printf("[INFO] %s: %s\n", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	}
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.DebugMode {
		fmt.Printf("[DEBUG] %s: %s\n", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
	}
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	fmt.Printf("[WARN] %s: %s\n", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	fmt.Printf("[ERROR] %s: %s\n", time.Now().Format("15:04:05"), fmt.Sprintf(format, args...))
}

// Usage describes the one command this binary runs, for PrintUsage.
type Usage struct {
	Tool     string
	Summary  string
	Synopsis string
	Flags    []FlagInfo
	Examples []string
}

// FlagInfo documents one command-line flag.
type FlagInfo struct {
	Name    string
	Usage   string
	Default string
}

// PrintUsage prints a standardized usage message for this binary's single
// command.
func PrintUsage(u Usage) {
	fmt.Printf("%s - %s\n\n", u.Tool, u.Summary)
	fmt.Printf("USAGE:\n    %s\n\n", u.Synopsis)

	if len(u.Flags) > 0 {
		fmt.Printf("OPTIONS:\n")

		for _, flag := range u.Flags {
			fmt.Printf("    -%-12s %s\n", flag.Name, flag.Usage)

			if flag.Default != "" {
				fmt.Printf("%-17s Default: %s\n", "", flag.Default)
			}
		}

		fmt.Printf("\n")
	}

	if len(u.Examples) > 0 {
		fmt.Printf("EXAMPLES:\n")

		for _, example := range u.Examples {
			fmt.Printf("    %s\n", example)
		}

		fmt.Printf("\n")
	}
}

// HandleError handles errors in a consistent way
func HandleError(err error, logger *Logger) {
	if err != nil {
		if logger != nil {
			logger.Error("%v", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

package appconfig

import (
	"fmt"
	"io"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config, fallback Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		cfg = &fallback
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Host:        %s\n", cfg.HostURL())
	fmt.Fprintf(out, "  Auto-apply:  %v\n", cfg.AutoApply)
	fmt.Fprintf(out, "  Debug:       %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Timeout:     %s\n", cfg.RequestTimeout())
	fmt.Fprintf(out, "  Log file:    %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  Dataset:     %s\n", cfg.DatasetFilePath())
	fmt.Fprintln(out, "  Default settings:")
	fmt.Fprintf(out, "    Model:          %s\n", orUnset(cfg.Defaults.Model))
	fmt.Fprintf(out, "    Temperature:    %v\n", cfg.Defaults.Temperature)
	fmt.Fprintf(out, "    TopP:           %v\n", cfg.Defaults.TopP)
	fmt.Fprintf(out, "    Use fixed seed: %v\n", cfg.Defaults.UseFixedSeed)
	fmt.Fprintf(out, "    Seed:           %d\n", cfg.Defaults.Seed)
	fmt.Fprintf(out, "    NumCtx:         %d\n", cfg.Defaults.NumCtx)
}

func orUnset(s string) string {
	if s == "" {
		return "(first available)"
	}
	return s
}

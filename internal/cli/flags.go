package cli

import "flag"

// ScrapeFlags are the command line options for a one-shot scrape.
type ScrapeFlags struct {
	ConfigFile  string
	Marketplace string
	MaxItems    int
	Verbose     bool
}

// ParseScrapeFlags parses scrape command flags from the command line.
func ParseScrapeFlags() *ScrapeFlags {
	flags := &ScrapeFlags{}
	flag.StringVar(&flags.ConfigFile, "config", "", "Configuration file path")
	flag.StringVar(&flags.Marketplace, "marketplace", "", "Marketplace to scrape (uk or us)")
	flag.IntVar(&flags.MaxItems, "max", 0, "Maximum listings to process (0 = all)")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}

// ServeFlags are the command line options for the API server.
type ServeFlags struct {
	ConfigFile string
	Port       int
	Verbose    bool
}

// ParseServeFlags parses serve command flags from the command line.
func ParseServeFlags() *ServeFlags {
	flags := &ServeFlags{}
	flag.StringVar(&flags.ConfigFile, "config", "", "Configuration file path")
	flag.IntVar(&flags.Port, "port", 0, "Port to listen on (0 = use config)")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}

// Command transcode re-encodes Unicode text between UTF-8, UTF-16 and UTF-32.
//
//	transcode [-from utf-8] [-to utf-16le] [-bom] [-detect-bom] [-buf N] [-config file.yaml] [in [out]]
//
// A missing or "-" path means standard input or standard output.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	textio "github.com/libcmp/ccl-sub001"
	"github.com/libcmp/ccl-sub001/console"
)

// config is the on-disk form of the command line. Flags given explicitly
// override values from the file. Buffer also sizes the console stdin and
// stdout buffers unless the console section sets them; there 0 means unset
// and -1 means unbuffered.
type config struct {
	From      string          `yaml:"from"`
	To        string          `yaml:"to"`
	BOM       bool            `yaml:"bom"`
	DetectBOM bool            `yaml:"detect_bom"`
	Buffer    int             `yaml:"buffer"`
	Verbose   bool            `yaml:"verbose"`
	Console   *console.Config `yaml:"console"`
}

func defaultConfig() *config {
	return &config{
		From:   "utf-8",
		To:     "utf-8",
		Buffer: textio.BUFFER_SIZE,
	}
}

func loadConfig(path string, cfg *config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("transcode: ")

	cfg := defaultConfig()
	flags := flag.NewFlagSet("transcode", flag.ExitOnError)
	from := flags.String("from", cfg.From, "input encoding")
	to := flags.String("to", cfg.To, "output encoding")
	bom := flags.Bool("bom", false, "write a byte order mark")
	detect := flags.Bool("detect-bom", false, "consume an input byte order mark and adopt its byte order")
	buf := flags.Int("buf", cfg.Buffer, "buffer capacity in bytes, 0 for unbuffered")
	verbose := flags.Bool("v", false, "log a summary when done")
	cfgPath := flags.String("config", "", "YAML configuration file")
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "usage: transcode [flags] [in [out]]\n\nencodings: %v\n\n", textio.EncodingNames())
		flags.PrintDefaults()
	}
	flags.Parse(os.Args[1:])

	if *cfgPath != "" {
		if err := loadConfig(*cfgPath, cfg); err != nil {
			log.Fatal(err)
		}
	}
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "from":
			cfg.From = *from
		case "to":
			cfg.To = *to
		case "bom":
			cfg.BOM = *bom
		case "detect-bom":
			cfg.DetectBOM = *detect
		case "buf":
			cfg.Buffer = *buf
		case "v":
			cfg.Verbose = *verbose
		}
	})
	if flags.NArg() > 2 {
		flags.Usage()
		os.Exit(2)
	}

	in, out := "-", "-"
	if flags.NArg() > 0 {
		in = flags.Arg(0)
	}
	if flags.NArg() > 1 {
		out = flags.Arg(1)
	}

	n, err := run(cfg, in, out)
	if err != nil {
		log.Fatal(err)
	}
	if cfg.Verbose {
		log.Printf("%d code points %s -> %s", n, cfg.From, cfg.To)
	}
}

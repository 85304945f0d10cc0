// Package config loads the optional wosh YAML configuration.
//
// Every value has a default matching the file names the word list tools have always used, so wosh works
// without any configuration file. Command-line flags override what is loaded here.
package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up in the working directory.
const DefaultPath = ".wosh.yaml"

const (
	defaultWordlistURL = "https://raw.githubusercontent.com/plsuwu/wosh/master/wordlist"
	defaultSublistURL  = "https://raw.githubusercontent.com/plsuwu/wosh/master/sublist"
)

// Filter configures the length filter.
type Filter struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	// NFC composes words to Unicode normal form C before counting their characters.
	NFC bool `yaml:"nfc"`
}

// Crop configures the length crop.
type Crop struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
}

// Boards configures the board list join and sort.
type Boards struct {
	NoWordlist   string `yaml:"no_wordlist"`
	OnlyWordlist string `yaml:"only_wordlist"`
	Combined     string `yaml:"combined"`
	Sorted       string `yaml:"sorted"`
	Workers      int    `yaml:"workers"`
}

// Solve configures the board solver and the download of its lists.
type Solve struct {
	Wordlist    string `yaml:"wordlist"`
	Sublist     string `yaml:"sublist"`
	WordlistURL string `yaml:"wordlist_url"`
	SublistURL  string `yaml:"sublist_url"`
	Threads     int    `yaml:"threads"`
	Ignore      string `yaml:"ignore"`
}

// Config models .wosh.yaml.
type Config struct {
	Filter Filter `yaml:"filter"`
	Crop   Crop   `yaml:"crop"`
	Boards Boards `yaml:"boards"`
	Solve  Solve  `yaml:"solve"`
	// Graph, when set, is the DOT file every pipeline run is drawn to.
	Graph string `yaml:"graph"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	dataDir := DataDir()

	return Config{
		Filter: Filter{
			Input:  "./wordlist.10000",
			Output: "./wordlist_processed",
		},
		Crop: Crop{
			Input:  "wordlist_processed",
			Output: "cropped_wordlist",
		},
		Boards: Boards{
			NoWordlist:   "wos-boardlist-no-wl.csv",
			OnlyWordlist: "wos-boardlist-only-wl.csv",
			Combined:     "wos-combined.csv",
			Sorted:       "wos-sorted.csv",
			Workers:      4,
		},
		Solve: Solve{
			Wordlist:    filepath.Join(dataDir, "wosh", "wordlist"),
			Sublist:     filepath.Join(dataDir, "wosh", "sublist"),
			WordlistURL: defaultWordlistURL,
			SublistURL:  defaultSublistURL,
			Threads:     15,
			Ignore:      "_",
		},
	}
}

// DataDir is the per-user data directory: $XDG_DATA_HOME, else ~/.local/share, else the working directory.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	return filepath.Join(home, ".local", "share")
}

// Load reads path over the defaults. A missing file yields the defaults unless required is set.
func Load(path string, required bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) && !required {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "unable to read config %s", path)
	}

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "unable to parse config %s", path)
	}

	return cfg, cfg.Validate()
}

// Validate rejects values no command can run with.
func (c Config) Validate() error {
	if c.Boards.Workers < 1 {
		return errors.Errorf("boards.workers must be at least 1, got %d", c.Boards.Workers)
	}
	if c.Solve.Threads < 1 {
		return errors.Errorf("solve.threads must be at least 1, got %d", c.Solve.Threads)
	}

	return nil
}

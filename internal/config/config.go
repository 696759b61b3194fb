// Package config loads settings for the terminal client.
package config

import (
    "encoding/json"
    "fmt"
    "io/fs"
    "os"
    "time"

    "github.com/adrg/xdg"
)

var (
    cfgFile = "tictactoe/config.json"
)

type InvalidConfig struct {
    err string
}

func (e *InvalidConfig) Error() string {
    return fmt.Sprintf("Config error: %s", e.err)
}

type Colors struct {
    Board  int `json:"board"`
    Human  int `json:"human"`
    Comp   int `json:"computer"`
    Win    int `json:"win"`
    Cursor int `json:"cursor"`
}

type Symbols struct {
    X     rune `json:"x"`
    O     rune `json:"o"`
    Empty rune `json:"empty"`
}

type Config struct {
    // HumanMark is "X" or "O". X always moves first.
    HumanMark string `json:"human_mark"`
    // ThinkDelayMS delays the computer reply so it does not appear instantly.
    ThinkDelayMS int     `json:"think_delay_ms"`
    Symbols      Symbols `json:"symbols"`
    Colors       Colors  `json:"colors"`
}

// ThinkDelay returns the computer reply delay.
func (c *Config) ThinkDelay() time.Duration {
    return time.Duration(c.ThinkDelayMS) * time.Millisecond
}

// InitConfig returns DefaultConfig overlaid with the user's config file, if any.
func InitConfig() (*Config, error) {
    config := DefaultConfig
    absPath, err := xdg.SearchConfigFile(cfgFile)
    if err == nil {
        if err := readCfgFile(absPath, &config); err != nil {
            return nil, err
        }
    }
    if err = config.Validate(); err != nil {
        return nil, err
    }
    return &config, nil
}

func (c *Config) Validate() error {
    if c.HumanMark != "X" && c.HumanMark != "O" {
        return &InvalidConfig{fmt.Sprintf("human_mark must be X or O, got %q", c.HumanMark)}
    }
    if c.ThinkDelayMS < 0 {
        return &InvalidConfig{"think_delay_ms must not be negative"}
    }
    for _, r := range []rune{c.Symbols.X, c.Symbols.O, c.Symbols.Empty} {
        if r < 32 || (r >= 127 && r <= 159) {
            return &InvalidConfig{"Unicode characters 1-31 and 127-159 are not allowed"}
        }
    }
    if c.Symbols.X == c.Symbols.O {
        return &InvalidConfig{"x and o symbols must differ"}
    }
    return nil
}

// Save writes the config to the user's XDG config directory.
func (c *Config) Save() error {
    absPath, err := xdg.ConfigFile(cfgFile)
    if err != nil {
        return err
    }
    return saveCfgFile(absPath, c, 0664)
}

func saveCfgFile(filePath string, a interface{}, perm fs.FileMode) error {
    jsonData, err := json.MarshalIndent(a, "", "  ")
    if err != nil {
        return err
    }
    return os.WriteFile(filePath, jsonData, perm)
}

func readCfgFile(filePath string, a interface{}) error {
    data, err := os.ReadFile(filePath)
    if err != nil {
        return nil
    }
    if err := json.Unmarshal(data, a); err != nil {
        return fmt.Errorf("read %s: %w", filePath, err)
    }
    return nil
}

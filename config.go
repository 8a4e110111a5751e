package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const configTag = "config"

// SIOConfig mirrors one sio{0,1,2} block from system.conf. SIO device
// emulation itself is out of scope (spec.md §1); these fields are
// carried so a serial-I/O collaborator can consume them (spec.md §6).
type SIOConfig struct {
	UpperCase   bool
	StripParity bool
	DropNulls   bool
	Revision    int
	BaudRate    int
}

// Config is the parsed form of system.conf (spec.md §6).
type Config struct {
	SIO [4]SIOConfig // SIO 3 has only a baud rate upstream

	FPPort byte
	FPFPS  int
	FPSize int

	VDMBackground string
	VDMForeground string
	VDMScanlines  bool

	Sections [MaxMemSections]MemSection
}

// DefaultConfig mirrors config.c's static initializers.
func DefaultConfig() *Config {
	return &Config{
		FPSize: 800,
		SIO: [4]SIOConfig{
			{BaudRate: 115200},
			{BaudRate: 115200},
			{BaudRate: 115200},
			{BaudRate: 115200},
		},
	}
}

// LoadConfig parses a system.conf-style file, following config.c's
// line-oriented grammar exactly: `#`/blank lines are comments, tokens
// split on whitespace/commas, unknown keys and invalid values warn and
// are skipped rather than aborting the parse (spec.md §6, §9's Open
// Question on preserving that behavior).
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	cfg := DefaultConfig()
	section := 0
	scanner := bufio.NewScanner(f)

	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		fields := strings.FieldsFunc(trimmed, func(r rune) bool {
			return r == ' ' || r == '\t' || r == ','
		})
		if len(fields) == 0 {
			continue
		}
		key := fields[0]
		rest := fields[1:]

		switch {
		case key == "[MEMORY":
			// token looked like "[MEMORY n]" before the comma/space
			// split; re-derive n from the trailing field.
			if len(rest) == 0 {
				logWarn(configTag, "system.conf: malformed MEMORY header: %s", line)
				continue
			}
			numStr := strings.TrimSuffix(rest[0], "]")
			n, err := strconv.Atoi(numStr)
			if err != nil || n < 1 || n > MaxMemSections {
				logWarn(configTag, "invalid MEMORY section number in %q", line)
				continue
			}
			section = n - 1

		case key == "ram":
			if len(rest) < 2 {
				logWarn(configTag, "ram directive missing arguments: %s", line)
				continue
			}
			start, errS := strconv.Atoi(rest[0])
			size, errZ := strconv.Atoi(rest[1])
			if errS != nil || start < 0 || start > 255 {
				logWarn(configTag, "invalid ram start address %s", rest[0])
				continue
			}
			if errZ != nil || size < 1 || start+size > 256 {
				logWarn(configTag, "invalid ram size %s", rest[1])
				continue
			}
			cfg.Sections[section].Segments = append(cfg.Sections[section].Segments, MemSegment{
				Attr: MemRW, StartPg: start, SizePg: size,
			})

		case key == "rom":
			if len(rest) < 2 {
				logWarn(configTag, "rom directive missing arguments: %s", line)
				continue
			}
			start, errS := strconv.Atoi(rest[0])
			size, errZ := strconv.Atoi(rest[1])
			if errS != nil || start < 0 || start > 255 {
				logWarn(configTag, "invalid rom start address %s", rest[0])
				continue
			}
			if errZ != nil || size < 1 || start+size > 256 {
				logWarn(configTag, "invalid rom size %s", rest[1])
				continue
			}
			seg := MemSegment{Attr: MemRO, StartPg: start, SizePg: size}
			if len(rest) >= 3 {
				seg.ROMFile = rest[2]
			}
			cfg.Sections[section].Segments = append(cfg.Sections[section].Segments, seg)

		case key == "boot":
			if len(rest) < 1 {
				logWarn(configTag, "boot directive missing address: %s", line)
				continue
			}
			v, err := strconv.ParseInt(rest[0], 0, 32)
			if err != nil {
				logWarn(configTag, "invalid boot address %s", rest[0])
				continue
			}
			cfg.Sections[section].BootSwitch = uint16(v)

		case key == "fp_port":
			if len(rest) < 1 {
				continue
			}
			v, err := strconv.ParseInt(rest[0], 0, 16)
			if err != nil {
				logWarn(configTag, "invalid fp_port %s", rest[0])
				continue
			}
			cfg.FPPort = byte(v)

		case key == "fp_fps":
			if len(rest) >= 1 {
				if v, err := strconv.Atoi(rest[0]); err == nil {
					cfg.FPFPS = v
				}
			}

		case key == "fp_size":
			if len(rest) >= 1 {
				if v, err := strconv.Atoi(rest[0]); err == nil {
					cfg.FPSize = v
				}
			}

		case key == "vdm_bg":
			if len(rest) >= 1 {
				cfg.VDMBackground = rest[0]
			}
		case key == "vdm_fg":
			if len(rest) >= 1 {
				cfg.VDMForeground = rest[0]
			}
		case key == "vdm_scanlines":
			if len(rest) >= 1 && rest[0] != "0" {
				cfg.VDMScanlines = true
			}

		case strings.HasPrefix(key, "sio") && len(key) > 3:
			cfg.applySIOKey(key, rest, line)

		default:
			logWarn(configTag, "system.conf unknown command: %s", line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return cfg, nil
}

func (cfg *Config) applySIOKey(key string, rest []string, line string) {
	if len(rest) == 0 {
		logWarn(configTag, "system.conf: %s missing value", key)
		return
	}
	idx := int(key[3] - '0')
	if idx < 0 || idx > 3 {
		logWarn(configTag, "system.conf unknown command: %s", line)
		return
	}
	suffix := key[4:]
	switch suffix {
	case "_upper_case":
		b, ok := boolDigit(rest[0])
		if !ok {
			logWarn(configTag, "system.conf: invalid value for %s: %s", key, rest[0])
			return
		}
		cfg.SIO[idx].UpperCase = b
	case "_strip_parity":
		b, ok := boolDigit(rest[0])
		if !ok {
			logWarn(configTag, "system.conf: invalid value for %s: %s", key, rest[0])
			return
		}
		cfg.SIO[idx].StripParity = b
	case "_drop_nulls":
		b, ok := boolDigit(rest[0])
		if !ok {
			logWarn(configTag, "system.conf: invalid value for %s: %s", key, rest[0])
			return
		}
		cfg.SIO[idx].DropNulls = b
	case "_revision":
		b, ok := boolDigit(rest[0])
		if !ok {
			logWarn(configTag, "system.conf: invalid value for %s: %s", key, rest[0])
			return
		}
		if b {
			cfg.SIO[idx].Revision = 1
		} else {
			cfg.SIO[idx].Revision = 0
		}
	case "_baud_rate":
		v, err := strconv.Atoi(rest[0])
		if err != nil {
			logWarn(configTag, "system.conf: invalid value for %s: %s", key, rest[0])
			return
		}
		cfg.SIO[idx].BaudRate = v
	default:
		logWarn(configTag, "system.conf unknown command: %s", line)
	}
}

func boolDigit(s string) (bool, bool) {
	switch s {
	case "0":
		return false, true
	case "1":
		return true, true
	default:
		return false, false
	}
}

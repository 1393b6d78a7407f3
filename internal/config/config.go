// Package config reads smoothing run parameters from KEY=VALUE files.
//
// Files use dotenv syntax and are parsed with godotenv without touching the
// process environment:
//
//	# reference run with the Gaussian kernel
//	X_LOWER=-2
//	X_UPPER=2
//	DX=0.01
//	SIGMA=0.5
//	POTENTIAL=tilted-quartic
//	KERNEL=gaussian
//
// Keys absent from the file keep the value of the base configuration.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/cwbudde/algo-boltz/dsp/conv"
	"github.com/cwbudde/algo-boltz/dsp/kernel"
	"github.com/cwbudde/algo-boltz/energy/potential"
	"github.com/cwbudde/algo-boltz/energy/smooth"
)

// ErrUnknownKey is returned for keys that do not map to a run parameter.
var ErrUnknownKey = errors.New("config: unknown key")

type setter func(cfg *smooth.Config, value string) error

var setters = map[string]setter{
	"X_LOWER": floatField(func(c *smooth.Config, v float64) { c.XLower = v }),
	"X_UPPER": floatField(func(c *smooth.Config, v float64) { c.XUpper = v }),
	"DX":      floatField(func(c *smooth.Config, v float64) { c.Dx = v }),
	"SIGMA":   floatField(func(c *smooth.Config, v float64) { c.Sigma = v }),
	"BETA":    floatField(func(c *smooth.Config, v float64) { c.Beta = v }),

	"SUPPORT_SCALE": floatField(func(c *smooth.Config, v float64) { c.SupportScale = v }),

	"RENORMALIZE_KERNEL": boolField(func(c *smooth.Config, v bool) { c.RenormalizeKernel = v }),
	"NORMALIZE_DENSITY":  boolField(func(c *smooth.Config, v bool) { c.NormalizeDensity = v }),

	"POTENTIAL": func(c *smooth.Config, value string) error {
		t, err := potential.ParseType(value)
		if err != nil {
			return err
		}
		c.Potential = t.Func()
		return nil
	},
	"KERNEL": func(c *smooth.Config, value string) error {
		t, err := kernel.ParseType(value)
		if err != nil {
			return err
		}
		c.Kernel = t.Func()
		return nil
	},
	"METHOD": func(c *smooth.Config, value string) error {
		m, err := conv.ParseMethod(value)
		if err != nil {
			return err
		}
		c.Method = m
		return nil
	},
}

// Keys lists the recognised keys in sorted order.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Load reads the file at path and applies it on top of base.
func Load(path string, base smooth.Config) (smooth.Config, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		return base, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	return Apply(values, base)
}

// Parse applies dotenv formatted content on top of base.
func Parse(content string, base smooth.Config) (smooth.Config, error) {
	values, err := godotenv.Unmarshal(content)
	if err != nil {
		return base, fmt.Errorf("config: failed to parse: %w", err)
	}
	return Apply(values, base)
}

// Apply sets every key of values on a copy of base. Keys are applied in
// sorted order so the first reported error is deterministic.
func Apply(values map[string]string, base smooth.Config) (smooth.Config, error) {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cfg := base
	for _, k := range keys {
		set, ok := setters[strings.ToUpper(k)]
		if !ok {
			return base, fmt.Errorf("%w: %s", ErrUnknownKey, k)
		}
		if err := set(&cfg, strings.TrimSpace(values[k])); err != nil {
			return base, fmt.Errorf("config: %s: %w", k, err)
		}
	}
	return cfg, nil
}

func floatField(assign func(*smooth.Config, float64)) setter {
	return func(c *smooth.Config, value string) error {
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		assign(c, v)
		return nil
	}
}

func boolField(assign func(*smooth.Config, bool)) setter {
	return func(c *smooth.Config, value string) error {
		v, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		assign(c, v)
		return nil
	}
}

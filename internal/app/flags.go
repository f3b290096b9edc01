package app

import (
	"flag"
	"strconv"
)

// Config represents the command-line parameters for the viewer.
type Config struct {
	Sim    string
	Job    string
	Scale  int
	TPS    int
	Seed   int64
	Rate   int
	Panel  int
	Params map[string]string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "wfc", Scale: 12, TPS: 60, Rate: 30, Panel: 240}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.StringVar(&c.Job, "config", c.Job, "YAML generation job (default: built-in sample)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the run, 0 keeps the job's seed")
	fs.IntVar(&c.Rate, "steps", c.Rate, "simulation steps per second")
	fs.IntVar(&c.Panel, "panel", c.Panel, "HUD panel width in pixels, 0 to hide")
	fs.Func("set", "job override as key=value (repeatable)", func(v string) error {
		key, value, ok := cutPair(v)
		if !ok {
			return errBadPair
		}
		if c.Params == nil {
			c.Params = map[string]string{}
		}
		c.Params[key] = value
		return nil
	})
}

// SimParams merges the job path and overrides into a factory map. A non-zero
// -seed takes precedence over -set seed=N.
func (c *Config) SimParams() map[string]string {
	out := make(map[string]string, len(c.Params)+2)
	for k, v := range c.Params {
		out[k] = v
	}
	if c.Job != "" {
		out["config"] = c.Job
	}
	if c.Seed != 0 {
		out["seed"] = strconv.FormatInt(c.Seed, 10)
	}
	return out
}

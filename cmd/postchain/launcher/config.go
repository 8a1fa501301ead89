// This file maps the config file and CLI context onto the Config struct.

package launcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-postchain/inter/netaddr"
	"github.com/rony4d/go-postchain/protocol"
)

// Config aggregates every subsystem's configuration the launcher needs.
type Config struct {
	Node     NodeConfig
	Protocol ProtocolConfig
	Gossip   GossipConfig
	Logging  LoggingConfig
}

type NodeConfig struct {
	Name   string
	Listen string // host:port this node identifies itself with
}

// ProtocolConfig selects network rules. Nil overrides keep the preset value.
type ProtocolConfig struct {
	Network        string
	Difficulty     *uint `toml:",omitempty"`
	PeerShareLimit *int  `toml:",omitempty"`
	MaxKnownPeers  *int  `toml:",omitempty"`
}

type GossipConfig struct {
	Peers   []string
	Metrics bool
}

type LoggingConfig struct {
	Verbosity int
	Format    string
	Color     bool
	SentryDSN string
}

// Rules resolves the network preset and applies the configured overrides.
func (c ProtocolConfig) Rules() (protocol.Rules, error) {
	rules, err := protocol.RulesByName(c.Network)
	if err != nil {
		return protocol.Rules{}, err
	}
	rules = protocol.ApplyOverrides(rules, protocol.Overrides{
		Difficulty:     c.Difficulty,
		PeerShareLimit: c.PeerShareLimit,
		MaxKnownPeers:  c.MaxKnownPeers,
	})
	if err := rules.Validate(); err != nil {
		return protocol.Rules{}, err
	}
	return rules, nil
}

// ListenAddr parses Node.Listen.
func (c NodeConfig) ListenAddr() (netaddr.Address, error) {
	addr, err := netaddr.ParseAddress(c.Listen)
	if err != nil {
		return netaddr.Address{}, fmt.Errorf("listen address %q: %w", c.Listen, err)
	}
	return addr, nil
}

// PeerAddrs parses Gossip.Peers.
func (c GossipConfig) PeerAddrs() (netaddr.List, error) {
	list := make(netaddr.List, 0, len(c.Peers))
	for _, p := range c.Peers {
		addr, err := netaddr.ParseAddress(p)
		if err != nil {
			return nil, fmt.Errorf("peer %q: %w", p, err)
		}
		list = append(list, addr)
	}
	return list, nil
}

// MakeAllConfigs merges defaults, config-file values, and CLI overrides into
// a single config struct, then checks that the result is usable.
func MakeAllConfigs(ctx *cli.Context) (Config, error) {
	cfg := DefaultConfig()

	if file := ctx.GlobalString("config"); file != "" {
		if err := loadConfigFile(resolvePath(file), &cfg); err != nil {
			return cfg, fmt.Errorf("failed to load config file %s: %w", file, err)
		}
	}

	applyCLIOverrides(ctx, &cfg)

	if _, err := cfg.Protocol.Rules(); err != nil {
		return cfg, err
	}
	if _, err := cfg.Node.ListenAddr(); err != nil {
		return cfg, err
	}
	if _, err := cfg.Gossip.PeerAddrs(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// -----------------------------------------------------------------------------
// Config-file / CLI wiring
// -----------------------------------------------------------------------------

func loadConfigFile(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// applyCLIOverrides reads global flags, so it works from both the app and a
// command context.
func applyCLIOverrides(ctx *cli.Context, cfg *Config) {
	if ctx.GlobalIsSet("identity") {
		cfg.Node.Name = ctx.GlobalString("identity")
	}
	if ctx.GlobalIsSet("listen") {
		cfg.Node.Listen = ctx.GlobalString("listen")
	}

	if ctx.GlobalIsSet("network") {
		cfg.Protocol.Network = ctx.GlobalString("network")
	}
	if ctx.GlobalIsSet("difficulty") {
		v := ctx.GlobalUint("difficulty")
		cfg.Protocol.Difficulty = &v
	}
	if ctx.GlobalIsSet("sharelimit") {
		v := ctx.GlobalInt("sharelimit")
		cfg.Protocol.PeerShareLimit = &v
	}
	if ctx.GlobalIsSet("maxpeers") {
		v := ctx.GlobalInt("maxpeers")
		cfg.Protocol.MaxKnownPeers = &v
	}

	if ctx.GlobalIsSet("peers") {
		cfg.Gossip.Peers = splitCSV(ctx.GlobalString("peers"))
	}
	if ctx.GlobalIsSet("metrics") {
		cfg.Gossip.Metrics = ctx.GlobalBool("metrics")
	}

	if ctx.GlobalIsSet("log.format") {
		cfg.Logging.Format = ctx.GlobalString("log.format")
	}
	if ctx.GlobalIsSet("log.verbosity") {
		cfg.Logging.Verbosity = ctx.GlobalInt("log.verbosity")
	}
	if ctx.GlobalIsSet("log.color") {
		cfg.Logging.Color = ctx.GlobalBool("log.color")
	}
	if ctx.GlobalIsSet("log.sentry") {
		cfg.Logging.SentryDSN = ctx.GlobalString("log.sentry")
	}
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func resolvePath(p string) string {
	if strings.HasPrefix(p, "~") {
		return filepath.Join(GuessHomeDir(), strings.TrimPrefix(p, "~"))
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(GuessWorkDir(), p)
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func GuessWorkDir() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func GuessHomeDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return dir
	}
	return "."
}

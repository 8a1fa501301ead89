package launcher

// Baseline values the launcher uses before the config file and flags
// override them.
const (
	DefaultNodeName  = "postchain"
	DefaultListen    = "127.0.0.1:42000"
	DefaultNetwork   = "fake"
	DefaultVerbosity = 3 // info
	DefaultLogFormat = "text"
)

// DefaultConfig returns a fully populated Config.
func DefaultConfig() Config {
	return Config{
		Node: NodeConfig{
			Name:   DefaultNodeName,
			Listen: DefaultListen,
		},
		Protocol: ProtocolConfig{
			Network: DefaultNetwork,
		},
		Gossip: GossipConfig{
			Peers: []string{},
		},
		Logging: LoggingConfig{
			Verbosity: DefaultVerbosity,
			Format:    DefaultLogFormat,
			Color:     false,
		},
	}
}

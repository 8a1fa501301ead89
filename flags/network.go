package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// NetworkFlags covers network selection and gossip configuration.

func NetworkFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "network",
			Usage: "Network rules to run with (main|test|fake)",
			Value: "fake",
		},
		cli.UintFlag{
			Name:  "difficulty",
			Usage: "Override the network's proof-of-work difficulty in bits",
		},
		cli.IntFlag{
			Name:  "sharelimit",
			Usage: "Override the maximum number of peers listed in a ping reply",
		},
		cli.IntFlag{
			Name:  "maxpeers",
			Usage: "Override the maximum number of peers the node remembers",
		},
		cli.StringFlag{
			Name:  "listen",
			Usage: "Address this node identifies itself with (host:port)",
			Value: "127.0.0.1:42000",
		},
		cli.StringFlag{
			Name:  "peers",
			Usage: "Comma-separated host:port list of known peers",
		},
	}
}

package launcher

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-postchain/flags"
)

// Version of the postchain tools.
const Version = "0.1.0"

const configKey = "config"

// NewApp assembles the postchain command line application.
func NewApp() *cli.App {
	app := flags.NewApp(Version, "proof-of-work post chain gossip tools")
	app.Metadata = make(map[string]interface{})

	app.Flags = append(app.Flags, flags.CommonFlags()...)
	app.Flags = append(app.Flags, flags.NetworkFlags()...)

	app.Commands = []cli.Command{
		postCommand,
		decodeCommand,
		sealCommand,
		gossipCommand,
		dumpConfigCommand,
	}

	app.Before = func(ctx *cli.Context) error {
		cfg, err := MakeAllConfigs(ctx)
		if err != nil {
			return err
		}
		if err := setupLogging(log.StandardLogger(), cfg.Logging); err != nil {
			return err
		}
		ctx.App.Metadata[configKey] = cfg
		log.WithFields(log.Fields{"node": cfg.Node.Name, "network": cfg.Protocol.Network}).Debug("config loaded")
		return nil
	}
	return app
}

// Launch parses args and runs the selected command.
func Launch(args []string) error {
	return NewApp().Run(args)
}

// configFrom returns the config prepared by the app's Before hook.
func configFrom(ctx *cli.Context) (Config, error) {
	cfg, ok := ctx.App.Metadata[configKey].(Config)
	if !ok {
		return Config{}, fmt.Errorf("launcher config not initialised")
	}
	return cfg, nil
}

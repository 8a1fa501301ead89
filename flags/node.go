package flags

import (
	"time"

	"gopkg.in/urfave/cli.v1"
)

// PostFlags describe a post on the command line.

func PostFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "prev",
			Usage: "Hash of the preceding post (hex, big-endian, 0x prefix optional)",
			Value: "0x0",
		},
		cli.StringFlag{
			Name:  "work",
			Usage: "Work value (hex, big-endian, 0x prefix optional)",
			Value: "0x0",
		},
		cli.StringFlag{
			Name:  "body",
			Usage: "Post body as hex, exactly 1024 bytes unless --pad is set",
		},
		cli.StringFlag{
			Name:  "bodyfile",
			Usage: "Read the post body from a file instead of --body",
		},
		cli.BoolFlag{
			Name:  "pad",
			Usage: "Zero-pad a short (or missing) body to 1024 bytes",
		},
	}
}

// SealFlags tune the proof-of-work search.

func SealFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "startwork",
			Usage: "Work value the search starts from (hex)",
			Value: "0x0",
		},
		cli.DurationFlag{
			Name:  "timeout",
			Usage: "Give up sealing after this long (0 = never)",
			Value: time.Minute,
		},
	}
}

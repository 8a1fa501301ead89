package launcher

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/common/hexutil"
	log "github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-postchain/flags"
	"github.com/rony4d/go-postchain/gossip"
	"github.com/rony4d/go-postchain/inter"
	"github.com/rony4d/go-postchain/protocol"
)

var (
	postCommand = cli.Command{
		Name:      "post",
		Usage:     "Build a post and print its hash, score and SharePost encoding",
		ArgsUsage: " ",
		Flags:     flags.PostFlags(),
		Action:    postAction,
	}
	decodeCommand = cli.Command{
		Name:      "decode",
		Usage:     "Decode a hex-encoded gossip message",
		ArgsUsage: "<hex>",
		Flags: []cli.Flag{
			cli.BoolFlag{
				Name:  "stream",
				Usage: "Decode back-to-back messages until the input is used up",
			},
		},
		Action: decodeAction,
	}
	sealCommand = cli.Command{
		Name:      "seal",
		Usage:     "Search for a work value that meets the network difficulty",
		ArgsUsage: " ",
		Flags:     append(flags.PostFlags(), flags.SealFlags()...),
		Action:    sealAction,
	}
	dumpConfigCommand = cli.Command{
		Name:   "dumpconfig",
		Usage:  "Show the effective configuration as TOML",
		Action: dumpConfigAction,
	}
)

func postAction(ctx *cli.Context) error {
	cfg, err := configFrom(ctx)
	if err != nil {
		return err
	}
	rules, err := cfg.Protocol.Rules()
	if err != nil {
		return err
	}
	prev, err := inter.WordFromHex(ctx.String("prev"))
	if err != nil {
		return fmt.Errorf("--prev: %w", err)
	}
	work, err := inter.WordFromHex(ctx.String("work"))
	if err != nil {
		return fmt.Errorf("--work: %w", err)
	}
	body, err := readBody(ctx)
	if err != nil {
		return err
	}
	return printPost(ctx.App.Writer, inter.NewPost(prev, work, body), rules)
}

func sealAction(ctx *cli.Context) error {
	cfg, err := configFrom(ctx)
	if err != nil {
		return err
	}
	rules, err := cfg.Protocol.Rules()
	if err != nil {
		return err
	}
	prev, err := inter.WordFromHex(ctx.String("prev"))
	if err != nil {
		return fmt.Errorf("--prev: %w", err)
	}
	start, err := inter.WordFromHex(ctx.String("startwork"))
	if err != nil {
		return fmt.Errorf("--startwork: %w", err)
	}
	body, err := readBody(ctx)
	if err != nil {
		return err
	}

	sealCtx := context.Background()
	if timeout := ctx.Duration("timeout"); timeout > 0 {
		var cancel context.CancelFunc
		sealCtx, cancel = context.WithTimeout(sealCtx, timeout)
		defer cancel()
	}

	log.WithFields(log.Fields{"difficulty": rules.Difficulty, "prev": inter.WordHex(prev)}).Info("sealing post")
	post, err := inter.Seal(sealCtx, prev, body, rules.MinScore(), start)
	if err != nil {
		return fmt.Errorf("seal: %w", err)
	}
	return printPost(ctx.App.Writer, post, rules)
}

func decodeAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return fmt.Errorf("decode takes exactly one hex argument")
	}
	raw, err := decodeHex(ctx.Args().First())
	if err != nil {
		return err
	}
	w := ctx.App.Writer

	if !ctx.Bool("stream") {
		m, err := gossip.UnmarshalMessage(raw)
		if err != nil {
			return err
		}
		return printMessage(w, m)
	}

	for offset := 0; offset < len(raw); {
		m, n, err := gossip.DecodeMessage(raw[offset:])
		if err != nil {
			return fmt.Errorf("message at offset %d: %w", offset, err)
		}
		fmt.Fprintf(w, "# offset %d, %d bytes\n", offset, n)
		if err := printMessage(w, m); err != nil {
			return err
		}
		offset += n
	}
	return nil
}

func dumpConfigAction(ctx *cli.Context) error {
	cfg, err := configFrom(ctx)
	if err != nil {
		return err
	}
	return toml.NewEncoder(ctx.App.Writer).Encode(cfg)
}

// readBody takes the body from --bodyfile or --body. The input must be
// exactly inter.BodySize bytes unless --pad asks for zero padding, which
// also turns a missing body into the all-zero one.
func readBody(ctx *cli.Context) (inter.Body, error) {
	var (
		raw []byte
		err error
	)
	switch {
	case ctx.String("bodyfile") != "":
		raw, err = ioutil.ReadFile(resolvePath(ctx.String("bodyfile")))
	case ctx.String("body") != "":
		raw, err = decodeHex(ctx.String("body"))
	}
	if err != nil {
		return inter.Body{}, fmt.Errorf("post body: %w", err)
	}
	if len(raw) > inter.BodySize || (len(raw) < inter.BodySize && !ctx.Bool("pad")) {
		return inter.Body{}, fmt.Errorf("%w: got %d", inter.ErrBodySize, len(raw))
	}
	padded := make([]byte, inter.BodySize)
	copy(padded, raw)
	return inter.BodyFromBytes(padded)
}

// decodeHex accepts hex with or without the 0x prefix.
func decodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	return hexutil.Decode(s)
}

func printPost(w io.Writer, post inter.Post, rules protocol.Rules) error {
	raw, err := gossip.EncodeMessage(&gossip.SharePost{Post: post})
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "hash:     %s\n", inter.WordHex(post.Hash()))
	fmt.Fprintf(w, "prev:     %s\n", inter.WordHex(post.Prev()))
	fmt.Fprintf(w, "work:     %s\n", inter.WordHex(post.Work()))
	fmt.Fprintf(w, "score:    %s\n", inter.WordHex(post.Score()))
	fmt.Fprintf(w, "genesis:  %t\n", post.IsGenesis())
	fmt.Fprintf(w, "admitted: %t (%s, difficulty %d)\n", rules.Admits(post), rules.Name, rules.Difficulty)
	fmt.Fprintf(w, "message:  %s\n", hexutil.Encode(raw))
	return nil
}

func printMessage(w io.Writer, m gossip.Message) error {
	fmt.Fprintf(w, "code: %d (%s)\n", m.Code(), m.Code())
	switch m := m.(type) {
	case *gossip.Ping:
		fmt.Fprintf(w, "peers: %d\n", len(m.Peers))
		for _, p := range m.Peers {
			fmt.Fprintf(w, "  %s\n", p)
		}
	case *gossip.RequestPost:
		fmt.Fprintf(w, "hash: %s\n", inter.WordHex(m.Hash))
	case *gossip.SharePost:
		body := m.Post.Body()
		fmt.Fprintf(w, "hash:  %s\n", inter.WordHex(m.Post.Hash()))
		fmt.Fprintf(w, "prev:  %s\n", inter.WordHex(m.Post.Prev()))
		fmt.Fprintf(w, "work:  %s\n", inter.WordHex(m.Post.Work()))
		fmt.Fprintf(w, "score: %s\n", inter.WordHex(m.Post.Score()))
		fmt.Fprintf(w, "body:  %s\n", hexutil.Encode(body[:]))
	}
	return nil
}

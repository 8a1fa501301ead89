package launcher

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	log "github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-postchain/gossip"
	"github.com/rony4d/go-postchain/inter"
	"github.com/rony4d/go-postchain/inter/netaddr"
	"github.com/rony4d/go-postchain/poststore"
	"github.com/rony4d/go-postchain/protocol"
)

var gossipCommand = cli.Command{
	Name:  "gossip",
	Usage: "Run an in-memory gossip round between this node and a fresh peer",
	Description: `The local node seals a short chain, pings the peer and shares its tip.
The peer back-fills the chain by requesting each missing parent.
Every message crosses the wire codec in both directions.`,
	Flags: []cli.Flag{
		cli.IntFlag{
			Name:  "posts",
			Usage: "Number of posts sealed on top of genesis",
			Value: 3,
		},
		cli.StringFlag{
			Name:  "remote",
			Usage: "Address of the simulated peer",
			Value: "127.0.0.1:42001",
		},
	},
	Action: gossipAction,
}

// node is one side of an in-memory round.
type node struct {
	name     string
	addr     netaddr.Address
	handler  *gossip.Handler
	posts    *poststore.Store
	registry *prometheus.Registry
}

func newNode(name string, addr netaddr.Address, rules protocol.Rules) *node {
	n := &node{
		name:     name,
		addr:     addr,
		posts:    poststore.NewMemory(),
		registry: prometheus.NewRegistry(),
	}
	n.handler = gossip.NewHandler(rules, n.posts, nil, gossip.NewMetrics(n.registry))
	return n
}

// roundResult holds the two nodes after a finished round.
type roundResult struct {
	local, remote *node
	tip           inter.Post
	exchanged     int
}

// deliver encodes m, hands it to the receiver and returns the decoded reply.
func deliver(w io.Writer, from, to *node, m gossip.Message) (gossip.Message, error) {
	raw, err := gossip.EncodeMessage(m)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "%s -> %s: %s (%d bytes)\n", from.name, to.name, m.Code(), len(raw))
	reply, err := to.handler.HandleRaw(from.addr, raw)
	if err != nil || reply == nil {
		return nil, err
	}
	return gossip.UnmarshalMessage(reply)
}

// runRound seals posts on the local node, then lets the remote node learn
// the local peers and the whole chain through message exchange alone.
func runRound(ctx context.Context, w io.Writer, rules protocol.Rules, local, remote netaddr.Address, known netaddr.List, posts int) (*roundResult, error) {
	a := newNode("local", local, rules)
	b := newNode("remote", remote, rules)
	for _, p := range known {
		a.handler.Peers().Add(p, local)
	}

	tip := inter.Genesis(inter.Body{})
	if _, _, err := a.posts.Put(tip); err != nil {
		return nil, err
	}
	for i := 0; i < posts; i++ {
		var body inter.Body
		copy(body[:], fmt.Sprintf("post %d", i+1))
		next, err := inter.Seal(ctx, tip.Hash(), body, rules.MinScore(), inter.Word{})
		if err != nil {
			return nil, fmt.Errorf("seal post %d: %w", i+1, err)
		}
		if _, _, err := a.posts.Put(next); err != nil {
			return nil, err
		}
		tip = next
	}
	log.WithFields(log.Fields{"posts": a.posts.Len(), "tip": inter.WordHex(tip.Hash())}).Info("local chain sealed")

	res := &roundResult{local: a, remote: b, tip: tip}

	// Ping both ways; the pong is handled but not answered.
	pong, err := deliver(w, a, b, a.handler.Ping(b.addr))
	if err != nil {
		return nil, err
	}
	res.exchanged++
	if pong != nil {
		if _, err := deliver(w, b, a, pong); err != nil {
			return nil, err
		}
		res.exchanged++
	}

	// Share the tip, then serve every parent request.
	var msg gossip.Message = &gossip.SharePost{Post: tip}
	from, to := a, b
	for limit := 2*(posts+1) + 2; msg != nil; limit-- {
		if limit == 0 {
			return nil, fmt.Errorf("gossip round did not settle")
		}
		reply, err := deliver(w, from, to, msg)
		if err != nil {
			return nil, err
		}
		res.exchanged++
		msg = reply
		from, to = to, from
	}
	return res, nil
}

func gossipAction(ctx *cli.Context) error {
	cfg, err := configFrom(ctx)
	if err != nil {
		return err
	}
	rules, err := cfg.Protocol.Rules()
	if err != nil {
		return err
	}
	local, err := cfg.Node.ListenAddr()
	if err != nil {
		return err
	}
	remote, err := netaddr.ParseAddress(ctx.String("remote"))
	if err != nil {
		return fmt.Errorf("--remote: %w", err)
	}
	known, err := cfg.Gossip.PeerAddrs()
	if err != nil {
		return err
	}

	w := ctx.App.Writer
	res, err := runRound(context.Background(), w, rules, local, remote, known, ctx.Int("posts"))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "messages exchanged: %d\n", res.exchanged)
	fmt.Fprintf(w, "remote posts: %d, remote peers: %d\n", res.remote.posts.Len(), res.remote.handler.Peers().Len())

	if cfg.Gossip.Metrics {
		for _, n := range []*node{res.local, res.remote} {
			if err := printMetrics(w, n.name, n.registry); err != nil {
				return err
			}
		}
	}
	return nil
}

// printMetrics writes counters and gauges as "name{labels} value" lines.
func printMetrics(w io.Writer, title string, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "# metrics: %s\n", title)
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var value float64
			switch mf.GetType() {
			case dto.MetricType_COUNTER:
				value = m.GetCounter().GetValue()
			case dto.MetricType_GAUGE:
				value = m.GetGauge().GetValue()
			default:
				continue
			}
			fmt.Fprintf(w, "%s%s %v\n", mf.GetName(), formatLabels(m.GetLabel()), value)
		}
	}
	return nil
}

func formatLabels(pairs []*dto.LabelPair) string {
	if len(pairs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, fmt.Sprintf("%s=%q", p.GetName(), p.GetValue()))
	}
	sort.Strings(parts)
	return "{" + strings.Join(parts, ",") + "}"
}

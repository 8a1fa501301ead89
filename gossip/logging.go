package gossip

import (
	log "github.com/sirupsen/logrus"

	"github.com/rony4d/go-postchain/inter"
)

var packageLogger = log.WithField("package", "gossip")

// LogEntry returns a log entry describing m.
func LogEntry(m Message) *log.Entry {
	if isNil(m) {
		return packageLogger.WithField("code", "nil")
	}
	fields := log.Fields{"code": m.Code().String()}
	switch m := m.(type) {
	case *Ping:
		fields["peers"] = len(m.Peers)
	case *RequestPost:
		fields["hash"] = inter.WordHex(m.Hash)
	case *SharePost:
		fields["hash"] = inter.WordHex(m.Post.Hash())
		fields["prev"] = inter.WordHex(m.Post.Prev())
	}
	return packageLogger.WithFields(fields)
}

package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/onboardr/internal/logger"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	streamName    = "onboardr_events"
	subjectPrefix = "onboardr"
)

// SubjectForFlow returns the wildcard subject for every event of a flow.
// Example: "onboardr.abc123.>"
func SubjectForFlow(flowID string) string {
	return fmt.Sprintf("%s.%s.>", subjectPrefix, flowID)
}

// SubjectForEvent returns the subject one event kind of a flow is published on.
// Example: "onboardr.abc123.selection"
func SubjectForEvent(flowID, kind string) string {
	return fmt.Sprintf("%s.%s.%s", subjectPrefix, flowID, kind)
}

// startEmbedded starts an in-process NATS server with JetStream and no
// listening ports.
func startEmbedded(storeDir string) (*server.Server, error) {
	logger.Debug("Starting embedded NATS server, store dir %s", storeDir)

	ns, err := server.NewServer(&server.Options{
		JetStream:  true,
		StoreDir:   storeDir,
		DontListen: true,
		NoSigs:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating NATS server: %w", err)
	}

	go ns.Start()

	if !ns.ReadyForConnections(4 * time.Second) {
		ns.Shutdown()
		return nil, errors.New("nats server failed to start within timeout")
	}
	return ns, nil
}

// setupStream creates the memory-backed event stream. Events only live as
// long as the process.
func setupStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     streamName,
		Subjects: []string{subjectPrefix + ".>"},
		Storage:  jetstream.MemoryStorage,
		MaxAge:   24 * time.Hour,
	})
}

// shutdown drains the connection then stops the server, bounded by timeouts
// so a stuck drain never hangs exit.
func shutdown(nc *nats.Conn, ns *server.Server) error {
	if nc != nil {
		drainDone := make(chan error, 1)
		go func() {
			drainDone <- nc.Drain()
		}()

		select {
		case err := <-drainDone:
			if err != nil {
				logger.Warn("NATS drain failed, forcing close: %v", err)
				nc.Close()
			}
		case <-time.After(2 * time.Second):
			logger.Warn("NATS drain timed out after 2s, forcing close")
			nc.Close()
		}
	}

	if ns != nil {
		ns.Shutdown()

		shutdownDone := make(chan struct{})
		go func() {
			ns.WaitForShutdown()
			close(shutdownDone)
		}()

		select {
		case <-shutdownDone:
		case <-time.After(5 * time.Second):
			return errors.New("NATS server shutdown timed out")
		}
	}

	logger.Debug("NATS shutdown complete")
	return nil
}

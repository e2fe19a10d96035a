// Command mllpsend sends one message to an MLLP receiver and prints the ack.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/someonegg/mllpump"
	"github.com/someonegg/mllpump/internal/logging"
)

func main() {
	addr := flag.String("addr", "127.0.0.1:2575", "receiver address")
	configPath := flag.String("config", "", "TOML config file")
	file := flag.String("file", "-", "message file, - for stdin")
	timeout := flag.Duration("timeout", 0, "per read ack timeout, overrides the config")
	dump := flag.Bool("dump", false, "dump raw stream chunks to stderr")
	flag.Parse()

	logging.Configure("mllpsend", os.Stderr)

	cfg := mllpump.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = mllpump.LoadConfig(*configPath); err != nil {
			log.Fatal().Err(err).Msg("failed to load config")
		}
		log.Info().Str("path", *configPath).Msg("loaded config")
	}
	if *timeout > 0 {
		cfg.AckTimeout = *timeout
	}

	msg, err := readMessage(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("failed to read message")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ack, err := send(ctx, *addr, cfg, msg, *dump)
	if err != nil {
		log.Fatal().Err(err).Str("addr", *addr).Msg("send failed")
	}
	fmt.Println(strings.ReplaceAll(string(ack), "\r", "\n"))
}

// readMessage reads the message and turns line breaks into segment separators.
func readMessage(name string) (mllpump.Frame, error) {
	var (
		b   []byte
		err error
	)
	if name == "-" {
		b, err = io.ReadAll(os.Stdin)
	} else {
		b, err = os.ReadFile(name)
	}
	if err != nil {
		return nil, err
	}
	s := strings.TrimRight(strings.ReplaceAll(string(b), "\r\n", "\n"), "\n")
	return mllpump.Frame(strings.ReplaceAll(s, "\n", "\r")), nil
}

func send(ctx context.Context, addr string, cfg mllpump.Config, msg mllpump.Frame, dump bool) (mllpump.Frame, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}

	var rw mllpump.Stream = conn
	if dump {
		rw = &mllpump.StreamDump{RW: conn, Dump: os.Stderr}
	}

	s, err := mllpump.NewSession(rw, conn.RemoteAddr().String(), cfg)
	if err != nil {
		conn.Close()
		return nil, err
	}
	defer s.Close()

	log.Debug().Str("session", s.ID()).Str("addr", addr).Int("bytes", len(msg)).Msg("sending message")
	return s.Send(ctx, msg)
}

// SPDX-License-Identifier: MIT
//
// Command opaque-client runs the client side of an OPAQUE exchange over
// TCP, mirroring original_source/OPAQUE/client.cpp's command-line shape.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shapaz/pake/group/ristretto"
	"github.com/shapaz/pake/internal/netconn"
	"github.com/shapaz/pake/internal/stopwatch"
	"github.com/shapaz/pake/internal/wire"
	"github.com/shapaz/pake/opaque"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	connectAddr := flag.String("connect", "", "server address to connect to")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -connect <addr> <password> <identity>\n", os.Args[0])
	}
	flag.Parse()
	if *connectAddr == "" || flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	password, identity := flag.Arg(0), flag.Arg(1)

	g := ristretto.New()
	sw := stopwatch.New(log.Logger)

	sw.Start("Generating user msg", stopwatch.Offline)
	client, err := opaque.NewClientExchange(g, identity, password)
	if err != nil {
		log.Fatal().Err(err).Msg("starting exchange")
	}

	sw.Start("Connecting", stopwatch.Offline)
	conn, err := netconn.Dial(*connectAddr)
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to server")
	}
	defer conn.Close()

	w := wire.NewWriter(conn)
	r := wire.NewReader(conn)

	sw.Start("Exchanging messages #1", stopwatch.Online)
	if err := w.WriteMessage(client.Message1()); err != nil {
		log.Fatal().Err(err).Msg("sending first message")
	}

	const msg2Len = 32 + 32 + 16 + 96 + 32 // beta || X_s || MAC || envelope plaintext || A_s
	msg2 := make([]byte, msg2Len)
	if err := r.ReadMessage(msg2); err != nil {
		log.Fatal().Err(err).Msg("receiving server response")
	}

	sw.Start("Generating Key", stopwatch.Offline)
	key, au, err := client.Finish(msg2)
	if err != nil {
		log.Fatal().Err(err).Msg("validating key")
	}

	sw.Start("Sending message #2", stopwatch.Online)
	if err := w.WriteMessage(au); err != nil {
		log.Fatal().Err(err).Msg("sending acknowledgement")
	}
	sw.Stop()

	sw.Total("Total", stopwatch.Online|stopwatch.Offline)
	sw.Total("Total Online", stopwatch.Online)

	fmt.Printf("Shared key: %x\n", key)
}

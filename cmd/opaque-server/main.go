// SPDX-License-Identifier: MIT
//
// Command opaque-server accepts a single OPAQUE exchange over TCP,
// mirroring original_source/OPAQUE/server.cpp's command-line shape.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shapaz/pake/group"
	"github.com/shapaz/pake/group/ristretto"
	"github.com/shapaz/pake/internal/ident"
	"github.com/shapaz/pake/internal/netconn"
	"github.com/shapaz/pake/internal/stopwatch"
	"github.com/shapaz/pake/internal/wire"
	"github.com/shapaz/pake/opaque"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	dir := flag.String("dir", ".", "directory containing enrollment records")
	listenAddr := flag.String("listen", ":9999", "local address to accept a connection on")
	flag.Parse()

	g := ristretto.New()
	sw := stopwatch.New(log.Logger)

	sw.Start("Connecting", stopwatch.Offline)
	conn, err := netconn.Listen(*listenAddr)
	if err != nil {
		log.Fatal().Err(err).Msg("establishing connection")
	}
	defer conn.Close()

	w := wire.NewWriter(conn)
	r := wire.NewReader(conn)

	sw.Start("Receiving user msg #1", stopwatch.Online)
	msg1 := make([]byte, ident.MaxID+opaque.SSIDLen+2*group.PointLen)
	if err := r.ReadMessage(msg1); err != nil {
		log.Fatal().Err(err).Msg("receiving first message")
	}

	sw.Start("Loading password file", stopwatch.Offline)
	var sid [ident.MaxID]byte
	copy(sid[:], msg1[:ident.MaxID])
	rec, err := opaque.LoadRecord(g, *dir, ident.String(sid))
	if err != nil {
		log.Fatal().Err(err).Msg("loading enrollment record")
	}

	sw.Start("Generating Key", stopwatch.Offline)
	server, err := opaque.NewServerExchange(g, rec, msg1)
	if err != nil {
		log.Fatal().Err(err).Msg("processing client message")
	}

	sw.Start("Exchanging messages", stopwatch.Online)
	if err := w.WriteMessage(server.Message2()); err != nil {
		log.Fatal().Err(err).Msg("sending response")
	}

	au := make([]byte, opaque.KeyLen)
	if err := r.ReadMessage(au); err != nil {
		log.Fatal().Err(err).Msg("receiving acknowledgement")
	}

	sw.Start("Validating Key", stopwatch.Offline)
	key, err := server.Finish(au)
	if err != nil {
		log.Fatal().Err(err).Msg("verifying acknowledgement")
	}
	sw.Stop()

	sw.Total("Total", stopwatch.Online|stopwatch.Offline)
	sw.Total("Total Online", stopwatch.Online)

	fmt.Printf("Shared key: %x\n", key)
}

// SPDX-License-Identifier: MIT
//
// Command crisp-exchange runs one party's side of a CRISP key exchange over
// TCP, mirroring original_source/CRISP/key_exchange.cpp's command-line
// shape.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shapaz/pake/crisp"
	"github.com/shapaz/pake/group/ristretto"
	"github.com/shapaz/pake/internal/ident"
	"github.com/shapaz/pake/internal/netconn"
	"github.com/shapaz/pake/internal/stopwatch"
	"github.com/shapaz/pake/internal/wire"
	"github.com/shapaz/pake/pairing/bls12381"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	recordPath := flag.String("record", "", "enrollment record produced by crisp-enroll")
	listenAddr := flag.String("listen", "", "local address to accept a connection on")
	connectAddr := flag.String("connect", "", "peer address to connect to")
	flag.Parse()

	if *recordPath == "" || (*listenAddr == "") == (*connectAddr == "") {
		fmt.Fprintln(os.Stderr, "Usage: crisp-exchange -record <file> (-listen <addr> | -connect <addr>)")
		os.Exit(1)
	}

	pg := bls12381.New()
	g := ristretto.New()
	sw := stopwatch.New(log.Logger)

	sw.Start("Loading record", stopwatch.Offline)
	f, err := os.Open(*recordPath)
	if err != nil {
		log.Fatal().Err(err).Msg("opening record")
	}
	rec, err := crisp.ReadRecord(pg, f)
	f.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("reading record")
	}

	sw.Start("Blinding", stopwatch.Offline)
	ex := crisp.NewExchange(pg, g, rec)

	sw.Start("Connecting", stopwatch.Offline)
	var conn interface {
		Read(p []byte) (int, error)
		Write(p []byte) (int, error)
		Close() error
	}
	if *connectAddr != "" {
		conn, err = netconn.Dial(*connectAddr)
	} else {
		conn, err = netconn.Listen(*listenAddr)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("establishing connection")
	}
	defer conn.Close()

	w := wire.NewWriter(conn)
	r := wire.NewReader(conn)

	sw.Start("Exchanging messages", stopwatch.Online)
	out := make([]byte, 0, ident.MaxID+pg.G2Len()+pg.G1Len())
	out = append(out, rec.ID[:]...)
	out = append(out, ex.OutMessage()...)
	if err := w.WriteMessage(out); err != nil {
		log.Fatal().Err(err).Msg("sending first message")
	}

	in := make([]byte, ident.MaxID+pg.G2Len()+pg.G1Len())
	if err := r.ReadMessage(in); err != nil {
		log.Fatal().Err(err).Msg("receiving first message")
	}

	var peerID [ident.MaxID]byte
	copy(peerID[:], in[:ident.MaxID])
	peerMsg := in[ident.MaxID:]

	fmt.Printf("Identified: %s\n", ident.String(peerID))

	sw.Start("Computing shared secret", stopwatch.Offline)
	cp, err := ex.Finish(peerID, peerMsg)
	if err != nil {
		log.Fatal().Err(err).Msg("computing transcript secret / verifying identity")
	}

	sw.Start("Running PAKE", stopwatch.Online)
	if err := w.WriteMessage(cp.OutMessage()); err != nil {
		log.Fatal().Err(err).Msg("sending PAKE message")
	}
	pakeMsg := make([]byte, 32)
	if err := r.ReadMessage(pakeMsg); err != nil {
		log.Fatal().Err(err).Msg("receiving PAKE message")
	}

	key, err := cp.NewKey(pakeMsg)
	if err != nil {
		log.Fatal().Err(err).Msg("deriving shared key")
	}
	sw.Stop()

	sw.Total("Total", stopwatch.Online|stopwatch.Offline)
	sw.Total("Total Online", stopwatch.Online)

	fmt.Printf("Shared key: %x\n", key)
}

// SPDX-License-Identifier: MIT
//
// Command chip-exchange runs one party's side of a CHIP key exchange over
// TCP, mirroring original_source/CHIP/key_exchange.cpp's command-line
// shape: a record file plus an optional peer address (connect) or a local
// listen address (accept).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shapaz/pake/chip"
	"github.com/shapaz/pake/group"
	"github.com/shapaz/pake/group/ristretto"
	"github.com/shapaz/pake/internal/ident"
	"github.com/shapaz/pake/internal/netconn"
	"github.com/shapaz/pake/internal/stopwatch"
	"github.com/shapaz/pake/internal/wire"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	recordPath := flag.String("record", "", "enrollment record produced by chip-enroll")
	listenAddr := flag.String("listen", "", "local address to accept a connection on")
	connectAddr := flag.String("connect", "", "peer address to connect to")
	flag.Parse()

	if *recordPath == "" || (*listenAddr == "") == (*connectAddr == "") {
		fmt.Fprintln(os.Stderr, "Usage: chip-exchange -record <file> (-listen <addr> | -connect <addr>)")
		os.Exit(1)
	}

	g := ristretto.New()
	sw := stopwatch.New(log.Logger)

	sw.Start("Loading record", stopwatch.Offline)
	f, err := os.Open(*recordPath)
	if err != nil {
		log.Fatal().Err(err).Msg("opening record")
	}
	rec, err := chip.ReadRecord(g, f)
	f.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("reading record")
	}

	sw.Start("Blinding", stopwatch.Offline)
	ex := chip.NewExchange(g, rec)

	sw.Start("Connecting", stopwatch.Offline)
	peerConn, err := connect(*listenAddr, *connectAddr)
	if err != nil {
		log.Fatal().Err(err).Msg("establishing connection")
	}
	defer peerConn.Close()

	w := wire.NewWriter(peerConn)
	r := wire.NewReader(peerConn)

	sw.Start("Exchanging messages", stopwatch.Online)
	out := make([]byte, 0, ident.MaxID+group.PointLen+group.PointLen)
	out = append(out, rec.ID[:]...)
	out = append(out, rec.X.Bytes()...)
	out = append(out, ex.OutMessage()...)
	if err := w.WriteMessage(out); err != nil {
		log.Fatal().Err(err).Msg("sending first message")
	}

	in := make([]byte, ident.MaxID+group.PointLen+group.PointLen)
	if err := r.ReadMessage(in); err != nil {
		log.Fatal().Err(err).Msg("receiving first message")
	}

	var peerID [ident.MaxID]byte
	copy(peerID[:], in[:ident.MaxID])
	peerX, err := g.DecodePoint(in[ident.MaxID : ident.MaxID+group.PointLen])
	if err != nil {
		log.Fatal().Err(err).Msg("decoding peer public key")
	}
	peerRi := in[ident.MaxID+group.PointLen:]

	fmt.Printf("Identified: %s\n", ident.String(peerID))

	sw.Start("Computing shared secret", stopwatch.Offline)
	cp, err := ex.Finish(peerID, peerX, peerRi)
	if err != nil {
		log.Fatal().Err(err).Msg("computing transcript secret")
	}

	sw.Start("Running PAKE", stopwatch.Online)
	if err := w.WriteMessage(cp.OutMessage()); err != nil {
		log.Fatal().Err(err).Msg("sending PAKE message")
	}
	peerMsg := make([]byte, cpaceMsgLen())
	if err := r.ReadMessage(peerMsg); err != nil {
		log.Fatal().Err(err).Msg("receiving PAKE message")
	}

	key, err := cp.NewKey(peerMsg)
	if err != nil {
		log.Fatal().Err(err).Msg("deriving shared key")
	}
	sw.Stop()

	sw.Total("Total", stopwatch.Online|stopwatch.Offline)
	sw.Total("Total Online", stopwatch.Online)

	fmt.Printf("Shared key: %x\n", key)
}

func connect(listenAddr, connectAddr string) (interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Close() error
}, error) {
	if connectAddr != "" {
		return netconn.Dial(connectAddr)
	}
	return netconn.Listen(listenAddr)
}

func cpaceMsgLen() int { return group.PointLen }

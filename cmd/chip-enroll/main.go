// SPDX-License-Identifier: MIT
//
// Command chip-enroll writes a CHIP enrollment record for one identity to
// stdout, mirroring original_source/CHIP/gen_pwd_file.cpp's command-line
// shape.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shapaz/pake/chip"
	"github.com/shapaz/pake/group/ristretto"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s <network> <password> <identity>\n", os.Args[0])
	}
	flag.Parse()
	if flag.NArg() != 3 {
		flag.Usage()
		os.Exit(1)
	}
	network, password, identity := flag.Arg(0), flag.Arg(1), flag.Arg(2)

	g := ristretto.New()
	rec, err := chip.Enroll(g, network, password, identity)
	if err != nil {
		log.Fatal().Err(err).Msg("enrollment failed")
	}

	if err := rec.Write(os.Stdout); err != nil {
		log.Fatal().Err(err).Msg("writing record failed")
	}
}

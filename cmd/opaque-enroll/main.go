// SPDX-License-Identifier: MIT
//
// Command opaque-enroll writes an OPAQUE enrollment record to
// "<identity>.pwd" in the given directory, mirroring
// original_source/OPAQUE/gen_pwd_file.cpp's command-line shape and the
// server's "<sid>.pwd" lookup convention. The identity is used as given: it
// is neither lowercased nor checked for non-alphanumeric characters, as the
// server's lookup does.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/shapaz/pake/group/ristretto"
	"github.com/shapaz/pake/opaque"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	dir := flag.String("dir", ".", "directory to write the record into")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-dir <path>] <password> <identity>\n", os.Args[0])
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	password, identity := flag.Arg(0), flag.Arg(1)

	g := ristretto.New()
	rec, err := opaque.Enroll(g, password)
	if err != nil {
		log.Fatal().Err(err).Msg("enrollment failed")
	}

	f, err := os.Create(filepath.Join(*dir, identity+".pwd"))
	if err != nil {
		log.Fatal().Err(err).Msg("creating record file")
	}
	defer f.Close()

	if err := rec.Write(f); err != nil {
		log.Fatal().Err(err).Msg("writing record failed")
	}
}

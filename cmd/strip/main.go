// Copyright 2026 The typegraph authors. All rights reserved.
// Use of this source code is governed by an MIT license that can be found in the LICENSE file.
//
// Command strip removes the persisted type tables from a program
// container in place, leaving everything else untouched.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/typegraph/typegraph/store"
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s <container>\n", os.Args[0])
		flag.PrintDefaults()
	}
}

func main() {

	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	db, e := store.Open(flag.Arg(0))
	if e != nil {
		log.Fatalln(e)
	}
	defer db.Close()

	if ee := store.Strip(db); ee != nil {
		log.Fatalln(ee)
	}
}

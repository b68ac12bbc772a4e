package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/TomBebb/Monopoly/cryptorand"
	"github.com/TomBebb/Monopoly/sqldb"
	"github.com/TomBebb/Monopoly/web"
	"github.com/namsral/flag"
)

func main() {
	var (
		addr     = flag.String("addr", ":8080", "HTTP service address")
		dbPath   = flag.String("db_path", "monopoly.db", "Path to the SQLite DB file")
		hashKey  = flag.String("hash_key_file", "hashKey", "File holding the cookie hash key, generated if missing")
		blockKey = flag.String("block_key_file", "blockKey", "File holding the cookie block key, generated if missing")
	)
	flag.Parse()

	db, err := sqldb.New(*dbPath, cryptorand.Source{})
	if err != nil {
		log.Fatalf("failed to initialize datastore: %v", err)
	}

	sc, err := web.LoadKeys(*hashKey, *blockKey)
	if err != nil {
		log.Fatalf("failed to load cookie keys: %v", err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-c
		if err := db.Close(); err != nil {
			log.Printf("failed to close DB: %v", err)
		}
		os.Exit(1)
	}()

	log.Printf("Server is running on %q", *addr)
	if err := http.ListenAndServe(*addr, web.New(db, cryptorand.New(), sc)); err != nil {
		log.Fatal("ListenAndServe: ", err)
	}
}

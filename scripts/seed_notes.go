package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"

	"hashnotes/internal/store/sqlstore"
	"hashnotes/internal/token"
)

var sampleNotes = []struct{ title, text string }{
	{"Groceries", "milk, eggs, coffee"},
	{"Standup", "discussed blockers"},
	{"Ideas", "a note app that needs no account"},
	{"Reading list", "- The Go Programming Language\n- SQLite internals"},
	{"Errands", "post office before 5"},
	{"Quote", "> Simplicity is complicated."},
	{"Todo", "renew passport"},
	{"Meeting", "sprint planning completed"},
}

func main() {
	driver := flag.String("driver", "sqlite3", "database driver (sqlite3 or postgres)")
	conn := flag.String("conn", "./db/notes.db", "database connection string")
	count := flag.Int("n", 10, "number of notes to add after the first")
	flag.Parse()

	store, err := sqlstore.New(*driver, *conn)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	hash, err := token.New()
	if err != nil {
		log.Fatal(err)
	}

	first := sampleNotes[rand.Intn(len(sampleNotes))]
	if _, err := store.CreateAccount(ctx, hash, first.title, first.text); err != nil {
		log.Fatalf("Could not create account: %v", err)
	}

	inserted := 1
	for i := 0; i < *count; i++ {
		n := sampleNotes[rand.Intn(len(sampleNotes))]
		if _, err := store.AddNote(ctx, hash, n.title, n.text); err != nil {
			log.Printf("Error inserting note: %v", err)
			continue
		}
		inserted++
	}

	fmt.Printf("Inserted %d notes for hash %s\n", inserted, hash)
}

package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// CLI flags
var (
	dsn   = flag.String("dsn", "", "Postgres DSN (default: env DATABASE_URL)")
	users = flag.String("users", "bob:secret1234,sue:hunter2go", "Comma-separated username:password pairs to seed")
	cost  = flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost for seeded passwords")
)

func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()

	if *dsn == "" {
		*dsn = os.Getenv("DATABASE_URL")
	}
	if *dsn == "" {
		fatalf("--dsn not provided and DATABASE_URL not set")
	}

	pairs, err := parsePairs(*users)
	if err != nil {
		fatalf("invalid --users: %v", err)
	}

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		fatalf("open database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	seeded := 0
	for _, p := range pairs {
		hashed, err := bcrypt.GenerateFromPassword([]byte(p.password), *cost)
		if err != nil {
			fatalf("hash password for %q: %v", p.username, err)
		}

		res, err := db.ExecContext(ctx, `
    insert into app_auth.users (username, hashed_password)
    values ($1, $2)
    on conflict (username) do nothing
`, p.username, string(hashed))
		if err != nil {
			fatalf("insert %q: %v", p.username, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			seeded++
			fmt.Printf("seeded user %q\n", p.username)
		} else {
			fmt.Printf("user %q already exists, skipped\n", p.username)
		}
	}

	fmt.Printf("Done. %d of %d users seeded.\n", seeded, len(pairs))
}

type pair struct {
	username string
	password string
}

func parsePairs(s string) ([]pair, error) {
	var pairs []pair
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		username, password, ok := strings.Cut(entry, ":")
		if !ok || username == "" {
			return nil, fmt.Errorf("entry %q is not username:password", entry)
		}
		if len(password) <= 3 {
			return nil, fmt.Errorf("password for %q must be longer than 3 chars", username)
		}
		pairs = append(pairs, pair{username: username, password: password})
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("no users given")
	}
	return pairs, nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

// Command sqlrows runs SQL statements and prints typed results as JSON.
package main

import (
	"fmt"
	"os"

	_ "github.com/marcboeker/go-duckdb/v2"
	_ "github.com/mattn/go-sqlite3"

	"github.com/nlimpid/sqlrows/conn"
)

const envPrefix = "SQLROWS"

func main() {
	cfg, err := conn.LoadConfig(envPrefix)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := newRootCmd(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}
